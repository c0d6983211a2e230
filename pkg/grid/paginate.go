package grid

// Mode selects who paginates the collection.
type Mode string

const (
	// ModeClient means the full filtered collection is held locally and the
	// controller slices out the visible page.
	ModeClient Mode = "client"
	// ModeServer means the backend already paginated: rows passed in are
	// exactly the current page and total counts come from the caller.
	ModeServer Mode = "server"
)

// Pagination is the page state for one screen. Page is 1-based. In client
// mode Total and TotalPages are derived from the collection length; in server
// mode they are supplied by the caller and rendered verbatim.
//
// The controller does not self-correct an out-of-range Page: callers are
// expected to reset to page 1 on filter and page-size changes. Clamped is
// available for callers that want hardening.
type Pagination struct {
	Mode       Mode
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Resolve fills the derived fields for the given collection length and
// returns the effective state. In server mode the supplied totals are kept;
// TotalPages falls back to a computation from Total when unset.
func (p Pagination) Resolve(collectionLen int) Pagination {
	out := p
	if out.Mode == "" {
		out.Mode = ModeClient
	}
	if out.Page < 1 {
		out.Page = 1
	}
	switch out.Mode {
	case ModeServer:
		if out.TotalPages == 0 {
			out.TotalPages = pageCount(out.Total, out.PageSize)
		}
	default:
		out.Total = collectionLen
		out.TotalPages = pageCount(collectionLen, out.PageSize)
	}
	return out
}

func pageCount(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// PageSlice returns the visible page of rows. In server mode the input is
// already exactly the current page and is returned untouched. In client mode
// the slice is empty when Page is beyond TotalPages.
func PageSlice[T any](p Pagination, rows []T) []T {
	if p.Mode == ModeServer {
		return rows
	}
	if p.PageSize <= 0 {
		return rows
	}
	start := (p.Page - 1) * p.PageSize
	if start < 0 {
		start = 0
	}
	if start >= len(rows) {
		return nil
	}
	end := start + p.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// ShowControls reports whether pagination chrome should render at all.
// Single-page collections show none (not merely disabled controls).
func (p Pagination) ShowControls() bool {
	return p.TotalPages > 1
}

// Window returns the 1-based indices for the "showing X to Y of N" label.
// For an empty collection both bounds are 0.
func (p Pagination) Window() (from, to int) {
	if p.Total == 0 {
		return 0, 0
	}
	from = (p.Page-1)*p.PageSize + 1
	to = p.Page * p.PageSize
	if to > p.Total {
		to = p.Total
	}
	return from, to
}

// Clamped returns the state with Page clamped to [1, TotalPages]. The
// controller never applies this itself; screens opt in after filter or
// page-size changes.
func (p Pagination) Clamped() Pagination {
	out := p
	if out.Page < 1 {
		out.Page = 1
	}
	if out.TotalPages > 0 && out.Page > out.TotalPages {
		out.Page = out.TotalPages
	}
	return out
}
