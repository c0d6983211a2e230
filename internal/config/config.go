// Package config loads and validates view configuration: the declarative
// description of each list screen (columns, filters, sorting, page size)
// that the CLI and TUI hand to the grid controller.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level view configuration file.
type Config struct {
	Screens map[string]Screen `yaml:"screens"`
}

// Screen declares one list screen.
type Screen struct {
	Title       string       `yaml:"title"`
	PageSize    int          `yaml:"pageSize"`
	IDColumn    string       `yaml:"idColumn"`
	DefaultSort SortSpec     `yaml:"defaultSort"`
	Columns     []ColumnDef  `yaml:"columns"`
	Filters     []FilterSpec `yaml:"filters"`
	// Export enables CSV export and names the output file.
	Export ExportDef `yaml:"export"`
}

// SortSpec is the screen's initial ordering.
type SortSpec struct {
	Field     string `yaml:"field"`
	Direction string `yaml:"direction"` // "asc" (default) or "desc"
}

// ColumnDef declares one column of a configured screen.
type ColumnDef struct {
	Key        string `yaml:"key"`
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Align      string `yaml:"align"` // "left" (default) or "right"
	Unsortable bool   `yaml:"unsortable"`
}

// FilterSpec declares one filter control.
type FilterSpec struct {
	Key     string      `yaml:"key"`
	Kind    string      `yaml:"kind"` // text, select, bool, expr
	Label   string      `yaml:"label"`
	Options []OptionDef `yaml:"options"`
	// Column names the record field a select/bool filter compares against;
	// defaults to Key.
	Column string `yaml:"column"`
}

// OptionDef is one selectable value of a select filter.
type OptionDef struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// ExportDef configures CSV export for a screen.
type ExportDef struct {
	Enabled  bool   `yaml:"enabled"`
	Filename string `yaml:"filename"`
}

// DefaultPageSize applies when a screen does not set one.
const DefaultPageSize = 20

var validFilterKinds = map[string]bool{
	"text":   true,
	"select": true,
	"bool":   true,
	"expr":   true,
}

// LoadFile reads and validates a view configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read view config %s: %w", path, err)
	}
	return Load(data)
}

// Load parses and validates view configuration bytes.
func Load(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse view config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Screen returns the named screen, or an error listing the available ones.
func (c *Config) Screen(name string) (Screen, error) {
	s, ok := c.Screens[name]
	if !ok {
		return Screen{}, fmt.Errorf("unknown screen %q (have %d screens configured)", name, len(c.Screens))
	}
	return s, nil
}

// Validate rejects configurations the controller would misbehave on:
// duplicate column keys, unknown filter kinds, select filters without
// options, and negative page sizes. A zero page size is allowed here and
// replaced with DefaultPageSize during defaulting.
func (c *Config) Validate() error {
	for name, screen := range c.Screens {
		if len(screen.Columns) == 0 {
			return fmt.Errorf("screen %q: no columns declared", name)
		}
		if screen.PageSize < 0 {
			return fmt.Errorf("screen %q: pageSize must not be negative, got %d", name, screen.PageSize)
		}
		seen := map[string]bool{}
		for _, col := range screen.Columns {
			if col.Key == "" {
				return fmt.Errorf("screen %q: column with empty key", name)
			}
			if seen[col.Key] {
				return fmt.Errorf("screen %q: duplicate column key %q", name, col.Key)
			}
			seen[col.Key] = true
		}
		seenFilters := map[string]bool{}
		for _, f := range screen.Filters {
			if f.Key == "" {
				return fmt.Errorf("screen %q: filter with empty key", name)
			}
			if seenFilters[f.Key] {
				return fmt.Errorf("screen %q: duplicate filter key %q", name, f.Key)
			}
			seenFilters[f.Key] = true
			if !validFilterKinds[f.Kind] {
				return fmt.Errorf("screen %q: filter %q has unknown kind %q", name, f.Key, f.Kind)
			}
			if f.Kind == "select" && len(f.Options) == 0 {
				return fmt.Errorf("screen %q: select filter %q has no options", name, f.Key)
			}
		}
		if d := screen.DefaultSort.Direction; d != "" && d != "asc" && d != "desc" {
			return fmt.Errorf("screen %q: defaultSort.direction must be asc or desc, got %q", name, d)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	for name, screen := range c.Screens {
		if screen.PageSize == 0 {
			screen.PageSize = DefaultPageSize
		}
		if screen.Title == "" {
			screen.Title = name
		}
		if screen.IDColumn == "" {
			screen.IDColumn = screen.Columns[0].Key
		}
		if screen.DefaultSort.Field != "" && screen.DefaultSort.Direction == "" {
			screen.DefaultSort.Direction = "asc"
		}
		c.Screens[name] = screen
	}
}

// Synthesize builds an ad-hoc screen from record field names, used when no
// view config is given. Columns appear in the provided order; a free-text
// search filter is always available.
func Synthesize(title string, fields []string) Screen {
	cols := make([]ColumnDef, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, ColumnDef{Key: f, Title: f})
	}
	return Screen{
		Title:    title,
		PageSize: DefaultPageSize,
		IDColumn: firstField(fields),
		Columns:  cols,
		Filters:  []FilterSpec{{Key: "search", Kind: "text", Label: "Search"}},
		Export:   ExportDef{Enabled: true, Filename: "export.csv"},
	}
}

func firstField(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
