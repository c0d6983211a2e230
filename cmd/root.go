// Package cmd implements the gridctl command line: load a record collection,
// stand up a configured list screen, and render it as a terminal table, CSV,
// JSON, or an interactive browser.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/oakwood-commons/gridctl/internal/config"
	"github.com/oakwood-commons/gridctl/pkg/grid"
	"github.com/oakwood-commons/gridctl/internal/screen"
	"github.com/oakwood-commons/gridctl/internal/ui"
	"github.com/oakwood-commons/gridctl/pkg/loader"
	"github.com/oakwood-commons/gridctl/pkg/logger"
	"github.com/oakwood-commons/gridctl/pkg/settings"
)

var (
	interactive bool
	output      string // table (default), csv, json
	screenName  string
	viewsFile   string
	searchTerm  string
	whereExpr   string
	filterArgs  []string
	sortField   string
	sortDesc    bool
	pageFlag    int
	pageSize    int
	noColor     bool
	logLevel    int8
)

var (
	stdinIsPiped = func() bool { stat, _ := os.Stdin.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	termGetSize  = term.GetSize
)

var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Browse, filter, and export tabular record collections",
	Long: settings.CliBinaryName + ` presents record collections (JSON, NDJSON, YAML,
TOML, or CSV) as filterable, sortable, paginated list screens. Screens can be
declared in a YAML view config or synthesized from the records themselves.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := newRunSettings(args)
		lgr := logger.Get(params.MinLogLevel)
		ctx := settings.IntoContext(logger.WithLogger(rootCtx, lgr), params)

		s, err := buildScreen(ctx)
		if err != nil {
			return err
		}
		if err := applyStateFlags(s); err != nil {
			return err
		}

		if interactive {
			return ui.Run(s, params.NoColor)
		}
		return renderScreen(cmd.OutOrStdout(), s, output)
	},
}

// newRunSettings collects the per-run configuration from the parsed flags
// and positional arguments.
func newRunSettings(args []string) *settings.Run {
	params := settings.NewCliParams()
	params.MinLogLevel = logLevel
	params.NoColor = noColor
	if len(args) == 1 {
		params.Input = settings.InputSettings{Path: args[0]}
	} else {
		params.Input = settings.InputSettings{FromStdin: true}
	}
	return params
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&interactive, "interactive", "i", false, "open the interactive browser")
	flags.StringVarP(&output, "output", "o", "table", "output format: table|csv|json")
	flags.BoolVar(&noColor, "no-color", false, "disable color output")
	flags.Int8Var(&logLevel, "log-level", 0, "minimum log level (negative = more verbose)")
	addScreenFlags(flags)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(exportCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// buildScreen loads records and the screen definition. Without a view config
// a screen is synthesized from the record fields, with a free-text search
// filter always available.
func buildScreen(ctx context.Context) (*screen.Screen, error) {
	lgr := logger.FromContext(ctx)
	params, ok := settings.FromContext(ctx)
	if !ok {
		params = settings.NewCliParams()
		params.Input = settings.InputSettings{FromStdin: true}
	}

	records, sourceName, err := loadRecords(params.Input)
	if err != nil {
		return nil, err
	}
	lgr.V(1).Info("records loaded", logger.RecordsKey, len(records), "source", sourceName)

	var def config.Screen
	if viewsFile != "" {
		cfg, err := config.LoadFile(viewsFile)
		if err != nil {
			return nil, err
		}
		if screenName == "" {
			return nil, fmt.Errorf("--views requires --screen to pick a screen")
		}
		def, err = cfg.Screen(screenName)
		if err != nil {
			return nil, err
		}
	} else {
		def = config.Synthesize(sourceName, recordFields(records))
	}

	return screen.New(def, records), nil
}

func loadRecords(input settings.InputSettings) (loader.Records, string, error) {
	if input.Path != "" {
		records, err := loader.LoadFile(input.Path)
		if err != nil {
			return nil, "", fmt.Errorf("load %s: %w", input.Path, err)
		}
		return records, input.Path, nil
	}
	if !stdinIsPiped() {
		return nil, "", fmt.Errorf("no input: pass a file or pipe records on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	records, err := loader.Load(data)
	if err != nil {
		return nil, "", err
	}
	return records, "records", nil
}

// recordFields derives column keys from the first record, alphabetically,
// with "id" pulled to the front when present.
func recordFields(records loader.Records) []string {
	if len(records) == 0 {
		return nil
	}
	fields := make([]string, 0, len(records[0]))
	for k := range records[0] {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for i, f := range fields {
		if f == "id" {
			copy(fields[1:i+1], fields[:i])
			fields[0] = "id"
			break
		}
	}
	return fields
}

// applyStateFlags pushes the one-shot CLI state (filters, sort, page) into
// the screen, mirroring what a user would do interactively.
func applyStateFlags(s *screen.Screen) error {
	for _, arg := range filterArgs {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid --filter %q, want key=value", arg)
		}
		if err := s.SetFilter(key, value); err != nil {
			return err
		}
	}
	if searchTerm != "" {
		if err := s.SetFilter(textFilterKey(s), searchTerm); err != nil {
			return err
		}
	}
	if whereExpr != "" {
		if err := s.SetWhere(whereExpr); err != nil {
			return err
		}
	}
	if sortField != "" {
		dir := grid.Ascending
		if sortDesc {
			dir = grid.Descending
		}
		s.SetSort(sortField, dir)
	}
	if pageSize > 0 {
		s.SetPageSize(pageSize)
	}
	if pageFlag > 1 {
		s.SetPage(pageFlag)
	}
	return nil
}

func textFilterKey(s *screen.Screen) string {
	for _, def := range s.Controller().Filters {
		if def.Kind == grid.KindText {
			return def.Key
		}
	}
	return "search"
}

// addScreenFlags registers the screen-selection and state flags shared by
// the root and export commands.
func addScreenFlags(flags *pflag.FlagSet) {
	flags.StringVar(&screenName, "screen", "", "screen name from the view config")
	flags.StringVar(&viewsFile, "views", "", "path to the YAML view config")
	flags.StringVar(&searchTerm, "search", "", "free-text search across columns")
	flags.StringVar(&whereExpr, "where", "", "CEL row filter, e.g. '_.severity >= 3'")
	flags.StringArrayVar(&filterArgs, "filter", nil, "filter value as key=value (repeatable)")
	flags.StringVar(&sortField, "sort", "", "sort by column key")
	flags.BoolVar(&sortDesc, "desc", false, "sort descending")
	flags.IntVar(&pageFlag, "page", 1, "page to display (1-based)")
	flags.IntVar(&pageSize, "page-size", 0, "rows per page (0 = screen default)")
}

func detectTerminalWidth() int {
	if w, _, err := termGetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}
