package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/gridctl/pkg/logger"
	"github.com/oakwood-commons/gridctl/pkg/settings"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the filtered record collection to CSV",
	Long: `Export serializes the entire filtered collection, not just one page,
so the output matches what filtering shows across all pages.`,
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

		out, err := s.ExportCSV()
		if err != nil {
			return err
		}
		if exportOut == "" || exportOut == "-" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		if err := os.WriteFile(exportOut, []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		lgr.Info("export written", "path", exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")
	addScreenFlags(exportCmd.Flags())
}
