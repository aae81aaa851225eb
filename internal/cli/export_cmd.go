package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielwaldman/cadence/internal/calendar"
	"github.com/danielwaldman/cadence/internal/export"
	"github.com/danielwaldman/cadence/internal/schedule"
)

// timeNow is swapped out by tests that pin the current date.
var timeNow = time.Now

func newExportCmd(app *App) *cobra.Command {
	var modeFlag, anchorFlag, targetFlag, outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the visible schedule as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, anchor, err := resolveView(modeFlag, anchorFlag)
			if err != nil {
				return err
			}
			target, err := export.ParseTarget(targetFlag)
			if err != nil {
				return err
			}

			sched := schedule.New(app.Items, app.Logger)
			from, to := calendar.Range(mode, anchor)
			if err := sched.Refresh(cmd.Context(), app.Ident, from, to); err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			rows := export.BuildRows(target, mode, anchor, sched)

			if outFlag == "-" {
				return export.WriteCSV(cmd.OutOrStdout(), rows)
			}
			if outFlag == "" {
				outFlag = export.Filename(target)
			}
			f, err := os.Create(outFlag)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer f.Close()
			if err := export.WriteCSV(f, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(rows)-1, outFlag)
			return nil
		},
	}
	addViewFlags(cmd.Flags(), &modeFlag, &anchorFlag)
	cmd.Flags().StringVarP(&targetFlag, "target", "t", "all", "export target: twitter or all")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "output file (- for stdout)")
	return cmd
}
