package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielwaldman/cadence/internal/calendar"
	"github.com/danielwaldman/cadence/internal/cli/formatter"
	"github.com/danielwaldman/cadence/internal/domain"
	"github.com/danielwaldman/cadence/internal/schedule"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect and edit the content schedule",
	}
	cmd.AddCommand(
		newScheduleListCmd(app),
		newScheduleAddCmd(app),
		newScheduleRmCmd(app),
	)
	return cmd
}

func newScheduleListCmd(app *App) *cobra.Command {
	var modeFlag, anchorFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the scheduled items for the visible range",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, anchor, err := resolveView(modeFlag, anchorFlag)
			if err != nil {
				return err
			}

			sched := schedule.New(app.Items, app.Logger)
			from, to := calendar.Range(mode, anchor)
			if err := sched.Refresh(cmd.Context(), app.Ident, from, to); err != nil {
				return fmt.Errorf("loading schedule: %w", err)
			}

			out := cmd.OutOrStdout()
			if mode == calendar.ViewMonth {
				fmt.Fprint(out, formatter.Month(anchor, sched))
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, formatter.Items(mode, anchor, sched))
			return nil
		},
	}
	addViewFlags(cmd.Flags(), &modeFlag, &anchorFlag)
	return cmd
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var platformFlag string

	cmd := &cobra.Command{
		Use:   "add <date> <content>",
		Short: "Schedule content on a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := domain.ParseDay(args[0])
			if err != nil {
				return err
			}
			platform, ok := domain.ParsePlatform(platformFlag)
			if !ok {
				return fmt.Errorf("unknown platform %q", platformFlag)
			}

			item, err := app.Items.Insert(cmd.Context(), app.Ident, day, args[1], platform)
			if err != nil {
				return fmt.Errorf("scheduling item: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scheduled %s on %s\n", item.ID, item.Day.Key())
			return nil
		},
	}
	cmd.Flags().StringVarP(&platformFlag, "platform", "p", "All", "target platform")
	return cmd
}

func newScheduleRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a scheduled item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Items.Delete(cmd.Context(), app.Ident, args[0]); err != nil {
				return fmt.Errorf("deleting item: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

// resolveView parses the shared --mode/--anchor flags.
func resolveView(modeFlag, anchorFlag string) (calendar.ViewMode, domain.Day, error) {
	mode, err := calendar.ParseViewMode(modeFlag)
	if err != nil {
		return "", domain.Day{}, err
	}
	if anchorFlag == "" {
		return mode, calendar.Today(mode, timeNow()), nil
	}
	anchor, err := domain.ParseDay(anchorFlag)
	if err != nil {
		return "", domain.Day{}, err
	}
	return mode, anchor, nil
}
