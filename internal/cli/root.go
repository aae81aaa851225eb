// Package cli wires the cadence command tree.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/danielwaldman/cadence/internal/config"
	"github.com/danielwaldman/cadence/internal/identity"
	"github.com/danielwaldman/cadence/internal/store"
	"github.com/danielwaldman/cadence/internal/variations"
)

// App holds the shared dependencies used by CLI commands.
type App struct {
	Config config.Config
	Source variations.Source
	Items  store.ItemStore
	Ident  identity.Identity
	Logger *zap.Logger
}

// NewRootCmd creates the top-level "cadence" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cadence",
		Short:         "Content idea repurposer and schedule planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newScheduleCmd(app),
		newExportCmd(app),
		newPlanCmd(app),
		newServeCmd(app),
	)

	return root
}

// addViewFlags registers the shared view-selection flags.
func addViewFlags(fs *pflag.FlagSet, mode, anchor *string) {
	fs.StringVarP(mode, "mode", "m", "month", "view mode: month, week or day")
	fs.StringVarP(anchor, "anchor", "a", "", "anchor date (YYYY-MM-DD, default today)")
}
