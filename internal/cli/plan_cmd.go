package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/danielwaldman/cadence/internal/cli/formatter"
	"github.com/danielwaldman/cadence/internal/tui"
)

func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Open the interactive calendar planner",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !formatter.IsTerminal() {
				return fmt.Errorf("the planner needs an interactive terminal")
			}

			model := tui.New(app.Ident, app.Source, app.Items)
			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running planner: %w", err)
			}
			return nil
		},
	}
}
