package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/danielwaldman/cadence/internal/cli/formatter"
)

func newGenerateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [idea]",
		Short: "Expand a content idea into 5 repurposed variations",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idea := strings.TrimSpace(strings.Join(args, " "))

			if idea == "" && formatter.IsTerminal() {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("Content idea").
						Placeholder("e.g. why your morning routine matters").
						Value(&idea),
				))
				if err := form.Run(); err != nil {
					return err
				}
				idea = strings.TrimSpace(idea)
			}
			if idea == "" {
				return fmt.Errorf("an idea is required")
			}

			vars, err := app.Source.Generate(cmd.Context(), idea)
			if err != nil {
				return fmt.Errorf("generating variations: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.Variations(vars))
			return nil
		},
	}
	return cmd
}
