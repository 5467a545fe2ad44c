package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	plugindomain "github.com/chatterino-tools/cpm/internal/core/domain/plugin"
)

// NewInfoCommand creates the info command
func NewInfoCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "info <folder>",
		Short: "Show the metadata of an installed plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := container.manager.Info(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderPluginInfo(p))
			return nil
		},
	}
}

func renderPluginInfo(p *plugindomain.Plugin) string {
	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return headerStyle
			}
			return cellStyle
		}).
		Row("Folder", p.Folder).
		Row("Name", p.DisplayName(unknownValue)).
		Row("Description", plugindomain.ValueOr(p.Description, noneValue)).
		Row("Homepage", plugindomain.ValueOr(p.Homepage, noneValue)).
		Row("Authors", strings.Join(p.Authors, ", ")).
		Row("Tags", strings.Join(p.Tags, ", ")).
		Row("Version", plugindomain.ValueOr(p.Version, unknownValue)).
		Row("Licence", plugindomain.ValueOr(p.Licence, noneValue)).
		Row("Permissions", strings.Join(p.PermissionTypes(), ", "))
	return t.Render()
}
