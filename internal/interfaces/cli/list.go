package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	plugindomain "github.com/chatterino-tools/cpm/internal/core/domain/plugin"
)

const (
	unknownValue = "Unknown"
	noneValue    = "None"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// NewListCommand creates the list command
func NewListCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed plugins",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plugins, err := container.manager.List(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderPluginTable(plugins))
			return nil
		},
	}
}

func renderPluginTable(plugins []*plugindomain.Plugin) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Installation Name", "Plugin Name", "Version").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, p := range plugins {
		t.Row(
			p.Folder,
			"("+p.DisplayName(unknownValue)+")",
			p.DisplayVersion(unknownValue),
		)
	}
	return t.Render()
}
