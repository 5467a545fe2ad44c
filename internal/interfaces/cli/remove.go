package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	plugindomain "github.com/chatterino-tools/cpm/internal/core/domain/plugin"
)

// NewRemoveCommand creates the remove command
func NewRemoveCommand(container *CLIContainer) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <folder>",
		Aliases: []string{"uninstall", "rm"},
		Short:   "Remove an installed plugin",
		Long: `Delete an installed plugin folder from the Chatterino Plugins folder.

You are asked to confirm unless --yes is given or stdin is not a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := args[0]

			if !yes && container.IsTerminal != nil && container.IsTerminal() {
				p, err := container.manager.Info(cmd.Context(), folder)
				if err != nil {
					return err
				}

				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), removePrompt(p))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Removal cancelled.")
					return nil
				}
			}

			p, err := container.manager.Remove(cmd.Context(), folder)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", p.Folder, p.DisplayName(unknownValue))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}

func removePrompt(p *plugindomain.Plugin) string {
	return fmt.Sprintf("Remove plugin %s (%s) and all of its files?", p.Folder, p.DisplayName(unknownValue))
}

var promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

// confirmModel is a single yes/no question. Anything but "y" declines.
type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "enter", "esc", "q", "ctrl+c":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return promptStyle.Render(m.prompt) + " (y/N) "
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	final, err := tea.NewProgram(confirmModel{prompt: prompt}, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return final.(confirmModel).confirmed, nil
}
