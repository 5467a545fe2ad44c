package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command
func NewGetCommand(container *CLIContainer) *cobra.Command {
	var isRepo bool

	cmd := &cobra.Command{
		Use:     "get <url>",
		Aliases: []string{"install", "i"},
		Short:   "Install a plugin from a GitHub repository",
		Long: `Download the default branch of a GitHub repository and install it into
the Chatterino Plugins folder under the repository name.

Examples:
  cpm get -r https://github.com/owner/plugin
  cpm i --repo https://github.com/owner/plugin --path ~/chatterino`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := container.manager.Install(cmd.Context(), args[0], isRepo)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s to %s\n", result.Reference.FullName(), result.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&isRepo, "repo", "r", false, "Treat the argument as a GitHub repository URL")

	return cmd
}
