package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/chatterino-tools/cpm/internal/application/services"
	configdomain "github.com/chatterino-tools/cpm/internal/core/domain/config"
	plugindomain "github.com/chatterino-tools/cpm/internal/core/domain/plugin"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// PluginManager is the application surface the commands drive
type PluginManager interface {
	Install(ctx context.Context, rawURL string, isRepo bool) (*services.InstallResult, error)
	List(ctx context.Context) ([]*plugindomain.Plugin, error)
	Info(ctx context.Context, folder string) (*plugindomain.Plugin, error)
	Remove(ctx context.Context, folder string) (*plugindomain.Plugin, error)
}

// ManagerFactory builds the plugin manager once flags are parsed. overrides
// only holds the flags the user actually set, keyed like the config file.
type ManagerFactory func(ctx context.Context, overrides map[string]interface{}) (PluginManager, error)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	Build ManagerFactory

	// IsTerminal reports whether stdin can answer a confirmation prompt
	IsTerminal func() bool

	manager PluginManager
}

// NewRootCommand creates the cpm command tree
func NewRootCommand(container *CLIContainer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cpm",
		Short: "Chatterino Plugin Manager",
		Long: `cpm installs Chatterino plugins straight from their GitHub repositories
and manages the plugins already present in the Chatterino Plugins folder.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			manager, err := container.Build(cmd.Context(), flagOverrides(cmd))
			if err != nil {
				return err
			}
			container.manager = manager
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().StringP("path", "p", "", "Path to the Chatterino folder (default is the platform data folder)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("api-url", configdomain.DefaultAPIURL, "GitHub API base URL")

	rootCmd.AddCommand(NewGetCommand(container))
	rootCmd.AddCommand(NewListCommand(container))
	rootCmd.AddCommand(NewInfoCommand(container))
	rootCmd.AddCommand(NewRemoveCommand(container))

	return rootCmd
}

// flagOverrides collects explicitly set persistent flags as config values
func flagOverrides(cmd *cobra.Command) map[string]interface{} {
	overrides := make(map[string]interface{})
	flags := cmd.Flags()

	if flags.Changed("path") {
		v, _ := flags.GetString("path")
		overrides[configdomain.KeyChatterinoPath] = v
	}
	if flags.Changed("api-url") {
		v, _ := flags.GetString("api-url")
		overrides[configdomain.KeyAPIURL] = v
	}
	if flags.Changed("debug") {
		v, _ := flags.GetBool("debug")
		overrides[configdomain.KeyDebug] = v
	}
	return overrides
}

func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Run executes the command tree with args and reports any error on stderr.
// It returns the process exit code.
func Run(ctx context.Context, container *CLIContainer, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand(container)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// Execute runs cpm with the process arguments and exits on failure
func Execute(ctx context.Context, container *CLIContainer) {
	if code := Run(ctx, container, os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}
