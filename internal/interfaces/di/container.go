package di

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/chatterino-tools/cpm/internal/application/services"
	configdomain "github.com/chatterino-tools/cpm/internal/core/domain/config"
	archiveinfra "github.com/chatterino-tools/cpm/internal/infrastructure/archive"
	configinfra "github.com/chatterino-tools/cpm/internal/infrastructure/config"
	githubinfra "github.com/chatterino-tools/cpm/internal/infrastructure/github"
	pathsinfra "github.com/chatterino-tools/cpm/internal/infrastructure/paths"
	plugininfra "github.com/chatterino-tools/cpm/internal/infrastructure/plugin"
	"github.com/chatterino-tools/cpm/internal/interfaces/cli"
	"github.com/chatterino-tools/cpm/internal/logging"
)

// Container holds all application dependencies
type Container struct {
	// Configuration
	ConfigPath string
	Config     configdomain.Config

	// Logger is created once and reconfigured in place when flags are
	// known, so the signal handler can hold on to it.
	Logger    *log.Logger
	LogOutput io.Writer

	PluginService *services.PluginService

	CLIContainer *cli.CLIContainer

	env *configinfra.EnvLoader
}

// NewContainer creates the dependency injection container. Components are
// built lazily by BuildPluginManager once command line flags are parsed.
func NewContainer() *Container {
	c := &Container{
		ConfigPath: configinfra.DefaultConfigPath(),
		LogOutput:  os.Stderr,
		Logger:     logging.New(os.Stderr, false),
		env:        configinfra.NewEnvLoader(),
	}

	c.CLIContainer = &cli.CLIContainer{
		Build:      c.BuildPluginManager,
		IsTerminal: stdinIsTerminal,
	}
	return c
}

// BuildPluginManager loads the layered configuration and wires the plugin service
func (c *Container) BuildPluginManager(ctx context.Context, overrides map[string]interface{}) (cli.PluginManager, error) {
	repo := configinfra.NewRepository(
		configinfra.NewConfigValidator(),
		configinfra.NewFileLoader(c.ConfigPath),
		c.env,
		configinfra.NewFlagLoader(overrides),
	)

	cfg, snap, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.Config = cfg

	logging.Configure(c.Logger, c.LogOutput, cfg.Debug)
	for key, entry := range snap {
		c.Logger.Debug("config", "key", key, "source", entry.Source)
	}

	client := githubinfra.NewClient(githubinfra.Config{
		BaseURL:   cfg.APIURL,
		UserAgent: UserAgent(),
		Logger:    c.Logger,
		Now:       time.Now,
	})

	c.PluginService = services.NewPluginService(
		client,
		archiveinfra.TarGzNormalizer{},
		plugininfra.NewFileSystemInstaller(c.Logger),
		plugininfra.NewFileSystemStore(c.Logger),
		pathsinfra.NewResolver(),
		c.Logger,
		cfg.ChatterinoPath,
	)
	return c.PluginService, nil
}

// GetCLIContainer returns the CLI container for command execution
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}

// UserAgent identifies cpm to the GitHub API
func UserAgent() string {
	return "Chatterino Plugin Manager " + cli.Version
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
