package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chatterino-tools/cpm/internal/application/services"
	configdomain "github.com/chatterino-tools/cpm/internal/core/domain/config"
	plugindomain "github.com/chatterino-tools/cpm/internal/core/domain/plugin"
	"github.com/chatterino-tools/cpm/internal/core/domain/repository"
)

type MockPluginManager struct {
	mock.Mock
}

func (m *MockPluginManager) Install(ctx context.Context, rawURL string, isRepo bool) (*services.InstallResult, error) {
	args := m.Called(rawURL, isRepo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.InstallResult), args.Error(1)
}

func (m *MockPluginManager) List(ctx context.Context) ([]*plugindomain.Plugin, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*plugindomain.Plugin), args.Error(1)
}

func (m *MockPluginManager) Info(ctx context.Context, folder string) (*plugindomain.Plugin, error) {
	args := m.Called(folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plugindomain.Plugin), args.Error(1)
}

func (m *MockPluginManager) Remove(ctx context.Context, folder string) (*plugindomain.Plugin, error) {
	args := m.Called(folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plugindomain.Plugin), args.Error(1)
}

type cliRun struct {
	code      int
	stdout    string
	stderr    string
	overrides map[string]interface{}
}

func runCLI(t *testing.T, manager PluginManager, terminal bool, args ...string) cliRun {
	t.Helper()

	var run cliRun
	container := &CLIContainer{
		Build: func(ctx context.Context, overrides map[string]interface{}) (PluginManager, error) {
			run.overrides = overrides
			return manager, nil
		},
		IsTerminal: func() bool { return terminal },
	}

	var stdout, stderr bytes.Buffer
	run.code = Run(context.Background(), container, args, &stdout, &stderr)
	run.stdout = stdout.String()
	run.stderr = stderr.String()
	return run
}

func strPtr(s string) *string { return &s }

func samplePlugin() *plugindomain.Plugin {
	p := plugindomain.NewPlugin("demo")
	p.Name = strPtr("Demo Plugin")
	p.Version = strPtr("1.2.0")
	p.Authors = []string{"alice", "bob"}
	p.Permissions = []plugindomain.Permission{{Type: "Network"}, {Type: "FilesystemRead"}}
	return p
}

func TestGetCommand(t *testing.T) {
	manager := new(MockPluginManager)
	manager.On("Install", "https://github.com/owner/demo", true).Return(&services.InstallResult{
		Reference: repository.Reference{Host: "github.com", Owner: "owner", Name: "demo"},
		Branch:    "main",
		Path:      "/c/Plugins/demo",
		Files:     3,
	}, nil)

	for _, alias := range []string{"get", "install", "i"} {
		t.Run(alias, func(t *testing.T) {
			run := runCLI(t, manager, false, alias, "-r", "https://github.com/owner/demo")

			assert.Equal(t, 0, run.code, run.stderr)
			assert.Equal(t, "Installed owner/demo to /c/Plugins/demo\n", run.stdout)
		})
	}
}

func TestGetCommand_WithoutRepoFlag(t *testing.T) {
	manager := new(MockPluginManager)
	manager.On("Install", "https://github.com/owner/demo", false).Return(nil, services.ErrNonRepoUnsupported)

	run := runCLI(t, manager, false, "get", "https://github.com/owner/demo")

	assert.Equal(t, 1, run.code)
	assert.Equal(t, "Error: non repo plugins are not currently supported\n", run.stderr)
	assert.Empty(t, run.stdout)
}

func TestGetCommand_RequiresOneArgument(t *testing.T) {
	manager := new(MockPluginManager)

	run := runCLI(t, manager, false, "get", "-r")

	assert.Equal(t, 1, run.code)
	assert.Contains(t, run.stderr, "Error:")
	manager.AssertNotCalled(t, "Install", mock.Anything, mock.Anything)
}

func TestGlobalFlagsBecomeOverrides(t *testing.T) {
	manager := new(MockPluginManager)
	manager.On("List").Return([]*plugindomain.Plugin{}, nil)

	run := runCLI(t, manager, false, "ls", "-p", "/opt/chatterino", "--debug", "--api-url", "http://localhost:9999")
	require.Equal(t, 0, run.code, run.stderr)

	assert.Equal(t, map[string]interface{}{
		configdomain.KeyChatterinoPath: "/opt/chatterino",
		configdomain.KeyDebug:          true,
		configdomain.KeyAPIURL:         "http://localhost:9999",
	}, run.overrides)
}

func TestGlobalFlags_UnsetFlagsAreNotOverrides(t *testing.T) {
	manager := new(MockPluginManager)
	manager.On("List").Return([]*plugindomain.Plugin{}, nil)

	run := runCLI(t, manager, false, "list")
	require.Equal(t, 0, run.code, run.stderr)

	assert.Empty(t, run.overrides)
}

func TestBuildFailureIsReported(t *testing.T) {
	container := &CLIContainer{
		Build: func(ctx context.Context, overrides map[string]interface{}) (PluginManager, error) {
			return nil, errors.New("configuration validation failed: bad api url")
		},
	}

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), container, []string{"list"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: configuration validation failed: bad api url\n", stderr.String())
}

func TestListCommand(t *testing.T) {
	unnamed := plugindomain.NewPlugin("bare")
	manager := new(MockPluginManager)
	manager.On("List").Return([]*plugindomain.Plugin{unnamed, samplePlugin()}, nil)

	run := runCLI(t, manager, false, "list")
	require.Equal(t, 0, run.code, run.stderr)

	assert.Contains(t, run.stdout, "Installation Name")
	assert.Contains(t, run.stdout, "Plugin Name")
	assert.Contains(t, run.stdout, "(Demo Plugin)")
	assert.Contains(t, run.stdout, "v1.2.0")
	assert.Contains(t, run.stdout, "(Unknown)")
	assert.Contains(t, run.stdout, "╭")
}

func TestListCommand_Error(t *testing.T) {
	manager := new(MockPluginManager)
	manager.On("List").Return(nil, plugindomain.ErrPluginsRootNotFound)

	run := runCLI(t, manager, false, "list")

	assert.Equal(t, 1, run.code)
	assert.Equal(t, "Error: Plugins folder not found in Chatterino folder\n", run.stderr)
}

func TestRenderPluginInfo(t *testing.T) {
	out := renderPluginInfo(samplePlugin())

	for _, want := range []string{
		"Folder", "demo",
		"Demo Plugin",
		"alice, bob",
		"1.2.0",
		"Network, FilesystemRead",
	} {
		assert.Contains(t, out, want)
	}
	// absent description, homepage and licence
	assert.Contains(t, out, "None")
}

func TestRenderPluginInfo_Placeholders(t *testing.T) {
	out := renderPluginInfo(plugindomain.NewPlugin("bare"))

	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "None")
	assert.NotContains(t, out, "vUnknown")
}

func TestInfoCommand_NotFound(t *testing.T) {
	manager := new(MockPluginManager)
	manager.On("Info", "missing").Return(nil, plugindomain.ErrPluginNotFound)

	run := runCLI(t, manager, false, "info", "missing")

	assert.Equal(t, 1, run.code)
	assert.Contains(t, run.stderr, plugindomain.ErrPluginNotFound.Error())
}

func TestRemoveCommand_NonInteractive(t *testing.T) {
	for _, alias := range []string{"remove", "uninstall", "rm"} {
		t.Run(alias, func(t *testing.T) {
			manager := new(MockPluginManager)
			manager.On("Remove", "demo").Return(samplePlugin(), nil)

			run := runCLI(t, manager, false, alias, "demo")

			assert.Equal(t, 0, run.code, run.stderr)
			assert.Equal(t, "Removed demo (Demo Plugin)\n", run.stdout)
			manager.AssertExpectations(t)
		})
	}
}

func TestRemoveCommand_YesSkipsPrompt(t *testing.T) {
	manager := new(MockPluginManager)
	manager.On("Remove", "demo").Return(samplePlugin(), nil)

	run := runCLI(t, manager, true, "rm", "--yes", "demo")

	assert.Equal(t, 0, run.code, run.stderr)
	manager.AssertExpectations(t)
}

func TestRemoveCommand_LooksUpPluginBeforePrompting(t *testing.T) {
	manager := new(MockPluginManager)
	manager.On("Info", "missing").Return(nil, plugindomain.ErrPluginNotFound)

	run := runCLI(t, manager, true, "remove", "missing")

	assert.Equal(t, 1, run.code)
	assert.Contains(t, run.stderr, plugindomain.ErrPluginNotFound.Error())
	assert.NotContains(t, run.stdout, "(y/N)")
	manager.AssertNotCalled(t, "Remove", mock.Anything)
}

func TestRemovePrompt(t *testing.T) {
	assert.Equal(t, "Remove plugin demo (Demo Plugin) and all of its files?", removePrompt(samplePlugin()))
	assert.Equal(t, "Remove plugin bare (Unknown) and all of its files?", removePrompt(plugindomain.NewPlugin("bare")))
}

func TestConfirmModel(t *testing.T) {
	key := func(s string) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	tests := []struct {
		name      string
		msg       tea.Msg
		confirmed bool
		done      bool
	}{
		{name: "Yes", msg: key("y"), confirmed: true, done: true},
		{name: "UpperYes", msg: key("Y"), confirmed: true, done: true},
		{name: "No", msg: key("n"), done: true},
		{name: "EnterDefaultsToNo", msg: tea.KeyMsg{Type: tea.KeyEnter}, done: true},
		{name: "CtrlC", msg: tea.KeyMsg{Type: tea.KeyCtrlC}, done: true},
		{name: "OtherKeyIgnored", msg: key("x")},
		{name: "NonKeyIgnored", msg: tea.WindowSizeMsg{Width: 80, Height: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, cmd := confirmModel{prompt: "Remove?"}.Update(tt.msg)
			m := updated.(confirmModel)

			assert.Equal(t, tt.confirmed, m.confirmed)
			assert.Equal(t, tt.done, m.done)
			if tt.done {
				assert.NotNil(t, cmd)
			} else {
				assert.Nil(t, cmd)
			}
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	m := confirmModel{prompt: "Remove plugin?"}
	assert.Contains(t, m.View(), "Remove plugin?")
	assert.Contains(t, m.View(), "(y/N)")

	m.done = true
	assert.Empty(t, m.View())
}

func TestVersionFlag(t *testing.T) {
	run := runCLI(t, new(MockPluginManager), false, "--version")

	assert.Equal(t, 0, run.code)
	assert.Contains(t, run.stdout, "cpm version "+Version)
}
