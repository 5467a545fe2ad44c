package pathsinfra

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// PluginsDir is the folder inside the Chatterino directory that holds plugins
const PluginsDir = "Plugins"

const (
	windowsProductFolder = "Chatterino2"
	unixRelativePath     = ".local/share/chatterino"
)

var ErrUnsupportedPlatform = errors.New("unsupported OS, cannot locate Chatterino folder. Please use --path instead")

// MissingEnvError reports an unset variable needed for the default path
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("could not read %s environment variable. Please use --path instead", e.Name)
}

// Resolver computes the Chatterino directory for the running platform
type Resolver struct {
	GOOS      string
	LookupEnv func(string) (string, bool)
}

// NewResolver creates a resolver for the current process
func NewResolver() *Resolver {
	return &Resolver{GOOS: runtime.GOOS, LookupEnv: os.LookupEnv}
}

// DefaultChatterinoPath returns the platform default Chatterino directory.
// It does not check that the directory exists.
func (r *Resolver) DefaultChatterinoPath() (string, error) {
	switch r.GOOS {
	case "windows":
		appData, err := r.env("APPDATA", "%APPDATA%")
		if err != nil {
			return "", err
		}
		return filepath.Join(appData, windowsProductFolder), nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		home, err := r.env("HOME", "$HOME")
		if err != nil {
			return "", err
		}
		return filepath.Join(home, filepath.FromSlash(unixRelativePath)), nil
	default:
		return "", ErrUnsupportedPlatform
	}
}

// Resolve returns override when set, the platform default otherwise
func (r *Resolver) Resolve(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return r.DefaultChatterinoPath()
}

// PluginsRoot returns the Plugins directory inside a Chatterino directory
func PluginsRoot(chatterinoPath string) string {
	return filepath.Join(chatterinoPath, PluginsDir)
}

func (r *Resolver) env(name, display string) (string, error) {
	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(name)
	if !ok || v == "" {
		return "", &MissingEnvError{Name: display}
	}
	return v, nil
}
