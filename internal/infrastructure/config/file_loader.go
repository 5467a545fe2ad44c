package configinfra

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	configdomain "github.com/chatterino-tools/cpm/internal/core/domain/config"
	configports "github.com/chatterino-tools/cpm/internal/core/ports/config"
)

// fileConfig is the on-disk layout of config.yaml
type fileConfig struct {
	ChatterinoPath string `yaml:"chatterino_path"`
	APIURL         string `yaml:"api_url"`
	Debug          *bool  `yaml:"debug"`
}

// FileLoader reads the optional YAML config file (priority 3)
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader { return &FileLoader{path: path} }

func (l *FileLoader) Name() string { return "file" }

func (l *FileLoader) Path() string { return l.path }

func (l *FileLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	snap := make(configdomain.Snapshot)
	if l.path == "" {
		return snap, nil
	}

	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", l.path, err)
	}

	toEntry := func(field string, v interface{}) {
		snap[field] = configdomain.Entry{Key: field, Value: v, Source: "file", SourcePath: l.path, Priority: 3}
	}
	if fc.ChatterinoPath != "" {
		toEntry(configdomain.KeyChatterinoPath, fc.ChatterinoPath)
	}
	if fc.APIURL != "" {
		toEntry(configdomain.KeyAPIURL, fc.APIURL)
	}
	if fc.Debug != nil {
		toEntry(configdomain.KeyDebug, *fc.Debug)
	}

	return snap, nil
}

// DefaultConfigPath returns CPM_CONFIG_FILE, or config.yaml in the user
// config directory. An empty string means no config file is used.
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cpm", "config.yaml")
}

var _ configports.Loader = (*FileLoader)(nil)
