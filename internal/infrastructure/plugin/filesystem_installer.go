package plugininfra

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	plugindomain "github.com/chatterino-tools/cpm/internal/core/domain/plugin"
)

// FileSystemInstaller writes normalized snapshot entries into a Plugins folder
type FileSystemInstaller struct {
	logger   *log.Logger
	mkdirAll func(string, os.FileMode) error
}

// NewFileSystemInstaller creates a new filesystem plugin installer
func NewFileSystemInstaller(logger *log.Logger) *FileSystemInstaller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FileSystemInstaller{logger: logger, mkdirAll: os.MkdirAll}
}

// Install creates root/name and writes entries into it in order.
//
// The Plugins root must already exist and root/name must not. The existence
// check happens once before anything is written; a failure part way through
// leaves what was already written on disk.
func (i *FileSystemInstaller) Install(root, name string, entries []plugindomain.ArchiveEntry) (string, error) {
	if !validComponent(name) {
		return "", fmt.Errorf("%w: %q", plugindomain.ErrInvalidPluginName, name)
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", plugindomain.ErrPluginsRootNotFound, root)
	}

	pluginPath := filepath.Join(root, name)
	if _, err := os.Lstat(pluginPath); err == nil {
		return "", fmt.Errorf("%w: a plugin with the name %s is already installed", plugindomain.ErrPluginAlreadyInstalled, name)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", &plugindomain.FileWriteError{Op: "checking", Path: pluginPath, Err: err}
	}

	if err := i.mkdirAll(pluginPath, 0755); err != nil {
		return "", &plugindomain.FileWriteError{Op: "creating", Path: pluginPath, Err: err}
	}
	i.logger.Debug("Wrote", "path", pluginPath)

	for _, entry := range entries {
		if err := i.writeEntry(pluginPath, entry); err != nil {
			return pluginPath, err
		}
	}

	return pluginPath, nil
}

func (i *FileSystemInstaller) writeEntry(pluginPath string, entry plugindomain.ArchiveEntry) error {
	rel := entry.Path()
	for _, c := range entry.Components {
		if !validComponent(c) {
			return &plugindomain.FileWriteError{Op: "creating", Path: rel, Err: fmt.Errorf("unsafe path component %q", c)}
		}
	}
	if len(entry.Components) == 0 {
		return nil
	}

	target := filepath.Join(pluginPath, filepath.Join(entry.Components...))

	if entry.IsDir {
		if err := i.mkdirAll(target, 0755); err != nil {
			return &plugindomain.FileWriteError{Op: "creating", Path: rel, Err: err}
		}
		i.logger.Debug("Wrote", "path", target)
		return nil
	}

	if err := i.mkdirAll(filepath.Dir(target), 0755); err != nil {
		return &plugindomain.FileWriteError{Op: "creating", Path: rel, Err: err}
	}

	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return &plugindomain.FileWriteError{Op: "creating", Path: rel, Err: err}
	}
	if _, err := file.Write(entry.Content); err != nil {
		file.Close()
		return &plugindomain.FileWriteError{Op: "writing to", Path: rel, Err: err}
	}
	if err := file.Close(); err != nil {
		return &plugindomain.FileWriteError{Op: "writing to", Path: rel, Err: err}
	}

	i.logger.Debug("Wrote", "path", target)
	return nil
}

func validComponent(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}
