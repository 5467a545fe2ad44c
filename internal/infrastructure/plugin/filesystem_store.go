package plugininfra

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	plugindomain "github.com/chatterino-tools/cpm/internal/core/domain/plugin"
)

// FileSystemStore reads plugin metadata from a Plugins folder
type FileSystemStore struct {
	logger *log.Logger
}

// NewFileSystemStore creates a new filesystem-based metadata store
func NewFileSystemStore(logger *log.Logger) *FileSystemStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FileSystemStore{logger: logger}
}

// ParsePlugin reads dir/info.json. It returns (nil, nil) when the folder
// has no metadata file, meaning it is not a plugin.
func (s *FileSystemStore) ParsePlugin(dir string) (*plugindomain.Plugin, error) {
	folder := filepath.Base(dir)
	infoPath := filepath.Join(dir, plugindomain.MetadataFile)

	info, err := os.Stat(infoPath)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, nil
	}
	if err != nil {
		return nil, &plugindomain.MetadataParseError{Folder: folder, Reason: "there was an error reading the file", Err: err}
	}

	data, err := os.ReadFile(infoPath)
	if err != nil {
		return nil, &plugindomain.MetadataParseError{Folder: folder, Reason: "there was an error reading the file", Err: err}
	}

	return plugindomain.ParseMetadata(folder, data)
}

// Enumerate returns every plugin directly under root, sorted by folder.
// Folders without metadata are skipped; malformed metadata fails the call.
func (s *FileSystemStore) Enumerate(root string) ([]*plugindomain.Plugin, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &plugindomain.DirectoryReadError{Path: root, Err: err}
	}

	plugins := []*plugindomain.Plugin{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		p, err := s.ParsePlugin(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		if p == nil {
			s.logger.Debug("skipping folder without metadata", "folder", entry.Name())
			continue
		}
		plugins = append(plugins, p)
	}

	sort.Slice(plugins, func(i, j int) bool { return plugins[i].Folder < plugins[j].Folder })
	return plugins, nil
}

// Find returns the installed plugin whose folder is name
func (s *FileSystemStore) Find(root, name string) (*plugindomain.Plugin, error) {
	plugins, err := s.Enumerate(root)
	if err != nil {
		return nil, err
	}

	for _, p := range plugins {
		if p.Folder == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", plugindomain.ErrPluginNotFound, name)
}

// Remove deletes the folder of the installed plugin called name
func (s *FileSystemStore) Remove(root, name string) (*plugindomain.Plugin, error) {
	p, err := s.Find(root, name)
	if err != nil {
		return nil, err
	}

	target := filepath.Join(root, p.Folder)
	if err := os.RemoveAll(target); err != nil {
		return nil, &plugindomain.FileWriteError{Op: "removing", Path: target, Err: err}
	}

	s.logger.Debug("removed plugin folder", "path", target)
	return p, nil
}
