package plugindomain

import (
	"errors"
	"fmt"
)

var (
	ErrPluginsRootNotFound    = errors.New("Plugins folder not found in Chatterino folder")
	ErrPluginAlreadyInstalled = errors.New("plugin is already installed")
	ErrPluginNotFound         = errors.New("plugin not found")
	ErrInvalidPluginName      = errors.New("invalid plugin name")
)

// MetadataParseError reports a present but unusable info.json
type MetadataParseError struct {
	Folder string
	Reason string
	Err    error
}

func (e *MetadataParseError) Error() string {
	msg := fmt.Sprintf("error parsing %s of plugin %q: %s", MetadataFile, e.Folder, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MetadataParseError) Unwrap() error { return e.Err }

// FileWriteError reports a failed filesystem mutation during install or removal
type FileWriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("there was an error %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// DirectoryReadError reports a Plugins folder that could not be listed
type DirectoryReadError struct {
	Path string
	Err  error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("could not read %s: %v", e.Path, e.Err)
}

func (e *DirectoryReadError) Unwrap() error { return e.Err }
