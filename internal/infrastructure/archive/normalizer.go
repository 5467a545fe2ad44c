package archiveinfra

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	plugindomain "github.com/chatterino-tools/cpm/internal/core/domain/plugin"
)

// ArchiveReadError reports a snapshot that is not a readable tar.gz stream
type ArchiveReadError struct {
	Entry string
	Err   error
}

func (e *ArchiveReadError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("there was an error reading %s from the tarball: %v", e.Entry, e.Err)
	}
	return fmt.Sprintf("there was an error reading the tarball: %v", e.Err)
}

func (e *ArchiveReadError) Unwrap() error { return e.Err }

var errPathTraversal = errors.New("path escapes the archive root")

// Normalize decompresses a snapshot tarball and returns its entries in
// archive order with the leading <owner>-<repo>-<sha>/ directory removed.
// Entries that are the root itself are dropped, as are links and other
// non-regular entries. A path that appears twice keeps its first position
// and takes the later entry's content, as extracting with tar would.
func Normalize(data []byte) ([]plugindomain.ArchiveEntry, error) {
	gzReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ArchiveReadError{Err: err}
	}
	defer gzReader.Close()

	tarReader := tar.NewReader(gzReader)
	var entries []plugindomain.ArchiveEntry
	seen := make(map[string]int)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ArchiveReadError{Err: err}
		}

		var isDir bool
		switch header.Typeflag {
		case tar.TypeDir:
			isDir = true
		case tar.TypeReg:
		default:
			continue
		}

		components, err := splitPath(header.Name)
		if err != nil {
			return nil, &ArchiveReadError{Entry: header.Name, Err: err}
		}
		if len(components) < 2 {
			continue
		}

		entry := plugindomain.ArchiveEntry{
			Components: components[1:],
			IsDir:      isDir,
		}
		if !isDir {
			content, err := io.ReadAll(tarReader)
			if err != nil {
				return nil, &ArchiveReadError{Entry: header.Name, Err: err}
			}
			entry.Content = content
		}

		if idx, ok := seen[entry.Path()]; ok {
			entries[idx] = entry
			continue
		}
		seen[entry.Path()] = len(entries)
		entries = append(entries, entry)
	}

	return entries, nil
}

// splitPath turns a tar header name into path components
func splitPath(name string) ([]string, error) {
	var components []string
	for _, part := range strings.Split(strings.ReplaceAll(name, "\\", "/"), "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			return nil, errPathTraversal
		}
		components = append(components, part)
	}
	return components, nil
}

// TarGzNormalizer adapts Normalize to the ArchiveNormalizer port
type TarGzNormalizer struct{}

func (TarGzNormalizer) Normalize(data []byte) ([]plugindomain.ArchiveEntry, error) {
	return Normalize(data)
}
