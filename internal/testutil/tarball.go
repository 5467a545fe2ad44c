package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"slices"
	"strings"
	"testing"
	"time"
)

// TarEntry describes one member of a test tarball. Names ending in "/"
// become directories.
type TarEntry struct {
	Name     string
	Content  string
	Typeflag byte
	Linkname string
}

// Dir returns a directory entry
func Dir(name string) TarEntry {
	return TarEntry{Name: strings.TrimSuffix(name, "/") + "/", Typeflag: tar.TypeDir}
}

// File returns a regular file entry
func File(name, content string) TarEntry {
	return TarEntry{Name: name, Content: content, Typeflag: tar.TypeReg}
}

// Symlink returns a symbolic link entry
func Symlink(name, target string) TarEntry {
	return TarEntry{Name: name, Typeflag: tar.TypeSymlink, Linkname: target}
}

// BuildTarGz writes entries, in order, into a gzip-compressed tar stream
func BuildTarGz(t testing.TB, entries ...TarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		hdr := &tar.Header{
			Name:     e.Name,
			Typeflag: e.Typeflag,
			Linkname: e.Linkname,
			Mode:     0644,
			ModTime:  time.Unix(1700000000, 0),
		}
		if e.Typeflag == tar.TypeDir {
			hdr.Mode = 0755
		}
		if e.Typeflag == tar.TypeReg {
			hdr.Size = int64(len(e.Content))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", e.Name, err)
		}
		if e.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Content)); err != nil {
				t.Fatalf("write content %s: %v", e.Name, err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	return buf.Bytes()
}

// SnapshotTarGz builds a tarball shaped like a GitHub snapshot: every
// file lives under a single owner-repo-sha/ directory.
func SnapshotTarGz(t testing.TB, root string, files map[string]string) []byte {
	t.Helper()

	entries := []TarEntry{Dir(root)}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		entries = append(entries, File(root+"/"+name, files[name]))
	}
	return BuildTarGz(t, entries...)
}
