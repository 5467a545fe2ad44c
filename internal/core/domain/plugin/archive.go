package plugindomain

import "strings"

// ArchiveEntry is one file or directory of a snapshot, relative to the
// snapshot's synthetic root directory.
type ArchiveEntry struct {
	Components []string
	IsDir      bool
	Content    []byte
}

// Path returns the slash separated relative path of the entry
func (e ArchiveEntry) Path() string {
	return strings.Join(e.Components, "/")
}
