package pluginports

import (
	"context"

	plugindomain "github.com/chatterino-tools/cpm/internal/core/domain/plugin"
	"github.com/chatterino-tools/cpm/internal/core/domain/repository"
)

// RepositoryClient fetches repository metadata and snapshots from the hosting service
type RepositoryClient interface {
	// ResolveDefaultBranch returns the name of the repository's default branch
	ResolveDefaultBranch(ctx context.Context, ref repository.Reference) (string, error)

	// DownloadSnapshot returns the tar.gz snapshot of branch
	DownloadSnapshot(ctx context.Context, ref repository.Reference, branch string) ([]byte, error)
}

// ArchiveNormalizer turns a snapshot into root-relative entries
type ArchiveNormalizer interface {
	Normalize(data []byte) ([]plugindomain.ArchiveEntry, error)
}

// Installer writes entries to root/name
type Installer interface {
	Install(root, name string, entries []plugindomain.ArchiveEntry) (string, error)
}

// MetadataStore reads and removes installed plugins
type MetadataStore interface {
	Enumerate(root string) ([]*plugindomain.Plugin, error)
	Find(root, name string) (*plugindomain.Plugin, error)
	Remove(root, name string) (*plugindomain.Plugin, error)
}

// PathResolver locates the Chatterino directory
type PathResolver interface {
	Resolve(override string) (string, error)
}
