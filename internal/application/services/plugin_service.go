package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	plugindomain "github.com/chatterino-tools/cpm/internal/core/domain/plugin"
	"github.com/chatterino-tools/cpm/internal/core/domain/repository"
	pluginports "github.com/chatterino-tools/cpm/internal/core/ports/plugin"
	pathsinfra "github.com/chatterino-tools/cpm/internal/infrastructure/paths"
)

var ErrNonRepoUnsupported = errors.New("non repo plugins are not currently supported")

// InstallResult describes a completed install
type InstallResult struct {
	Reference repository.Reference
	Branch    string
	Path      string
	Files     int
}

// PluginService is the single entry point for install, list, info and remove
type PluginService struct {
	client     pluginports.RepositoryClient
	normalizer pluginports.ArchiveNormalizer
	installer  pluginports.Installer
	store      pluginports.MetadataStore
	paths      pluginports.PathResolver
	logger     *log.Logger

	// chatterinoPath is the explicit --path override; empty means platform default
	chatterinoPath string
}

// NewPluginService creates a new plugin service
func NewPluginService(
	client pluginports.RepositoryClient,
	normalizer pluginports.ArchiveNormalizer,
	installer pluginports.Installer,
	store pluginports.MetadataStore,
	paths pluginports.PathResolver,
	logger *log.Logger,
	chatterinoPath string,
) *PluginService {
	return &PluginService{
		client:         client,
		normalizer:     normalizer,
		installer:      installer,
		store:          store,
		paths:          paths,
		logger:         logger,
		chatterinoPath: chatterinoPath,
	}
}

// PluginsRoot resolves the Plugins directory for this invocation
func (s *PluginService) PluginsRoot() (string, error) {
	base, err := s.paths.Resolve(s.chatterinoPath)
	if err != nil {
		return "", fmt.Errorf("Chatterino path could not be automatically detected and no path was explicitly specified: %w", err)
	}
	return pathsinfra.PluginsRoot(base), nil
}

// Install downloads the default branch of the repository at rawURL and
// installs it as Plugins/<repository name>.
func (s *PluginService) Install(ctx context.Context, rawURL string, isRepo bool) (*InstallResult, error) {
	if !isRepo {
		return nil, ErrNonRepoUnsupported
	}

	ref, err := repository.ParseReference(rawURL)
	if err != nil {
		return nil, err
	}

	root, err := s.PluginsRoot()
	if err != nil {
		return nil, err
	}

	branch, err := s.client.ResolveDefaultBranch(ctx, ref)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Default branch: "+branch, "repository", ref.FullName())

	data, err := s.client.DownloadSnapshot(ctx, ref, branch)
	if err != nil {
		return nil, err
	}

	entries, err := s.normalizer.Normalize(data)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("extracted tarball", "entries", len(entries))

	path, err := s.installer.Install(root, ref.Name, entries)
	if err != nil {
		return nil, err
	}

	return &InstallResult{Reference: ref, Branch: branch, Path: path, Files: len(entries)}, nil
}

// List returns every installed plugin
func (s *PluginService) List(ctx context.Context) ([]*plugindomain.Plugin, error) {
	root, err := s.PluginsRoot()
	if err != nil {
		return nil, err
	}
	return s.store.Enumerate(root)
}

// Info returns the installed plugin in folder
func (s *PluginService) Info(ctx context.Context, folder string) (*plugindomain.Plugin, error) {
	root, err := s.PluginsRoot()
	if err != nil {
		return nil, err
	}
	return s.store.Find(root, folder)
}

// Remove deletes the installed plugin in folder
func (s *PluginService) Remove(ctx context.Context, folder string) (*plugindomain.Plugin, error) {
	root, err := s.PluginsRoot()
	if err != nil {
		return nil, err
	}

	p, err := s.store.Remove(root, folder)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Removed plugin", "folder", p.Folder)
	return p, nil
}
