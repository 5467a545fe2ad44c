package plugindomain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MetadataFile is the per-plugin declaration file read by list, info and remove
const MetadataFile = "info.json"

// Permission is a capability a plugin asks Chatterino for
type Permission struct {
	Type string `json:"type"`
}

// Plugin is an installed plugin as described by its metadata file
type Plugin struct {
	Folder      string       `json:"folder"`
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Homepage    *string      `json:"homepage,omitempty"`
	Authors     []string     `json:"authors"`
	Tags        []string     `json:"tags"`
	Version     *string      `json:"version,omitempty"`
	Licence     *string      `json:"licence,omitempty"`
	Permissions []Permission `json:"permissions"`
}

// NewPlugin creates an empty plugin for the given folder
func NewPlugin(folder string) *Plugin {
	return &Plugin{
		Folder:      folder,
		Authors:     []string{},
		Tags:        []string{},
		Permissions: []Permission{},
	}
}

// DisplayName returns the declared name or the fallback
func (p *Plugin) DisplayName(fallback string) string {
	return ValueOr(p.Name, fallback)
}

// DisplayVersion renders the declared version with a single "v" prefix.
// Versions that are not semver are shown as declared.
func (p *Plugin) DisplayVersion(fallback string) string {
	if p.Version == nil || strings.TrimSpace(*p.Version) == "" {
		return fallback
	}
	if v, err := semver.NewVersion(*p.Version); err == nil {
		return "v" + v.String()
	}
	return "v" + strings.TrimPrefix(*p.Version, "v")
}

// PermissionTypes returns the permission kinds in declaration order
func (p *Plugin) PermissionTypes() []string {
	types := make([]string, 0, len(p.Permissions))
	for _, perm := range p.Permissions {
		types = append(types, perm.Type)
	}
	return types
}

// ValueOr returns *s, or fallback when the field is absent
func ValueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
