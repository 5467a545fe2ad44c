package repository

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// GitHubHost is the only hosting service plugins can be installed from
const GitHubHost = "github.com"

var (
	ErrInvalidURL      = errors.New("invalid URL")
	ErrUnsupportedHost = errors.New("not a GitHub repository URL")
	ErrMalformedPath   = errors.New("invalid GitHub repository URL")
)

var repoPathPattern = regexp.MustCompile(`^/([^/]+)/([^/]+)/?$`)

// Reference identifies a repository on the hosting service
type Reference struct {
	Host  string
	Owner string
	Name  string
}

// ParseReference parses a repository URL such as https://github.com/owner/name
func ParseReference(raw string) (Reference, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Reference{}, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	host := strings.ToLower(u.Hostname())
	if host != GitHubHost {
		return Reference{}, fmt.Errorf("%w: host %q", ErrUnsupportedHost, u.Hostname())
	}

	m := repoPathPattern.FindStringSubmatch(u.Path)
	if m == nil || isDotSegment(m[1]) || isDotSegment(m[2]) {
		return Reference{}, fmt.Errorf("%w: expected /<owner>/<repository>, got %q", ErrMalformedPath, u.Path)
	}

	return Reference{Host: host, Owner: m[1], Name: m[2]}, nil
}

func isDotSegment(s string) bool {
	return s == "." || s == ".."
}

// FullName returns the owner/name form of the reference
func (r Reference) FullName() string {
	return r.Owner + "/" + r.Name
}

// String implements the Stringer interface
func (r Reference) String() string {
	return "https://" + r.Host + "/" + r.FullName()
}
