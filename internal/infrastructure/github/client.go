package githubinfra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/chatterino-tools/cpm/internal/core/domain/repository"
)

// DefaultBaseURL is the public GitHub REST API
const DefaultBaseURL = "https://api.github.com"

// Config configures a Client
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	Logger     *log.Logger
	Now        func() time.Time
}

// Client talks to the GitHub REST API for repository metadata and snapshots
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
}

// NewClient creates a new GitHub API client
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		now:        cfg.Now,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// ResolveDefaultBranch returns the repository's default branch
func (c *Client) ResolveDefaultBranch(ctx context.Context, ref repository.Reference) (string, error) {
	endpoint := c.repoURL(ref)
	c.logger.Debug("fetching repository info", "url", endpoint)

	body, err := c.get(ctx, endpoint, "getting GitHub repository info", map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return "", err
	}

	if !gjson.ValidBytes(body) {
		return "", &RequestError{Op: "parsing the GitHub API response", Err: fmt.Errorf("invalid JSON body")}
	}
	branch := gjson.GetBytes(body, "default_branch")
	if branch.Type != gjson.String || branch.Str == "" {
		return "", &RequestError{Op: "parsing the GitHub API response", Err: ErrMissingDefaultBranch}
	}

	return branch.Str, nil
}

// DownloadSnapshot downloads the tar.gz snapshot of branch
func (c *Client) DownloadSnapshot(ctx context.Context, ref repository.Reference, branch string) ([]byte, error) {
	endpoint := c.repoURL(ref) + "/tarball/" + escapeBranch(branch)
	c.logger.Debug("downloading tarball", "url", endpoint)

	body, err := c.get(ctx, endpoint, "downloading the tarball", nil)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("downloaded tarball", "bytes", len(body))
	return body, nil
}

func (c *Client) get(ctx context.Context, endpoint, op string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, c.now()); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	return body, nil
}

func (c *Client) repoURL(ref repository.Reference) string {
	return fmt.Sprintf("%s/repos/%s/%s", c.baseURL, url.PathEscape(ref.Owner), url.PathEscape(ref.Name))
}

func escapeBranch(branch string) string {
	parts := strings.Split(branch, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
