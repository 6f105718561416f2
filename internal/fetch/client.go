package fetch

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const githubAPIBase = "https://api.github.com"

// Release represents a GitHub release.
type Release struct {
	TagName   string    `json:"tag_name"`
	Assets    []Asset   `json:"assets"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Version returns the release version without the tag's "v" prefix.
func (r *Release) Version() string {
	return strings.TrimPrefix(r.TagName, "v")
}

// Asset represents a downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Client fetches release metadata and assets for one GitHub repository.
type Client struct {
	repo    string // "owner/repo"
	apiBase string
	http    *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIBase overrides the GitHub API base URL (useful for testing).
func WithAPIBase(base string) Option {
	return func(c *Client) {
		c.apiBase = base
	}
}

// WithHTTPClient sets a custom retryable HTTP client.
func WithHTTPClient(h *retryablehttp.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a Client for the given "owner/repo".
func New(repo string, opts ...Option) *Client {
	h := retryablehttp.NewClient()
	h.RetryMax = 2
	h.HTTPClient.Timeout = 60 * time.Second
	h.Logger = nil // suppress retryablehttp's default logging

	c := &Client{
		repo:    repo,
		apiBase: githubAPIBase,
		http:    h,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestRelease fetches the latest release.
func (c *Client) LatestRelease() (*Release, error) {
	return c.fetchRelease(fmt.Sprintf("%s/repos/%s/releases/latest", c.apiBase, c.repo))
}

// ReleaseByTag fetches a release by tag, tolerating a missing "v" prefix.
func (c *Client) ReleaseByTag(tag string) (*Release, error) {
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	return c.fetchRelease(fmt.Sprintf("%s/repos/%s/releases/tags/%s", c.apiBase, c.repo, tag))
}

func (c *Client) fetchRelease(url string) (*Release, error) {
	resp, err := c.get(url, "application/vnd.github+json")
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no release found at %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading release response: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	return &release, nil
}

// get issues a GET with the standard headers. The optional GITHUB_TOKEN env
// var raises API rate limits.
func (c *Client) get(url, accept string) (*http.Response, error) {
	req, err := retryablehttp.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	req.Header.Set("User-Agent", "sidekit-fetch")
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "token "+token)
	}
	return c.http.Do(req)
}
