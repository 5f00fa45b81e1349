// Package release resolves the GreaterDiscord package from the GitHub release listing
// and downloads release assets.
//
// Resolving and downloading are separate calls: the client never writes to disk, so a
// failed persist can be told apart from a failed network request.
package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/greaterdiscord/installer/internal/messages"
)

// Resolve failure causes. Each is reported wrapped in *Error.
var (
	ErrNoResponse      = errors.New(messages.ReleaseNoResponse)
	ErrNoListingBody   = errors.New(messages.ReleaseNoListingBody)
	ErrNoMatchingAsset = errors.New(messages.ReleaseNoMatchingAsset)
	ErrNoAssetURL      = errors.New(messages.ReleaseNoAssetURL)
)

// Error reports why the release listing could not be resolved to an asset.
type Error struct {
	URL   string
	Cause error
	// Err is the underlying transport or decode error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(messages.ReleaseErrorFmt, e.URL, fmt.Errorf("%w: %v", e.Cause, e.Err))
	}
	return fmt.Sprintf(messages.ReleaseErrorFmt, e.URL, e.Cause)
}

// Unwrap exposes the cause sentinel for errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Cause, e.Err}
	}
	return []error{e.Cause}
}

// StatusError reports a download that completed with a non-2xx status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(messages.ReleaseStatusErrorFmt, e.Code)
}

// IsStatusError reports whether err carries a non-2xx download status and returns it.
func IsStatusError(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// Asset is a resolved release asset.
type Asset struct {
	Name        string
	DownloadURL string
	Version     string
}

type listingAsset struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type listingRelease struct {
	TagName string         `json:"tag_name"`
	Assets  []listingAsset `json:"assets"`
}

// Client talks to the release listing endpoint and downloads assets.
type Client struct {
	listingURL string
	userAgent  string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. A nil client keeps the default.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout. A client passed to WithHTTPClient is
// copied rather than modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a client for the given release listing URL. Every request carries
// userAgent.
func NewClient(listingURL string, userAgent string, opts ...Option) *Client {
	c := &Client{
		listingURL: listingURL,
		userAgent:  userAgent,
		httpClient: defaultHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = defaultHTTPClient()
	}
	if c.timeout > 0 {
		client := *c.httpClient
		client.Timeout = c.timeout
		c.httpClient = &client
	}
	return c
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// Resolve finds assetName (case-insensitively) in the newest release and returns its
// download URL and the release's tag.
func (c *Client) Resolve(ctx context.Context, assetName string) (Asset, error) {
	fail := func(cause error, err error) (Asset, error) {
		return Asset{}, &Error{URL: c.listingURL, Cause: cause, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listingURL, nil)
	if err != nil {
		return Asset{}, fmt.Errorf(messages.ReleaseCreateRequestErrFmt, c.listingURL, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(ErrNoResponse, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(ErrNoResponse, &StatusError{URL: c.listingURL, Code: resp.StatusCode})
	}

	var releases []listingRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		if errors.Is(err, io.EOF) {
			return fail(ErrNoListingBody, nil)
		}
		return fail(ErrNoListingBody, err)
	}
	if releases == nil {
		return fail(ErrNoListingBody, nil)
	}
	if len(releases) == 0 {
		return fail(ErrNoMatchingAsset, nil)
	}

	latest := releases[0]
	asset, ok := findAsset(latest.Assets, assetName)
	if !ok {
		return fail(ErrNoMatchingAsset, nil)
	}
	if strings.TrimSpace(asset.URL) == "" {
		return fail(ErrNoAssetURL, nil)
	}
	return Asset{Name: asset.Name, DownloadURL: asset.URL, Version: latest.TagName}, nil
}

// Download fetches url and returns its body. Only a 2xx status counts as success.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf(messages.ReleaseCreateRequestErrFmt, url, err)
	}
	req.Header.Set("Accept", "application/octet-stream")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req) //nolint:gosec // URL comes from the release listing or the plugin catalog
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf(messages.ReleaseReadBodyErrFmt, url, err)
	}
	return body, nil
}

func findAsset(assets []listingAsset, name string) (listingAsset, bool) {
	for _, asset := range assets {
		if strings.EqualFold(asset.Name, name) {
			return asset, true
		}
	}
	return listingAsset{}, false
}
