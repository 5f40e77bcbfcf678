// Package fetch downloads remote media to local files.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Static errors for fetch operations.
var (
	// ErrTransport is returned when the connection cannot be established
	// or the request times out.
	ErrTransport = errors.New("fetch: transport error")
	// ErrRemoteStatus is returned when the server answers with a
	// non-success HTTP status.
	ErrRemoteStatus = errors.New("fetch: remote returned error status")
)

const (
	// defaultTimeout bounds a single download, connect to last byte.
	defaultTimeout = 60 * time.Second
	// copyBufSize is the chunk size used when streaming to disk.
	copyBufSize = 1 << 20 // 1 MiB
)

// Client downloads URLs to local files. The zero value is not usable;
// construct with NewClient.
type Client struct {
	httpClient *http.Client
}

// Option is a function that configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(fc *Client) {
		fc.httpClient = c
	}
}

// NewClient creates a fetch client with a 60 second request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch streams the resource at url into the file at dest. The body is
// copied in 1 MiB chunks so large media never sits in memory. The
// destination file is only created once a success status has been received.
// A single failure aborts the download; there is no retry.
func (c *Client) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("fetch: create request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %s", ErrTransport, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: GET %s returned %d", ErrRemoteStatus, url, resp.StatusCode)
	}

	f, err := os.Create(dest) // #nosec G304 - dest is inside the request workspace
	if err != nil {
		return fmt.Errorf("fetch: create %s: %w", dest, err)
	}

	buf := make([]byte, copyBufSize)
	if _, err := io.CopyBuffer(f, resp.Body, buf); err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("%w: GET %s: %s", ErrTransport, url, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("fetch: close %s: %w", dest, err)
	}

	return nil
}
