package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Fetcher retrieves the raw bytes of a catalog file by name
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// maxCatalogSize bounds how much of a response body is read
const maxCatalogSize = 256 << 20

// httpTimeout bounds a whole request, body included
const httpTimeout = 30 * time.Second

// HTTPFetcher loads catalog files from a static file server
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher returns a fetcher rooted at baseURL whose requests time out
// after httpTimeout
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{BaseURL: baseURL, Client: &http.Client{Timeout: httpTimeout}}
}

// Fetch GETs baseURL/name. Any non-2xx status is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	u, err := url.JoinPath(f.BaseURL, name)
	if err != nil {
		return nil, fmt.Errorf("error building catalog URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("error fetching %s: %s", u, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize))
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", u, err)
	}

	return data, nil
}

// DirFetcher loads catalog files from a local directory
type DirFetcher struct {
	Dir string
}

// Fetch reads Dir/name
func (f DirFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Only plain file names are served
	if filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid catalog file name: %s", name)
	}

	data, err := os.ReadFile(filepath.Join(f.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("error reading catalog file: %w", err)
	}

	return data, nil
}
