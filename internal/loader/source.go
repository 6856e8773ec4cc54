package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Source retrieves a named payload relative to some base location
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// NewSource returns an HTTPSource for http and https bases and a FileSource for anything else
func NewSource(base string, timeout time.Duration) (Source, error) {
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return NewHTTPSource(base, timeout)
	}
	return NewFileSource(strings.TrimPrefix(base, "file://")), nil
}

// HTTPSource fetches payloads with GET requests against a base URL
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

func NewHTTPSource(base string, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported source URL scheme %q", u.Scheme)
	}

	return &HTTPSource{
		base:   u,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Fetch GETs name resolved against the base URL. Any non-2xx status is a TransportError.
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	location := s.base.JoinPath(name).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &TransportError{Location: location, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Location: location, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Location:   location,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Location: location, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	return body, nil
}

// FileSource reads payloads from a local directory
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	location := filepath.Join(s.dir, filepath.FromSlash(name))

	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Location: location, Err: err}
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, &TransportError{Location: location, Err: err}
	}

	return data, nil
}
