package imagery

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	// Register the decoders for the formats the annotation platform serves.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// DefaultTimeout bounds a single image download.
const DefaultTimeout = 4 * time.Second

// HTTPSource fetches images over HTTP and decodes them in memory.
type HTTPSource struct {
	client *http.Client
	debug  string
	log    *slog.Logger
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithDebugDir makes the source write the raw bytes of every fetched image
// to dir as temp.<ext>, a debugging aid only. Empty disables it.
func WithDebugDir(dir string) HTTPOption {
	return func(s *HTTPSource) { s.debug = dir }
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) HTTPOption {
	return func(s *HTTPSource) { s.log = l }
}

// NewHTTPSource returns an HTTPSource with the default 4s timeout.
func NewHTTPSource(opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		client: &http.Client{Timeout: DefaultTimeout},
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch implements Source. Non-2xx responses yield a *FetchError; bodies
// that do not decode as an image yield a wrapped decode error.
func (s *HTTPSource) Fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch image: new request: %w", err)
	}

	s.log.DebugContext(ctx, "fetching image", "url", url)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: read body: %w", url, err)
	}

	if s.debug != "" {
		s.saveDebugCopy(url, data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", url, err)
	}
	return img, nil
}

// saveDebugCopy writes the raw bytes keyed by the URL's file extension.
// Failures are logged, never surfaced: the copy is not required for correctness.
func (s *HTTPSource) saveDebugCopy(url string, data []byte) {
	ext := strings.TrimPrefix(path.Ext(path.Base(url)), ".")
	if ext == "" {
		ext = "img"
	}
	dst := filepath.Join(s.debug, "temp."+ext)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		s.log.Warn("debug copy failed", "path", dst, "error", err)
	}
}
