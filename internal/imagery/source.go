// Package imagery provides the fetch-and-decode image capability consumed
// by the color-consistency check. The check only sees the Source interface,
// so its classification logic stays testable without network access.
package imagery

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
)

// Source fetches an image by URL and decodes it to a pixel buffer.
type Source interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// FetchError reports a retrieval failure: the URL did not resolve to a 2xx
// response. Decode failures are reported as wrapped errors, not FetchErrors.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch image %s: HTTP %d", e.URL, e.StatusCode)
}

// IsNotFound reports whether err is a fetch error with HTTP 404 status.
func IsNotFound(err error) bool { return HasStatusCode(err, http.StatusNotFound) }

// HasStatusCode reports whether err is a fetch error whose HTTP status code matches.
func HasStatusCode(err error, code int) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.StatusCode == code
}

// StubSource returns a fixed image for any URL (mock; no HTTP).
// Use in tests or when wiring with fixture data.
type StubSource struct {
	Img image.Image
	Err error
}

// Fetch implements Source by returning the fixed image or error.
func (s *StubSource) Fetch(ctx context.Context, url string) (image.Image, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Img, nil
}
