package imagery

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// pngBytes encodes a small solid-color image.
func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestHTTPSource_FetchDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t, color.RGBA{R: 255, A: 255}))
	}))
	defer srv.Close()

	src := NewHTTPSource()
	img, err := src.Fetch(context.Background(), srv.URL+"/img.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := img.Bounds().Dx(); got != 4 {
		t.Errorf("width: got %d want 4", got)
	}
}

func TestHTTPSource_NonOKStatusIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := NewHTTPSource()
	_, err := src.Fetch(context.Background(), srv.URL+"/missing.png")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
	if !HasStatusCode(err, http.StatusNotFound) {
		t.Errorf("HasStatusCode 404 = false for %v", err)
	}
}

func TestHTTPSource_UndecodableBodyIsNotFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an image"))
	}))
	defer srv.Close()

	src := NewHTTPSource()
	_, err := src.Fetch(context.Background(), srv.URL+"/bogus.png")
	if err == nil {
		t.Fatal("expected decode error")
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		t.Errorf("decode failure classified as FetchError: %v", err)
	}
}

func TestHTTPSource_DebugCopyWritten(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t, color.RGBA{B: 255, A: 255}))
	}))
	defer srv.Close()

	dir := t.TempDir()
	src := NewHTTPSource(WithDebugDir(dir))
	if _, err := src.Fetch(context.Background(), srv.URL+"/scene.png"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "temp.png")); err != nil {
		t.Errorf("debug copy not written: %v", err)
	}
}

func TestCachedSource_FetchesOncePerURL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(pngBytes(t, color.RGBA{G: 255, A: 255}))
	}))
	defer srv.Close()

	src := NewCachedSource(NewHTTPSource())
	url := srv.URL + "/img.png"
	for i := 0; i < 3; i++ {
		if _, err := src.Fetch(context.Background(), url); err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits: got %d want 1", got)
	}
}

func TestCachedSource_ErrorsNotCached(t *testing.T) {
	stub := &StubSource{Err: errors.New("boom")}
	src := NewCachedSource(stub)
	if _, err := src.Fetch(context.Background(), "http://x/img.png"); err == nil {
		t.Fatal("expected error")
	}

	stub.Err = nil
	stub.Img = image.NewRGBA(image.Rect(0, 0, 1, 1))
	if _, err := src.Fetch(context.Background(), "http://x/img.png"); err != nil {
		t.Errorf("second Fetch after recovery: %v", err)
	}
}
