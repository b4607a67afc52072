package storage

import (
	"bytes"
	"context"
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

func encodeTestPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestHTTPImageFetcher_Success(t *testing.T) {
	data := encodeTestPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "go-photometry/1.0" {
			t.Errorf("Unexpected user agent %q", ua)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher()
	img, err := fetcher.FetchImage(context.Background(), server.URL+"/a.png")
	if err != nil {
		t.Fatalf("FetchImage failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("Expected 4x4 image, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestHTTPImageFetcher_RetriesServerErrors(t *testing.T) {
	data := encodeTestPNG(t)
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(data)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher()
	if _, err := fetcher.FetchImage(context.Background(), server.URL); err != nil {
		t.Fatalf("Expected retry to recover, got %v", err)
	}
	if got := atomic.LoadInt64(&calls); got != 2 {
		t.Errorf("Expected 2 attempts, got %d", got)
	}
}

func TestHTTPImageFetcher_NoRetryOnClientError(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher()
	if _, err := fetcher.FetchImage(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Errorf("Expected a single attempt for a client error, got %d", got)
	}
}

func TestHTTPImageFetcher_BadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an image"))
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher()
	if _, err := fetcher.FetchImage(context.Background(), server.URL); err == nil {
		t.Fatal("Expected decode error for non-image payload")
	}
}

func TestLocalFileFetcher(t *testing.T) {
	data := encodeTestPNG(t)
	path := filepath.Join(t.TempDir(), "test.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	fetcher := NewLocalFileFetcher()

	for _, source := range []string{path, "file://" + path} {
		img, err := fetcher.FetchImage(context.Background(), source)
		if err != nil {
			t.Fatalf("FetchImage(%q) failed: %v", source, err)
		}
		if img.Bounds().Dx() != 4 {
			t.Errorf("Unexpected image width %d", img.Bounds().Dx())
		}
	}
}

func TestLocalFileFetcher_MissingFile(t *testing.T) {
	fetcher := NewLocalFileFetcher()
	if _, err := fetcher.FetchImage(context.Background(), "/nonexistent/image.png"); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLocalFileFetcher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewLocalFileFetcher()
	if _, err := fetcher.FetchImage(ctx, "/tmp/whatever.png"); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}
