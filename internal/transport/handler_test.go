package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"go-photometry/internal/analyzer"
	"go-photometry/internal/config"
	apperrors "go-photometry/internal/errors"
	"go-photometry/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubService returns canned responses and records the options it saw.
type stubService struct {
	resp     *models.AnalysisResponse
	png      []byte
	err      error
	lastOpts analyzer.AnalysisOptions
}

func (s *stubService) AnalyzeSource(ctx context.Context, source string, opts analyzer.AnalysisOptions) (*models.AnalysisResponse, error) {
	s.lastOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubService) RenderHistogram(ctx context.Context, source, channel string, opts analyzer.AnalysisOptions) ([]byte, error) {
	s.lastOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.png, nil
}

func (s *stubService) ValidateSource(source string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Host:               "127.0.0.1",
		Port:               "8080",
		RequestTimeout:     5 * time.Second,
		ImageFetchTimeout:  5 * time.Second,
		AnalysisTimeout:    5 * time.Second,
		MaxRequestBodySize: 1024 * 1024,
	}
}

func postJSON(handler http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	handler := NewHandler(&stubService{}, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestAnalyzeEndpoint_Success(t *testing.T) {
	svc := &stubService{
		resp: &models.AnalysisResponse{
			Source:    "https://example.com/a.jpg",
			Timestamp: "2026-08-29T00:00:00Z",
		},
	}
	handler := NewHandler(svc, testConfig())

	rec := postJSON(handler, "/analyze", `{"source":"https://example.com/a.jpg"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.AnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if resp.Source != "https://example.com/a.jpg" {
		t.Errorf("Unexpected source in response: %s", resp.Source)
	}
}

func TestAnalyzeEndpoint_ModeSelection(t *testing.T) {
	cases := []struct {
		mode     string
		wantFast bool
	}{
		{"", false},
		{"default", false},
		{"fast", true},
		{"strict", false},
	}
	for _, tc := range cases {
		svc := &stubService{resp: &models.AnalysisResponse{}}
		handler := NewHandler(svc, testConfig())

		rec := postJSON(handler, "/analyze", `{"source":"https://example.com/a.jpg","mode":"`+tc.mode+`"}`)
		if rec.Code != http.StatusOK {
			t.Errorf("Mode %q: expected 200, got %d", tc.mode, rec.Code)
			continue
		}
		if svc.lastOpts.FastMode != tc.wantFast {
			t.Errorf("Mode %q: expected FastMode=%v, got %v", tc.mode, tc.wantFast, svc.lastOpts.FastMode)
		}
	}
}

func TestAnalyzeEndpoint_BadRequests(t *testing.T) {
	handler := NewHandler(&stubService{resp: &models.AnalysisResponse{}}, testConfig())

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"source":`},
		{"missing source", `{"mode":"fast"}`},
		{"unknown mode", `{"source":"https://example.com/a.jpg","mode":"turbo"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(handler, "/analyze", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestAnalyzeEndpoint_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid image", apperrors.NewInvalidImageError("bad raster", nil), http.StatusUnprocessableEntity},
		{"network failure", apperrors.NewNetworkError("fetch failed", nil), http.StatusBadGateway},
		{"cancelled", apperrors.NewCancelledError("client gone", nil), 499},
		{"validation", apperrors.NewValidationError("bad source", nil), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHandler(&stubService{err: tc.err}, testConfig())
			rec := postJSON(handler, "/analyze", `{"source":"https://example.com/a.jpg"}`)
			if rec.Code != tc.wantStatus {
				t.Errorf("Expected %d, got %d", tc.wantStatus, rec.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("Error body is not valid JSON: %v", err)
			}
			if body.Error == "" {
				t.Error("Expected non-empty error label")
			}
		})
	}
}

func TestHistogramEndpoint(t *testing.T) {
	svc := &stubService{png: []byte{0x89, 'P', 'N', 'G'}}
	handler := NewHandler(svc, testConfig())

	rec := postJSON(handler, "/analyze/histogram", `{"source":"https://example.com/a.jpg","channel":"red"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png content type, got %q", ct)
	}
	if !bytes.Equal(rec.Body.Bytes(), svc.png) {
		t.Error("Expected raw PNG bytes in the response body")
	}
}

func TestRequestSizeLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRequestBodySize = 64
	handler := NewHandler(&stubService{resp: &models.AnalysisResponse{}}, cfg)

	big := `{"source":"https://example.com/` + strings.Repeat("x", 200) + `"}`
	rec := postJSON(handler, "/analyze", big)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", rec.Code)
	}
}
