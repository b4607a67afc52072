package repository

import (
	"context"
	"errors"
	"image"
	"testing"
)

// stubFetcher records which fetcher a source was routed to.
type stubFetcher struct {
	name    string
	fetched []string
}

func (s *stubFetcher) FetchImage(ctx context.Context, source string) (image.Image, error) {
	s.fetched = append(s.fetched, source)
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func TestSourceRepository_SchemeDispatch(t *testing.T) {
	httpFetcher := &stubFetcher{name: "http"}
	azureFetcher := &stubFetcher{name: "azure"}
	localFetcher := &stubFetcher{name: "local"}
	repo := NewSourceRepository(httpFetcher, azureFetcher, localFetcher)

	cases := []struct {
		source string
		want   *stubFetcher
	}{
		{"http://example.com/a.jpg", httpFetcher},
		{"https://example.com/a.jpg", httpFetcher},
		{"azure://photos/a.jpg", azureFetcher},
		{"file:///tmp/a.jpg", localFetcher},
		{"/tmp/a.jpg", localFetcher},
		{"relative/path.png", localFetcher},
	}
	for _, tc := range cases {
		before := len(tc.want.fetched)
		if _, err := repo.FetchImage(context.Background(), tc.source); err != nil {
			t.Errorf("FetchImage(%q) failed: %v", tc.source, err)
			continue
		}
		if len(tc.want.fetched) != before+1 {
			t.Errorf("Expected %q to route to the %s fetcher", tc.source, tc.want.name)
		}
	}
}

func TestSourceRepository_InvalidSources(t *testing.T) {
	repo := NewSourceRepository(&stubFetcher{}, &stubFetcher{}, &stubFetcher{})

	cases := []struct {
		name    string
		source  string
		wantErr error
	}{
		{"empty source", "", ErrInvalidSource},
		{"missing host", "https:///a.jpg", ErrInvalidSource},
		{"ftp scheme", "ftp://example.com/a.jpg", ErrUnsupportedScheme},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := repo.ValidateSource(tc.source); !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateSource(%q) = %v, want %v", tc.source, err, tc.wantErr)
			}
			if _, err := repo.FetchImage(context.Background(), tc.source); !errors.Is(err, tc.wantErr) {
				t.Errorf("FetchImage(%q) = %v, want %v", tc.source, err, tc.wantErr)
			}
		})
	}
}

func TestSourceRepository_AzureNotConfigured(t *testing.T) {
	repo := NewSourceRepository(&stubFetcher{}, nil, &stubFetcher{})

	if err := repo.ValidateSource("azure://photos/a.jpg"); !errors.Is(err, ErrAzureNotConfigured) {
		t.Errorf("Expected ErrAzureNotConfigured, got %v", err)
	}
}

func TestSourceRepository_ValidateDoesNotFetch(t *testing.T) {
	httpFetcher := &stubFetcher{}
	repo := NewSourceRepository(httpFetcher, nil, &stubFetcher{})

	if err := repo.ValidateSource("https://example.com/a.jpg"); err != nil {
		t.Fatalf("ValidateSource failed: %v", err)
	}
	if len(httpFetcher.fetched) != 0 {
		t.Error("Expected ValidateSource to leave the fetcher untouched")
	}
}
