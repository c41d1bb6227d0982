package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yokomichi/chintaiscan/internal/model"
)

func nominatimConfig(baseURL string) model.GeocodeConfig {
	return model.GeocodeConfig{
		BaseURL:           baseURL,
		UserAgent:         "chintaiscan-test",
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000, // don't pace tests
	}
}

func TestNominatim_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "東京都港区芝浦２" {
			t.Errorf("unexpected query %q", q)
		}
		if ua := r.Header.Get("User-Agent"); ua != "chintaiscan-test" {
			t.Errorf("unexpected user agent %q", ua)
		}
		_, _ = fmt.Fprint(w, `[{"lat":"35.6433","lon":"139.7497"}]`)
	}))
	defer server.Close()

	n := NewNominatim(nominatimConfig(server.URL))
	res, err := n.Resolve(context.Background(), "東京都港区芝浦２")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res == nil || res.Latitude != 35.6433 || res.Longitude != 139.7497 {
		t.Errorf("result = %+v", res)
	}
}

func TestNominatim_EmptyResultIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	n := NewNominatim(nominatimConfig(server.URL))
	res, err := n.Resolve(context.Background(), "どこでもない")
	if err != nil {
		t.Fatalf("not found must not be an error, got %v", err)
	}
	if res != nil {
		t.Errorf("result = %+v, want nil", res)
	}
}

func TestNominatim_ServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	n := NewNominatim(nominatimConfig(server.URL))
	if _, err := n.Resolve(context.Background(), "東京都港区芝浦２"); err == nil {
		t.Fatal("expected error for 503")
	}
}
