package scraper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/herb-scraper/internal/herb"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		name        string
		htmlContent string
		statusCode  int
		wantError   bool
		wantStatus  int
	}{
		{
			name:        "successful fetch",
			htmlContent: `<html><body><script>var g_mapperData = {};</script></body></html>`,
			statusCode:  http.StatusOK,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			wantError:  true,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "server error",
			statusCode: http.StatusServiceUnavailable,
			wantError:  true,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:        "empty body is not an error",
			htmlContent: "",
			statusCode:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
					t.Errorf("User-Agent = %q, should contain 'Mozilla'", ua)
				}
				if al := r.Header.Get("Accept-Language"); al != "en-US,en;q=0.9" {
					t.Errorf("Accept-Language = %q", al)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.htmlContent)) // nolint:errcheck
			}))
			defer server.Close()

			c := New(server.URL, time.Second, nil)
			body, err := c.Fetch(server.URL + "/object=1439/mycobloom")

			if tt.wantError {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("Fetch() error = %v, want *StatusError", err)
				}
				if statusErr.StatusCode != tt.wantStatus {
					t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, tt.wantStatus)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if body != tt.htmlContent {
				t.Errorf("Fetch() body = %q, want %q", body, tt.htmlContent)
			}
		})
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("late")) // nolint:errcheck
	}))
	defer server.Close()

	c := New(server.URL, 20*time.Millisecond, nil)
	if _, err := c.Fetch(server.URL); err == nil {
		t.Error("Fetch() expected timeout error, got nil")
	}
}

func TestFetch_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("X-Test = %q, want yes", got)
		}
	}))
	defer server.Close()

	c := New(server.URL, time.Second, map[string]string{"x-test": "yes"})
	if _, err := c.Fetch(server.URL); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
}

func TestNew(t *testing.T) {
	c := New(BaseURL+"/", 0, nil)

	if c.client == nil {
		t.Fatal("client is nil")
	}
	if c.client.Timeout != Timeout {
		t.Errorf("Timeout = %v, want %v", c.client.Timeout, Timeout)
	}
	if c.baseURL != BaseURL {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
	if len(c.headers) != len(DefaultHeaders) {
		t.Errorf("headers = %d entries, want defaults", len(c.headers))
	}
}

func TestURLs(t *testing.T) {
	c := New("https://www.wowhead.com", 0, nil)

	if got := c.HerbListURL(); got != "https://www.wowhead.com/objects/herbs?filter=17;11;0" {
		t.Errorf("HerbListURL() = %q", got)
	}

	d := herb.Descriptor{ID: 454071, Name: "arathors-spear", DisplayName: "Arathor's Spear"}
	if got := c.HerbURL(d); got != "https://www.wowhead.com/object=454071/arathors-spear" {
		t.Errorf("HerbURL() = %q", got)
	}
}
