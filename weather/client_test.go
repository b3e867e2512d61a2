package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const onecallJSON = `{
  "lat": -27.1962,
  "lon": 152.8243,
  "timezone": "Australia/Brisbane",
  "current": {"temp": 290.1},
  "hourly": [
    {"dt": 1565942400, "temp": 294.4, "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01n"}]},
    {"dt": 1565946000, "temp": 293.2, "weather": [{"id": 801, "main": "Clouds", "description": "few clouds", "icon": "02n"}]}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient("secret", -27.1962, 152.8243)
	c.BaseURL = server.URL
	c.HTTP = server.Client()
	return c
}

func TestCurrentParsesHourlyForecast(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(onecallJSON))
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	report, err := c.Current(ctx)
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if report.Code != "02n" {
		t.Fatalf("unexpected code: got %q, want %q", report.Code, "02n")
	}
	if report.Temperature != "21°" {
		t.Fatalf("unexpected temperature: got %q, want %q", report.Temperature, "21°")
	}
	if report.Description != "few clouds" {
		t.Fatalf("unexpected description: got %q", report.Description)
	}

	if gotPath != "/data/2.5/onecall" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	for _, want := range []string{"lat=-27.1962", "lon=152.8243", "exclude=minutely", "appid=secret"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestCurrentHTTPError(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "invalid key", http.StatusUnauthorized)
	})

	_, err := c.Current(context.Background())
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected 401 error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestCurrentMissingHourly(t *testing.T) {
	cases := map[string]string{
		"no hourly":    `{"current": {"temp": 290}}`,
		"one hour":     `{"hourly": [{"temp": 290, "weather": [{"icon": "01d"}]}]}`,
		"no condition": `{"hourly": [{"temp": 290}, {"temp": 291, "weather": []}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			if _, err := c.Current(context.Background()); !errors.Is(err, ErrNoForecast) {
				t.Fatalf("got %v, want ErrNoForecast", err)
			}
		})
	}
}

func TestCurrentMalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})
	if _, err := c.Current(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestCurrentHonoursContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Current(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestFormatTemperature(t *testing.T) {
	cases := map[float64]string{
		294.15: "21°",
		278.2:  "5°",
		263.0:  "-10°",
	}
	for kelvin, want := range cases {
		if got := FormatTemperature(kelvin); got != want {
			t.Fatalf("FormatTemperature(%v) = %q, want %q", kelvin, got, want)
		}
	}
}
