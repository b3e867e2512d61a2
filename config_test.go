package main

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if got := cfg.imageDir(); got != defaultImageDir {
		t.Fatalf("imageDir = %q, want %q", got, defaultImageDir)
	}
	if got := cfg.delay(); got != defaultDelay {
		t.Fatalf("delay = %v, want %v", got, defaultDelay)
	}
	if got := cfg.weatherRefresh(); got != time.Hour {
		t.Fatalf("weatherRefresh = %v, want 1h", got)
	}
	lat, lon := cfg.location()
	if lat != defaultLatitude || lon != defaultLongitude {
		t.Fatalf("location = %v,%v", lat, lon)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, "  \n"))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.GridSize != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `{
  "image_dir": "/srv/photos",
  "exclude": ["captions", "scans"],
  "delay_seconds": 10,
  "weather_refresh_minutes": 20,
  "grid_size": 40,
  "text_color": "#ffd700",
  "date_layout": "Monday 2 January",
  "show_grid": true,
  "icon_gap": 1.25,
  "brightness": 80,
  "chain_length": 2,
  "latitude": -27.4698,
  "longitude": 153.0251
}`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.imageDir() != "/srv/photos" || len(cfg.Exclude) != 2 {
		t.Fatalf("unexpected dirs: %+v", cfg)
	}
	if cfg.delay() != 10*time.Second || cfg.weatherRefresh() != 20*time.Minute {
		t.Fatalf("unexpected timings: %v %v", cfg.delay(), cfg.weatherRefresh())
	}

	oc, err := cfg.overlayConfig()
	if err != nil {
		t.Fatalf("overlayConfig returned error: %v", err)
	}
	if oc.GridSize != 40 || !oc.ShowGrid || oc.DateLayout != "Monday 2 January" || oc.IconGap != 1.25 {
		t.Fatalf("unexpected overlay config: %+v", oc)
	}
	if oc.TextColor != (color.RGBA{R: 0xff, G: 0xd7, A: 0xff}) {
		t.Fatalf("unexpected text color: %v", oc.TextColor)
	}

	opts := cfg.panelOptions()
	if opts.Brightness != 80 || opts.ChainLength != 2 {
		t.Fatalf("unexpected panel options: %+v", opts)
	}
	lat, lon := cfg.location()
	if lat != -27.4698 || lon != 153.0251 {
		t.Fatalf("location = %v,%v", lat, lon)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"brightness": `{"brightness": 0}`,
		"grid_size":  `{"grid_size": 2}`,
		"text_color": `{"text_color": "white"}`,
		"latitude":   `{"latitude": 91}`,
		"delay":      `{"delay_seconds": -1}`,
		"icon_gap":   `{"icon_gap": -0.5}`,
		"parse":      `{"grid_size": "big"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, body))
			if err == nil {
				t.Fatalf("expected error for %s", body)
			}
			if !strings.HasPrefix(err.Error(), "load config: ") {
				t.Fatalf("unexpected error prefix: %v", err)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#ffffff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, true},
		{"00ff0080", color.RGBA{G: 0xff, A: 0x80}, true},
		{"#fff", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
	}
	for _, tc := range cases {
		got, err := parseHexColor(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("parseHexColor(%q) error = %v, want ok=%v", tc.in, err, tc.ok)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("parseHexColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
