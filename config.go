package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"time"

	"photoframe/matrixdisplay"
	"photoframe/overlay"
)

const (
	defaultImageDir       = "/media/usb/images"
	defaultIconDir        = "icons"
	defaultDelay          = 30 * time.Second
	defaultWeatherRefresh = time.Hour
	defaultLatitude       = -27.1962
	defaultLongitude      = 152.8243
)

// Config contains optional configuration overrides loaded from disk.
type Config struct {
	ImageDir       string   `json:"image_dir,omitempty"`
	Exclude        []string `json:"exclude,omitempty"`
	DelaySeconds   int      `json:"delay_seconds,omitempty"`
	WeatherMinutes int      `json:"weather_refresh_minutes,omitempty"`

	GridSize       int     `json:"grid_size,omitempty"`
	FontPath       string  `json:"font_path,omitempty"`
	TextColor      string  `json:"text_color,omitempty"`
	DateLayout     string  `json:"date_layout,omitempty"`
	TimeLayout     string  `json:"time_layout,omitempty"`
	CreationLayout string  `json:"creation_layout,omitempty"`
	IconDir        string  `json:"icon_dir,omitempty"`
	IconGap        float64 `json:"icon_gap,omitempty"`
	ShowGrid       bool    `json:"show_grid,omitempty"`

	Brightness      *int   `json:"brightness,omitempty"`
	PanelRows       int    `json:"panel_rows,omitempty"`
	PanelCols       int    `json:"panel_cols,omitempty"`
	ChainLength     int    `json:"chain_length,omitempty"`
	Parallel        int    `json:"parallel,omitempty"`
	HardwareMapping string `json:"hardware_mapping,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config: open %q: %w", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return cfg, fmt.Errorf("load config: read %q: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("load config: parse %q: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Brightness != nil {
		if *c.Brightness < 1 || *c.Brightness > 100 {
			return fmt.Errorf("brightness must be between 1 and 100, got %d", *c.Brightness)
		}
	}
	if c.GridSize != 0 && c.GridSize < overlay.MinGridSize {
		return fmt.Errorf("grid_size must be at least %d, got %d", overlay.MinGridSize, c.GridSize)
	}
	if c.DelaySeconds < 0 {
		return fmt.Errorf("delay_seconds must not be negative, got %d", c.DelaySeconds)
	}
	if c.WeatherMinutes < 0 {
		return fmt.Errorf("weather_refresh_minutes must not be negative, got %d", c.WeatherMinutes)
	}
	if c.IconGap < 0 {
		return fmt.Errorf("icon_gap must not be negative, got %v", c.IconGap)
	}
	if c.TextColor != "" {
		if _, err := parseHexColor(c.TextColor); err != nil {
			return err
		}
	}
	if c.Latitude != nil && (*c.Latitude < -90 || *c.Latitude > 90) {
		return fmt.Errorf("latitude must be between -90 and 90, got %v", *c.Latitude)
	}
	if c.Longitude != nil && (*c.Longitude < -180 || *c.Longitude > 180) {
		return fmt.Errorf("longitude must be between -180 and 180, got %v", *c.Longitude)
	}
	return nil
}

func (c Config) imageDir() string {
	if dir := strings.TrimSpace(c.ImageDir); dir != "" {
		return dir
	}
	return defaultImageDir
}

func (c Config) iconDir() string {
	if dir := strings.TrimSpace(c.IconDir); dir != "" {
		return dir
	}
	return defaultIconDir
}

func (c Config) delay() time.Duration {
	if c.DelaySeconds > 0 {
		return time.Duration(c.DelaySeconds) * time.Second
	}
	return defaultDelay
}

func (c Config) weatherRefresh() time.Duration {
	if c.WeatherMinutes > 0 {
		return time.Duration(c.WeatherMinutes) * time.Minute
	}
	return defaultWeatherRefresh
}

func (c Config) location() (lat, lon float64) {
	lat, lon = defaultLatitude, defaultLongitude
	if c.Latitude != nil {
		lat = *c.Latitude
	}
	if c.Longitude != nil {
		lon = *c.Longitude
	}
	return lat, lon
}

// overlayConfig maps the file settings onto the engine. Icons are attached
// by the caller.
func (c Config) overlayConfig() (overlay.Config, error) {
	cfg := overlay.Config{
		GridSize:       c.GridSize,
		FontPath:       strings.TrimSpace(c.FontPath),
		DateLayout:     c.DateLayout,
		TimeLayout:     c.TimeLayout,
		CreationLayout: c.CreationLayout,
		IconGap:        c.IconGap,
		ShowGrid:       c.ShowGrid,
	}
	if c.TextColor != "" {
		fill, err := parseHexColor(c.TextColor)
		if err != nil {
			return cfg, err
		}
		cfg.TextColor = fill
	}
	return cfg, nil
}

func (c Config) panelOptions() matrixdisplay.Options {
	opts := matrixdisplay.Options{
		Rows:            c.PanelRows,
		Cols:            c.PanelCols,
		ChainLength:     c.ChainLength,
		Parallel:        c.Parallel,
		HardwareMapping: c.HardwareMapping,
	}
	if c.Brightness != nil {
		opts.Brightness = *c.Brightness
	}
	return opts
}

// parseHexColor accepts "#RRGGBB" or "#RRGGBBAA", with or without the hash.
func parseHexColor(s string) (color.RGBA, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 && len(raw) != 8 {
		return color.RGBA{}, fmt.Errorf("text_color %q must be #RRGGBB or #RRGGBBAA", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("text_color %q: %w", s, err)
	}
	c := color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}
