// Package weather fetches the current conditions shown beside the date on
// the photo frame.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the OpenWeather API root.
	DefaultBaseURL = "https://api.openweathermap.org"
	onecallPath    = "/data/2.5/onecall"
	requestTimeout = 10 * time.Second
	kelvinOffset   = 273
	maxBodyBytes   = 4 << 20
)

// ErrNoForecast is returned when the response lacks the hourly entries the
// report is built from.
var ErrNoForecast = errors.New("weather: response has no usable hourly forecast")

// Report is the condition code and formatted temperature for the frame.
type Report struct {
	Code        string
	Temperature string
	Description string
}

// Client queries the OpenWeather One Call endpoint for a fixed location.
type Client struct {
	BaseURL string
	APIKey  string
	Lat     float64
	Lon     float64
	HTTP    *http.Client
}

// NewClient returns a client for the given location using DefaultBaseURL.
func NewClient(apiKey string, lat, lon float64) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		Lat:     lat,
		Lon:     lon,
		HTTP:    &http.Client{Timeout: requestTimeout},
	}
}

type onecallResponse struct {
	Hourly []struct {
		Temp    float64 `json:"temp"`
		Weather []struct {
			Icon        string `json:"icon"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"hourly"`
}

// Current makes a single request and reports the next hour's condition icon
// together with the current hour's temperature. Failures are not retried.
func (c *Client) Current(ctx context.Context) (Report, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return Report{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Report{}, fmt.Errorf("weather: create request: %w", err)
	}

	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("weather: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("weather: http status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Report{}, fmt.Errorf("weather: read body: %w", err)
	}

	return parseOnecall(body)
}

func (c *Client) endpoint() (string, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base + onecallPath)
	if err != nil {
		return "", fmt.Errorf("weather: parse base url %q: %w", c.BaseURL, err)
	}
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))
	q.Set("exclude", "minutely")
	q.Set("appid", c.APIKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func parseOnecall(body []byte) (Report, error) {
	var payload onecallResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Report{}, fmt.Errorf("weather: decode response: %w", err)
	}
	if len(payload.Hourly) < 2 || len(payload.Hourly[1].Weather) == 0 {
		return Report{}, ErrNoForecast
	}

	next := payload.Hourly[1].Weather[0]
	report := Report{
		Code:        strings.TrimSpace(next.Icon),
		Temperature: FormatTemperature(payload.Hourly[0].Temp),
		Description: next.Description,
	}
	if report.Code == "" {
		return Report{}, ErrNoForecast
	}
	logDebug("report: %s %s (%s)", report.Code, report.Temperature, report.Description)
	return report, nil
}

// FormatTemperature converts kelvin to whole degrees Celsius with a degree
// sign, e.g. 294.15 -> "21°".
func FormatTemperature(kelvin float64) string {
	return strings.TrimSpace(fmt.Sprintf("%2.0f°", kelvin-kelvinOffset))
}
