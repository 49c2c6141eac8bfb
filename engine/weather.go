package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"wardrobe/errors"
	"wardrobe/logger"
)

// TemperatureSource reports the current temperature for a location
type TemperatureSource interface {
	CurrentTempF(ctx context.Context, city string) (float64, error)
}

// WeatherConfig configures a WeatherClient
type WeatherConfig struct {
	Endpoint      string        // e.g. http://api.weatherapi.com/v1/current.json
	APIKey        string        // empty disables lookups
	Timeout       time.Duration // per attempt
	RetryInterval time.Duration // minimum spacing between attempts
}

// WeatherClient queries a weatherapi.com style endpoint
type WeatherClient struct {
	cfg         WeatherConfig
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// currentResponse is the subset of the response we read.
// Pointers distinguish a missing field from a zero value.
type currentResponse struct {
	Current *struct {
		TempF *float64 `json:"temp_f"`
	} `json:"current"`
}

const weatherAttempts = 2

// NewWeatherClient creates a client. A nil logger discards output.
func NewWeatherClient(cfg WeatherConfig, log *slog.Logger) *WeatherClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Second
	}
	if log == nil {
		log = logger.Discard()
	}
	return &WeatherClient{
		cfg:         cfg,
		httpClient:  &http.Client{},
		rateLimiter: rate.NewLimiter(rate.Every(cfg.RetryInterval), 1),
		logger:      log,
	}
}

// CurrentTempF fetches current.temp_f for city, retrying once on transport
// failures and server errors.
func (c *WeatherClient) CurrentTempF(ctx context.Context, city string) (float64, error) {
	if c.cfg.APIKey == "" {
		return 0, errors.WeatherUnavailable("weather lookup disabled: no API key configured")
	}

	var lastErr error
	for attempt := 1; attempt <= weatherAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return 0, errors.WeatherUnavailable("weather lookup cancelled").WithCause(err)
		}

		temp, retry, err := c.fetch(ctx, city)
		if err == nil {
			c.logger.Debug("weather fetched", "city", city, "temp_f", temp, "attempt", attempt)
			return temp, nil
		}
		lastErr = err
		c.logger.Warn("weather lookup failed", "city", city, "attempt", attempt, "error", err)
		if !retry {
			break
		}
	}
	return 0, errors.WeatherUnavailable(fmt.Sprintf("weather lookup for %s failed", city)).WithCause(lastErr)
}

// fetch performs one attempt and reports whether a retry may help
func (c *WeatherClient) fetch(ctx context.Context, city string) (float64, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return 0, false, fmt.Errorf("invalid weather endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", c.cfg.APIKey)
	q.Set("q", city)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, true, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return 0, true, fmt.Errorf("weather API error: %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, false, fmt.Errorf("weather API error: %d - %s", resp.StatusCode, string(body))
	}

	var parsed currentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, false, fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Current == nil || parsed.Current.TempF == nil {
		return 0, false, fmt.Errorf("response has no current.temp_f")
	}
	return *parsed.Current.TempF, false, nil
}

// LayersFor looks up the temperature and derives a layer count. On failure
// it returns DefaultLayers together with the error.
func LayersFor(ctx context.Context, src TemperatureSource, city string) (int, float64, error) {
	temp, err := src.CurrentTempF(ctx, city)
	if err != nil {
		return DefaultLayers, 0, err
	}
	return LayerCount(temp), temp, nil
}
