package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wayplan/planner"
)

// WeatherClient fetches current conditions and the 5-day forecast from
// OpenWeatherMap. The forecast horizon is shorter than many trips; dates
// past it get a per-date marker rather than failing the whole payload.
type WeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewWeatherClient(apiKey string) *WeatherClient {
	return &WeatherClient{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *WeatherClient) Name() string { return "openweathermap" }

type owmCurrentResponse struct {
	Cod     int `json:"cod"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

type owmForecastResponse struct {
	Cod  string `json:"cod"`
	List []struct {
		DtTxt   string `json:"dt_txt"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	} `json:"list"`
}

func (c *WeatherClient) Fetch(ctx context.Context, req planner.TripRequest) (planner.WeatherReport, error) {
	if c.apiKey == "" {
		return planner.WeatherReport{}, fmt.Errorf("weather API key not configured")
	}

	current, err := c.fetchCurrent(ctx, req.Destination)
	if err != nil {
		return planner.WeatherReport{}, err
	}

	daily, err := c.fetchForecast(ctx, req.Destination)
	if err != nil {
		return planner.WeatherReport{}, err
	}

	report := planner.WeatherReport{Current: current}
	for _, d := range req.TripDates() {
		date := d.Format("2006-01-02")
		summary, ok := daily[date]
		if !ok {
			summary = "Forecast not available"
		}
		report.Forecast = append(report.Forecast, planner.DayForecast{Date: date, Summary: summary})
	}
	return report, nil
}

func (c *WeatherClient) fetchCurrent(ctx context.Context, city string) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("/data/2.5/weather?q=%s&appid=%s&units=metric",
		url.QueryEscape(city), url.QueryEscape(c.apiKey)))
	if err != nil {
		return "", err
	}

	var resp owmCurrentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse current weather: %w", err)
	}
	if resp.Cod != http.StatusOK || len(resp.Weather) == 0 {
		return "", fmt.Errorf("no current weather for %q", city)
	}
	return fmt.Sprintf("%s, %.1f°C", titleCase(resp.Weather[0].Description), resp.Main.Temp), nil
}

// fetchForecast keeps the first reading per calendar day, matching how the
// 3-hourly forecast list is digested for display.
func (c *WeatherClient) fetchForecast(ctx context.Context, city string) (map[string]string, error) {
	body, err := c.get(ctx, fmt.Sprintf("/data/2.5/forecast?q=%s&appid=%s&units=metric",
		url.QueryEscape(city), url.QueryEscape(c.apiKey)))
	if err != nil {
		return nil, err
	}

	var resp owmForecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse forecast: %w", err)
	}
	if resp.Cod != "200" {
		return nil, fmt.Errorf("no forecast for %q", city)
	}

	daily := make(map[string]string)
	for _, item := range resp.List {
		date, _, ok := strings.Cut(item.DtTxt, " ")
		if !ok || len(item.Weather) == 0 {
			continue
		}
		if _, seen := daily[date]; !seen {
			daily[date] = fmt.Sprintf("%s, %.1f°C", titleCase(item.Weather[0].Description), item.Main.Temp)
		}
	}
	return daily, nil
}

func (c *WeatherClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openweathermap error (%d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
