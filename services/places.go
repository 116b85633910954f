package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"wayplan/planner"
)

// PlacesClient finds restaurants near a destination through the Google
// Places API: geocode the city, then run a nearby search around its center.
type PlacesClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewPlacesClient(apiKey string) *PlacesClient {
	return &PlacesClient{
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *PlacesClient) Name() string { return "google-places" }

const maxRestaurantResults = 5

func (c *PlacesClient) Fetch(ctx context.Context, req planner.TripRequest) (planner.RestaurantList, error) {
	if c.apiKey == "" {
		return planner.RestaurantList{}, fmt.Errorf("google API key not configured")
	}

	lat, lng, err := c.geocode(ctx, req.Destination)
	if err != nil {
		return planner.RestaurantList{}, err
	}

	options, err := c.nearbyRestaurants(ctx, lat, lng)
	if err != nil {
		return planner.RestaurantList{}, err
	}
	return planner.RestaurantList{Options: options}, nil
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *PlacesClient) geocode(ctx context.Context, city string) (float64, float64, error) {
	body, err := c.get(ctx, fmt.Sprintf("/maps/api/geocode/json?address=%s&key=%s",
		url.QueryEscape(city), url.QueryEscape(c.apiKey)))
	if err != nil {
		return 0, 0, fmt.Errorf("geocode failed: %w", err)
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, 0, fmt.Errorf("failed to parse geocode response: %w", err)
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return 0, 0, fmt.Errorf("could not geocode %q (status %s)", city, resp.Status)
	}
	loc := resp.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name       string  `json:"name"`
		Rating     float64 `json:"rating"`
		PriceLevel *int    `json:"price_level"`
		Vicinity   string  `json:"vicinity"`
	} `json:"results"`
}

func (c *PlacesClient) nearbyRestaurants(ctx context.Context, lat, lng float64) ([]planner.RestaurantOption, error) {
	body, err := c.get(ctx, fmt.Sprintf("/maps/api/place/nearbysearch/json?location=%f,%f&radius=5000&type=restaurant&key=%s",
		lat, lng, url.QueryEscape(c.apiKey)))
	if err != nil {
		return nil, fmt.Errorf("nearby search failed: %w", err)
	}

	var resp nearbyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse nearby search: %w", err)
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places search failed (status %s)", resp.Status)
	}

	options := make([]planner.RestaurantOption, 0, maxRestaurantResults)
	for _, place := range resp.Results {
		if len(options) == maxRestaurantResults {
			break
		}
		tier, cost := priceLevelToTier(place.PriceLevel)
		options = append(options, planner.RestaurantOption{
			Name:      place.Name,
			Rating:    place.Rating,
			PriceTier: tier,
			MealCost:  cost,
			Address:   place.Vicinity,
			Currency:  "USD",
		})
	}
	return options, nil
}

func (c *PlacesClient) get(ctx context.Context, path string) ([]byte, error) {
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
		return nil, fmt.Errorf("google places error (%d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// priceLevelToTier maps the 0-4 Google price level to a display tier and an
// estimated cost per meal in USD.
func priceLevelToTier(level *int) (string, float64) {
	if level == nil {
		return "", 0
	}
	switch *level {
	case 0:
		return "Free", 0
	case 1:
		return "$", 15
	case 2:
		return "$$", 30
	case 3:
		return "$$$", 60
	case 4:
		return "$$$$", 100
	}
	return "", 0
}
