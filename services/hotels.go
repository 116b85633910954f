package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wayplan/planner"
)

// HotelsClient searches TripAdvisor through RapidAPI. The search is
// two-step: resolve the city to a location ID, then list hotels for that
// location inside a price window around the per-night accommodation budget.
type HotelsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewHotelsClient(rapidAPIKey string) *HotelsClient {
	return &HotelsClient{
		apiKey:  rapidAPIKey,
		baseURL: "https://travel-advisor.p.rapidapi.com",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *HotelsClient) Name() string { return "tripadvisor" }

func (c *HotelsClient) Fetch(ctx context.Context, req planner.TripRequest) (planner.HotelList, error) {
	if c.apiKey == "" {
		return planner.HotelList{}, fmt.Errorf("rapidapi key not configured")
	}

	locationID, err := c.locationID(ctx, req.Destination)
	if err != nil {
		return planner.HotelList{}, err
	}
	if locationID == "" {
		return planner.HotelList{}, fmt.Errorf("no tripadvisor location for %q", req.Destination)
	}

	// Price window: ±10% around the accommodation share of the nightly budget.
	perNight := req.Budget.Amount * planner.DefaultSplit.Accommodation / float64(req.Nights())
	options, err := c.listHotels(ctx, locationID, req, perNight*0.9, perNight*1.1)
	if err != nil {
		return planner.HotelList{}, err
	}

	list := planner.HotelList{Options: options}
	if len(options) == 0 {
		// Zero matches within budget is a valid result, not a failure.
		list.Note = "No hotels found within your budget range."
	}
	return list, nil
}

type taLocationResponse struct {
	Data []struct {
		ResultType   string `json:"result_type"`
		ResultObject struct {
			LocationID string `json:"location_id"`
		} `json:"result_object"`
	} `json:"data"`
}

func (c *HotelsClient) locationID(ctx context.Context, city string) (string, error) {
	query := url.Values{
		"query":    {city},
		"limit":    {"5"},
		"currency": {"USD"},
		"sort":     {"relevance"},
		"lang":     {"en_US"},
	}
	body, err := c.get(ctx, "/locations/search?"+query.Encode())
	if err != nil {
		return "", fmt.Errorf("location search failed: %w", err)
	}

	var resp taLocationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse location search: %w", err)
	}
	for _, d := range resp.Data {
		if d.ResultType == "geos" && d.ResultObject.LocationID != "" {
			return d.ResultObject.LocationID, nil
		}
	}
	return "", nil
}

type taHotelsResponse struct {
	Data []struct {
		Name           string `json:"name"`
		Price          string `json:"price"`
		Rating         string `json:"rating"`
		LocationString string `json:"location_string"`
	} `json:"data"`
}

func (c *HotelsClient) listHotels(ctx context.Context, locationID string, req planner.TripRequest, minPrice, maxPrice float64) ([]planner.HotelOption, error) {
	query := url.Values{
		"location_id": {locationID},
		"adults":      {strconv.Itoa(req.Travelers)},
		"checkin":     {req.StartDate.Format("2006-01-02")},
		"checkout":    {req.EndDate.Format("2006-01-02")},
		"currency":    {"USD"},
		"order":       {"PRICE"},
		"limit":       {"10"},
		"lang":        {"en_US"},
	}
	if minPrice > 0 && maxPrice > minPrice {
		query.Set("min_price", strconv.Itoa(int(minPrice)))
		query.Set("max_price", strconv.Itoa(int(maxPrice)))
	}

	body, err := c.get(ctx, "/hotels/list?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("hotel list failed: %w", err)
	}

	var resp taHotelsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel list: %w", err)
	}

	options := make([]planner.HotelOption, 0, len(resp.Data))
	for _, h := range resp.Data {
		if h.Name == "" || h.Price == "" {
			continue
		}
		options = append(options, planner.HotelOption{
			Name:          h.Name,
			Rating:        parseFloat(h.Rating),
			PricePerNight: parseHotelPrice(h.Price),
			Area:          h.LocationString,
			Currency:      "USD",
		})
	}
	return options, nil
}

func (c *HotelsClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", "travel-advisor.p.rapidapi.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tripadvisor error (%d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// parseHotelPrice handles the "$123" and "$95 - $140" forms the listing API
// returns; ranges resolve to their lower bound.
func parseHotelPrice(s string) float64 {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "-"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	s = strings.ReplaceAll(s, ",", "")
	return parseFloat(s)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
