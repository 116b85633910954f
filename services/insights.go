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

// InsightsClient pulls destination insights from the DuckDuckGo Instant
// Answer API, keyless and rate-tolerant. Each category runs one query; a
// category with no answer is simply omitted from the payload.
type InsightsClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewInsightsClient() *InsightsClient {
	return &InsightsClient{
		baseURL: "https://api.duckduckgo.com",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *InsightsClient) Name() string { return "duckduckgo" }

type ddgResponse struct {
	AbstractText  string `json:"AbstractText"`
	RelatedTopics []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

func (c *InsightsClient) Fetch(ctx context.Context, req planner.TripRequest) (planner.InsightSet, error) {
	set := planner.InsightSet{}

	type lookup struct {
		topic  string
		query  string
		target *[]planner.Insight
	}
	lookups := []lookup{
		{"best time to visit", "best time to visit " + req.Destination, &set.Local},
		{"travel tips", "travel tips " + req.Destination, &set.Local},
		{"climate", "climate " + req.Destination, &set.Weather},
		{"budget travel", "budget travel " + req.Destination, &set.BudgetTips},
	}

	found := 0
	var lastErr error
	for _, l := range lookups {
		text, err := c.search(ctx, l.query)
		if err != nil {
			lastErr = err
			continue
		}
		if text == "" {
			continue
		}
		*l.target = append(*l.target, planner.Insight{Topic: l.topic, Text: text})
		found++
	}

	if found == 0 {
		if lastErr != nil {
			return planner.InsightSet{}, fmt.Errorf("insight search failed: %w", lastErr)
		}
		return planner.InsightSet{}, fmt.Errorf("no insights found for %q", req.Destination)
	}

	set.TransportDaily = planner.TransportDailyEstimate(req.Destination) * float64(req.Travelers)
	set.TransportCurrency = "USD"
	return set, nil
}

func (c *InsightsClient) search(ctx context.Context, query string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/?q=%s&format=json&no_html=1&skip_disambig=1", c.baseURL, url.QueryEscape(query)), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("duckduckgo error (%d)", resp.StatusCode)
	}

	var ddg ddgResponse
	if err := json.Unmarshal(body, &ddg); err != nil {
		return "", fmt.Errorf("failed to parse search response: %w", err)
	}
	if ddg.AbstractText != "" {
		return ddg.AbstractText, nil
	}
	for _, t := range ddg.RelatedTopics {
		if t.Text != "" {
			return t.Text, nil
		}
	}
	return "", nil
}
