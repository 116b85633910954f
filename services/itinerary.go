package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wayplan/planner"
)

// ItineraryClient drafts a day-by-day plan through the HuggingFace Inference
// API. The model is asked for strict JSON, but generated text is untrusted:
// the response is scanned for the outermost JSON object and validated
// against the expected day count before it is accepted.
type ItineraryClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

const defaultModel = "mistralai/Mistral-7B-Instruct-v0.3"

func NewItineraryClient(apiKey, model string) *ItineraryClient {
	if model == "" {
		model = defaultModel
	}
	return &ItineraryClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api-inference.huggingface.co",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *ItineraryClient) Name() string { return "huggingface/" + c.model }

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

func (c *ItineraryClient) Fetch(ctx context.Context, req planner.TripRequest) (planner.Itinerary, error) {
	if c.apiKey == "" {
		return planner.Itinerary{}, fmt.Errorf("huggingface API key not configured")
	}

	text, err := c.generate(ctx, buildItineraryPrompt(req))
	if err != nil {
		return planner.Itinerary{}, err
	}
	return ParseItinerary(text, req.Days())
}

func (c *ItineraryClient) generate(ctx context.Context, prompt string) (string, error) {
	jsonBody, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   1200,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/models/%s", c.baseURL, c.model), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", fmt.Errorf("model is loading, retry shortly")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface error (%d): %s", resp.StatusCode, string(body))
	}

	var hfResp hfResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return "", fmt.Errorf("failed to parse generation response: %w", err)
	}
	if len(hfResp) == 0 || hfResp[0].GeneratedText == "" {
		return "", fmt.Errorf("empty generation response")
	}
	return hfResp[0].GeneratedText, nil
}

func buildItineraryPrompt(req planner.TripRequest) string {
	interests := "general sightseeing"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}
	style := string(req.Style)
	if style == "" {
		style = string(planner.StyleBalanced)
	}
	pace := string(req.Pace)
	if pace == "" {
		pace = string(planner.PaceModerate)
	}

	return fmt.Sprintf(`[INST] You are a travel assistant. Generate a daily itinerary for a %s-style trip at a %s pace to %s, from %s to %s (%d days). Interests: %s.

For each day include a morning activity, a lunch suggestion, an afternoon activity, an evening activity, a dinner suggestion, and a night activity. Do not repeat places across days, vary activity types, and name specific restaurants when possible.

Respond with ONLY valid JSON in exactly this structure, one entry per day:

{"days": [{"day": 1, "morning": "...", "lunch": "...", "afternoon": "...", "evening": "...", "dinner": "...", "night": "..."}]}

Return only the JSON object, nothing else. [/INST]`,
		style, pace, req.Destination,
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"),
		req.Days(), interests)
}

// ParseItinerary decodes generated text into day entries. The text may wrap
// the JSON in prose; everything outside the outermost braces is discarded.
// A payload with the wrong day count is rejected so the adapter can fall
// back to the templated plan.
func ParseItinerary(text string, wantDays int) (planner.Itinerary, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start >= end {
		return planner.Itinerary{}, fmt.Errorf("no JSON object in generated text")
	}

	var itinerary planner.Itinerary
	if err := json.Unmarshal([]byte(text[start:end+1]), &itinerary); err != nil {
		return planner.Itinerary{}, fmt.Errorf("generated itinerary is not valid JSON: %w", err)
	}
	if len(itinerary.Days) != wantDays {
		return planner.Itinerary{}, fmt.Errorf("generated itinerary has %d days, want %d", len(itinerary.Days), wantDays)
	}
	for i := range itinerary.Days {
		if itinerary.Days[i].Number == 0 {
			itinerary.Days[i].Number = i + 1
		}
	}
	return itinerary, nil
}
