package export

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"wayplan/planner"
)

func sampleReport() *planner.TripReport {
	start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	req := planner.TripRequest{
		Destination: "New York",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 2),
		Travelers:   2,
		Budget:      planner.Money{Amount: 1500, Currency: "USD"},
	}
	return &planner.TripReport{
		ID:      "test-id",
		Request: req,
		Weather: planner.Outcome[planner.WeatherReport]{
			Source: "openweathermap", Status: planner.StatusLive,
			Payload: planner.WeatherReport{
				Current: "Clear Sky, 24.0°C",
				Forecast: []planner.DayForecast{
					{Date: "2026-06-10", Summary: "Clear Sky, 24.0°C"},
					{Date: "2026-06-11", Summary: "Light Rain, 19.5°C"},
					{Date: "2026-06-12", Summary: "Forecast not available"},
				},
			},
		},
		Hotels: planner.Outcome[planner.HotelList]{
			Source: "tripadvisor", Status: planner.StatusDegraded, Reason: "timeout",
			Payload: planner.HotelList{Options: []planner.HotelOption{
				{Name: "Midtown Hotel", Rating: 4.3, PricePerNight: 220, Area: "Midtown", Currency: "USD"},
			}},
		},
		Restaurants: planner.Outcome[planner.RestaurantList]{
			Source: "google-places", Status: planner.StatusLive,
			Payload: planner.RestaurantList{Options: []planner.RestaurantOption{
				{Name: "Joe's Diner", Rating: 4.6, PriceTier: "$$", MealCost: 30, Currency: "USD"},
			}},
		},
		Itinerary: planner.Outcome[planner.Itinerary]{
			Source: "huggingface/mistralai/Mistral-7B-Instruct-v0.3", Status: planner.StatusLive,
			Payload: planner.Itinerary{Days: []planner.Day{
				{Number: 1, Morning: "Central Park", Lunch: "Joe's Diner", Afternoon: "MoMA", Evening: "Times Square", Dinner: "Katz's", Night: "Jazz club"},
				{Number: 2, Morning: "Brooklyn Bridge", Lunch: "Dumbo cafe", Afternoon: "Ferry", Evening: "High Line", Dinner: "Chelsea Market", Night: "Rooftop bar"},
				{Number: 3, Morning: "Museum", Lunch: "Deli", Afternoon: "Shopping", Evening: "Walk", Dinner: "Pizza", Night: "Pack"},
			}},
		},
		Insights: planner.Outcome[planner.InsightSet]{
			Source: "duckduckgo", Status: planner.StatusLive,
			Payload: planner.InsightSet{
				Local: []planner.Insight{{Topic: "Best time to visit", Text: "Spring and fall."}},
			},
		},
		Budget: planner.AnalyzeBudget(req.Budget, req.Nights(), []planner.CostSignal{
			{Category: planner.CostFood, DailyAmount: 90, Currency: "USD"},
		}, planner.DefaultSplit),
		GeneratedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMarkdownSectionOrder(t *testing.T) {
	doc := Markdown(sampleReport())

	sections := []string{
		"## 🌤️ Weather",
		"## 💰 Budget Summary",
		"## 🏨 Hotel Options",
		"## 🍽️ Restaurant Suggestions",
		"## 🔍 Real-Time Insights",
		"## 📖 AI Itinerary",
	}
	last := -1
	for _, s := range sections {
		i := strings.Index(doc, s)
		if i == -1 {
			t.Fatalf("section %q missing", s)
		}
		if i < last {
			t.Errorf("section %q out of order", s)
		}
		last = i
	}
}

func TestMarkdownContent(t *testing.T) {
	doc := Markdown(sampleReport())

	for _, want := range []string{
		"# 🌏 Travel Plan: New York",
		"**Trip Dates:** 2026-06-10 to 2026-06-12",
		"Clear Sky, 24.0°C",
		"Forecast not available",
		"**Midtown Hotel**",
		"(fallback data — live lookup unavailable)", // hotels are degraded
		"**Joe's Diner**",
		"### Day 1",
		"### Day 3",
		"**Best time to visit**: Spring and fall.",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	// Live sections must not carry the fallback marker.
	weather := doc[strings.Index(doc, "## 🌤️ Weather"):strings.Index(doc, "## 💰 Budget Summary")]
	if strings.Contains(weather, "fallback") {
		t.Error("live weather section marked as fallback")
	}
}

func TestFilename(t *testing.T) {
	name := Filename(sampleReport(), "pdf")
	pattern := `^travel_plan_New_York_2026-06-10_to_2026-06-12_\d{8}_\d{6}\.pdf$`
	if ok, _ := regexp.MatchString(pattern, name); !ok {
		t.Errorf("Filename() = %q, want match for %s", name, pattern)
	}
}
