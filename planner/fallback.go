package planner

import (
	"fmt"
	"strings"
)

// Static fallback payloads substituted when a live provider call fails.
// They are deliberately generic and clearly phrased as estimates; a degraded
// section must never be blank.

// FallbackWeather marks every trip date as unavailable.
func FallbackWeather(req TripRequest) WeatherReport {
	report := WeatherReport{
		Current: fmt.Sprintf("Weather data temporarily unavailable for %s. Check forecasts before your trip.", req.Destination),
	}
	for _, d := range req.TripDates() {
		report.Forecast = append(report.Forecast, DayForecast{
			Date:    d.Format("2006-01-02"),
			Summary: "Forecast not available",
		})
	}
	return report
}

var fallbackHotels = map[string][]HotelOption{
	"istanbul": {
		{Name: "Grand Hyatt Istanbul", Rating: 4.7, PricePerNight: 180, Area: "Beyoglu", Currency: "USD"},
		{Name: "Sultan Ahmet Palace Hotel", Rating: 4.3, PricePerNight: 95, Area: "Sultanahmet", Currency: "USD"},
		{Name: "Ibis Istanbul Taksim", Rating: 4.0, PricePerNight: 75, Area: "Taksim", Currency: "USD"},
	},
	"paris": {
		{Name: "Hotel Le Marais", Rating: 4.6, PricePerNight: 220, Area: "Le Marais", Currency: "USD"},
		{Name: "Ibis Paris Montmartre", Rating: 4.0, PricePerNight: 95, Area: "Montmartre", Currency: "USD"},
		{Name: "Generator Paris", Rating: 3.8, PricePerNight: 55, Area: "10th Arr.", Currency: "USD"},
	},
	"london": {
		{Name: "Hilton London Tower Bridge", Rating: 4.4, PricePerNight: 180, Area: "Tower Bridge", Currency: "USD"},
		{Name: "Premier Inn London City", Rating: 4.1, PricePerNight: 95, Area: "City of London", Currency: "USD"},
		{Name: "citizenM London Bankside", Rating: 4.4, PricePerNight: 145, Area: "Bankside", Currency: "USD"},
	},
	"dubai": {
		{Name: "JW Marriott Marquis", Rating: 4.6, PricePerNight: 220, Area: "Business Bay", Currency: "USD"},
		{Name: "Rove Downtown", Rating: 4.3, PricePerNight: 95, Area: "Downtown Dubai", Currency: "USD"},
		{Name: "Premier Inn Dubai", Rating: 4.0, PricePerNight: 65, Area: "Ibn Battuta", Currency: "USD"},
	},
}

// FallbackHotels substitutes a canned list for known cities and a generic
// one elsewhere. Prices are labeled estimates via the list note.
func FallbackHotels(req TripRequest) HotelList {
	key := strings.ToLower(strings.TrimSpace(req.Destination))
	if options, ok := fallbackHotels[key]; ok {
		return HotelList{Options: options, Note: "Estimated options — live hotel search unavailable."}
	}
	return HotelList{
		Options: []HotelOption{
			{Name: "Grand City Hotel", Rating: 4.5, PricePerNight: 150, Area: "City Center, " + req.Destination, Currency: "USD"},
			{Name: "Business Inn", Rating: 4.2, PricePerNight: 95, Area: "Business District, " + req.Destination, Currency: "USD"},
			{Name: "Boutique Residence", Rating: 4.4, PricePerNight: 120, Area: "Arts District, " + req.Destination, Currency: "USD"},
			{Name: "Economy Suites", Rating: 3.9, PricePerNight: 65, Area: "Near Airport, " + req.Destination, Currency: "USD"},
		},
		Note: "Estimated options — live hotel search unavailable.",
	}
}

func FallbackRestaurants(req TripRequest) RestaurantList {
	return RestaurantList{Options: []RestaurantOption{
		{Name: "Old Town Bistro", Rating: 4.4, PriceTier: "$$", MealCost: 30, Address: "Historic Center, " + req.Destination, Currency: "USD"},
		{Name: "Market Street Kitchen", Rating: 4.2, PriceTier: "$", MealCost: 15, Address: "Central Market, " + req.Destination, Currency: "USD"},
		{Name: "Harborview Restaurant", Rating: 4.5, PriceTier: "$$$", MealCost: 60, Address: "Waterfront, " + req.Destination, Currency: "USD"},
	}}
}

// FallbackItinerary builds a minimal templated plan covering every trip day.
// It is the guaranteed landing spot when the generated text fails to parse.
func FallbackItinerary(req TripRequest) Itinerary {
	interests := "the main sights"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}
	itinerary := Itinerary{Days: make([]Day, 0, req.Days())}
	for i := 1; i <= req.Days(); i++ {
		itinerary.Days = append(itinerary.Days, Day{
			Number:    i,
			Morning:   fmt.Sprintf("Explore a central neighborhood of %s on foot", req.Destination),
			Lunch:     "Lunch at a well-reviewed local restaurant near your route",
			Afternoon: fmt.Sprintf("Visit an attraction matching your interests: %s", interests),
			Evening:   "Sunset walk through a scenic viewpoint or riverside promenade",
			Dinner:    "Dinner featuring regional cuisine",
			Night:     "Relax at your hotel or enjoy nearby nightlife at your own pace",
		})
	}
	return itinerary
}

var fallbackInsights = map[string]InsightSet{
	"dubai": {
		Local: []Insight{
			{Topic: "best time to visit", Text: "Dubai is best visited from November to March when temperatures are pleasant (20-30°C). Avoid June-September due to extreme heat."},
			{Topic: "must visit", Text: "Burj Khalifa, Dubai Mall, Palm Jumeirah, Dubai Frame, Gold Souk, Dubai Creek."},
		},
		Weather: []Insight{
			{Topic: "climate", Text: "Summer temperatures can reach 45°C; winters are pleasant around 20-30°C with minimal rainfall."},
		},
		BudgetTips: []Insight{
			{Topic: "budget travel", Text: "Stay in Deira or Bur Dubai for better value and use the metro for transportation."},
		},
	},
	"london": {
		Local: []Insight{
			{Topic: "best time to visit", Text: "Spring (March-May) and autumn (September-November) offer mild weather and fewer crowds."},
			{Topic: "must visit", Text: "Big Ben, Tower of London, British Museum, Westminster Abbey, London Eye."},
		},
		Weather: []Insight{
			{Topic: "climate", Text: "Summer averages 20-25°C, winter 5-10°C; rain is possible year-round, October is typically wettest."},
		},
		BudgetTips: []Insight{
			{Topic: "budget travel", Text: "Use an Oyster card for transport, visit the free museums, and stay in Zone 2-3 for better value."},
		},
	},
	"paris": {
		Local: []Insight{
			{Topic: "best time to visit", Text: "Spring (April-June) and fall (September-October) offer pleasant weather and beautiful scenery."},
			{Topic: "must visit", Text: "Eiffel Tower, Louvre, Notre-Dame, Arc de Triomphe, Montmartre."},
		},
		Weather: []Insight{
			{Topic: "climate", Text: "Summer averages 20-25°C, winter 5-10°C; October-November are the wettest months."},
		},
		BudgetTips: []Insight{
			{Topic: "budget travel", Text: "Use the metro, visit museums on free days, and stay in less touristy arrondissements."},
		},
	},
}

var transportDailyEstimates = map[string]float64{
	"dubai": 25, "london": 15, "new york": 12, "paris": 8,
	"tokyo": 10, "singapore": 8, "bangkok": 5, "istanbul": 6,
	"mumbai": 3, "delhi": 3, "goa": 8,
}

// TransportDailyEstimate returns the per-person daily local-transport
// estimate for a destination, with a generic default for unknown cities.
func TransportDailyEstimate(destination string) float64 {
	if v, ok := transportDailyEstimates[strings.ToLower(strings.TrimSpace(destination))]; ok {
		return v
	}
	return 8
}

// FallbackInsights substitutes canned insights for known cities and generic
// travel advice elsewhere. No transport cost signal is attached: fallback
// content never feeds the budget verdict.
func FallbackInsights(req TripRequest) InsightSet {
	key := strings.ToLower(strings.TrimSpace(req.Destination))
	if set, ok := fallbackInsights[key]; ok {
		return set
	}
	return InsightSet{
		Local: []Insight{
			{Topic: "general tips", Text: "Research local customs before visiting, learn basic phrases in the local language, and respect cultural differences."},
			{Topic: "safety", Text: "Keep valuables secure, stay aware of your surroundings, and follow local safety guidelines."},
		},
		Weather: []Insight{
			{Topic: "packing", Text: "Check forecasts before your trip and pack layers for variable weather."},
		},
		BudgetTips: []Insight{
			{Topic: "budget travel", Text: "Local markets and public transportation are usually far cheaper than tourist-facing options."},
		},
	}
}
