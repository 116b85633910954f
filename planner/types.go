package planner

import (
	"errors"
	"time"
)

// ─── Request ─────────────────────────────────────────────────────────────────

type PlanningStyle string

const (
	StyleBalanced   PlanningStyle = "balanced"
	StyleBudget     PlanningStyle = "budget"
	StyleLuxury     PlanningStyle = "luxury"
	StyleAdventure  PlanningStyle = "adventure"
	StyleCultural   PlanningStyle = "cultural"
	StyleRelaxation PlanningStyle = "relaxation"
)

type TripPace string

const (
	PaceRelaxed  TripPace = "relaxed"
	PaceModerate TripPace = "moderate"
	PaceFast     TripPace = "fast"
)

type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// TripRequest is the validated input for one planning run. It is never
// mutated by the pipeline.
type TripRequest struct {
	Destination string        `json:"destination"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Travelers   int           `json:"travelers"`
	Interests   []string      `json:"interests,omitempty"`
	Budget      Money         `json:"budget"`
	Style       PlanningStyle `json:"style,omitempty"`
	Pace        TripPace      `json:"pace,omitempty"`
}

var (
	ErrEmptyDestination = errors.New("destination must not be empty")
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrNoTravelers      = errors.New("traveler count must be positive")
	ErrInvalidBudget    = errors.New("budget amount must be positive")
	ErrNoCurrency       = errors.New("budget currency code must not be empty")
)

// Validate rejects requests the pipeline must never see. This is the only
// error class that aborts planning; everything downstream degrades instead.
func (r TripRequest) Validate() error {
	if r.Destination == "" {
		return ErrEmptyDestination
	}
	if !r.EndDate.After(r.StartDate) {
		return ErrInvalidDateRange
	}
	if r.Travelers <= 0 {
		return ErrNoTravelers
	}
	if r.Budget.Amount <= 0 {
		return ErrInvalidBudget
	}
	if r.Budget.Currency == "" {
		return ErrNoCurrency
	}
	return nil
}

// Nights is the trip length in nights (end − start).
func (r TripRequest) Nights() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}

// Days is the number of itinerary days, one more than the night count.
func (r TripRequest) Days() int {
	return r.Nights() + 1
}

// TripDates lists every calendar date of the trip, start through end inclusive.
func (r TripRequest) TripDates() []time.Time {
	dates := make([]time.Time, 0, r.Days())
	for d := r.StartDate; !d.After(r.EndDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// ─── Outcomes ────────────────────────────────────────────────────────────────

type OutcomeStatus string

const (
	StatusLive     OutcomeStatus = "live"
	StatusDegraded OutcomeStatus = "degraded"
)

// Outcome is the total result type every adapter resolves to. A degraded
// outcome carries a static fallback payload and the reason the live call
// was abandoned; raw provider errors never cross this boundary.
type Outcome[T any] struct {
	Source  string        `json:"source"`
	Status  OutcomeStatus `json:"status"`
	Reason  string        `json:"reason,omitempty"`
	Payload T             `json:"payload"`
}

func (o Outcome[T]) Live() bool {
	return o.Status == StatusLive
}

// ─── Provider payloads ───────────────────────────────────────────────────────

type DayForecast struct {
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

type WeatherReport struct {
	Current  string        `json:"current"`
	Forecast []DayForecast `json:"forecast"`
}

type HotelOption struct {
	Name          string  `json:"name"`
	Rating        float64 `json:"rating,omitempty"`
	PricePerNight float64 `json:"price_per_night,omitempty"`
	Area          string  `json:"area,omitempty"`
	Currency      string  `json:"currency,omitempty"`
}

// HotelList may be empty with a non-empty Note: zero matches within budget
// is a valid live result, not a provider failure.
type HotelList struct {
	Options []HotelOption `json:"options"`
	Note    string        `json:"note,omitempty"`
}

type RestaurantOption struct {
	Name      string  `json:"name"`
	Rating    float64 `json:"rating,omitempty"`
	PriceTier string  `json:"price_tier,omitempty"`
	MealCost  float64 `json:"meal_cost,omitempty"`
	Address   string  `json:"address,omitempty"`
	Currency  string  `json:"currency,omitempty"`
}

type RestaurantList struct {
	Options []RestaurantOption `json:"options"`
}

type Day struct {
	Number    int    `json:"day"`
	Morning   string `json:"morning"`
	Lunch     string `json:"lunch"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
	Dinner    string `json:"dinner"`
	Night     string `json:"night"`
}

// Itinerary covers exactly Days() entries for the request it was built from.
type Itinerary struct {
	Days []Day `json:"days"`
}

type Insight struct {
	Topic string `json:"topic"`
	Text  string `json:"text"`
}

type InsightSet struct {
	Local      []Insight `json:"local,omitempty"`
	Weather    []Insight `json:"weather,omitempty"`
	BudgetTips []Insight `json:"budget_tips,omitempty"`

	// Daily local-transport estimate for the destination, attributed to this
	// payload because the insight lookups are where it is researched.
	TransportDaily    float64 `json:"transport_daily,omitempty"`
	TransportCurrency string  `json:"transport_currency,omitempty"`
}

// ─── Cost signals ────────────────────────────────────────────────────────────

type CostCategory string

const (
	CostAccommodation CostCategory = "accommodation"
	CostFood          CostCategory = "food"
	CostTransport     CostCategory = "transport"
)

// CostSignal is a category-tagged estimated daily amount extracted from a
// provider payload. Absence of signals is valid.
type CostSignal struct {
	Category    CostCategory `json:"category"`
	DailyAmount float64      `json:"daily_amount"`
	Currency    string       `json:"currency"`
}

// CostSignals derives an accommodation signal from the mean nightly price.
func (h HotelList) CostSignals() []CostSignal {
	var sum float64
	var n int
	currency := "USD"
	for _, opt := range h.Options {
		if opt.PricePerNight <= 0 {
			continue
		}
		sum += opt.PricePerNight
		n++
		if opt.Currency != "" {
			currency = opt.Currency
		}
	}
	if n == 0 {
		return nil
	}
	return []CostSignal{{Category: CostAccommodation, DailyAmount: sum / float64(n), Currency: currency}}
}

// CostSignals derives a food signal from the mean meal cost, three meals a day.
func (r RestaurantList) CostSignals() []CostSignal {
	var sum float64
	var n int
	currency := "USD"
	for _, opt := range r.Options {
		if opt.MealCost <= 0 {
			continue
		}
		sum += opt.MealCost
		n++
		if opt.Currency != "" {
			currency = opt.Currency
		}
	}
	if n == 0 {
		return nil
	}
	return []CostSignal{{Category: CostFood, DailyAmount: sum / float64(n) * 3, Currency: currency}}
}

func (s InsightSet) CostSignals() []CostSignal {
	if s.TransportDaily <= 0 {
		return nil
	}
	currency := s.TransportCurrency
	if currency == "" {
		currency = "USD"
	}
	return []CostSignal{{Category: CostTransport, DailyAmount: s.TransportDaily, Currency: currency}}
}

// ─── Report ──────────────────────────────────────────────────────────────────

// TripReport is the aggregate result of one planning run: one outcome per
// provider kind plus the budget verdict. It is fully populated before being
// handed to renderers and immutable thereafter.
type TripReport struct {
	ID          string                  `json:"id"`
	Request     TripRequest             `json:"request"`
	Weather     Outcome[WeatherReport]  `json:"weather"`
	Hotels      Outcome[HotelList]      `json:"hotels"`
	Restaurants Outcome[RestaurantList] `json:"restaurants"`
	Itinerary   Outcome[Itinerary]      `json:"itinerary"`
	Insights    Outcome[InsightSet]     `json:"insights"`
	Budget      BudgetVerdict           `json:"budget"`
	GeneratedAt time.Time               `json:"generated_at"`
}
