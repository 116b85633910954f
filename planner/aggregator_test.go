package planner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// stubProvider satisfies Provider[T] with a canned result or error and
// counts how often it was called.
type stubProvider[T any] struct {
	name    string
	payload T
	err     error
	delay   time.Duration
	calls   atomic.Int32
}

func (s *stubProvider[T]) Name() string { return s.name }

func (s *stubProvider[T]) Fetch(ctx context.Context, req TripRequest) (T, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
	return s.payload, s.err
}

func liveAggregator() (*Aggregator, *stubProvider[HotelList]) {
	hotels := &stubProvider[HotelList]{
		name: "hotels",
		payload: HotelList{Options: []HotelOption{
			{Name: "Test Inn", PricePerNight: 200, Currency: "USD"},
		}},
	}
	a := NewAggregator(nil)
	a.Weather.Provider = &stubProvider[WeatherReport]{name: "weather", payload: WeatherReport{Current: "Sunny, 24°C"}}
	a.Hotels.Provider = hotels
	a.Restaurants.Provider = &stubProvider[RestaurantList]{
		name: "restaurants",
		payload: RestaurantList{Options: []RestaurantOption{
			{Name: "Chez Test", MealCost: 60, Currency: "USD"},
		}},
	}
	a.Itinerary.Provider = &stubProvider[Itinerary]{name: "itinerary", payload: Itinerary{Days: []Day{{Number: 1}}}}
	a.Insights.Provider = &stubProvider[InsightSet]{
		name:    "insights",
		payload: InsightSet{TransportDaily: 16, TransportCurrency: "USD"},
	}
	return a, hotels
}

func TestPlanAllLive(t *testing.T) {
	a, _ := liveAggregator()
	report, err := a.Plan(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if report.ID == "" {
		t.Error("report has no ID")
	}
	for name, live := range map[string]bool{
		"weather":     report.Weather.Live(),
		"hotels":      report.Hotels.Live(),
		"restaurants": report.Restaurants.Live(),
		"itinerary":   report.Itinerary.Live(),
		"insights":    report.Insights.Live(),
	} {
		if !live {
			t.Errorf("%s outcome degraded, want live", name)
		}
	}
	// 200 + 180 + 16 = 396 daily against a 500 daily budget.
	if report.Budget.Status != WithinBudget {
		t.Errorf("budget status = %s, want %s", report.Budget.Status, WithinBudget)
	}
	if report.Budget.EstimatedDailyCost != 396 {
		t.Errorf("estimated daily cost = %v, want 396", report.Budget.EstimatedDailyCost)
	}
}

func TestPlanProviderFailureIsIsolated(t *testing.T) {
	a, hotels := liveAggregator()
	hotels.err = errors.New("upstream 500")

	report, err := a.Plan(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if report.Hotels.Live() {
		t.Error("hotels outcome live, want degraded")
	}
	if report.Hotels.Reason != "upstream 500" {
		t.Errorf("hotels reason = %q, want the provider error text", report.Hotels.Reason)
	}
	if len(report.Hotels.Payload.Options) == 0 {
		t.Error("degraded hotels outcome has no fallback payload")
	}
	if !report.Weather.Live() || !report.Restaurants.Live() {
		t.Error("unrelated outcomes degraded by a hotels failure")
	}
	// The degraded fallback prices must not count as evidence.
	if _, ok := report.Budget.CategoryMeans[CostAccommodation]; ok && report.Budget.CategoryMeans[CostAccommodation] != 0 {
		t.Errorf("accommodation mean = %v, want 0 (fallback prices are display only)",
			report.Budget.CategoryMeans[CostAccommodation])
	}
}

func TestPlanTimeoutDegrades(t *testing.T) {
	a, hotels := liveAggregator()
	hotels.delay = 200 * time.Millisecond
	a.Hotels.Timeout = 20 * time.Millisecond

	report, err := a.Plan(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if report.Hotels.Live() {
		t.Error("hotels outcome live, want degraded after timeout")
	}
	if report.Hotels.Reason == "" {
		t.Error("degraded outcome has no reason")
	}
}

func TestPlanRunsProvidersConcurrently(t *testing.T) {
	a, _ := liveAggregator()
	delay := 80 * time.Millisecond
	a.Weather.Provider.(*stubProvider[WeatherReport]).delay = delay
	a.Hotels.Provider.(*stubProvider[HotelList]).delay = delay
	a.Restaurants.Provider.(*stubProvider[RestaurantList]).delay = delay
	a.Itinerary.Provider.(*stubProvider[Itinerary]).delay = delay
	a.Insights.Provider.(*stubProvider[InsightSet]).delay = delay

	start := time.Now()
	if _, err := a.Plan(context.Background(), validRequest()); err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*delay {
		t.Errorf("Plan() took %v with five %v providers, expected near-parallel execution", elapsed, delay)
	}
}

func TestPlanCancellation(t *testing.T) {
	a, hotels := liveAggregator()
	hotels.delay = 100 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	report, err := a.Plan(ctx, validRequest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Plan() error = %v, want context.Canceled", err)
	}
	if report != nil {
		t.Error("cancelled Plan() returned a partial report")
	}
}

func TestPlanRejectsInvalidRequestBeforeProviders(t *testing.T) {
	a, hotels := liveAggregator()
	req := validRequest()
	req.Destination = ""

	if _, err := a.Plan(context.Background(), req); !errors.Is(err, ErrEmptyDestination) {
		t.Fatalf("Plan() error = %v, want %v", err, ErrEmptyDestination)
	}
	if n := hotels.calls.Load(); n != 0 {
		t.Errorf("provider called %d times for an invalid request, want 0", n)
	}
}

func TestPlanAllDegraded(t *testing.T) {
	// Nothing configured: every adapter degrades to its fallback.
	a := NewAggregator(nil)
	report, err := a.Plan(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if report.Weather.Live() || report.Hotels.Live() || report.Restaurants.Live() ||
		report.Itinerary.Live() || report.Insights.Live() {
		t.Error("outcome live with no providers configured")
	}
	if len(report.Hotels.Payload.Options) == 0 {
		t.Error("degraded hotels outcome has no fallback options")
	}
	if len(report.Itinerary.Payload.Days) != validRequest().Days() {
		t.Errorf("fallback itinerary has %d days, want %d", len(report.Itinerary.Payload.Days), validRequest().Days())
	}
	if report.Budget.Status != InsufficientData {
		t.Errorf("budget status = %s, want %s with no live data", report.Budget.Status, InsufficientData)
	}
}

type fixedRate float64

func (f fixedRate) Rate(ctx context.Context, from, to string) (float64, error) {
	return float64(f), nil
}

type failingRate struct{}

func (failingRate) Rate(ctx context.Context, from, to string) (float64, error) {
	return 0, errors.New("unknown pair")
}

func TestPlanConvertsForeignSignals(t *testing.T) {
	a, hotels := liveAggregator()
	hotels.payload = HotelList{Options: []HotelOption{
		{Name: "Hôtel Cent", PricePerNight: 100, Currency: "EUR"},
	}}

	t.Run("converted into the budget currency", func(t *testing.T) {
		a.Rates = fixedRate(1.1)
		report, err := a.Plan(context.Background(), validRequest())
		if err != nil {
			t.Fatalf("Plan() error: %v", err)
		}
		if got := report.Budget.CategoryMeans[CostAccommodation]; got != 110 {
			t.Errorf("accommodation mean = %v, want 110 after conversion", got)
		}
	})

	t.Run("unconvertible signal leaves category missing", func(t *testing.T) {
		a.Rates = failingRate{}
		report, err := a.Plan(context.Background(), validRequest())
		if err != nil {
			t.Fatalf("Plan() error: %v", err)
		}
		if got := report.Budget.CategoryMeans[CostAccommodation]; got != 0 {
			t.Errorf("accommodation mean = %v, want 0 when conversion fails", got)
		}
	})
}
