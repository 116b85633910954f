package planner

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single adapter call when no override is configured.
const DefaultTimeout = 12 * time.Second

// Provider is one external data source. Fetch returns the raw payload or an
// error; it never needs to worry about fallbacks, the adapter handles those.
type Provider[T any] interface {
	Name() string
	Fetch(ctx context.Context, req TripRequest) (T, error)
}

// Adapter wraps a provider with a wall-clock timeout and a static fallback.
// Its Resolve is total: every call ends in a live or degraded outcome.
type Adapter[T any] struct {
	Provider Provider[T]
	Timeout  time.Duration
	Fallback func(TripRequest) T
}

func (a Adapter[T]) fallback(req TripRequest) (zero T) {
	if a.Fallback != nil {
		return a.Fallback(req)
	}
	return zero
}

// Resolve runs the provider under the adapter's timeout. Timeouts, network
// errors, and a missing provider all degrade to the fallback payload; the
// error text is kept as the reason for logging and display.
func (a Adapter[T]) Resolve(ctx context.Context, req TripRequest) Outcome[T] {
	if a.Provider == nil {
		return Outcome[T]{
			Source:  "unconfigured",
			Status:  StatusDegraded,
			Reason:  "provider not configured",
			Payload: a.fallback(req),
		}
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		payload T
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		payload, err := a.Provider.Fetch(cctx, req)
		ch <- result{payload, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			log.Printf("⚠️  %s degraded: %v (using fallback)", a.Provider.Name(), r.err)
			return Outcome[T]{
				Source:  a.Provider.Name(),
				Status:  StatusDegraded,
				Reason:  r.err.Error(),
				Payload: a.fallback(req),
			}
		}
		return Outcome[T]{Source: a.Provider.Name(), Status: StatusLive, Payload: r.payload}
	case <-cctx.Done():
		log.Printf("⚠️  %s degraded: %v (using fallback)", a.Provider.Name(), cctx.Err())
		return Outcome[T]{
			Source:  a.Provider.Name(),
			Status:  StatusDegraded,
			Reason:  cctx.Err().Error(),
			Payload: a.fallback(req),
		}
	}
}

// RateSource converts between currencies before budget analysis. The trip
// planner treats it as one more external collaborator.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

// Aggregator fans a trip request out to the five provider adapters, joins
// their outcomes, and assembles the report. It never fails for a valid
// request: total provider unavailability still yields a fully degraded
// report with an insufficient-data verdict.
type Aggregator struct {
	Weather     Adapter[WeatherReport]
	Hotels      Adapter[HotelList]
	Restaurants Adapter[RestaurantList]
	Itinerary   Adapter[Itinerary]
	Insights    Adapter[InsightSet]

	Rates RateSource
	Split SplitPolicy
}

// NewAggregator returns an aggregator with default timeouts, the default
// budget split, and the static fallbacks wired. Callers attach providers.
func NewAggregator(rates RateSource) *Aggregator {
	return &Aggregator{
		Weather:     Adapter[WeatherReport]{Timeout: DefaultTimeout, Fallback: FallbackWeather},
		Hotels:      Adapter[HotelList]{Timeout: DefaultTimeout, Fallback: FallbackHotels},
		Restaurants: Adapter[RestaurantList]{Timeout: DefaultTimeout, Fallback: FallbackRestaurants},
		Itinerary:   Adapter[Itinerary]{Timeout: DefaultTimeout, Fallback: FallbackItinerary},
		Insights:    Adapter[InsightSet]{Timeout: DefaultTimeout, Fallback: FallbackInsights},
		Rates:       rates,
		Split:       DefaultSplit,
	}
}

// Plan validates the request, resolves all five adapters concurrently, and
// assembles the report after the join. Adapter calls share nothing and each
// writes only its own slot, so total latency is bounded by the slowest
// single adapter. A cancelled context yields an error, never a partial
// report.
func (a *Aggregator) Plan(ctx context.Context, req TripRequest) (*TripReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	report := &TripReport{
		ID:          uuid.New().String(),
		Request:     req,
		GeneratedAt: time.Now().UTC(),
	}

	var wg sync.WaitGroup
	wg.Add(5)
	go func() { defer wg.Done(); report.Weather = a.Weather.Resolve(ctx, req) }()
	go func() { defer wg.Done(); report.Hotels = a.Hotels.Resolve(ctx, req) }()
	go func() { defer wg.Done(); report.Restaurants = a.Restaurants.Resolve(ctx, req) }()
	go func() { defer wg.Done(); report.Itinerary = a.Itinerary.Resolve(ctx, req) }()
	go func() { defer wg.Done(); report.Insights = a.Insights.Resolve(ctx, req) }()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	split := a.Split
	if split == (SplitPolicy{}) {
		split = DefaultSplit
	}
	signals := a.convertSignals(ctx, req, liveCostSignals(report))
	report.Budget = AnalyzeBudget(req.Budget, req.Nights(), signals, split)
	return report, nil
}

// liveCostSignals harvests cost data from live outcomes only. Fallback
// payloads are display content, not evidence; an all-degraded run must
// produce an insufficient-data verdict.
func liveCostSignals(report *TripReport) []CostSignal {
	var signals []CostSignal
	if report.Hotels.Live() {
		signals = append(signals, report.Hotels.Payload.CostSignals()...)
	}
	if report.Restaurants.Live() {
		signals = append(signals, report.Restaurants.Payload.CostSignals()...)
	}
	if report.Insights.Live() {
		signals = append(signals, report.Insights.Payload.CostSignals()...)
	}
	return signals
}

// convertSignals brings every signal into the request currency. A signal
// whose currency cannot be converted is dropped so the analyzer counts its
// category as missing instead of comparing mismatched units.
func (a *Aggregator) convertSignals(ctx context.Context, req TripRequest, signals []CostSignal) []CostSignal {
	out := signals[:0]
	for _, s := range signals {
		if s.Currency == req.Budget.Currency {
			out = append(out, s)
			continue
		}
		if a.Rates == nil {
			log.Printf("⚠️  dropping %s signal: no rate source for %s→%s", s.Category, s.Currency, req.Budget.Currency)
			continue
		}
		rate, err := a.Rates.Rate(ctx, s.Currency, req.Budget.Currency)
		if err != nil {
			log.Printf("⚠️  dropping %s signal: %v", s.Category, err)
			continue
		}
		s.DailyAmount *= rate
		s.Currency = req.Budget.Currency
		out = append(out, s)
	}
	return out
}
