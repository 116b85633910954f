package planner

import (
	"errors"
	"testing"
	"time"
)

func validRequest() TripRequest {
	return TripRequest{
		Destination: "Paris",
		StartDate:   time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
		Travelers:   2,
		Budget:      Money{Amount: 2000, Currency: "USD"},
	}
}

func TestTripRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TripRequest)
		want   error
	}{
		{"valid", func(r *TripRequest) {}, nil},
		{"empty destination", func(r *TripRequest) { r.Destination = "" }, ErrEmptyDestination},
		{"end before start", func(r *TripRequest) { r.EndDate = r.StartDate.AddDate(0, 0, -1) }, ErrInvalidDateRange},
		{"end equals start", func(r *TripRequest) { r.EndDate = r.StartDate }, ErrInvalidDateRange},
		{"zero travelers", func(r *TripRequest) { r.Travelers = 0 }, ErrNoTravelers},
		{"zero budget", func(r *TripRequest) { r.Budget.Amount = 0 }, ErrInvalidBudget},
		{"negative budget", func(r *TripRequest) { r.Budget.Amount = -50 }, ErrInvalidBudget},
		{"no currency", func(r *TripRequest) { r.Budget.Currency = "" }, ErrNoCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			if err := req.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTripRequestDates(t *testing.T) {
	req := validRequest()
	if got := req.Nights(); got != 4 {
		t.Errorf("Nights() = %d, want 4", got)
	}
	if got := req.Days(); got != 5 {
		t.Errorf("Days() = %d, want 5", got)
	}
	dates := req.TripDates()
	if len(dates) != 5 {
		t.Fatalf("TripDates() returned %d dates, want 5", len(dates))
	}
	if !dates[0].Equal(req.StartDate) || !dates[4].Equal(req.EndDate) {
		t.Errorf("TripDates() = %v..%v, want %v..%v", dates[0], dates[4], req.StartDate, req.EndDate)
	}
}

func TestCostSignals(t *testing.T) {
	t.Run("hotels mean nightly price", func(t *testing.T) {
		list := HotelList{Options: []HotelOption{
			{Name: "A", PricePerNight: 180, Currency: "USD"},
			{Name: "B", PricePerNight: 220, Currency: "USD"},
			{Name: "C"}, // no price, excluded from the mean
		}}
		signals := list.CostSignals()
		if len(signals) != 1 {
			t.Fatalf("got %d signals, want 1", len(signals))
		}
		if signals[0].Category != CostAccommodation || signals[0].DailyAmount != 200 {
			t.Errorf("signal = %+v, want accommodation 200", signals[0])
		}
	})

	t.Run("empty hotel list yields nothing", func(t *testing.T) {
		if got := (HotelList{}).CostSignals(); got != nil {
			t.Errorf("CostSignals() = %v, want nil", got)
		}
	})

	t.Run("restaurants three meals a day", func(t *testing.T) {
		list := RestaurantList{Options: []RestaurantOption{
			{Name: "A", MealCost: 30, Currency: "USD"},
			{Name: "B", MealCost: 90, Currency: "USD"},
		}}
		signals := list.CostSignals()
		if len(signals) != 1 {
			t.Fatalf("got %d signals, want 1", len(signals))
		}
		if signals[0].Category != CostFood || signals[0].DailyAmount != 180 {
			t.Errorf("signal = %+v, want food 180", signals[0])
		}
	})

	t.Run("insights transport estimate", func(t *testing.T) {
		set := InsightSet{TransportDaily: 16, TransportCurrency: "USD"}
		signals := set.CostSignals()
		if len(signals) != 1 || signals[0].Category != CostTransport || signals[0].DailyAmount != 16 {
			t.Errorf("signals = %+v, want one transport signal of 16", signals)
		}
		if got := (InsightSet{}).CostSignals(); got != nil {
			t.Errorf("empty set CostSignals() = %v, want nil", got)
		}
	})
}
