package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExchangeClientRate(t *testing.T) {
	t.Run("live rate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v4/latest/EUR" {
				t.Errorf("path = %s, want /v4/latest/EUR", r.URL.Path)
			}
			fmt.Fprint(w, `{"rates": {"USD": 1.09, "GBP": 0.85}}`)
		}))
		defer srv.Close()

		client := NewExchangeClient()
		client.baseURL = srv.URL

		rate, err := client.Rate(context.Background(), "eur", "usd")
		if err != nil {
			t.Fatalf("Rate() error: %v", err)
		}
		if rate != 1.09 {
			t.Errorf("rate = %v, want 1.09", rate)
		}
	})

	t.Run("same currency", func(t *testing.T) {
		client := NewExchangeClient()
		rate, err := client.Rate(context.Background(), "USD", "USD")
		if err != nil || rate != 1 {
			t.Errorf("Rate(USD, USD) = %v, %v, want 1, nil", rate, err)
		}
	})

	t.Run("static fallback when API is down", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewExchangeClient()
		client.baseURL = srv.URL

		rate, err := client.Rate(context.Background(), "EUR", "INR")
		if err != nil {
			t.Fatalf("Rate() error: %v, want static cross-rate", err)
		}
		want := 83.0 / 0.92
		if math.Abs(rate-want) > 1e-9 {
			t.Errorf("rate = %v, want %v", rate, want)
		}
	})

	t.Run("unknown pair", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewExchangeClient()
		client.baseURL = srv.URL
		if _, err := client.Rate(context.Background(), "XXX", "USD"); err == nil {
			t.Error("expected an error for an unknown currency pair")
		}
	})
}
