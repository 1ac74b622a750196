package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"propinvest/internal/domain/investment"
	"propinvest/internal/infrastructure/logging"
)

func TestHTTPRentEstimator_Success(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("searchString")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"monthly_rent": 17250.5}`))
	}))
	defer srv.Close()

	est := NewHTTPRentEstimator(srv.URL+"/api/v1/search?lang=en", time.Second, logging.Discard())
	got, err := est.EstimateRent(context.Background(), "Navi Mumbai")
	if err != nil {
		t.Fatalf("EstimateRent: %v", err)
	}
	if got != 17250.5 {
		t.Fatalf("rent = %v, want 17250.5", got)
	}
	if gotQuery != "Navi Mumbai" {
		t.Fatalf("searchString = %q", gotQuery)
	}
}

func TestHTTPRentEstimator_Unavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusBadGateway, `{}`},
		{"bad json", http.StatusOK, `<html>`},
		{"missing field", http.StatusOK, `{"listings": []}`},
		{"zero rent", http.StatusOK, `{"monthly_rent": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			est := NewHTTPRentEstimator(srv.URL, time.Second, logging.Discard())
			_, err := est.EstimateRent(context.Background(), "pune")
			if !errors.Is(err, investment.ErrCollaboratorUnavailable) {
				t.Fatalf("err = %v, want ErrCollaboratorUnavailable", err)
			}
		})
	}
}

func TestHTTPRentEstimator_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	est := NewHTTPRentEstimator(srv.URL, 50*time.Millisecond, logging.Discard())
	start := time.Now()
	_, err := est.EstimateRent(context.Background(), "pune")
	if !errors.Is(err, investment.ErrCollaboratorUnavailable) {
		t.Fatalf("err = %v, want ErrCollaboratorUnavailable", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not honoured")
	}
}

func TestSimulatedRentEstimator_Range(t *testing.T) {
	for _, n := range []int{0, 5999} {
		s := &SimulatedRentEstimator{intn: func(int) int { return n }}
		got, err := s.EstimateRent(context.Background(), "x")
		if err != nil {
			t.Fatal(err)
		}
		if got < 12000 || got >= 18000 {
			t.Fatalf("rent %v outside [12000, 18000)", got)
		}
	}
	s := NewSimulatedRentEstimator()
	for i := 0; i < 100; i++ {
		got, _ := s.EstimateRent(context.Background(), "x")
		if got < 12000 || got >= 18000 {
			t.Fatalf("rent %v outside [12000, 18000)", got)
		}
	}
}
