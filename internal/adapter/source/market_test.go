package source

import (
	"context"
	"errors"
	"testing"

	"propinvest/internal/domain/investment"
	"propinvest/internal/domain/location"
	"propinvest/internal/testutil/sourcemock"
)

type lookupMap map[string]location.Location

func (m lookupMap) Lookup(name string) (location.Location, bool) {
	l, ok := m[investment.NormalizeLocation(name)]
	return l, ok
}

func f64(v float64) *float64 { return &v }

func TestFixedMarketData(t *testing.T) {
	md, err := NewFixedMarketData().MarketData(context.Background(), "anywhere")
	if err != nil {
		t.Fatal(err)
	}
	if md.AppreciationRate != 0.06 || md.RentalYield != 0.035 {
		t.Fatalf("unexpected market data: %+v", md)
	}
}

func TestRandomMarketData_Range(t *testing.T) {
	for _, f := range []float64{0, 0.5, 0.999999} {
		r := &RandomMarketData{float: func() float64 { return f }}
		md, _ := r.MarketData(context.Background(), "x")
		if md.AppreciationRate < 0.04 || md.AppreciationRate >= 0.07 {
			t.Fatalf("rate %v outside [0.04, 0.07)", md.AppreciationRate)
		}
	}
	r := NewRandomMarketData()
	for i := 0; i < 100; i++ {
		md, _ := r.MarketData(context.Background(), "x")
		if md.AppreciationRate < 0.04 || md.AppreciationRate >= 0.07 || md.RentalYield != 0.035 {
			t.Fatalf("unexpected draw: %+v", md)
		}
	}
}

func TestCatalogMarketData(t *testing.T) {
	cat := lookupMap{
		"mumbai": {Name: "mumbai", AppreciationRate: f64(0.08), RentalYield: f64(0.028)},
		"pune":   {Name: "pune", AppreciationRate: f64(0.05)},
	}
	src := NewCatalogMarketData(cat, NewFixedMarketData())
	ctx := context.Background()

	md, _ := src.MarketData(ctx, "Mumbai")
	if md.AppreciationRate != 0.08 || md.RentalYield != 0.028 {
		t.Fatalf("mumbai: %+v", md)
	}
	md, _ = src.MarketData(ctx, "pune")
	if md.AppreciationRate != 0.05 || md.RentalYield != 0.035 {
		t.Fatalf("pune should keep fallback yield: %+v", md)
	}
	md, _ = src.MarketData(ctx, "goa")
	if md.AppreciationRate != 0.06 {
		t.Fatalf("unknown location should use fallback: %+v", md)
	}
}

func TestCatalogMarketData_FallbackError(t *testing.T) {
	boom := errors.New("boom")
	src := NewCatalogMarketData(lookupMap{}, &sourcemock.Market{MarketDataFn: func(ctx context.Context, loc string) (investment.MarketData, error) {
		return investment.MarketData{}, boom
	}})
	if _, err := src.MarketData(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestRiskAssessors(t *testing.T) {
	seen := map[investment.RiskLevel]bool{}
	for i := 0; i < 3; i++ {
		r := &RandomRiskAssessor{intn: func(int) int { return i }}
		a, err := r.AssessRisk(context.Background(), "pune", "Villa")
		if err != nil {
			t.Fatal(err)
		}
		if a.Reason == "" {
			t.Fatal("reason must be set")
		}
		seen[a.Level] = true
	}
	if len(seen) != 3 {
		t.Fatalf("levels seen = %v", seen)
	}

	a, _ := StaticRiskAssessor{Level: investment.RiskMedium, Reason: "fixed"}.AssessRisk(context.Background(), "", "")
	if a.Level != investment.RiskMedium || a.Reason != "fixed" {
		t.Fatalf("static: %+v", a)
	}
}
