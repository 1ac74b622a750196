package source

import (
	"context"
	"math/rand/v2"

	"propinvest/internal/domain/investment"
	"propinvest/internal/domain/location"
)

// FixedMarketData answers the same figures for every location.
type FixedMarketData struct {
	AppreciationRate float64
	RentalYield      float64
}

func NewFixedMarketData() FixedMarketData {
	return FixedMarketData{
		AppreciationRate: investment.DefaultAppreciationRate,
		RentalYield:      investment.DefaultRentalYield,
	}
}

func (f FixedMarketData) MarketData(context.Context, string) (investment.MarketData, error) {
	return investment.MarketData{AppreciationRate: f.AppreciationRate, RentalYield: f.RentalYield}, nil
}

// RandomMarketData draws appreciation uniformly from [0.04, 0.07). It carries
// no market signal and exists for demos.
type RandomMarketData struct {
	float func() float64
}

func NewRandomMarketData() *RandomMarketData { return &RandomMarketData{float: rand.Float64} }

func (r *RandomMarketData) MarketData(context.Context, string) (investment.MarketData, error) {
	return investment.MarketData{
		AppreciationRate: 0.04 + r.float()*0.03,
		RentalYield:      investment.DefaultRentalYield,
	}, nil
}

type LocationLookup interface {
	Lookup(name string) (location.Location, bool)
}

// CatalogMarketData reads per-location figures from the catalog and uses
// fallback for locations, or fields, the catalog does not know.
type CatalogMarketData struct {
	catalog  LocationLookup
	fallback investment.MarketDataSource
}

func NewCatalogMarketData(catalog LocationLookup, fallback investment.MarketDataSource) *CatalogMarketData {
	return &CatalogMarketData{catalog: catalog, fallback: fallback}
}

func (c *CatalogMarketData) MarketData(ctx context.Context, name string) (investment.MarketData, error) {
	out, err := c.fallback.MarketData(ctx, name)
	if err != nil {
		return investment.MarketData{}, err
	}
	l, ok := c.catalog.Lookup(name)
	if !ok {
		return out, nil
	}
	if l.AppreciationRate != nil {
		out.AppreciationRate = *l.AppreciationRate
	}
	if l.RentalYield != nil {
		out.RentalYield = *l.RentalYield
	}
	return out, nil
}
