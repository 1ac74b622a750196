package investment

import "context"

// RentEstimateSource supplies a monthly rent for a location. An error or a
// non-positive value means "no estimate".
type RentEstimateSource interface {
	EstimateRent(ctx context.Context, location string) (float64, error)
}

type MarketDataSource interface {
	MarketData(ctx context.Context, location string) (MarketData, error)
}

type RiskAssessor interface {
	AssessRisk(ctx context.Context, location, propertyType string) (Assessment, error)
}

// FallbackTable exposes the static per-location rent table, keyed by
// NormalizeLocation.
type FallbackTable interface {
	Fallback() map[string]float64
}

// StaticTable is a FallbackTable backed by a fixed map.
type StaticTable map[string]float64

func (t StaticTable) Fallback() map[string]float64 { return t }

// DefaultFallbackRents is the built-in rent table.
func DefaultFallbackRents() map[string]float64 {
	return map[string]float64{
		"bangalore":  18000,
		"mumbai":     25000,
		"chennai":    15000,
		"hyderabad":  16000,
		"delhi":      22000,
		"pune":       19000,
		"coimbatore": 12000,
	}
}
