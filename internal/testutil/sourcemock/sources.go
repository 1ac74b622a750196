package sourcemock

import (
	"context"

	"propinvest/internal/domain/investment"
)

// Rent is a function-backed investment.RentEstimateSource. With no func set
// it reports the collaborator as unavailable.
type Rent struct {
	EstimateRentFn func(ctx context.Context, location string) (float64, error)
}

func (m *Rent) EstimateRent(ctx context.Context, location string) (float64, error) {
	if m.EstimateRentFn != nil {
		return m.EstimateRentFn(ctx, location)
	}
	return 0, investment.Unavailable("rent estimate", nil)
}

// Market defaults to the fixed 6% / 3.5% figures.
type Market struct {
	MarketDataFn func(ctx context.Context, location string) (investment.MarketData, error)
}

func (m *Market) MarketData(ctx context.Context, location string) (investment.MarketData, error) {
	if m.MarketDataFn != nil {
		return m.MarketDataFn(ctx, location)
	}
	return investment.MarketData{
		AppreciationRate: investment.DefaultAppreciationRate,
		RentalYield:      investment.DefaultRentalYield,
	}, nil
}

// Risk defaults to a Medium assessment.
type Risk struct {
	AssessRiskFn func(ctx context.Context, location, propertyType string) (investment.Assessment, error)
}

func (m *Risk) AssessRisk(ctx context.Context, location, propertyType string) (investment.Assessment, error) {
	if m.AssessRiskFn != nil {
		return m.AssessRiskFn(ctx, location, propertyType)
	}
	return investment.Assessment{Level: investment.RiskMedium, Reason: "mock"}, nil
}
