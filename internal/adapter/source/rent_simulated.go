package source

import (
	"context"
	"math/rand/v2"
)

// SimulatedRentEstimator returns 15000 +/- 3000, the demo behaviour used
// while no listing integration exists.
type SimulatedRentEstimator struct {
	intn func(n int) int
}

func NewSimulatedRentEstimator() *SimulatedRentEstimator {
	return &SimulatedRentEstimator{intn: rand.IntN}
}

func (s *SimulatedRentEstimator) EstimateRent(_ context.Context, _ string) (float64, error) {
	return float64(15000 - 3000 + s.intn(6000)), nil
}
