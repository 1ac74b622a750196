package source

import (
	"context"
	"math/rand/v2"

	"propinvest/internal/domain/investment"
)

const mockedRiskReason = "Based on general location saturation and demand trends (mocked)"

// RandomRiskAssessor picks a level uniformly; no signal, demo only.
type RandomRiskAssessor struct {
	intn func(n int) int
}

func NewRandomRiskAssessor() *RandomRiskAssessor { return &RandomRiskAssessor{intn: rand.IntN} }

var riskLevels = []investment.RiskLevel{investment.RiskLow, investment.RiskMedium, investment.RiskHigh}

func (r *RandomRiskAssessor) AssessRisk(context.Context, string, string) (investment.Assessment, error) {
	return investment.Assessment{
		Level:  riskLevels[r.intn(len(riskLevels))],
		Reason: mockedRiskReason,
	}, nil
}

type StaticRiskAssessor struct {
	Level  investment.RiskLevel
	Reason string
}

func (s StaticRiskAssessor) AssessRisk(context.Context, string, string) (investment.Assessment, error) {
	return investment.Assessment{Level: s.Level, Reason: s.Reason}, nil
}
