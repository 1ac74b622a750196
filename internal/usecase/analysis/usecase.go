package analysis

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"propinvest/internal/domain/investment"
	"propinvest/pkg/id"
)

type Options struct {
	DefaultRent         float64
	LoanInterestRate    float64
	LoanTenureYears     int
	CollaboratorTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		DefaultRent:         investment.DefaultRent,
		LoanInterestRate:    investment.DefaultLoanInterestRate,
		LoanTenureYears:     investment.DefaultLoanTenureYears,
		CollaboratorTimeout: 3 * time.Second,
	}
}

// Usecase gathers collaborator outputs and hands them to the calculator.
// Collaborator failures are logged and treated as absent; only invalid
// input fails a request.
type Usecase struct {
	rent     investment.RentEstimateSource
	market   investment.MarketDataSource
	risk     investment.RiskAssessor
	fallback investment.FallbackTable
	opts     Options
	log      *logrus.Logger
	now      func() time.Time
}

// NewUsecase wires the collaborators. rent may be nil when no estimate
// source is configured.
func NewUsecase(rent investment.RentEstimateSource, market investment.MarketDataSource, risk investment.RiskAssessor,
	fallback investment.FallbackTable, opts Options, log *logrus.Logger) *Usecase {
	return &Usecase{
		rent: rent, market: market, risk: risk, fallback: fallback,
		opts: opts, log: log,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) request(in Input) investment.Request {
	rate := u.opts.LoanInterestRate
	if in.LoanInterestRate != nil {
		rate = *in.LoanInterestRate
	}
	tenure := u.opts.LoanTenureYears
	if in.LoanTenureYears != nil {
		tenure = *in.LoanTenureYears
	}
	return investment.Request{
		Location:         in.Location,
		PropertyType:     in.PropertyType,
		PurchasePrice:    in.PurchasePrice,
		ExpectedRent:     in.ExpectedRent,
		HoldingYears:     in.HoldingYears,
		LoanAmount:       in.LoanAmount,
		AppreciationRate: investment.DefaultAppreciationRate,
		LoanInterestRate: rate,
		LoanTenureYears:  tenure,
	}
}

func (u *Usecase) Analyze(ctx context.Context, in Input) (*ReportDTO, error) {
	req := u.request(in)
	if err := investment.Validate(req); err != nil {
		return nil, err
	}

	market := u.marketData(ctx, req.Location)
	req.AppreciationRate = market.AppreciationRate

	inputs := investment.Inputs{
		Fallback:    u.fallbackTable(),
		DefaultRent: u.opts.DefaultRent,
		Market:      market,
		Risk:        u.assessRisk(ctx, req.Location, req.PropertyType),
	}
	if req.ExpectedRent == nil {
		inputs.Estimate = u.estimateFunc(ctx)
	}

	rep, err := investment.Analyze(req, inputs)
	if err != nil {
		return nil, err
	}
	rep.GeneratedAt = u.now()

	dto := toDTO(id.NewID32(), rep)
	u.log.WithFields(logrus.Fields{
		"report_id":   dto.ReportID,
		"location":    dto.Location,
		"rent_source": dto.RentSource,
		"roi_percent": dto.ROIPercent,
	}).Info("investment analysed")
	return dto, nil
}

// EstimateRent exposes the rent collaborator to the interactive CLI, which
// offers the estimate to the user before asking for a rent.
func (u *Usecase) EstimateRent(ctx context.Context, location string) (float64, bool) {
	return u.estimateFunc(ctx)(location)
}

func (u *Usecase) estimateFunc(ctx context.Context) investment.EstimateFunc {
	return func(location string) (float64, bool) {
		if u.rent == nil {
			return 0, false
		}
		cctx, cancel := u.withTimeout(ctx)
		defer cancel()
		v, err := u.rent.EstimateRent(cctx, location)
		if err != nil {
			u.log.WithError(err).WithField("location", location).Warn("rent estimate unavailable, using fallback chain")
			return 0, false
		}
		return v, v > 0
	}
}

func (u *Usecase) marketData(ctx context.Context, location string) investment.MarketData {
	def := investment.MarketData{
		AppreciationRate: investment.DefaultAppreciationRate,
		RentalYield:      investment.DefaultRentalYield,
	}
	if u.market == nil {
		return def
	}
	cctx, cancel := u.withTimeout(ctx)
	defer cancel()
	md, err := u.market.MarketData(cctx, location)
	if err != nil {
		u.log.WithError(err).WithField("location", location).Warn("market data unavailable, using defaults")
		return def
	}
	if math.IsNaN(md.AppreciationRate) || math.IsInf(md.AppreciationRate, 0) || md.AppreciationRate <= -1 {
		u.log.WithFields(logrus.Fields{"location": location, "appreciation_rate": md.AppreciationRate}).
			Warn("market data out of range, using default appreciation")
		md.AppreciationRate = def.AppreciationRate
	}
	if math.IsNaN(md.RentalYield) || math.IsInf(md.RentalYield, 0) || md.RentalYield < 0 {
		u.log.WithFields(logrus.Fields{"location": location, "rental_yield": md.RentalYield}).
			Warn("market data out of range, using default rental yield")
		md.RentalYield = def.RentalYield
	}
	return md
}

func (u *Usecase) assessRisk(ctx context.Context, location, propertyType string) investment.Assessment {
	unknown := investment.Assessment{Level: investment.RiskUnknown, Reason: "risk assessment unavailable"}
	if u.risk == nil {
		return unknown
	}
	cctx, cancel := u.withTimeout(ctx)
	defer cancel()
	a, err := u.risk.AssessRisk(cctx, location, propertyType)
	if err != nil {
		u.log.WithError(err).WithField("location", location).Warn("risk assessment unavailable")
		return unknown
	}
	return a
}

func (u *Usecase) fallbackTable() map[string]float64 {
	if u.fallback == nil {
		return investment.DefaultFallbackRents()
	}
	return u.fallback.Fallback()
}

func (u *Usecase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.opts.CollaboratorTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, u.opts.CollaboratorTimeout)
}
