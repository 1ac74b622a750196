package investment

import (
	"math"
	"strings"
)

// EstimateFunc returns a monthly rent for a location, or ok=false when no
// usable estimate exists.
type EstimateFunc func(location string) (rent float64, ok bool)

// Validate rejects requests the calculator cannot answer. Loan terms are
// only checked when a loan is present.
func Validate(r Request) error {
	if strings.TrimSpace(r.Location) == "" {
		return invalid("location", "must not be empty")
	}
	if !finite(r.PurchasePrice) || r.PurchasePrice <= 0 {
		return invalid("purchase_price", "must be a positive number")
	}
	if r.ExpectedRent != nil && (!finite(*r.ExpectedRent) || *r.ExpectedRent <= 0) {
		return invalid("expected_rent", "must be a positive number when provided")
	}
	if r.HoldingYears < 1 {
		return invalid("holding_years", "must be at least 1")
	}
	if !finite(r.LoanAmount) || r.LoanAmount < 0 {
		return invalid("loan_amount", "must be zero or a positive number")
	}
	if !finite(r.AppreciationRate) || r.AppreciationRate <= -1 {
		return invalid("appreciation_rate", "must be greater than -1")
	}
	if r.LoanAmount > 0 {
		if !finite(r.LoanInterestRate) || r.LoanInterestRate < 0 {
			return invalid("loan_interest_rate", "must be zero or a positive number")
		}
		if r.LoanTenureYears < 1 {
			return invalid("loan_tenure_years", "must be at least 1")
		}
	}
	return nil
}

// ResolveRent picks the monthly rent in strict priority order: explicit,
// estimate, fallback table (case-insensitive), default.
func ResolveRent(explicit *float64, location string, estimate EstimateFunc, fallback map[string]float64, defaultRent float64) (float64, RentSource) {
	if explicit != nil && usable(*explicit) {
		return *explicit, RentExplicit
	}
	if estimate != nil {
		if v, ok := estimate(location); ok && usable(v) {
			return v, RentEstimate
		}
	}
	if v, ok := fallback[NormalizeLocation(location)]; ok && usable(v) {
		return v, RentFallback
	}
	return defaultRent, RentDefault
}

// NormalizeLocation is the key used for every per-location table.
func NormalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

func CalculateROI(purchasePrice, monthlyRent float64, holdingYears int, appreciationRate float64) (ROIResult, error) {
	if !finite(purchasePrice) || purchasePrice <= 0 {
		return ROIResult{}, invalid("purchase_price", "must be a positive number")
	}
	if !finite(monthlyRent) || monthlyRent < 0 {
		return ROIResult{}, invalid("monthly_rent", "must be zero or a positive number")
	}
	if holdingYears < 1 {
		return ROIResult{}, invalid("holding_years", "must be at least 1")
	}
	if !finite(appreciationRate) || appreciationRate <= -1 {
		return ROIResult{}, invalid("appreciation_rate", "must be greater than -1")
	}

	totalRent := monthlyRent * 12 * float64(holdingYears)
	final := purchasePrice * math.Pow(1+appreciationRate, float64(holdingYears))
	roi := (totalRent + (final - purchasePrice)) / purchasePrice * 100
	if !finite(roi) || !finite(final) {
		return ROIResult{}, invalid("appreciation_rate", "overflows over the holding period")
	}
	return ROIResult{ROIPercent: roi, TotalRentIncome: totalRent, FinalPropertyValue: final}, nil
}

// CalculateEMI returns the equal monthly installment that amortizes the
// loan over the tenure. A zero loan is always 0.
func CalculateEMI(loanAmount, annualInterestRate float64, loanTenureYears int) (float64, error) {
	if !finite(loanAmount) || loanAmount < 0 {
		return 0, invalid("loan_amount", "must be zero or a positive number")
	}
	if loanAmount == 0 {
		return 0, nil
	}
	if !finite(annualInterestRate) || annualInterestRate < 0 {
		return 0, invalid("loan_interest_rate", "must be zero or a positive number")
	}
	if loanTenureYears < 1 {
		return 0, invalid("loan_tenure_years", "must be at least 1")
	}

	n := float64(loanTenureYears * 12)
	if annualInterestRate == 0 {
		return loanAmount / n, nil
	}
	r := annualInterestRate / 12
	// g = (1+r)^n - 1, exact for tiny r where 1+r rounds to 1
	g := math.Expm1(n * math.Log1p(r))
	var emi float64
	switch {
	case g == 0:
		// r underflowed
		emi = loanAmount / n
	case math.IsInf(g, 1):
		// the balance never amortizes; the installment tends to the interest
		emi = loanAmount * r
	default:
		emi = loanAmount * r * (g + 1) / g
	}
	if !finite(emi) {
		return 0, invalid("loan_amount", "overflows the installment calculation")
	}
	return emi, nil
}

// AssembleReport composes the report; it adds no business rules beyond the
// EMI total.
func AssembleReport(req Request, rent float64, source RentSource, roi ROIResult, emi float64, risk Assessment, market MarketData) Report {
	totalEMI := 0.0
	if req.LoanAmount > 0 {
		totalEMI = emi * 12 * float64(req.HoldingYears)
	} else {
		emi = 0
	}
	return Report{
		Location:           req.Location,
		PropertyType:       req.PropertyType,
		PurchasePrice:      req.PurchasePrice,
		ExpectedRent:       req.ExpectedRent,
		HoldingYears:       req.HoldingYears,
		LoanAmount:         req.LoanAmount,
		AppreciationRate:   req.AppreciationRate,
		RentalYield:        market.RentalYield,
		LoanInterestRate:   req.LoanInterestRate,
		LoanTenureYears:    req.LoanTenureYears,
		ResolvedRent:       rent,
		RentSource:         source,
		TotalRentIncome:    roi.TotalRentIncome,
		FinalPropertyValue: roi.FinalPropertyValue,
		ROIPercent:         roi.ROIPercent,
		MonthlyEMI:         emi,
		TotalEMIPaid:       totalEMI,
		RiskLevel:          risk.Level,
		RiskReason:         risk.Reason,
	}
}

// Inputs bundles what the collaborators already produced for one request.
type Inputs struct {
	Estimate    EstimateFunc
	Fallback    map[string]float64
	DefaultRent float64
	Market      MarketData
	Risk        Assessment
}

// Analyze runs validation, rent resolution, ROI, EMI and assembly in order.
// req.AppreciationRate is used as given; callers copy it from in.Market.
func Analyze(req Request, in Inputs) (Report, error) {
	if err := Validate(req); err != nil {
		return Report{}, err
	}
	defaultRent := in.DefaultRent
	if !usable(defaultRent) {
		defaultRent = DefaultRent
	}
	rent, source := ResolveRent(req.ExpectedRent, req.Location, in.Estimate, in.Fallback, defaultRent)

	roi, err := CalculateROI(req.PurchasePrice, rent, req.HoldingYears, req.AppreciationRate)
	if err != nil {
		return Report{}, err
	}
	emi, err := CalculateEMI(req.LoanAmount, req.LoanInterestRate, req.LoanTenureYears)
	if err != nil {
		return Report{}, err
	}
	rep := AssembleReport(req, rent, source, roi, emi, in.Risk, in.Market)
	if !finite(rep.TotalEMIPaid) {
		return Report{}, invalid("loan_amount", "overflows the installment calculation")
	}
	return rep, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func usable(f float64) bool { return finite(f) && f > 0 }
