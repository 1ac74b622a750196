package investment

import "time"

const (
	DefaultAppreciationRate = 0.06
	DefaultRentalYield      = 0.035
	DefaultRent             = 15000.0
	DefaultLoanInterestRate = 0.085
	DefaultLoanTenureYears  = 20
)

type RiskLevel string

const (
	RiskLow     RiskLevel = "Low"
	RiskMedium  RiskLevel = "Medium"
	RiskHigh    RiskLevel = "High"
	RiskUnknown RiskLevel = "Unknown"
)

// RentSource records which step of the fallback chain produced the rent.
type RentSource string

const (
	RentExplicit RentSource = "explicit"
	RentEstimate RentSource = "estimate"
	RentFallback RentSource = "fallback"
	RentDefault  RentSource = "default"
)

// Request is a single investment question. ExpectedRent is nil when the
// caller wants the rent resolved through the fallback chain.
type Request struct {
	Location         string
	PropertyType     string
	PurchasePrice    float64
	ExpectedRent     *float64
	HoldingYears     int
	LoanAmount       float64
	AppreciationRate float64
	LoanInterestRate float64
	LoanTenureYears  int
}

type MarketData struct {
	AppreciationRate float64
	RentalYield      float64
}

type Assessment struct {
	Level  RiskLevel
	Reason string
}

type ROIResult struct {
	ROIPercent         float64
	TotalRentIncome    float64
	FinalPropertyValue float64
}

type Report struct {
	Location         string
	PropertyType     string
	PurchasePrice    float64
	ExpectedRent     *float64
	HoldingYears     int
	LoanAmount       float64
	AppreciationRate float64
	RentalYield      float64
	LoanInterestRate float64
	LoanTenureYears  int

	ResolvedRent       float64
	RentSource         RentSource
	TotalRentIncome    float64
	FinalPropertyValue float64
	ROIPercent         float64
	MonthlyEMI         float64
	TotalEMIPaid       float64
	RiskLevel          RiskLevel
	RiskReason         string

	GeneratedAt time.Time
}

func (r Report) HasLoan() bool { return r.LoanAmount > 0 }
