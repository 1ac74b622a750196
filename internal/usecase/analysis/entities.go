package analysis

import (
	"time"

	"propinvest/internal/domain/investment"
)

// Input is the presentation-neutral request. Optional figures are pointers;
// nil means "use the configured default" (or, for ExpectedRent, "resolve").
type Input struct {
	Location         string
	PropertyType     string
	PurchasePrice    float64
	ExpectedRent     *float64
	HoldingYears     int
	LoanAmount       float64
	LoanInterestRate *float64
	LoanTenureYears  *int
}

type ReportDTO struct {
	ReportID           string    `json:"report_id"`
	Location           string    `json:"location"`
	PropertyType       string    `json:"property_type"`
	PurchasePrice      float64   `json:"purchase_price"`
	ExpectedRent       *float64  `json:"expected_rent,omitempty"`
	ResolvedRent       float64   `json:"resolved_rent"`
	RentSource         string    `json:"rent_source"`
	HoldingYears       int       `json:"holding_years"`
	LoanAmount         float64   `json:"loan_amount"`
	LoanInterestRate   float64   `json:"loan_interest_rate"`
	LoanTenureYears    int       `json:"loan_tenure_years"`
	AppreciationRate   float64   `json:"appreciation_rate"`
	RentalYield        float64   `json:"rental_yield"`
	TotalRentIncome    float64   `json:"total_rent_income"`
	FinalPropertyValue float64   `json:"final_property_value"`
	ROIPercent         float64   `json:"roi_percent"`
	MonthlyEMI         float64   `json:"monthly_emi"`
	TotalEMIPaid       float64   `json:"total_emi_paid"`
	RiskLevel          string    `json:"risk_level"`
	RiskReason         string    `json:"risk_reason"`
	GeneratedAt        time.Time `json:"generated_at"`
}

func (d *ReportDTO) HasLoan() bool { return d.LoanAmount > 0 }

func toDTO(id string, r investment.Report) *ReportDTO {
	return &ReportDTO{
		ReportID:           id,
		Location:           r.Location,
		PropertyType:       r.PropertyType,
		PurchasePrice:      r.PurchasePrice,
		ExpectedRent:       r.ExpectedRent,
		ResolvedRent:       r.ResolvedRent,
		RentSource:         string(r.RentSource),
		HoldingYears:       r.HoldingYears,
		LoanAmount:         r.LoanAmount,
		LoanInterestRate:   r.LoanInterestRate,
		LoanTenureYears:    r.LoanTenureYears,
		AppreciationRate:   r.AppreciationRate,
		RentalYield:        r.RentalYield,
		TotalRentIncome:    r.TotalRentIncome,
		FinalPropertyValue: r.FinalPropertyValue,
		ROIPercent:         r.ROIPercent,
		MonthlyEMI:         r.MonthlyEMI,
		TotalEMIPaid:       r.TotalEMIPaid,
		RiskLevel:          string(r.RiskLevel),
		RiskReason:         r.RiskReason,
		GeneratedAt:        r.GeneratedAt,
	}
}
