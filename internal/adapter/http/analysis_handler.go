package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"propinvest/internal/domain/investment"
	"propinvest/internal/usecase/analysis"
	"propinvest/pkg/money"
)

type Analyzer interface {
	Analyze(ctx context.Context, in analysis.Input) (*analysis.ReportDTO, error)
}

type AnalysisHandler struct{ uc Analyzer }

func NewAnalysisHandler(uc Analyzer) *AnalysisHandler { return &AnalysisHandler{uc: uc} }

type analyzeReq struct {
	Location         string   `json:"location"           validate:"notblank"`
	PropertyType     string   `json:"property_type"      validate:"notblank"`
	PropertyPrice    *float64 `json:"property_price"     validate:"required,finite,gt=0"`
	HoldingYears     *int     `json:"holding_years"      validate:"required,gte=1"`
	LoanAmount       *float64 `json:"loan_amount"        validate:"required,finite,gte=0"`
	ExpectedRent     *float64 `json:"expected_rent"      validate:"omitempty,finite,gt=0"`
	LoanInterestRate *float64 `json:"loan_interest_rate" validate:"omitempty,finite,gte=0,lte=1"`
	LoanTenureYears  *int     `json:"loan_tenure_years"  validate:"omitempty,gte=1,lte=50"`
}

func (r analyzeReq) input() analysis.Input {
	return analysis.Input{
		Location:         r.Location,
		PropertyType:     r.PropertyType,
		PurchasePrice:    *r.PropertyPrice,
		ExpectedRent:     r.ExpectedRent,
		HoldingYears:     *r.HoldingYears,
		LoanAmount:       *r.LoanAmount,
		LoanInterestRate: r.LoanInterestRate,
		LoanTenureYears:  r.LoanTenureYears,
	}
}

// legacyReport keeps the field names existing /analyze clients read.
type legacyReport struct {
	Location           string  `json:"Location"`
	PropertyType       string  `json:"Property Type"`
	PurchasePrice      float64 `json:"Purchase Price"`
	ExpectedRent       float64 `json:"Expected Monthly Rent"`
	HoldingYears       int     `json:"Holding Period (Years)"`
	LoanAmount         float64 `json:"Loan Amount"`
	TotalRentIncome    float64 `json:"Estimated Total Rental Income"`
	FinalPropertyValue float64 `json:"Estimated Final Property Value"`
	ROIPercent         float64 `json:"Overall ROI (%)"`
}

func toLegacy(d *analysis.ReportDTO) legacyReport {
	return legacyReport{
		Location:           d.Location,
		PropertyType:       d.PropertyType,
		PurchasePrice:      d.PurchasePrice,
		ExpectedRent:       d.ResolvedRent,
		HoldingYears:       d.HoldingYears,
		LoanAmount:         d.LoanAmount,
		TotalRentIncome:    d.TotalRentIncome,
		FinalPropertyValue: d.FinalPropertyValue,
		ROIPercent:         d.ROIPercent,
	}
}

// bindJSON binds, validates and runs the request. A nil report means the
// error response has already been written.
func (h *AnalysisHandler) bindJSON(c echo.Context) (*analysis.ReportDTO, error) {
	var req analyzeReq
	if err := c.Bind(&req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return nil, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Analyze(c.Request().Context(), req.input())
	if err != nil {
		return nil, writeAnalyzeError(c, err)
	}
	return dto, nil
}

// Analyze answers POST /analyze with the legacy field set.
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	dto, err := h.bindJSON(c)
	if dto == nil {
		return err
	}
	return c.JSON(http.StatusOK, toLegacy(dto))
}

// CreateAnalysis answers POST /api/v1/analyses with the full report.
func (h *AnalysisHandler) CreateAnalysis(c echo.Context) error {
	dto, err := h.bindJSON(c)
	if dto == nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto)
}

func writeAnalyzeError(c echo.Context, err error) error {
	if errors.Is(err, investment.ErrInvalidArgument) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	c.Logger().Errorf("analyze: %v", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// ---- HTML flow ----

type analyzeFormReq struct {
	Location      string `form:"location"       validate:"notblank"`
	PropertyType  string `form:"property_type"  validate:"notblank"`
	PropertyPrice string `form:"property_price" validate:"required,amount"`
	ExpectedRent  string `form:"expected_rent"  validate:"omitempty,amount"`
	HoldingYears  string `form:"holding_years"  validate:"required,number"`
	LoanAmount    string `form:"loan_amount"    validate:"omitempty,amount"`
}

// input converts validated form strings; blank rent resolves through the
// fallback chain and blank loan means no loan.
func (r analyzeFormReq) input() (analysis.Input, error) {
	in := analysis.Input{Location: r.Location, PropertyType: r.PropertyType}
	var err error
	if in.PurchasePrice, err = money.ParseAmount(r.PropertyPrice); err != nil {
		return in, err
	}
	if r.ExpectedRent != "" {
		rent, err := money.ParseAmount(r.ExpectedRent)
		if err != nil {
			return in, err
		}
		in.ExpectedRent = &rent
	}
	if in.HoldingYears, err = strconv.Atoi(r.HoldingYears); err != nil {
		return in, err
	}
	if r.LoanAmount != "" {
		if in.LoanAmount, err = money.ParseAmount(r.LoanAmount); err != nil {
			return in, err
		}
	}
	return in, nil
}

type formPage struct {
	Values analyzeFormReq
	Errors []FieldError
}

type resultPage struct {
	ReportID           string
	Location           string
	PropertyType       string
	PurchasePrice      string
	ExpectedRent       string
	RentSource         string
	HoldingYears       int
	LoanAmount         string
	HasLoan            bool
	MonthlyEMI         string
	TotalEMIPaid       string
	TotalRentIncome    string
	FinalPropertyValue string
	ROI                string
	RiskLevel          string
	RiskReason         string
}

func toResultPage(d *analysis.ReportDTO) resultPage {
	return resultPage{
		ReportID:           d.ReportID,
		Location:           d.Location,
		PropertyType:       d.PropertyType,
		PurchasePrice:      money.FormatINR(d.PurchasePrice),
		ExpectedRent:       money.FormatINR(d.ResolvedRent),
		RentSource:         d.RentSource,
		HoldingYears:       d.HoldingYears,
		LoanAmount:         money.FormatINR(d.LoanAmount),
		HasLoan:            d.HasLoan(),
		MonthlyEMI:         money.FormatINR(d.MonthlyEMI),
		TotalEMIPaid:       money.FormatINR(d.TotalEMIPaid),
		TotalRentIncome:    money.FormatINR(d.TotalRentIncome),
		FinalPropertyValue: money.FormatINR(d.FinalPropertyValue),
		ROI:                money.FormatPercent(d.ROIPercent),
		RiskLevel:          d.RiskLevel,
		RiskReason:         d.RiskReason,
	}
}

func (h *AnalysisHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", nil)
}

func (h *AnalysisHandler) Form(c echo.Context) error {
	return c.Render(http.StatusOK, "form.html", formPage{})
}

func (h *AnalysisHandler) AnalyzeForm(c echo.Context) error {
	var req analyzeFormReq
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "form.html", formPage{
			Errors: []FieldError{{Field: "_", Message: "invalid form submission"}},
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusUnprocessableEntity, "form.html", formPage{Values: req, Errors: ToFieldErrors(err)})
	}
	in, err := req.input()
	if err != nil {
		return c.Render(http.StatusUnprocessableEntity, "form.html", formPage{Values: req, Errors: ToFieldErrors(err)})
	}
	dto, err := h.uc.Analyze(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, investment.ErrInvalidArgument) {
			return c.Render(http.StatusUnprocessableEntity, "form.html", formPage{Values: req, Errors: ToFieldErrors(err)})
		}
		c.Logger().Errorf("analyze form: %v", err)
		return c.Render(http.StatusInternalServerError, "form.html", formPage{
			Values: req,
			Errors: []FieldError{{Field: "_", Message: "analysis failed, please retry"}},
		})
	}
	return c.Render(http.StatusOK, "result.html", toResultPage(dto))
}
