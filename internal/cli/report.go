package cli

import (
	"fmt"
	"io"
	"strings"

	"propinvest/internal/usecase/analysis"
	"propinvest/pkg/money"
)

func PrintReport(w io.Writer, r *analysis.ReportDTO) {
	rule := strings.Repeat("-", 50)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "INVESTMENT ANALYSIS REPORT")
	fmt.Fprintf(w, "Location: %s\n", r.Location)
	fmt.Fprintf(w, "Property Type: %s\n", r.PropertyType)
	fmt.Fprintf(w, "Purchase Price: %s\n", money.FormatINRWhole(r.PurchasePrice))
	fmt.Fprintf(w, "Expected Monthly Rent: %s (%s)\n", money.FormatINRWhole(r.ResolvedRent), r.RentSource)
	fmt.Fprintf(w, "Holding Period: %d years\n", r.HoldingYears)
	fmt.Fprintf(w, "Loan Amount: %s\n", money.FormatINRWhole(r.LoanAmount))
	if r.HasLoan() {
		fmt.Fprintf(w, "Estimated Monthly EMI: %s\n", money.FormatINRWhole(r.MonthlyEMI))
		fmt.Fprintf(w, "Total EMI Paid Over %d years: %s\n", r.HoldingYears, money.FormatINRWhole(r.TotalEMIPaid))
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Estimated Total Rental Income: %s\n", money.FormatINRWhole(r.TotalRentIncome))
	fmt.Fprintf(w, "Estimated Property Value After %d years: %s\n", r.HoldingYears, money.FormatINRWhole(r.FinalPropertyValue))
	fmt.Fprintf(w, "Overall Estimated ROI: %s\n", money.FormatPercent(r.ROIPercent))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Risk Level: %s\n", r.RiskLevel)
	fmt.Fprintf(w, "Risk Reason: %s\n", r.RiskReason)
}
