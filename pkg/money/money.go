// Package money formats and parses rupee amounts for display and input.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const Symbol = "₹"

var ErrMalformed = errors.New("malformed amount")

// FormatINR renders 1234567.891 as "₹1,234,567.89".
func FormatINR(amount float64) string {
	if amount < 0 {
		return "-" + Symbol + humanize.FormatFloat("#,###.##", -amount)
	}
	return Symbol + humanize.FormatFloat("#,###.##", amount)
}

// FormatINRWhole renders 1234567.891 as "₹1,234,568".
func FormatINRWhole(amount float64) string {
	if amount < 0 {
		return "-" + Symbol + humanize.FormatFloat("#,###.", -amount)
	}
	return Symbol + humanize.FormatFloat("#,###.", amount)
}

func FormatPercent(p float64) string { return fmt.Sprintf("%.2f%%", p) }

// ParseAmount accepts plain or grouped numbers with an optional rupee sign:
// "5000000", "5,000,000", "₹ 50,00,000.50", "5_000_000".
func ParseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, Symbol)
	clean = strings.TrimPrefix(clean, "Rs.")
	clean = strings.NewReplacer(",", "", "_", "", " ", "").Replace(clean)
	if clean == "" {
		return 0, fmt.Errorf("%w: empty", ErrMalformed)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrMalformed, s)
	}
	return f, nil
}
