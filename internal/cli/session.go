package cli

import (
	"context"

	"propinvest/internal/usecase/analysis"
	"propinvest/pkg/money"
)

// RentEstimator offers a rent estimate before the user types one.
type RentEstimator interface {
	EstimateRent(ctx context.Context, location string) (float64, bool)
}

// Ask runs the prompt sequence and returns the collected input.
func Ask(ctx context.Context, p *Prompter, est RentEstimator) (analysis.Input, error) {
	var in analysis.Input
	var err error

	p.Println("Enter Property Investment Details")
	if in.Location, err = p.Text("Location (City/Area): "); err != nil {
		return in, err
	}
	if in.PropertyType, err = p.Text("Property Type (Apartment/Villa/Plot/Commercial): "); err != nil {
		return in, err
	}
	if in.PurchasePrice, _, err = p.Amount("Purchase Price (₹): ", false, true); err != nil {
		return in, err
	}

	if rent, ok := est.EstimateRent(ctx, in.Location); ok {
		p.Printf("Auto-fetched approximate monthly rent for %s: %s\n", in.Location, money.FormatINRWhole(rent))
		use, err := p.YesNo("Do you want to use this rent? (yes/no): ")
		if err != nil {
			return in, err
		}
		if use {
			in.ExpectedRent = &rent
		} else {
			v, _, err := p.Amount("Enter your expected Monthly Rent (₹): ", false, true)
			if err != nil {
				return in, err
			}
			in.ExpectedRent = &v
		}
	} else {
		v, ok, err := p.Amount("Expected Monthly Rent (₹) [blank for typical rent]: ", true, true)
		if err != nil {
			return in, err
		}
		if ok {
			in.ExpectedRent = &v
		}
	}

	if in.HoldingYears, err = p.Years("Planned Holding Period (Years): "); err != nil {
		return in, err
	}
	if in.LoanAmount, _, err = p.Amount("Loan Amount (₹) [Enter 0 if no loan]: ", true, false); err != nil {
		return in, err
	}
	return in, nil
}
