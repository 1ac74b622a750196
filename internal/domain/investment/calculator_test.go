package investment

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func noEstimate(string) (float64, bool) { return 0, false }

func TestCalculateROI_Scenario(t *testing.T) {
	got, err := CalculateROI(5_000_000, 20_000, 5, 0.06)
	require.NoError(t, err)

	assert.Equal(t, 1_200_000.0, got.TotalRentIncome)
	assert.InDelta(t, 6_691_127.888, got.FinalPropertyValue, 1e-3)
	assert.InDelta(t, 57.8225577, got.ROIPercent, 1e-6)
	// same expression order as the formula, so the result is exact
	want := (1_200_000 + (5_000_000*math.Pow(1.06, 5) - 5_000_000)) / 5_000_000 * 100
	assert.Equal(t, want, got.ROIPercent)
}

func TestCalculateROI_InvalidPrice(t *testing.T) {
	for _, price := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := CalculateROI(price, 10_000, 5, 0.06)
		require.Error(t, err, "price %v", price)
		assert.True(t, errors.Is(err, ErrInvalidArgument))

		var ae *ArgumentError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, "purchase_price", ae.Field)
	}
}

func TestCalculateROI_InvalidOtherInputs(t *testing.T) {
	_, err := CalculateROI(1_000_000, -1, 5, 0.06)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = CalculateROI(1_000_000, 1000, 0, 0.06)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = CalculateROI(1_000_000, 1000, 5, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCalculateROI_FinalValueVsRate(t *testing.T) {
	rates := []float64{-0.5, -0.05, -0.0001, 0, 0.0001, 0.04, 0.07, 0.5}
	for _, rate := range rates {
		for _, years := range []int{1, 5, 30} {
			got, err := CalculateROI(2_500_000, 10_000, years, rate)
			require.NoError(t, err)
			assert.Equal(t, rate >= 0, got.FinalPropertyValue >= 2_500_000,
				"rate=%v years=%d final=%v", rate, years, got.FinalPropertyValue)
		}
	}
}

func TestCalculateROI_MonotoneInRentAndRate(t *testing.T) {
	prev := math.Inf(-1)
	for rent := 0.0; rent <= 100_000; rent += 5_000 {
		got, err := CalculateROI(4_000_000, rent, 7, 0.05)
		require.NoError(t, err)
		assert.Greater(t, got.ROIPercent, prev)
		prev = got.ROIPercent
	}

	prev = math.Inf(-1)
	for rate := -0.2; rate <= 0.3; rate += 0.01 {
		got, err := CalculateROI(4_000_000, 12_000, 7, rate)
		require.NoError(t, err)
		assert.Greater(t, got.ROIPercent, prev)
		prev = got.ROIPercent
	}
}

func TestCalculateEMI_Scenario(t *testing.T) {
	emi, err := CalculateEMI(3_000_000, DefaultLoanInterestRate, DefaultLoanTenureYears)
	require.NoError(t, err)
	assert.InDelta(t, 26_034.697, emi, 1e-3)
	assert.InDelta(t, 1_562_081.82, emi*12*5, 1e-2)
}

func TestCalculateEMI_ZeroLoan(t *testing.T) {
	for _, tc := range []struct {
		rate   float64
		tenure int
	}{
		{0.085, 20}, {0, 0}, {-1, -5}, {math.NaN(), 1}, {0.5, 1},
	} {
		emi, err := CalculateEMI(0, tc.rate, tc.tenure)
		require.NoError(t, err)
		assert.Equal(t, 0.0, emi)
	}
}

func TestCalculateEMI_ZeroRateIsStraightLine(t *testing.T) {
	emi, err := CalculateEMI(1_200_000, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 10_000.0, emi)
}

func TestCalculateEMI_Invalid(t *testing.T) {
	_, err := CalculateEMI(-1, 0.085, 20)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = CalculateEMI(100, -0.01, 20)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = CalculateEMI(100, 0.085, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCalculateEMI_TinyRateApproachesStraightLine(t *testing.T) {
	straight := 3_000_000.0 / 240
	for _, rate := range []float64{1e-20, 1e-14, 1e-300, math.SmallestNonzeroFloat64} {
		emi, err := CalculateEMI(3_000_000, rate, 20)
		require.NoError(t, err, "rate %g", rate)
		require.False(t, math.IsInf(emi, 0) || math.IsNaN(emi), "rate %g gave %v", rate, emi)
		assert.InDelta(t, straight, emi, 1e-6, "rate %g", rate)
	}

	emi, err := CalculateEMI(3_000_000, 0.0001, 20)
	require.NoError(t, err)
	assert.Greater(t, emi, straight)
}

func TestCalculateEMI_LongTenureTendsToInterestOnly(t *testing.T) {
	interestOnly := 3_000_000 * 0.085 / 12
	for _, tenure := range []int{1_000, 100_000} {
		emi, err := CalculateEMI(3_000_000, 0.085, tenure)
		require.NoError(t, err, "tenure %d", tenure)
		assert.InDelta(t, interestOnly, emi, 1e-6, "tenure %d", tenure)
	}
}

func TestCalculateEMI_OverflowIsInvalid(t *testing.T) {
	_, err := CalculateEMI(math.MaxFloat64, 0.5, 20)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "err = %v", err)
}

func TestCalculateEMI_KnownMortgages(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     int
		want      float64
	}{
		{"200k at 4% over 25y", 200_000, 0.04, 25, 1055.67},
		{"300k at 5% over 30y", 300_000, 0.05, 30, 1610.46},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateEMI(tt.principal, tt.rate, tt.years)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.5)
		})
	}
}

func TestResolveRent_Priority(t *testing.T) {
	table := DefaultFallbackRents()
	estimate := func(string) (float64, bool) { return 17_500, true }

	rent, src := ResolveRent(ptr(21_000), "chennai", estimate, table, DefaultRent)
	assert.Equal(t, 21_000.0, rent)
	assert.Equal(t, RentExplicit, src)

	rent, src = ResolveRent(nil, "chennai", estimate, table, DefaultRent)
	assert.Equal(t, 17_500.0, rent)
	assert.Equal(t, RentEstimate, src)

	rent, src = ResolveRent(nil, "mumbai", noEstimate, table, DefaultRent)
	assert.Equal(t, 25_000.0, rent)
	assert.Equal(t, RentFallback, src)

	rent, src = ResolveRent(nil, "atlantis", noEstimate, table, 9_999)
	assert.Equal(t, 9_999.0, rent)
	assert.Equal(t, RentDefault, src)
}

func TestResolveRent_SkipsUnusableValues(t *testing.T) {
	table := map[string]float64{"pune": 0}
	bad := func(string) (float64, bool) { return -5, true }

	rent, src := ResolveRent(ptr(0), "pune", bad, table, DefaultRent)
	assert.Equal(t, DefaultRent, rent)
	assert.Equal(t, RentDefault, src)

	rent, src = ResolveRent(ptr(math.NaN()), "pune", nil, nil, DefaultRent)
	assert.Equal(t, DefaultRent, rent)
	assert.Equal(t, RentDefault, src)
}

func TestResolveRent_CaseInsensitiveFallback(t *testing.T) {
	table := DefaultFallbackRents()
	for _, loc := range []string{"Bangalore", "bangalore", "BANGALORE", "  Bangalore "} {
		rent, src := ResolveRent(nil, loc, noEstimate, table, DefaultRent)
		assert.Equal(t, 18_000.0, rent, loc)
		assert.Equal(t, RentFallback, src, loc)
	}
}

func TestResolveRent_EstimateReceivesLocation(t *testing.T) {
	var seen string
	ResolveRent(nil, "Delhi", func(loc string) (float64, bool) {
		seen = loc
		return 0, false
	}, nil, DefaultRent)
	assert.Equal(t, "Delhi", seen)
}

func TestValidate(t *testing.T) {
	base := Request{Location: "pune", PropertyType: "Villa", PurchasePrice: 1, HoldingYears: 1, LoanTenureYears: 20, LoanInterestRate: 0.085}
	require.NoError(t, Validate(base))

	tests := []struct {
		name  string
		mut   func(*Request)
		field string
	}{
		{"empty location", func(r *Request) { r.Location = "  " }, "location"},
		{"zero price", func(r *Request) { r.PurchasePrice = 0 }, "purchase_price"},
		{"zero explicit rent", func(r *Request) { r.ExpectedRent = ptr(0) }, "expected_rent"},
		{"negative explicit rent", func(r *Request) { r.ExpectedRent = ptr(-10) }, "expected_rent"},
		{"zero years", func(r *Request) { r.HoldingYears = 0 }, "holding_years"},
		{"negative loan", func(r *Request) { r.LoanAmount = -1 }, "loan_amount"},
		{"rate at -1", func(r *Request) { r.AppreciationRate = -1 }, "appreciation_rate"},
		{"loan without tenure", func(r *Request) { r.LoanAmount = 10; r.LoanTenureYears = 0 }, "loan_tenure_years"},
		{"loan with negative rate", func(r *Request) { r.LoanAmount = 10; r.LoanInterestRate = -0.1 }, "loan_interest_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mut(&r)
			err := Validate(r)
			var ae *ArgumentError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.field, ae.Field)
		})
	}
}

func TestAnalyze_ChennaiWithoutEstimate(t *testing.T) {
	req := Request{
		Location: "chennai", PropertyType: "Apartment",
		PurchasePrice: 5_000_000, HoldingYears: 5,
		AppreciationRate: DefaultAppreciationRate,
	}
	rep, err := Analyze(req, Inputs{
		Estimate: noEstimate,
		Fallback: DefaultFallbackRents(),
		Risk:     Assessment{Level: RiskLow, Reason: "stub"},
	})
	require.NoError(t, err)
	assert.Equal(t, 15_000.0, rep.ResolvedRent)
	assert.Equal(t, RentFallback, rep.RentSource)
	assert.Equal(t, 0.0, rep.MonthlyEMI)
	assert.Equal(t, 0.0, rep.TotalEMIPaid)
	assert.Equal(t, RiskLow, rep.RiskLevel)
}

func TestAnalyze_WithLoan(t *testing.T) {
	req := Request{
		Location: "Mumbai", PropertyType: "Apartment",
		PurchasePrice: 5_000_000, ExpectedRent: ptr(20_000), HoldingYears: 5,
		LoanAmount: 3_000_000, AppreciationRate: 0.06,
		LoanInterestRate: 0.085, LoanTenureYears: 20,
	}
	rep, err := Analyze(req, Inputs{Market: MarketData{AppreciationRate: 0.06, RentalYield: 0.035}})
	require.NoError(t, err)
	assert.InDelta(t, 26_034.697, rep.MonthlyEMI, 1e-3)
	assert.Equal(t, rep.MonthlyEMI*12*5, rep.TotalEMIPaid)
	assert.InDelta(t, 57.82, rep.ROIPercent, 0.01)
	assert.Equal(t, 0.035, rep.RentalYield)
	assert.True(t, rep.HasLoan())
}

func TestAnalyze_ZeroPriceComputesNothing(t *testing.T) {
	called := false
	_, err := Analyze(Request{Location: "pune", HoldingYears: 5}, Inputs{
		Estimate: func(string) (float64, bool) { called = true; return 1, true },
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, called)
}

func TestAnalyze_ResolvedRentAlwaysPositive(t *testing.T) {
	req := Request{Location: "nowhere", PurchasePrice: 1_000, HoldingYears: 1}
	rep, err := Analyze(req, Inputs{DefaultRent: -3})
	require.NoError(t, err)
	assert.Equal(t, DefaultRent, rep.ResolvedRent)
}

func TestAnalyze_Concurrent(t *testing.T) {
	req := Request{Location: "delhi", PurchasePrice: 8_000_000, HoldingYears: 10, AppreciationRate: 0.05}
	want, err := Analyze(req, Inputs{Fallback: DefaultFallbackRents()})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Analyze(req, Inputs{Fallback: DefaultFallbackRents()})
			if err != nil || got.ROIPercent != want.ROIPercent {
				t.Errorf("concurrent analyze diverged: %v %v", got.ROIPercent, err)
			}
		}()
	}
	wg.Wait()
}

func TestUnavailable(t *testing.T) {
	err := Unavailable("rent estimate", errors.New("timeout"))
	assert.ErrorIs(t, err, ErrCollaboratorUnavailable)
	assert.Contains(t, err.Error(), "timeout")
	assert.ErrorIs(t, Unavailable("risk", nil), ErrCollaboratorUnavailable)
}
