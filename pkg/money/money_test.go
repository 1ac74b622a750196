package money

import (
	"errors"
	"testing"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{15000, "₹15,000.00"},
		{6691127.888, "₹6,691,127.89"},
		{999.999, "₹1,000.00"},
		{-1500.5, "-₹1,500.50"},
	}
	for _, tt := range tests {
		if got := FormatINR(tt.in); got != tt.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatINRWhole(t *testing.T) {
	if got := FormatINRWhole(26034.697); got != "₹26,035" {
		t.Fatalf("got %q", got)
	}
	if got := FormatINRWhole(5000000); got != "₹5,000,000" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(57.822557760000024); got != "57.82%" {
		t.Fatalf("got %q", got)
	}
}

func TestParseAmount(t *testing.T) {
	ok := map[string]float64{
		"5000000":         5_000_000,
		"5,000,000":       5_000_000,
		" ₹50,00,000.50 ": 5_000_000.5,
		"5_000_000":       5_000_000,
		"Rs.1200":         1200,
		"-3":              -3,
		"0":               0,
		"1e3":             1000,
	}
	for in, want := range ok {
		got, err := ParseAmount(in)
		if err != nil || got != want {
			t.Errorf("ParseAmount(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"", "  ", "abc", "12abc", "1.2.3", "NaN", "Inf", "1e400", "-1e400"} {
		if _, err := ParseAmount(in); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseAmount(%q) err = %v, want ErrMalformed", in, err)
		}
	}
}
