package jtac

import (
	"errors"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		mode   RoundMode
		places int
		want   float64
	}{
		{name: "point5_up", value: 2.345, mode: RoundPoint5, places: 2, want: 2.35},
		{name: "point5_negative", value: -2.345, mode: RoundPoint5, places: 2, want: -2.35},
		{name: "point5_down", value: 2.344, mode: RoundPoint5, places: 2, want: 2.34},
		{name: "currency_even_down", value: 2.345, mode: RoundCurrency, places: 2, want: 2.34},
		{name: "currency_even_up", value: 2.335, mode: RoundCurrency, places: 2, want: 2.34},
		{name: "currency_not_half", value: 2.3451, mode: RoundCurrency, places: 2, want: 2.35},
		{name: "truncate", value: 2.349, mode: RoundTruncate, places: 2, want: 2.34},
		{name: "truncate_negative", value: -2.349, mode: RoundTruncate, places: 2, want: -2.34},
		{name: "ceiling", value: 2.341, mode: RoundCeiling, places: 2, want: 2.35},
		{name: "ceiling_negative", value: -2.349, mode: RoundCeiling, places: 2, want: -2.34},
		{name: "next_whole", value: 2.341, mode: RoundNextWhole, places: 2, want: 2.35},
		{name: "next_whole_negative", value: -2.341, mode: RoundNextWhole, places: 2, want: -2.35},
		{name: "zero_places", value: 2.5, mode: RoundPoint5, places: 0, want: 3},
		{name: "already_short", value: 1.5, mode: RoundTruncate, places: 3, want: 1.5},
		{name: "report_error_fits", value: 1.25, mode: RoundReportError, places: 2, want: 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Round(tt.value, tt.mode, tt.places)
			if err != nil {
				t.Fatalf("Round(%v, %s, %d): %v", tt.value, tt.mode, tt.places, err)
			}
			if got != tt.want {
				t.Fatalf("Round(%v, %s, %d) = %v, want %v", tt.value, tt.mode, tt.places, got, tt.want)
			}
		})
	}
}

func TestRoundReportError(t *testing.T) {
	_, err := Round(2.345, RoundReportError, 2)
	if !errors.Is(err, ErrPrecisionExceeded) {
		t.Fatalf("Round error = %v, want ErrPrecisionExceeded", err)
	}
}

func TestRoundRejectsBadArguments(t *testing.T) {
	if _, err := Round(1, RoundMode(99), 2); !IsConfigurationError(err) {
		t.Errorf("unknown mode error = %v, want configuration error", err)
	}
	if _, err := Round(1, RoundPoint5, -1); !IsConfigurationError(err) {
		t.Errorf("negative places error = %v, want configuration error", err)
	}
}

func TestParseRoundMode(t *testing.T) {
	tests := map[string]RoundMode{
		"Point5":      RoundPoint5,
		"currency":    RoundCurrency,
		"bankers":     RoundCurrency,
		" TRUNCATE ":  RoundTruncate,
		"Ceiling":     RoundCeiling,
		"NextWhole":   RoundNextWhole,
		"ReportError": RoundReportError,
	}
	for name, want := range tests {
		got, err := ParseRoundMode(name)
		if err != nil {
			t.Fatalf("ParseRoundMode(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseRoundMode(%q) = %s, want %s", name, got, want)
		}
		if want.String() == "" {
			t.Errorf("%d has no name", want)
		}
	}
	if _, err := ParseRoundMode("sideways"); !IsConfigurationError(err) {
		t.Errorf("ParseRoundMode(sideways) error = %v, want configuration error", err)
	}
}

func TestRoundIdempotent(t *testing.T) {
	modes := []RoundMode{RoundPoint5, RoundCurrency, RoundTruncate, RoundCeiling, RoundNextWhole}
	values := []float64{2.345, -2.345, 0.005, 1234.5678, -0.0001, 99.995}
	for _, mode := range modes {
		for _, value := range values {
			for places := 0; places <= 3; places++ {
				once, err := Round(value, mode, places)
				if err != nil {
					t.Fatalf("Round(%v, %s, %d): %v", value, mode, places, err)
				}
				twice, err := Round(once, mode, places)
				if err != nil {
					t.Fatalf("Round(%v, %s, %d): %v", once, mode, places, err)
				}
				if once != twice {
					t.Errorf("Round not idempotent for %v %s %d: %v then %v", value, mode, places, once, twice)
				}
			}
		}
	}
}

func TestDecimalPlaces(t *testing.T) {
	tests := map[float64]int{
		0:        0,
		12:       0,
		1200:     0,
		2.5:      1,
		2.345:    3,
		-0.125:   3,
		1e-7:     7,
		123.4560: 3,
	}
	for value, want := range tests {
		if got := decimalPlaces(value); got != want {
			t.Errorf("decimalPlaces(%v) = %d, want %d", value, got, want)
		}
	}
}
