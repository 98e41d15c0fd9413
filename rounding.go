package jtac

import (
	"fmt"
	"math"
	"strings"

	"github.com/govalues/decimal"
)

// RoundMode selects how Round drops extra decimal places.
type RoundMode int

const (
	// RoundPoint5 rounds half away from zero: 2.345 -> 2.35, -2.345 -> -2.35.
	RoundPoint5 RoundMode = iota
	// RoundCurrency is banker's rounding, half to even: 2.345 -> 2.34, 2.335 -> 2.34.
	RoundCurrency
	// RoundTruncate drops the extra digits, moving toward zero.
	RoundTruncate
	// RoundCeiling moves toward positive infinity.
	RoundCeiling
	// RoundNextWhole moves away from zero whenever digits are dropped.
	RoundNextWhole
	// RoundReportError refuses to round and reports ErrPrecisionExceeded.
	RoundReportError
)

var roundModeNames = []string{"Point5", "Currency", "Truncate", "Ceiling", "NextWhole", "ReportError"}

func (m RoundMode) String() string {
	if !m.valid() {
		return fmt.Sprintf("RoundMode(%d)", int(m))
	}
	return roundModeNames[m]
}

func (m RoundMode) valid() bool {
	return m >= RoundPoint5 && m <= RoundReportError
}

// ParseRoundMode converts a mode name (case-insensitive) into a RoundMode.
func ParseRoundMode(name string) (RoundMode, error) {
	for i, candidate := range roundModeNames {
		if strings.EqualFold(candidate, strings.TrimSpace(name)) {
			return RoundMode(i), nil
		}
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "banker", "bankers", "halfeven":
		return RoundCurrency, nil
	case "halfup", "round":
		return RoundPoint5, nil
	}
	return 0, configError("RoundMode", "", fmt.Sprintf("unknown round mode %q", name))
}

// maxRoundPlaces keeps the scale plus one guard digit inside decimal.MaxScale.
const maxRoundPlaces = decimal.MaxScale - 1

// Round limits value to maxDecimalPlaces digits after the decimal point.
//
// Values are rounded as the decimal text Go prints for them, so 2.345 is
// treated as 2.345 and not as its binary neighbour 2.34499999.... Magnitudes
// beyond the decimal range fall back to float arithmetic.
func Round(value float64, mode RoundMode, maxDecimalPlaces int) (float64, error) {
	if !mode.valid() {
		return 0, configError("RoundMode", "", fmt.Sprintf("unknown round mode %d", int(mode)))
	}
	if maxDecimalPlaces < 0 {
		return 0, configError("RoundMode", "maxDecimalPlaces", "must not be negative")
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value, nil
	}
	if maxDecimalPlaces > maxRoundPlaces {
		maxDecimalPlaces = maxRoundPlaces
	}

	d, err := decimal.NewFromFloat64(value)
	if err != nil {
		return roundFloat(value, mode, maxDecimalPlaces)
	}
	d = d.Trim(0)
	if d.Scale() <= maxDecimalPlaces {
		return value, nil
	}

	var rounded decimal.Decimal
	switch mode {
	case RoundPoint5:
		rounded, err = roundHalfAwayFromZero(d, maxDecimalPlaces)
	case RoundCurrency:
		rounded = d.Round(maxDecimalPlaces)
	case RoundTruncate:
		rounded = d.Trunc(maxDecimalPlaces)
	case RoundCeiling:
		rounded = d.Ceil(maxDecimalPlaces)
	case RoundNextWhole:
		rounded, err = roundAwayFromZero(d, maxDecimalPlaces)
	case RoundReportError:
		if !(d.Trunc(maxDecimalPlaces).Cmp(d) == 0) {
			return 0, fmt.Errorf("%w: %v has more than %d", ErrPrecisionExceeded, value, maxDecimalPlaces)
		}
		return value, nil
	}
	if err != nil {
		return roundFloat(value, mode, maxDecimalPlaces)
	}

	f, ok := rounded.Float64()
	if !ok {
		return roundFloat(value, mode, maxDecimalPlaces)
	}
	return f, nil
}

func roundHalfAwayFromZero(d decimal.Decimal, places int) (decimal.Decimal, error) {
	truncated := d.Trunc(places)
	rest, err := d.Sub(truncated)
	if err != nil {
		return decimal.Decimal{}, err
	}
	half, err := decimal.New(5, places+1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if rest.Abs().Cmp(half) < 0 {
		return truncated, nil
	}
	return stepAwayFromZero(d, truncated, places)
}

func roundAwayFromZero(d decimal.Decimal, places int) (decimal.Decimal, error) {
	truncated := d.Trunc(places)
	if truncated.Cmp(d) == 0 {
		return d, nil
	}
	return stepAwayFromZero(d, truncated, places)
}

func stepAwayFromZero(d, truncated decimal.Decimal, places int) (decimal.Decimal, error) {
	step, err := decimal.New(1, places)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNeg() {
		return truncated.Sub(step)
	}
	return truncated.Add(step)
}

func roundFloat(value float64, mode RoundMode, places int) (float64, error) {
	factor := math.Pow10(places)
	scaled := value * factor
	if math.IsInf(scaled, 0) {
		return value, nil
	}
	var result float64
	switch mode {
	case RoundPoint5:
		result = math.Round(scaled)
	case RoundCurrency:
		result = math.RoundToEven(scaled)
	case RoundTruncate:
		result = math.Trunc(scaled)
	case RoundCeiling:
		result = math.Ceil(scaled)
	case RoundNextWhole:
		if scaled < 0 {
			result = math.Floor(scaled)
		} else {
			result = math.Ceil(scaled)
		}
	case RoundReportError:
		if math.Trunc(scaled) != scaled {
			return 0, fmt.Errorf("%w: %v has more than %d", ErrPrecisionExceeded, value, places)
		}
		return value, nil
	}
	return result / factor, nil
}

// decimalPlaces counts the digits after the decimal point in the shortest
// text form of value.
func decimalPlaces(value float64) int {
	d, err := decimal.NewFromFloat64(value)
	if err != nil {
		return 0
	}
	return d.Trim(0).Scale()
}
