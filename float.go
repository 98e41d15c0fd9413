package jtac

import (
	"errors"
	"math"
	"strconv"

	"github.com/govalues/decimal"
)

// FloatOptions configure Float and are embedded by CurrencyOptions and
// PercentOptions.
type FloatOptions struct {
	NumberOptions
	// MaxDecimalPlaces limits the digits after the decimal point. 0 means
	// unlimited.
	MaxDecimalPlaces int
	// RoundMode applies when a value carries more than MaxDecimalPlaces.
	RoundMode RoundMode
	// TrailingZeroDecimalPlaces pads formatted values with zeros up to this
	// many decimal places. -1 selects the type's default.
	TrailingZeroDecimalPlaces int
}

// DefaultFloatOptions returns the options used when none are given.
func DefaultFloatOptions() FloatOptions {
	return FloatOptions{
		NumberOptions:             DefaultNumberOptions(),
		RoundMode:                 RoundPoint5,
		TrailingZeroDecimalPlaces: -1,
	}
}

func (o FloatOptions) validate(typeName string) error {
	if err := o.NumberOptions.validate(typeName); err != nil {
		return err
	}
	if o.MaxDecimalPlaces < 0 {
		return configError(typeName, "MaxDecimalPlaces", "must not be negative")
	}
	if !o.RoundMode.valid() {
		return configError(typeName, "RoundMode", "unknown round mode "+o.RoundMode.String())
	}
	if o.TrailingZeroDecimalPlaces < -1 {
		return configError(typeName, "TrailingZeroDecimalPlaces", "must be -1 or more")
	}
	return nil
}

// Float converts float64 values.
type Float struct {
	floatEngine
}

var (
	_ TypeManager = (*Float)(nil)
	_ Numeric     = (*Float)(nil)
)

// NewFloat creates a Float for culture. A nil culture selects the default
// culture of DefaultCultureRegistry.
func NewFloat(culture *CultureProfile, opts FloatOptions) (*Float, error) {
	m := &Float{}
	if err := m.init("Float", familyNumber, culture); err != nil {
		return nil, err
	}
	m.defaultTrailingZeros = 1
	if err := m.SetOptions(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Options returns a copy of the active options.
func (m *Float) Options() FloatOptions {
	return m.opts
}

func (m *Float) SetOptions(opts FloatOptions) error {
	if err := opts.validate(m.name); err != nil {
		return err
	}
	m.opts = opts
	m.allowSymbol = false
	m.showSymbol = false
	m.reset()
	return nil
}

// SetRoundMode changes only the rounding mode.
func (m *Float) SetRoundMode(mode RoundMode) error {
	opts := m.opts
	opts.RoundMode = mode
	return m.SetOptions(opts)
}

// SetMaxDecimalPlaces changes only the precision limit.
func (m *Float) SetMaxDecimalPlaces(places int) error {
	opts := m.opts
	opts.MaxDecimalPlaces = places
	return m.SetOptions(opts)
}

// floatEngine carries the behaviour Float, Currency and Percent share. The
// concrete types differ only in the number family and the switches below.
type floatEngine struct {
	typeManagerBase
	opts   FloatOptions
	family numberFamily

	allowSymbol      bool
	showSymbol       bool
	hideZeroFraction bool
	// cultureDecimals makes the culture's currency decimal places the
	// default precision and trailing zero count.
	cultureDecimals bool
	// scale100 stores percentages as fractions, so "45%" is 0.45.
	scale100             bool
	defaultTrailingZeros int

	specs *lazy[numberSpecs]
}

func (e *floatEngine) init(name string, family numberFamily, culture *CultureProfile) error {
	culture, err := resolveCulture(culture)
	if err != nil {
		return err
	}
	e.typeManagerBase = typeManagerBase{
		name:        name,
		nativeType:  NativeFloat,
		storageType: NativeFloat,
		culture:     culture,
		conv:        e,
	}
	e.family = family
	e.reset()
	return nil
}

func (e *floatEngine) reset() {
	e.specs = new(lazy[numberSpecs])
}

func (e *floatEngine) SetCulture(culture *CultureProfile) error {
	if err := e.setCulture(culture); err != nil {
		return err
	}
	e.reset()
	return nil
}

// precision returns the active decimal place limit and whether one applies.
func (e *floatEngine) precision() (int, bool) {
	if e.opts.MaxDecimalPlaces > 0 {
		return e.opts.MaxDecimalPlaces, true
	}
	if e.cultureDecimals {
		if places := e.culture.numberRules(familyCurrency).decimalPlaces; places >= 0 {
			return places, true
		}
	}
	return 0, false
}

func (e *floatEngine) trailingZeros() int {
	zeros := e.defaultTrailingZeros
	if e.opts.TrailingZeroDecimalPlaces >= 0 {
		zeros = e.opts.TrailingZeroDecimalPlaces
	} else if e.cultureDecimals {
		if places := e.culture.numberRules(familyCurrency).decimalPlaces; places >= 0 {
			zeros = places
		}
	}
	if places, limited := e.precision(); limited && zeros > places {
		zeros = places
	}
	return zeros
}

func (e *floatEngine) spec(neutral bool) *numberSpec {
	specs := e.specs.get(func() numberSpecs {
		return numberSpecs{
			local: newNumberSpec(numberSpec{
				typeName:         e.name,
				rules:            e.culture.numberRules(e.family),
				family:           e.family,
				allowNegatives:   e.opts.AllowNegatives,
				allowSymbol:      e.allowSymbol,
				showSymbol:       e.showSymbol,
				showGroups:       e.opts.ShowGroupSeparators,
				strict:           e.opts.StrictSymbols,
				acceptPeriod:     e.opts.AcceptPeriodAsDecSep,
				minFraction:      e.trailingZeros(),
				hideZeroFraction: e.hideZeroFraction,
			}),
			neutral: neutralNumberSpec(e.name, false),
		}
	})
	if neutral {
		return specs.neutral
	}
	return specs.local
}

func (e *floatEngine) stringToNative(text string, neutral bool) (any, error) {
	value, err := e.spec(neutral).parse(text)
	if err != nil {
		return nil, err
	}
	if e.scale100 && !neutral {
		value = scaleHundred(value, false)
	}
	return value, nil
}

func (e *floatEngine) nativeToString(value any, neutral bool) (string, error) {
	v := value.(float64)
	if neutral {
		return e.spec(true).format(v), nil
	}
	if e.scale100 {
		v = scaleHundred(v, true)
	}
	if places, limited := e.precision(); limited && e.opts.RoundMode != RoundReportError {
		rounded, err := Round(v, e.opts.RoundMode, places)
		if err != nil {
			return "", err
		}
		v = rounded
	}
	return e.spec(false).format(v), nil
}

// reviewValue rejects disallowed negatives, applies the precision limit in
// display units and enforces the range.
func (e *floatEngine) reviewValue(value any) (any, error) {
	v := value.(float64)
	if v < 0 && !e.opts.AllowNegatives {
		return nil, inputError(e.name, "", "negative values are not allowed")
	}
	display := v
	if e.scale100 {
		display = scaleHundred(v, true)
	}
	if places, limited := e.precision(); limited && decimalPlaces(display) > places {
		rounded, err := Round(display, e.opts.RoundMode, places)
		if err != nil {
			if errors.Is(err, ErrPrecisionExceeded) {
				return nil, &InputError{
					TypeName: e.name,
					Reason:   pluralPlaces(places),
					Err:      err,
				}
			}
			return nil, err
		}
		if rounded != display {
			v = rounded
			if e.scale100 {
				v = scaleHundred(rounded, false)
			}
		}
	}
	if err := checkRange(e.name, v, e.opts.NumberOptions); err != nil {
		return nil, err
	}
	return v, nil
}

func pluralPlaces(places int) string {
	switch places {
	case 0:
		return "decimal places are not allowed"
	case 1:
		return "no more than 1 decimal place is allowed"
	}
	return "no more than " + strconv.Itoa(places) + " decimal places are allowed"
}

func (e *floatEngine) native(value any) (any, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return nil, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

func (e *floatEngine) compareNative(a, b any) int {
	return compareOrdered(a.(float64), b.(float64))
}

func (e *floatEngine) isValidChar(ch rune) bool {
	return e.spec(false).isValidChar(ch)
}

// ToNumber returns value as a float64.
func (e *floatEngine) ToNumber(value any) (float64, error) {
	native, err := e.comparable(value)
	if err != nil {
		return 0, err
	}
	return native.(float64), nil
}

var hundred = decimal.MustNew(100, 0)

// scaleHundred multiplies (up) or divides by 100 in decimal arithmetic so
// 0.07 becomes 7 and not 7.000000000000001.
func scaleHundred(value float64, up bool) float64 {
	d, err := decimal.NewFromFloat64(value)
	if err == nil {
		var scaled decimal.Decimal
		if up {
			scaled, err = d.Mul(hundred)
		} else {
			scaled, err = d.Quo(hundred)
		}
		if err == nil {
			if f, ok := scaled.Trim(0).Float64(); ok {
				return f
			}
		}
	}
	if up {
		return value * 100
	}
	return value / 100
}
