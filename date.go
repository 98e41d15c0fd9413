package jtac

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateFormat picks which culture date pattern formats values.
type DateFormat int

const (
	// DateFormatShort is the numeric pattern, e.g. "M/d/yyyy".
	DateFormatShort DateFormat = iota
	// DateFormatAbbrMonth uses the abbreviated month name, "MMM d, yyyy".
	DateFormatAbbrMonth
	// DateFormatLongMonth uses the full month name, "MMMM d, yyyy".
	DateFormatLongMonth
	// DateFormatLong adds the day name, "dddd, MMMM d, yyyy".
	DateFormatLong
)

func (f DateFormat) valid() bool {
	return f >= DateFormatShort && f <= DateFormatLong
}

// DateOptions configure Date, MonthYear and DayMonth. Parsing accepts every
// format whose fields come in the pattern's order.
type DateOptions struct {
	DateFormat DateFormat
	// Pattern replaces the culture pattern picked by DateFormat.
	Pattern string
	// TwoDigitYear expands two digit years using the culture's
	// TwoDigitYearMax. When false a year of three or four digits is required.
	TwoDigitYear bool
}

// DefaultDateOptions returns the options used when none are given.
func DefaultDateOptions() DateOptions {
	return DateOptions{TwoDigitYear: true}
}

func (o DateOptions) validate(typeName string) error {
	if !o.DateFormat.valid() {
		return configError(typeName, "DateFormat", fmt.Sprintf("unknown date format %d", int(o.DateFormat)))
	}
	if o.Pattern != "" {
		order := fieldOrder(tokenizePattern(o.Pattern))
		if !hasField(order, 'M') {
			return configError(typeName, "Pattern", "must contain a month")
		}
	}
	return nil
}

type calendarKind int

const (
	kindDate calendarKind = iota
	kindMonthYear
	kindDayMonth
)

// calendarEngine is shared by Date, MonthYear and DayMonth. Values are
// time.Time at midnight UTC; MonthYear keeps day 1 and DayMonth keeps the
// leap year 2004.
type calendarEngine struct {
	typeManagerBase
	kind    calendarKind
	opts    DateOptions
	layouts *lazy[dateLayouts]
}

type dateLayouts struct {
	local   *dateLayout
	neutral *dateLayout
}

func (e *calendarEngine) init(name string, kind calendarKind, culture *CultureProfile, opts DateOptions) error {
	culture, err := resolveCulture(culture)
	if err != nil {
		return err
	}
	e.typeManagerBase = typeManagerBase{
		name:        name,
		nativeType:  NativeDate,
		storageType: NativeDate,
		culture:     culture,
		conv:        e,
	}
	e.kind = kind
	return e.SetOptions(opts)
}

// Options returns a copy of the active options.
func (e *calendarEngine) Options() DateOptions {
	return e.opts
}

func (e *calendarEngine) SetOptions(opts DateOptions) error {
	if err := opts.validate(e.name); err != nil {
		return err
	}
	e.opts = opts
	e.layouts = new(lazy[dateLayouts])
	return nil
}

// SetPattern replaces only the custom pattern.
func (e *calendarEngine) SetPattern(pattern string) error {
	opts := e.opts
	opts.Pattern = pattern
	return e.SetOptions(opts)
}

func (e *calendarEngine) SetCulture(culture *CultureProfile) error {
	if err := e.setCulture(culture); err != nil {
		return err
	}
	e.layouts = new(lazy[dateLayouts])
	return nil
}

// Pattern returns the pattern used to format localized values.
func (e *calendarEngine) Pattern() string {
	return patternString(e.localTokens())
}

func (e *calendarEngine) layout(neutral bool) *dateLayout {
	layouts := e.layouts.get(func() dateLayouts {
		return dateLayouts{
			local:   newDateLayout(e.name, e.culture, e.localTokens(), e.opts.TwoDigitYear),
			neutral: newDateLayout(e.name, neutralCulture, e.neutralTokens(), false),
		}
	})
	if neutral {
		return layouts.neutral
	}
	return layouts.local
}

func (e *calendarEngine) localTokens() []patternToken {
	if e.opts.Pattern != "" {
		return tokenizePattern(e.opts.Pattern)
	}
	c := e.culture
	switch e.kind {
	case kindMonthYear:
		return e.partialTokens(RuleMonthYearPattern, "MMMM yyyy", 'd')
	case kindDayMonth:
		return e.partialTokens(RuleDayMonthPattern, "MMMM d", 'y')
	}
	switch e.opts.DateFormat {
	case DateFormatAbbrMonth:
		return tokenizePattern(c.dateTimeString(RuleAbbrMonthDatePattern, "MMM d, yyyy"))
	case DateFormatLongMonth:
		return tokenizePattern(c.dateTimeString(RuleMonthNameDatePattern, "MMMM d, yyyy"))
	case DateFormatLong:
		return tokenizePattern(c.dateTimeString(RuleLongDatePattern, "dddd, MMMM d, yyyy"))
	}
	return tokenizePattern(c.dateTimeString(RuleShortDatePattern, "M/d/yyyy"))
}

// partialTokens derives the short form from the short date pattern minus
// the missing field, or uses the culture's dedicated name pattern.
func (e *calendarEngine) partialTokens(rule, fallback string, missing byte) []patternToken {
	c := e.culture
	switch e.opts.DateFormat {
	case DateFormatShort:
		return removeField(tokenizePattern(c.dateTimeString(RuleShortDatePattern, "M/d/yyyy")), missing)
	case DateFormatAbbrMonth:
		return abbreviateMonths(tokenizePattern(c.dateTimeString(rule, fallback)))
	}
	return tokenizePattern(c.dateTimeString(rule, fallback))
}

func (e *calendarEngine) neutralTokens() []patternToken {
	switch e.kind {
	case kindMonthYear:
		return tokenizePattern(neutralCulture.DateTime.MonthYearPattern)
	case kindDayMonth:
		return tokenizePattern(neutralCulture.DateTime.DayMonthPattern)
	}
	return tokenizePattern(neutralCulture.DateTime.ShortDatePattern)
}

func (e *calendarEngine) stringToNative(text string, neutral bool) (any, error) {
	parts, err := e.layout(neutral).parse(text)
	if err != nil {
		return nil, err
	}
	return e.normalize(parts.Time()), nil
}

func (e *calendarEngine) nativeToString(value any, neutral bool) (string, error) {
	t := value.(time.Time)
	if err := checkYear(e.name, t); err != nil {
		return "", err
	}
	return e.layout(neutral).format(partsOf(t)), nil
}

func (e *calendarEngine) reviewValue(value any) (any, error) {
	return value, nil
}

func (e *calendarEngine) native(value any) (any, bool) {
	switch v := value.(type) {
	case time.Time:
		return e.normalize(v), true
	case DateParts:
		return e.normalize(v.Time()), true
	}
	return nil, false
}

func (e *calendarEngine) normalize(t time.Time) time.Time {
	switch e.kind {
	case kindMonthYear:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case kindDayMonth:
		return time.Date(leapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (e *calendarEngine) compareNative(a, b any) int {
	return a.(time.Time).Compare(b.(time.Time))
}

func (e *calendarEngine) isValidChar(ch rune) bool {
	return e.layout(false).isValidChar(ch)
}

// ToNumber projects value onto a number that orders like the value: days
// since 1970-01-01 for Date, year*12+month-1 for MonthYear and the day of
// the year 2004 for DayMonth.
func (e *calendarEngine) ToNumber(value any) (float64, error) {
	native, err := e.comparable(value)
	if err != nil {
		return 0, err
	}
	t := native.(time.Time)
	switch e.kind {
	case kindMonthYear:
		return float64(t.Year()*12 + int(t.Month()) - 1), nil
	case kindDayMonth:
		return float64(t.YearDay()), nil
	}
	return math.Floor(float64(t.Unix()) / 86400), nil
}

// Parts decomposes a date value.
func (e *calendarEngine) Parts(value any) (DateParts, error) {
	native, ok := e.native(value)
	if !ok {
		return DateParts{}, wrongNativeType(e.name, value)
	}
	return partsOf(native.(time.Time)), nil
}

// Date converts calendar dates held as time.Time at midnight UTC.
type Date struct {
	calendarEngine
}

var (
	_ TypeManager = (*Date)(nil)
	_ Numeric     = (*Date)(nil)
)

// NewDate creates a Date for culture. A nil culture selects the default
// culture of DefaultCultureRegistry.
func NewDate(culture *CultureProfile, opts DateOptions) (*Date, error) {
	m := &Date{}
	if err := m.init("Date", kindDate, culture, opts); err != nil {
		return nil, err
	}
	return m, nil
}

// patternString writes tokens back as a pattern, quoting literal letters.
func patternString(tokens []patternToken) string {
	var out []rune
	for _, t := range tokens {
		if !t.isLiteral() {
			for i := 0; i < t.count; i++ {
				out = append(out, rune(t.symbol))
			}
			continue
		}
		quoted := false
		for _, r := range t.literal {
			needsQuote := r < 0x80 && strings.IndexByte(patternSymbols, byte(r)) >= 0
			switch {
			case r == '\'':
				out = append(out, '\'', '\'')
				continue
			case needsQuote && !quoted:
				out = append(out, '\'')
				quoted = true
			case !needsQuote && quoted && r != ' ':
				out = append(out, '\'')
				quoted = false
			}
			out = append(out, r)
		}
		if quoted {
			out = append(out, '\'')
		}
	}
	return string(out)
}
