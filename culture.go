package jtac

import "strings"

// Rule names understood by CultureProfile.NumberFormat, CurrencyFormat and
// PercentFormat.
const (
	RuleDecimalSep    = "DecimalSep"
	RuleGroupSep      = "GroupSep"
	RuleGroupSizes    = "GroupSizes"
	RuleNegSymbol     = "NegSymbol"
	RuleNegPattern    = "NegPattern"
	RulePosPattern    = "PosPattern"
	RuleSymbol        = "Symbol"
	RuleDecimalPlaces = "DecimalPlaces"
)

// Rule names understood by CultureProfile.DateTimeFormat.
const (
	RuleShortDateSep         = "ShortDateSep"
	RuleShortDatePattern     = "ShortDatePattern"
	RuleAbbrMonthDatePattern = "AbbrMonthDatePattern"
	RuleMonthNameDatePattern = "MonthNameDatePattern"
	RuleLongDatePattern      = "LongDatePattern"
	RuleShortTimePattern     = "ShortTimePattern"
	RuleLongTimePattern      = "LongTimePattern"
	RuleShortDurationPattern = "ShortDurationPattern"
	RuleLongDurationPattern  = "LongDurationPattern"
	RuleMonthYearPattern     = "MonthYearPattern"
	RuleDayMonthPattern      = "DayMonthPattern"
	RuleTimeSep              = "TimeSep"
	RuleAM                   = "AM"
	RulePM                   = "PM"
	RuleDays                 = "Days"
	RuleDaysAbbr             = "DaysAbbr"
	RuleMonths               = "Months"
	RuleMonthsAbbr           = "MonthsAbbr"
	RuleTwoDigitYearMax      = "TwoDigitYearMax"
)

// NumberRules describes how one family of numbers (plain, currency, percent)
// is written in a culture.
//
// Patterns are templates: 'n' stands for the digits, '-' for NegSymbol and
// '$' or '%' for Symbol. Any other character is copied as is.
type NumberRules struct {
	DecimalSep    string `json:"decimal_sep,omitempty" yaml:"decimal_sep,omitempty"`
	GroupSep      string `json:"group_sep,omitempty" yaml:"group_sep,omitempty"`
	GroupSizes    []int  `json:"group_sizes,omitempty" yaml:"group_sizes,omitempty"`
	NegSymbol     string `json:"neg_symbol,omitempty" yaml:"neg_symbol,omitempty"`
	NegPattern    string `json:"neg_pattern,omitempty" yaml:"neg_pattern,omitempty"`
	PosPattern    string `json:"pos_pattern,omitempty" yaml:"pos_pattern,omitempty"`
	Symbol        string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	DecimalPlaces *int   `json:"decimal_places,omitempty" yaml:"decimal_places,omitempty"`
}

// DateTimeRules describes date, time and duration patterns of a culture.
// Patterns use the d, M, y, H, h, m, s and t symbols; text inside single
// quotes is literal.
type DateTimeRules struct {
	ShortDateSep         string   `json:"short_date_sep,omitempty" yaml:"short_date_sep,omitempty"`
	TimeSep              string   `json:"time_sep,omitempty" yaml:"time_sep,omitempty"`
	ShortDatePattern     string   `json:"short_date_pattern,omitempty" yaml:"short_date_pattern,omitempty"`
	AbbrMonthDatePattern string   `json:"abbr_month_date_pattern,omitempty" yaml:"abbr_month_date_pattern,omitempty"`
	MonthNameDatePattern string   `json:"month_name_date_pattern,omitempty" yaml:"month_name_date_pattern,omitempty"`
	LongDatePattern      string   `json:"long_date_pattern,omitempty" yaml:"long_date_pattern,omitempty"`
	ShortTimePattern     string   `json:"short_time_pattern,omitempty" yaml:"short_time_pattern,omitempty"`
	LongTimePattern      string   `json:"long_time_pattern,omitempty" yaml:"long_time_pattern,omitempty"`
	ShortDurationPattern string   `json:"short_duration_pattern,omitempty" yaml:"short_duration_pattern,omitempty"`
	LongDurationPattern  string   `json:"long_duration_pattern,omitempty" yaml:"long_duration_pattern,omitempty"`
	MonthYearPattern     string   `json:"month_year_pattern,omitempty" yaml:"month_year_pattern,omitempty"`
	DayMonthPattern      string   `json:"day_month_pattern,omitempty" yaml:"day_month_pattern,omitempty"`
	AM                   []string `json:"am,omitempty" yaml:"am,omitempty"`
	PM                   []string `json:"pm,omitempty" yaml:"pm,omitempty"`
	Days                 []string `json:"days,omitempty" yaml:"days,omitempty"`
	DaysAbbr             []string `json:"days_abbr,omitempty" yaml:"days_abbr,omitempty"`
	Months               []string `json:"months,omitempty" yaml:"months,omitempty"`
	MonthsAbbr           []string `json:"months_abbr,omitempty" yaml:"months_abbr,omitempty"`
	TwoDigitYearMax      int      `json:"two_digit_year_max,omitempty" yaml:"two_digit_year_max,omitempty"`
}

// CultureProfile is the read-only formatting data of one culture.
type CultureProfile struct {
	Name         string        `json:"name" yaml:"name"`
	DisplayName  string        `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	CurrencyCode string        `json:"currency_code,omitempty" yaml:"currency_code,omitempty"`
	Number       NumberRules   `json:"number" yaml:"number"`
	Currency     NumberRules   `json:"currency" yaml:"currency"`
	Percent      NumberRules   `json:"percent" yaml:"percent"`
	DateTime     DateTimeRules `json:"date_time" yaml:"date_time"`
}

// CultureProvider supplies culture profiles by name.
type CultureProvider interface {
	Culture(name string) (*CultureProfile, error)
}

// NumberFormat returns the plain number rule called rule, or nil.
func (c *CultureProfile) NumberFormat(rule string) any {
	if c == nil {
		return nil
	}
	return numberRule(&c.Number, rule)
}

// CurrencyFormat returns the currency rule called rule, falling back to the
// number rules when the currency rules leave it unset.
func (c *CultureProfile) CurrencyFormat(rule string) any {
	if c == nil {
		return nil
	}
	if v := numberRule(&c.Currency, rule); v != nil {
		return v
	}
	return numberRule(&c.Number, rule)
}

// PercentFormat returns the percent rule called rule, falling back to the
// number rules when the percent rules leave it unset.
func (c *CultureProfile) PercentFormat(rule string) any {
	if c == nil {
		return nil
	}
	if v := numberRule(&c.Percent, rule); v != nil {
		return v
	}
	return numberRule(&c.Number, rule)
}

// DateTimeFormat returns the date/time rule called rule, or nil.
func (c *CultureProfile) DateTimeFormat(rule string) any {
	if c == nil {
		return nil
	}
	dt := &c.DateTime
	var s string
	switch rule {
	case RuleShortDateSep:
		s = dt.ShortDateSep
	case RuleTimeSep:
		s = dt.TimeSep
	case RuleShortDatePattern:
		s = dt.ShortDatePattern
	case RuleAbbrMonthDatePattern:
		s = dt.AbbrMonthDatePattern
	case RuleMonthNameDatePattern:
		s = dt.MonthNameDatePattern
	case RuleLongDatePattern:
		s = dt.LongDatePattern
	case RuleShortTimePattern:
		s = dt.ShortTimePattern
	case RuleLongTimePattern:
		s = dt.LongTimePattern
	case RuleShortDurationPattern:
		s = dt.ShortDurationPattern
	case RuleLongDurationPattern:
		s = dt.LongDurationPattern
	case RuleMonthYearPattern:
		s = dt.MonthYearPattern
	case RuleDayMonthPattern:
		s = dt.DayMonthPattern
	case RuleAM:
		return nonEmptyList(dt.AM)
	case RulePM:
		return nonEmptyList(dt.PM)
	case RuleDays:
		return nonEmptyList(dt.Days)
	case RuleDaysAbbr:
		return nonEmptyList(dt.DaysAbbr)
	case RuleMonths:
		return nonEmptyList(dt.Months)
	case RuleMonthsAbbr:
		return nonEmptyList(dt.MonthsAbbr)
	case RuleTwoDigitYearMax:
		if dt.TwoDigitYearMax == 0 {
			return nil
		}
		return dt.TwoDigitYearMax
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return s
}

func numberRule(r *NumberRules, rule string) any {
	var s string
	switch rule {
	case RuleDecimalSep:
		s = r.DecimalSep
	case RuleGroupSep:
		// an explicitly empty group separator is expressed with GroupSizes [0]
		s = r.GroupSep
	case RuleGroupSizes:
		if len(r.GroupSizes) == 0 {
			return nil
		}
		return append([]int(nil), r.GroupSizes...)
	case RuleNegSymbol:
		s = r.NegSymbol
	case RuleNegPattern:
		s = r.NegPattern
	case RulePosPattern:
		s = r.PosPattern
	case RuleSymbol:
		s = r.Symbol
	case RuleDecimalPlaces:
		if r.DecimalPlaces == nil {
			return nil
		}
		return *r.DecimalPlaces
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return s
}

func nonEmptyList(values []string) any {
	if len(values) == 0 {
		return nil
	}
	return append([]string(nil), values...)
}

// numberFamily selects which NumberRules a number converter reads.
type numberFamily int

const (
	familyNumber numberFamily = iota
	familyCurrency
	familyPercent
)

// resolvedNumberRules is NumberRules with every fallback applied.
type resolvedNumberRules struct {
	decimalSep    string
	groupSep      string
	groupSizes    []int
	negSymbol     string
	negPattern    string
	posPattern    string
	symbol        string
	decimalPlaces int
}

func (c *CultureProfile) numberRules(family numberFamily) resolvedNumberRules {
	lookup := c.NumberFormat
	switch family {
	case familyCurrency:
		lookup = c.CurrencyFormat
	case familyPercent:
		lookup = c.PercentFormat
	}

	r := resolvedNumberRules{
		decimalSep:    ruleString(lookup(RuleDecimalSep), "."),
		groupSep:      ruleString(lookup(RuleGroupSep), ""),
		negSymbol:     ruleString(lookup(RuleNegSymbol), "-"),
		negPattern:    ruleString(lookup(RuleNegPattern), "-n"),
		posPattern:    ruleString(lookup(RulePosPattern), "n"),
		symbol:        ruleString(lookup(RuleSymbol), ""),
		decimalPlaces: -1,
	}
	if sizes, ok := lookup(RuleGroupSizes).([]int); ok {
		r.groupSizes = sizes
	} else {
		r.groupSizes = []int{3}
	}
	if places, ok := lookup(RuleDecimalPlaces).(int); ok {
		r.decimalPlaces = places
	}
	switch family {
	case familyCurrency:
		if r.symbol == "" {
			r.symbol = "$"
		}
	case familyPercent:
		if r.symbol == "" {
			r.symbol = "%"
		}
	}
	return r
}

func ruleString(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func ruleStrings(v any, fallback []string) []string {
	if list, ok := v.([]string); ok && len(list) > 0 {
		return list
	}
	return fallback
}

func (c *CultureProfile) dateTimeString(rule, fallback string) string {
	return ruleString(c.DateTimeFormat(rule), fallback)
}

func (c *CultureProfile) twoDigitYearMax() int {
	if v, ok := c.DateTimeFormat(RuleTwoDigitYearMax).(int); ok && v > 0 {
		return v
	}
	return 2029
}

func (c *CultureProfile) monthNames() []string {
	return ruleStrings(c.DateTimeFormat(RuleMonths), invariantMonths)
}

func (c *CultureProfile) monthAbbrNames() []string {
	return ruleStrings(c.DateTimeFormat(RuleMonthsAbbr), invariantMonthsAbbr)
}

func (c *CultureProfile) dayNames() []string {
	return ruleStrings(c.DateTimeFormat(RuleDays), invariantDays)
}

func (c *CultureProfile) dayAbbrNames() []string {
	return ruleStrings(c.DateTimeFormat(RuleDaysAbbr), invariantDaysAbbr)
}

func (c *CultureProfile) amDesignators() []string {
	return ruleStrings(c.DateTimeFormat(RuleAM), nil)
}

func (c *CultureProfile) pmDesignators() []string {
	return ruleStrings(c.DateTimeFormat(RulePM), nil)
}

// Clone returns a deep copy so callers may adjust a profile without touching
// the registry's instance.
func (c *CultureProfile) Clone() *CultureProfile {
	if c == nil {
		return nil
	}
	out := *c
	out.Number = c.Number.clone()
	out.Currency = c.Currency.clone()
	out.Percent = c.Percent.clone()
	dt := c.DateTime
	dt.AM = cloneStrings(c.DateTime.AM)
	dt.PM = cloneStrings(c.DateTime.PM)
	dt.Days = cloneStrings(c.DateTime.Days)
	dt.DaysAbbr = cloneStrings(c.DateTime.DaysAbbr)
	dt.Months = cloneStrings(c.DateTime.Months)
	dt.MonthsAbbr = cloneStrings(c.DateTime.MonthsAbbr)
	out.DateTime = dt
	return &out
}

func (r NumberRules) clone() NumberRules {
	out := r
	if len(r.GroupSizes) > 0 {
		out.GroupSizes = append([]int(nil), r.GroupSizes...)
	}
	if r.DecimalPlaces != nil {
		places := *r.DecimalPlaces
		out.DecimalPlaces = &places
	}
	return out
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return append([]string(nil), values...)
}

var (
	invariantMonths = []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	invariantMonthsAbbr = []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
	invariantDays = []string{
		"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
	}
	invariantDaysAbbr = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// neutralCulture is the fixed profile behind every ...Neutral conversion.
var neutralCulture = &CultureProfile{
	Name:        "neutral",
	DisplayName: "Neutral interchange format",
	Number: NumberRules{
		DecimalSep: ".",
		GroupSizes: []int{0},
		NegSymbol:  "-",
		NegPattern: "-n",
		PosPattern: "n",
	},
	DateTime: DateTimeRules{
		ShortDateSep:         "-",
		TimeSep:              ":",
		ShortDatePattern:     "yyyy-MM-dd",
		AbbrMonthDatePattern: "yyyy-MM-dd",
		MonthNameDatePattern: "yyyy-MM-dd",
		LongDatePattern:      "yyyy-MM-dd",
		ShortTimePattern:     "H:mm:ss",
		LongTimePattern:      "H:mm:ss",
		ShortDurationPattern: "HHHH:mm:ss",
		LongDurationPattern:  "HHHH:mm:ss",
		MonthYearPattern:     "yyyy-MM",
		DayMonthPattern:      "MM-dd",
		TwoDigitYearMax:      2029,
	},
}

// NeutralCulture returns a copy of the culture-independent profile used for
// machine interchange.
func NeutralCulture() *CultureProfile {
	return neutralCulture.Clone()
}

// IsNeutral reports whether the profile is the neutral interchange profile.
func (c *CultureProfile) IsNeutral() bool {
	return c != nil && strings.EqualFold(c.Name, neutralCulture.Name)
}
