package jtac

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/width"
)

// DateTimeOptions configure DateTime.
type DateTimeOptions struct {
	Date DateOptions
	Time TimeOptions
	// TimeRequired rejects text without a time. Otherwise the time defaults
	// to midnight.
	TimeRequired bool
}

// DefaultDateTimeOptions returns the options used when none are given.
func DefaultDateTimeOptions() DateTimeOptions {
	return DateTimeOptions{
		Date: DefaultDateOptions(),
		Time: DefaultTimeOptions(),
	}
}

// DateTime converts a date with a time of day, held as time.Time in UTC at
// whole seconds. It reads and writes through an owned Date and TimeOfDay.
type DateTime struct {
	typeManagerBase
	opts     DateTimeOptions
	date     *Date
	clock    *TimeOfDay
	splitter *lazy[*regexp.Regexp]
}

var (
	_ TypeManager = (*DateTime)(nil)
	_ Numeric     = (*DateTime)(nil)
)

// NewDateTime creates a DateTime for culture. A nil culture selects the
// default culture of DefaultCultureRegistry.
func NewDateTime(culture *CultureProfile, opts DateTimeOptions) (*DateTime, error) {
	culture, err := resolveCulture(culture)
	if err != nil {
		return nil, err
	}
	m := &DateTime{}
	m.typeManagerBase = typeManagerBase{
		name:        "DateTime",
		nativeType:  NativeDate,
		storageType: NativeDate,
		culture:     culture,
		conv:        m,
	}
	if m.date, err = NewDate(culture, opts.Date); err != nil {
		return nil, err
	}
	if m.clock, err = NewTimeOfDay(culture, opts.Time); err != nil {
		return nil, err
	}
	m.date.name = m.name
	m.clock.name = m.name
	if err := m.SetOptions(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Options returns a copy of the active options.
func (m *DateTime) Options() DateTimeOptions {
	return m.opts
}

func (m *DateTime) SetOptions(opts DateTimeOptions) error {
	if err := m.date.SetOptions(opts.Date); err != nil {
		return err
	}
	if err := m.clock.SetOptions(opts.Time); err != nil {
		return err
	}
	m.opts = opts
	m.splitter = new(lazy[*regexp.Regexp])
	return nil
}

func (m *DateTime) SetCulture(culture *CultureProfile) error {
	if err := m.setCulture(culture); err != nil {
		return err
	}
	if err := m.date.SetCulture(culture); err != nil {
		return err
	}
	if err := m.clock.SetCulture(culture); err != nil {
		return err
	}
	m.splitter = new(lazy[*regexp.Regexp])
	return nil
}

func (m *DateTime) stringToNative(text string, neutral bool) (any, error) {
	dates := m.date.layout(neutral)
	clocks := m.clock.layout(neutral)

	dateText, timeText := m.split(strings.TrimSpace(width.Fold.String(text)), dates)
	if dateText == "" {
		return nil, inputError(m.name, text, "a date is required")
	}
	parts, err := dates.parse(dateText)
	if err != nil {
		return nil, err
	}

	var clock time.Duration
	if timeText == "" {
		if m.opts.TimeRequired {
			return nil, inputError(m.name, text, "a time is required")
		}
	} else {
		clock, err = clocks.parse(timeText)
		if err != nil {
			return nil, err
		}
		if clock >= 24*time.Hour {
			return nil, inputError(m.name, text, "the time must be less than 24 hours")
		}
	}
	return parts.Time().Add(clock), nil
}

// split separates the date and time segments. Numeric date patterns hold no
// spaces, so the first space ends the date. Otherwise the last fragment that
// looks like a time is cut out of the text.
func (m *DateTime) split(text string, dates *dateLayout) (string, string) {
	if dates.numeric {
		if idx := strings.IndexFunc(text, unicode.IsSpace); idx >= 0 {
			return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx:])
		}
		if strings.ContainsAny(text, ":") {
			return "", text
		}
		return text, ""
	}

	re := m.splitter.get(m.timeFragment)
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text, ""
	}
	last := matches[len(matches)-1]
	dateText := strings.TrimSpace(text[:last[0]] + " " + text[last[1]:])
	dateText = strings.TrimRight(dateText, " ,")
	return dateText, strings.TrimSpace(text[last[0]:last[1]])
}

// timeFragment matches "2:30", "14:30:15", "2:30 PM" or "2 PM" with the
// culture's time separator and designators.
func (m *DateTime) timeFragment() *regexp.Regexp {
	seps := regexp.QuoteMeta(m.culture.dateTimeString(RuleTimeSep, ":") + ":")
	var designators []string
	for _, d := range append(m.culture.amDesignators(), m.culture.pmDesignators()...) {
		designators = append(designators, regexp.QuoteMeta(d))
	}

	expr := `\d{1,2}(?:\s*[` + seps + `]\s*\d{1,2}){1,2}`
	if len(designators) > 0 {
		alt := `(?:` + strings.Join(designators, "|") + `)`
		expr = `(?i)(?:` + expr + `(?:\s*` + alt + `)?|\d{1,2}\s*` + alt + `)`
	}
	return regexp.MustCompile(expr)
}

func (m *DateTime) nativeToString(value any, neutral bool) (string, error) {
	t := value.(time.Time)
	if err := checkYear(m.name, t); err != nil {
		return "", err
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	date := m.date.layout(neutral).format(partsOf(t))
	clock := m.clock.layout(neutral).format(t.Sub(midnight))
	return date + " " + clock, nil
}

func (m *DateTime) reviewValue(value any) (any, error) {
	return value, nil
}

func (m *DateTime) native(value any) (any, bool) {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case DateParts:
		t = v.Time()
	default:
		return nil, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), true
}

func (m *DateTime) compareNative(a, b any) int {
	return a.(time.Time).Compare(b.(time.Time))
}

func (m *DateTime) isValidChar(ch rune) bool {
	return m.date.isValidChar(ch) || m.clock.isValidChar(ch)
}

// ToNumber returns value as seconds since 1970-01-01 UTC.
func (m *DateTime) ToNumber(value any) (float64, error) {
	native, err := m.comparable(value)
	if err != nil {
		return 0, err
	}
	return float64(native.(time.Time).Unix()), nil
}
