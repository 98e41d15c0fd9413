package jtac

import (
	"fmt"
	"time"
)

// TimeFormat picks the culture time or duration pattern.
type TimeFormat int

const (
	// TimeFormatShort omits seconds, e.g. "h:mm tt".
	TimeFormatShort TimeFormat = iota
	// TimeFormatLong includes seconds, e.g. "h:mm:ss tt".
	TimeFormatLong
)

// TimeOptions configure TimeOfDay and, through DurationOptions, Duration.
type TimeOptions struct {
	TimeFormat TimeFormat
	// Pattern replaces the culture pattern picked by TimeFormat.
	Pattern string
	// ParseStrict requires the AM/PM designator where the pattern puts it and
	// only the culture's time separator between fields.
	ParseStrict bool
	// ParseTimeRequires sets how many fields must be typed.
	ParseTimeRequires TimeRequirement
}

// DefaultTimeOptions returns the options used when none are given.
func DefaultTimeOptions() TimeOptions {
	return TimeOptions{}
}

func (o TimeOptions) validate(typeName string) error {
	if o.TimeFormat != TimeFormatShort && o.TimeFormat != TimeFormatLong {
		return configError(typeName, "TimeFormat", fmt.Sprintf("unknown time format %d", int(o.TimeFormat)))
	}
	if !o.ParseTimeRequires.valid() {
		return configError(typeName, "ParseTimeRequires", fmt.Sprintf("unknown requirement %d", int(o.ParseTimeRequires)))
	}
	if o.Pattern != "" {
		tokens := tokenizePattern(o.Pattern)
		if !hasSymbol(tokens, 'H') && !hasSymbol(tokens, 'h') {
			return configError(typeName, "Pattern", "must contain hours")
		}
	}
	return nil
}

// clockEngine is shared by TimeOfDay and Duration. Values are
// time.Duration at whole seconds.
type clockEngine struct {
	typeManagerBase
	opts     TimeOptions
	duration bool
	maxHours int
	layouts  *lazy[timeLayouts]
}

type timeLayouts struct {
	local   *timeLayout
	neutral *timeLayout
}

func (e *clockEngine) init(name string, duration bool, culture *CultureProfile) error {
	culture, err := resolveCulture(culture)
	if err != nil {
		return err
	}
	e.typeManagerBase = typeManagerBase{
		name:        name,
		nativeType:  NativeDuration,
		storageType: NativeDuration,
		culture:     culture,
		conv:        e,
	}
	e.duration = duration
	e.reset()
	return nil
}

func (e *clockEngine) reset() {
	e.layouts = new(lazy[timeLayouts])
}

func (e *clockEngine) setTimeOptions(opts TimeOptions) error {
	if err := opts.validate(e.name); err != nil {
		return err
	}
	e.opts = opts
	e.reset()
	return nil
}

func (e *clockEngine) SetCulture(culture *CultureProfile) error {
	if err := e.setCulture(culture); err != nil {
		return err
	}
	e.reset()
	return nil
}

// Pattern returns the pattern used to format localized values.
func (e *clockEngine) Pattern() string {
	return patternString(e.localTokens())
}

func (e *clockEngine) layout(neutral bool) *timeLayout {
	layouts := e.layouts.get(func() timeLayouts {
		neutralPattern := neutralCulture.DateTime.LongTimePattern
		if e.duration {
			neutralPattern = neutralCulture.DateTime.LongDurationPattern
		}
		return timeLayouts{
			local: newTimeLayout(e.name, e.culture, e.localTokens(), e.duration,
				e.opts.ParseStrict, e.opts.ParseTimeRequires),
			neutral: newTimeLayout(e.name, neutralCulture, tokenizePattern(neutralPattern), e.duration,
				false, RequireHours),
		}
	})
	if neutral {
		return layouts.neutral
	}
	return layouts.local
}

func (e *clockEngine) localTokens() []patternToken {
	if e.opts.Pattern != "" {
		return tokenizePattern(e.opts.Pattern)
	}
	c := e.culture
	long := e.opts.TimeFormat == TimeFormatLong
	switch {
	case e.duration && long:
		return tokenizePattern(c.dateTimeString(RuleLongDurationPattern, "H:mm:ss"))
	case e.duration:
		return tokenizePattern(c.dateTimeString(RuleShortDurationPattern, "H:mm"))
	case long:
		return tokenizePattern(c.dateTimeString(RuleLongTimePattern, "H:mm:ss"))
	}
	return tokenizePattern(c.dateTimeString(RuleShortTimePattern, "H:mm"))
}

func (e *clockEngine) stringToNative(text string, neutral bool) (any, error) {
	d, err := e.layout(neutral).parse(text)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (e *clockEngine) nativeToString(value any, neutral bool) (string, error) {
	return e.layout(neutral).format(value.(time.Duration)), nil
}

// reviewValue enforces the upper limit: under 24 hours for a time of day,
// at most maxHours for a duration.
func (e *clockEngine) reviewValue(value any) (any, error) {
	d := value.(time.Duration)
	if !e.duration && d >= 24*time.Hour {
		return nil, inputError(e.name, "", "must be less than 24 hours")
	}
	if e.duration && d > time.Duration(e.maxHours)*time.Hour {
		return nil, inputErrorf(e.name, "", "must not exceed %d hours", e.maxHours)
	}
	return d, nil
}

func (e *clockEngine) native(value any) (any, bool) {
	var d time.Duration
	switch v := value.(type) {
	case time.Duration:
		d = v
	case time.Time:
		if e.duration {
			return nil, false
		}
		d = time.Duration(v.Hour())*time.Hour + time.Duration(v.Minute())*time.Minute + time.Duration(v.Second())*time.Second
	default:
		return nil, false
	}
	if d < 0 || (!e.duration && d >= 24*time.Hour) {
		return nil, false
	}
	return d.Truncate(time.Second), true
}

func (e *clockEngine) compareNative(a, b any) int {
	return compareOrdered(int64(a.(time.Duration)), int64(b.(time.Duration)))
}

func (e *clockEngine) isValidChar(ch rune) bool {
	return e.layout(false).isValidChar(ch)
}

// ToNumber returns value in seconds.
func (e *clockEngine) ToNumber(value any) (float64, error) {
	native, err := e.comparable(value)
	if err != nil {
		return 0, err
	}
	return native.(time.Duration).Seconds(), nil
}

// TimeOfDay converts a clock time held as the time.Duration since midnight.
type TimeOfDay struct {
	clockEngine
}

var (
	_ TypeManager = (*TimeOfDay)(nil)
	_ Numeric     = (*TimeOfDay)(nil)
)

// NewTimeOfDay creates a TimeOfDay for culture. A nil culture selects the
// default culture of DefaultCultureRegistry.
func NewTimeOfDay(culture *CultureProfile, opts TimeOptions) (*TimeOfDay, error) {
	m := &TimeOfDay{}
	if err := m.init("TimeOfDay", false, culture); err != nil {
		return nil, err
	}
	if err := m.SetOptions(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Options returns a copy of the active options.
func (m *TimeOfDay) Options() TimeOptions {
	return m.opts
}

func (m *TimeOfDay) SetOptions(opts TimeOptions) error {
	return m.setTimeOptions(opts)
}
