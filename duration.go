package jtac

// DurationOptions configure Duration.
type DurationOptions struct {
	TimeOptions
	// MaxHours is the largest number of hours accepted.
	MaxHours int
}

// DefaultDurationOptions returns the options used when none are given.
func DefaultDurationOptions() DurationOptions {
	return DurationOptions{MaxHours: 9999}
}

func (o DurationOptions) validate(typeName string) error {
	if o.MaxHours < 1 {
		return configError(typeName, "MaxHours", "must be at least 1")
	}
	return nil
}

// Duration converts elapsed time held as time.Duration. Hours are always
// written in 24 hour style and may exceed 23.
type Duration struct {
	clockEngine
	durationOpts DurationOptions
}

var (
	_ TypeManager = (*Duration)(nil)
	_ Numeric     = (*Duration)(nil)
)

// NewDuration creates a Duration for culture. A nil culture selects the
// default culture of DefaultCultureRegistry.
func NewDuration(culture *CultureProfile, opts DurationOptions) (*Duration, error) {
	m := &Duration{}
	if err := m.init("Duration", true, culture); err != nil {
		return nil, err
	}
	if err := m.SetOptions(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Options returns a copy of the active options.
func (m *Duration) Options() DurationOptions {
	return m.durationOpts
}

func (m *Duration) SetOptions(opts DurationOptions) error {
	if err := opts.validate(m.name); err != nil {
		return err
	}
	if err := m.setTimeOptions(opts.TimeOptions); err != nil {
		return err
	}
	m.durationOpts = opts
	m.maxHours = opts.MaxHours
	return nil
}

// SetMaxHours changes only the upper limit.
func (m *Duration) SetMaxHours(hours int) error {
	opts := m.durationOpts
	opts.MaxHours = hours
	return m.SetOptions(opts)
}
