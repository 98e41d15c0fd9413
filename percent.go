package jtac

// PercentOptions configure Percent.
type PercentOptions struct {
	FloatOptions
	ShowPercentSymbol  bool
	AllowPercentSymbol bool
	// OneEqualsOneHundred stores 45% as 0.45. When false it is stored as 45.
	OneEqualsOneHundred bool
}

// DefaultPercentOptions returns the options used when none are given.
func DefaultPercentOptions() PercentOptions {
	return PercentOptions{
		FloatOptions:       DefaultFloatOptions(),
		ShowPercentSymbol:  true,
		AllowPercentSymbol: true,
	}
}

// Percent converts float64 values written with the culture's percent rules.
// MaxDecimalPlaces counts places of the displayed percentage, so with
// OneEqualsOneHundred and 1 place 0.12345 is kept as 0.123.
type Percent struct {
	floatEngine
	percentOpts PercentOptions
}

var (
	_ TypeManager = (*Percent)(nil)
	_ Numeric     = (*Percent)(nil)
)

// NewPercent creates a Percent for culture. A nil culture selects the
// default culture of DefaultCultureRegistry.
func NewPercent(culture *CultureProfile, opts PercentOptions) (*Percent, error) {
	m := &Percent{}
	if err := m.init("Percent", familyPercent, culture); err != nil {
		return nil, err
	}
	if err := m.SetOptions(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Options returns a copy of the active options.
func (m *Percent) Options() PercentOptions {
	return m.percentOpts
}

func (m *Percent) SetOptions(opts PercentOptions) error {
	if err := opts.validate(m.name); err != nil {
		return err
	}
	m.percentOpts = opts
	m.opts = opts.FloatOptions
	m.allowSymbol = opts.AllowPercentSymbol
	m.showSymbol = opts.ShowPercentSymbol
	m.scale100 = opts.OneEqualsOneHundred
	m.reset()
	return nil
}
