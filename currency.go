package jtac

// CurrencyOptions configure Currency.
type CurrencyOptions struct {
	FloatOptions
	// ShowCurrencySymbol writes the culture's currency symbol when formatting.
	ShowCurrencySymbol bool
	// AllowCurrencySymbol accepts the symbol when parsing. When false, text
	// holding the symbol is rejected.
	AllowCurrencySymbol bool
	// HideDecimalWhenZero formats 5.00 as "$5".
	HideDecimalWhenZero bool
	// UseCultureDecimalPlaces limits precision and pads trailing zeros to the
	// culture's currency decimal places unless MaxDecimalPlaces or
	// TrailingZeroDecimalPlaces say otherwise.
	UseCultureDecimalPlaces bool
}

// DefaultCurrencyOptions returns the options used when none are given.
func DefaultCurrencyOptions() CurrencyOptions {
	float := DefaultFloatOptions()
	float.RoundMode = RoundCurrency
	return CurrencyOptions{
		FloatOptions:            float,
		ShowCurrencySymbol:      true,
		AllowCurrencySymbol:     true,
		UseCultureDecimalPlaces: true,
	}
}

// Currency converts float64 amounts written with the culture's currency
// rules.
type Currency struct {
	floatEngine
	currencyOpts CurrencyOptions
}

var (
	_ TypeManager = (*Currency)(nil)
	_ Numeric     = (*Currency)(nil)
)

// NewCurrency creates a Currency for culture. A nil culture selects the
// default culture of DefaultCultureRegistry.
func NewCurrency(culture *CultureProfile, opts CurrencyOptions) (*Currency, error) {
	m := &Currency{}
	if err := m.init("Currency", familyCurrency, culture); err != nil {
		return nil, err
	}
	m.defaultTrailingZeros = 2
	if err := m.SetOptions(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Options returns a copy of the active options.
func (m *Currency) Options() CurrencyOptions {
	return m.currencyOpts
}

func (m *Currency) SetOptions(opts CurrencyOptions) error {
	if err := opts.validate(m.name); err != nil {
		return err
	}
	m.currencyOpts = opts
	m.opts = opts.FloatOptions
	m.allowSymbol = opts.AllowCurrencySymbol
	m.showSymbol = opts.ShowCurrencySymbol
	m.hideZeroFraction = opts.HideDecimalWhenZero
	m.cultureDecimals = opts.UseCultureDecimalPlaces
	m.reset()
	return nil
}

// CurrencyCode returns the ISO 4217 code of the culture, if known.
func (m *Currency) CurrencyCode() string {
	return m.culture.CurrencyCode
}
