package jtac

import (
	"math"
	"strconv"
)

// Integer converts int64 values limited to the signed 32-bit range.
type Integer struct {
	typeManagerBase
	opts  NumberOptions
	specs *lazy[numberSpecs]
}

var (
	_ TypeManager = (*Integer)(nil)
	_ Numeric     = (*Integer)(nil)
)

// NewInteger creates an Integer for culture. A nil culture selects the
// default culture of DefaultCultureRegistry.
func NewInteger(culture *CultureProfile, opts NumberOptions) (*Integer, error) {
	culture, err := resolveCulture(culture)
	if err != nil {
		return nil, err
	}
	m := &Integer{}
	m.typeManagerBase = typeManagerBase{
		name:        "Integer",
		nativeType:  NativeInteger,
		storageType: NativeInteger,
		culture:     culture,
		conv:        m,
	}
	if err := m.SetOptions(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Options returns a copy of the active options.
func (m *Integer) Options() NumberOptions {
	return m.opts
}

func (m *Integer) SetOptions(opts NumberOptions) error {
	if err := opts.validate(m.name); err != nil {
		return err
	}
	m.opts = opts
	m.specs = new(lazy[numberSpecs])
	return nil
}

func (m *Integer) SetCulture(culture *CultureProfile) error {
	if err := m.setCulture(culture); err != nil {
		return err
	}
	m.specs = new(lazy[numberSpecs])
	return nil
}

func (m *Integer) spec(neutral bool) *numberSpec {
	specs := m.specs.get(func() numberSpecs {
		return numberSpecs{
			local: newNumberSpec(numberSpec{
				typeName:       m.name,
				rules:          m.culture.numberRules(familyNumber),
				family:         familyNumber,
				integerOnly:    true,
				allowNegatives: m.opts.AllowNegatives,
				showGroups:     m.opts.ShowGroupSeparators,
				strict:         m.opts.StrictSymbols,
				acceptPeriod:   m.opts.AcceptPeriodAsDecSep,
			}),
			neutral: neutralNumberSpec(m.name, true),
		}
	})
	if neutral {
		return specs.neutral
	}
	return specs.local
}

func (m *Integer) stringToNative(text string, neutral bool) (any, error) {
	value, err := m.spec(neutral).parse(text)
	if err != nil {
		return nil, err
	}
	if err := m.checkInt32(value, text); err != nil {
		return nil, err
	}
	return int64(value), nil
}

func (m *Integer) checkInt32(value float64, text string) error {
	if value > math.MaxInt32 || value < math.MinInt32 {
		return inputErrorf(m.name, text, "must be between %d and %d", math.MinInt32, math.MaxInt32)
	}
	return nil
}

func (m *Integer) nativeToString(value any, neutral bool) (string, error) {
	n := value.(int64)
	if err := m.checkInt32(float64(n), ""); err != nil {
		return "", err
	}
	if neutral {
		return strconv.FormatInt(n, 10), nil
	}
	return m.spec(false).format(float64(n)), nil
}

func (m *Integer) reviewValue(value any) (any, error) {
	n := value.(int64)
	if n < 0 && !m.opts.AllowNegatives {
		return nil, inputError(m.name, "", "negative values are not allowed")
	}
	if err := checkRange(m.name, float64(n), m.opts); err != nil {
		return nil, err
	}
	return n, nil
}

func (m *Integer) native(value any) (any, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case float64:
		if v == math.Trunc(v) && math.Abs(v) <= math.MaxInt64/2 {
			return int64(v), true
		}
	}
	return nil, false
}

func (m *Integer) compareNative(a, b any) int {
	return compareOrdered(a.(int64), b.(int64))
}

func (m *Integer) isValidChar(ch rune) bool {
	return m.spec(false).isValidChar(ch)
}

// ToNumber returns value as a float64.
func (m *Integer) ToNumber(value any) (float64, error) {
	native, err := m.comparable(value)
	if err != nil {
		return 0, err
	}
	return float64(native.(int64)), nil
}

// numberSpecs holds the localized and neutral specs of one number manager.
type numberSpecs struct {
	local   *numberSpec
	neutral *numberSpec
}

func checkRange(typeName string, value float64, opts NumberOptions) error {
	if opts.MinValue != nil && value < *opts.MinValue {
		return inputErrorf(typeName, "", "must be at least %s", strconv.FormatFloat(*opts.MinValue, 'f', -1, 64))
	}
	if opts.MaxValue != nil && value > *opts.MaxValue {
		return inputErrorf(typeName, "", "must be at most %s", strconv.FormatFloat(*opts.MaxValue, 'f', -1, 64))
	}
	return nil
}
