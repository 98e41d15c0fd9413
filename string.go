package jtac

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// StringOptions configure String and are embedded by the pattern and
// region string options.
type StringOptions struct {
	// Trim removes leading and trailing white space when parsing.
	Trim bool
	// CaseInsensitive makes Compare ignore case.
	CaseInsensitive bool
	// MaxLength limits the number of characters. 0 means unlimited.
	MaxLength int
}

// DefaultStringOptions returns the options used when none are given.
func DefaultStringOptions() StringOptions {
	return StringOptions{Trim: true}
}

func (o StringOptions) validate(typeName string) error {
	if o.MaxLength < 0 {
		return configError(typeName, "MaxLength", "must not be negative")
	}
	return nil
}

// stringChecks are the hooks that separate String, PatternString and
// RegionString. A nil hook does nothing.
type stringChecks struct {
	normalize func(text string, neutral bool) string
	validate  func(value string) error
	neutral   func(value string) string
	validChar func(ch rune) bool
}

// stringEngine is the shared identity conversion.
type stringEngine struct {
	typeManagerBase
	opts   StringOptions
	checks stringChecks
}

func (e *stringEngine) init(name string, culture *CultureProfile) error {
	culture, err := resolveCulture(culture)
	if err != nil {
		return err
	}
	e.typeManagerBase = typeManagerBase{
		name:        name,
		nativeType:  NativeString,
		storageType: NativeString,
		culture:     culture,
		conv:        e,
	}
	return nil
}

func (e *stringEngine) setStringOptions(opts StringOptions) error {
	if err := opts.validate(e.name); err != nil {
		return err
	}
	e.opts = opts
	return nil
}

func (e *stringEngine) SetCulture(culture *CultureProfile) error {
	return e.setCulture(culture)
}

func (e *stringEngine) stringToNative(text string, neutral bool) (any, error) {
	if e.opts.Trim {
		text = strings.TrimSpace(text)
	}
	if e.checks.normalize != nil && text != "" {
		text = e.checks.normalize(text, neutral)
	}
	return text, nil
}

func (e *stringEngine) nativeToString(value any, neutral bool) (string, error) {
	s := value.(string)
	if neutral && e.checks.neutral != nil {
		return e.checks.neutral(s), nil
	}
	return s, nil
}

func (e *stringEngine) reviewValue(value any) (any, error) {
	s := value.(string)
	if s == "" {
		return s, nil
	}
	if e.opts.MaxLength > 0 && utf8.RuneCountInString(s) > e.opts.MaxLength {
		return nil, inputErrorf(e.name, "", "must be at most %d characters", e.opts.MaxLength)
	}
	if e.checks.validate != nil {
		if err := e.checks.validate(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (e *stringEngine) native(value any) (any, bool) {
	s, ok := value.(string)
	return s, ok
}

func (e *stringEngine) compareNative(a, b any) int {
	x, y := a.(string), b.(string)
	if e.opts.CaseInsensitive {
		fold := cases.Fold()
		x, y = fold.String(x), fold.String(y)
	}
	return compareOrdered(x, y)
}

func (e *stringEngine) isValidChar(ch rune) bool {
	if e.checks.validChar != nil {
		return e.checks.validChar(ch)
	}
	return true
}

// String converts text to itself. It exists so strings share the
// TypeManager contract with the other types.
type String struct {
	stringEngine
}

var _ TypeManager = (*String)(nil)

// NewString creates a String. A nil culture selects the default culture of
// DefaultCultureRegistry.
func NewString(culture *CultureProfile, opts StringOptions) (*String, error) {
	m := &String{}
	if err := m.init("String", culture); err != nil {
		return nil, err
	}
	if err := m.SetOptions(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Options returns a copy of the active options.
func (m *String) Options() StringOptions {
	return m.opts
}

func (m *String) SetOptions(opts StringOptions) error {
	return m.setStringOptions(opts)
}
