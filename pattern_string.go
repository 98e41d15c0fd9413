package jtac

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// PatternStringOptions configure PatternString.
type PatternStringOptions struct {
	StringOptions
	// Pattern is a regular expression the whole value must match. It is
	// anchored automatically.
	Pattern string
	// ValidChars is a regular expression matched against single characters
	// for keystroke filtering. Empty accepts every character.
	ValidChars string
	// Multiple accepts a list of values separated by Delimiter, each of
	// which must match Pattern.
	Multiple bool
	// Delimiter is a regular expression. Empty selects ";" or "," with
	// optional spaces.
	Delimiter string
	// InvalidMessage replaces the default error reason.
	InvalidMessage string
}

const defaultDelimiter = `\s*[;,]\s*`

func (o PatternStringOptions) compile(typeName string) (*compiledPattern, error) {
	if err := o.StringOptions.validate(typeName); err != nil {
		return nil, err
	}
	if o.Pattern == "" {
		return nil, configError(typeName, "Pattern", "must not be empty")
	}
	c := &compiledPattern{multiple: o.Multiple, message: o.InvalidMessage}
	var err error
	if c.pattern, err = regexp.Compile(anchor(o.Pattern)); err != nil {
		return nil, &ConfigurationError{TypeName: typeName, Field: "Pattern", Reason: err.Error(), Err: err}
	}
	if o.ValidChars != "" {
		if c.validChars, err = regexp.Compile(anchor(o.ValidChars)); err != nil {
			return nil, &ConfigurationError{TypeName: typeName, Field: "ValidChars", Reason: err.Error(), Err: err}
		}
	}
	delimiter := o.Delimiter
	if delimiter == "" {
		delimiter = defaultDelimiter
	}
	if c.delimiter, err = regexp.Compile(delimiter); err != nil {
		return nil, &ConfigurationError{TypeName: typeName, Field: "Delimiter", Reason: err.Error(), Err: err}
	}
	if c.message == "" {
		c.message = "invalid format"
	}
	return c, nil
}

// anchor wraps expr so it must match the whole text.
func anchor(expr string) string {
	if strings.HasPrefix(expr, "^") && strings.HasSuffix(expr, "$") {
		return expr
	}
	return "^(?:" + strings.TrimSuffix(strings.TrimPrefix(expr, "^"), "$") + ")$"
}

type compiledPattern struct {
	pattern    *regexp.Regexp
	validChars *regexp.Regexp
	delimiter  *regexp.Regexp
	multiple   bool
	message    string
}

func (c *compiledPattern) items(value string) []string {
	if !c.multiple {
		return []string{value}
	}
	items := c.delimiter.Split(value, -1)
	// a trailing delimiter is tolerated
	if n := len(items); n > 1 && strings.TrimSpace(items[n-1]) == "" {
		items = items[:n-1]
	}
	return items
}

func (c *compiledPattern) isValidChar(ch rune) bool {
	if c.validChars == nil {
		return true
	}
	if c.validChars.MatchString(string(ch)) {
		return true
	}
	return c.multiple && (unicode.IsSpace(ch) || c.delimiter.MatchString(string(ch)))
}

// PatternString accepts text matching a regular expression, optionally as a
// delimited list.
type PatternString struct {
	stringEngine
	patternOpts PatternStringOptions
	compiled    *compiledPattern
}

var _ TypeManager = (*PatternString)(nil)

// NewPatternString creates a PatternString. A nil culture selects the
// default culture of DefaultCultureRegistry.
func NewPatternString(culture *CultureProfile, opts PatternStringOptions) (*PatternString, error) {
	return newPatternString("PatternString", culture, opts)
}

func newPatternString(name string, culture *CultureProfile, opts PatternStringOptions) (*PatternString, error) {
	m := &PatternString{}
	if err := m.init(name, culture); err != nil {
		return nil, err
	}
	m.checks = stringChecks{
		validate:  m.validate,
		validChar: m.validChar,
	}
	if err := m.SetOptions(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Options returns a copy of the active options.
func (m *PatternString) Options() PatternStringOptions {
	return m.patternOpts
}

// SetOptions validates and compiles opts. On error the previous options
// stay active.
func (m *PatternString) SetOptions(opts PatternStringOptions) error {
	compiled, err := opts.compile(m.name)
	if err != nil {
		return err
	}
	if err := m.setStringOptions(opts.StringOptions); err != nil {
		return err
	}
	m.patternOpts = opts
	m.compiled = compiled
	return nil
}

func (m *PatternString) validate(value string) error {
	for _, item := range m.compiled.items(value) {
		if !m.compiled.pattern.MatchString(item) {
			if m.compiled.multiple {
				return inputError(m.name, "", fmt.Sprintf("%s: %q", m.compiled.message, item))
			}
			return inputError(m.name, "", m.compiled.message)
		}
	}
	return nil
}

func (m *PatternString) validChar(ch rune) bool {
	return m.compiled.isValidChar(ch)
}
