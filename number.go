package jtac

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// NumberOptions are shared by every number type manager.
type NumberOptions struct {
	// AllowNegatives rejects negative input when false.
	AllowNegatives bool
	// ShowGroupSeparators inserts group separators when formatting. Parsing
	// always accepts them.
	ShowGroupSeparators bool
	// StrictSymbols requires the negative sign and the currency or percent
	// symbol to sit where the culture's patterns place them. Otherwise the
	// presence of a symbol is enough.
	StrictSymbols bool
	// AcceptPeriodAsDecSep lets '.' act as the decimal separator in cultures
	// that use something else.
	AcceptPeriodAsDecSep bool
	// MinValue and MaxValue, when set, bound legal values.
	MinValue *float64
	MaxValue *float64
}

// DefaultNumberOptions returns the options used when none are given.
func DefaultNumberOptions() NumberOptions {
	return NumberOptions{
		AllowNegatives:       true,
		ShowGroupSeparators:  true,
		AcceptPeriodAsDecSep: true,
	}
}

func (o NumberOptions) validate(typeName string) error {
	if o.MinValue != nil && o.MaxValue != nil && *o.MinValue > *o.MaxValue {
		return configError(typeName, "MinValue", "must not exceed MaxValue")
	}
	return nil
}

// symbolMark stands in for a currency or percent symbol while parsing.
const symbolMark = "\x00"

var (
	looseNumberPattern = regexp.MustCompile(`^([-(])?(?:\d+(?:\.\d*)?|\.\d+)([-)])?$`)
	signSpacing        = regexp.MustCompile(`\s*([-()])\s*`)
)

// numberSpec is the fully resolved description of how one number type
// manager reads and writes text for one culture. It is immutable.
type numberSpec struct {
	typeName       string
	rules          resolvedNumberRules
	family         numberFamily
	integerOnly    bool
	allowNegatives bool
	allowSymbol    bool
	showSymbol     bool
	showGroups     bool
	strict         bool
	acceptPeriod   bool
	// minFraction pads the fraction with zeros up to this many digits.
	minFraction int
	// hideZeroFraction drops a fraction made only of zeros.
	hideZeroFraction bool

	negRegexp  *regexp.Regexp
	posRegexp  *regexp.Regexp
	validChars map[rune]struct{}
}

func newNumberSpec(s numberSpec) *numberSpec {
	spec := &s
	if spec.family == familyNumber {
		spec.rules.symbol = ""
		spec.allowSymbol = false
		spec.showSymbol = false
	}
	if spec.strict {
		spec.negRegexp = spec.patternRegexp(spec.rules.negPattern)
		spec.posRegexp = spec.patternRegexp(spec.rules.posPattern)
	}
	spec.validChars = spec.buildValidChars()
	return spec
}

func (s *numberSpec) symbolToken() rune {
	switch s.family {
	case familyCurrency:
		return '$'
	case familyPercent:
		return '%'
	}
	return 0
}

// patternRegexp turns a culture pattern into an anchored expression over the
// normalised text. Spaces and the symbol are optional, so "$ 5" satisfies
// "$n" and "5" satisfies "n %".
func (s *numberSpec) patternRegexp(pattern string) *regexp.Regexp {
	token := s.symbolToken()
	var b strings.Builder
	b.WriteString(`^\s*`)
	for _, r := range pattern {
		switch {
		case r == 'n':
			b.WriteString(`(\d+(?:\.\d*)?|\.\d+)`)
		case r == '-':
			b.WriteString(regexp.QuoteMeta(s.rules.negSymbol))
		case token != 0 && r == token:
			b.WriteString(`\s*(?:` + symbolMark + `)?\s*`)
		case unicode.IsSpace(r):
			b.WriteString(`\s*`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`\s*$`)
	return regexp.MustCompile(b.String())
}

func (s *numberSpec) buildValidChars() map[rune]struct{} {
	chars := make(map[rune]struct{}, 32)
	add := func(text string) {
		for _, r := range text {
			chars[r] = struct{}{}
		}
	}
	add("0123456789")
	add("０１２３４５６７８９")
	if !s.integerOnly {
		add(s.rules.decimalSep)
		if s.acceptPeriod {
			add(".")
		}
	}
	add(s.rules.groupSep)
	if isSpaceSeparator(s.rules.groupSep) {
		add(" \u00a0\u202f")
	}
	if s.allowNegatives {
		add(s.rules.negSymbol)
		add("-")
		if !s.strict || strings.ContainsAny(s.rules.negPattern, "()") {
			add("()")
		}
	}
	if s.allowSymbol {
		add(s.rules.symbol)
	}
	if strings.ContainsFunc(s.rules.negPattern+s.rules.posPattern, unicode.IsSpace) {
		add(" ")
	}
	return chars
}

func (s *numberSpec) isValidChar(ch rune) bool {
	_, ok := s.validChars[ch]
	return ok
}

func isSpaceSeparator(sep string) bool {
	return sep != "" && strings.TrimFunc(sep, unicode.IsSpace) == ""
}

// parse implements the tolerant number reader: symbols are swapped for a
// marker, the period heuristic runs, group separators are dropped and the
// decimal separator becomes '.', then the sign is read either strictly from
// the culture patterns or loosely from any sign character present.
func (s *numberSpec) parse(text string) (float64, error) {
	text = strings.TrimSpace(width.Fold.String(text))
	original := text
	rules := s.rules

	if rules.symbol != "" && strings.Contains(text, rules.symbol) {
		if !s.allowSymbol {
			return 0, inputErrorf(s.typeName, original, "the %s symbol is not allowed", rules.symbol)
		}
		text = strings.ReplaceAll(text, rules.symbol, symbolMark)
	}

	if s.acceptPeriod && rules.decimalSep != "." && strings.Contains(text, ".") {
		text = s.periodAsDecimalSep(text)
	}

	if rules.groupSep != "" {
		if !s.groupingOK(text) {
			return 0, inputError(s.typeName, original, "misplaced group separator")
		}
		if isSpaceSeparator(rules.groupSep) {
			text = stripSpaceSeparators(text)
		} else {
			text = strings.ReplaceAll(text, rules.groupSep, "")
		}
	}

	if rules.decimalSep != "." {
		if strings.Contains(text, ".") {
			return 0, inputError(s.typeName, original, "unexpected period")
		}
		text = strings.ReplaceAll(text, rules.decimalSep, ".")
	}
	if strings.Count(text, ".") > 1 {
		return 0, inputError(s.typeName, original, "too many decimal separators")
	}
	if s.integerOnly && strings.Contains(text, ".") {
		return 0, inputError(s.typeName, original, "decimal values are not allowed")
	}

	var digits string
	var negative bool
	if s.strict {
		var ok bool
		digits, negative, ok = s.matchStrict(text)
		if !ok {
			return 0, inputError(s.typeName, original, "invalid format")
		}
	} else {
		var ok bool
		digits, negative, ok = s.matchLoose(text)
		if !ok {
			return 0, inputError(s.typeName, original, "invalid format")
		}
	}

	value, err := strconv.ParseFloat(digits, 64)
	if err != nil || math.IsInf(value, 0) {
		return 0, inputError(s.typeName, original, "number out of range")
	}
	if negative && value != 0 {
		value = -value
	}
	return value, nil
}

// periodAsDecimalSep decides whether the periods in text are decimal
// separators. When the culture groups with '.', a single period is read as
// decimal only if no culture decimal separator is present and it is not
// followed by exactly three digits, so "1.234" stays one thousand two
// hundred thirty-four while "1.5" becomes one and a half.
func (s *numberSpec) periodAsDecimalSep(text string) string {
	decSep := s.rules.decimalSep
	if strings.Contains(text, decSep) {
		return text
	}
	if s.rules.groupSep == "." {
		if strings.Count(text, ".") != 1 {
			return text
		}
		_, after, _ := strings.Cut(text, ".")
		if countLeadingDigits(after) == 3 {
			return text
		}
		return strings.Replace(text, ".", decSep, 1)
	}
	return strings.ReplaceAll(text, ".", decSep)
}

// groupingOK reports whether the group separators in the whole part of text
// sit where the culture's group sizes put them, so "1.5" is not read as
// fifteen in a culture that groups with '.'.
func (s *numberSpec) groupingOK(text string) bool {
	sep := s.rules.groupSep
	whole, fraction, _ := strings.Cut(text, s.rules.decimalSep)
	if digitsHoldSeparator(fraction, sep) {
		return false
	}
	first := strings.IndexFunc(whole, isDigit)
	if first < 0 {
		return !strings.Contains(whole, sep)
	}
	last := strings.LastIndexFunc(whole, isDigit)
	core := whole[first : last+1]

	var groups []string
	if isSpaceSeparator(sep) {
		groups = strings.FieldsFunc(core, unicode.IsSpace)
	} else {
		if strings.Count(core, sep) != strings.Count(whole, sep) {
			return false
		}
		groups = strings.Split(core, sep)
	}
	return validGroups(groups, s.rules.groupSizes)
}

// digitsHoldSeparator reports whether sep appears within the digits of a
// fraction. A space separator may still trail the digits before a symbol.
func digitsHoldSeparator(fraction, sep string) bool {
	if !isSpaceSeparator(sep) {
		return strings.Contains(fraction, sep)
	}
	first := strings.IndexFunc(fraction, isDigit)
	if first < 0 {
		return false
	}
	last := strings.LastIndexFunc(fraction, isDigit)
	return strings.ContainsFunc(fraction[first:last+1], unicode.IsSpace)
}

// validGroups checks digit groups, most significant first, against sizes
// read right to left. The last size repeats and a size of 0 ends grouping.
func validGroups(groups []string, sizes []int) bool {
	if len(groups) < 2 {
		return true
	}
	if len(sizes) == 0 {
		return false
	}
	for i := len(groups) - 1; i >= 0; i-- {
		size := sizes[min(len(groups)-1-i, len(sizes)-1)]
		n := len(groups[i])
		switch {
		case size <= 0:
			return i == 0
		case i == 0:
			return n >= 1 && n <= size
		case n != size:
			return false
		}
	}
	return true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func countLeadingDigits(text string) int {
	n := 0
	for _, r := range text {
		if r < '0' || r > '9' {
			break
		}
		n++
	}
	return n
}

func stripSpaceSeparators(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

func (s *numberSpec) matchStrict(text string) (digits string, negative, ok bool) {
	if m := s.negRegexp.FindStringSubmatch(text); m != nil {
		return m[1], true, true
	}
	if m := s.posRegexp.FindStringSubmatch(text); m != nil {
		return m[1], false, true
	}
	return "", false, false
}

func (s *numberSpec) matchLoose(text string) (digits string, negative, ok bool) {
	text = strings.ReplaceAll(text, symbolMark, " ")
	if neg := s.rules.negSymbol; neg != "-" && neg != "" {
		text = strings.ReplaceAll(text, neg, "-")
	}
	text = strings.TrimSpace(signSpacing.ReplaceAllString(text, "$1"))

	m := looseNumberPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false, false
	}
	negative = m[1] != "" || m[2] != ""
	digits = strings.Trim(text, "-()")
	return digits, negative, true
}

// format renders value following the culture's negative or positive
// pattern. value must already be rounded.
func (s *numberSpec) format(value float64) string {
	negative := value < 0
	if value == 0 {
		negative = false
	}

	text := strconv.FormatFloat(math.Abs(value), 'f', -1, 64)
	whole, fraction, _ := strings.Cut(text, ".")

	if s.hideZeroFraction && strings.Trim(fraction, "0") == "" {
		fraction = ""
	} else if len(fraction) < s.minFraction {
		fraction += strings.Repeat("0", s.minFraction-len(fraction))
	}

	if s.showGroups && s.rules.groupSep != "" {
		whole = groupDigits(whole, s.rules.groupSizes, s.rules.groupSep)
	}

	number := whole
	if fraction != "" {
		number += s.rules.decimalSep + fraction
	}

	pattern := s.rules.posPattern
	if negative {
		pattern = s.rules.negPattern
	}
	return s.applyPattern(pattern, number)
}

func (s *numberSpec) applyPattern(pattern, number string) string {
	token := s.symbolToken()
	if token != 0 && !s.showSymbol {
		t := string(token)
		pattern = strings.ReplaceAll(pattern, t+" ", "")
		pattern = strings.ReplaceAll(pattern, " "+t, "")
		pattern = strings.ReplaceAll(pattern, t, "")
	}

	var b strings.Builder
	for _, r := range pattern {
		switch {
		case r == 'n':
			b.WriteString(number)
		case r == '-':
			b.WriteString(s.rules.negSymbol)
		case token != 0 && r == token:
			b.WriteString(s.rules.symbol)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// groupDigits inserts sep into the integer digits, scanning right to left.
// The last size repeats; a size of 0 stops grouping.
func groupDigits(digits string, sizes []int, sep string) string {
	if len(sizes) == 0 || sizes[0] <= 0 || len(digits) <= sizes[0] {
		return digits
	}

	var groups []string
	pos := len(digits)
	idx := 0
	size := sizes[0]
	for size > 0 && pos > size {
		groups = append(groups, digits[pos-size:pos])
		pos -= size
		if idx < len(sizes)-1 {
			idx++
			size = sizes[idx]
		}
	}
	groups = append(groups, digits[:pos])

	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(groups, sep)
}

// neutralNumberSpec is the interchange format: '.' decimal separator, no
// grouping, leading '-'.
func neutralNumberSpec(typeName string, integerOnly bool) *numberSpec {
	minFraction := 1
	if integerOnly {
		minFraction = 0
	}
	return newNumberSpec(numberSpec{
		typeName:       typeName,
		rules:          neutralCulture.numberRules(familyNumber),
		family:         familyNumber,
		integerOnly:    integerOnly,
		allowNegatives: true,
		strict:         true,
		minFraction:    minFraction,
	})
}
