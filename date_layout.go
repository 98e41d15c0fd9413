package jtac

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// DateParts is the decomposed form passed between date parsing and
// formatting. Month is 1-12, Day 1-31 and Hour 0-23.
type DateParts struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Time returns the parts as a UTC time.
func (p DateParts) Time() time.Time {
	return time.Date(p.Year, time.Month(p.Month), p.Day, p.Hour, p.Minute, p.Second, 0, time.UTC)
}

func partsOf(t time.Time) DateParts {
	return DateParts{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// leapYear is the year given to values that carry no year, so February 29
// is a legal day-month.
const leapYear = 2004

// Years outside this range have no one to four digit text form.
const (
	minYear = 1
	maxYear = 9999
)

// dateLayout is the immutable reader and writer for one date pattern.
type dateLayout struct {
	typeName     string
	tokens       []patternToken
	order        []byte
	names        patternNames
	twoDigitYear bool
	yearMax      int

	months       []string
	monthsAbbr   []string
	dayWords     map[string]struct{}
	literalWords map[string]struct{}
	validChars   map[rune]struct{}
	// numeric is true when the pattern holds no names and no spaces.
	numeric bool
}

func newDateLayout(typeName string, culture *CultureProfile, tokens []patternToken, twoDigitYear bool) *dateLayout {
	fold := cases.Fold()
	l := &dateLayout{
		typeName:     typeName,
		tokens:       tokens,
		order:        fieldOrder(tokens),
		names:        cultureNames(culture),
		twoDigitYear: twoDigitYear,
		yearMax:      culture.twoDigitYearMax(),
		dayWords:     make(map[string]struct{}),
		literalWords: make(map[string]struct{}),
		validChars:   make(map[rune]struct{}),
		numeric:      true,
	}
	for _, name := range l.names.months {
		l.months = append(l.months, foldName(fold, name))
	}
	for _, name := range l.names.monthsAbbr {
		l.monthsAbbr = append(l.monthsAbbr, foldName(fold, name))
	}
	for _, name := range append(append([]string(nil), l.names.days...), l.names.daysAbbr...) {
		l.dayWords[foldName(fold, name)] = struct{}{}
	}

	add := func(text string) {
		for _, r := range text {
			l.validChars[r] = struct{}{}
		}
	}
	add("0123456789０１２３４５６７８９ ")
	add(culture.dateTimeString(RuleShortDateSep, "/"))
	for _, name := range l.names.months {
		add(name)
	}
	for _, name := range l.names.monthsAbbr {
		add(name)
	}
	for _, t := range tokens {
		switch {
		case t.isLiteral():
			add(t.literal)
			for _, word := range strings.FieldsFunc(t.literal, notLetter) {
				l.literalWords[foldName(fold, word)] = struct{}{}
			}
			if strings.ContainsFunc(t.literal, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsLetter(r) }) {
				l.numeric = false
			}
		case t.symbol == 'M' && t.count > 2:
			l.numeric = false
		case t.symbol == 'd' && t.count > 2:
			l.numeric = false
			for _, name := range l.names.days {
				add(name)
			}
			for _, name := range l.names.daysAbbr {
				add(name)
			}
		}
	}
	return l
}

func foldName(fold cases.Caser, name string) string {
	return strings.TrimSuffix(fold.String(strings.TrimSpace(name)), ".")
}

func notLetter(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsMark(r)
}

func (l *dateLayout) isValidChar(ch rune) bool {
	_, ok := l.validChars[ch]
	return ok
}

func (l *dateLayout) format(p DateParts) string {
	return renderPattern(l.tokens, patternValues{
		year:    p.Year,
		month:   p.Month,
		day:     p.Day,
		weekday: p.Time().Weekday(),
	}, l.names)
}

// dateWord is a run of digits or letters within the parsed text.
type dateWord struct {
	text   string
	digits bool
}

func splitDateWords(text string) []dateWord {
	var words []dateWord
	runes := []rune(text)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			j := i
			for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
				j++
			}
			words = append(words, dateWord{text: string(runes[i:j]), digits: true})
			i = j
		case !notLetter(r):
			j := i
			for j < len(runes) && !notLetter(runes[j]) {
				j++
			}
			words = append(words, dateWord{text: string(runes[i:j])})
			i = j
		default:
			i++
		}
	}
	return words
}

// parse reads text in any order-compatible form: separated digits
// ("2/29/2024"), a compact digit run ("02292024"), or with a month name in
// full or abbreviated form ("Feb 29, 2024"). Day names and words that
// appear as pattern literals are skipped.
func (l *dateLayout) parse(text string) (DateParts, error) {
	text = strings.TrimSpace(width.Fold.String(text))
	if text == "" {
		return DateParts{}, inputError(l.typeName, text, "a date is required")
	}
	if len(l.order) > 1 && isDigits(text) {
		return l.parseCompact(text)
	}

	fold := cases.Fold()
	month := 0
	var numbers []string
	for _, w := range splitDateWords(text) {
		if w.digits {
			numbers = append(numbers, w.text)
			continue
		}
		word := foldName(fold, w.text)
		if m := l.monthIndex(word); m > 0 {
			if month != 0 {
				return DateParts{}, inputError(l.typeName, text, "the month is given twice")
			}
			month = m
			continue
		}
		if _, ok := l.dayWords[word]; ok {
			continue
		}
		if _, ok := l.literalWords[word]; ok {
			continue
		}
		return DateParts{}, inputErrorf(l.typeName, text, "unexpected word %q", w.text)
	}

	fields := l.order
	if month != 0 {
		fields = withoutField(fields, 'M')
	}
	if len(numbers) != len(fields) {
		return DateParts{}, inputError(l.typeName, text, "invalid date format")
	}

	parts := DateParts{Year: leapYear, Month: month, Day: 1}
	for i, field := range fields {
		if err := l.assign(&parts, field, numbers[i], text); err != nil {
			return DateParts{}, err
		}
	}
	return parts, l.validate(parts, text)
}

// parseCompact splits an unbroken digit run by field order. Day and month
// take two digits; the year takes what remains, which must be two or four.
func (l *dateLayout) parseCompact(text string) (DateParts, error) {
	yearDigits := len(text) - 2*(len(l.order)-1)
	if !hasField(l.order, 'y') {
		yearDigits = 0
		if len(text) != 2*len(l.order) {
			return DateParts{}, inputError(l.typeName, text, "invalid date format")
		}
	} else if yearDigits != 2 && yearDigits != 4 {
		return DateParts{}, inputError(l.typeName, text, "invalid date format")
	}

	parts := DateParts{Year: leapYear, Day: 1}
	pos := 0
	for _, field := range l.order {
		size := 2
		if field == 'y' {
			size = yearDigits
		}
		if err := l.assign(&parts, field, text[pos:pos+size], text); err != nil {
			return DateParts{}, err
		}
		pos += size
	}
	return parts, l.validate(parts, text)
}

func (l *dateLayout) assign(parts *DateParts, field byte, digits, text string) error {
	switch field {
	case 'd', 'M':
		if len(digits) > 2 {
			return inputError(l.typeName, text, "invalid date format")
		}
		n, _ := strconv.Atoi(digits)
		if field == 'd' {
			parts.Day = n
		} else {
			parts.Month = n
		}
	case 'y':
		year, err := l.year(digits, text)
		if err != nil {
			return err
		}
		parts.Year = year
	}
	return nil
}

// checkYear rejects dates whose year cannot be written back as one to four
// digits.
func checkYear(typeName string, t time.Time) error {
	if year := t.Year(); year < minYear || year > maxYear {
		return inputErrorf(typeName, "", "the year must be between %d and %d", minYear, maxYear)
	}
	return nil
}

// year expands a two digit year into the hundred years ending at the
// culture's TwoDigitYearMax.
func (l *dateLayout) year(digits, text string) (int, error) {
	if len(digits) > 4 {
		return 0, inputError(l.typeName, text, "invalid year")
	}
	n, _ := strconv.Atoi(digits)
	if len(digits) > 2 {
		if n < 1 {
			return 0, inputError(l.typeName, text, "invalid year")
		}
		return n, nil
	}
	if !l.twoDigitYear {
		return 0, inputError(l.typeName, text, "a four digit year is required")
	}
	year := l.yearMax/100*100 + n
	if year > l.yearMax {
		year -= 100
	}
	return year, nil
}

func (l *dateLayout) validate(p DateParts, text string) error {
	if p.Month < 1 || p.Month > 12 {
		return inputError(l.typeName, text, "the month must be between 1 and 12")
	}
	if p.Day < 1 || p.Day > daysIn(p.Year, p.Month) {
		return inputError(l.typeName, text, "the day is not in that month")
	}
	return nil
}

func (l *dateLayout) monthIndex(word string) int {
	for i, name := range l.months {
		if name == word {
			return i + 1
		}
	}
	for i, name := range l.monthsAbbr {
		if name == word {
			return i + 1
		}
	}
	return 0
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isDigits(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}

func hasField(order []byte, field byte) bool {
	for _, f := range order {
		if f == field {
			return true
		}
	}
	return false
}

func withoutField(order []byte, field byte) []byte {
	out := make([]byte, 0, len(order))
	for _, f := range order {
		if f != field {
			out = append(out, f)
		}
	}
	return out
}
