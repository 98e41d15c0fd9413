package jtac

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/width"
)

// TimeRequirement is how much of a time must be typed.
type TimeRequirement int

const (
	// RequireHours accepts "2 PM".
	RequireHours TimeRequirement = iota
	// RequireMinutes needs at least hours and minutes.
	RequireMinutes
	// RequireSeconds needs hours, minutes and seconds.
	RequireSeconds
)

func (r TimeRequirement) valid() bool {
	return r >= RequireHours && r <= RequireSeconds
}

// timeLayout is the immutable reader and writer for one time pattern.
type timeLayout struct {
	typeName string
	tokens   []patternToken
	names    patternNames
	timeSep  string
	// duration forbids AM/PM and allows hours beyond 23.
	duration        bool
	strict          bool
	requires        TimeRequirement
	designatorFirst bool

	designator []designator
	validChars map[rune]struct{}
}

type designator struct {
	text string
	pm   bool
}

func newTimeLayout(typeName string, culture *CultureProfile, tokens []patternToken, duration, strict bool, requires TimeRequirement) *timeLayout {
	l := &timeLayout{
		typeName:   typeName,
		tokens:     tokens,
		names:      cultureNames(culture),
		timeSep:    culture.dateTimeString(RuleTimeSep, ":"),
		duration:   duration,
		strict:     strict,
		requires:   requires,
		validChars: make(map[rune]struct{}),
	}
	if !duration {
		for _, text := range culture.amDesignators() {
			l.designator = append(l.designator, designator{text: text})
		}
		for _, text := range culture.pmDesignators() {
			l.designator = append(l.designator, designator{text: text, pm: true})
		}
		// longest first so "a.m." wins over "a"
		sort.SliceStable(l.designator, func(i, j int) bool {
			return len(l.designator[i].text) > len(l.designator[j].text)
		})
	}
	l.designatorFirst = designatorBeforeHours(tokens)

	add := func(text string) {
		for _, r := range text {
			l.validChars[r] = struct{}{}
		}
	}
	add("0123456789０１２３４５６７８９ ")
	add(l.timeSep)
	if !strict {
		add(":.")
	}
	for _, d := range l.designator {
		add(d.text)
	}
	return l
}

func designatorBeforeHours(tokens []patternToken) bool {
	for _, t := range tokens {
		switch t.symbol {
		case 't':
			return true
		case 'h', 'H':
			return false
		}
	}
	return false
}

func (l *timeLayout) isValidChar(ch rune) bool {
	_, ok := l.validChars[ch]
	return ok
}

func (l *timeLayout) format(d time.Duration) string {
	total := int(d / time.Second)
	return renderPattern(l.tokens, patternValues{
		hours:  total / 3600,
		minute: total / 60 % 60,
		second: total % 60,
	}, l.names)
}

// parse reads "2:30 PM", "14:30:15", "1430" or "2pm" into the time since
// midnight. Unless strict, an AM/PM designator may appear anywhere.
func (l *timeLayout) parse(text string) (time.Duration, error) {
	text = strings.TrimSpace(width.Fold.String(text))
	original := text
	if text == "" {
		return 0, inputError(l.typeName, original, "a time is required")
	}

	found, pm, rest, err := l.takeDesignator(text)
	if err != nil {
		return 0, err
	}

	runs, err := l.digitRuns(rest, original)
	if err != nil {
		return 0, err
	}
	if len(runs) == 1 && len(runs[0]) > 2 && !l.duration {
		runs = splitCompactTime(runs[0])
	}
	if len(runs) == 0 || len(runs) > 3 {
		return 0, inputError(l.typeName, original, "invalid time format")
	}
	switch {
	case l.requires == RequireSeconds && len(runs) < 3:
		return 0, inputError(l.typeName, original, "hours, minutes and seconds are required")
	case l.requires == RequireMinutes && len(runs) < 2:
		return 0, inputError(l.typeName, original, "hours and minutes are required")
	}

	maxHourDigits := 2
	if l.duration {
		maxHourDigits = 6
	}
	if len(runs[0]) > maxHourDigits {
		return 0, inputError(l.typeName, original, "invalid hours")
	}
	hours, _ := strconv.Atoi(runs[0])
	var minutes, seconds int
	for i, run := range runs[1:] {
		if len(run) > 2 {
			return 0, inputError(l.typeName, original, "invalid time format")
		}
		n, _ := strconv.Atoi(run)
		if n > 59 {
			return 0, inputError(l.typeName, original, "minutes and seconds must be less than 60")
		}
		if i == 0 {
			minutes = n
		} else {
			seconds = n
		}
	}

	if found {
		if hours > 12 {
			return 0, inputError(l.typeName, original, "hours must be 1 to 12 with AM or PM")
		}
		if hours == 12 {
			hours = 0
		}
		if pm {
			hours += 12
		}
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, nil
}

// takeDesignator removes the first AM or PM designator from text.
func (l *timeLayout) takeDesignator(text string) (found, pm bool, rest string, err error) {
	for _, d := range l.designator {
		idx := indexFold(text, d.text)
		if idx < 0 {
			continue
		}
		before := strings.TrimSpace(text[:idx])
		after := strings.TrimSpace(text[idx+len(d.text):])
		if l.strict {
			if !hasSymbol(l.tokens, 't') {
				return false, false, "", inputError(l.typeName, text, "AM and PM are not allowed")
			}
			if (l.designatorFirst && before != "") || (!l.designatorFirst && after != "") {
				return false, false, "", inputError(l.typeName, text, "AM or PM is in the wrong position")
			}
		}
		return true, d.pm, strings.TrimSpace(before + " " + after), nil
	}
	return false, false, text, nil
}

// digitRuns splits text on time separators and spaces. Any other character
// is an error.
func (l *timeLayout) digitRuns(text, original string) ([]string, error) {
	var runs []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			runs = append(runs, current.String())
			current.Reset()
		}
	}
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			current.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		case strings.ContainsRune(l.timeSep, r) || (!l.strict && (r == ':' || r == '.')):
			if current.Len() == 0 {
				return nil, inputError(l.typeName, original, "invalid time format")
			}
			flush()
		default:
			return nil, inputErrorf(l.typeName, original, "unexpected character %q", r)
		}
	}
	flush()
	return runs, nil
}

// splitCompactTime turns "1430" into hours and minutes and "143015" into
// hours, minutes and seconds.
func splitCompactTime(run string) []string {
	switch len(run) {
	case 3, 4:
		return []string{run[:len(run)-2], run[len(run)-2:]}
	case 5, 6:
		return []string{run[:len(run)-4], run[len(run)-4 : len(run)-2], run[len(run)-2:]}
	}
	return []string{run}
}

func indexFold(text, substr string) int {
	if substr == "" {
		return -1
	}
	for i := 0; i+len(substr) <= len(text); i++ {
		if strings.EqualFold(text[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}
