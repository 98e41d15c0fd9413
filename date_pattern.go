package jtac

import (
	"strconv"
	"strings"
	"time"
)

// patternSymbols are the letters with meaning inside a date or time pattern.
const patternSymbols = "dMyHhmst"

// patternToken is either a run of one symbol letter ("MMM") or literal text.
type patternToken struct {
	symbol  byte
	count   int
	literal string
}

func (t patternToken) isLiteral() bool {
	return t.symbol == 0
}

// tokenizePattern splits pattern into symbol runs and literals. Text inside
// single quotes and characters escaped with a backslash are literal. Two
// single quotes in a row stand for one quote.
func tokenizePattern(pattern string) []patternToken {
	var tokens []patternToken
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, patternToken{literal: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\'':
			j := i + 1
			for j < len(runes) {
				if runes[j] == '\'' {
					if j+1 < len(runes) && runes[j+1] == '\'' {
						lit.WriteRune('\'')
						j += 2
						continue
					}
					break
				}
				lit.WriteRune(runes[j])
				j++
			}
			if j == i+1 && j < len(runes) && runes[j] == '\'' {
				// two single quotes outside a quoted section
				lit.WriteRune('\'')
			}
			i = j + 1
		case r == '\\' && i+1 < len(runes):
			lit.WriteRune(runes[i+1])
			i += 2
		case r < 0x80 && strings.IndexByte(patternSymbols, byte(r)) >= 0:
			flush()
			j := i
			for j < len(runes) && runes[j] == r {
				j++
			}
			tokens = append(tokens, patternToken{symbol: byte(r), count: j - i})
			i = j
		default:
			lit.WriteRune(r)
			i++
		}
	}
	flush()
	return tokens
}

// fieldOrder lists 'd', 'M' and 'y' in the order they first appear. Day
// names (ddd, dddd) do not count as a day field.
func fieldOrder(tokens []patternToken) []byte {
	order := make([]byte, 0, 3)
	seen := map[byte]bool{}
	for _, t := range tokens {
		switch t.symbol {
		case 'd':
			if t.count > 2 {
				continue
			}
		case 'M', 'y':
		default:
			continue
		}
		if !seen[t.symbol] {
			seen[t.symbol] = true
			order = append(order, t.symbol)
		}
	}
	return order
}

// removeField drops every run of symbol together with one neighbouring
// literal, turning "M/d/yyyy" into "M/yyyy" for symbol 'd'.
func removeField(tokens []patternToken, symbol byte) []patternToken {
	out := append([]patternToken(nil), tokens...)
	for {
		idx := -1
		for i, t := range out {
			if t.symbol == symbol {
				idx = i
				break
			}
		}
		if idx < 0 {
			return out
		}
		from, to := idx, idx+1
		switch {
		case to < len(out) && out[to].isLiteral() && idx > 0:
			to++
		case idx > 0 && out[idx-1].isLiteral():
			from--
		case to < len(out) && out[to].isLiteral():
			to++
		}
		out = append(out[:from], out[to:]...)
	}
}

// abbreviateMonths turns every MMMM run into MMM.
func abbreviateMonths(tokens []patternToken) []patternToken {
	out := append([]patternToken(nil), tokens...)
	for i, t := range out {
		if t.symbol == 'M' && t.count > 3 {
			out[i].count = 3
		}
	}
	return out
}

func hasSymbol(tokens []patternToken, symbol byte) bool {
	for _, t := range tokens {
		if t.symbol == symbol {
			return true
		}
	}
	return false
}

// patternValues are the fields a pattern can print.
type patternValues struct {
	year, month, day int
	weekday          time.Weekday
	hours            int
	minute, second   int
}

// patternNames are the culture names renderPattern substitutes.
type patternNames struct {
	months, monthsAbbr []string
	days, daysAbbr     []string
	am, pm             string
}

func cultureNames(c *CultureProfile) patternNames {
	names := patternNames{
		months:     c.monthNames(),
		monthsAbbr: c.monthAbbrNames(),
		days:       c.dayNames(),
		daysAbbr:   c.dayAbbrNames(),
	}
	if am := c.amDesignators(); len(am) > 0 {
		names.am = am[0]
	}
	if pm := c.pmDesignators(); len(pm) > 0 {
		names.pm = pm[0]
	}
	return names
}

// renderPattern substitutes v into tokens. Literals are copied untouched.
func renderPattern(tokens []patternToken, v patternValues, names patternNames) string {
	var b strings.Builder
	designatorMissing := false
	for _, t := range tokens {
		switch t.symbol {
		case 0:
			b.WriteString(t.literal)
		case 'd':
			switch {
			case t.count >= 4:
				b.WriteString(nameAt(names.days, int(v.weekday)))
			case t.count == 3:
				b.WriteString(nameAt(names.daysAbbr, int(v.weekday)))
			default:
				b.WriteString(pad(v.day, t.count))
			}
		case 'M':
			switch {
			case t.count >= 4:
				b.WriteString(nameAt(names.months, v.month-1))
			case t.count == 3:
				b.WriteString(nameAt(names.monthsAbbr, v.month-1))
			default:
				b.WriteString(pad(v.month, t.count))
			}
		case 'y':
			if t.count <= 2 {
				b.WriteString(pad(v.year%100, t.count))
			} else {
				b.WriteString(pad(v.year, t.count))
			}
		case 'H':
			b.WriteString(pad(v.hours, t.count))
		case 'h':
			h := v.hours % 12
			if h == 0 {
				h = 12
			}
			b.WriteString(pad(h, t.count))
		case 'm':
			b.WriteString(pad(v.minute, t.count))
		case 's':
			b.WriteString(pad(v.second, t.count))
		case 't':
			designator := names.am
			if v.hours%24 >= 12 {
				designator = names.pm
			}
			if designator == "" {
				designatorMissing = true
				continue
			}
			if t.count == 1 {
				r := []rune(designator)
				designator = string(r[:1])
			}
			b.WriteString(designator)
		}
	}
	if designatorMissing {
		return strings.TrimSpace(b.String())
	}
	return b.String()
}

func nameAt(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return ""
	}
	return names[i]
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}
