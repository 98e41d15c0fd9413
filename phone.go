package jtac

import (
	"regexp"
	"strings"
)

var phoneChars = regexp.MustCompile(`^[0-9()+\-. ]$`)

// PhoneNumberRegions returns a new table with the built-in phone number
// regions. Region codes follow ISO 3166 ("US", "FR"); "NorthAmerica" and
// "Universal" are broader groups. The default region is "Universal".
func PhoneNumberRegions() *RegionTable {
	t := NewRegionTable("Universal")

	t.Set("NorthAmerica", RegionNode{
		Pattern:    regexp.MustCompile(`^(?:\+?1[-. ]?)?\(?[2-9]\d{2}\)?[-. ]?[2-9]\d{2}[-. ]?\d{4}$`),
		ValidChars: phoneChars,
		ToNeutral: func(value string) string {
			digits := nationalDigits(value, "1", 10)
			return "+1" + digits
		},
		ToDisplay: func(value string) string {
			digits := nationalDigits(value, "1", 10)
			if len(digits) != 10 {
				return value
			}
			return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
		},
	})
	t.Set("US", RegionNode{Alias: "NorthAmerica"})
	t.Set("CA", RegionNode{Alias: "NorthAmerica"})

	t.Set("FR", RegionNode{
		Pattern:    regexp.MustCompile(`^(?:0|\+33[ .-]?)[1-9](?:[ .-]?\d{2}){4}$`),
		ValidChars: phoneChars,
		ToNeutral: func(value string) string {
			return "+33" + nationalDigits(value, "33", 9)
		},
		ToDisplay: func(value string) string {
			digits := nationalDigits(value, "33", 9)
			if len(digits) != 9 {
				return value
			}
			national := "0" + digits
			return strings.Join([]string{national[:2], national[2:4], national[4:6], national[6:8], national[8:]}, " ")
		},
	})
	t.Set("GB", RegionNode{
		Pattern:    regexp.MustCompile(`^(?:0|\+44[ -]?)\d{2,4}[ -]?\d{3,4}[ -]?\d{3,4}$`),
		ValidChars: phoneChars,
	})
	t.Set("DE", RegionNode{
		Pattern:    regexp.MustCompile(`^(?:0|\+49[ -]?)[1-9]\d{1,4}[ /-]?\d{3,9}$`),
		ValidChars: regexp.MustCompile(`^[0-9()+\-. /]$`),
	})
	t.Set("IN", RegionNode{
		Pattern:    regexp.MustCompile(`^(?:\+91[ -]?|0)?[6-9]\d{4}[ -]?\d{5}$`),
		ValidChars: phoneChars,
	})
	t.Set("JP", RegionNode{
		Pattern:    regexp.MustCompile(`^0\d{1,4}-?\d{1,4}-?\d{4}$`),
		ValidChars: regexp.MustCompile(`^[0-9\-]$`),
	})
	t.Set("Universal", RegionNode{
		Validate:   universalPhone,
		ValidChars: phoneChars,
		ToNeutral: func(value string) string {
			return strings.Map(keepPhoneDigits, value)
		},
	})
	return t
}

// universalPhone accepts 7 to 15 digits with common punctuation and an
// optional leading '+'.
func universalPhone(value string) bool {
	digits := 0
	for i, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case strings.ContainsRune("()-. ", r):
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

func keepPhoneDigits(r rune) rune {
	if (r >= '0' && r <= '9') || r == '+' {
		return r
	}
	return -1
}

// nationalDigits strips punctuation, a '+' country code or a national
// trunk prefix, leaving the national significant number when it has size
// digits.
func nationalDigits(value, countryCode string, size int) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
	switch {
	case len(digits) == size:
		return digits
	case len(digits) == size+len(countryCode) && strings.HasPrefix(digits, countryCode):
		return digits[len(countryCode):]
	case len(digits) == size+1 && digits[0] == '0':
		return digits[1:]
	}
	return digits
}

// NewPhoneNumber creates a RegionString over PhoneNumberRegions.
func NewPhoneNumber(culture *CultureProfile, opts RegionStringOptions) (*RegionString, error) {
	return newRegionString("PhoneNumber", culture, PhoneNumberRegions(), opts)
}
