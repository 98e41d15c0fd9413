package jtac

import (
	"regexp"
	"strings"
)

// PostalCodeRegions returns a new table with the built-in postal code
// regions keyed by ISO 3166 code. "NorthAmerica" covers US and CA. The
// default region is "US".
func PostalCodeRegions() *RegionTable {
	t := NewRegionTable("US")
	digitsOnly := regexp.MustCompile(`^[0-9]$`)

	t.Set("US", RegionNode{
		Pattern:    regexp.MustCompile(`^\d{5}(?:-\d{4})?$`),
		ValidChars: regexp.MustCompile(`^[0-9-]$`),
	})
	t.Set("CA", RegionNode{
		Pattern:    regexp.MustCompile(`^[ABCEGHJ-NPRSTVXY]\d[ABCEGHJ-NPRSTV-Z] \d[ABCEGHJ-NPRSTV-Z]\d$`),
		ValidChars: regexp.MustCompile(`^[0-9A-Za-z ]$`),
		ToNeutral: func(value string) string {
			return strings.ReplaceAll(value, " ", "")
		},
		ToDisplay: func(value string) string {
			compact := strings.ToUpper(strings.ReplaceAll(value, " ", ""))
			if len(compact) != 6 {
				return value
			}
			return compact[:3] + " " + compact[3:]
		},
	})
	t.Set("NorthAmerica", RegionNode{Alias: "US|CA"})
	t.Set("GB", RegionNode{
		Pattern:    regexp.MustCompile(`^(?:GIR 0AA|[A-PR-UWYZ](?:\d{1,2}|[A-HK-Y]\d[0-9ABEHMNPRV-Y]?|\d[A-HJKPS-UW]) \d[ABD-HJLNP-UW-Z]{2})$`),
		ValidChars: regexp.MustCompile(`^[0-9A-Za-z ]$`),
		ToDisplay: func(value string) string {
			compact := strings.ToUpper(strings.ReplaceAll(value, " ", ""))
			if len(compact) < 5 {
				return value
			}
			return compact[:len(compact)-3] + " " + compact[len(compact)-3:]
		},
	})
	for _, code := range []string{"FR", "DE", "ES"} {
		t.Set(code, RegionNode{
			Pattern:    regexp.MustCompile(`^\d{5}$`),
			ValidChars: digitsOnly,
		})
	}
	t.Set("IN", RegionNode{
		Pattern:    regexp.MustCompile(`^[1-9]\d{5}$`),
		ValidChars: digitsOnly,
		ToDisplay: func(value string) string {
			return strings.ReplaceAll(value, " ", "")
		},
	})
	t.Set("JP", RegionNode{
		Pattern:    regexp.MustCompile(`^\d{3}-\d{4}$`),
		ValidChars: regexp.MustCompile(`^[0-9-]$`),
		ToDisplay: func(value string) string {
			if len(value) == 7 && isDigits(value) {
				return value[:3] + "-" + value[3:]
			}
			return value
		},
	})
	return t
}

// NewPostalCode creates a RegionString over PostalCodeRegions.
func NewPostalCode(culture *CultureProfile, opts RegionStringOptions) (*RegionString, error) {
	return newRegionString("PostalCode", culture, PostalCodeRegions(), opts)
}
