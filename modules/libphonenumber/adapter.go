// Package libphonenumber backs PhoneNumber regions with the libphonenumber
// metadata, replacing the pattern based validators of the built-in table.
package libphonenumber

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"

	jtac "github.com/plblum/jTAC-sub003"
)

var phoneChars = regexp.MustCompile(`^[0-9()+\-. /]$`)

type options struct {
	format       phonenumbers.PhoneNumberFormat
	possibleOnly bool
	anyRegion    bool
}

// Option configures the nodes built by Node.
type Option func(*options)

// WithDisplayFormat selects the libphonenumber display format (defaults to NATIONAL).
func WithDisplayFormat(format phonenumbers.PhoneNumberFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithPossibleNumbers accepts numbers of a possible length even when
// libphonenumber cannot confirm they are assigned.
func WithPossibleNumbers() Option {
	return func(o *options) {
		o.possibleOnly = true
	}
}

// WithAnyRegion accepts valid numbers of every country, resolving national
// numbers against the node's region.
func WithAnyRegion() Option {
	return func(o *options) {
		o.anyRegion = true
	}
}

// Node returns a region node validating numbers of the ISO 3166-1 alpha-2
// region. The neutral form is E.164.
func Node(region string, opts ...Option) jtac.RegionNode {
	cfg := options{format: phonenumbers.NATIONAL}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	region = strings.ToUpper(strings.TrimSpace(region))

	parse := func(value string) (*phonenumbers.PhoneNumber, bool) {
		number, err := phonenumbers.Parse(strings.TrimSpace(value), region)
		if err != nil {
			return nil, false
		}
		return number, true
	}

	return jtac.RegionNode{
		ValidChars: phoneChars,
		Validate: func(value string) bool {
			number, ok := parse(value)
			if !ok {
				return false
			}
			if cfg.possibleOnly {
				return phonenumbers.IsPossibleNumber(number)
			}
			if cfg.anyRegion {
				return phonenumbers.IsValidNumber(number)
			}
			return phonenumbers.IsValidNumberForRegion(number, region)
		},
		ToNeutral: func(value string) string {
			number, ok := parse(value)
			if !ok {
				return value
			}
			return phonenumbers.Format(number, phonenumbers.E164)
		},
		ToDisplay: func(value string) string {
			number, ok := parse(value)
			if !ok {
				return value
			}
			format := cfg.format
			if cfg.anyRegion && phonenumbers.GetRegionCodeForNumber(number) != region {
				format = phonenumbers.INTERNATIONAL
			}
			if formatted := phonenumbers.Format(number, format); formatted != "" {
				return formatted
			}
			return value
		},
	}
}

// Register replaces the nodes of table named by the region codes with
// libphonenumber backed nodes.
func Register(table *jtac.RegionTable, regions []string, opts ...Option) {
	if table == nil {
		return
	}
	for _, region := range regions {
		trimmed := strings.TrimSpace(region)
		if trimmed == "" {
			continue
		}
		table.Set(strings.ToUpper(trimmed), Node(trimmed, opts...))
	}
}

// RegisterCulture registers the region of culture, returning the region code
// or "" when the culture names no region.
func RegisterCulture(table *jtac.RegionTable, culture *jtac.CultureProfile, opts ...Option) string {
	if culture == nil {
		return ""
	}
	region := regionFromLocale(culture.Name)
	if region == "" {
		return ""
	}
	Register(table, []string{region}, opts...)
	return region
}

// Regions returns PhoneNumberRegions with every listed region backed by
// libphonenumber.
func Regions(regions []string, opts ...Option) *jtac.RegionTable {
	table := jtac.PhoneNumberRegions()
	Register(table, regions, opts...)
	return table
}

func regionFromLocale(locale string) string {
	if locale == "" {
		return ""
	}

	cleaned := strings.ReplaceAll(locale, "_", "-")
	tag, err := language.Parse(cleaned)
	if err != nil {
		return ""
	}

	region, confidence := tag.Region()
	if confidence != language.Exact {
		return ""
	}

	return strings.ToUpper(region.String())
}
