package jtac

import (
	"strings"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// completeCultureProfile fills currency data a culture file left out, using
// the CLDR tables of golang.org/x/text.
func completeCultureProfile(profile *CultureProfile) *CultureProfile {
	tag, err := language.Parse(profile.Name)
	if err != nil {
		return profile
	}

	unit, ok := currencyUnit(profile, tag)
	if !ok {
		return profile
	}
	if profile.CurrencyCode == "" {
		profile.CurrencyCode = unit.String()
	}
	if profile.Currency.DecimalPlaces == nil {
		scale, _ := currency.Standard.Rounding(unit)
		profile.Currency.DecimalPlaces = &scale
	}
	if profile.Currency.Symbol == "" {
		profile.Currency.Symbol = currencySymbol(tag, unit)
	}
	return profile
}

func currencyUnit(profile *CultureProfile, tag language.Tag) (currency.Unit, bool) {
	if profile.CurrencyCode != "" {
		unit, err := currency.ParseISO(profile.CurrencyCode)
		if err != nil {
			return currency.Unit{}, false
		}
		return unit, true
	}
	region, confidence := tag.Region()
	if confidence == language.No {
		return currency.Unit{}, false
	}
	return currency.FromRegion(region)
}

// currencySymbol renders a zero amount with the locale's symbol and keeps
// whatever is not part of the number.
func currencySymbol(tag language.Tag, unit currency.Unit) string {
	printer := message.NewPrinter(tag)
	formatted := printer.Sprintf("%v", currency.Symbol(unit.Amount(0)))
	symbol := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || unicode.IsSpace(r) || r == '.' || r == ',' {
			return -1
		}
		return r
	}, formatted)
	if symbol == "" {
		return unit.String()
	}
	return symbol
}
