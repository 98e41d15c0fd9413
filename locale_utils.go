package jtac

import (
	"strings"

	"golang.org/x/text/language"
)

func localeParentTag(locale string) string {
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(locale)
	if err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		value := parent.String()
		if value == "" || value == "und" {
			return ""
		}
		return value
	}

	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}

	return ""
}

// localeParentChain lists the parents of locale from closest to root,
// e.g. "es-MX" -> ["es-419", "es"].
func localeParentChain(locale string) []string {
	if locale == "" {
		return nil
	}

	var chain []string
	seen := make(map[string]struct{}, 4)

	for current := localeParentTag(locale); current != ""; current = localeParentTag(current) {
		if _, exists := seen[current]; exists {
			break
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
	}

	return chain
}

// likelyLocale expands a bare language to its most likely language-region
// form ("fr" -> "fr-FR"); it returns "" when x/text has no guess.
func likelyLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	region, confidence := tag.Region()
	if confidence == language.No || region.String() == "ZZ" {
		return ""
	}
	return base.String() + "-" + region.String()
}

// normalizeLocale replaces underscores with hyphens and trims whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// normalizeLocaleKey is normalizeLocale folded to lower case, used for map keys.
func normalizeLocaleKey(locale string) string {
	return strings.ToLower(normalizeLocale(locale))
}
