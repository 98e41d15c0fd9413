package jtac

const (
	emailPattern         = `[A-Za-z0-9._%+'-]+@[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)*\.[A-Za-z]{2,}`
	emailPatternNoTLD    = `[A-Za-z0-9._%+'-]+@[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)*`
	emailValidCharacters = `[A-Za-z0-9._%+'@-]`
)

// EmailAddressOptions configure NewEmailAddress.
type EmailAddressOptions struct {
	StringOptions
	// RequireTLD rejects addresses without a top level domain, such as
	// "admin@localhost".
	RequireTLD bool
	// Multiple accepts a list separated by ";" or ",".
	Multiple bool
}

// DefaultEmailAddressOptions returns the options used when none are given.
func DefaultEmailAddressOptions() EmailAddressOptions {
	return EmailAddressOptions{
		StringOptions: DefaultStringOptions(),
		RequireTLD:    true,
	}
}

// NewEmailAddress creates a PatternString that accepts email addresses.
func NewEmailAddress(culture *CultureProfile, opts EmailAddressOptions) (*PatternString, error) {
	return newPatternString("EmailAddress", culture, emailPatternOptions(opts))
}

func emailPatternOptions(opts EmailAddressOptions) PatternStringOptions {
	pattern := emailPattern
	if !opts.RequireTLD {
		pattern = emailPatternNoTLD
	}
	return PatternStringOptions{
		StringOptions:  opts.StringOptions,
		Pattern:        pattern,
		ValidChars:     emailValidCharacters,
		Multiple:       opts.Multiple,
		InvalidMessage: "invalid email address",
	}
}
