package jtac

import (
	"errors"
	"strings"
	"testing"
)

func TestStringToValue(t *testing.T) {
	m, err := NewString(nil, StringOptions{Trim: true, MaxLength: 5})
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}

	got, err := m.ToValue("  abc ")
	if err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	if got != "abc" {
		t.Fatalf("ToValue trimmed = %q, want %q", got, "abc")
	}

	if _, err := m.ToValue("abcdef"); !IsInputError(err) {
		t.Fatalf("expected input error for long text, got %v", err)
	}

	// five runes, more than five bytes
	if _, err := m.ToValue("ééééé"); err != nil {
		t.Fatalf("MaxLength counts characters: %v", err)
	}

	got, err = m.ToValue("   ")
	if err != nil || got != "" {
		t.Fatalf("blank text = %q, %v", got, err)
	}
}

func TestStringWithoutTrim(t *testing.T) {
	m, err := NewString(nil, StringOptions{})
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	got, err := m.ToValue(" a ")
	if err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	if got != " a " {
		t.Fatalf("ToValue = %q, want untrimmed", got)
	}
	if !m.IsValidChar('~') {
		t.Fatalf("String accepts every character")
	}
}

func TestStringCompare(t *testing.T) {
	m, err := NewString(nil, DefaultStringOptions())
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}

	if got, _ := m.Compare("ABC", "abc"); got == 0 {
		t.Fatalf("case sensitive compare treated ABC and abc as equal")
	}
	if got, _ := m.Compare("apple", "banana"); got != -1 {
		t.Fatalf("Compare(apple, banana) = %d, want -1", got)
	}

	if err := m.SetOptions(StringOptions{CaseInsensitive: true}); err != nil {
		t.Fatalf("SetOptions: %v", err)
	}
	if got, err := m.Compare("ABC", "abc"); err != nil || got != 0 {
		t.Fatalf("case insensitive Compare = %d, %v", got, err)
	}
	if got, _ := m.Compare("Émile", "éMILE"); got != 0 {
		t.Fatalf("case folding should equate Émile and éMILE, got %d", got)
	}

	if _, err := m.Compare("", "abc"); !errors.Is(err, ErrNullValue) {
		t.Fatalf("expected ErrNullValue, got %v", err)
	}
}

func TestStringOptionsValidation(t *testing.T) {
	if _, err := NewString(nil, StringOptions{MaxLength: -1}); !IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	m, err := NewString(nil, DefaultStringOptions())
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	if _, err := m.ToString(42); !IsConfigurationError(err) {
		t.Fatalf("expected configuration error for int value, got %v", err)
	}
	if got, err := m.ToString("x"); err != nil || got != "x" {
		t.Fatalf("ToString = %q, %v", got, err)
	}
}

func TestPatternString(t *testing.T) {
	m, err := NewPatternString(nil, PatternStringOptions{
		StringOptions: DefaultStringOptions(),
		Pattern:       `\d{3}`,
		ValidChars:    `\d`,
	})
	if err != nil {
		t.Fatalf("NewPatternString: %v", err)
	}

	tests := []struct {
		text    string
		wantErr bool
	}{
		{text: "123"},
		{text: " 456 "},
		{text: "12", wantErr: true},
		{text: "1234", wantErr: true},
		{text: "12a", wantErr: true},
		{text: "123;456", wantErr: true},
	}
	for _, tt := range tests {
		_, err := m.ToValue(tt.text)
		if tt.wantErr && !IsInputError(err) {
			t.Errorf("ToValue(%q) error = %v, want input error", tt.text, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("ToValue(%q): %v", tt.text, err)
		}
	}

	if !m.IsValidChar('7') || m.IsValidChar('a') || m.IsValidChar(';') {
		t.Fatalf("IsValidChar does not follow ValidChars")
	}
}

func TestPatternStringMultiple(t *testing.T) {
	m, err := NewPatternString(nil, PatternStringOptions{
		StringOptions: DefaultStringOptions(),
		Pattern:       `^\d{3}$`,
		ValidChars:    `\d`,
		Multiple:      true,
	})
	if err != nil {
		t.Fatalf("NewPatternString: %v", err)
	}

	for _, text := range []string{"123", "123;456", "123 , 456,", "123; 456; 789"} {
		if _, err := m.ToValue(text); err != nil {
			t.Errorf("ToValue(%q): %v", text, err)
		}
	}

	_, err = m.ToValue("123;45")
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InputError, got %v", err)
	}
	if !strings.Contains(inputErr.Reason, `"45"`) {
		t.Fatalf("reason %q should name the bad item", inputErr.Reason)
	}
	if inputErr.Text != "123;45" {
		t.Fatalf("error text = %q", inputErr.Text)
	}

	for _, ch := range []rune{';', ',', ' '} {
		if !m.IsValidChar(ch) {
			t.Errorf("IsValidChar(%q) = false for a list", ch)
		}
	}
}

func TestPatternStringCustomDelimiter(t *testing.T) {
	m, err := NewPatternString(nil, PatternStringOptions{
		Pattern:        `[a-z]+`,
		Multiple:       true,
		Delimiter:      `\|`,
		InvalidMessage: "letters only",
	})
	if err != nil {
		t.Fatalf("NewPatternString: %v", err)
	}
	if _, err := m.ToValue("ab|cd"); err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	_, err = m.ToValue("ab,cd")
	var inputErr *InputError
	if !errors.As(err, &inputErr) || !strings.HasPrefix(inputErr.Reason, "letters only") {
		t.Fatalf("expected custom message, got %v", err)
	}
}

func TestPatternStringOptionsValidation(t *testing.T) {
	tests := []struct {
		name  string
		opts  PatternStringOptions
		field string
	}{
		{name: "empty_pattern", opts: PatternStringOptions{}, field: "Pattern"},
		{name: "bad_pattern", opts: PatternStringOptions{Pattern: "("}, field: "Pattern"},
		{name: "bad_valid_chars", opts: PatternStringOptions{Pattern: "a", ValidChars: "["}, field: "ValidChars"},
		{name: "bad_delimiter", opts: PatternStringOptions{Pattern: "a", Delimiter: "("}, field: "Delimiter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPatternString(nil, tt.opts)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Fatalf("field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}

	m, err := NewPatternString(nil, PatternStringOptions{Pattern: "a"})
	if err != nil {
		t.Fatalf("NewPatternString: %v", err)
	}
	if err := m.SetOptions(PatternStringOptions{Pattern: "("}); err == nil {
		t.Fatalf("expected error for bad pattern")
	}
	if m.Options().Pattern != "a" {
		t.Fatalf("failed SetOptions replaced the pattern")
	}
}

func TestAnchor(t *testing.T) {
	tests := map[string]string{
		`\d+`:   `^(?:\d+)$`,
		`^\d+$`: `^\d+$`,
		`^\d+`:  `^(?:\d+)$`,
		`a|b`:   `^(?:a|b)$`,
	}
	for in, want := range tests {
		if got := anchor(in); got != want {
			t.Errorf("anchor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEmailAddress(t *testing.T) {
	m, err := NewEmailAddress(nil, DefaultEmailAddressOptions())
	if err != nil {
		t.Fatalf("NewEmailAddress: %v", err)
	}
	if m.Name() != TypeEmailAddress {
		t.Fatalf("Name() = %q", m.Name())
	}

	valid := []string{"john.doe@example.com", "o'neil+tag@mail.example.co.uk", " a@b.io "}
	for _, text := range valid {
		if _, err := m.ToValue(text); err != nil {
			t.Errorf("ToValue(%q): %v", text, err)
		}
	}
	invalid := []string{"admin@localhost", "no-at-sign.com", "a@-bad.com", "a@b.c", "a b@c.com"}
	for _, text := range invalid {
		if _, err := m.ToValue(text); !IsInputError(err) {
			t.Errorf("ToValue(%q) error = %v, want input error", text, err)
		}
	}

	if !m.IsValidChar('@') || !m.IsValidChar('+') || m.IsValidChar(' ') {
		t.Fatalf("unexpected IsValidChar result")
	}
}

func TestEmailAddressOptions(t *testing.T) {
	opts := DefaultEmailAddressOptions()
	opts.RequireTLD = false
	m, err := NewEmailAddress(nil, opts)
	if err != nil {
		t.Fatalf("NewEmailAddress: %v", err)
	}
	if _, err := m.ToValue("admin@localhost"); err != nil {
		t.Fatalf("ToValue without TLD: %v", err)
	}

	opts = DefaultEmailAddressOptions()
	opts.Multiple = true
	m, err = NewEmailAddress(nil, opts)
	if err != nil {
		t.Fatalf("NewEmailAddress: %v", err)
	}
	if _, err := m.ToValue("a@example.com; b@example.org, c@example.net"); err != nil {
		t.Fatalf("ToValue list: %v", err)
	}
	if _, err := m.ToValue("a@example.com; nope"); !IsInputError(err) {
		t.Fatalf("expected input error for bad list item, got %v", err)
	}
	if !m.IsValidChar(';') {
		t.Fatalf("a list accepts the delimiter")
	}
}
