package jtac

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

func TestRegionTableResolve(t *testing.T) {
	table := PhoneNumberRegions()

	tests := []struct {
		regions string
		want    int
		wantErr error
	}{
		{regions: "US", want: 1},
		{regions: "us", want: 1},
		{regions: "US|CA", want: 1},
		{regions: "US|FR", want: 2},
		{regions: " FR | GB ", want: 2},
		{regions: "", want: 1},
		{regions: "Mars", wantErr: ErrUnknownRegion},
		{regions: "US|Mars", wantErr: ErrUnknownRegion},
		{regions: "|", wantErr: ErrUnknownRegion},
	}
	for _, tt := range tests {
		nodes, err := table.Resolve(tt.regions)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve(%q) error = %v, want %v", tt.regions, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Resolve(%q): %v", tt.regions, err)
			continue
		}
		if len(nodes) != tt.want {
			t.Errorf("Resolve(%q) returned %d nodes, want %d", tt.regions, len(nodes), tt.want)
		}
	}
}

func TestRegionTableAliasCycle(t *testing.T) {
	table := NewRegionTable("A")
	table.Set("A", RegionNode{Alias: "B"})
	table.Set("B", RegionNode{Alias: "C|A"})
	table.Set("C", RegionNode{Pattern: regexp.MustCompile(`^c$`)})

	_, err := table.Resolve("A")
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}

	table.Set("D", RegionNode{Alias: "C|C"})
	nodes, err := table.Resolve("D|C")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("duplicate regions should collapse, got %d nodes", len(nodes))
	}
}

func TestRegionTableNames(t *testing.T) {
	table := NewRegionTable("x")
	table.Set("beta", RegionNode{})
	table.Set("Alpha", RegionNode{})
	table.Set("  ", RegionNode{})

	names := table.Names()
	if strings.Join(names, ",") != "Alpha,beta" {
		t.Fatalf("Names() = %v", names)
	}
	if !table.Has("ALPHA") {
		t.Fatalf("lookups are case-insensitive")
	}
	table.SetDefaultRegion("beta")
	if table.DefaultRegion() != "beta" {
		t.Fatalf("DefaultRegion() = %q", table.DefaultRegion())
	}
}

func TestPhoneNumberNorthAmerica(t *testing.T) {
	m, err := NewPhoneNumber(mustCulture(t, "en-US"), RegionStringOptions{StringOptions: DefaultStringOptions()})
	if err != nil {
		t.Fatalf("NewPhoneNumber: %v", err)
	}
	if m.Region() != "US" {
		t.Fatalf("Region() = %q, want the culture region", m.Region())
	}

	for _, text := range []string{"201.555.0123", "(201) 555-0123", "+1 201 555 0123", "2015550123", "1-201-555-0123"} {
		got, err := m.ToValue(text)
		if err != nil {
			t.Errorf("ToValue(%q): %v", text, err)
			continue
		}
		if got != "(201) 555-0123" {
			t.Errorf("ToValue(%q) = %q, want display form", text, got)
		}
	}

	neutral, err := m.ToStringNeutral("(201) 555-0123")
	if err != nil || neutral != "+12015550123" {
		t.Fatalf("ToStringNeutral = %q, %v", neutral, err)
	}
	back, err := m.ToValueNeutral(neutral)
	if err != nil || back != "(201) 555-0123" {
		t.Fatalf("ToValueNeutral(%q) = %q, %v", neutral, back, err)
	}

	_, err = m.ToValue("123-4567")
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InputError, got %v", err)
	}
	if !strings.Contains(inputErr.Reason, "US") {
		t.Fatalf("reason %q should name the region", inputErr.Reason)
	}

	assertValidChars(t, m, "(201) 555-0123")
	if m.IsValidChar('x') {
		t.Fatalf("letters are not valid phone characters")
	}
}

func TestPhoneNumberFrance(t *testing.T) {
	m, err := NewPhoneNumber(mustCulture(t, "fr-FR"), RegionStringOptions{StringOptions: DefaultStringOptions()})
	if err != nil {
		t.Fatalf("NewPhoneNumber: %v", err)
	}
	got, err := m.ToValue("01.23.45.67.89")
	if err != nil || got != "01 23 45 67 89" {
		t.Fatalf("ToValue = %q, %v", got, err)
	}
	neutral, err := m.ToStringNeutral(got)
	if err != nil || neutral != "+33123456789" {
		t.Fatalf("ToStringNeutral = %q, %v", neutral, err)
	}
	got, err = m.ToValue("+33 1 23 45 67 89")
	if err != nil || got != "01 23 45 67 89" {
		t.Fatalf("international ToValue = %q, %v", got, err)
	}
}

func TestPhoneNumberRegionChanges(t *testing.T) {
	m, err := NewPhoneNumber(mustCulture(t, "en-US"), RegionStringOptions{StringOptions: DefaultStringOptions()})
	if err != nil {
		t.Fatalf("NewPhoneNumber: %v", err)
	}

	if err := m.SetRegion("Universal"); err != nil {
		t.Fatalf("SetRegion: %v", err)
	}
	got, err := m.ToValue("+44 20 7946 0958")
	if err != nil || got != "+44 20 7946 0958" {
		t.Fatalf("Universal ToValue = %q, %v", got, err)
	}
	neutral, err := m.ToStringNeutral(got)
	if err != nil || neutral != "+442079460958" {
		t.Fatalf("Universal ToStringNeutral = %q, %v", neutral, err)
	}

	err = m.SetRegion("Mars")
	if !IsConfigurationError(err) || !errors.Is(err, ErrUnknownRegion) {
		t.Fatalf("expected configuration error wrapping ErrUnknownRegion, got %v", err)
	}
	if m.Region() != "Universal" {
		t.Fatalf("failed SetRegion changed the region to %q", m.Region())
	}

	if err := m.SetRegion(""); err != nil {
		t.Fatalf("SetRegion: %v", err)
	}
	if err := m.SetCulture(mustCulture(t, "fr-FR")); err != nil {
		t.Fatalf("SetCulture: %v", err)
	}
	if m.Region() != "FR" {
		t.Fatalf("Region() after SetCulture = %q, want FR", m.Region())
	}
}

func TestPostalCode(t *testing.T) {
	tests := []struct {
		region  string
		text    string
		want    string
		neutral string
		wantErr bool
	}{
		{region: "US", text: "90210", want: "90210", neutral: "90210"},
		{region: "US", text: "12345-6789", want: "12345-6789", neutral: "12345-6789"},
		{region: "US", text: "1234", wantErr: true},
		{region: "CA", text: "k1a0b1", want: "K1A 0B1", neutral: "K1A0B1"},
		{region: "CA", text: "K1A 0B1", want: "K1A 0B1", neutral: "K1A0B1"},
		{region: "CA", text: "D1A 0B1", wantErr: true},
		{region: "NorthAmerica", text: "90210", want: "90210", neutral: "90210"},
		{region: "NorthAmerica", text: "k1a 0b1", want: "K1A 0B1", neutral: "K1A0B1"},
		{region: "GB", text: "sw1a1aa", want: "SW1A 1AA", neutral: "SW1A 1AA"},
		{region: "DE", text: "10115", want: "10115", neutral: "10115"},
		{region: "JP", text: "1000001", want: "100-0001", neutral: "100-0001"},
		{region: "IN", text: "110 001", want: "110001", neutral: "110001"},
	}

	for _, tt := range tests {
		t.Run(tt.region+"/"+tt.text, func(t *testing.T) {
			m, err := NewPostalCode(nil, RegionStringOptions{StringOptions: DefaultStringOptions(), Region: tt.region})
			if err != nil {
				t.Fatalf("NewPostalCode: %v", err)
			}
			got, err := m.ToValue(tt.text)
			if tt.wantErr {
				if !IsInputError(err) {
					t.Fatalf("ToValue(%q) error = %v, want input error", tt.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToValue(%q): %v", tt.text, err)
			}
			if got != tt.want {
				t.Fatalf("ToValue(%q) = %q, want %q", tt.text, got, tt.want)
			}
			neutral, err := m.ToStringNeutral(got)
			if err != nil || neutral != tt.neutral {
				t.Fatalf("ToStringNeutral(%q) = %q, %v", got, neutral, err)
			}
		})
	}
}

func TestPostalCodeCultureRegion(t *testing.T) {
	m, err := NewPostalCode(mustCulture(t, "de-DE"), RegionStringOptions{StringOptions: DefaultStringOptions()})
	if err != nil {
		t.Fatalf("NewPostalCode: %v", err)
	}
	if m.Region() != "DE" {
		t.Fatalf("Region() = %q, want DE", m.Region())
	}
	if m.IsValidChar('A') || !m.IsValidChar('4') {
		t.Fatalf("DE postal codes accept digits only")
	}
}

func TestRegionStringCustomTable(t *testing.T) {
	table := NewRegionTable("Code")
	table.Set("Code", RegionNode{
		Validate:  func(value string) bool { return strings.HasPrefix(value, "X-") },
		ToDisplay: strings.ToUpper,
		ToNeutral: func(value string) string { return strings.TrimPrefix(value, "X-") },
	})

	m, err := NewRegionString(nil, table, RegionStringOptions{InvalidMessage: "needs the X- prefix"})
	if err != nil {
		t.Fatalf("NewRegionString: %v", err)
	}
	got, err := m.ToValue("x-42")
	if err != nil || got != "X-42" {
		t.Fatalf("ToValue = %q, %v", got, err)
	}
	neutral, err := m.ToStringNeutral(got)
	if err != nil || neutral != "42" {
		t.Fatalf("ToStringNeutral = %q, %v", neutral, err)
	}

	_, err = m.ToValue("42")
	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Reason != "needs the X- prefix" {
		t.Fatalf("expected custom message, got %v", err)
	}
	if !m.IsValidChar('%') {
		t.Fatalf("a region without ValidChars accepts every character")
	}

	if _, err := NewRegionString(nil, nil, RegionStringOptions{}); !IsConfigurationError(err) {
		t.Fatalf("expected configuration error for nil table, got %v", err)
	}
}
