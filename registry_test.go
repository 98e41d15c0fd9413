package jtac

import (
	"errors"
	"regexp"
	"testing"
)

func TestRegistryCreatesBuiltIns(t *testing.T) {
	registry := NewRegistry()
	culture := mustCulture(t, "en-US")

	tests := []struct {
		name       string
		wantName   string
		nativeType string
	}{
		{name: TypeInteger, wantName: "Integer", nativeType: NativeInteger},
		{name: TypeFloat, wantName: "Float", nativeType: NativeFloat},
		{name: TypeCurrency, wantName: "Currency", nativeType: NativeFloat},
		{name: TypePercent, wantName: "Percent", nativeType: NativeFloat},
		{name: TypeDate, wantName: "Date", nativeType: NativeDate},
		{name: TypeTimeOfDay, wantName: "TimeOfDay", nativeType: NativeDuration},
		{name: TypeDuration, wantName: "Duration", nativeType: NativeDuration},
		{name: TypeDateTime, wantName: "DateTime", nativeType: NativeDate},
		{name: TypeMonthYear, wantName: "MonthYear", nativeType: NativeDate},
		{name: TypeDayMonth, wantName: "DayMonth", nativeType: NativeDate},
		{name: TypeString, wantName: "String", nativeType: NativeString},
		{name: TypeEmailAddress, wantName: "EmailAddress", nativeType: NativeString},
		{name: TypePhoneNumber, wantName: "PhoneNumber", nativeType: NativeString},
		{name: TypePostalCode, wantName: "PostalCode", nativeType: NativeString},
		{name: "money", wantName: "Currency", nativeType: NativeFloat},
		{name: "INT", wantName: "Integer", nativeType: NativeInteger},
		{name: "Zip", wantName: "PostalCode", nativeType: NativeString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, err := registry.Create(tt.name, culture)
			if err != nil {
				t.Fatalf("Create(%q): %v", tt.name, err)
			}
			if tm.Name() != tt.wantName {
				t.Fatalf("Name() = %q, want %q", tm.Name(), tt.wantName)
			}
			if tm.NativeTypeName() != tt.nativeType {
				t.Fatalf("NativeTypeName() = %q, want %q", tm.NativeTypeName(), tt.nativeType)
			}
			if tm.Culture() != culture {
				t.Fatalf("Culture() is not the culture passed to Create")
			}
		})
	}

	if len(registry.Names()) != 14 {
		t.Fatalf("Names() = %v", registry.Names())
	}
	if registry.Aliases()["money"] != "Currency" {
		t.Fatalf("Aliases() = %v", registry.Aliases())
	}
}

func TestRegistryFreshInstances(t *testing.T) {
	registry := NewRegistry()
	a, err := registry.Create(TypeFloat, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := registry.Create(TypeFloat, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a == b {
		t.Fatalf("Create returned a shared instance")
	}
}

func TestRegistryUnknown(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Create("Color", nil); !errors.Is(err, ErrUnknownTypeManager) {
		t.Fatalf("expected ErrUnknownTypeManager, got %v", err)
	}
	if registry.Has("Color") {
		t.Fatalf("Has(Color) = true")
	}
	if err := registry.Alias("Colour", "Color"); !errors.Is(err, ErrUnknownTypeManager) {
		t.Fatalf("expected ErrUnknownTypeManager, got %v", err)
	}
	if err := registry.Alias("Float", "Integer"); err == nil {
		t.Fatalf("an alias must not shadow a registered name")
	}
}

func TestRegistryCustomFactory(t *testing.T) {
	hex := func(c *CultureProfile) (TypeManager, error) {
		return NewPatternString(c, PatternStringOptions{Pattern: `#[0-9a-fA-F]{6}`, ValidChars: `[#0-9a-fA-F]`})
	}
	registry := NewRegistry(WithRegistryFactory("Color", hex))
	if err := registry.Alias("Colour", "Color"); err != nil {
		t.Fatalf("Alias: %v", err)
	}

	tm, err := registry.Create("colour", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := tm.ToValue("#00ff00"); err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	if _, err := tm.ToValue("green"); !IsInputError(err) {
		t.Fatalf("expected input error, got %v", err)
	}

	// registering over an alias removes the alias
	registry.Register("Colour", hex)
	if _, ok := registry.Aliases()["colour"]; ok {
		t.Fatalf("Colour still listed as an alias")
	}
}

func TestRegistryAliasesOf(t *testing.T) {
	registry := NewRegistry()
	if got := registry.AliasesOf("currency"); len(got) != 1 || got[0] != "money" {
		t.Fatalf("AliasesOf(currency) = %v", got)
	}
	if got := registry.AliasesOf(TypeDate); len(got) != 0 {
		t.Fatalf("AliasesOf(Date) = %v", got)
	}
}

func TestRegistryFactoryTakesAliasName(t *testing.T) {
	registry := NewRegistry(WithRegistryFactory("Money", func(c *CultureProfile) (TypeManager, error) {
		return NewInteger(c, DefaultNumberOptions())
	}))
	tm, err := registry.Create("money", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tm.Name() != TypeInteger {
		t.Fatalf("Create(money) = %s, want the registered factory", tm.Name())
	}
	if _, ok := registry.Aliases()["money"]; ok {
		t.Fatalf("money is still an alias")
	}
	if got := registry.AliasesOf(TypeCurrency); len(got) != 0 {
		t.Fatalf("AliasesOf(Currency) = %v", got)
	}
}

func TestRegistryRegions(t *testing.T) {
	table := NewRegionTable("Ext")
	table.Set("Ext", RegionNode{Pattern: regexp.MustCompile(`^x\d{3}$`)})

	registry := NewRegistry(WithRegistryRegions(TypePhoneNumber, table))
	tm, err := registry.Create("Phone", mustCulture(t, "en-US"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := tm.ToValue("x123"); err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	if _, err := tm.ToValue("(201) 555-0123"); !IsInputError(err) {
		t.Fatalf("expected the custom table to replace the built-in regions, got %v", err)
	}

	postal, err := registry.Create(TypePostalCode, mustCulture(t, "en-US"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := postal.ToValue("90210"); err != nil {
		t.Fatalf("postal codes keep the built-in table: %v", err)
	}
}
