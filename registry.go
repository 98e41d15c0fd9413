package jtac

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Names of the built-in type managers.
const (
	TypeInteger      = "Integer"
	TypeFloat        = "Float"
	TypeCurrency     = "Currency"
	TypePercent      = "Percent"
	TypeDate         = "Date"
	TypeTimeOfDay    = "TimeOfDay"
	TypeDuration     = "Duration"
	TypeDateTime     = "DateTime"
	TypeMonthYear    = "MonthYear"
	TypeDayMonth     = "DayMonth"
	TypeString       = "String"
	TypeEmailAddress = "EmailAddress"
	TypePhoneNumber  = "PhoneNumber"
	TypePostalCode   = "PostalCode"
)

var defaultAliases = map[string]string{
	"Int":     TypeInteger,
	"Decimal": TypeFloat,
	"Money":   TypeCurrency,
	"Time":    TypeTimeOfDay,
	"Email":   TypeEmailAddress,
	"Phone":   TypePhoneNumber,
	"Zip":     TypePostalCode,
}

// TypeManagerFactory creates a type manager for culture with its default
// options.
type TypeManagerFactory func(culture *CultureProfile) (TypeManager, error)

// Registry creates type managers by name. Names and aliases are
// case-insensitive.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]TypeManagerFactory
	names     map[string]string
	aliases   map[string]string
}

type registryConfig struct {
	regions   map[string]*RegionTable
	factories map[string]TypeManagerFactory
}

type RegistryOption func(*registryConfig)

// WithRegistryRegions replaces the region table used by the PhoneNumber or
// PostalCode factory.
func WithRegistryRegions(typeName string, table *RegionTable) RegistryOption {
	return func(c *registryConfig) {
		if typeName == "" || table == nil {
			return
		}
		if c.regions == nil {
			c.regions = make(map[string]*RegionTable)
		}
		c.regions[strings.ToLower(typeName)] = table
	}
}

// WithRegistryFactory registers or replaces a factory.
func WithRegistryFactory(name string, factory TypeManagerFactory) RegistryOption {
	return func(c *registryConfig) {
		if name == "" || factory == nil {
			return
		}
		if c.factories == nil {
			c.factories = make(map[string]TypeManagerFactory)
		}
		c.factories[name] = factory
	}
}

// NewRegistry returns a registry seeded with the built-in type managers.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	r := &Registry{
		factories: make(map[string]TypeManagerFactory),
		names:     make(map[string]string),
		aliases:   make(map[string]string),
	}
	r.registerDefaults(cfg.regions)
	for alias, name := range defaultAliases {
		if err := r.Alias(alias, name); err != nil {
			panic(err)
		}
	}
	// Custom factories go last so a name taken from a default alias wins.
	for name, factory := range cfg.factories {
		r.Register(name, factory)
	}
	return r
}

func (r *Registry) registerDefaults(regions map[string]*RegionTable) {
	r.Register(TypeInteger, func(c *CultureProfile) (TypeManager, error) {
		return NewInteger(c, DefaultNumberOptions())
	})
	r.Register(TypeFloat, func(c *CultureProfile) (TypeManager, error) {
		return NewFloat(c, DefaultFloatOptions())
	})
	r.Register(TypeCurrency, func(c *CultureProfile) (TypeManager, error) {
		return NewCurrency(c, DefaultCurrencyOptions())
	})
	r.Register(TypePercent, func(c *CultureProfile) (TypeManager, error) {
		return NewPercent(c, DefaultPercentOptions())
	})
	r.Register(TypeDate, func(c *CultureProfile) (TypeManager, error) {
		return NewDate(c, DefaultDateOptions())
	})
	r.Register(TypeTimeOfDay, func(c *CultureProfile) (TypeManager, error) {
		return NewTimeOfDay(c, DefaultTimeOptions())
	})
	r.Register(TypeDuration, func(c *CultureProfile) (TypeManager, error) {
		return NewDuration(c, DefaultDurationOptions())
	})
	r.Register(TypeDateTime, func(c *CultureProfile) (TypeManager, error) {
		return NewDateTime(c, DefaultDateTimeOptions())
	})
	r.Register(TypeMonthYear, func(c *CultureProfile) (TypeManager, error) {
		return NewMonthYear(c, DefaultDateOptions())
	})
	r.Register(TypeDayMonth, func(c *CultureProfile) (TypeManager, error) {
		return NewDayMonth(c, DefaultDateOptions())
	})
	r.Register(TypeString, func(c *CultureProfile) (TypeManager, error) {
		return NewString(c, DefaultStringOptions())
	})
	r.Register(TypeEmailAddress, func(c *CultureProfile) (TypeManager, error) {
		return NewEmailAddress(c, DefaultEmailAddressOptions())
	})

	phones := regions[strings.ToLower(TypePhoneNumber)]
	r.Register(TypePhoneNumber, func(c *CultureProfile) (TypeManager, error) {
		table := phones
		if table == nil {
			table = PhoneNumberRegions()
		}
		return newRegionString(TypePhoneNumber, c, table, RegionStringOptions{StringOptions: DefaultStringOptions()})
	})
	postal := regions[strings.ToLower(TypePostalCode)]
	r.Register(TypePostalCode, func(c *CultureProfile) (TypeManager, error) {
		table := postal
		if table == nil {
			table = PostalCodeRegions()
		}
		return newRegionString(TypePostalCode, c, table, RegionStringOptions{StringOptions: DefaultStringOptions()})
	})
}

// Register sets or replaces the factory for name.
func (r *Registry) Register(name string, factory TypeManagerFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key] = factory
	r.names[key] = strings.TrimSpace(name)
	delete(r.aliases, key)
}

// Alias makes alias another name for the registered type manager name.
func (r *Registry) Alias(alias, name string) error {
	aliasKey := strings.ToLower(strings.TrimSpace(alias))
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTypeManager, name)
	}
	if _, ok := r.factories[aliasKey]; ok || aliasKey == "" {
		return fmt.Errorf("jtac: alias %q conflicts with a registered name", alias)
	}
	r.aliases[aliasKey] = key
	return nil
}

// Has reports whether name or an alias of it is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

func (r *Registry) lookup(name string) (TypeManagerFactory, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	defer r.mu.RUnlock()
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	factory, ok := r.factories[key]
	return factory, ok
}

// Create builds a new type manager. Each call returns a fresh instance the
// caller may configure.
func (r *Registry) Create(name string, culture *CultureProfile) (TypeManager, error) {
	factory, ok := r.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTypeManager, name)
	}
	return factory(culture)
}

// Names returns the registered names without aliases, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.names))
	for _, name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AliasesOf returns the lower case aliases of name, sorted.
func (r *Registry) AliasesOf(name string) []string {
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for alias, target := range r.aliases {
		if target == key {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// Aliases returns a copy of the alias table, keyed by lower case alias.
func (r *Registry) Aliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.aliases))
	for alias, key := range r.aliases {
		out[alias] = r.names[key]
	}
	return out
}
