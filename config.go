package jtac

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Config captures culture data and type manager setup
type Config struct {
	DefaultCulture string
	Cultures       []string
	Resolver       FallbackResolver
	Logger         *slog.Logger

	cultureDataPath  string
	cultureOverrides map[string]string
	cultureData      *CultureData
	cultureRegistry  *CultureRegistry

	registryOptions []RegistryOption
	registry        *Registry

	mu sync.Mutex
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options. Culture data is loaded
// eagerly so a bad data file or an unknown culture fails here.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	cfg.Cultures = normalizeCultures(cfg.Cultures)
	if cfg.DefaultCulture == "" && len(cfg.Cultures) > 0 {
		cfg.DefaultCulture = cfg.Cultures[0]
	}
	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	registry, err := cfg.CultureRegistry()
	if err != nil {
		return nil, err
	}
	for _, culture := range cfg.Cultures {
		if !registry.Has(culture) {
			return nil, fmt.Errorf("%w: %q has no culture data", ErrUnknownCulture, culture)
		}
	}

	return cfg, nil
}

// WithDefaultCulture selects the culture used when none is named.
func WithDefaultCulture(culture string) Option {
	return func(c *Config) error {
		c.DefaultCulture = normalizeLocale(culture)
		c.cultureRegistry = nil
		return nil
	}
}

// WithCultures lists cultures that must be present in the loaded data.
func WithCultures(cultures ...string) Option {
	return func(c *Config) error {
		c.Cultures = append(c.Cultures, cultures...)
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		c.cultureRegistry = nil
		return nil
	}
}

// WithFallback sets an explicit fallback chain for culture.
func WithFallback(culture string, fallbacks ...string) Option {
	return func(c *Config) error {
		if c.Resolver == nil {
			c.Resolver = NewStaticFallbackResolver()
		}

		static, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			return fmt.Errorf("WithFallback requires StaticFallbackResolver, got %T", c.Resolver)
		}
		static.Set(culture, fallbacks...)
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		c.cultureRegistry = nil
		return nil
	}
}

// WithCultureData layers a JSON or YAML culture file over the built-in data
func WithCultureData(path string) Option {
	return func(c *Config) error {
		c.cultureDataPath = path
		c.cultureRegistry = nil // Invalidate cached registry
		c.cultureData = nil
		return nil
	}
}

// WithCultureOverride adds a single-culture data file for culture
func WithCultureOverride(culture, path string) Option {
	return func(c *Config) error {
		if c.cultureOverrides == nil {
			c.cultureOverrides = make(map[string]string)
		}
		c.cultureOverrides[culture] = path
		c.cultureRegistry = nil // Invalidate cached registry
		c.cultureData = nil
		return nil
	}
}

// WithTypeManagerFactory registers or replaces a named type manager.
func WithTypeManagerFactory(name string, factory TypeManagerFactory) Option {
	return func(c *Config) error {
		if strings.TrimSpace(name) == "" || factory == nil {
			return fmt.Errorf("%w: type manager factory needs a name and a function", ErrConfiguration)
		}
		c.registryOptions = append(c.registryOptions, WithRegistryFactory(name, factory))
		c.registry = nil
		return nil
	}
}

// WithRegions replaces the region table of the PhoneNumber or PostalCode
// type manager.
func WithRegions(typeName string, table *RegionTable) Option {
	return func(c *Config) error {
		if table == nil {
			return fmt.Errorf("%w: nil region table for %s", ErrConfiguration, typeName)
		}
		c.registryOptions = append(c.registryOptions, WithRegistryRegions(typeName, table))
		c.registry = nil
		return nil
	}
}

// CultureRegistry returns the registry over the configured culture data,
// building it on first use.
func (cfg *Config) CultureRegistry() (*CultureRegistry, error) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	if err := cfg.ensureCultureRegistry(); err != nil {
		return nil, err
	}
	return cfg.cultureRegistry, nil
}

// Culture resolves a culture name through the configured registry. An empty
// name selects the default culture.
func (cfg *Config) Culture(name string) (*CultureProfile, error) {
	registry, err := cfg.CultureRegistry()
	if err != nil {
		return nil, err
	}
	return registry.Culture(name)
}

// Registry returns the type manager registry.
func (cfg *Config) Registry() *Registry {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	if cfg.registry == nil {
		cfg.registry = NewRegistry(cfg.registryOptions...)
	}
	return cfg.registry
}

// TypeManager creates the type manager called name for culture.
func (cfg *Config) TypeManager(name, culture string) (TypeManager, error) {
	profile, err := cfg.Culture(culture)
	if err != nil {
		return nil, err
	}
	manager, err := cfg.Registry().Create(name, profile)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("type manager created",
		slog.String("type", manager.Name()),
		slog.String("culture", profile.Name))
	return manager, nil
}

func (cfg *Config) ensureCultureRegistry() error {
	if cfg.cultureRegistry != nil {
		return nil
	}

	data, err := cfg.loadCultureData()
	if err != nil {
		return err
	}

	opts := []CultureRegistryOption{
		WithCultureRegistryResolver(cfg.Resolver),
		WithCultureRegistryLogger(cfg.Logger),
	}
	if cfg.DefaultCulture != "" {
		opts = append(opts, WithCultureRegistryDefault(cfg.DefaultCulture))
	}
	registry, err := NewCultureRegistry(data, opts...)
	if err != nil {
		return err
	}
	cfg.cultureRegistry = registry
	return nil
}

func (cfg *Config) loadCultureData() (*CultureData, error) {
	if cfg.cultureData != nil {
		return cfg.cultureData, nil
	}

	loader := NewCultureDataLoader(cfg.cultureDataPath)
	for culture, path := range cfg.cultureOverrides {
		loader.AddOverride(culture, path)
	}
	data, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if cfg.cultureDataPath != "" || len(cfg.cultureOverrides) > 0 {
		cfg.Logger.Debug("culture data merged",
			slog.String("path", cfg.cultureDataPath),
			slog.Int("overrides", len(cfg.cultureOverrides)),
			slog.Int("cultures", len(data.Cultures)))
	}
	cfg.cultureData = data
	return data, nil
}

func normalizeCultures(cultures []string) []string {
	if len(cultures) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(cultures))
	out := make([]string, 0, len(cultures))
	for _, culture := range cultures {
		normalized := normalizeLocale(culture)
		key := normalizeLocaleKey(normalized)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
