package jtac

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/text/language"
)

// CultureRegistry is the CultureProvider backed by loaded CultureData.
// Profiles are completed with x/text currency data on registration and are
// read only afterwards.
type CultureRegistry struct {
	mu             sync.RWMutex
	profiles       map[string]*CultureProfile
	defaultCulture string
	resolver       FallbackResolver
	logger         *slog.Logger
}

var _ CultureProvider = (*CultureRegistry)(nil)

type cultureRegistryConfig struct {
	resolver       FallbackResolver
	logger         *slog.Logger
	defaultCulture string
}

type CultureRegistryOption func(*cultureRegistryConfig)

func WithCultureRegistryResolver(resolver FallbackResolver) CultureRegistryOption {
	return func(c *cultureRegistryConfig) {
		c.resolver = resolver
	}
}

func WithCultureRegistryLogger(logger *slog.Logger) CultureRegistryOption {
	return func(c *cultureRegistryConfig) {
		c.logger = logger
	}
}

func WithCultureRegistryDefault(culture string) CultureRegistryOption {
	return func(c *cultureRegistryConfig) {
		c.defaultCulture = normalizeLocale(culture)
	}
}

// NewCultureRegistry builds a registry holding every profile of data. A nil
// data loads the built-in cultures.
func NewCultureRegistry(data *CultureData, opts ...CultureRegistryOption) (*CultureRegistry, error) {
	cfg := cultureRegistryConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if data == nil {
		loaded, err := NewCultureDataLoader("").Load()
		if err != nil {
			return nil, err
		}
		data = loaded
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := &CultureRegistry{
		profiles: make(map[string]*CultureProfile, len(data.Cultures)),
		resolver: cfg.resolver,
		logger:   logger,
	}
	for _, name := range data.Names() {
		r.Register(data.Cultures[name])
	}

	r.defaultCulture = cfg.defaultCulture
	if r.defaultCulture == "" {
		r.defaultCulture = data.DefaultCulture
	}
	if r.defaultCulture != "" && !r.Has(r.defaultCulture) {
		return nil, fmt.Errorf("%w: default culture %q is not defined", ErrUnknownCulture, r.defaultCulture)
	}
	return r, nil
}

// DefaultCultureRegistry returns a registry over the built-in cultures.
func DefaultCultureRegistry() *CultureRegistry {
	defaultRegistryOnce.Do(func() {
		registry, err := NewCultureRegistry(nil)
		if err != nil {
			panic(fmt.Sprintf("jtac: built-in culture data: %v", err))
		}
		defaultRegistry = registry
	})
	return defaultRegistry
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *CultureRegistry
)

// Register adds or replaces a profile.
func (r *CultureRegistry) Register(profile *CultureProfile) {
	if profile == nil || profile.Name == "" {
		return
	}
	completed := completeCultureProfile(profile.Clone())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[normalizeLocaleKey(profile.Name)] = completed
}

// Has reports whether a profile is registered under exactly this name.
func (r *CultureRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.profiles[normalizeLocaleKey(name)]
	return ok
}

// Names lists registered culture names, sorted.
func (r *CultureRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.profiles))
	for _, profile := range r.profiles {
		names = append(names, profile.Name)
	}
	sort.Strings(names)
	return names
}

// DefaultCulture returns the culture used when a name cannot be resolved.
func (r *CultureRegistry) DefaultCulture() string {
	return r.defaultCulture
}

// Culture resolves name to a profile. It tries the exact name, configured
// fallbacks, the x/text parent chain, the most likely region for the base
// language and finally the default culture. An empty name selects the
// default culture; "neutral" selects NeutralCulture.
func (r *CultureRegistry) Culture(name string) (*CultureProfile, error) {
	name = normalizeLocale(name)
	if name == "" {
		name = r.defaultCulture
	}
	if normalizeLocaleKey(name) == neutralCulture.Name {
		return neutralCulture, nil
	}

	for _, candidate := range r.candidates(name) {
		if profile, ok := r.lookup(candidate); ok {
			if candidate != name {
				r.logger.Debug("culture resolved through fallback",
					slog.String("requested", name),
					slog.String("resolved", profile.Name))
			}
			return profile, nil
		}
	}

	if _, err := language.Parse(name); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCulture, name)
	}
	if profile, ok := r.lookup(r.defaultCulture); ok {
		r.logger.Debug("culture not found, using default",
			slog.String("requested", name),
			slog.String("default", r.defaultCulture))
		return profile, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCulture, name)
}

func (r *CultureRegistry) lookup(name string) (*CultureProfile, bool) {
	if name == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[normalizeLocaleKey(name)]
	return profile, ok
}

func (r *CultureRegistry) candidates(name string) []string {
	seen := make(map[string]struct{}, 8)
	candidates := make([]string, 0, 8)

	appendCandidate := func(value string) {
		key := normalizeLocaleKey(value)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		candidates = append(candidates, value)
	}

	appendCandidate(name)
	if r.resolver != nil {
		for _, fallback := range r.resolver.Resolve(name) {
			appendCandidate(fallback)
		}
	}
	for _, parent := range localeParentChain(name) {
		appendCandidate(parent)
		appendCandidate(likelyLocale(parent))
	}
	appendCandidate(likelyLocale(name))
	return candidates
}
