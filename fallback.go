package jtac

import "sync"

// FallbackResolver resolves the cultures to try, in order, when a culture has
// no profile of its own.
type FallbackResolver interface {
	Resolve(culture string) []string
}

// StaticFallbackResolver holds explicitly configured fallback chains.
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = (*StaticFallbackResolver)(nil)

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the fallback chain of culture.
func (s *StaticFallbackResolver) Set(culture string, fallbacks ...string) {
	key := normalizeLocaleKey(culture)
	if key == "" {
		return
	}
	chain := sanitizeFallbacks(culture, fallbacks)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chains == nil {
		s.chains = make(map[string][]string)
	}
	if len(chain) == 0 {
		delete(s.chains, key)
		return
	}
	s.chains[key] = chain
}

func (s *StaticFallbackResolver) Resolve(culture string) []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	chain := s.chains[normalizeLocaleKey(culture)]
	if len(chain) == 0 {
		return nil
	}
	return append([]string(nil), chain...)
}

func sanitizeFallbacks(culture string, fallbacks []string) []string {
	if len(fallbacks) == 0 {
		return nil
	}

	seen := map[string]struct{}{
		normalizeLocaleKey(culture): {},
	}

	result := make([]string, 0, len(fallbacks))
	for _, candidate := range fallbacks {
		normalized := normalizeLocale(candidate)
		key := normalizeLocaleKey(normalized)
		if key == "" {
			continue
		}
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, normalized)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
