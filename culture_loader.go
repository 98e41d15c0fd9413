package jtac

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/cultures.json
var defaultCulturesJSON []byte

// CultureData is the decoded content of a culture data file.
type CultureData struct {
	DefaultCulture string                     `json:"default_culture" yaml:"default_culture"`
	Cultures       map[string]*CultureProfile `json:"cultures" yaml:"cultures"`
}

// Names returns the culture names in the data, sorted.
func (d *CultureData) Names() []string {
	if d == nil || len(d.Cultures) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.Cultures))
	for name := range d.Cultures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CultureDataLoader loads culture data from the embedded defaults plus
// optional JSON or YAML files.
type CultureDataLoader struct {
	defaultPath string
	overrides   map[string]string
}

// NewCultureDataLoader creates a loader. An empty path loads only the
// built-in cultures.
func NewCultureDataLoader(defaultPath string) *CultureDataLoader {
	return &CultureDataLoader{
		defaultPath: defaultPath,
		overrides:   make(map[string]string),
	}
}

// AddOverride registers a file holding a single culture profile which is
// layered over culture after the main data has been merged.
func (l *CultureDataLoader) AddOverride(culture, path string) {
	l.overrides[normalizeLocale(culture)] = path
}

// Load reads the built-in cultures, then the configured file, then overrides.
// Fields present in a later source replace the same fields of an earlier one.
func (l *CultureDataLoader) Load() (*CultureData, error) {
	data := &CultureData{Cultures: make(map[string]*CultureProfile)}
	if err := mergeCultureJSON(data, defaultCulturesJSON); err != nil {
		return nil, fmt.Errorf("parse default culture data: %w", err)
	}

	if l.defaultPath != "" {
		raw, err := os.ReadFile(l.defaultPath)
		if err != nil {
			return nil, fmt.Errorf("load culture data: %w", err)
		}
		if err := mergeCultureFile(data, l.defaultPath, raw); err != nil {
			return nil, fmt.Errorf("parse culture data %s: %w", l.defaultPath, err)
		}
	}

	cultures := make([]string, 0, len(l.overrides))
	for culture := range l.overrides {
		cultures = append(cultures, culture)
	}
	sort.Strings(cultures)
	for _, culture := range cultures {
		if err := l.loadOverride(data, culture, l.overrides[culture]); err != nil {
			return nil, err
		}
	}

	return data, nil
}

func (l *CultureDataLoader) loadOverride(data *CultureData, culture, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load culture override for %q: %w", culture, err)
	}

	culture, profile := baseProfile(data, culture)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(raw, profile)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, profile)
	default:
		err = fmt.Errorf("unsupported extension %s", ext)
	}
	if err != nil {
		return fmt.Errorf("parse culture override for %q: %w", culture, err)
	}
	profile.Name = culture
	data.Cultures[culture] = profile
	return nil
}

func mergeCultureFile(data *CultureData, path string, raw []byte) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return mergeCultureJSON(data, raw)
	case ".yaml", ".yml":
		return mergeCultureYAML(data, raw)
	default:
		return fmt.Errorf("unsupported extension %s", ext)
	}
}

func mergeCultureJSON(data *CultureData, raw []byte) error {
	var doc struct {
		DefaultCulture string                     `json:"default_culture"`
		Cultures       map[string]json.RawMessage `json:"cultures"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if doc.DefaultCulture != "" {
		data.DefaultCulture = normalizeLocale(doc.DefaultCulture)
	}
	for name, body := range doc.Cultures {
		culture := normalizeLocale(name)
		if culture == "" {
			return fmt.Errorf("empty culture name")
		}
		culture, profile := baseProfile(data, culture)
		if err := json.Unmarshal(body, profile); err != nil {
			return fmt.Errorf("%s: %w", culture, err)
		}
		profile.Name = culture
		data.Cultures[culture] = profile
	}
	return nil
}

func mergeCultureYAML(data *CultureData, raw []byte) error {
	var doc struct {
		DefaultCulture string               `yaml:"default_culture"`
		Cultures       map[string]yaml.Node `yaml:"cultures"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("yaml parse error: %w", err)
	}
	if doc.DefaultCulture != "" {
		data.DefaultCulture = normalizeLocale(doc.DefaultCulture)
	}
	for name, node := range doc.Cultures {
		culture := normalizeLocale(name)
		if culture == "" {
			return fmt.Errorf("empty culture name")
		}
		culture, profile := baseProfile(data, culture)
		if err := node.Decode(profile); err != nil {
			return fmt.Errorf("%s: %w", culture, err)
		}
		profile.Name = culture
		data.Cultures[culture] = profile
	}
	return nil
}

// baseProfile returns a copy of the existing profile for culture so that a
// partial document only replaces the fields it mentions. Names match without
// regard to case; the returned name is the one already in data.
func baseProfile(data *CultureData, culture string) (string, *CultureProfile) {
	key := normalizeLocaleKey(culture)
	for name, existing := range data.Cultures {
		if existing != nil && normalizeLocaleKey(name) == key {
			return name, existing.Clone()
		}
	}
	return culture, &CultureProfile{Name: culture}
}
