package jtac

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// RegionNode describes one geographic variant of a string value. A node is
// either an alias or a validator.
type RegionNode struct {
	// Alias names other regions, separated by '|'. When set the remaining
	// fields are ignored.
	Alias string
	// Pattern must match the whole value. Used when Validate is nil.
	Pattern *regexp.Regexp
	// Validate replaces Pattern with custom logic.
	Validate func(value string) bool
	// ValidChars matches a single acceptable character. Nil means this
	// region does not filter characters.
	ValidChars *regexp.Regexp
	// ToNeutral converts a valid value into its storage form.
	ToNeutral func(value string) string
	// ToDisplay converts a typed or neutral value into its display form.
	ToDisplay func(value string) string
}

func (n RegionNode) matches(value string) bool {
	switch {
	case n.Validate != nil:
		return n.Validate(value)
	case n.Pattern != nil:
		return n.Pattern.MatchString(value)
	}
	return false
}

// RegionTable maps region names to nodes. Names are case-insensitive.
type RegionTable struct {
	mu            sync.RWMutex
	nodes         map[string]RegionNode
	names         map[string]string
	defaultRegion string
}

// NewRegionTable creates an empty table whose empty region name means
// defaultRegion.
func NewRegionTable(defaultRegion string) *RegionTable {
	return &RegionTable{
		nodes:         make(map[string]RegionNode),
		names:         make(map[string]string),
		defaultRegion: defaultRegion,
	}
}

// Set adds or replaces the node for name.
func (t *RegionTable) Set(name string, node RegionNode) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nodes[key] = node
	t.names[key] = strings.TrimSpace(name)
}

// Node returns the node registered for name.
func (t *RegionTable) Node(name string) (RegionNode, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	node, ok := t.nodes[strings.ToLower(strings.TrimSpace(name))]
	return node, ok
}

// Has reports whether name is registered.
func (t *RegionTable) Has(name string) bool {
	_, ok := t.Node(name)
	return ok
}

// DefaultRegion returns the region used for an empty region name.
func (t *RegionTable) DefaultRegion() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.defaultRegion
}

// SetDefaultRegion changes the region used for an empty region name.
func (t *RegionTable) SetDefaultRegion(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.defaultRegion = name
}

// Names returns the registered region names, sorted.
func (t *RegionTable) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.names))
	for _, name := range t.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve expands a '|' separated list of region names, following aliases,
// into validator nodes. An empty list selects the default region.
func (t *RegionTable) Resolve(regions string) ([]RegionNode, error) {
	if strings.TrimSpace(regions) == "" {
		regions = t.DefaultRegion()
	}
	var out []RegionNode
	seen := make(map[string]bool)
	if err := t.resolve(regions, nil, seen, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %q names no region", ErrUnknownRegion, regions)
	}
	return out, nil
}

func (t *RegionTable) resolve(regions string, path []string, seen map[string]bool, out *[]RegionNode) error {
	for _, name := range strings.Split(regions, "|") {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		for _, visiting := range path {
			if visiting == key {
				return fmt.Errorf("region alias cycle: %s -> %s", strings.Join(path, " -> "), key)
			}
		}
		node, ok := t.Node(key)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownRegion, strings.TrimSpace(name))
		}
		if node.Alias != "" {
			if err := t.resolve(node.Alias, append(path, key), seen, out); err != nil {
				return err
			}
			continue
		}
		if !seen[key] {
			seen[key] = true
			*out = append(*out, node)
		}
	}
	return nil
}

// RegionStringOptions configure RegionString.
type RegionStringOptions struct {
	StringOptions
	// Region is a '|' separated list of region names. Empty selects the
	// region of the culture when the table knows it, else the table default.
	Region string
	// InvalidMessage replaces the default error reason.
	InvalidMessage string
}

// RegionString accepts text matching any region of the active set.
type RegionString struct {
	stringEngine
	table      *RegionTable
	regionOpts RegionStringOptions
	nodes      *lazy[regionNodes]
}

type regionNodes struct {
	nodes []RegionNode
	err   error
}

var _ TypeManager = (*RegionString)(nil)

// NewRegionString creates a RegionString over table. A nil culture selects
// the default culture of DefaultCultureRegistry.
func NewRegionString(culture *CultureProfile, table *RegionTable, opts RegionStringOptions) (*RegionString, error) {
	return newRegionString("RegionString", culture, table, opts)
}

func newRegionString(name string, culture *CultureProfile, table *RegionTable, opts RegionStringOptions) (*RegionString, error) {
	if table == nil {
		return nil, configError(name, "Table", "must not be nil")
	}
	m := &RegionString{table: table}
	if err := m.init(name, culture); err != nil {
		return nil, err
	}
	m.checks = stringChecks{
		normalize: m.normalize,
		validate:  m.validate,
		neutral:   m.toNeutral,
		validChar: m.validChar,
	}
	if err := m.SetOptions(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Options returns a copy of the active options.
func (m *RegionString) Options() RegionStringOptions {
	return m.regionOpts
}

// SetOptions validates opts and resolves the region set.
func (m *RegionString) SetOptions(opts RegionStringOptions) error {
	if err := opts.StringOptions.validate(m.name); err != nil {
		return err
	}
	previous := m.regionOpts
	m.regionOpts = opts
	if _, err := m.resolveNodes(); err != nil {
		m.regionOpts = previous
		return &ConfigurationError{TypeName: m.name, Field: "Region", Reason: err.Error(), Err: err}
	}
	m.opts = opts.StringOptions
	m.nodes = new(lazy[regionNodes])
	return nil
}

// SetRegion changes only the region list.
func (m *RegionString) SetRegion(region string) error {
	opts := m.regionOpts
	opts.Region = region
	return m.SetOptions(opts)
}

func (m *RegionString) SetCulture(culture *CultureProfile) error {
	if err := m.setCulture(culture); err != nil {
		return err
	}
	m.nodes = new(lazy[regionNodes])
	return nil
}

// Region returns the region list in effect.
func (m *RegionString) Region() string {
	if m.regionOpts.Region != "" {
		return m.regionOpts.Region
	}
	if tag, err := language.Parse(m.culture.Name); err == nil {
		if region, conf := tag.Region(); conf != language.No && m.table.Has(region.String()) {
			return region.String()
		}
	}
	return m.table.DefaultRegion()
}

func (m *RegionString) resolveNodes() ([]RegionNode, error) {
	return m.table.Resolve(m.Region())
}

func (m *RegionString) activeNodes() ([]RegionNode, error) {
	resolved := m.nodes.get(func() regionNodes {
		nodes, err := m.resolveNodes()
		return regionNodes{nodes: nodes, err: err}
	})
	if resolved.err != nil {
		return nil, &ConfigurationError{TypeName: m.name, Field: "Region", Reason: resolved.err.Error(), Err: resolved.err}
	}
	return resolved.nodes, nil
}

// normalize applies the display transform of the first region that accepts
// the text as typed or after transformation.
func (m *RegionString) normalize(text string, neutral bool) string {
	nodes, err := m.activeNodes()
	if err != nil {
		return text
	}
	for _, node := range nodes {
		if node.ToDisplay == nil {
			if node.matches(text) {
				return text
			}
			continue
		}
		if display := node.ToDisplay(text); node.matches(display) {
			return display
		}
	}
	return text
}

func (m *RegionString) validate(value string) error {
	nodes, err := m.activeNodes()
	if err != nil {
		return err
	}
	for _, node := range nodes {
		if node.matches(value) {
			return nil
		}
	}
	reason := m.regionOpts.InvalidMessage
	if reason == "" {
		reason = "invalid format for " + m.Region()
	}
	return inputError(m.name, "", reason)
}

func (m *RegionString) toNeutral(value string) string {
	nodes, err := m.activeNodes()
	if err != nil {
		return value
	}
	for _, node := range nodes {
		if node.matches(value) {
			if node.ToNeutral != nil {
				return node.ToNeutral(value)
			}
			return value
		}
	}
	return value
}

// validChar accepts ch when any region accepts it. A region that does not
// filter characters accepts everything.
func (m *RegionString) validChar(ch rune) bool {
	nodes, err := m.activeNodes()
	if err != nil {
		return true
	}
	s := string(ch)
	for _, node := range nodes {
		if node.ValidChars == nil || node.ValidChars.MatchString(s) {
			return true
		}
	}
	return false
}
