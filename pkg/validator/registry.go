package validator

import (
	"fmt"
	"sort"
	"sync"
)

// Builtins lists the checks every Registry starts with.
func Builtins() []Definition {
	return []Definition{
		Required,
		MinLength,
		MaxLength,
		RangeLength,
		Enum,
		Email,
		URL,
		UUID,
		Phone,
		Alphanumeric,
		Digits,
		NumberFormat,
		Pattern,
		Format,
		Minimum,
		Maximum,
		Range,
	}
}

// Registry resolves check names used in schemas to Definitions.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	defs    map[string]Definition
	aliases map[string]string
}

// Option configures a Registry.
type Option func(*Registry)

// WithDefinitions registers additional checks, replacing built-ins of the same name.
func WithDefinitions(defs ...Definition) Option {
	return func(r *Registry) {
		for _, def := range defs {
			if def.Name != "" && def.Check != nil {
				r.defs[def.Name] = def
			}
		}
	}
}

// WithLookup registers the asynchronous "lookup" check backed by l.
func WithLookup(l Lookup) Option {
	return func(r *Registry) {
		r.defs["lookup"] = LookupDefinition(l)
	}
}

// WithAlias makes alias resolve to name. Aliases let dialects keep their own
// spelling (maxlength) while sharing the canonical check (maxLength).
func WithAlias(alias, name string) Option {
	return func(r *Registry) {
		if alias != "" && name != "" {
			r.aliases[alias] = name
		}
	}
}

// NewRegistry returns a Registry holding the built-in checks plus whatever the
// options add.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		defs:    make(map[string]Definition),
		aliases: make(map[string]string),
	}
	for _, def := range Builtins() {
		r.defs[def.Name] = def
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared registry with built-in checks only.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a check. Registering an existing name fails.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" || def.Check == nil {
		return ErrInvalidDefinition
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCheck, def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// Lookup resolves name, following aliases.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	def, ok := r.defs[name]
	return def, ok
}

// Has reports whether name (or an alias of it) is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Bind resolves name and binds raw to it.
func (r *Registry) Bind(name string, raw any) (Binding, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return Binding{}, fmt.Errorf("%w: %s", ErrUnknownCheck, name)
	}
	return Bind(def, raw)
}

// Names returns the registered check names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
