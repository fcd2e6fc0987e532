package schema

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/rule"
)

// Registry maps dialect names to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding the given factories. Later factories
// replace earlier ones with the same dialect.
func NewRegistry(factories ...Factory) *Registry {
	r := &Registry{factories: make(map[string]Factory, len(factories))}
	for _, f := range factories {
		if f != nil {
			r.factories[f.Dialect()] = f
		}
	}
	return r
}

// Register adds a factory. Registering a dialect twice fails.
func (r *Registry) Register(f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[f.Dialect()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDialect, f.Dialect())
	}
	r.factories[f.Dialect()] = f
	return nil
}

// Factory returns the factory for dialect.
func (r *Registry) Factory(dialect string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[dialect]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}
	return f, nil
}

// Dialects returns the registered dialect names, sorted.
func (r *Registry) Dialects() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Keys(r.factories)
}

// Compile compiles doc with the factory of dialect. An empty dialect is
// resolved from the document's DialectKey, falling back to DialectJSONSchema.
func (r *Registry) Compile(dialect, name string, doc Document) (*rule.Rule, error) {
	if dialect == "" {
		dialect = DetectDialect("", doc)
	}
	f, err := r.Factory(dialect)
	if err != nil {
		return nil, err
	}
	return f.Compile(name, Strip(doc))
}

// Strip returns doc without the DialectKey entry.
func Strip(doc Document) Document {
	if _, ok := doc[DialectKey]; !ok {
		return doc
	}
	out := maps.Clone(doc)
	delete(out, DialectKey)
	return out
}

// CompileFile loads the schema file at path and compiles it. An empty dialect
// is detected with DetectDialect, an empty name falls back to FormName(path).
// The resolved dialect is returned with the rule.
func (r *Registry) CompileFile(ctx context.Context, path, dialect, name string, parsers ...Parser) (*rule.Rule, string, error) {
	doc, err := Load(ctx, path, parsers...)
	if err != nil {
		return nil, "", err
	}
	if dialect == "" {
		dialect = DetectDialect(path, doc)
	}
	if name == "" {
		name = FormName(path)
	}
	rl, err := r.Compile(dialect, name, doc)
	if err != nil {
		return nil, dialect, fmt.Errorf("%s: %w", path, err)
	}
	return rl, dialect, nil
}
