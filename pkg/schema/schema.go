package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/rule"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Dialect names understood by the bundled factories.
const (
	DialectJSONSchema   = "jsonschema"
	DialectJQValidation = "jqvalidation"
)

// DialectKey is an optional top level document key naming the dialect of the
// document. It is removed before the document is compiled.
const DialectKey = "$dialect"

// Document is a decoded schema document as produced by a Parser or written
// inline as a Go map.
type Document map[string]any

// Factory compiles documents of one dialect into rule trees. Compile returns
// a *SchemaError for structurally invalid documents.
type Factory interface {
	Dialect() string
	Compile(name string, doc Document) (*rule.Rule, error)
}

// Errorf builds a SchemaError for dialect at path.
func Errorf(dialect, path, format string, args ...any) error {
	return &SchemaError{Dialect: dialect, Path: path, Reason: fmt.Sprintf(format, args...)}
}

// WithDialect stamps dialect and the full schema path on a SchemaError raised
// by the rule constructors, which only know the local rule name. Errors that
// are not schema errors are wrapped into one.
func WithDialect(dialect, path string, err error) error {
	if err == nil {
		return nil
	}
	var se *SchemaError
	if errors.As(err, &se) {
		if se.Dialect != "" {
			return err
		}
		cp := *se
		cp.Dialect = dialect
		if path != "" {
			cp.Path = path
		}
		return &cp
	}
	return &SchemaError{Dialect: dialect, Path: path, Reason: err.Error()}
}

// Mapping returns v as a string keyed map. Documents decoded by other YAML
// libraries use map[any]any; those keys are stringified.
func Mapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// Keys returns the keys of m in sorted order. Factories use it so that
// compiled children have a stable order independent of map iteration.
func Keys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// Join appends name to a dotted schema path.
func Join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// CollectionOptions converts raw minItems and maxItems values into rule
// options. Nil values leave the bound unset.
func CollectionOptions(minItems, maxItems any) ([]rule.CollectionOption, error) {
	var opts []rule.CollectionOption
	if minItems != nil {
		n, err := validator.NewConfig(minItems).Int()
		if err != nil {
			return nil, fmt.Errorf("minItems: %w", err)
		}
		opts = append(opts, rule.WithMinItems(n))
	}
	if maxItems != nil {
		n, err := validator.NewConfig(maxItems).Int()
		if err != nil {
			return nil, fmt.Errorf("maxItems: %w", err)
		}
		opts = append(opts, rule.WithMaxItems(n))
	}
	return opts, nil
}
