package jqvalidation

import (
	"github.com/mitchellh/mapstructure"

	"github.com/dmitrymomot/formkit/pkg/rule"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// aliases maps jQuery Validation method names to registry check names.
var aliases = map[string]string{
	"maxlength":   "maxLength",
	"minlength":   "minLength",
	"rangelength": "rangeLength",
	"min":         "minimum",
	"max":         "maximum",
}

// fieldNode is a leaf of the metadata tree.
type fieldNode struct {
	Rules   map[string]any `mapstructure:"rules"`
	Label   string         `mapstructure:"label"`
	Default any            `mapstructure:"default"`
}

// bounds is the optional second element of a collection node.
type bounds struct {
	MinItems any `mapstructure:"minItems"`
	MaxItems any `mapstructure:"maxItems"`
}

// Option configures a Factory.
type Option func(*Factory)

// WithRegistry sets the registry used to resolve rule names.
func WithRegistry(reg *validator.Registry) Option {
	return func(f *Factory) {
		if reg != nil {
			f.registry = reg
		}
	}
}

// Factory compiles jQuery Validation style metadata.
type Factory struct {
	registry *validator.Registry
}

var _ schema.Factory = (*Factory)(nil)

func New(opts ...Option) *Factory {
	f := &Factory{registry: validator.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) Dialect() string { return schema.DialectJQValidation }

// Compile builds the rule tree of the metadata document. The document itself
// is the root object.
func (f *Factory) Compile(name string, doc schema.Document) (*rule.Rule, error) {
	if doc == nil {
		return nil, schema.Errorf(f.Dialect(), "", "empty document")
	}
	r, err := f.object(name, "", map[string]any(doc))
	if err != nil {
		return nil, schema.WithDialect(f.Dialect(), "", err)
	}
	return r, nil
}

func (f *Factory) node(name, path string, raw any) (*rule.Rule, error) {
	if raw == nil {
		return rule.Field(name)
	}
	if seq, ok := raw.([]any); ok {
		return f.collection(name, path, seq)
	}
	m, ok := schema.Mapping(raw)
	if !ok {
		return nil, schema.Errorf(f.Dialect(), path, "node must be a mapping or a sequence, got %T", raw)
	}
	if isField(m) {
		return f.field(name, path, m)
	}
	return f.object(name, path, m)
}

// isField reports whether m describes a leaf: it holds a rules mapping or a
// label string and nothing else besides a default.
func isField(m map[string]any) bool {
	rules, hasRules := m["rules"]
	label, hasLabel := m["label"]
	if !hasRules && !hasLabel {
		return false
	}
	if hasRules {
		if _, ok := schema.Mapping(rules); !ok {
			return false
		}
	}
	if hasLabel {
		if _, ok := label.(string); !ok {
			return false
		}
	}
	for key := range m {
		switch key {
		case "rules", "label", "default":
		default:
			return false
		}
	}
	return true
}

func (f *Factory) object(name, path string, m map[string]any) (*rule.Rule, error) {
	children := make([]*rule.Rule, 0, len(m))
	for _, key := range schema.Keys(m) {
		child, err := f.node(key, schema.Join(path, key), m[key])
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	r, err := rule.Object(name, children...)
	if err != nil {
		return nil, schema.WithDialect(f.Dialect(), path, err)
	}
	return r, nil
}

// collection compiles [itemTemplate] or [itemTemplate, {minItems, maxItems}].
func (f *Factory) collection(name, path string, seq []any) (*rule.Rule, error) {
	switch {
	case len(seq) == 0:
		return nil, schema.Errorf(f.Dialect(), path, "collection without an item template")
	case len(seq) > 2:
		return nil, schema.Errorf(f.Dialect(), path, "collection has %d elements, expected an item template and optional bounds", len(seq))
	}

	if _, ok := schema.Mapping(seq[0]); !ok {
		return nil, schema.Errorf(f.Dialect(), path, "item template must be a mapping, got %T", seq[0])
	}
	item, err := f.node("", path+"[]", seq[0])
	if err != nil {
		return nil, err
	}

	var b bounds
	if len(seq) == 2 {
		m, ok := schema.Mapping(seq[1])
		if !ok {
			return nil, schema.Errorf(f.Dialect(), path, "collection bounds must be a mapping, got %T", seq[1])
		}
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &b, ErrorUnused: true})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(m); err != nil {
			return nil, schema.Errorf(f.Dialect(), path, "%v", err)
		}
	}

	opts, err := schema.CollectionOptions(b.MinItems, b.MaxItems)
	if err != nil {
		return nil, schema.Errorf(f.Dialect(), path, "%v", err)
	}
	r, err := rule.Collection(name, item, opts...)
	if err != nil {
		return nil, schema.WithDialect(f.Dialect(), path, err)
	}
	return r, nil
}

// field binds the rules of a leaf, required first and the rest in name order.
// Unlike metadata keys, every rule name must resolve to a check.
func (f *Factory) field(name, path string, m map[string]any) (*rule.Rule, error) {
	var n fieldNode
	if err := mapstructure.Decode(m, &n); err != nil {
		return nil, schema.Errorf(f.Dialect(), path, "%v", err)
	}

	names := schema.Keys(n.Rules)
	var checks []validator.Binding
	if raw, ok := n.Rules["required"]; ok {
		b, err := f.bind("required", raw)
		if err != nil {
			return nil, schema.Errorf(f.Dialect(), path, "%v", err)
		}
		checks = append(checks, b)
	}
	for _, ruleName := range names {
		if ruleName == "required" {
			continue
		}
		b, err := f.bind(ruleName, n.Rules[ruleName])
		if err != nil {
			return nil, schema.Errorf(f.Dialect(), path, "%v", err)
		}
		checks = append(checks, b)
	}

	r, err := rule.Field(name, checks...)
	if err != nil {
		return nil, schema.WithDialect(f.Dialect(), path, err)
	}
	if n.Label != "" {
		r = r.WithLabel(n.Label)
	}
	if n.Default != nil {
		r = r.WithDefault(n.Default)
	}
	return r, nil
}

func (f *Factory) bind(name string, raw any) (validator.Binding, error) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	return f.registry.Bind(name, raw)
}
