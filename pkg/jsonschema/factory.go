package jsonschema

import (
	"fmt"
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/dmitrymomot/formkit/pkg/rule"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const (
	typeObject = "object"
	typeArray  = "array"
)

// descriptor is one property description. Keywords that are not structural
// end up in Keywords and are resolved against the check registry.
type descriptor struct {
	Type       any            `mapstructure:"type"`
	Title      string         `mapstructure:"title"`
	Properties any            `mapstructure:"properties"`
	Items      any            `mapstructure:"items"`
	MinItems   any            `mapstructure:"minItems"`
	MaxItems   any            `mapstructure:"maxItems"`
	Required   any            `mapstructure:"required"`
	Default    any            `mapstructure:"default"`
	Keywords   map[string]any `mapstructure:",remain"`
}

func (d descriptor) kind() string {
	t, _ := d.Type.(string)
	return t
}

// Option configures a Factory.
type Option func(*Factory)

// WithRegistry sets the registry used to resolve check keywords.
func WithRegistry(reg *validator.Registry) Option {
	return func(f *Factory) {
		if reg != nil {
			f.registry = reg
		}
	}
}

// Factory compiles JSON-Schema-like documents.
type Factory struct {
	registry *validator.Registry
}

var _ schema.Factory = (*Factory)(nil)

// New returns a Factory resolving checks through validator.Default unless
// WithRegistry says otherwise.
func New(opts ...Option) *Factory {
	f := &Factory{registry: validator.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) Dialect() string { return schema.DialectJSONSchema }

// Compile builds the rule tree of doc. The document is either a mapping of
// property names to descriptors or a single descriptor of type "object".
func (f *Factory) Compile(name string, doc schema.Document) (*rule.Rule, error) {
	if doc == nil {
		return nil, schema.Errorf(f.Dialect(), "", "empty document")
	}

	var (
		r   *rule.Rule
		err error
	)
	if t, _ := doc["type"].(string); t == typeObject {
		r, err = f.node(name, "", map[string]any(doc), false)
	} else {
		r, err = f.object(name, "", map[string]any(doc), nil)
	}
	if err != nil {
		return nil, schema.WithDialect(f.Dialect(), "", err)
	}
	return r, nil
}

func (f *Factory) decode(path string, raw any) (descriptor, error) {
	var d descriptor
	m, ok := schema.Mapping(raw)
	if !ok {
		return d, schema.Errorf(f.Dialect(), path, "descriptor must be a mapping, got %T", raw)
	}
	if err := mapstructure.Decode(m, &d); err != nil {
		return d, schema.Errorf(f.Dialect(), path, "%v", err)
	}
	return d, nil
}

func (f *Factory) node(name, path string, raw any, required bool) (*rule.Rule, error) {
	d, err := f.decode(path, raw)
	if err != nil {
		return nil, err
	}

	if required && (d.kind() == typeObject || d.kind() == typeArray) {
		return nil, schema.Errorf(f.Dialect(), path, "required applies to fields, not to %s %q", d.kind(), name)
	}

	var r *rule.Rule
	switch d.kind() {
	case typeObject:
		props, ok := schema.Mapping(d.Properties)
		if !ok {
			return nil, schema.Errorf(f.Dialect(), path, "object without a properties mapping")
		}
		names, err := requiredNames(d.Required)
		if err != nil {
			return nil, schema.Errorf(f.Dialect(), path, "required: %v", err)
		}
		r, err = f.object(name, path, props, names)
		if err != nil {
			return nil, err
		}

	case typeArray:
		if _, ok := schema.Mapping(d.Items); !ok {
			return nil, schema.Errorf(f.Dialect(), path, "array without an items mapping")
		}
		item, err := f.node("", path+"[]", d.Items, false)
		if err != nil {
			return nil, err
		}
		opts, err := schema.CollectionOptions(d.MinItems, d.MaxItems)
		if err != nil {
			return nil, schema.Errorf(f.Dialect(), path, "%v", err)
		}
		r, err = rule.Collection(name, item, opts...)
		if err != nil {
			return nil, schema.WithDialect(f.Dialect(), path, err)
		}

	default:
		r, err = f.field(name, path, d, required)
		if err != nil {
			return nil, err
		}
	}

	if d.Title != "" {
		r = r.WithLabel(d.Title)
	}
	return r, nil
}

func (f *Factory) object(name, path string, props map[string]any, required []string) (*rule.Rule, error) {
	for _, n := range required {
		if _, ok := props[n]; !ok {
			return nil, schema.Errorf(f.Dialect(), path, "required names unknown property %q", n)
		}
	}

	children := make([]*rule.Rule, 0, len(props))
	for _, prop := range schema.Keys(props) {
		child, err := f.node(prop, schema.Join(path, prop), props[prop], slices.Contains(required, prop))
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

// field binds the required flag first and the remaining check keywords in
// name order. Keywords that name no registered check are metadata.
func (f *Factory) field(name, path string, d descriptor, required bool) (*rule.Rule, error) {
	var checks []validator.Binding

	switch {
	case d.Required != nil:
		b, err := f.registry.Bind("required", d.Required)
		if err != nil {
			return nil, schema.Errorf(f.Dialect(), path, "%v", err)
		}
		checks = append(checks, b)
	case required:
		checks = append(checks, validator.MustBind(validator.Required, true))
	}

	for _, keyword := range schema.Keys(d.Keywords) {
		if !f.registry.Has(keyword) {
			continue
		}
		b, err := f.registry.Bind(keyword, d.Keywords[keyword])
		if err != nil {
			return nil, schema.Errorf(f.Dialect(), path, "%v", err)
		}
		checks = append(checks, b)
	}

	r, err := rule.Field(name, checks...)
	if err != nil {
		return nil, schema.WithDialect(f.Dialect(), path, err)
	}
	if d.Default != nil {
		r = r.WithDefault(d.Default)
	}
	return r, nil
}

// requiredNames reads the object level form `required: [a, b]`. A boolean
// flag on an object carries no meaning and is ignored.
func requiredNames(raw any) ([]string, error) {
	switch raw.(type) {
	case nil, bool, string:
		return nil, nil
	}
	list, err := validator.NewConfig(raw).List()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("property names must be strings, got %T", v)
		}
		names = append(names, s)
	}
	return names, nil
}
