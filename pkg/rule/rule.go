package rule

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Kind tags the three node types of a rule tree.
type Kind uint8

const (
	KindField Kind = iota + 1
	KindObject
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindObject:
		return "object"
	case KindCollection:
		return "collection"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Rule describes how to validate one named thing: a scalar field, an object
// of named children or a collection of items sharing one item rule.
//
// A Rule has no mutators. Once built it is read-only and may be shared by any
// number of concurrent validations.
type Rule struct {
	kind  Kind
	name  string
	label string

	// field
	checks     []validator.Binding
	def        any
	hasDefault bool

	// object
	children []*Rule
	index    map[string]int

	// collection
	item     *Rule
	minItems *int
	maxItems *int
	minCheck validator.Binding
	maxCheck validator.Binding
}

// Field builds a scalar rule running every binding independently.
func Field(name string, checks ...validator.Binding) (*Rule, error) {
	for i, c := range checks {
		if c.Name() == "" {
			return nil, schemaErrorf(name, "check #%d has no name", i)
		}
	}
	return &Rule{
		kind:   KindField,
		name:   name,
		checks: slices.Clone(checks),
	}, nil
}

// Object builds a rule validating each child against the property of the
// same name. Children keep their declaration order; names must be unique.
func Object(name string, children ...*Rule) (*Rule, error) {
	r := &Rule{
		kind:     KindObject,
		name:     name,
		children: make([]*Rule, 0, len(children)),
		index:    make(map[string]int, len(children)),
	}
	for _, child := range children {
		if child == nil {
			return nil, schemaErrorf(name, "nil child rule")
		}
		if child.name == "" {
			return nil, schemaErrorf(name, "child rule without a name")
		}
		if _, dup := r.index[child.name]; dup {
			return nil, schemaErrorf(join(name, child.name), "duplicate property %q", child.name)
		}
		r.index[child.name] = len(r.children)
		r.children = append(r.children, child)
	}
	return r, nil
}

// CollectionOption sets collection-level constraints.
type CollectionOption func(*Rule)

// WithMinItems sets the inclusive lower bound on the number of items.
func WithMinItems(n int) CollectionOption {
	return func(r *Rule) { r.minItems = &n }
}

// WithMaxItems sets the inclusive upper bound on the number of items.
func WithMaxItems(n int) CollectionOption {
	return func(r *Rule) { r.maxItems = &n }
}

// Collection builds a rule applying item to every element of a sequence.
// The item rule is mandatory.
func Collection(name string, item *Rule, opts ...CollectionOption) (*Rule, error) {
	if item == nil {
		return nil, schemaErrorf(name, "collection has no item rule")
	}

	r := &Rule{kind: KindCollection, name: name, item: item}
	for _, opt := range opts {
		opt(r)
	}

	if r.minItems != nil {
		b, err := validator.Bind(validator.MinItems, *r.minItems)
		if err != nil {
			return nil, schemaErrorf(name, "minItems: %v", err)
		}
		r.minCheck = b
	}
	if r.maxItems != nil {
		b, err := validator.Bind(validator.MaxItems, *r.maxItems)
		if err != nil {
			return nil, schemaErrorf(name, "maxItems: %v", err)
		}
		r.maxCheck = b
	}
	if r.minItems != nil && r.maxItems != nil && *r.minItems > *r.maxItems {
		return nil, schemaErrorf(name, "minItems %d is greater than maxItems %d", *r.minItems, *r.maxItems)
	}

	return r, nil
}

// MustField is like Field but panics on error.
func MustField(name string, checks ...validator.Binding) *Rule {
	return must(Field(name, checks...))
}

// MustObject is like Object but panics on error.
func MustObject(name string, children ...*Rule) *Rule {
	return must(Object(name, children...))
}

// MustCollection is like Collection but panics on error.
func MustCollection(name string, item *Rule, opts ...CollectionOption) *Rule {
	return must(Collection(name, item, opts...))
}

func must(r *Rule, err error) *Rule {
	if err != nil {
		panic(err)
	}
	return r
}

// WithDefault returns a copy of a field rule carrying the initial value used
// when an empty data instance is built. Other kinds are returned unchanged.
func (r *Rule) WithDefault(v any) *Rule {
	if r.kind != KindField {
		return r
	}
	cp := *r
	cp.def = v
	cp.hasDefault = true
	return &cp
}

// WithLabel returns a copy of r carrying a human readable label.
func (r *Rule) WithLabel(label string) *Rule {
	cp := *r
	cp.label = label
	return &cp
}

func (r *Rule) Kind() Kind     { return r.kind }
func (r *Rule) Name() string   { return r.name }
func (r *Rule) Label() string  { return r.label }
func (r *Rule) IsField() bool  { return r.kind == KindField }
func (r *Rule) IsObject() bool { return r.kind == KindObject }

func (r *Rule) IsCollection() bool { return r.kind == KindCollection }

// Checks returns the bindings of a field rule in declaration order.
func (r *Rule) Checks() []validator.Binding {
	return slices.Clone(r.checks)
}

// Default returns the initial value of a field rule, if one was declared.
func (r *Rule) Default() (any, bool) {
	return r.def, r.hasDefault
}

// Children returns the child rules of an object rule in declaration order.
func (r *Rule) Children() []*Rule {
	return slices.Clone(r.children)
}

// Child returns the child rule called name.
func (r *Rule) Child(name string) (*Rule, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.children[i], true
}

// Item returns the item rule of a collection rule.
func (r *Rule) Item() *Rule {
	return r.item
}

// MinItems returns the lower item bound of a collection rule, if set.
func (r *Rule) MinItems() (int, bool) {
	if r.minItems == nil {
		return 0, false
	}
	return *r.minItems, true
}

// MaxItems returns the upper item bound of a collection rule, if set.
func (r *Rule) MaxItems() (int, bool) {
	if r.maxItems == nil {
		return 0, false
	}
	return *r.maxItems, true
}

// MinItemsCheck returns the bound minItems check, if the bound is set.
func (r *Rule) MinItemsCheck() (validator.Binding, bool) {
	return r.minCheck, r.minItems != nil
}

// MaxItemsCheck returns the bound maxItems check, if the bound is set.
func (r *Rule) MaxItemsCheck() (validator.Binding, bool) {
	return r.maxCheck, r.maxItems != nil
}

// WalkFunc is called for every node of a rule tree. path is the dotted path
// of the node below the root, collection items are written as "[]". Returning
// false skips the node's descendants.
type WalkFunc func(path string, r *Rule) bool

// Walk visits r and its descendants depth first in declaration order.
func (r *Rule) Walk(fn WalkFunc) {
	r.walk("", fn)
}

func (r *Rule) walk(path string, fn WalkFunc) {
	if !fn(path, r) {
		return
	}
	switch r.kind {
	case KindObject:
		for _, child := range r.children {
			child.walk(join(path, child.name), fn)
		}
	case KindCollection:
		r.item.walk(path+"[]", fn)
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
