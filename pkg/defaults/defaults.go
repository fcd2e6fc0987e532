package defaults

import (
	"github.com/dmitrymomot/formkit/pkg/rule"
)

// Build returns the initial value for r: a map with every declared child for
// objects, an empty slice for collections and the declared default (or "")
// for fields.
func Build(r *rule.Rule) any {
	if r == nil {
		return nil
	}
	switch r.Kind() {
	case rule.KindObject:
		children := r.Children()
		out := make(map[string]any, len(children))
		for _, child := range children {
			out[child.Name()] = Build(child)
		}
		return out
	case rule.KindCollection:
		return []any{}
	default:
		if v, ok := r.Default(); ok {
			return v
		}
		return ""
	}
}

// Item returns the initial value of one item of a collection rule, ready to
// be appended when the user adds a row. It returns nil for other kinds.
func Item(r *rule.Rule) any {
	if r == nil || !r.IsCollection() {
		return nil
	}
	return Build(r.Item())
}
