package rule

// Description is a serializable view of a rule tree, used to inspect
// compiled schemas.
type Description struct {
	Name     string         `json:"name" yaml:"name"`
	Kind     string         `json:"kind" yaml:"kind"`
	Label    string         `json:"label,omitempty" yaml:"label,omitempty"`
	Checks   []CheckSummary `json:"checks,omitempty" yaml:"checks,omitempty"`
	Default  any            `json:"default,omitempty" yaml:"default,omitempty"`
	Children []Description  `json:"children,omitempty" yaml:"children,omitempty"`
	Item     *Description   `json:"item,omitempty" yaml:"item,omitempty"`
	MinItems *int           `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int           `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
}

// CheckSummary names one bound check and its configuration.
type CheckSummary struct {
	Name   string `json:"name" yaml:"name"`
	Config any    `json:"config,omitempty" yaml:"config,omitempty"`
}

// Describe returns the Description of r.
func Describe(r *Rule) Description {
	d := Description{
		Name:  r.name,
		Kind:  r.kind.String(),
		Label: r.label,
	}
	switch r.kind {
	case KindField:
		for _, c := range r.checks {
			d.Checks = append(d.Checks, CheckSummary{Name: c.Name(), Config: c.Config().Raw()})
		}
		if r.hasDefault {
			d.Default = r.def
		}
	case KindObject:
		d.Children = make([]Description, len(r.children))
		for i, child := range r.children {
			d.Children[i] = Describe(child)
		}
	case KindCollection:
		item := Describe(r.item)
		d.Item = &item
		if n, ok := r.MinItems(); ok {
			d.MinItems = &n
		}
		if n, ok := r.MaxItems(); ok {
			d.MaxItems = &n
		}
	}
	return d
}
