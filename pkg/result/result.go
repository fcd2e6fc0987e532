package result

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Failure is the outcome of one check. Params carries the constraint
// parameters (the configured bound, the actual count) whether or not the
// check failed; Message and TranslationKey are set only on failure.
type Failure struct {
	HasError       bool           `json:"HasError"`
	Params         map[string]any `json:"Params,omitempty"`
	Message        string         `json:"Message,omitempty"`
	TranslationKey string         `json:"TranslationKey,omitempty"`
}

// Result mirrors one node of a rule tree.
//
//   - Field nodes carry ValidationFailures, one entry per check.
//   - Object nodes carry Errors, one entry per child rule.
//   - Collection nodes carry Children, aligned with the validated sequence,
//     and ValidationFailures for minItems and maxItems.
//
// HasErrors is true exactly when some failure at this node or below failed.
type Result struct {
	HasErrors          bool               `json:"HasErrors"`
	Errors             map[string]*Result `json:"Errors,omitempty"`
	Children           []*Result          `json:"Children,omitempty"`
	ValidationFailures map[string]Failure `json:"ValidationFailures,omitempty"`

	collection bool
}

// NewField returns an empty field node.
func NewField() *Result {
	return &Result{ValidationFailures: make(map[string]Failure)}
}

// NewObject returns an empty object node.
func NewObject() *Result {
	return &Result{Errors: make(map[string]*Result)}
}

// NewCollection returns an empty collection node with room for n items.
func NewCollection(n int) *Result {
	return &Result{
		Children:           make([]*Result, 0, n),
		ValidationFailures: make(map[string]Failure, 2),
		collection:         true,
	}
}

// MarshalJSON always writes Children for collection nodes, even when empty,
// so that consumers can index it.
func (r *Result) MarshalJSON() ([]byte, error) {
	type plain Result
	if !r.collection {
		return json.Marshal((*plain)(r))
	}
	children := r.Children
	if children == nil {
		children = []*Result{}
	}
	return json.Marshal(struct {
		*plain
		Children []*Result `json:"Children"`
	}{(*plain)(r), children})
}

// Finalize recomputes HasErrors for r and its whole subtree from the recorded
// failures. It is called once all outcomes are known.
func Finalize(r *Result) bool {
	if r == nil {
		return false
	}
	failed := false
	for _, f := range r.ValidationFailures {
		failed = failed || f.HasError
	}
	for _, child := range r.Errors {
		failed = Finalize(child) || failed
	}
	for _, child := range r.Children {
		failed = Finalize(child) || failed
	}
	r.HasErrors = failed
	return failed
}

// Consistent reports whether HasErrors agrees with the failures of every
// node in the tree.
func (r *Result) Consistent() bool {
	if r == nil {
		return true
	}
	want := false
	for _, f := range r.ValidationFailures {
		want = want || f.HasError
	}
	for _, child := range r.Errors {
		if !child.Consistent() {
			return false
		}
		want = want || child.HasErrors
	}
	for _, child := range r.Children {
		if !child.Consistent() {
			return false
		}
		want = want || child.HasErrors
	}
	return r.HasErrors == want
}

// Field walks object nodes by property name and returns the node at path.
func (r *Result) Field(path ...string) *Result {
	cur := r
	for _, name := range path {
		if cur == nil {
			return nil
		}
		cur = cur.Errors[name]
	}
	return cur
}

// Item returns the result of the i-th collection item, or nil.
func (r *Result) Item(i int) *Result {
	if r == nil || i < 0 || i >= len(r.Children) {
		return nil
	}
	return r.Children[i]
}

// Failed returns the names of the failed checks at this node, sorted.
func (r *Result) Failed() []string {
	if r == nil {
		return nil
	}
	var names []string
	for name, f := range r.ValidationFailures {
		if f.HasError {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Violation is one failed check addressed by its path,
// e.g. "Contacts[1].Mobile.CountryCode".
type Violation struct {
	Path           string         `json:"path"`
	Check          string         `json:"check"`
	Params         map[string]any `json:"params,omitempty"`
	Message        string         `json:"message"`
	TranslationKey string         `json:"translation_key"`
}

// Flatten lists every failed check of the tree. Properties are visited in
// name order and items in index order, so the output is deterministic.
func (r *Result) Flatten() []Violation {
	var out []Violation
	r.flatten("", &out)
	return out
}

func (r *Result) flatten(path string, out *[]Violation) {
	if r == nil || !r.HasErrors {
		return
	}
	for _, check := range r.Failed() {
		f := r.ValidationFailures[check]
		*out = append(*out, Violation{
			Path:           path,
			Check:          check,
			Params:         maps.Clone(f.Params),
			Message:        f.Message,
			TranslationKey: f.TranslationKey,
		})
	}
	for _, name := range slices.Sorted(maps.Keys(r.Errors)) {
		next := name
		if path != "" {
			next = path + "." + name
		}
		r.Errors[name].flatten(next, out)
	}
	for i, child := range r.Children {
		child.flatten(path+"["+strconv.Itoa(i)+"]", out)
	}
}

// Err returns the failures as validator.ValidationErrors, or nil when the
// tree has no errors.
func (r *Result) Err() error {
	violations := r.Flatten()
	if len(violations) == 0 {
		return nil
	}
	errs := make(validator.ValidationErrors, 0, len(violations))
	for _, v := range violations {
		errs.Add(validator.ValidationError{
			Field:             v.Path,
			Check:             v.Check,
			Message:           v.Message,
			TranslationKey:    v.TranslationKey,
			TranslationValues: v.Params,
		})
	}
	return errs
}
