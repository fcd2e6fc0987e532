// Package rule defines the compiled, dialect independent representation of a
// form schema.
//
// A rule tree has three node kinds:
//
//   - Field: an ordered list of validator bindings run against one value.
//   - Object: named child rules, each applied to the property of the same name.
//   - Collection: one item rule applied to every element of a sequence, plus
//     optional minItems and maxItems bounds on the number of elements.
//
// Trees are usually produced by a schema dialect (see packages jsonschema and
// jqvalidation) but can be assembled by hand:
//
//	email := rule.MustField("Email",
//	    validator.MustBind(validator.Required, true),
//	    validator.MustBind(validator.Email, true),
//	)
//	contact := rule.MustObject("", email)
//	person := rule.MustObject("Person",
//	    rule.MustCollection("Contacts", contact, rule.WithMinItems(2), rule.WithMaxItems(4)),
//	)
//
// Structural mistakes (duplicate property names, a collection without an item
// rule, negative or inverted bounds) are reported as *SchemaError, which
// matches ErrSchema with errors.Is.
//
// Rules are immutable. WithDefault and WithLabel return modified copies.
package rule
