// Package defaults builds empty data instances from rule trees, used to seed
// a form before its first edit.
//
// Objects become maps holding every declared child, collections become empty
// slices and fields take their declared default, or "" without one:
//
//	r, _ := jsonschema.New().Compile("Person", doc)
//	initial := defaults.Build(r)
//	// map[Contacts:[] Country:CZE FirstName: LastName:]
//
// The result validates like any other data, so it can be sent through the
// engine to show which fields still need input.
package defaults
