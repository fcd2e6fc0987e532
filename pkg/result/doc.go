// Package result holds the output of a validation: a tree of Result nodes
// with the same shape as the rule tree that produced it.
//
// The JSON form uses the field names HasErrors, Errors, Children,
// ValidationFailures and HasError, so form layers can walk it directly:
//
//	res.Errors["Contacts"].Children[1].Errors["Email"].HasErrors
//
// or, from Go:
//
//	res.Field("Contacts").Item(1).Field("Email").HasErrors
//
// Flatten and Err turn the tree into a flat list of violations with paths such
// as "Contacts[1].Mobile.CountryCode".
//
// A Result is built by one validation call and is not modified afterwards.
package result
