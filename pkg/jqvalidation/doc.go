// Package jqvalidation compiles jQuery Validation style metadata into rule
// trees.
//
// The metadata mirrors the shape of the form data. A mapping holding rules
// and/or label is a field, a sequence is a collection whose first element is
// the item template and whose optional second element carries the bounds, and
// any other mapping is a nested object:
//
//	FirstName:
//	  label: First name
//	  rules: {required: true, maxlength: 15}
//	Contacts:
//	  - Email:
//	      rules: {required: true, email: true}
//	    Mobile:
//	      CountryCode: {rules: {required: true, enum: [FRA, CZE, USA, GER]}}
//	  - {minItems: 2, maxItems: 4}
//
// Rule names follow jQuery Validation (maxlength, minlength, rangelength, min,
// max, digits, number, url, email, ...) and are mapped onto the shared check
// registry, so enum, pattern, uuid and lookup are available too. A rule name
// that resolves to no check is a schema error.
//
// Failures are keyed by the registry name, not by the spelling used in the
// metadata: maxlength reports as maxLength, minlength as minLength,
// rangelength as rangeLength, min as minimum and max as maximum. Results from
// both dialects therefore share one vocabulary, and message catalogs only
// need the registry names.
package jqvalidation
