// Package jsonschema compiles JSON-Schema-like form descriptions into rule
// trees.
//
// A document maps property names to descriptors; a single descriptor of type
// "object" is accepted as the root too:
//
//	FirstName:
//	  type: string
//	  title: First name
//	  required: true
//	  maxLength: 15
//	Contacts:
//	  type: array
//	  minItems: 2
//	  maxItems: 4
//	  items:
//	    type: object
//	    required: [Email]
//	    properties:
//	      Email: {type: string, email: true, default: ""}
//
// Descriptors of type "object" need a properties mapping, descriptors of type
// "array" an items mapping; everything else is a field. On a field, required
// accepts true or "true", and every other keyword naming a registered check
// (maxLength, minLength, enum, email, format, pattern, minimum, maximum,
// lookup, ...) becomes a binding. Unknown keywords such as title or
// description are metadata. default is kept as the field's initial value.
//
// On an object, required may also list property names, which marks those
// fields required. Listing a property that does not exist, or one that is an
// object or array, is a schema error: presence of nested structures is
// expressed by their own fields and by minItems.
//
// Object children are compiled in property name order.
package jsonschema
