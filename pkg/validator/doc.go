// Package validator provides the primitive validators of formkit: named checks
// that look at a single value and report pass or fail.
//
// # Contract
//
// A Check receives the value and its Config (the parameter written in the
// schema, e.g. 15 for `maxLength: 15`) and returns a *async.Future[bool]. Most
// checks are plain predicates wrapped with CheckFunc and settle immediately;
// AsyncCheck runs a blocking predicate, such as a lookup against Redis or
// Postgres, on its own goroutine. Callers treat both the same way.
//
// Checks never short-circuit each other and never see the result tree; they
// only answer for the value they were given.
//
// # Definitions, bindings and the registry
//
// A Definition names a check and carries its error metadata (message and
// translation key). Binding a Definition to a configuration validates that
// configuration once, at schema compile time, so a bad `pattern` or a negative
// `maxLength` is reported as a schema problem instead of a failing field.
//
// A Registry maps the names used in schemas to Definitions. NewRegistry starts
// with the built-ins (required, minLength, maxLength, rangeLength, enum, email,
// url, uuid, phone, alphanumeric, digits, number, pattern, format, minimum,
// maximum, range) and accepts options:
//
//	reg := validator.NewRegistry(
//	    validator.WithLookup(validator.NewStaticLookup(map[string][]string{
//	        "countries": {"FRA", "CZE", "USA", "GER"},
//	    })),
//	    validator.WithAlias("maxlength", "maxLength"),
//	)
//
//	b, err := reg.Bind("maxLength", 15)
//	ok, _ := b.Run(ctx, "John").Await()
//
// # Empty values
//
// Only required fails on a missing value (nil, blank string, empty list).
// Every other check passes on it, so an optional field may stay empty while
// still being validated once it is filled in.
//
// # Errors
//
// ValidationError and ValidationErrors are the flat, field-path keyed view of
// failures. They implement error and work with errors.As through
// ExtractValidationErrors and IsValidationError.
package validator
