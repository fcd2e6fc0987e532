package validator

import "errors"

var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidConfig is returned when a check configuration cannot be used.
	ErrInvalidConfig = errors.New("invalid check configuration")

	// ErrInvalidDefinition is returned for definitions without a name or a check.
	ErrInvalidDefinition = errors.New("invalid check definition")

	// ErrUnknownCheck is returned when a check name is not registered.
	ErrUnknownCheck = errors.New("unknown check")

	// ErrDuplicateCheck is returned when a check name is registered twice.
	ErrDuplicateCheck = errors.New("check already registered")

	// ErrLookupUnavailable is returned when a lookup check has no backend.
	ErrLookupUnavailable = errors.New("lookup backend unavailable")
)
