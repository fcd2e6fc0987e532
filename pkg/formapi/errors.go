package formapi

import "errors"

var (
	ErrFormNotFound      = errors.New("form not found")
	ErrDuplicateForm     = errors.New("form already registered")
	ErrFailedToLoadForms = errors.New("failed to load forms")
	ErrInvalidBody       = errors.New("invalid request body")
)
