package rule

import (
	"errors"
	"fmt"
)

// ErrSchema is matched by every SchemaError.
var ErrSchema = errors.New("invalid schema")

// SchemaError reports a structurally invalid schema. It is raised while a rule
// tree is built, never during validation.
type SchemaError struct {
	Dialect string
	Path    string
	Reason  string
}

func (e *SchemaError) Error() string {
	var prefix string
	if e.Dialect != "" {
		prefix = e.Dialect + ": "
	}
	if e.Path == "" {
		return fmt.Sprintf("%sinvalid schema: %s", prefix, e.Reason)
	}
	return fmt.Sprintf("%sinvalid schema at %s: %s", prefix, e.Path, e.Reason)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

func schemaErrorf(path, format string, args ...any) error {
	return &SchemaError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
