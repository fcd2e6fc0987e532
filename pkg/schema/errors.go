package schema

import (
	"errors"

	"github.com/dmitrymomot/formkit/pkg/rule"
)

// ErrSchema is matched by every SchemaError.
var ErrSchema = rule.ErrSchema

// SchemaError reports a structurally invalid schema document.
type SchemaError = rule.SchemaError

var (
	ErrUnknownDialect   = errors.New("unknown schema dialect")
	ErrDuplicateDialect = errors.New("schema dialect already registered")
	ErrUnsupportedFile  = errors.New("unsupported schema file extension")

	ErrParsingCancelled = errors.New("schema parsing cancelled")
	ErrFailedToParse    = errors.New("failed to parse schema document")
	ErrFailedToRead     = errors.New("failed to read schema file")
)
