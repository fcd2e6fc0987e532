package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/async"
)

// ValidationError represents a single validation error with translation support.
// Field holds the full path of the failing value, e.g. "Contacts[1].Email".
type ValidationError struct {
	Field             string
	Check             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

// Check is the contract of a primitive validator: it inspects a single value
// together with its configuration and reports pass (true) or fail (false).
// The outcome may settle immediately or later; checks never touch results.
type Check interface {
	Check(ctx context.Context, value any, cfg Config) *async.Future[bool]
}

// CheckFunc adapts a synchronous predicate to Check.
type CheckFunc func(value any, cfg Config) bool

func (fn CheckFunc) Check(_ context.Context, value any, cfg Config) *async.Future[bool] {
	return async.Resolve(fn(value, cfg))
}

// AsyncCheck adapts a blocking predicate (a lookup, a remote call) to Check.
// The predicate runs on its own goroutine.
type AsyncCheck func(ctx context.Context, value any, cfg Config) (bool, error)

func (fn AsyncCheck) Check(ctx context.Context, value any, cfg Config) *async.Future[bool] {
	return async.Async(ctx, value, func(ctx context.Context, v any) (bool, error) {
		return fn(ctx, v, cfg)
	})
}

// Definition describes a named primitive validator.
type Definition struct {
	Name  string
	Check Check

	// Prepare validates and normalizes the raw schema configuration once, at
	// compile time. Nil means the raw value is used as is.
	Prepare func(raw any) (Config, error)

	// ParamKey names the configuration in failure parameters ("max", "values").
	// Empty means the configuration is not reported.
	ParamKey string

	Message        func(cfg Config) string
	TranslationKey string
}

// Binding is a Definition bound to a concrete configuration.
// Bindings are values and are safe to share between goroutines.
type Binding struct {
	def Definition
	cfg Config
}

// Bind prepares raw and binds it to def.
func Bind(def Definition, raw any) (Binding, error) {
	if def.Name == "" || def.Check == nil {
		return Binding{}, ErrInvalidDefinition
	}

	cfg := NewConfig(raw)
	if def.Prepare != nil {
		prepared, err := def.Prepare(raw)
		if err != nil {
			return Binding{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, def.Name, err)
		}
		cfg = prepared
	}

	return Binding{def: def, cfg: cfg}, nil
}

// MustBind is like Bind but panics on error.
func MustBind(def Definition, raw any) Binding {
	b, err := Bind(def, raw)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Binding) Name() string   { return b.def.Name }
func (b Binding) Config() Config { return b.cfg }

// Run starts the check against value.
func (b Binding) Run(ctx context.Context, value any) *async.Future[bool] {
	return b.def.Check.Check(ctx, value, b.cfg)
}

// Params returns the constraint parameters reported with every outcome.
func (b Binding) Params() map[string]any {
	if b.def.ParamKey == "" || b.cfg.IsZero() {
		return nil
	}
	return map[string]any{b.def.ParamKey: b.cfg.Raw()}
}

func (b Binding) Message() string {
	if b.def.Message == nil {
		return "is invalid"
	}
	return b.def.Message(b.cfg)
}

func (b Binding) TranslationKey() string {
	if b.def.TranslationKey == "" {
		return "validation." + b.def.Name
	}
	return b.def.TranslationKey
}
