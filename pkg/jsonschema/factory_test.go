package jsonschema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/internal/formtest"
	"github.com/dmitrymomot/formkit/pkg/engine"
	"github.com/dmitrymomot/formkit/pkg/jsonschema"
	"github.com/dmitrymomot/formkit/pkg/rule"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func checkNames(r *rule.Rule) []string {
	var names []string
	for _, b := range r.Checks() {
		names = append(names, b.Name())
	}
	return names
}

func TestCompilePerson(t *testing.T) {
	t.Parallel()

	r, err := jsonschema.New().Compile("Main", formtest.JSONSchemaPerson())
	require.NoError(t, err)

	assert.Equal(t, "Main", r.Name())
	assert.True(t, r.IsObject())

	first, ok := r.Child("FirstName")
	require.True(t, ok)
	assert.Equal(t, []string{"required", "maxLength"}, checkNames(first))
	assert.Equal(t, "First name", first.Label())

	contacts, ok := r.Child("Contacts")
	require.True(t, ok)
	require.True(t, contacts.IsCollection())
	minItems, _ := contacts.MinItems()
	maxItems, _ := contacts.MaxItems()
	assert.Equal(t, 2, minItems)
	assert.Equal(t, 4, maxItems)

	email, ok := contacts.Item().Child("Email")
	require.True(t, ok)
	assert.Equal(t, []string{"required", "email", "maxLength"}, checkNames(email))
	def, ok := email.Default()
	assert.True(t, ok)
	assert.Equal(t, "", def)

	code, ok := contacts.Item().Child("Mobile")
	require.True(t, ok)
	cc, ok := code.Child("CountryCode")
	require.True(t, ok)
	assert.Equal(t, []string{"required", "enum", "maxLength"}, checkNames(cc))
}

func TestPersonScenarios(t *testing.T) {
	t.Parallel()

	r, err := jsonschema.New().Compile("Main", formtest.JSONSchemaPerson())
	require.NoError(t, err)
	formtest.RunScenarios(t, r)
}

func TestCompileRootDescriptor(t *testing.T) {
	t.Parallel()

	doc := schema.Document{
		"type":     "object",
		"required": []any{"Email"},
		"properties": map[string]any{
			"Email": map[string]any{"type": "string", "format": "email"},
			"Age":   map[string]any{"type": "integer", "minimum": 18, "maximum": 130},
			"Code":  map[string]any{"type": "string", "pattern": "^[A-Z]{3}$"},
		},
	}
	r, err := jsonschema.New().Compile("Signup", doc)
	require.NoError(t, err)

	email, _ := r.Child("Email")
	assert.Equal(t, []string{"required", "format"}, checkNames(email))

	res := engine.Validate(r, map[string]any{"Email": "nope", "Age": 12, "Code": "cz"})
	assert.True(t, res.Field("Email").ValidationFailures["format"].HasError)
	assert.True(t, res.Field("Age").ValidationFailures["minimum"].HasError)
	assert.True(t, res.Field("Code").ValidationFailures["pattern"].HasError)

	res = engine.Validate(r, map[string]any{"Email": "a@b.io", "Age": 30.0})
	assert.False(t, res.HasErrors)
}

func TestCompileLookup(t *testing.T) {
	t.Parallel()

	reg := validator.NewRegistry(validator.WithLookup(validator.NewStaticLookup(map[string][]string{
		"countries": {"CZE"},
	})))
	doc := schema.Document{"Country": map[string]any{"type": "string", "lookup": "countries"}}

	r, err := jsonschema.New(jsonschema.WithRegistry(reg)).Compile("Main", doc)
	require.NoError(t, err)

	assert.False(t, engine.Validate(r, map[string]any{"Country": "CZE"}).HasErrors)
	assert.True(t, engine.Validate(r, map[string]any{"Country": "BLA"}).HasErrors)

	t.Run("default registry ignores unknown keywords", func(t *testing.T) {
		r, err := jsonschema.New().Compile("Main", doc)
		require.NoError(t, err)
		country, _ := r.Child("Country")
		assert.Empty(t, country.Checks())
	})
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  schema.Document
		path string
	}{
		{
			name: "array without items",
			doc:  schema.Document{"Contacts": map[string]any{"type": "array", "minItems": 2}},
			path: "Contacts",
		},
		{
			name: "array with scalar items",
			doc:  schema.Document{"Tags": map[string]any{"type": "array", "items": "string"}},
			path: "Tags",
		},
		{
			name: "object without properties",
			doc:  schema.Document{"Mobile": map[string]any{"type": "object"}},
			path: "Mobile",
		},
		{
			name: "descriptor is not a mapping",
			doc:  schema.Document{"FirstName": "string"},
			path: "FirstName",
		},
		{
			name: "bad check configuration",
			doc:  schema.Document{"FirstName": map[string]any{"maxLength": "long"}},
			path: "FirstName",
		},
		{
			name: "inverted bounds",
			doc: schema.Document{"Contacts": map[string]any{
				"type": "array", "minItems": 5, "maxItems": 1,
				"items": map[string]any{"type": "string"},
			}},
			path: "Contacts",
		},
		{
			name: "fractional bound",
			doc: schema.Document{"Contacts": map[string]any{
				"type": "array", "minItems": 1.5,
				"items": map[string]any{"type": "string"},
			}},
			path: "Contacts",
		},
		{
			name: "required names an unknown property",
			doc: schema.Document{"Mobile": map[string]any{
				"type":       "object",
				"required":   []any{"Number"},
				"properties": map[string]any{"CountryCode": map[string]any{"type": "string"}},
			}},
			path: "Mobile",
		},
		{
			name: "required names a nested object",
			doc: schema.Document{"Contact": map[string]any{
				"type":     "object",
				"required": []any{"Mobile"},
				"properties": map[string]any{
					"Mobile": map[string]any{"type": "object", "properties": map[string]any{}},
				},
			}},
			path: "Contact.Mobile",
		},
		{
			name: "required names a collection",
			doc: schema.Document{
				"type":     "object",
				"required": []any{"Contacts"},
				"properties": map[string]any{
					"Contacts": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
			path: "Contacts",
		},
		{
			name: "nested error keeps its path",
			doc: schema.Document{"Contacts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":       "object",
					"properties": map[string]any{"Mobile": map[string]any{"type": "array"}},
				},
			}},
			path: "Contacts[].Mobile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jsonschema.New().Compile("Main", tt.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, schema.ErrSchema)

			var se *schema.SchemaError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, schema.DialectJSONSchema, se.Dialect)
			assert.Equal(t, tt.path, se.Path)
		})
	}

	t.Run("nil document", func(t *testing.T) {
		_, err := jsonschema.New().Compile("Main", nil)
		assert.ErrorIs(t, err, schema.ErrSchema)
	})
}
