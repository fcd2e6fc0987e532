package defaults_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/internal/formtest"
	"github.com/dmitrymomot/formkit/pkg/defaults"
	"github.com/dmitrymomot/formkit/pkg/engine"
	"github.com/dmitrymomot/formkit/pkg/jqvalidation"
	"github.com/dmitrymomot/formkit/pkg/jsonschema"
	"github.com/dmitrymomot/formkit/pkg/rule"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	r, err := jsonschema.New().Compile("Main", formtest.JSONSchemaPerson())
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"FirstName": "",
		"LastName":  "",
		"Contacts":  []any{},
	}, defaults.Build(r))

	contacts, _ := r.Child("Contacts")
	assert.Equal(t, map[string]any{
		"Email":     "",
		"Mobile":    map[string]any{"CountryCode": "", "Number": ""},
		"FixedLine": map[string]any{"CountryCode": "", "Number": ""},
	}, defaults.Item(contacts))
}

func TestBuildDeclaredDefaults(t *testing.T) {
	t.Parallel()

	r := rule.MustObject("Settings",
		rule.MustField("Currency").WithDefault("EUR"),
		rule.MustField("Count").WithDefault(3),
		rule.MustObject("Empty"),
	)
	assert.Equal(t, map[string]any{
		"Currency": "EUR",
		"Count":    3,
		"Empty":    map[string]any{},
	}, defaults.Build(r))

	assert.Nil(t, defaults.Build(nil))
	assert.Nil(t, defaults.Item(r))
	assert.Nil(t, defaults.Item(nil))
}

func TestSeededFormValidates(t *testing.T) {
	t.Parallel()

	r, err := jqvalidation.New().Compile("Main", formtest.JQPerson())
	require.NoError(t, err)

	data := defaults.Build(r).(map[string]any)
	assert.Contains(t, data, "NickName")

	res := engine.Validate(r, data)
	assert.True(t, res.Field("FirstName").ValidationFailures["required"].HasError)
	assert.True(t, res.Field("Contacts").ValidationFailures["minItems"].HasError)

	contacts, _ := r.Child("Contacts")
	data["FirstName"], data["LastName"] = "John", "Smith"
	item := defaults.Item(contacts)
	data["Contacts"] = []any{item, item}

	res = engine.Validate(r, data)
	assert.False(t, res.Field("Contacts").ValidationFailures["minItems"].HasError)
	assert.True(t, res.Field("Contacts").Item(0).Field("Email").HasErrors)
}
