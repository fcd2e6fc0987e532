package formtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/engine"
	"github.com/dmitrymomot/formkit/pkg/result"
	"github.com/dmitrymomot/formkit/pkg/rule"
)

// RunScenarios validates the person form scenarios against r, a rule tree
// compiled from JSONSchemaPerson or JQPerson.
func RunScenarios(t *testing.T, r *rule.Rule) {
	t.Helper()

	validate := func(t *testing.T, data any) *result.Result {
		t.Helper()
		res := engine.Validate(r, data)
		require.NotNil(t, res)
		assert.True(t, res.Consistent(), "HasErrors must agree with the failures")
		return res
	}

	t.Run("fill no email", func(t *testing.T) {
		res := validate(t, Person(map[string]any{}))
		assert.True(t, res.Field("Contacts").Item(0).Field("Email").HasErrors)
		assert.True(t, res.Field("Contacts").ValidationFailures["minItems"].HasError)
	})

	t.Run("fill wrong email", func(t *testing.T) {
		c := Contact()
		c["Email"] = "jsmith.com"
		res := validate(t, Person(c))
		assert.True(t, res.Field("Contacts").Item(0).Field("Email").HasErrors)
	})

	t.Run("fill some email", func(t *testing.T) {
		c := Contact()
		c["Email"] = "jsmith@gmail.com"
		res := validate(t, Person(c))
		assert.False(t, res.Field("Contacts").Item(0).Field("Email").HasErrors)
	})

	t.Run("fill undefined", func(t *testing.T) {
		data := Person()
		data["Contacts"] = nil
		res := validate(t, data)
		assert.True(t, res.HasErrors)
		assert.True(t, res.Field("Contacts").ValidationFailures["minItems"].HasError)
	})

	t.Run("whole instance undefined", func(t *testing.T) {
		res := validate(t, nil)
		assert.True(t, res.HasErrors)
		assert.True(t, res.Field("FirstName").HasErrors)
		assert.Empty(t, res.Field("Contacts").Children)
	})

	t.Run("fill 1 item - minItems errors", func(t *testing.T) {
		res := validate(t, Person(Contacts(1)...))
		contacts := res.Field("Contacts")
		assert.True(t, contacts.ValidationFailures["minItems"].HasError)
		assert.False(t, contacts.Item(0).HasErrors)
	})

	t.Run("fill 5 items - maxItems errors", func(t *testing.T) {
		res := validate(t, Person(Contacts(5)...))
		assert.True(t, res.Field("Contacts").ValidationFailures["maxItems"].HasError)
		assert.True(t, res.HasErrors)
	})

	t.Run("fill correct data - no errors", func(t *testing.T) {
		res := validate(t, Person(Contacts(3)...))
		assert.False(t, res.HasErrors)
	})

	t.Run("fill incorrect data - some errors", func(t *testing.T) {
		items := Contacts(3)
		items[1].(map[string]any)["Email"] = ""
		items[2].(map[string]any)["Mobile"].(map[string]any)["CountryCode"] = "BLA"

		res := validate(t, Person(items...))
		contacts := res.Field("Contacts")
		assert.True(t, res.HasErrors)
		assert.True(t, contacts.HasErrors)
		assert.False(t, contacts.Item(0).HasErrors)
		assert.True(t, contacts.Item(1).HasErrors)
		assert.True(t, contacts.Item(2).HasErrors)
	})

	t.Run("delete error item, leave correct item - no errors", func(t *testing.T) {
		items := Contacts(3)
		items[2].(map[string]any)["Email"] = ""
		items[2].(map[string]any)["Mobile"].(map[string]any)["CountryCode"] = "BLA"
		items = append(items[:2], items[3:]...)

		res := validate(t, Person(items...))
		contacts := res.Field("Contacts")
		assert.False(t, res.HasErrors)
		assert.False(t, contacts.HasErrors)
		assert.False(t, contacts.Item(0).HasErrors)
		assert.False(t, contacts.Item(1).HasErrors)
	})

	t.Run("delete correct item, leave error item - some errors", func(t *testing.T) {
		items := Contacts(3)
		items[2].(map[string]any)["Email"] = ""
		items[2].(map[string]any)["Mobile"].(map[string]any)["CountryCode"] = "BLA"
		items = append(items[:1], items[2:]...)

		res := validate(t, Person(items...))
		contacts := res.Field("Contacts")
		assert.True(t, res.HasErrors)
		assert.True(t, contacts.HasErrors)
		assert.False(t, contacts.Item(0).HasErrors)
		assert.True(t, contacts.Item(1).HasErrors)
	})
}
