package rule_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/rule"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func contactRule(t *testing.T) *rule.Rule {
	t.Helper()
	email := rule.MustField("Email",
		validator.MustBind(validator.Required, true),
		validator.MustBind(validator.Email, true),
	)
	mobile := rule.MustObject("Mobile",
		rule.MustField("CountryCode", validator.MustBind(validator.Required, true)),
		rule.MustField("Number", validator.MustBind(validator.MaxLength, 9)),
	)
	return rule.MustObject("", email, mobile)
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "field", rule.KindField.String())
	assert.Equal(t, "object", rule.KindObject.String())
	assert.Equal(t, "collection", rule.KindCollection.String())
	assert.Equal(t, "kind(9)", rule.Kind(9).String())
}

func TestField(t *testing.T) {
	t.Parallel()

	checks := []validator.Binding{
		validator.MustBind(validator.Required, true),
		validator.MustBind(validator.MaxLength, 15),
	}
	r, err := rule.Field("FirstName", checks...)
	require.NoError(t, err)

	assert.Equal(t, rule.KindField, r.Kind())
	assert.Equal(t, "FirstName", r.Name())
	require.Len(t, r.Checks(), 2)
	assert.Equal(t, "required", r.Checks()[0].Name())
	assert.Equal(t, "maxLength", r.Checks()[1].Name())

	// the caller's slice does not alias the rule
	checks[0] = validator.MustBind(validator.Email, true)
	assert.Equal(t, "required", r.Checks()[0].Name())

	t.Run("default and label are copies", func(t *testing.T) {
		withDefault := r.WithDefault("John").WithLabel("First name")

		v, ok := withDefault.Default()
		assert.True(t, ok)
		assert.Equal(t, "John", v)
		assert.Equal(t, "First name", withDefault.Label())

		_, ok = r.Default()
		assert.False(t, ok)
		assert.Empty(t, r.Label())
	})

	t.Run("binding without definition", func(t *testing.T) {
		_, err := rule.Field("Broken", validator.Binding{})
		assert.ErrorIs(t, err, rule.ErrSchema)
	})
}

func TestObject(t *testing.T) {
	t.Parallel()

	contact := contactRule(t)
	assert.Equal(t, rule.KindObject, contact.Kind())

	names := make([]string, 0)
	for _, c := range contact.Children() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"Email", "Mobile"}, names)

	child, ok := contact.Child("Mobile")
	require.True(t, ok)
	assert.True(t, child.IsObject())

	_, ok = contact.Child("mobile")
	assert.False(t, ok, "names are case sensitive")

	t.Run("duplicate names", func(t *testing.T) {
		_, err := rule.Object("Person",
			rule.MustField("Email"),
			rule.MustField("Email"),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, rule.ErrSchema)

		var schemaErr *rule.SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "Person.Email", schemaErr.Path)
	})

	t.Run("unnamed child", func(t *testing.T) {
		_, err := rule.Object("Person", rule.MustField(""))
		assert.ErrorIs(t, err, rule.ErrSchema)
	})

	t.Run("nil child", func(t *testing.T) {
		_, err := rule.Object("Person", nil)
		assert.ErrorIs(t, err, rule.ErrSchema)
	})
}

func TestCollection(t *testing.T) {
	t.Parallel()

	t.Run("bounds", func(t *testing.T) {
		r, err := rule.Collection("Contacts", contactRule(t), rule.WithMinItems(2), rule.WithMaxItems(4))
		require.NoError(t, err)

		assert.True(t, r.IsCollection())
		assert.NotNil(t, r.Item())

		minItems, ok := r.MinItems()
		assert.True(t, ok)
		assert.Equal(t, 2, minItems)

		check, ok := r.MinItemsCheck()
		require.True(t, ok)
		assert.Equal(t, "minItems", check.Name())
		assert.Equal(t, map[string]any{"min": 2}, check.Params())

		check, ok = r.MaxItemsCheck()
		require.True(t, ok)
		assert.Equal(t, map[string]any{"max": 4}, check.Params())
	})

	t.Run("unbounded", func(t *testing.T) {
		r, err := rule.Collection("Tags", rule.MustField(""))
		require.NoError(t, err)

		_, ok := r.MinItems()
		assert.False(t, ok)
		_, ok = r.MaxItemsCheck()
		assert.False(t, ok)
	})

	tests := []struct {
		name string
		item *rule.Rule
		opts []rule.CollectionOption
	}{
		{"missing item", nil, nil},
		{"negative min", rule.MustField(""), []rule.CollectionOption{rule.WithMinItems(-1)}},
		{"negative max", rule.MustField(""), []rule.CollectionOption{rule.WithMaxItems(-3)}},
		{"inverted bounds", rule.MustField(""), []rule.CollectionOption{rule.WithMinItems(5), rule.WithMaxItems(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rule.Collection("Contacts", tt.item, tt.opts...)
			assert.ErrorIs(t, err, rule.ErrSchema)
		})
	}

	t.Run("must variant panics", func(t *testing.T) {
		assert.Panics(t, func() { rule.MustCollection("Contacts", nil) })
	})
}

func TestWalk(t *testing.T) {
	t.Parallel()

	root := rule.MustObject("Person",
		rule.MustField("FirstName"),
		rule.MustCollection("Contacts", contactRule(t)),
	)

	var visited []string
	root.Walk(func(path string, r *rule.Rule) bool {
		visited = append(visited, path+":"+r.Kind().String())
		return true
	})

	assert.Equal(t, []string{
		":object",
		"FirstName:field",
		"Contacts:collection",
		"Contacts[]:object",
		"Contacts[].Email:field",
		"Contacts[].Mobile:object",
		"Contacts[].Mobile.CountryCode:field",
		"Contacts[].Mobile.Number:field",
	}, visited)

	t.Run("skip descendants", func(t *testing.T) {
		count := 0
		root.Walk(func(path string, r *rule.Rule) bool {
			count++
			return !r.IsCollection()
		})
		assert.Equal(t, 3, count)
	})
}

func TestSchemaErrorMessage(t *testing.T) {
	t.Parallel()

	err := &rule.SchemaError{Dialect: "jsonschema", Path: "Contacts", Reason: "array without items"}
	assert.Equal(t, "jsonschema: invalid schema at Contacts: array without items", err.Error())

	err = &rule.SchemaError{Reason: "empty document"}
	assert.Equal(t, "invalid schema: empty document", err.Error())
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	contacts := rule.MustCollection("Contacts",
		rule.MustObject("",
			rule.MustField("Email", validator.MustBind(validator.Required, true)).WithDefault(""),
		),
		rule.WithMinItems(2),
	)
	root := rule.MustObject("Person",
		rule.MustField("FirstName", validator.MustBind(validator.MaxLength, 15)).WithLabel("First name"),
		contacts,
	)

	d := rule.Describe(root)
	assert.Equal(t, "Person", d.Name)
	assert.Equal(t, "object", d.Kind)
	require.Len(t, d.Children, 2)

	first := d.Children[0]
	assert.Equal(t, "FirstName", first.Name)
	assert.Equal(t, "First name", first.Label)
	assert.Equal(t, []rule.CheckSummary{{Name: "maxLength", Config: 15}}, first.Checks)
	assert.Nil(t, first.Default)

	coll := d.Children[1]
	assert.Equal(t, "collection", coll.Kind)
	require.NotNil(t, coll.MinItems)
	assert.Equal(t, 2, *coll.MinItems)
	assert.Nil(t, coll.MaxItems)
	require.NotNil(t, coll.Item)
	require.Len(t, coll.Item.Children, 1)
	assert.Equal(t, "required", coll.Item.Children[0].Checks[0].Name)
	assert.Equal(t, "", coll.Item.Children[0].Default)
}
