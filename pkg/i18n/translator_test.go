package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/result"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func loadMessages(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.Load(context.Background(), "testdata/messages.yaml")
	require.NoError(t, err)
	return tr
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(nil)
		assert.ErrorIs(t, err, i18n.ErrNoTranslations)
	})

	t.Run("default language missing", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewTranslator(map[string]map[string]any{"cs": {"a": "b"}})
		assert.ErrorIs(t, err, i18n.ErrDefaultLangNotLoaded)
	})

	t.Run("custom default language", func(t *testing.T) {
		t.Parallel()
		tr, err := i18n.NewTranslator(
			map[string]map[string]any{"CS": {"a": "b"}},
			i18n.WithDefaultLanguage("cs"),
		)
		require.NoError(t, err)
		assert.Equal(t, "cs", tr.DefaultLanguage())
		assert.Equal(t, []string{"cs"}, tr.Languages())
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tr := loadMessages(t)
	assert.Equal(t, []string{"cs", "en"}, tr.Languages())

	_, err := i18n.Load(context.Background(), "testdata/invalid.yaml")
	assert.ErrorIs(t, err, i18n.ErrInvalidTranslations)

	_, err = i18n.Load(context.Background(), "testdata/missing.yaml")
	assert.Error(t, err)
}

func TestT(t *testing.T) {
	t.Parallel()
	tr := loadMessages(t)

	tests := []struct {
		name   string
		lang   string
		key    string
		params map[string]any
		want   string
		found  bool
	}{
		{"nested key", "en", "validation.required", nil, "is required", true},
		{"flat key", "cs", "validation.required", nil, "je povinné", true},
		{"param", "cs", "validation.max_length", map[string]any{"max": 15}, "může mít nejvýše 15 znaků", true},
		{"list param", "en", "validation.in_list", map[string]any{"values": []any{"FRA", "CZE"}}, "must be one of FRA, CZE", true},
		{"missing param kept", "en", "validation.max_length", map[string]any{"min": 1}, "must be at most %{max} characters", true},
		{"language is case insensitive", "CS", "validation.email", nil, "není platná e-mailová adresa", true},
		{"unknown key", "en", "validation.email", nil, "", false},
		{"key prefix is not a message", "en", "validation", nil, "", false},
		{"unknown language", "de", "validation.required", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tr.T(tt.lang, tt.key, tt.params)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNegotiate(t *testing.T) {
	t.Parallel()
	tr := loadMessages(t)

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"cs", "cs"},
		{"cs-CZ,cs;q=0.9,en;q=0.8", "cs"},
		{"de-DE,en;q=0.5", "en"},
		{"de-DE,fr;q=0.5", "en"},
		{"en;q=0.4,cs;q=0.9", "cs"},
		{"!!!", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tr.Negotiate(tt.header))
		})
	}
}

func TestLocalize(t *testing.T) {
	t.Parallel()
	tr := loadMessages(t)

	name := result.NewField()
	name.ValidationFailures["maxLength"] = result.Failure{
		HasError:       true,
		Params:         map[string]any{"max": 15},
		Message:        "must be at most 15 characters",
		TranslationKey: "validation.max_length",
	}
	name.ValidationFailures["required"] = result.Failure{}
	name.HasErrors = true

	email := result.NewField()
	email.ValidationFailures["email"] = result.Failure{
		HasError:       true,
		Message:        "must be a valid email address",
		TranslationKey: "validation.email",
	}
	email.ValidationFailures["custom"] = result.Failure{
		HasError:       true,
		Message:        "custom failure",
		TranslationKey: "validation.custom",
	}
	email.HasErrors = true

	contact := result.NewObject()
	contact.Errors["Email"] = email
	contact.HasErrors = true

	contacts := result.NewCollection(1)
	contacts.Children = append(contacts.Children, contact)
	contacts.HasErrors = true

	root := result.NewObject()
	root.Errors["Name"] = name
	root.Errors["Contacts"] = contacts
	root.HasErrors = true

	tr.Localize(root, "cs")

	assert.Equal(t, "může mít nejvýše 15 znaků", name.ValidationFailures["maxLength"].Message)
	assert.Empty(t, name.ValidationFailures["required"].Message)
	assert.Equal(t, "není platná e-mailová adresa", email.ValidationFailures["email"].Message)
	assert.Equal(t, "custom failure", email.ValidationFailures["custom"].Message)

	assert.NotPanics(t, func() { tr.Localize(nil, "cs") })
}

func TestBundledMessagesCoverBuiltins(t *testing.T) {
	t.Parallel()

	tr, err := i18n.Load(context.Background(), "../../data/messages.yaml")
	require.NoError(t, err)

	defs := append(validator.Builtins(), validator.MinItems, validator.MaxItems, validator.LookupDefinition(nil))
	for _, def := range defs {
		if def.TranslationKey == "" {
			continue
		}
		for _, lang := range tr.Languages() {
			_, ok := tr.T(lang, def.TranslationKey, nil)
			assert.True(t, ok, "%s: missing %s", lang, def.TranslationKey)
		}
	}
}
