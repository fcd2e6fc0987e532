// Package formtest holds the person/contacts form used across the test
// suites, expressed in both dialects, together with the scenarios every
// compiled rule tree of that form has to satisfy.
package formtest

import (
	"github.com/dmitrymomot/formkit/pkg/schema"
)

// CountryCodes are the allowed phone country codes of the person form.
var CountryCodes = []any{"FRA", "CZE", "USA", "GER"}

func jsonPhone() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"CountryCode": map[string]any{
				"type":      "string",
				"title":     "Country code",
				"required":  true,
				"maxLength": 3,
				"enum":      CountryCodes,
			},
			"Number": map[string]any{
				"type":      "string",
				"title":     "Phone number",
				"required":  true,
				"maxLength": 9,
			},
		},
	}
}

// JSONSchemaPerson is the person form in the JSON-Schema-like dialect.
func JSONSchemaPerson() schema.Document {
	return schema.Document{
		"FirstName": map[string]any{
			"type":      "string",
			"title":     "First name",
			"required":  "true",
			"maxLength": 15,
		},
		"LastName": map[string]any{
			"type":      "string",
			"title":     "Last name",
			"required":  true,
			"maxLength": 15,
		},
		"Contacts": map[string]any{
			"type":     "array",
			"maxItems": 4,
			"minItems": 2,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"Email": map[string]any{
						"type":      "string",
						"title":     "Email",
						"default":   "",
						"required":  true,
						"maxLength": 100,
						"email":     true,
					},
					"Mobile":    jsonPhone(),
					"FixedLine": jsonPhone(),
				},
			},
		},
	}
}

func jqPhone() map[string]any {
	return map[string]any{
		"CountryCode": map[string]any{
			"rules": map[string]any{"required": true, "maxlength": 3, "enum": CountryCodes},
		},
		"Number": map[string]any{
			"rules": map[string]any{"required": true, "maxlength": 9},
		},
	}
}

// JQPerson is the person form in the jQuery Validation metadata dialect. It
// carries an extra NickName field with a label and no rules.
func JQPerson() schema.Document {
	return schema.Document{
		"FirstName": map[string]any{
			"rules": map[string]any{"required": true, "maxlength": 15},
			"label": "First name",
		},
		"LastName": map[string]any{
			"rules": map[string]any{"required": true, "maxlength": 15},
		},
		"NickName": map[string]any{
			"label": "Nick name",
		},
		"Contacts": []any{
			map[string]any{
				"Email": map[string]any{
					"label": "Email",
					"rules": map[string]any{"required": true, "maxlength": 100, "email": true},
				},
				"Mobile":    jqPhone(),
				"FixedLine": jqPhone(),
			},
			map[string]any{"maxItems": 4, "minItems": 2},
		},
	}
}

// Contact returns a fully valid contact.
func Contact() map[string]any {
	return map[string]any{
		"Email":     "mail@gmail.com",
		"Mobile":    map[string]any{"CountryCode": "CZE", "Number": "736483690"},
		"FixedLine": map[string]any{"CountryCode": "USA", "Number": "736483690"},
	}
}

// Contacts returns n valid contacts.
func Contacts(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = Contact()
	}
	return out
}

// Person returns person data holding the given contacts.
func Person(contacts ...any) map[string]any {
	if contacts == nil {
		contacts = []any{}
	}
	return map[string]any{
		"Checked":   true,
		"FirstName": "John",
		"LastName":  "Smith",
		"Contacts":  contacts,
	}
}
