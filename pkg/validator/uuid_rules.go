package validator

import (
	"github.com/google/uuid"
)

// UUID validates the canonical 36 character form with pre-validation to avoid
// expensive parsing.
var UUID = Definition{
	Name:    "uuid",
	Prepare: prepareBool,
	Check: CheckFunc(func(value any, cfg Config) bool {
		if !enabled(cfg) || IsEmpty(value) {
			return true
		}
		s, ok := Text(value)
		if !ok || len(s) != 36 {
			return false
		}
		if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	}),
	Message:        func(Config) string { return "must be a valid UUID" },
	TranslationKey: "validation.uuid",
}
