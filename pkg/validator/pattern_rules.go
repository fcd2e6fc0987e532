package validator

import (
	"regexp"
)

// Pattern requires the textual value to match a regular expression. The
// expression is compiled once when the schema is compiled.
var Pattern = Definition{
	Name:     "pattern",
	Prepare:  prepareRegexp,
	ParamKey: "pattern",
	Check: CheckFunc(func(value any, cfg Config) bool {
		if IsEmpty(value) {
			return true
		}
		s, ok := Text(value)
		return ok && cfg.Compiled().(*regexp.Regexp).MatchString(s)
	}),
	Message:        func(Config) string { return "has an invalid format" },
	TranslationKey: "validation.pattern",
}
