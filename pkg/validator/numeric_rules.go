package validator

import "fmt"

var Minimum = Definition{
	Name:     "minimum",
	Prepare:  prepareFloat,
	ParamKey: "min",
	Check: CheckFunc(func(value any, cfg Config) bool {
		if IsEmpty(value) {
			return true
		}
		n, ok := Number(value)
		return ok && n >= cfg.Compiled().(float64)
	}),
	Message: func(cfg Config) string {
		return fmt.Sprintf("must be at least %v", cfg.Compiled())
	},
	TranslationKey: "validation.min",
}

var Maximum = Definition{
	Name:     "maximum",
	Prepare:  prepareFloat,
	ParamKey: "max",
	Check: CheckFunc(func(value any, cfg Config) bool {
		if IsEmpty(value) {
			return true
		}
		n, ok := Number(value)
		return ok && n <= cfg.Compiled().(float64)
	}),
	Message: func(cfg Config) string {
		return fmt.Sprintf("must be at most %v", cfg.Compiled())
	},
	TranslationKey: "validation.max",
}

// Range takes [min, max] like jQuery Validation's range.
var Range = Definition{
	Name:     "range",
	Prepare:  prepareRange,
	ParamKey: "range",
	Check: CheckFunc(func(value any, cfg Config) bool {
		if IsEmpty(value) {
			return true
		}
		bounds := cfg.Compiled().([2]float64)
		n, ok := Number(value)
		return ok && n >= bounds[0] && n <= bounds[1]
	}),
	Message: func(cfg Config) string {
		bounds := cfg.Compiled().([2]float64)
		return fmt.Sprintf("must be between %v and %v", bounds[0], bounds[1])
	},
	TranslationKey: "validation.between",
}
