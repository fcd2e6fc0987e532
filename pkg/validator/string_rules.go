package validator

import "fmt"

// Required fails for missing values: nil, blank strings, empty slices and maps.
// Configured with false it always passes.
var Required = Definition{
	Name:    "required",
	Prepare: prepareBool,
	Check: CheckFunc(func(value any, cfg Config) bool {
		if !enabled(cfg) {
			return true
		}
		return !IsEmpty(value)
	}),
	Message:        func(Config) string { return "field is required" },
	TranslationKey: "validation.required",
}

var MinLength = Definition{
	Name:     "minLength",
	Prepare:  prepareNonNegativeInt,
	ParamKey: "min",
	Check: CheckFunc(func(value any, cfg Config) bool {
		if IsEmpty(value) {
			return true
		}
		n, ok := Length(value)
		return ok && n >= cfg.Compiled().(int)
	}),
	Message: func(cfg Config) string {
		return fmt.Sprintf("must be at least %d characters long", cfg.Compiled())
	},
	TranslationKey: "validation.min_length",
}

var MaxLength = Definition{
	Name:     "maxLength",
	Prepare:  prepareNonNegativeInt,
	ParamKey: "max",
	Check: CheckFunc(func(value any, cfg Config) bool {
		n, ok := Length(value)
		return ok && n <= cfg.Compiled().(int)
	}),
	Message: func(cfg Config) string {
		return fmt.Sprintf("must be at most %d characters long", cfg.Compiled())
	},
	TranslationKey: "validation.max_length",
}

// RangeLength takes [min, max] like jQuery Validation's rangelength.
var RangeLength = Definition{
	Name:     "rangeLength",
	Prepare:  prepareRange,
	ParamKey: "range",
	Check: CheckFunc(func(value any, cfg Config) bool {
		if IsEmpty(value) {
			return true
		}
		bounds := cfg.Compiled().([2]float64)
		n, ok := Length(value)
		return ok && float64(n) >= bounds[0] && float64(n) <= bounds[1]
	}),
	Message: func(cfg Config) string {
		bounds := cfg.Compiled().([2]float64)
		return fmt.Sprintf("must be between %v and %v characters long", bounds[0], bounds[1])
	},
	TranslationKey: "validation.range_length",
}
