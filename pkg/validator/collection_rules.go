package validator

import "fmt"

// MinItems and MaxItems are evaluated by the engine against the number of items
// of a collection; the value they receive is that count.

var MinItems = Definition{
	Name:     "minItems",
	Prepare:  prepareNonNegativeInt,
	ParamKey: "min",
	Check: CheckFunc(func(value any, cfg Config) bool {
		n, ok := value.(int)
		return ok && n >= cfg.Compiled().(int)
	}),
	Message: func(cfg Config) string {
		return fmt.Sprintf("must have at least %d items", cfg.Compiled())
	},
	TranslationKey: "validation.min_items",
}

var MaxItems = Definition{
	Name:     "maxItems",
	Prepare:  prepareNonNegativeInt,
	ParamKey: "max",
	Check: CheckFunc(func(value any, cfg Config) bool {
		n, ok := value.(int)
		return ok && n <= cfg.Compiled().(int)
	}),
	Message: func(cfg Config) string {
		return fmt.Sprintf("must have at most %d items", cfg.Compiled())
	},
	TranslationKey: "validation.max_items",
}
