package validator

import (
	"fmt"
	"slices"
)

// Enum requires the value to be one of the configured values. Values are
// compared by their textual form, so 1 and "1" match.
var Enum = Definition{
	Name:     "enum",
	Prepare:  prepareEnum,
	ParamKey: "values",
	Check: CheckFunc(func(value any, cfg Config) bool {
		if IsEmpty(value) {
			return true
		}
		s, ok := Text(value)
		if !ok {
			return false
		}
		return slices.Contains(cfg.Compiled().([]string), s)
	}),
	Message: func(cfg Config) string {
		return fmt.Sprintf("must be one of: %v", cfg.Compiled())
	},
	TranslationKey: "validation.in_list",
}

func prepareEnum(raw any) (Config, error) {
	listCfg, err := prepareList(raw)
	if err != nil {
		return Config{}, err
	}

	list := listCfg.Compiled().([]any)
	allowed := make([]string, 0, len(list))
	for _, v := range list {
		s, ok := Text(v)
		if !ok {
			return Config{}, fmt.Errorf("enum values must be scalars, got %T", v)
		}
		allowed = append(allowed, s)
	}
	return NewConfig(list).WithCompiled(allowed), nil
}
