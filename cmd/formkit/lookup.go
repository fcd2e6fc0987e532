package main

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// loadStaticLookup reads a JSON or YAML file mapping set names to lists of
// members:
//
//	countries: [CZE, FRA, USA]
func loadStaticLookup(ctx context.Context, path string) (*validator.StaticLookup, error) {
	doc, err := schema.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("lookup file: %w", err)
	}

	sets := make(map[string][]string, len(doc))
	for _, name := range schema.Keys(doc) {
		members, err := validator.NewConfig(doc[name]).List()
		if err != nil {
			return nil, fmt.Errorf("lookup file %s: set %q: %w", path, name, err)
		}
		values := make([]string, 0, len(members))
		for _, m := range members {
			s, ok := validator.Text(m)
			if !ok {
				return nil, fmt.Errorf("lookup file %s: set %q: member %v is not a scalar", path, name, m)
			}
			values = append(values, s)
		}
		sets[name] = values
	}
	return validator.NewStaticLookup(sets), nil
}
