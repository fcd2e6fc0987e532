package validator

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Config is the configuration of one check as written in a schema, e.g. the 15
// in `maxLength: 15` or the list in `enum: [FRA, CZE]`. Prepare functions may
// attach a compiled form (a regexp, a parsed list) next to the raw value.
type Config struct {
	raw      any
	compiled any
}

func NewConfig(raw any) Config {
	return Config{raw: raw}
}

// WithCompiled returns a copy of c carrying a precompiled representation.
func (c Config) WithCompiled(v any) Config {
	c.compiled = v
	return c
}

func (c Config) Raw() any      { return c.raw }
func (c Config) Compiled() any { return c.compiled }
func (c Config) IsZero() bool  { return c.raw == nil }

// Bool accepts booleans and their string forms ("true", "false").
func (c Config) Bool() (bool, error) {
	switch v := c.raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", c.raw)
	}
}

// Int accepts integers, whole floats (as decoded from JSON) and numeric strings.
func (c Config) Int() (int, error) {
	f, err := c.Float()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	return int(f), nil
}

func (c Config) Float() (float64, error) {
	if f, ok := toFloat(c.raw); ok {
		return f, nil
	}
	return 0, fmt.Errorf("expected number, got %T", c.raw)
}

// Text accepts strings only.
func (c Config) Text() (string, error) {
	s, ok := c.raw.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", c.raw)
	}
	return s, nil
}

// List accepts any slice or array.
func (c Config) List() ([]any, error) {
	if l, ok := c.raw.([]any); ok {
		return l, nil
	}
	rv := reflect.ValueOf(c.raw)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("expected list, got %T", c.raw)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// Range accepts a two element numeric list, as used by range and rangelength.
func (c Config) Range() (lo, hi float64, err error) {
	l, err := c.List()
	if err != nil {
		return 0, 0, err
	}
	if len(l) != 2 {
		return 0, 0, fmt.Errorf("expected [min, max], got %d elements", len(l))
	}
	lo, okLo := toFloat(l[0])
	hi, okHi := toFloat(l[1])
	if !okLo || !okHi {
		return 0, 0, fmt.Errorf("expected numeric bounds, got %v", l)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("min %v is greater than max %v", lo, hi)
	}
	return lo, hi, nil
}

func prepareBool(raw any) (Config, error) {
	b, err := NewConfig(raw).Bool()
	if err != nil {
		return Config{}, err
	}
	return NewConfig(raw).WithCompiled(b), nil
}

func prepareNonNegativeInt(raw any) (Config, error) {
	n, err := NewConfig(raw).Int()
	if err != nil {
		return Config{}, err
	}
	if n < 0 {
		return Config{}, fmt.Errorf("must not be negative, got %d", n)
	}
	return NewConfig(n).WithCompiled(n), nil
}

func prepareFloat(raw any) (Config, error) {
	f, err := NewConfig(raw).Float()
	if err != nil {
		return Config{}, err
	}
	return NewConfig(raw).WithCompiled(f), nil
}

func prepareRange(raw any) (Config, error) {
	lo, hi, err := NewConfig(raw).Range()
	if err != nil {
		return Config{}, err
	}
	return NewConfig(raw).WithCompiled([2]float64{lo, hi}), nil
}

func prepareList(raw any) (Config, error) {
	l, err := NewConfig(raw).List()
	if err != nil {
		return Config{}, err
	}
	if len(l) == 0 {
		return Config{}, fmt.Errorf("list must not be empty")
	}
	return NewConfig(l).WithCompiled(l), nil
}

func prepareRegexp(raw any) (Config, error) {
	pattern, err := NewConfig(raw).Text()
	if err != nil {
		return Config{}, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Config{}, err
	}
	return NewConfig(raw).WithCompiled(re), nil
}

func prepareText(raw any) (Config, error) {
	s, err := NewConfig(raw).Text()
	if err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(s) == "" {
		return Config{}, fmt.Errorf("must not be empty")
	}
	return NewConfig(s).WithCompiled(s), nil
}

// enabled reads a prepared boolean flag; checks configured with false always pass.
func enabled(cfg Config) bool {
	b, _ := cfg.Compiled().(bool)
	return b
}
