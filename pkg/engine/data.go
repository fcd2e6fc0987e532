package engine

import (
	"reflect"
	"strings"
)

// property returns the value stored under name in a mapping-like value:
// map[string]any, any map with string keys, or a struct (by Go field name,
// then by json tag). Anything else behaves like an empty mapping.
func property(data any, name string) any {
	switch m := data.(type) {
	case nil:
		return nil
	case map[string]any:
		return m[name]
	}

	rv := indirect(reflect.ValueOf(data))
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	case reflect.Struct:
		return structField(rv, name)
	}
	return nil
}

// structField resolves name by Go field name, then by json tag. Promoted
// fields of embedded structs count; a field behind a nil embedded pointer is
// absent. For tags, the shallowest match wins, as in encoding/json.
func structField(rv reflect.Value, name string) any {
	rt := rv.Type()
	if f, ok := rt.FieldByName(name); ok && f.IsExported() {
		return fieldAt(rv, f.Index)
	}

	var match []int
	for _, f := range reflect.VisibleFields(rt) {
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name && (match == nil || len(f.Index) < len(match)) {
			match = f.Index
		}
	}
	if match == nil {
		return nil
	}
	return fieldAt(rv, match)
}

func fieldAt(rv reflect.Value, index []int) any {
	v, err := rv.FieldByIndexErr(index)
	if err != nil || !v.CanInterface() {
		return nil
	}
	return fieldValue(v)
}

func fieldValue(v reflect.Value) any {
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil
	}
	return v.Interface()
}

// sequence returns the elements of a slice or array. Strings and byte slices
// are scalars, not sequences; anything else has no elements.
func sequence(data any) []any {
	switch s := data.(type) {
	case nil, string, []byte:
		return nil
	case []any:
		return s
	case []map[string]any:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	}

	rv := indirect(reflect.ValueOf(data))
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = fieldValue(rv.Index(i))
	}
	return out
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}
