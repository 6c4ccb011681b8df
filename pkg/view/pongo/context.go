package pongo

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/flosch/pongo2/v6"
)

// ToContext converts render data into a pongo2.Context.
//
// Maps keyed by strings are used as-is; structs (and pointers to them) are
// converted through their JSON representation so json tags name the template
// variables. Values nested inside maps are passed to pongo2 untouched.
func ToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	case map[string]string:
		out := make(pongo2.Context, len(v))
		for key, value := range v {
			out[key] = value
		}
		return out, nil
	}

	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return pongo2.Context{}, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("pongo: context map keys must be strings, got %s", rv.Type().Key())
		}
		out := make(pongo2.Context, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	case reflect.Struct:
		return jsonToContext(rv.Interface())
	default:
		return nil, fmt.Errorf("pongo: unsupported context type %T", data)
	}
}

func jsonToContext(v any) (pongo2.Context, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("pongo: convert context: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("pongo: convert context: %w", err)
	}
	return pongo2.Context(out), nil
}
