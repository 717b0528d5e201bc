package templating

import (
	"fmt"
	"reflect"
	"strings"
)

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// ValuesOf converts v into the map/list tree the engine walks. Struct
// fields are keyed by their JSON names and fmt.Stringer values are
// rendered with String(), so temperatures and status flags print the way
// documents show them.
func ValuesOf(v any) map[string]any {
	if m, ok := normalize(v).(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func normalize(v any) any {
	switch v.(type) {
	case nil:
		return nil
	case string:
		return v
	}
	return convert(reflect.ValueOf(v))
}

func convert(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface && rv.Type().Implements(stringerType) {
		return rv.Interface().(fmt.Stringer).String()
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return convert(rv.Elem())
	case reflect.Struct:
		out := map[string]any{}
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if !f.IsExported() {
				continue
			}
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			out[name] = convert(rv.Field(i))
		}
		return out
	case reflect.Map:
		out := map[string]any{}
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = convert(iter.Value())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = convert(rv.Index(i))
		}
		return out
	case reflect.String:
		return rv.String()
	}
	return rv.Interface()
}
