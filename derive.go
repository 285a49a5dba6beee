package schematic

import (
	"fmt"
	"reflect"
	"time"
)

// Any passes any present value through unchanged. Null/default handling and
// attached checkers still apply.
func Any(opts ...Option) *AnySchema {
	return &AnySchema{base: newBase(opts)}
}

// AnySchema is the pass-through variant.
type AnySchema struct{ base }

func (s *AnySchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *AnySchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *AnySchema) convert(v any, p Path) (any, error) { return v, nil }

// Derive builds a schema tree from the Go type T: pointers derive their
// element schema with Null set, maps derive a homogeneous Dict, slices a
// List, fixed arrays a fixed-arity Tuple, structs a Record with each field's
// schema derived recursively, and leaves map through a fixed primitive
// table. Options apply to the root node; IgnoreRest also propagates to every
// derived record.
//
// Go has no structural union type, so OneOf schemas cannot be derived and
// stay hand-composed.
func Derive[T any](opts ...Option) (Schema, error) {
	return DeriveType(reflect.TypeOf((*T)(nil)).Elem(), opts...)
}

// DeriveType is Derive for a reflect.Type known only at runtime.
func DeriveType(t reflect.Type, opts ...Option) (Schema, error) {
	var probe options
	for _, o := range opts {
		o(&probe)
	}
	s, err := deriveType(t, probe.ignoreRest)
	if err != nil {
		return nil, err
	}
	for _, o := range opts {
		o(s.options())
	}
	return s, nil
}

var timeType = reflect.TypeOf(time.Time{})

func deriveType(t reflect.Type, ignoreRest bool) (Schema, error) {
	if t == timeType {
		return DateTime(), nil
	}
	switch t.Kind() {
	case reflect.Pointer:
		s, err := deriveType(t.Elem(), ignoreRest)
		if err != nil {
			return nil, err
		}
		s.options().null = true
		return s, nil
	case reflect.String:
		return String(), nil
	case reflect.Bool:
		return Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(), nil
	case reflect.Float32, reflect.Float64:
		return Float(), nil
	case reflect.Interface:
		return Any(), nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return Bytes(), nil
		}
		elem, err := deriveType(t.Elem(), ignoreRest)
		if err != nil {
			return nil, err
		}
		return List(elem), nil
	case reflect.Array:
		elems := make([]Schema, t.Len())
		for i := range elems {
			s, err := deriveType(t.Elem(), ignoreRest)
			if err != nil {
				return nil, err
			}
			elems[i] = s
		}
		return FixedTuple(elems), nil
	case reflect.Map:
		key, err := deriveType(t.Key(), ignoreRest)
		if err != nil {
			return nil, err
		}
		val, err := deriveType(t.Elem(), ignoreRest)
		if err != nil {
			return nil, err
		}
		return DictOf(key, val), nil
	case reflect.Struct:
		fields := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			key := ResolveStructKey(sf)
			if key == "-" {
				continue
			}
			fs, err := deriveType(sf.Type, ignoreRest)
			if err != nil {
				return nil, fmt.Errorf("schematic: field %s.%s: %w", t, sf.Name, err)
			}
			fields[key] = fs
		}
		var opts []Option
		if ignoreRest {
			opts = append(opts, IgnoreRest())
		}
		return RecordOf(t, fields, opts...), nil
	}
	return nil, fmt.Errorf("schematic: cannot derive a schema for %s", t)
}
