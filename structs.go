package schematic

import (
	"fmt"
	"reflect"
	"strings"
)

// ResolveStructKey resolves a struct field's external mapping key.
// Priority: schematic:"name=..." > json tag name > field name; "-" disables
// the field.
func ResolveStructKey(sf reflect.StructField) string {
	if st := sf.Tag.Get("schematic"); st != "" {
		for _, p := range strings.Split(st, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// Record wraps the keyed mapping engine around the struct type T: input may
// be a struct (unpacked to a mapping first) or a plain mapping, and the
// converted mapping is repacked into T unless AsMap is set. On failure the
// composite error carries the original untouched input as its bad value.
func Record[T any](fields map[string]any, opts ...Option) *RecordSchema {
	return RecordOf(reflect.TypeOf((*T)(nil)).Elem(), fields, opts...)
}

// RecordOf is Record for a reflect.Type known only at runtime.
func RecordOf(typ reflect.Type, fields map[string]any, opts ...Option) *RecordSchema {
	s := &RecordSchema{base: newBase(opts), typ: typ}
	var dictOpts []Option
	if s.opt.ignoreRest {
		dictOpts = append(dictOpts, IgnoreRest())
	}
	s.dict = Dict(fields, dictOpts...)
	return s
}

// RecordSchema is the fixed-arity named-record variant.
type RecordSchema struct {
	base
	typ  reflect.Type
	dict *DictSchema
}

func (s *RecordSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *RecordSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *RecordSchema) convert(v any, p Path) (any, error) {
	m, ok := recordToMap(v)
	if !ok {
		return nil, invalidValueAt(p, CodeInvalidType, map[string]string{"want": "dict"}, v)
	}
	converted, err := s.dict.ConvertPath(m, p)
	if err != nil {
		// Diagnose against the caller's input, not the unpacked form.
		return nil, asComposite(err, p).WithValue(v)
	}
	result, ok := converted.(map[string]any)
	if !ok || s.opt.asMap {
		return converted, nil
	}

	out := reflect.New(s.typ).Elem()
	var agg *Invalid
	for i := 0; i < s.typ.NumField(); i++ {
		sf := s.typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		val, present := result[key]
		if !present {
			continue
		}
		if err := assignValue(out.Field(i), val); err != nil {
			if agg == nil {
				agg = (&Invalid{}).WithValue(v)
			}
			agg.Merge(invalidAt(p.Key(key), CodeInvalidType,
				map[string]string{"want": sf.Type.String()}))
		}
	}
	if agg != nil {
		return nil, agg
	}
	return out.Interface(), nil
}

// ConvertTyped converts through s and asserts the result to T.
func ConvertTyped[T any](s Schema, v any) (T, error) {
	var zero T
	out, err := s.Convert(v)
	if err != nil {
		return zero, err
	}
	t, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("schematic: converted value is %T, not %T", out, zero)
	}
	return t, nil
}

// recordToMap unpacks a struct (or pointer to struct) into a mapping; map
// input passes through mapEntries normalization.
func recordToMap(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		t := rv.Type()
		m := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			key := ResolveStructKey(sf)
			if key == "-" {
				continue
			}
			m[key] = rv.Field(i).Interface()
		}
		return m, true
	}
	entries, ok := mapEntries(rv.Interface())
	if !ok {
		return nil, false
	}
	m := make(map[string]any, len(entries))
	for _, e := range entries {
		m[fmt.Sprint(e.key)] = e.val
	}
	return m, true
}

// assignValue stores a converted value into a struct field, bridging the
// engine's scalar representations (int64, float64, []any, map[string]any)
// to the field's declared type.
func assignValue(dst reflect.Value, v any) error {
	if v == nil {
		dst.SetZero()
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f, ok := toFloat(v); ok {
			dst.SetInt(int64(f))
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f, ok := toFloat(v); ok && f >= 0 {
			dst.SetUint(uint64(f))
			return nil
		}
	case reflect.Float32, reflect.Float64:
		if f, ok := toFloat(v); ok {
			dst.SetFloat(f)
			return nil
		}
	case reflect.String:
		if b, ok := v.([]byte); ok {
			dst.SetString(string(b))
			return nil
		}
	case reflect.Bool:
		if b, ok := v.(bool); ok {
			dst.SetBool(b)
			return nil
		}
	case reflect.Struct:
		if m, ok := v.(map[string]any); ok {
			t := dst.Type()
			for i := 0; i < t.NumField(); i++ {
				sf := t.Field(i)
				if !sf.IsExported() {
					continue
				}
				key := ResolveStructKey(sf)
				if key == "-" {
					continue
				}
				if val, present := m[key]; present {
					if err := assignValue(dst.Field(i), val); err != nil {
						return err
					}
				}
			}
			return nil
		}
	case reflect.Slice:
		if elems, ok := v.([]any); ok {
			out := reflect.MakeSlice(dst.Type(), len(elems), len(elems))
			for i, el := range elems {
				if err := assignValue(out.Index(i), el); err != nil {
					return err
				}
			}
			dst.Set(out)
			return nil
		}
	case reflect.Array:
		if elems, ok := v.([]any); ok && len(elems) == dst.Len() {
			for i, el := range elems {
				if err := assignValue(dst.Index(i), el); err != nil {
					return err
				}
			}
			return nil
		}
	case reflect.Map:
		if rv.Kind() == reflect.Map {
			out := reflect.MakeMapWithSize(dst.Type(), rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				k := reflect.New(dst.Type().Key()).Elem()
				if err := assignValue(k, iter.Key().Interface()); err != nil {
					return err
				}
				val := reflect.New(dst.Type().Elem()).Elem()
				if err := assignValue(val, iter.Value().Interface()); err != nil {
					return err
				}
				out.SetMapIndex(k, val)
			}
			dst.Set(out)
			return nil
		}
	case reflect.Pointer:
		ptr := reflect.New(dst.Type().Elem())
		if err := assignValue(ptr.Elem(), v); err != nil {
			return err
		}
		dst.Set(ptr)
		return nil
	}
	// Interface fields land here too: the assignability check above already
	// covered implementations, so anything else must not Set and panic.
	return fmt.Errorf("schematic: cannot assign %T to %s", v, dst.Type())
}
