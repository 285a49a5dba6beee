package schematic

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// String coerces arbitrary input to text. Leading/trailing whitespace is
// trimmed unless KeepWhitespace is set; Blank permits an explicit empty
// result distinct from null/missing.
func String(opts ...Option) *StringSchema {
	return &StringSchema{base: newBase(opts)}
}

// StringSchema is the text variant.
type StringSchema struct{ base }

func (s *StringSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *StringSchema) ConvertPath(v any, p Path) (any, error) {
	if str, ok := v.(string); ok {
		if !s.opt.noStrip {
			str = strings.TrimSpace(str)
			v = str
		}
		if str == "" && s.opt.blank {
			return "", nil
		}
	}
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *StringSchema) convert(v any, p Path) (any, error) {
	return stringify(v), nil
}

// Bytes coerces input to a raw byte sequence. Text converts via UTF-8.
func Bytes(opts ...Option) *BytesSchema {
	return &BytesSchema{base: newBase(opts)}
}

// BytesSchema is the raw-bytes variant.
type BytesSchema struct{ base }

func (s *BytesSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *BytesSchema) ConvertPath(v any, p Path) (any, error) {
	if str, ok := v.(string); ok {
		if !s.opt.noStrip {
			str = strings.TrimSpace(str)
			v = str
		}
		if str == "" && s.opt.blank {
			return []byte{}, nil
		}
	}
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *BytesSchema) convert(v any, p Path) (any, error) {
	if b, ok := v.([]byte); ok {
		return b, nil
	}
	return []byte(stringify(v)), nil
}

// Int coerces numeric input to int64. Floats truncate toward zero; textual
// input must be a plain integer literal.
func Int(opts ...Option) *IntSchema {
	return &IntSchema{base: newBase(opts)}
}

// IntSchema is the integer variant.
type IntSchema struct{ base }

func (s *IntSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *IntSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *IntSchema) convert(v any, p Path) (any, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case bool:
		if n {
			return int64(1), nil
		}
		return int64(0), nil
	case json.Number:
		// JSON numbers carry no int/float distinction; truncate like a float.
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), nil
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, nil
		}
	}
	return nil, invalidValueAt(p, CodeNotAnInteger, nil, v)
}

// Float coerces numeric input to float64.
func Float(opts ...Option) *FloatSchema {
	return &FloatSchema{base: newBase(opts)}
}

// FloatSchema is the floating-point variant.
type FloatSchema struct{ base }

func (s *FloatSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *FloatSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *FloatSchema) convert(v any, p Path) (any, error) {
	switch n := v.(type) {
	case bool:
		if n {
			return float64(1), nil
		}
		return float64(0), nil
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, nil
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, nil
		}
	default:
		if f, ok := toFloat(v); ok {
			return f, nil
		}
	}
	return nil, invalidValueAt(p, CodeNotANumber, nil, v)
}

// Bool coerces input to a boolean. Textual "0"/"false" (case-insensitive)
// convert to false; any other value converts by truthiness.
func Bool(opts ...Option) *BoolSchema {
	return &BoolSchema{base: newBase(opts)}
}

// BoolSchema is the boolean variant.
type BoolSchema struct{ base }

func (s *BoolSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *BoolSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *BoolSchema) convert(v any, p Path) (any, error) {
	if str, ok := v.(string); ok {
		switch strings.ToLower(str) {
		case "0", "false":
			return false, nil
		}
		return true, nil
	}
	return truthy(v), nil
}

// ---- coercion helpers ----

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// truthy follows loose-input conventions: zero numbers and empty containers
// are false, everything else present is true.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case json.Number:
		f, err := b.Float64()
		return err != nil || f != 0
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
