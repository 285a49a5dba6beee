package schematic

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// List converts every element of the input against one element schema and
// preserves order and duplicates.
func List(elem Schema, opts ...Option) *ListSchema {
	return &ListSchema{base: newBase(opts), elem: elem}
}

// FixedList is List with one schema per position and the arity enforced.
func FixedList(elems []Schema, opts ...Option) *ListSchema {
	return &ListSchema{base: newBase(opts), elems: elems, fixed: true}
}

// ListSchema is the ordered-collection variant.
type ListSchema struct {
	base
	elem  Schema
	elems []Schema
	fixed bool
}

func (s *ListSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *ListSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *ListSchema) convert(v any, p Path) (any, error) {
	out, inv := convertElements(&s.opt, s.elem, s.elems, s.fixed, v, p, "list")
	if inv != nil {
		return nil, inv
	}
	return out, nil
}

// Tuple converts every element against one element schema into a fixed
// []any snapshot.
func Tuple(elem Schema, opts ...Option) *TupleSchema {
	return &TupleSchema{base: newBase(opts), elem: elem}
}

// FixedTuple is Tuple with one schema per position and the arity enforced.
func FixedTuple(elems []Schema, opts ...Option) *TupleSchema {
	return &TupleSchema{base: newBase(opts), elems: elems, fixed: true}
}

// TupleSchema is the fixed-arity collection variant.
type TupleSchema struct {
	base
	elem  Schema
	elems []Schema
	fixed bool
}

func (s *TupleSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *TupleSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *TupleSchema) convert(v any, p Path) (any, error) {
	out, inv := convertElements(&s.opt, s.elem, s.elems, s.fixed, v, p, "tuple")
	if inv != nil {
		return nil, inv
	}
	return out, nil
}

// Set converts every element against one element schema, deduplicates, and
// returns an unordered map[any]struct{}.
func Set(elem Schema, opts ...Option) *SetSchema {
	return &SetSchema{base: newBase(opts), elem: elem}
}

// FixedSet is Set with one schema per position and the arity enforced.
func FixedSet(elems []Schema, opts ...Option) *SetSchema {
	return &SetSchema{base: newBase(opts), elems: elems, fixed: true}
}

// SetSchema is the deduplicating collection variant. Converted elements must
// be comparable Go values.
type SetSchema struct {
	base
	elem  Schema
	elems []Schema
	fixed bool
}

func (s *SetSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *SetSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *SetSchema) convert(v any, p Path) (any, error) {
	converted, inv := convertElements(&s.opt, s.elem, s.elems, s.fixed, v, p, "set")
	if inv != nil {
		return nil, inv
	}
	result := make(map[any]struct{}, len(converted))
	var agg *Invalid
	for i, el := range converted {
		if el != nil && !reflect.TypeOf(el).Comparable() {
			if agg == nil {
				agg = (&Invalid{}).WithValue(v)
			}
			agg.Merge(invalidValueAt(p.Index(i), CodeInvalidType,
				map[string]string{"want": "hashable value"}, el))
			continue
		}
		result[el] = struct{}{}
	}
	if agg != nil {
		return nil, agg
	}
	return result, nil
}

// convertElements is the shared engine behind List/Tuple/Set. Text input is
// rejected even though it is iterable: silently iterating characters is
// never what a form meant.
func convertElements(o *options, elem Schema, elems []Schema, fixed bool, v any, p Path, want string) ([]any, *Invalid) {
	in, ok := elementsOf(v)
	if !ok {
		return nil, invalidValueAt(p, CodeInvalidType, map[string]string{"want": want}, v)
	}

	if fixed {
		if o.ignoreRest && len(in) > len(elems) {
			in = in[:len(elems)]
		}
		if len(in) != len(elems) {
			// A length mismatch reports alone; element conversion is skipped.
			return nil, invalidValueAt(p, CodeInvalidType,
				map[string]string{"entries": strconv.Itoa(len(elems))}, v)
		}
		result := make([]any, 0, len(in))
		var children []*Invalid
		for i, sub := range in {
			out, err := elems[i].ConvertPath(sub, p.Index(i))
			if err != nil {
				children = append(children, asComposite(err, p.Index(i)))
				continue
			}
			result = append(result, out)
		}
		if len(children) > 0 {
			agg := (&Invalid{}).WithValue(v)
			agg.Merge(children...)
			return nil, agg
		}
		return result, nil
	}

	result := make([]any, 0, len(in))
	var children []*Invalid
	for i, sub := range in {
		out, err := elem.ConvertPath(sub, p.Index(i))
		if err != nil {
			children = append(children, asComposite(err, p.Index(i)))
			continue
		}
		result = append(result, out)
	}
	if len(children) > 0 {
		agg := (&Invalid{}).WithValue(v)
		agg.Merge(children...)
		return nil, agg
	}
	return result, nil
}

var emptyStructType = reflect.TypeOf(struct{}{})

// elementsOf accepts any slice or array except text and raw bytes. A
// set-shaped map (struct{} elements) enumerates its keys, so a converted
// set re-converts through its own output.
func elementsOf(v any) ([]any, bool) {
	switch v.(type) {
	case string, []byte:
		return nil, false
	case []any:
		in := v.([]any)
		out := make([]any, len(in))
		copy(out, in)
		return out, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	case reflect.Map:
		if rv.Type().Elem() != emptyStructType {
			return nil, false
		}
		out := make([]any, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out = append(out, iter.Key().Interface())
		}
		// Map iteration order is random; render-sort so error paths stay
		// deterministic.
		sort.Slice(out, func(i, j int) bool {
			return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
		})
		return out, true
	default:
		return nil, false
	}
}
