package schematic

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Lit marks a keyed-Dict entry as a required literal: the input value at
// that key must equal it exactly.
type Lit struct{ Value any }

// Literal wraps a fixed value for use as a keyed-Dict entry.
func Literal(v any) Lit { return Lit{Value: v} }

// dictField is a declared key resolved at construction into either a nested
// schema or a required literal.
type dictField struct {
	key     string
	schema  Schema
	literal any
	isLit   bool
}

// Dict converts a mapping against a fixed set of declared keys. Each entry
// of fields is either a Schema or a literal value (optionally wrapped in
// Literal) the input must match exactly. Undeclared input keys fail with
// unknown_key unless IgnoreRest is set. With nil fields the input mapping is
// copied through untouched.
func Dict(fields map[string]any, opts ...Option) *DictSchema {
	s := &DictSchema{base: newBase(opts)}
	if fields == nil {
		return s
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch fv := fields[k].(type) {
		case Schema:
			s.fields = append(s.fields, dictField{key: k, schema: fv})
		case Lit:
			s.fields = append(s.fields, dictField{key: k, literal: fv.Value, isLit: true})
		default:
			s.fields = append(s.fields, dictField{key: k, literal: fv, isLit: true})
		}
	}
	s.keyed = true
	return s
}

// DictOf converts every entry of the input mapping independently against one
// key schema and one value schema; any keys are accepted.
func DictOf(key, value Schema, opts ...Option) *DictSchema {
	return &DictSchema{base: newBase(opts), keySchema: key, valSchema: value}
}

// DictSchema is the mapping variant, in keyed or homogeneous mode.
type DictSchema struct {
	base
	keyed     bool
	fields    []dictField
	keySchema Schema
	valSchema Schema
}

func (s *DictSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *DictSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *DictSchema) convert(v any, p Path) (any, error) {
	entries, ok := mapEntries(v)
	if !ok {
		return nil, invalidValueAt(p, CodeInvalidType, map[string]string{"want": "dict"}, v)
	}
	if s.keySchema != nil {
		return s.convertHomogeneous(entries, v, p)
	}
	if !s.keyed {
		out := make(map[string]any, len(entries))
		for _, e := range entries {
			out[fmt.Sprint(e.key)] = e.val
		}
		return out, nil
	}
	return s.convertKeyed(entries, v, p)
}

// convertKeyed walks the declared keys; every per-key failure is collected
// so one pass reports the complete set.
func (s *DictSchema) convertKeyed(entries []mapEntry, v any, p Path) (any, error) {
	input := make(map[string]any, len(entries))
	for _, e := range entries {
		input[fmt.Sprint(e.key)] = e.val
	}

	result := make(map[string]any, len(s.fields))
	seen := make(map[string]bool, len(s.fields))
	var children []*Invalid
	for _, f := range s.fields {
		val, present := input[f.key]
		if f.isLit {
			seen[f.key] = true
			if !present || !looseEqual(val, f.literal) {
				children = append(children, invalidAt(p.Key(f.key), CodeNotEqual,
					map[string]string{"want": fmt.Sprintf("%#v", f.literal)}))
				continue
			}
			result[f.key] = val
			continue
		}
		fo := f.schema.options()
		if fo.optional && !present {
			continue
		}
		seen[f.key] = true
		if !present {
			if fo.hasAnyDefault() {
				dv, _ := fo.resolveDefault(p.Key(f.key))
				result[f.key] = dv
				continue
			}
			children = append(children, invalidAt(p.Key(f.key), CodeMissingEntry,
				map[string]string{"key": f.key}))
			continue
		}
		out, err := f.schema.ConvertPath(val, p.Key(f.key))
		if err != nil {
			children = append(children, asComposite(err, p.Key(f.key)))
			continue
		}
		result[f.key] = out
	}

	var agg *Invalid
	if !s.opt.ignoreRest {
		var extras []string
		for _, e := range entries {
			if k := fmt.Sprint(e.key); !seen[k] {
				extras = append(extras, k)
			}
		}
		if len(extras) > 0 {
			sort.Strings(extras)
			agg = invalidValueAt(p, CodeUnknownKey,
				map[string]string{"keys": strings.Join(extras, ", ")}, v)
		}
	}
	if len(children) > 0 {
		if agg == nil {
			agg = (&Invalid{}).WithValue(v)
		}
		agg.Merge(children...)
	}
	if agg != nil {
		return nil, agg
	}
	return result, nil
}

// convertHomogeneous converts keys and values independently; both sides of
// every entry are attempted before raising.
func (s *DictSchema) convertHomogeneous(entries []mapEntry, v any, p Path) (any, error) {
	result := make(map[any]any, len(entries))
	var children []*Invalid
	for _, e := range entries {
		ep := p.Key(fmt.Sprint(e.key))
		key, kerr := s.keySchema.ConvertPath(e.key, ep)
		if kerr != nil {
			children = append(children, asComposite(kerr, ep))
		}
		val, verr := s.valSchema.ConvertPath(e.val, ep)
		if verr != nil {
			children = append(children, asComposite(verr, ep))
		}
		if kerr == nil && verr == nil {
			result[key] = val
		}
	}
	if len(children) > 0 {
		agg := (&Invalid{}).WithValue(v)
		agg.Merge(children...)
		return nil, agg
	}
	return result, nil
}

// ---- mapping extraction ----

type mapEntry struct {
	key any
	val any
}

// mapEntries accepts any map value and returns its entries ordered by the
// rendered key, so error aggregation is deterministic.
func mapEntries(v any) ([]mapEntry, bool) {
	switch m := v.(type) {
	case map[string]any:
		out := make([]mapEntry, 0, len(m))
		for k, val := range m {
			out = append(out, mapEntry{key: k, val: val})
		}
		sortEntries(out)
		return out, true
	case map[any]any:
		out := make([]mapEntry, 0, len(m))
		for k, val := range m {
			out = append(out, mapEntry{key: k, val: val})
		}
		sortEntries(out)
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make([]mapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out = append(out, mapEntry{key: iter.Key().Interface(), val: iter.Value().Interface()})
	}
	sortEntries(out)
	return out, true
}

func sortEntries(entries []mapEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return fmt.Sprint(entries[i].key) < fmt.Sprint(entries[j].key)
	})
}

// asComposite coerces any child error into an *Invalid so it can be merged.
func asComposite(err error, p Path) *Invalid {
	if inv, ok := AsInvalid(err); ok {
		return inv
	}
	return &Invalid{issues: []Issue{{Path: p.String(), Code: CodeInvalidType, Message: err.Error()}}}
}
