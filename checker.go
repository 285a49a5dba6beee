package schematic

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Checker is a single constraint attached to a schema node, evaluated after
// type conversion. A nil result means the value passed.
//
// Checkers must be side-effect-free: a schema tree is reused concurrently
// and bound producers are re-invoked on every check.
type Checker interface {
	Check(v any, p Path) *Invalid
}

// CheckerFunc adapts a plain function into a Checker.
type CheckerFunc func(v any, p Path) *Invalid

func (f CheckerFunc) Check(v any, p Path) *Invalid { return f(v, p) }

// MinLength requires the converted value to have at least n elements
// (runes, for text).
func MinLength(n int) Checker { return minLength{n: n} }

// MinLengthFunc is MinLength with a bound re-resolved on every check.
func MinLengthFunc(f func() int) Checker { return minLength{f: f} }

type minLength struct {
	n int
	f func() int
}

func (c minLength) Check(v any, p Path) *Invalid {
	n := c.n
	if c.f != nil {
		n = c.f()
	}
	l, ok := lengthOf(v)
	if !ok || l >= n {
		return nil
	}
	return invalidValueAt(p, CodeTooShort, map[string]string{
		"min": strconv.Itoa(n), "len": strconv.Itoa(l),
	}, v)
}

// MaxLength requires the converted value to have at most n elements
// (runes, for text).
func MaxLength(n int) Checker { return maxLength{n: n} }

// MaxLengthFunc is MaxLength with a bound re-resolved on every check.
func MaxLengthFunc(f func() int) Checker { return maxLength{f: f} }

type maxLength struct {
	n int
	f func() int
}

func (c maxLength) Check(v any, p Path) *Invalid {
	n := c.n
	if c.f != nil {
		n = c.f()
	}
	l, ok := lengthOf(v)
	if !ok || l <= n {
		return nil
	}
	return invalidValueAt(p, CodeTooLong, map[string]string{
		"max": strconv.Itoa(n), "len": strconv.Itoa(l),
	}, v)
}

// MinValue requires the converted value to be at least min.
func MinValue(min any) Checker { return minValue{v: min} }

// MinValueFunc is MinValue with a bound re-resolved on every check.
func MinValueFunc(f func() any) Checker { return minValue{f: f} }

type minValue struct {
	v any
	f func() any
}

func (c minValue) Check(v any, p Path) *Invalid {
	bound := c.v
	if c.f != nil {
		bound = c.f()
	}
	cmp, ok := compareValues(v, bound)
	if !ok || cmp >= 0 {
		return nil
	}
	return invalidValueAt(p, CodeTooSmall, map[string]string{"min": fmt.Sprint(bound)}, v)
}

// MaxValue requires the converted value to be at most max.
func MaxValue(max any) Checker { return maxValue{v: max} }

// MaxValueFunc is MaxValue with a bound re-resolved on every check.
func MaxValueFunc(f func() any) Checker { return maxValue{f: f} }

type maxValue struct {
	v any
	f func() any
}

func (c maxValue) Check(v any, p Path) *Invalid {
	bound := c.v
	if c.f != nil {
		bound = c.f()
	}
	cmp, ok := compareValues(v, bound)
	if !ok || cmp <= 0 {
		return nil
	}
	return invalidValueAt(p, CodeTooBig, map[string]string{"max": fmt.Sprint(bound)}, v)
}

// Equals requires strict equality with want (numeric values compare across
// int/float representations).
func Equals(want any) Checker { return equals{v: want} }

// EqualsFunc is Equals with the expected value re-resolved on every check.
func EqualsFunc(f func() any) Checker { return equals{f: f} }

type equals struct {
	v any
	f func() any
}

func (c equals) Check(v any, p Path) *Invalid {
	want := c.v
	if c.f != nil {
		want = c.f()
	}
	if looseEqual(v, want) {
		return nil
	}
	return invalidValueAt(p, CodeNotEqual, map[string]string{"want": fmt.Sprintf("%#v", want)}, v)
}

// In requires membership in the fixed choice collection.
func In(choices ...any) Checker {
	return inChecker{choices: append([]any(nil), choices...)}
}

type inChecker struct{ choices []any }

func (c inChecker) Check(v any, p Path) *Invalid {
	for _, choice := range c.choices {
		if looseEqual(v, choice) {
			return nil
		}
	}
	reprs := make([]string, len(c.choices))
	for i, choice := range c.choices {
		reprs[i] = fmt.Sprintf("%#v", choice)
	}
	return invalidValueAt(p, CodeInvalidEnum, map[string]string{
		"choices": strings.Join(reprs, ", "),
	}, v)
}

// ---- value helpers ----

// lengthOf measures text in runes and containers via reflection. The second
// result is false for values without a length.
func lengthOf(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// compareValues orders two values: numerics compare across int/uint/float
// representations, strings lexicographically, time.Time chronologically.
// The second result is false for unordered pairs.
func compareValues(a, b any) (int, bool) {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			}
			return 0, true
		}
		return 0, false
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs), true
		}
		return 0, false
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			switch {
			case at.Before(bt):
				return -1, true
			case at.After(bt):
				return 1, true
			}
			return 0, true
		}
	}
	return 0, false
}

// looseEqual is equality with numeric values compared by magnitude across
// int/uint/float representations; everything else falls back to DeepEqual.
func looseEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
