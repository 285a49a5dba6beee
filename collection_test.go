package schematic_test

import (
	"reflect"
	"testing"

	schematic "github.com/schematic-go/schematic"
)

func TestList_Homogeneous(t *testing.T) {
	person := personSchema()
	list := schematic.List(person)
	v, err := list.Convert([]any{
		map[string]any{"name": "Albert Fuller", "age": 9},
		map[string]any{"name": "Albert Fuller", "age": "9"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := map[string]any{"name": "Albert Fuller", "age": int64(9)}
	got := v.([]any)
	if len(got) != 2 || !reflect.DeepEqual(got[0], want) || !reflect.DeepEqual(got[1], want) {
		t.Fatalf("want two converted persons, got %v", got)
	}
}

func TestList_CollectsAllIndices(t *testing.T) {
	list := schematic.List(schematic.Int())
	_, err := list.Convert([]any{"x", 2, "y"})
	inv, ok := schematic.AsInvalid(err)
	if !ok || inv.Len() != 2 {
		t.Fatalf("want failures at both bad indices, got %v", err)
	}
	flat := inv.Flatten()
	if len(flat["0"]) == 0 || len(flat["2"]) == 0 {
		t.Fatalf("want paths 0 and 2, got %v", flat)
	}
}

func TestList_RejectsText(t *testing.T) {
	_, err := schematic.List(schematic.Int()).Convert("123")
	inv, ok := schematic.AsInvalid(err)
	if !ok || inv.Issues()[0].Code != schematic.CodeInvalidType {
		t.Fatalf("text must not iterate as a collection, got %v", err)
	}
}

func TestFixedTuple_Arity(t *testing.T) {
	ordered := schematic.FixedTuple([]schematic.Schema{schematic.Int(), schematic.Bool()})
	v, err := ordered.Convert([]any{1.1, 45.1})
	if err != nil {
		t.Fatalf("tuple: %v", err)
	}
	if !reflect.DeepEqual(v, []any{int64(1), true}) {
		t.Fatalf("want [1 true], got %v", v)
	}

	_, err = ordered.Convert([]any{1})
	inv, ok := schematic.AsInvalid(err)
	if !ok || inv.Len() != 1 {
		t.Fatalf("length mismatch reports alone, got %v", err)
	}
	if inv.Issues()[0].Code != schematic.CodeInvalidType {
		t.Fatalf("want invalid_type for arity, got %v", inv)
	}
}

func TestFixedList_IgnoreRestTrims(t *testing.T) {
	schema := schematic.FixedList(
		[]schematic.Schema{schematic.Int(), schematic.String()},
		schematic.IgnoreRest(),
	)
	v, err := schema.Convert([]any{1, "a", 2})
	if err != nil || !reflect.DeepEqual(v, []any{int64(1), "a"}) {
		t.Fatalf("want trimmed [1 a], got v=%v err=%v", v, err)
	}

	strict := schematic.FixedList([]schematic.Schema{schematic.Int(), schematic.String()})
	if _, err := strict.Convert([]any{1, "a", 2}); err == nil {
		t.Fatalf("without IgnoreRest the extra element must fail")
	}
}

func TestSet_Dedup(t *testing.T) {
	intSet := schematic.Set(schematic.Int())
	v, err := intSet.Convert([]any{1.1, 45.1, 45})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	got := v.(map[any]struct{})
	if len(got) != 2 {
		t.Fatalf("want {1 45}, got %v", got)
	}
	for _, want := range []int64{1, 45} {
		if _, ok := got[want]; !ok {
			t.Fatalf("missing %d in %v", want, got)
		}
	}
}

func TestSet_RoundTrip(t *testing.T) {
	intSet := schematic.Set(schematic.Int())
	first, err := intSet.Convert([]any{1.1, 45.1, 45})
	if err != nil {
		t.Fatalf("first convert: %v", err)
	}
	second, err := intSet.Convert(first)
	if err != nil {
		t.Fatalf("re-converting the set's own output: %v", err)
	}
	if !reflect.DeepEqual(second, first) {
		t.Fatalf("want %v again, got %v", first, second)
	}
}

func TestCollection_GoSliceInput(t *testing.T) {
	v, err := schematic.List(schematic.Int()).Convert([]int{1, 2, 3})
	if err != nil || !reflect.DeepEqual(v, []any{int64(1), int64(2), int64(3)}) {
		t.Fatalf("typed slice input: v=%v err=%v", v, err)
	}
}

func TestTuple_Homogeneous(t *testing.T) {
	v, err := schematic.Tuple(schematic.Int()).Convert([]any{1.1, 45.1})
	if err != nil || !reflect.DeepEqual(v, []any{int64(1), int64(45)}) {
		t.Fatalf("homogeneous tuple: v=%v err=%v", v, err)
	}
}
