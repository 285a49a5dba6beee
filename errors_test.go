package schematic_test

import (
	"strings"
	"testing"

	schematic "github.com/schematic-go/schematic"
)

func badPersonError(t *testing.T) *schematic.Invalid {
	t.Helper()
	person := schematic.Dict(map[string]any{
		"name": schematic.String(),
		"age":  schematic.Int(),
		"age2": schematic.Int(schematic.Optional()),
	})
	_, err := person.Convert(map[string]any{
		"name": "Albert Fuller",
		"age":  nil,
		"age2": "hey",
	})
	inv, ok := schematic.AsInvalid(err)
	if !ok {
		t.Fatalf("expected *Invalid, got %v", err)
	}
	return inv
}

func TestInvalid_Flatten(t *testing.T) {
	inv := badPersonError(t)
	flat := inv.Flatten()
	if len(flat["age"]) == 0 {
		t.Fatalf("want messages under \"age\", got %v", flat)
	}
	if len(flat["age2"]) == 0 {
		t.Fatalf("want messages under \"age2\", got %v", flat)
	}
}

func TestInvalid_Filter(t *testing.T) {
	inv := badPersonError(t)
	required := inv.Filter(func(it schematic.Issue) bool {
		return it.Code == schematic.CodeRequired
	})
	if len(required) != 1 || required[0].Path != "age" {
		t.Fatalf("want one required issue at age, got %v", required)
	}
}

func TestInvalid_Merge(t *testing.T) {
	agg := &schematic.Invalid{}
	agg.Add(schematic.Issue{Path: "a", Code: schematic.CodeRequired, Message: "first"})
	child := &schematic.Invalid{}
	child.Add(schematic.Issue{Path: "a", Code: schematic.CodeRequired, Message: "second"})
	child.Add(schematic.Issue{Path: "b", Code: schematic.CodeRequired, Message: "third"})
	agg.Merge(child, nil)

	if agg.Len() != 3 {
		t.Fatalf("want 3 leaves after merge, got %d", agg.Len())
	}
	if msgs := agg.Flatten()["a"]; len(msgs) != 2 || msgs[0] != "first" || msgs[1] != "second" {
		t.Fatalf("sibling messages discarded: %v", msgs)
	}
}

func TestInvalid_ErrorRendering(t *testing.T) {
	single := &schematic.Invalid{}
	single.Add(schematic.Issue{Path: "", Code: schematic.CodeRequired, Message: "This value is required."})
	if got := single.Error(); got != "This value is required." {
		t.Fatalf("single-issue rendering: %q", got)
	}

	inv := badPersonError(t)
	msg := inv.Error()
	if !strings.Contains(msg, "age: ") {
		t.Fatalf("want path-prefixed line, got %q", msg)
	}
	if v, has := inv.Value(); !has || v == nil {
		t.Fatalf("want offending value recorded")
	}
	if !strings.Contains(msg, "Original value:") {
		t.Fatalf("want original value dump, got %q", msg)
	}
}

func TestAsInvalid(t *testing.T) {
	if _, ok := schematic.AsInvalid(nil); ok {
		t.Fatalf("nil error must not match")
	}
	_, err := schematic.Int().Convert("x")
	if _, ok := schematic.AsInvalid(err); !ok {
		t.Fatalf("conversion error must match, got %v", err)
	}
}
