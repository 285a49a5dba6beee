package schematic_test

import (
	"reflect"
	"testing"

	schematic "github.com/schematic-go/schematic"
)

func TestConvertFrom_JSON(t *testing.T) {
	schema := schematic.Dict(map[string]any{
		"name":  schematic.String(),
		"age":   schematic.Int(),
		"score": schematic.Float(),
	})
	v, err := schematic.ConvertFrom(schema, schematic.JSONBytes([]byte(
		`{"name": "Albert Fuller", "age": 9, "score": 1.5}`,
	)))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	want := map[string]any{"name": "Albert Fuller", "age": int64(9), "score": 1.5}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("want %v, got %v", want, v)
	}
}

func TestConvertFrom_JSONNumberPrecision(t *testing.T) {
	// UseNumber keeps the literal intact until the schema coerces it, so a
	// large integer does not round-trip through float64.
	schema := schematic.Dict(map[string]any{"id": schematic.Int()})
	v, err := schematic.ConvertFrom(schema, schematic.JSONBytes([]byte(
		`{"id": 9007199254740993}`,
	)))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if got := v.(map[string]any)["id"]; got != int64(9007199254740993) {
		t.Fatalf("precision lost: got %v", got)
	}
}

func TestConvertFrom_YAML(t *testing.T) {
	schema := schematic.Dict(map[string]any{
		"name": schematic.String(),
		"age":  schematic.Int(),
	})
	v, err := schematic.ConvertFrom(schema, schematic.YAMLBytes([]byte("name: Ada\nage: \"36\"\n")))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	want := map[string]any{"name": "Ada", "age": int64(36)}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("want %v, got %v", want, v)
	}
}

func TestConvertFrom_DecodeError(t *testing.T) {
	_, err := schematic.ConvertFrom(schematic.Dict(nil), schematic.JSONBytes([]byte(`{`)))
	if err == nil {
		t.Fatalf("want decode error")
	}
	if _, ok := schematic.AsInvalid(err); ok {
		t.Fatalf("decode failures are not validation failures: %v", err)
	}
}

func TestConvertFrom_Value(t *testing.T) {
	v, err := schematic.ConvertFrom(schematic.Int(), schematic.Value("7"))
	if err != nil || v != int64(7) {
		t.Fatalf("value source: v=%v err=%v", v, err)
	}
}
