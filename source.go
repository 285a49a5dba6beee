package schematic

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Source supplies a raw value to convert, typically decoded from a wire
// format first.
type Source struct {
	value any
	err   error
}

// Value wraps an in-memory raw value.
func Value(v any) Source { return Source{value: v} }

// JSONBytes decodes JSON with numbers preserved as json.Number, so integer
// precision survives until the schema decides how to coerce.
func JSONBytes(data []byte) Source {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Source{err: fmt.Errorf("schematic: decode json: %w", err)}
	}
	return Source{value: v}
}

// YAMLBytes decodes one YAML document.
func YAMLBytes(data []byte) Source {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Source{err: fmt.Errorf("schematic: decode yaml: %w", err)}
	}
	return Source{value: v}
}

// ConvertFrom decodes the source and converts the result through s. Decode
// failures surface as-is; validation failures surface as *Invalid.
func ConvertFrom(s Schema, src Source) (any, error) {
	if src.err != nil {
		return nil, src.err
	}
	return s.Convert(src.value)
}
