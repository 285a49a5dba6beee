// Package schematic converts loosely-typed input (form posts, decoded JSON
// or YAML, hand-built maps) into strictly-typed, validated values.
//
// A schema tree is composed once and is safe for concurrent reuse:
//
//	person := schematic.Dict(map[string]any{
//	    "name": schematic.String(),
//	    "age":  schematic.Int(),
//	})
//	v, err := person.Convert(map[string]any{"name": "Ada", "age": "36"})
//
// Conversion recurses depth-first and never stops at the first failure
// inside a mapping or collection; the returned error is a single *Invalid
// aggregating every failing path:
//
//	if inv, ok := schematic.AsInvalid(err); ok {
//	    for path, msgs := range inv.Flatten() { ... }
//	}
//
// Design policy:
// - Public API lives in the root package; messages live under i18n/.
// - Schemas are immutable after construction; Convert has no side effects.
// - Prefer black-box testing against public APIs.
package schematic
