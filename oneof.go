package schematic

// Candidate pairs a schema with an optional guard predicate over the raw
// value. A nil Guard means the candidate is attempted unconditionally.
type Candidate struct {
	Guard  func(v any) bool
	Schema Schema
}

// OneOf tries candidates in declared order and returns the first successful
// conversion. A guarded candidate converts only when its guard accepts the
// raw value, and its conversion failure then propagates: guards pre-select
// the unique matching branch, so there is no fallthrough past one. An
// unguarded candidate's failure moves on to the next candidate.
func OneOf(candidates []Candidate, opts ...Option) *OneOfSchema {
	return &OneOfSchema{base: newBase(opts), candidates: append([]Candidate(nil), candidates...)}
}

// OneOfSchemas is OneOf over unguarded candidates.
func OneOfSchemas(schemas ...Schema) *OneOfSchema {
	cands := make([]Candidate, len(schemas))
	for i, s := range schemas {
		cands[i] = Candidate{Schema: s}
	}
	return OneOf(cands)
}

// OneOfSchema is the tagged-union variant.
type OneOfSchema struct {
	base
	candidates []Candidate
}

func (s *OneOfSchema) Convert(v any) (any, error) { return s.ConvertPath(v, nil) }

func (s *OneOfSchema) ConvertPath(v any, p Path) (any, error) {
	return convertNode(&s.opt, v, p, s.convert)
}

func (s *OneOfSchema) convert(v any, p Path) (any, error) {
	for _, c := range s.candidates {
		if c.Guard != nil {
			if !guardAccepts(c.Guard, v) {
				continue
			}
			return c.Schema.ConvertPath(v, p)
		}
		out, err := c.Schema.ConvertPath(v, p)
		if err == nil {
			return out, nil
		}
	}
	return nil, invalidValueAt(p, CodeNoMatch, nil, v)
}

// guardAccepts treats a panicking guard as "does not match" rather than
// propagating.
func guardAccepts(guard func(any) bool, v any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return guard(v)
}
