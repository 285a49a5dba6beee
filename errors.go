package schematic

import (
	"errors"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/schematic-go/schematic/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired      = "required"       // required value absent
	CodeInvalidType   = "invalid_type"   // wrong container/value shape
	CodeMissingEntry  = "missing_entry"  // required mapping key absent
	CodeUnknownKey    = "unknown_key"    // undeclared mapping keys present
	CodeNotANumber    = "not_a_number"
	CodeNotAnInteger  = "not_an_integer"
	CodeInvalidFormat = "invalid_format" // no date/time layout matched
	CodeInvalidEmail  = "invalid_email"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeNotEqual      = "not_equal"
	CodeInvalidEnum   = "invalid_enum"
	CodeNoMatch       = "no_match" // no OneOf candidate accepted the value
)

// Issue is a single leaf validation failure.
type Issue struct {
	Path    string // dotted path, e.g. "people.0.name" ("" is the root)
	Code    string // one of the codes listed above
	Message string
	// Value is the offending raw value, when one was recorded. HasValue
	// distinguishes a recorded nil from "no value recorded".
	Value    any
	HasValue bool
}

// Invalid is a composite validation error: every leaf failure found during
// one Convert call, addressed by path. It is created fresh per call, merged
// upward while the conversion unwinds, and implements error.
type Invalid struct {
	issues []Issue
	value  any
	hasVal bool
}

// invalidAt creates a single-issue Invalid at the given path.
func invalidAt(p Path, code string, params map[string]string) *Invalid {
	return &Invalid{issues: []Issue{{
		Path:    p.String(),
		Code:    code,
		Message: i18n.T(code, params),
	}}}
}

// invalidValueAt is invalidAt with the offending value recorded.
func invalidValueAt(p Path, code string, params map[string]string, v any) *Invalid {
	inv := invalidAt(p, code, params)
	inv.issues[0].Value = v
	inv.issues[0].HasValue = true
	return inv.WithValue(v)
}

// WithValue records the original offending value for rendering.
func (e *Invalid) WithValue(v any) *Invalid {
	e.value = v
	e.hasVal = true
	return e
}

// Add appends leaf issues in order.
func (e *Invalid) Add(issues ...Issue) {
	e.issues = append(e.issues, issues...)
}

// Merge folds child composite errors into the receiver, appending their leaf
// lists under matching paths and never discarding siblings.
func (e *Invalid) Merge(children ...*Invalid) {
	for _, c := range children {
		if c == nil {
			continue
		}
		e.issues = append(e.issues, c.issues...)
	}
}

// Issues returns the leaf failures in collection order.
func (e *Invalid) Issues() []Issue {
	out := make([]Issue, len(e.issues))
	copy(out, e.issues)
	return out
}

// Len reports the number of leaf failures.
func (e *Invalid) Len() int { return len(e.issues) }

// Value returns the recorded offending value, if any.
func (e *Invalid) Value() (any, bool) { return e.value, e.hasVal }

// Flatten groups leaf messages by dotted path string for display.
func (e *Invalid) Flatten() map[string][]string {
	out := make(map[string][]string, len(e.issues))
	for _, it := range e.issues {
		out[it.Path] = append(out[it.Path], it.Message)
	}
	return out
}

// Filter selects leaf issues by predicate, e.g. by code for programmatic
// handling.
func (e *Invalid) Filter(pred func(Issue) bool) []Issue {
	var out []Issue
	for _, it := range e.issues {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Error renders every path-prefixed message, continuation messages aligned
// under their path, plus a dump of the original offending value when one
// was recorded.
func (e *Invalid) Error() string {
	var lines []string
	byPath := map[string]bool{}
	for _, it := range e.issues {
		prefix := ""
		if it.Path != "" {
			prefix = it.Path + ": "
		}
		if byPath[it.Path] {
			lines = append(lines, strings.Repeat(" ", len(prefix))+it.Message)
			continue
		}
		byPath[it.Path] = true
		lines = append(lines, prefix+it.Message)
	}
	if e.hasVal {
		lines = append(lines, "", "Original value: "+spew.Sprintf("%#v", e.value))
	}
	if len(lines) == 1 {
		return lines[0]
	}
	return "\n" + strings.Join(lines, "\n")
}

// AsInvalid extracts an *Invalid from an error using errors.As internally.
func AsInvalid(err error) (*Invalid, bool) {
	if err == nil {
		return nil, false
	}
	var inv *Invalid
	if errors.As(err, &inv) {
		return inv, true
	}
	return nil, false
}
