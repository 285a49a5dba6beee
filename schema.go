package schematic

// Schema describes the expected shape and constraints for one position in an
// input tree and converts a raw value into that shape. Schemas are immutable
// after construction and safe for concurrent reuse.
type Schema interface {
	// Convert validates and coerces a raw value. It returns either the
	// fully-converted value or an *Invalid aggregating every failure found.
	Convert(v any) (any, error)
	// ConvertPath is Convert rooted at an explicit path, used when the
	// schema participates in a larger tree.
	ConvertPath(v any, p Path) (any, error)

	options() *options
}

// options bundles the node configuration shared by every schema variant.
type options struct {
	null                 bool
	optional             bool
	checkers             []Checker
	defaultValue         any
	defaultFunc          func() any
	hasDefault           bool
	useDefaultForInvalid bool

	// variant-specific flags
	blank      bool // String: an explicit empty result is allowed
	noStrip    bool // String: keep surrounding whitespace
	aware      bool // DateTime: stamp naive values with UTC
	ignoreRest bool // Dict/collections: tolerate undeclared extras
	asMap      bool // Record: keep the converted mapping instead of repacking
}

// Option configures a schema node at construction time.
type Option func(*options)

// Null maps an absent/empty input to a nil result instead of failing.
func Null() Option { return func(o *options) { o.null = true } }

// Optional marks a mapping entry whose key may be omitted entirely.
// Optional affects presence; Null affects value.
func Optional() Option { return func(o *options) { o.optional = true } }

// With attaches checkers, run in attachment order after type conversion.
func With(checkers ...Checker) Option {
	return func(o *options) { o.checkers = append(o.checkers, checkers...) }
}

// Default supplies a result when the raw value is absent (keyed mappings) or,
// combined with UseDefaultForInvalid, when conversion fails. v may be a
// `func() any`, invoked on every use.
func Default(v any) Option {
	return func(o *options) {
		if f, ok := v.(func() any); ok {
			o.defaultFunc = f
			return
		}
		o.defaultValue = v
		o.hasDefault = true
	}
}

// UseDefaultForInvalid suppresses conversion and checker failures at this
// node and substitutes the default instead. The underlying diagnostic is
// deliberately swallowed.
func UseDefaultForInvalid() Option { return func(o *options) { o.useDefaultForInvalid = true } }

// Blank lets a text schema return an explicit "" distinct from null/missing.
func Blank() Option { return func(o *options) { o.blank = true } }

// KeepWhitespace disables the leading/trailing trim on text schemas.
func KeepWhitespace() Option { return func(o *options) { o.noStrip = true } }

// Aware makes DateTime stamp successfully parsed naive values with UTC.
func Aware() Option { return func(o *options) { o.aware = true } }

// IgnoreRest tolerates input entries beyond those the schema declares:
// undeclared mapping keys are dropped and extra trailing collection elements
// are trimmed instead of failing.
func IgnoreRest() Option { return func(o *options) { o.ignoreRest = true } }

// AsMap makes a Record schema return the converted mapping instead of
// repacking it into the struct type, for round-tripping a record back to a
// transportable map.
func AsMap() Option { return func(o *options) { o.asMap = true } }

// base carries the options bundle embedded by every variant.
type base struct{ opt options }

// newBase seeds the instance's own checker list with the variant's default
// checkers, then applies options. The defaults are copied per instance,
// never shared.
func newBase(opts []Option, defaults ...Checker) base {
	b := base{}
	b.opt.checkers = append([]Checker(nil), defaults...)
	for _, o := range opts {
		o(&b.opt)
	}
	return b
}

func (b *base) options() *options { return &b.opt }

// resolveDefault yields the configured default. A producer is re-invoked on
// every use; no default at all is itself a missing-value failure.
func (o *options) resolveDefault(p Path) (any, error) {
	if o.defaultFunc != nil {
		return o.defaultFunc(), nil
	}
	if o.hasDefault {
		return o.defaultValue, nil
	}
	return nil, invalidAt(p, CodeRequired, nil)
}

func (o *options) hasAnyDefault() bool { return o.defaultFunc != nil || o.hasDefault }

// convertNode drives the per-node contract: normalize the empty-string
// sentinel, handle absence, run the variant conversion, then run every
// checker without short-circuiting.
func convertNode(o *options, v any, p Path, conv func(any, Path) (any, error)) (any, error) {
	// Forms cannot represent an absent value distinctly from "".
	if s, ok := v.(string); ok && s == "" {
		v = nil
	}
	if v == nil {
		if o.null {
			return nil, nil
		}
		if o.useDefaultForInvalid {
			return o.resolveDefault(p)
		}
		return nil, invalidAt(p, CodeRequired, nil)
	}

	out, err := conv(v, p)
	if err != nil {
		if o.useDefaultForInvalid {
			return o.resolveDefault(p)
		}
		return nil, err
	}

	var agg *Invalid
	for _, c := range o.checkers {
		if inv := c.Check(out, p); inv != nil {
			if o.useDefaultForInvalid {
				// First failing checker settles it; no need to keep checking.
				return o.resolveDefault(p)
			}
			if agg == nil {
				agg = &Invalid{}
			}
			agg.Merge(inv)
		}
	}
	if agg != nil {
		return nil, agg.WithValue(out)
	}
	return out, nil
}
