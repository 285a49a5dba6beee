package schematic

import (
	"strconv"
	"strings"
)

// Path locates a value within the input tree as a sequence of mapping keys
// and collection indices. Paths are immutable; Key and Index copy-on-append
// so sibling recursions never share backing storage.
type Path []string

// Key returns the path extended by a mapping key.
func (p Path) Key(name string) Path {
	return append(append(Path{}, p...), name)
}

// Index returns the path extended by a collection index.
func (p Path) Index(i int) Path {
	return append(append(Path{}, p...), strconv.Itoa(i))
}

// String renders the path dot-joined, e.g. "people.0.name". The root path
// renders as "".
func (p Path) String() string {
	return strings.Join(p, ".")
}
