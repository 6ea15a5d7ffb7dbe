package castage

import (
	"strconv"
	"strings"
)

// Path is the sequence of keys and indices from the root value to a nested
// position.
type Path []string

// Field returns a new path extended by key.
func (p Path) Field(key string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = key
	return out
}

// Index returns a new path extended by an array index.
func (p Path) Index(i int) Path { return p.Field(strconv.Itoa(i)) }

// String joins the segments with '.'.
func (p Path) String() string { return strings.Join(p, ".") }

// Equal reports whether both paths hold the same segments.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// chained tags the last segment as "<last>::<name>" so that errors raised
// while re-validating a transformed value point back at its producer.
func (p Path) chained(name string) Path {
	if len(p) == 0 {
		return Path{"::" + name}
	}
	out := p.clone()
	out[len(out)-1] = out[len(out)-1] + "::" + name
	return out
}

func (p Path) relativeTo(parent Path) Path {
	if len(parent) > len(p) {
		return p
	}
	return p[len(parent):]
}

// clone returns a non-nil copy.
func (p Path) clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}
