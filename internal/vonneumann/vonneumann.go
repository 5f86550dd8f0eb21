// Package vonneumann renders naturals as von Neumann ordinals.
//
// The ordinal for n is the set of all smaller ordinals: 0 = {},
// 1 = {0} = {{}}, 2 = {0, 1} = {{}, {{}}}, and in general
// S(n) = n ∪ {n}. The view is diagnostic only and never feeds back into
// arithmetic.
package vonneumann

import (
	"iter"
	"strings"

	"github.com/roach88/peano/internal/natural"
)

// Set is the von Neumann ordinal of a natural.
type Set struct {
	n natural.Natural
}

// Of returns the ordinal for n.
func Of(n natural.Natural) Set {
	return Set{n: n}
}

// Successor returns s ∪ {s}.
func (s Set) Successor() Set {
	return Set{n: natural.Successor(s.n)}
}

// Natural returns the natural s encodes.
func (s Set) Natural() natural.Natural {
	return s.n
}

// Cardinality is the number of elements, which is the encoded natural.
func (s Set) Cardinality() natural.Natural {
	return s.n
}

// Elements yields the members of s in ascending order.
func (s Set) Elements() iter.Seq[Set] {
	return func(yield func(Set) bool) {
		for m := range s.n.All() {
			if !yield(Set{n: m}) {
				return
			}
		}
	}
}

// Contains reports whether m is a member of s.
func (s Set) Contains(m Set) bool {
	return m.n.Less(s.n)
}

// Subset reports whether every member of s is a member of x.
// Ordinals are transitive, so this is s <= x.
func (s Set) Subset(x Set) bool {
	return s.n.LessOrEqual(x.n)
}

// Equal reports whether s and x have the same members.
func (s Set) Equal(x Set) bool {
	return s.n.Equal(x.n)
}

// String renders the nested set with members in ascending order,
// separated by ", ". The text doubles in length with every successor.
func (s Set) String() string {
	// rendered[k] is the text of ordinal k; each one embeds all before it.
	rendered := []string{"{}"}
	for range s.n.All() {
		rendered = append(rendered, "{"+strings.Join(rendered, ", ")+"}")
	}
	return rendered[len(rendered)-1]
}
