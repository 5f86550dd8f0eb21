package natural

import "iter"

// All returns the ascending sequence 0, 1, ..., n-1.
//
// The sequence is restartable: every range over it starts a fresh cursor,
// so concurrent traversals of the same value do not interfere. The cursor
// walks n's own chain to know when to stop; no host counter is involved.
func (n Natural) All() iter.Seq[Natural] {
	return func(yield func(Natural) bool) {
		i := Zero
		for rest := n.top; rest != nil; rest = rest.pre {
			if !yield(i) {
				return
			}
			i = Successor(i)
		}
	}
}

// Backward returns the descending sequence n-1, ..., 1, 0.
// Each element is a suffix of n's chain, so nothing is allocated.
func (n Natural) Backward() iter.Seq[Natural] {
	return func(yield func(Natural) bool) {
		for p := n.top; p != nil; p = p.pre {
			if !yield(Natural{top: p.pre}) {
				return
			}
		}
	}
}
