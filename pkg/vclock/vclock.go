package vclock

// Clock maps a replica identifier to its event counter.
// A missing entry is equivalent to a counter of zero.
type Clock map[string]int64

// Ordering is the result of comparing two clocks.
type Ordering int

const (
	// Before means the first clock causally precedes the second.
	Before Ordering = iota
	// After means the second clock causally precedes the first.
	After
	// Concurrent means neither clock dominates the other. Equal clocks
	// also compare as Concurrent: a clock never happens-before itself.
	Concurrent
)

// String returns the ordering name for logs and test output.
func (o Ordering) String() string {
	switch o {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return "concurrent"
	}
}

// New returns a clock with a single zero-valued entry for replicaID.
func New(replicaID string) Clock {
	return Clock{replicaID: 0}
}

// Increment returns a copy of c with the counter for replicaID advanced by
// one. A missing entry is treated as zero, so incrementing an empty clock
// yields {replicaID: 1}.
func Increment(c Clock, replicaID string) Clock {
	out := make(Clock, len(c)+1)
	for id, n := range c {
		out[id] = n
	}
	out[replicaID]++
	return out
}

// Merge returns the element-wise maximum of a and b over the union of their
// replica ids. Merge is commutative, associative, and idempotent.
func Merge(a, b Clock) Clock {
	out := make(Clock, max(len(a), len(b)))
	for id, n := range a {
		out[id] = n
	}
	for id, n := range b {
		if n > out[id] {
			out[id] = n
		}
	}
	return out
}

// Compare determines the causal relationship between a and b by checking
// component-wise dominance over the union of replica ids.
func Compare(a, b Clock) Ordering {
	aLess, bLess := false, false
	for id, an := range a {
		if bn := b[id]; an < bn {
			aLess = true
		} else if an > bn {
			bLess = true
		}
	}
	for id, bn := range b {
		if _, ok := a[id]; !ok && bn > 0 {
			aLess = true
		}
	}
	switch {
	case aLess && !bLess:
		return Before
	case bLess && !aLess:
		return After
	default:
		return Concurrent
	}
}

// HappensBefore reports whether a causally precedes b.
func HappensBefore(a, b Clock) bool {
	return Compare(a, b) == Before
}

// AreConcurrent reports whether neither clock dominates the other.
func AreConcurrent(a, b Clock) bool {
	return Compare(a, b) == Concurrent
}

// Equal reports whether both clocks carry identical counters, treating
// missing entries as zero.
func Equal(a, b Clock) bool {
	for id, n := range a {
		if b[id] != n {
			return false
		}
	}
	for id, n := range b {
		if a[id] != n {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of c. A nil clock copies to an empty one.
func Copy(c Clock) Clock {
	out := make(Clock, len(c))
	for id, n := range c {
		out[id] = n
	}
	return out
}
