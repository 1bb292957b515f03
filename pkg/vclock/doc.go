// Package vclock implements vector clocks for tracking causality between
// notification events originated by independent replicas (user sessions or
// devices).
//
// A Clock maps replica identifiers to monotonically non-decreasing counters.
// All operations are pure: they never mutate their inputs and return fresh
// clocks, which makes them safe to use on values shared across goroutines.
//
// # Usage
//
//	c := vclock.New("replica-a")          // {replica-a: 0}
//	c = vclock.Increment(c, "replica-a")  // {replica-a: 1}
//
//	merged := vclock.Merge(c, remote)
//	switch vclock.Compare(c, remote) {
//	case vclock.Before:
//	    // c causally precedes remote
//	case vclock.After:
//	    // remote causally precedes c
//	case vclock.Concurrent:
//	    // neither dominates
//	}
//
// Merge is commutative, associative, and idempotent, so replicas exchanging
// clocks in any order converge to the same value.
package vclock
