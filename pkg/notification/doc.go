// Package notification implements the shop notification domain: the record
// model with its vector clock, typed event payloads, persistence over a
// document store, and the service orchestrating creation, read-state
// transitions, and queries.
//
// # Lifecycle
//
// A notification is created once, optionally marked as read, and eventually
// hard-deleted. The read flag is monotonic: a routine update never flips it
// back to false. Every state transition advances the record's vector clock,
// so replicas that applied transitions concurrently converge once their
// clocks are merged.
//
// # Delivery
//
// Service.Create persists first and then emits to the audience topic on a
// detached goroutine. Persistence failures propagate to the caller;
// emission failures are logged and swallowed, because the record is already
// durable and reachable through queries.
//
// # Storage
//
// Store is the persistence port. MongoStore is the production
// implementation; MemoryStore backs development and tests.
package notification
