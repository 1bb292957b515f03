// Package channel maps notification audiences to stable pub/sub topic
// strings.
//
// A topic is a pure function of (shop id, audience kind, optional audience
// id); it is never persisted and is recomputed on demand. Distinct audience
// tuples always produce distinct topics, which is what keeps notifications
// from leaking across tenants or audiences. The ":" delimiter is reserved
// and rejected inside identifiers to preserve that injectivity.
//
// Topic formats are wire surface shared with every consumer and must not
// change without a coordinated migration:
//
//	notifications:shop:<shopId>
//	notifications:shop:<shopId>:owner:<ownerProfileId>
//	notifications:shop:<shopId>:staff:<staffId>
//	notifications:user:<userId>
package channel
