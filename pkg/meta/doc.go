// Package meta implements the peer address metadata and
// change-application core of a Zcash-family peer-to-peer networking
// stack: a peer record type, a change-event type, the rules for
// folding a change into an existing record, the scheduler predicates,
// the gossip sanitizer, the total order used for reconnection
// priority, and the wire codec for the gossiped form.
//
// The package is a pure data model. It owns no locks, performs no I/O,
// and reads no ambient clock: every operation takes the time it needs
// as an explicit parameter, so the fold can be driven by tests (or a
// fake clock) exactly as easily as by a live connection.
package meta
