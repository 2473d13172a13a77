// Package operation models WasteOperation, the immutable record of a physical or
// legal fact (relocation, transfer, storage) derived from a completed route stop.
//
// An operation is created exactly once per triggering event: its id is derived from
// the source event id, so a replayed event produces the same operation and the store
// can ignore the duplicate.
package operation
