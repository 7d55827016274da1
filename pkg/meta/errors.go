package meta

import "errors"

// ErrDeserialization is returned for wire input that violates the
// gossiped-record encoding: a short buffer, or a list-length prefix
// that exceeds MaxGossipListLen. Rejection of a change by Apply is not
// an error — it is a normal negative result reported via a bool, never
// through this value.
var ErrDeserialization = errors.New("meta: malformed gossiped record encoding")
