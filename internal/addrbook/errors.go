package addrbook

import "errors"

var (
	// ErrClosed is returned by Book.Apply and Book.GossipBatch called
	// after Close.
	ErrClosed = errors.New("addrbook: book is closed")

	// ErrUnknownEndpoint is returned when a lookup finds no record for
	// the given endpoint.
	ErrUnknownEndpoint = errors.New("addrbook: no record for endpoint")
)
