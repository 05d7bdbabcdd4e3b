package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, clients and controllers return
// these (optionally wrapped) so transports can translate them into responses.
//
// These represent factual states, not validation detail:
// - ErrNotFound: no record or stored entry exists for the key
// - ErrSuperseded: a newer request replaced this one before it completed
// - ErrUnavailable: the remote service or backing store could not be reached
// - ErrInvalidInput: the caller supplied a value outside the accepted set
var (
	ErrNotFound     = errors.New("not found")
	ErrSuperseded   = errors.New("superseded by a newer request")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidInput = errors.New("invalid input")
)
