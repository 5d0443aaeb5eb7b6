package hmm

import "errors"

// Sentinel errors returned alongside a nil pointer. These are the Go
// stand-ins for the C family's ambient errno-style indicator: the
// caller gets the same two signals (a NULL-equivalent return and a
// classified error) but over the ordinary Go return path instead of a
// global.
var (
	// ErrInvalidArg is returned when a client passes a zero-size
	// request where the contract defines that to fail (Alloc(0),
	// Calloc with either operand zero).
	ErrInvalidArg = errors.New("hmm: invalid argument")

	// ErrOutOfMemory is returned when the region's ceiling is
	// reached and no further extension is possible.
	ErrOutOfMemory = errors.New("hmm: out of memory")

	// ErrInitFailed is returned when the region layer could not
	// reserve its initial address range.
	ErrInitFailed = errors.New("hmm: heap initialization failed")
)
