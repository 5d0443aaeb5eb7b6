package hmm

import (
	"fmt"
	"os"
	"unsafe"
)

// Calloc allocates space for nitems elements of size bytes each and
// zeroes the resulting payload, mirroring the standard calloc
// contract. It returns a nil pointer with ErrInvalidArg if either
// nitems or size is zero, or ErrOutOfMemory if the allocation itself
// fails.
func (a *Allocator) Calloc(nitems, size int) (p unsafe.Pointer, err error) {
	if trace {
		defer func() { fmt.Fprintf(os.Stderr, "Calloc(%#x, %#x) %p, %v\n", nitems, size, p, err) }()
	}

	if nitems == 0 || size == 0 {
		return nil, ErrInvalidArg
	}

	total := nitems * size

	p, err = a.Alloc(total)
	if err != nil {
		return nil, err
	}

	zero(p, total)

	return p, nil
}

// zero clears n bytes of payload starting at p.
func zero(p unsafe.Pointer, n int) {
	b := unsafe.Slice((*byte)(p), n)
	for i := range b {
		b[i] = 0
	}
}
