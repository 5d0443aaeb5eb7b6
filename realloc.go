package hmm

import (
	"fmt"
	"os"
	"unsafe"
)

// Realloc changes the size of the allocation at p to n bytes,
// preserving the contents of the overlapping range, and follows the
// standard realloc NULL/zero-size conventions:
//
//   - p == nil, n == 0: returns nil, no error.
//   - p == nil, n > 0: equivalent to Alloc(n).
//   - p != nil, n == 0: frees p and returns nil.
//   - p != nil, n > 0: returns a block of at least n bytes whose first
//     min(n, old payload) bytes equal p's old contents; p is freed
//     once its contents have been copied. On allocation failure p is
//     left untouched and a nil pointer is returned with
//     ErrOutOfMemory.
func (a *Allocator) Realloc(p unsafe.Pointer, n int) (q unsafe.Pointer, err error) {
	if trace {
		defer func() { fmt.Fprintf(os.Stderr, "Realloc(%p, %#x) %p, %v\n", p, n, q, err) }()
	}

	switch {
	case p == nil && n == 0:
		return nil, nil
	case p == nil:
		return a.Alloc(n)
	case n == 0:
		a.Free(p)

		return nil, nil
	}

	oldPayload := int(blockSize(headerAddr(addr(p))) - doubleWordSize)

	q, err = a.Alloc(n)
	if err != nil {
		return nil, err
	}

	copySize := n
	if oldPayload < copySize {
		copySize = oldPayload
	}

	copyPayload(q, p, copySize)
	a.Free(p)

	return q, nil
}

// copyPayload copies n bytes from src to dst, both payload addresses
// into the region.
func copyPayload(dst, src unsafe.Pointer, n int) {
	if n <= 0 {
		return
	}

	d := unsafe.Slice((*byte)(dst), n)
	s := unsafe.Slice((*byte)(src), n)
	copy(d, s)
}
