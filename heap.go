// Package hmm implements a single-threaded, in-process dynamic memory
// allocator over a fixed-capacity virtual address range: a boundary-tag
// implicit block list with first-fit placement, splitting, and
// immediate coalescing, grown on demand from a bump-allocated region.
//
// It is the malloc/free/calloc/realloc family translated from the
// classic CS:APP-style allocator this package's tests and layout trace
// back to, with Go's (value, error) return convention standing in for
// the C family's NULL-plus-errno contract.
package hmm

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/cznic/mathutil"

	"github.com/ifthikhan/homemade-mm/region"
)

const trace = false // flip to true and recompile for call tracing to stderr

const (
	defaultMaxRegion = 2 * 1024 * 1024 // MAX_REGION
	defaultChunkSize = 4096            // CHUNK
)

// config holds the tunables New/Init accept through Option values.
type config struct {
	maxRegion int
	chunkSize int
}

func defaultConfig() config {
	return config{maxRegion: defaultMaxRegion, chunkSize: defaultChunkSize}
}

// Option configures an Allocator at construction time.
type Option func(*config)

// WithMaxRegion overrides the region's fixed capacity (MAX_REGION).
func WithMaxRegion(n int) Option {
	return func(c *config) { c.maxRegion = n }
}

// WithChunkSize overrides the number of bytes requested from the
// region each time the heap must grow to satisfy a miss (CHUNK).
func WithChunkSize(n int) Option {
	return func(c *config) { c.chunkSize = n }
}

// Allocator carves a region.Region into a sequence of boundary-tag
// blocks and services Alloc/Free/Calloc/Realloc against them. Its zero
// value is ready for use and behaves as New() with no options (a 2 MiB
// region, 4096-byte extension chunks); use New with options to
// override those defaults before the first call.
type Allocator struct {
	cfg config
	reg region.Region

	heapStart   uintptr // prologue's payload address
	initialized bool
}

// New constructs an Allocator with the given options applied over the
// spec's defaults (2 MiB region, 4096-byte extension chunks). The
// returned Allocator is not yet initialized; the first call to Init,
// Alloc, Calloc, Free, or Realloc performs initialization lazily.
func New(opts ...Option) *Allocator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Allocator{cfg: cfg}
}

// Init reserves the allocator's region and lays down the prologue,
// epilogue, and an initial free chunk. It returns ErrInitFailed if the
// region layer cannot reserve its range or extend into it. Init is
// idempotent in the sense required by the spec: calling it again
// re-initializes a fresh heap.
func (a *Allocator) Init() error {
	if trace {
		defer func() { fmt.Fprintf(os.Stderr, "Init() initialized=%v\n", a.initialized) }()
	}

	if a.cfg.maxRegion == 0 {
		a.cfg = defaultConfig()
	}

	if mathutil.BitLen(a.cfg.maxRegion) > 32 {
		return fmt.Errorf("hmm: %w: region too large to address with a packed 32-bit header word", ErrInitFailed)
	}

	if a.reg.Capacity() != 0 {
		_ = a.reg.Close()
	}

	if err := a.reg.Init(a.cfg.maxRegion); err != nil {
		return fmt.Errorf("hmm: %w: %v", ErrInitFailed, err)
	}

	base, err := a.reg.Extend(4 * wordSize)
	if err != nil {
		return fmt.Errorf("hmm: %w: %v", ErrInitFailed, err)
	}

	putWord(base, 0)                                     // alignment padding
	putWord(base+wordSize, pack(doubleWordSize, true))   // prologue header
	putWord(base+2*wordSize, pack(doubleWordSize, true)) // prologue footer
	putWord(base+3*wordSize, pack(0, true))              // epilogue header

	a.heapStart = base + 2*wordSize
	a.initialized = true

	if _, err := a.extendHeap(a.cfg.chunkSize / wordSize); err != nil {
		a.initialized = false

		return fmt.Errorf("hmm: %w: %v", ErrInitFailed, err)
	}

	return nil
}

func (a *Allocator) ensureInit() error {
	if a.initialized {
		return nil
	}

	return a.Init()
}

// Alloc returns a double-word-aligned payload address with room for at
// least n bytes, or a nil pointer with ErrInvalidArg (n == 0) or
// ErrOutOfMemory (the region's ceiling was reached).
func (a *Allocator) Alloc(n int) (p unsafe.Pointer, err error) {
	if trace {
		defer func() { fmt.Fprintf(os.Stderr, "Alloc(%#x) %p, %v\n", n, p, err) }()
	}

	if err := a.ensureInit(); err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, ErrInvalidArg
	}

	asize := adjustedSize(n)

	if bp := a.findFit(asize); bp != 0 {
		place(bp, asize)

		return ptr(bp), nil
	}

	extendWords := mathutil.Max(int(asize), a.cfg.chunkSize) / wordSize

	bp, err := a.extendHeap(extendWords)
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", ErrOutOfMemory)
	}

	place(bp, asize)

	return ptr(bp), nil
}

// Free deallocates the block at p and coalesces it with any free
// physical neighbors. Free(nil) is a no-op. Passing an address not
// currently allocated, or not previously returned by Alloc/Calloc/
// Realloc, is undefined behavior: Free performs no validation.
func (a *Allocator) Free(p unsafe.Pointer) {
	if trace {
		defer func() { fmt.Fprintf(os.Stderr, "Free(%p)\n", p) }()
	}

	if p == nil {
		return
	}

	if err := a.ensureInit(); err != nil {
		return
	}

	bp := addr(p)
	size := blockSize(headerAddr(bp))
	setHeaderFooter(bp, size, false)
	a.coalesce(bp)
}

// ptr converts an internal block address to the public pointer type.
func ptr(bp uintptr) unsafe.Pointer { return unsafe.Pointer(bp) }

// addr converts a public pointer back to an internal block address.
func addr(p unsafe.Pointer) uintptr { return uintptr(p) }

// findFit walks the block sequence from the first block after the
// prologue, returning the payload address of the first free block
// whose size is >= asize, or 0 if the epilogue is reached without one.
func (a *Allocator) findFit(asize uintptr) uintptr {
	for bp := nextBlock(a.heapStart); blockSize(headerAddr(bp)) != 0; bp = nextBlock(bp) {
		if !allocated(headerAddr(bp)) && blockSize(headerAddr(bp)) >= asize {
			return bp
		}
	}

	return 0
}

// place carves asize bytes out of the free block at bp, splitting off
// a new free block from the remainder when that remainder is large
// enough to stand on its own, or consuming the whole block otherwise.
func place(bp uintptr, asize uintptr) {
	csize := blockSize(headerAddr(bp))

	if csize-asize >= minBlockSize {
		setHeaderFooter(bp, asize, true)

		next := nextBlock(bp)
		setHeaderFooter(next, csize-asize, false)

		return
	}

	setHeaderFooter(bp, csize, true)
}

// coalesce merges the free block at bp with any free physical
// neighbors and returns the payload address of the resulting block.
func (a *Allocator) coalesce(bp uintptr) uintptr {
	prevAlloc := allocated(bp - doubleWordSize)
	nextAlloc := allocated(headerAddr(nextBlock(bp)))
	size := blockSize(headerAddr(bp))

	switch {
	case prevAlloc && nextAlloc:
		return bp
	case prevAlloc && !nextAlloc:
		nb := nextBlock(bp)
		size += blockSize(headerAddr(nb))
		setHeaderFooter(bp, size, false)

		return bp
	case !prevAlloc && nextAlloc:
		pb := prevBlock(bp)
		size += blockSize(headerAddr(pb))
		setHeaderFooter(pb, size, false)

		return pb
	default:
		pb := prevBlock(bp)
		nb := nextBlock(bp)
		size += blockSize(headerAddr(pb)) + blockSize(headerAddr(nb))
		setHeaderFooter(pb, size, false)

		return pb
	}
}

// extendHeap grows the region by words*wordSize bytes (rounded up to
// an even word count), lays down a new free block over the grown
// space, re-plants the epilogue header past it, coalesces with
// whatever physically precedes it, and returns the resulting free
// block's payload address.
func (a *Allocator) extendHeap(words int) (uintptr, error) {
	if words%2 != 0 {
		words++
	}

	size := uintptr(words) * wordSize

	bp, err := a.reg.Extend(int(size))
	if err != nil {
		return 0, err
	}

	setHeaderFooter(bp, size, false)
	putWord(headerAddr(nextBlock(bp)), pack(0, true))

	return a.coalesce(bp), nil
}
