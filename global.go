package hmm

import "unsafe"

// global is the lazily-initialized, default-configured Allocator
// backing the package-level convenience functions below. It is
// process-wide mutable state with no synchronization: concurrent use
// of the package-level functions from more than one goroutine is
// undefined behavior, exactly as for Allocator itself (see §5 of the
// design this package implements — single-threaded, in-process only).
var global Allocator

// Init (re)initializes the default global allocator.
func Init() error { return global.Init() }

// Alloc allocates from the default global allocator.
func Alloc(n int) (unsafe.Pointer, error) { return global.Alloc(n) }

// Free releases a block previously obtained from the default global
// allocator.
func Free(p unsafe.Pointer) { global.Free(p) }

// Calloc allocates zeroed memory from the default global allocator.
func Calloc(nitems, size int) (unsafe.Pointer, error) { return global.Calloc(nitems, size) }

// Realloc resizes a block previously obtained from the default global
// allocator.
func Realloc(p unsafe.Pointer, n int) (unsafe.Pointer, error) { return global.Realloc(p, n) }
