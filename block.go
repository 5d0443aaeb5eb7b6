package hmm

import "unsafe"

// Word and double-word sizes, per the packed-header boundary-tag
// layout: a block is [header][payload][footer], header and footer are
// one word each, and every block size is a multiple of a double word.
const (
	wordSize       = 4 // W
	doubleWordSize = 8 // D

	allocBit = 0x1 // low bit of a packed header/footer word

	minBlockSize = 2 * doubleWordSize // header + footer + >=D payload
)

// pack combines a block size (already a multiple of doubleWordSize)
// and an allocated flag into the 32-bit word stored in a header or
// footer.
func pack(size uintptr, allocated bool) uint32 {
	w := uint32(size)
	if allocated {
		w |= allocBit
	}

	return w
}

// word reads the 32-bit packed word at addr.
func word(addr uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(addr))
}

// putWord writes the 32-bit packed word at addr.
func putWord(addr uintptr, w uint32) {
	*(*uint32)(unsafe.Pointer(addr)) = w
}

// blockSize returns the size encoded in the header/footer word at addr.
func blockSize(addr uintptr) uintptr {
	return uintptr(word(addr) &^ 0x7)
}

// allocated reports the allocated bit encoded in the header/footer
// word at addr.
func allocated(addr uintptr) bool {
	return word(addr)&allocBit != 0
}

// Block-pointer navigation. bp is always a payload address (what the
// client sees); these helpers compute the addresses of its boundary
// tags and physical neighbors purely from bp and the sizes encoded in
// memory, mirroring the HDRP/FTRP/NEXT_BLKP/PREV_BLKP macros of the
// classic boundary-tag allocator this package implements.

func headerAddr(bp uintptr) uintptr { return bp - wordSize }

func footerAddr(bp uintptr) uintptr {
	return bp + blockSize(headerAddr(bp)) - doubleWordSize
}

func nextBlock(bp uintptr) uintptr {
	return bp + blockSize(headerAddr(bp))
}

func prevBlock(bp uintptr) uintptr {
	return bp - blockSize(bp-doubleWordSize)
}

// setHeaderFooter writes matching header and footer words for the
// block whose payload starts at bp, encoding size and the allocated
// bit in both boundary tags.
func setHeaderFooter(bp uintptr, size uintptr, alloc bool) {
	w := pack(size, alloc)
	putWord(headerAddr(bp), w)
	putWord(footerAddr(bp), w)
}

// adjustedSize computes the block size needed to satisfy a payload
// request of n bytes: the minimum block if n fits within a double
// word, otherwise n rounded up to the next double-word boundary after
// reserving a double word for the header and footer.
func adjustedSize(n int) uintptr {
	if n <= doubleWordSize {
		return minBlockSize
	}

	return doubleWordSize * uintptr((n+doubleWordSize+(doubleWordSize-1))/doubleWordSize)
}
