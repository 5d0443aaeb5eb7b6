package hmm

import "testing"

func TestPackUnpack(t *testing.T) {
	cases := []struct {
		size  uintptr
		alloc bool
	}{
		{16, true},
		{16, false},
		{4096, true},
		{0, true}, // epilogue shape
	}

	for _, c := range cases {
		w := pack(c.size, c.alloc)
		if g, e := uintptr(w&^0x7), c.size; g != e {
			t.Fatalf("pack(%v,%v) size = %v, want %v", c.size, c.alloc, g, e)
		}
		if g, e := w&allocBit != 0, c.alloc; g != e {
			t.Fatalf("pack(%v,%v) alloc = %v, want %v", c.size, c.alloc, g, e)
		}
	}
}

func TestAdjustedSizeMinimum(t *testing.T) {
	for n := 0; n <= doubleWordSize; n++ {
		if g, e := adjustedSize(n), uintptr(minBlockSize); g != e {
			t.Fatalf("adjustedSize(%v) = %v, want minimum %v", n, g, e)
		}
	}
}

func TestAdjustedSizeIsDoubleWordMultiple(t *testing.T) {
	for n := 1; n <= 256; n++ {
		asize := adjustedSize(n)

		if asize%doubleWordSize != 0 {
			t.Fatalf("adjustedSize(%v) = %v, not a multiple of %v", n, asize, doubleWordSize)
		}

		if asize < uintptr(n)+doubleWordSize {
			t.Fatalf("adjustedSize(%v) = %v, too small to hold payload + overhead", n, asize)
		}
	}
}

func TestAdjustedSizeMonotonic(t *testing.T) {
	prev := adjustedSize(0)
	for n := 1; n <= 512; n++ {
		cur := adjustedSize(n)
		if cur < prev {
			t.Fatalf("adjustedSize not monotonic at n=%v: %v < %v", n, cur, prev)
		}
		prev = cur
	}
}
