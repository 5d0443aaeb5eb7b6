package region

import "testing"

func TestInitZeroesBrk(t *testing.T) {
	var r Region
	if err := r.Init(64 << 10); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if g, e := r.Size(), 0; g != e {
		t.Fatalf("Size() = %v, want %v", g, e)
	}

	if r.Base() == 0 {
		t.Fatal("Base() == 0 after Init")
	}
}

func TestExtendAdvancesAndReturnsOldMark(t *testing.T) {
	var r Region
	if err := r.Init(64 << 10); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	base := r.Base()

	old, err := r.Extend(128)
	if err != nil {
		t.Fatal(err)
	}
	if old != base {
		t.Fatalf("first Extend old = %#x, want base %#x", old, base)
	}
	if g, e := r.Size(), 128; g != e {
		t.Fatalf("Size() = %v, want %v", g, e)
	}

	old2, err := r.Extend(64)
	if err != nil {
		t.Fatal(err)
	}
	if old2 != base+128 {
		t.Fatalf("second Extend old = %#x, want %#x", old2, base+128)
	}
}

func TestExtendRejectsNegativeDelta(t *testing.T) {
	var r Region
	if err := r.Init(64 << 10); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if _, err := r.Extend(-1); err == nil {
		t.Fatal("expected error for negative delta")
	}
}

func TestExtendFailsAtCeiling(t *testing.T) {
	var r Region
	if err := r.Init(4096); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if _, err := r.Extend(4096); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Extend(1); err != ErrCeiling {
		t.Fatalf("Extend past ceiling: got %v, want ErrCeiling", err)
	}
}

func TestResetRewindsMark(t *testing.T) {
	var r Region
	if err := r.Init(4096); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if _, err := r.Extend(100); err != nil {
		t.Fatal(err)
	}

	r.Reset()

	if g, e := r.Size(), 0; g != e {
		t.Fatalf("Size() after Reset = %v, want %v", g, e)
	}

	old, err := r.Extend(50)
	if err != nil {
		t.Fatal(err)
	}
	if old != r.Base() {
		t.Fatalf("Extend after Reset old = %#x, want base %#x", old, r.Base())
	}
}

func TestCloseThenReinit(t *testing.T) {
	var r Region
	if err := r.Init(4096); err != nil {
		t.Fatal(err)
	}

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	if r.Base() != 0 || r.Size() != 0 || r.Capacity() != 0 {
		t.Fatal("Region not zeroed after Close")
	}

	if err := r.Init(4096); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.Base() == 0 {
		t.Fatal("Base() == 0 after re-Init")
	}
}

func TestPageSizePositive(t *testing.T) {
	if PageSize() <= 0 {
		t.Fatal("PageSize() <= 0")
	}
}
