package u128

import "testing"

func TestCheckedAddOverflow(t *testing.T) {
	_, ok := CheckedAdd(Max, FromU64(1))
	if ok {
		t.Fatalf("expected overflow adding 1 to Max")
	}

	sum, ok := CheckedAdd(FromU64(10), FromU64(32))
	if !ok || sum.Lo != 42 || sum.Hi != 0 {
		t.Fatalf("expected 42, got %+v ok=%v", sum, ok)
	}
}

func TestSaturatingSub(t *testing.T) {
	got := SaturatingSub(FromU64(5), FromU64(10))
	if !got.IsZero() {
		t.Fatalf("expected saturated zero, got %+v", got)
	}

	got = SaturatingSub(FromU64(10), FromU64(5))
	if got.Lo != 5 || got.Hi != 0 {
		t.Fatalf("expected 5, got %+v", got)
	}
}

func TestLittleEndianRoundTrip(t *testing.T) {
	v := U128{Lo: 0x0102030405060708, Hi: 0x1112131415161718}
	buf := make([]byte, 16)
	PutLittleEndian(buf, v)
	got := FromLittleEndian(buf)
	if !got.Equal(v) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, v)
	}
	if buf[0] != 0x08 || buf[15] != 0x11 {
		t.Fatalf("unexpected byte layout: %x", buf)
	}
}

func TestMaxAndZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Fatalf("Zero.IsZero() should be true")
	}
	if !Max.IsMax() {
		t.Fatalf("Max.IsMax() should be true")
	}
	if Max.IsZero() {
		t.Fatalf("Max.IsZero() should be false")
	}
}

func TestLessAndMin(t *testing.T) {
	a := FromU64(5)
	b := FromU64(10)
	if !a.Less(b) {
		t.Fatalf("expected 5 < 10")
	}
	if b.Less(a) {
		t.Fatalf("did not expect 10 < 5")
	}
	if !Min(a, b).Equal(a) {
		t.Fatalf("expected min(5, 10) == 5")
	}
}
