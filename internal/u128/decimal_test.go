package u128

import "testing"

func TestDecimalRoundTrip(t *testing.T) {
	v := U128{Lo: 123456789, Hi: 42}
	s := v.DecimalString()
	got, ok := ParseDecimal(s)
	if !ok {
		t.Fatalf("failed to parse %q back", s)
	}
	if !got.Equal(v) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, v)
	}
}

func TestParseDecimalRejectsNegativeAndOversized(t *testing.T) {
	if _, ok := ParseDecimal("-1"); ok {
		t.Fatalf("expected negative literal to be rejected")
	}
	oversized := Max.toBig()
	oversized.Add(oversized, oversized)
	if _, ok := ParseDecimal(oversized.String()); ok {
		t.Fatalf("expected an oversized literal to be rejected")
	}
}

func TestJSONMarshalUnmarshal(t *testing.T) {
	v := FromU64(42)
	data, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"42"` {
		t.Fatalf("expected quoted decimal, got %s", data)
	}

	var got U128
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !got.Equal(v) {
		t.Fatalf("unmarshal mismatch: got %+v want %+v", got, v)
	}
}
