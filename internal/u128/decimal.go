package u128

import "math/big"

// DecimalString renders v as a base-10 string, for boundaries (JSON,
// CLI flags) where a raw 128-bit value needs a human-typeable form.
// No 128-bit-aware decimal codec exists anywhere in the example pack;
// algorand-go-algorand's ABI encoder reaches for math/big whenever it
// needs arbitrary-precision decimal conversion, so this follows that
// idiom rather than hand-rolling one.
func (v U128) DecimalString() string {
	return v.toBig().String()
}

// ParseDecimal parses a base-10 string into a U128, failing if the
// value is negative or exceeds 2^128-1.
func ParseDecimal(s string) (U128, bool) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return Zero, false
	}
	if n.BitLen() > 128 {
		return Zero, false
	}
	var buf [16]byte
	n.FillBytes(buf[:]) // big-endian
	hi := uint64(0)
	lo := uint64(0)
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(buf[i])
	}
	for i := 8; i < 16; i++ {
		lo = lo<<8 | uint64(buf[i])
	}
	return U128{Lo: lo, Hi: hi}, true
}

func (v U128) toBig() *big.Int {
	n := new(big.Int).SetUint64(v.Hi)
	n.Lsh(n, 64)
	n.Or(n, new(big.Int).SetUint64(v.Lo))
	return n
}

// MarshalJSON renders v as a quoted decimal string.
func (v U128) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.DecimalString() + `"`), nil
}

// UnmarshalJSON parses a quoted decimal string into v.
func (v *U128) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, ok := ParseDecimal(s)
	if !ok {
		return &DecimalParseError{Input: s}
	}
	*v = parsed
	return nil
}

// DecimalParseError reports a malformed decimal u128 literal.
type DecimalParseError struct {
	Input string
}

func (e *DecimalParseError) Error() string {
	return "u128: invalid decimal literal " + e.Input
}
