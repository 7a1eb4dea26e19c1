package segment

import (
	"fmt"
	"strings"
)

// BinaryString is a header field value spelled out bit by bit, most
// significant bit first. Only the symbols '0' and '1' are allowed.
type BinaryString string

// NewBinaryString validates s and returns it as a BinaryString.
func NewBinaryString(s string) (BinaryString, error) {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return "", fmt.Errorf("binary string must contain only zero or one: %q", s)
		}
	}
	return BinaryString(s), nil
}

// ZeroBinaryString returns an all-zero bit string of the given length.
func ZeroBinaryString(bits int) BinaryString {
	return BinaryString(strings.Repeat("0", bits))
}

// BinaryStringFromUint renders v as a zero-padded bit string of exactly
// bits bits. Values wider than bits are truncated to the low bits.
func BinaryStringFromUint(v uint64, bits int) BinaryString {
	buf := make([]byte, bits)
	for i := bits - 1; i >= 0; i-- {
		buf[i] = '0' + byte(v&1)
		v >>= 1
	}
	return BinaryString(buf)
}

// BinaryStringFromBytes expands b into its bit representation.
func BinaryStringFromBytes(b []byte) BinaryString {
	buf := make([]byte, 0, len(b)*8)
	for _, octet := range b {
		for bit := 7; bit >= 0; bit-- {
			buf = append(buf, '0'+(octet>>bit)&1)
		}
	}
	return BinaryString(buf)
}

// IsAllZero reports whether the string is non-empty and every bit is zero.
func (b BinaryString) IsAllZero() bool {
	if len(b) == 0 {
		return false
	}
	for i := 0; i < len(b); i++ {
		if b[i] != '0' {
			return false
		}
	}
	return true
}

// Bytes packs the bit string into bytes, 8 bits per output byte, most
// significant bit first. The length must be a multiple of 8.
func (b BinaryString) Bytes() ([]byte, error) {
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("bit string length %d is not byte aligned", len(b))
	}
	out := make([]byte, len(b)/8)
	for i := 0; i < len(b); i++ {
		if b[i] == '1' {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	return out, nil
}
