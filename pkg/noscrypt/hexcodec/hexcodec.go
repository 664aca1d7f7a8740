// Package hexcodec converts between the hex text used at the public API
// boundary and the fixed-size byte buffers handed to the signing engine.
//
// Decoding is lenient: whitespace is ignored, a single leading 0x/0X is
// stripped and both letter cases are accepted. Encoding is canonical: lowercase,
// no prefix, two characters per byte.
package hexcodec

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrInvalidLength reports hex text with an odd number of digits.
	ErrInvalidLength = errors.New("hexcodec: hex string must have an even number of characters")

	// ErrInvalidEncoding reports a character outside [0-9a-fA-F].
	ErrInvalidEncoding = errors.New("hexcodec: invalid hex string")

	// ErrSizeMismatch reports a decoded buffer whose length differs from the
	// size the caller asked for.
	ErrSizeMismatch = errors.New("hexcodec: decoded size mismatch")
)

// Decode parses hex text into bytes.
func Decode(text string) ([]byte, error) {
	clean := normalize(text)
	if len(clean)%2 != 0 {
		return nil, ErrInvalidLength
	}
	for i := 0; i < len(clean); i++ {
		if fromHexChar(clean[i]) < 0 {
			return nil, ErrInvalidEncoding
		}
	}
	out := make([]byte, len(clean)/2)
	for i := range out {
		out[i] = byte(fromHexChar(clean[2*i])<<4 | fromHexChar(clean[2*i+1]))
	}
	return out, nil
}

// DecodeFixed parses hex text and requires exactly size bytes of output.
// Length failures wrap ErrSizeMismatch.
func DecodeFixed(text string, size int) ([]byte, error) {
	b, err := Decode(text)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrSizeMismatch, size, len(b))
	}
	return b, nil
}

// Encode renders b as lowercase hex.
func Encode(b []byte) string {
	return hex.EncodeToString(b)
}

func normalize(text string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if len(clean) >= 2 && clean[0] == '0' && (clean[1] == 'x' || clean[1] == 'X') {
		clean = clean[2:]
	}
	return clean
}

func fromHexChar(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
