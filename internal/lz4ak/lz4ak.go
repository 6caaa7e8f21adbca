// Package lz4ak decodes the LZ4 variant used by Arknights bundles.
//
// The variant stores each sequence token with its two nibbles transposed and
// each 2-byte match distance in the opposite byte order from standard LZ4
// block framing. Rewriting those two fields in place yields a stream a stock
// LZ4 block decoder accepts, so decoding is a rewrite pass followed by
// lz4.UncompressBlock.
package lz4ak

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// minMatch is the minimum match length implied by every LZ4 sequence; it is
// never encoded on the wire.
const minMatch = 4

// Decompress decodes src into at most uncompressedSize bytes. src is never
// modified; the rewrite operates on an owned copy.
//
// The returned slice may be shorter than uncompressedSize when the encoder
// misreported the size; the caller decides whether that is tolerable. Only a
// failure of the underlying LZ4 decode is an error.
func Decompress(src []byte, uncompressedSize int) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}

	fixed := Rewrite(src, uncompressedSize)

	dst := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(fixed, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4ak: decompress: %w", err)
	}
	return dst[:n], nil
}

// Rewrite returns a copy of src transformed into standard LZ4 block framing:
// token nibbles transposed and match distances byte-swapped. Literal bytes
// pass through untouched.
//
// uncompressedSize bounds the walk: once the sequences scanned so far account
// for that many output bytes, trailing input is left as-is. A stream that ends
// mid-sequence stops the walk early; it is not an error at this stage.
func Rewrite(src []byte, uncompressedSize int) []byte {
	fixed := make([]byte, len(src))
	copy(fixed, src)

	ip := 0 // read cursor into fixed
	op := 0 // output bytes the eventual LZ4 decode will produce
	size := len(fixed)

	for ip < size {
		token := fixed[ip]
		literalLen := token & 0x0F
		matchNibble := token >> 4

		fixed[ip] = literalLen<<4 | matchNibble
		ip++

		litLen := int(literalLen)
		if literalLen == 0x0F {
			litLen += readExtraLength(fixed, &ip)
		}

		ip += litLen
		op += litLen

		if op >= uncompressedSize {
			break
		}
		if ip+2 > size {
			break
		}

		fixed[ip], fixed[ip+1] = fixed[ip+1], fixed[ip]
		ip += 2

		matchLen := int(matchNibble)
		if matchNibble == 0x0F {
			matchLen += readExtraLength(fixed, &ip)
		}
		op += matchLen + minMatch
	}

	return fixed
}

// readExtraLength applies the LZ4 extra-length rule at *ip: sum bytes while
// they read 0xFF, consuming the terminating byte as well.
func readExtraLength(data []byte, ip *int) int {
	length := 0
	for *ip < len(data) {
		b := data[*ip]
		length += int(b)
		*ip++
		if b != 0xFF {
			break
		}
	}
	return length
}
