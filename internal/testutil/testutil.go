// Package testutil builds compressed block fixtures for tests.
package testutil

import (
	"bytes"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz/lzma"
)

// CompressLZ4 compresses payload into a single LZ4 block using the library
// encoder. The payload must be compressible.
func CompressLZ4(tb testing.TB, payload []byte) []byte {
	tb.Helper()

	dst := make([]byte, lz4.CompressBlockBound(len(payload)))
	n, err := lz4.CompressBlock(payload, dst, nil)
	require.NoError(tb, err)
	require.Positive(tb, n, "fixture payload must be compressible")
	return dst[:n]
}

// CompressLZMA compresses payload into bundle LZMA framing: the 5-byte
// properties blob followed by the raw stream. The encoder's classic 13-byte
// header is cut down to its properties.
func CompressLZMA(tb testing.TB, payload []byte) []byte {
	tb.Helper()

	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	require.NoError(tb, err)
	_, err = w.Write(payload)
	require.NoError(tb, err)
	require.NoError(tb, w.Close())

	full := buf.Bytes()
	require.Greater(tb, len(full), 13)
	return append(append([]byte{}, full[:5]...), full[13:]...)
}

// EncodeLZ4Variant converts a standard LZ4 block into the Arknights framing:
// token nibbles transposed, match distances byte-swapped.
func EncodeLZ4Variant(tb testing.TB, block []byte) []byte {
	tb.Helper()

	readExtra := func(b []byte, ip *int) int {
		n := 0
		for *ip < len(b) {
			v := b[*ip]
			n += int(v)
			*ip++
			if v != 0xFF {
				break
			}
		}
		return n
	}

	out := bytes.Clone(block)
	ip := 0
	for ip < len(out) {
		token := out[ip]
		litLen := int(token >> 4)
		matchNibble := int(token & 0x0F)
		out[ip] = token<<4 | token>>4
		ip++
		if litLen == 0x0F {
			litLen += readExtra(out, &ip)
		}
		ip += litLen
		if ip+2 > len(out) {
			break
		}
		out[ip], out[ip+1] = out[ip+1], out[ip]
		ip += 2
		if matchNibble == 0x0F {
			readExtra(out, &ip)
		}
	}
	return out
}
