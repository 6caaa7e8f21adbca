package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// lzmaPropsSize is the size of the properties blob stored in front of the raw
// LZMA stream inside a bundle block: one coder byte plus a 32-bit little-endian
// dictionary size.
const lzmaPropsSize = 5

// decompressLZMA inflates a bundle LZMA block. Bundles store the 5-byte
// properties blob followed by the raw stream with no size field, so a classic
// .lzma header is synthesized from the props and the declared uncompressed
// size before handing the stream to the decoder.
func decompressLZMA(src []byte, uncompressedSize int) ([]byte, error) {
	if len(src) < lzmaPropsSize {
		return nil, fmt.Errorf("%w: lzma: stream shorter than %d-byte properties", ErrDecompression, lzmaPropsSize)
	}

	header := make([]byte, lzmaPropsSize+8)
	copy(header, src[:lzmaPropsSize])
	binary.LittleEndian.PutUint64(header[lzmaPropsSize:], uint64(uncompressedSize))

	r, err := lzma.NewReader(io.MultiReader(bytes.NewReader(header), bytes.NewReader(src[lzmaPropsSize:])))
	if err != nil {
		return nil, fmt.Errorf("%w: lzma: %v", ErrDecompression, err)
	}

	dst := make([]byte, uncompressedSize)
	n, err := io.ReadFull(r, dst)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: lzma: %v", ErrDecompression, err)
	}
	return dst[:n], nil
}
