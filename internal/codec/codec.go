// Package codec selects and invokes the block decompression algorithm for
// bundle payloads. The algorithm identifier comes from the low 6 bits of the
// header or block flag words; the game variant decides how the LZHAM
// identifier is interpreted.
package codec

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pg9182/tf2lzham"
	"github.com/pierrec/lz4/v4"

	"github.com/ametori/unityfs/internal/lz4ak"
)

// ErrDecompression is returned when an underlying decompression algorithm
// reports failure.
var ErrDecompression = errors.New("codec: decompression failed")

// ErrUnknownCompression is returned for compression identifiers outside the
// known set. Reserved identifiers are rejected rather than passed through.
var ErrUnknownCompression = errors.New("codec: unknown compression type")

// Compression identifies the block compression algorithm.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionLZMA
	CompressionLZ4
	CompressionLZ4HC
	CompressionLZHAM
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZMA:
		return "lzma"
	case CompressionLZ4:
		return "lz4"
	case CompressionLZ4HC:
		return "lz4hc"
	case CompressionLZHAM:
		return "lzham"
	default:
		return "unknown"
	}
}

// Variant selects per-title behavior for the LZHAM identifier. Arknights
// bundles store an LZ4 derivative under that identifier instead of LZHAM.
type Variant uint8

const (
	VariantStandard Variant = iota
	VariantArknights
)

func (v Variant) String() string {
	switch v {
	case VariantStandard:
		return "standard"
	case VariantArknights:
		return "arknights"
	default:
		return "unknown"
	}
}

// Decoder dispatches block decompression. The zero value decodes with the
// standard variant and no logging.
type Decoder struct {
	variant Variant
	logger  *slog.Logger
}

// NewDecoder creates a Decoder for the given variant. logger may be nil.
func NewDecoder(variant Variant, logger *slog.Logger) *Decoder {
	return &Decoder{variant: variant, logger: logger}
}

func (d *Decoder) log() *slog.Logger {
	if d.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.logger
}

// Decompress inflates src into uncompressedSize bytes using the given
// algorithm. The declared size is trusted from the block table; when the
// algorithm reports fewer bytes the result is truncated and a warning logged,
// matching real-world bundles whose tables slightly misreport sizes. Decode
// failures are hard errors.
func (d *Decoder) Decompress(c Compression, src []byte, uncompressedSize int) ([]byte, error) {
	dst, err := d.decompress(c, src, uncompressedSize)
	if err != nil {
		return nil, err
	}
	if len(dst) != uncompressedSize {
		d.log().Warn("decompressed size mismatch",
			"compression", c.String(),
			"expected", uncompressedSize,
			"actual", len(dst))
	}
	return dst, nil
}

func (d *Decoder) decompress(c Compression, src []byte, uncompressedSize int) ([]byte, error) {
	switch c {
	case CompressionNone:
		out := make([]byte, len(src))
		copy(out, src)
		return out, nil

	case CompressionLZMA:
		return decompressLZMA(src, uncompressedSize)

	case CompressionLZ4, CompressionLZ4HC:
		dst := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrDecompression, err)
		}
		return dst[:n], nil

	case CompressionLZHAM:
		if d.variant == VariantArknights {
			dst, err := lz4ak.Decompress(src, uncompressedSize)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
			}
			return dst, nil
		}
		dst := make([]byte, uncompressedSize)
		n, _, _, err := tf2lzham.Decompress(dst, src)
		if err != nil {
			return nil, fmt.Errorf("%w: lzham: %v", ErrDecompression, err)
		}
		return dst[:n], nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}
