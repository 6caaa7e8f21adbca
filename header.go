package unityfs

import "github.com/ametori/unityfs/internal/codec"

// Signature is the literal identifying the supported container layout.
const Signature = "UnityFS"

// headerAlignVersion is the first format version that pads the header to a
// 16-byte boundary before the block table.
const headerAlignVersion = 7

// Compression identifies the block compression algorithm.
type Compression = codec.Compression

// Compression constants re-exported from the codec package.
const (
	CompressionNone  = codec.CompressionNone
	CompressionLZMA  = codec.CompressionLZMA
	CompressionLZ4   = codec.CompressionLZ4
	CompressionLZ4HC = codec.CompressionLZ4HC
	CompressionLZHAM = codec.CompressionLZHAM
)

// Variant selects per-title behavior for the LZHAM compression identifier.
type Variant = codec.Variant

// Variant constants re-exported from the codec package.
const (
	VariantStandard  = codec.VariantStandard
	VariantArknights = codec.VariantArknights
)

// HeaderFlags is the bit-flag field of the bundle header. The low 6 bits
// select the block table's compression; the higher bits describe table
// placement.
type HeaderFlags uint32

const (
	compressionMask = 0x3F

	// FlagBlocksAndDirCombined marks the block table and file directory as
	// stored together in front of the payload.
	FlagBlocksAndDirCombined HeaderFlags = 0x40

	// FlagBlockInfoAtEnd marks the block table as stored at the end of the
	// file. Decoded for inspection only; the write path always stores the
	// table before the payload.
	FlagBlockInfoAtEnd HeaderFlags = 0x80

	// FlagBlockInfoNeedsAlignment requires 16-byte alignment before the
	// first compressed block.
	FlagBlockInfoNeedsAlignment HeaderFlags = 0x200
)

// Compression returns the algorithm the block table itself is compressed with.
func (f HeaderFlags) Compression() Compression {
	return Compression(f & compressionMask)
}

// BlocksAndDirCombined reports whether the table and directory are stored
// together in front of the payload.
func (f HeaderFlags) BlocksAndDirCombined() bool {
	return f&FlagBlocksAndDirCombined != 0
}

// BlockInfoAtEnd reports whether the table is stored at the end of the file.
func (f HeaderFlags) BlockInfoAtEnd() bool {
	return f&FlagBlockInfoAtEnd != 0
}

// BlockInfoNeedsAlignment reports whether the first compressed block is
// 16-byte aligned.
func (f HeaderFlags) BlockInfoNeedsAlignment() bool {
	return f&FlagBlockInfoNeedsAlignment != 0
}

// Header is the bundle header.
//
// Size is the declared total bundle size. CompressedBlocksInfoSize and
// UncompressedBlocksInfoSize describe the block table blob that follows the
// header.
type Header struct {
	Version                    uint32
	UnityVersion               string
	UnityRevision              string
	Size                       int64
	CompressedBlocksInfoSize   uint32
	UncompressedBlocksInfoSize uint32
	Flags                      HeaderFlags
}
