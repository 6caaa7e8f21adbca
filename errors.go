package unityfs

import (
	"errors"

	"github.com/ametori/unityfs/internal/codec"
	"github.com/ametori/unityfs/internal/wire"
)

// Sentinel errors for bundle conversion.
var (
	// ErrFormat is returned when the input does not carry the UnityFS
	// signature or its block table is malformed.
	ErrFormat = errors.New("unityfs: not a UnityFS bundle")

	// ErrSizeOverflow is returned when a rewritten size field would not fit
	// its wire representation.
	ErrSizeOverflow = errors.New("unityfs: size overflow")
)

// Errors re-exported from internal packages.
var (
	// ErrTruncated is returned when the bundle ends before a structure it
	// declares.
	ErrTruncated = wire.ErrShortBuffer

	// ErrDecompression is returned when a block fails to decompress. A single
	// bad block aborts the whole conversion: file offsets assume a gap-free
	// concatenated payload, so skipping is never sound.
	ErrDecompression = codec.ErrDecompression

	// ErrUnknownCompression is returned for compression identifiers outside
	// the known set.
	ErrUnknownCompression = codec.ErrUnknownCompression
)
