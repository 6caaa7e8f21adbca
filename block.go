package unityfs

// BlockFlags is the 16-bit flag word of a block descriptor. Only the low
// 6 bits, the compression identifier, are meaningful today.
type BlockFlags uint16

// Compression returns the algorithm the block payload is compressed with.
func (f BlockFlags) Compression() Compression {
	return Compression(f & compressionMask)
}

// Block describes one independently compressed chunk of the payload stream.
// Blocks are ordered; compressed payloads appear in the stream in table order.
type Block struct {
	UncompressedSize uint32
	CompressedSize   uint32
	Flags            BlockFlags
}
