package unityfs

import (
	"fmt"

	"github.com/ametori/unityfs/internal/codec"
	"github.com/ametori/unityfs/internal/wire"
)

// Bundle is a parsed UnityFS container: its header, block table, and file
// directory. The backing buffer is retained so block payloads can be sliced
// without copying; callers must not modify it while the Bundle is in use.
type Bundle struct {
	Header  Header
	Blocks  []Block
	Entries []FileEntry

	data      []byte
	blocksOff int // offset of the first compressed block payload
}

// Parse reads the bundle header, block table, and file directory from data.
// The payload blocks themselves are not inflated.
func Parse(data []byte) (*Bundle, error) {
	return parse(data, codec.NewDecoder(codec.VariantStandard, nil))
}

func parse(data []byte, tableDec *codec.Decoder) (*Bundle, error) {
	r := wire.NewReader(data)

	sig, err := r.CString()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if sig != Signature {
		return nil, fmt.Errorf("%w: signature %q", ErrFormat, sig)
	}

	var h Header
	if h.Version, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("unityfs: read header: %w", err)
	}
	if h.UnityVersion, err = r.CString(); err != nil {
		return nil, fmt.Errorf("unityfs: read header: %w", err)
	}
	if h.UnityRevision, err = r.CString(); err != nil {
		return nil, fmt.Errorf("unityfs: read header: %w", err)
	}
	if h.Size, err = r.Int64(); err != nil {
		return nil, fmt.Errorf("unityfs: read header: %w", err)
	}
	if h.CompressedBlocksInfoSize, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("unityfs: read header: %w", err)
	}
	if h.UncompressedBlocksInfoSize, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("unityfs: read header: %w", err)
	}
	flags, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("unityfs: read header: %w", err)
	}
	h.Flags = HeaderFlags(flags)

	if h.Version >= headerAlignVersion {
		r.Align(16)
	}

	raw, err := r.Span(int(h.CompressedBlocksInfoSize))
	if err != nil {
		return nil, fmt.Errorf("unityfs: block table: %w", err)
	}

	// The table is always inflated with the standard variant, whatever the
	// game; only payload blocks use the variant codec.
	info, err := tableDec.Decompress(h.Flags.Compression(), raw, int(h.UncompressedBlocksInfoSize))
	if err != nil {
		return nil, fmt.Errorf("unityfs: block table: %w", err)
	}

	blocks, entries, err := parseBlocksInfo(info)
	if err != nil {
		return nil, err
	}

	if h.Flags.BlockInfoNeedsAlignment() {
		r.Align(16)
	}

	return &Bundle{
		Header:    h,
		Blocks:    blocks,
		Entries:   entries,
		data:      data,
		blocksOff: r.Pos(),
	}, nil
}

// parseBlocksInfo decodes the inflated table blob: 16 reserved bytes, the
// block descriptors, then the file directory.
func parseBlocksInfo(info []byte) ([]Block, []FileEntry, error) {
	r := wire.NewReader(info)

	if _, err := r.Span(16); err != nil {
		return nil, nil, fmt.Errorf("unityfs: block table: %w", err)
	}

	blockCount, err := r.Uint32()
	if err != nil {
		return nil, nil, fmt.Errorf("unityfs: block table: %w", err)
	}
	// 10 bytes per descriptor; a larger count cannot be honest.
	if int64(blockCount)*10 > int64(r.Remaining()) {
		return nil, nil, fmt.Errorf("%w: block count %d", ErrFormat, blockCount)
	}

	blocks := make([]Block, blockCount)
	for i := range blocks {
		if blocks[i].UncompressedSize, err = r.Uint32(); err != nil {
			return nil, nil, fmt.Errorf("unityfs: block %d: %w", i, err)
		}
		if blocks[i].CompressedSize, err = r.Uint32(); err != nil {
			return nil, nil, fmt.Errorf("unityfs: block %d: %w", i, err)
		}
		f, err := r.Uint16()
		if err != nil {
			return nil, nil, fmt.Errorf("unityfs: block %d: %w", i, err)
		}
		blocks[i].Flags = BlockFlags(f)
	}

	entryCount, err := r.Uint32()
	if err != nil {
		return nil, nil, fmt.Errorf("unityfs: directory: %w", err)
	}
	// 21 bytes minimum per entry (two i64, a u32, an empty path).
	if int64(entryCount)*21 > int64(r.Remaining()) {
		return nil, nil, fmt.Errorf("%w: entry count %d", ErrFormat, entryCount)
	}

	entries := make([]FileEntry, entryCount)
	for i := range entries {
		if entries[i].Offset, err = r.Int64(); err != nil {
			return nil, nil, fmt.Errorf("unityfs: entry %d: %w", i, err)
		}
		if entries[i].Size, err = r.Int64(); err != nil {
			return nil, nil, fmt.Errorf("unityfs: entry %d: %w", i, err)
		}
		if entries[i].Status, err = r.Uint32(); err != nil {
			return nil, nil, fmt.Errorf("unityfs: entry %d: %w", i, err)
		}
		if entries[i].Path, err = r.CString(); err != nil {
			return nil, nil, fmt.Errorf("unityfs: entry %d: %w", i, err)
		}
	}

	return blocks, entries, nil
}
