package unityfs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ametori/unityfs/internal/codec"
	"github.com/ametori/unityfs/internal/wire"
)

type converter struct {
	variant  Variant
	logger   *slog.Logger
	progress ProgressFunc
	workers  int
}

func (c *converter) report(ev ProgressEvent) {
	if c.progress != nil {
		c.progress(ev)
	}
}

// Convert reads the bundle in data and writes an equivalent bundle whose
// payload is stored uncompressed to w.
//
// Conversion runs the stages strictly in order: parse the header and table,
// inflate every payload block, concatenate the results in table order,
// synthesize a table describing a single stored block, and serialize the new
// container. File entries are copied through byte-for-byte. Any block decode
// failure aborts the conversion; no partial output is valid.
func Convert(data []byte, w io.Writer, opts ...Option) error {
	cfg := &converter{workers: 1}
	for _, opt := range opts {
		opt(cfg)
	}

	cfg.report(ProgressEvent{Stage: StageParsing})
	b, err := parse(data, codec.NewDecoder(VariantStandard, cfg.logger))
	if err != nil {
		return err
	}

	payload, err := cfg.decompressBlocks(b)
	if err != nil {
		return err
	}

	cfg.report(ProgressEvent{Stage: StageRebuilding})
	table, err := synthesizeTable(b.Entries, len(payload))
	if err != nil {
		return err
	}

	cfg.report(ProgressEvent{Stage: StageWriting})
	return writeBundle(w, b.Header, table, payload)
}

// decompressBlocks inflates every payload block and concatenates the results
// in table order. Blocks are independent, so inflation fans out across the
// configured workers; concatenation order is fixed by the result slots.
func (c *converter) decompressBlocks(b *Bundle) ([]byte, error) {
	spans := make([][]byte, len(b.Blocks))
	off := b.blocksOff
	for i, blk := range b.Blocks {
		end := off + int(blk.CompressedSize)
		if end < off || end > len(b.data) {
			return nil, fmt.Errorf("unityfs: block %d: %w", i, ErrTruncated)
		}
		spans[i] = b.data[off:end]
		off = end
	}

	workers := c.workers
	if workers < 1 {
		workers = 1
	}
	dec := codec.NewDecoder(c.variant, c.logger)
	results := make([][]byte, len(spans))

	var eg errgroup.Group
	eg.SetLimit(workers)
	var done atomic.Int64
	for i := range spans {
		i := i
		eg.Go(func() error {
			blk := b.Blocks[i]
			out, err := dec.Decompress(blk.Flags.Compression(), spans[i], int(blk.UncompressedSize))
			if err != nil {
				return fmt.Errorf("unityfs: block %d: %w", i, err)
			}
			results[i] = out
			c.report(ProgressEvent{
				Stage:             StageDecompressing,
				BlocksDone:        int(done.Add(1)),
				BlocksTotal:       len(spans),
				BlockCompressed:   int64(len(spans[i])),
				BlockUncompressed: int64(len(out)),
			})
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	payload := make([]byte, 0, total)
	for _, r := range results {
		payload = append(payload, r...)
	}
	return payload, nil
}

// synthesizeTable serializes a replacement table blob: the 16 reserved bytes,
// one stored block covering the whole payload, and the original directory.
func synthesizeTable(entries []FileEntry, payloadLen int) ([]byte, error) {
	if uint64(payloadLen) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload is %d bytes", ErrSizeOverflow, payloadLen)
	}

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)

	err := errors.Join(
		w.Bytes(make([]byte, 16)),
		w.Uint32(1),
		w.Uint32(uint32(payloadLen)),
		w.Uint32(uint32(payloadLen)),
		w.Uint16(0),
		w.Uint32(uint32(len(entries))),
	)
	for _, e := range entries {
		err = errors.Join(err,
			w.Int64(e.Offset),
			w.Int64(e.Size),
			w.Uint32(e.Status),
			w.CString(e.Path),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("unityfs: synthesize table: %w", err)
	}
	return buf.Bytes(), nil
}

// writeBundle serializes the output container: rewritten header, table blob,
// then the stored payload. The declared total size accounts for the v7+
// header padding even though it is written after the size field.
func writeBundle(w io.Writer, h Header, table, payload []byte) error {
	ww := wire.NewWriter(w)

	if err := errors.Join(
		ww.CString(Signature),
		ww.Uint32(h.Version),
		ww.CString(h.UnityVersion),
		ww.CString(h.UnityRevision),
	); err != nil {
		return fmt.Errorf("unityfs: write header: %w", err)
	}

	if uint64(len(table)) > math.MaxUint32 {
		return fmt.Errorf("%w: table is %d bytes", ErrSizeOverflow, len(table))
	}

	headerSize := ww.Pos() + 8 + 4 + 4 + 4
	if h.Version >= headerAlignVersion {
		headerSize = wire.AlignedSize(headerSize, 16)
	}
	total := int64(headerSize) + int64(len(table)) + int64(len(payload))

	err := errors.Join(
		ww.Int64(total),
		ww.Uint32(uint32(len(table))),
		ww.Uint32(uint32(len(table))),
		ww.Uint32(uint32(FlagBlocksAndDirCombined)),
	)
	if h.Version >= headerAlignVersion {
		err = errors.Join(err, ww.Align(16))
	}
	err = errors.Join(err, ww.Bytes(table), ww.Bytes(payload))
	if err != nil {
		return fmt.Errorf("unityfs: write bundle: %w", err)
	}
	return nil
}
