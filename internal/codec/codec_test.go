package codec

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametori/unityfs/internal/testutil"
)

func TestCompressionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", CompressionNone.String())
	assert.Equal(t, "lzma", CompressionLZMA.String())
	assert.Equal(t, "lz4", CompressionLZ4.String())
	assert.Equal(t, "lz4hc", CompressionLZ4HC.String())
	assert.Equal(t, "lzham", CompressionLZHAM.String())
	assert.Equal(t, "unknown", Compression(17).String())
}

func TestDecompressNone(t *testing.T) {
	t.Parallel()

	src := []byte{1, 2, 3, 4}
	d := NewDecoder(VariantStandard, nil)
	out, err := d.Decompress(CompressionNone, src, len(src))
	require.NoError(t, err)
	assert.Equal(t, src, out)

	// Pass-through must copy, never alias the input.
	out[0] = 0xEE
	assert.Equal(t, byte(1), src[0])
}

func TestDecompressLZ4(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("bundle payload block "), 100)
	compressed := testutil.CompressLZ4(t, payload)
	d := NewDecoder(VariantStandard, nil)

	t.Run("lz4", func(t *testing.T) {
		t.Parallel()
		out, err := d.Decompress(CompressionLZ4, compressed, len(payload))
		require.NoError(t, err)
		assert.Equal(t, payload, out)
	})

	t.Run("lz4hc shares the decoder", func(t *testing.T) {
		t.Parallel()
		out, err := d.Decompress(CompressionLZ4HC, compressed, len(payload))
		require.NoError(t, err)
		assert.Equal(t, payload, out)
	})

	t.Run("corrupt stream", func(t *testing.T) {
		t.Parallel()
		_, err := d.Decompress(CompressionLZ4, []byte{0xFF, 0xFF, 0xFF}, 64)
		assert.ErrorIs(t, err, ErrDecompression)
	})
}

func TestDecompressLZMA(t *testing.T) {
	t.Parallel()

	d := NewDecoder(VariantStandard, nil)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		payload := bytes.Repeat([]byte("lzma block content "), 200)
		out, err := d.Decompress(CompressionLZMA, testutil.CompressLZMA(t, payload), len(payload))
		require.NoError(t, err)
		assert.Equal(t, payload, out)
	})

	t.Run("shorter than properties", func(t *testing.T) {
		t.Parallel()
		_, err := d.Decompress(CompressionLZMA, []byte{0x5D, 0x00, 0x00}, 64)
		assert.ErrorIs(t, err, ErrDecompression)
	})
}

func TestDecompressLZHAMStandardRejectsGarbage(t *testing.T) {
	t.Parallel()

	d := NewDecoder(VariantStandard, nil)
	_, err := d.Decompress(CompressionLZHAM, []byte{0xDE, 0xAD, 0xBE, 0xEF}, 32)
	assert.ErrorIs(t, err, ErrDecompression)
}

func TestDecompressLZHAMArknights(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("arknights asset data "), 100)
	stream := testutil.EncodeLZ4Variant(t, testutil.CompressLZ4(t, payload))

	d := NewDecoder(VariantArknights, nil)
	out, err := d.Decompress(CompressionLZHAM, stream, len(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecompressUnknownType(t *testing.T) {
	t.Parallel()

	d := NewDecoder(VariantStandard, nil)
	_, err := d.Decompress(Compression(17), []byte{1, 2, 3}, 3)
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestDecompressSizeMismatchWarns(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("short result "), 50)
	compressed := testutil.CompressLZ4(t, payload)

	var logBuf bytes.Buffer
	d := NewDecoder(VariantStandard, slog.New(slog.NewTextHandler(&logBuf, nil)))

	// Declare one byte more than the block actually inflates to.
	out, err := d.Decompress(CompressionLZ4, compressed, len(payload)+1)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
	assert.Contains(t, logBuf.String(), "size mismatch")
}
