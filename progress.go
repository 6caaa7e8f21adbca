package unityfs

// ProgressStage identifies the current phase of a conversion.
type ProgressStage int

const (
	// StageParsing indicates the header and block table are being read.
	StageParsing ProgressStage = iota

	// StageDecompressing indicates payload blocks are being inflated.
	StageDecompressing

	// StageRebuilding indicates the replacement header and table are being
	// synthesized.
	StageRebuilding

	// StageWriting indicates the output bundle is being written.
	StageWriting
)

// ProgressEvent represents a progress update during conversion.
type ProgressEvent struct {
	Stage ProgressStage

	// BlocksDone and BlocksTotal track block decompression. They are zero
	// outside StageDecompressing.
	BlocksDone  int
	BlocksTotal int

	// BlockCompressed and BlockUncompressed are the sizes of the block that
	// just finished, in bytes.
	BlockCompressed   int64
	BlockUncompressed int64
}

// ProgressFunc receives progress updates during conversion.
// Implementations must be safe for concurrent calls.
type ProgressFunc func(ProgressEvent)
