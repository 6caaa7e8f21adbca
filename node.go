package unityfs

// FileEntry locates one logical file within the decompressed, concatenated
// payload stream. Status is opaque and passed through unmodified; conversion
// never reorders or renames entries.
type FileEntry struct {
	Offset int64
	Size   int64
	Status uint32
	Path   string
}
