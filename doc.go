// Package unityfs converts UnityFS asset bundles into equivalent bundles
// whose payload is stored uncompressed.
//
// A bundle is a chunked container: a header, a block table listing
// independently compressed chunks of the payload stream, and a directory of
// file entries addressing the decompressed stream. Convert inflates every
// block (LZMA, LZ4, LZ4HC, LZHAM, or the Arknights LZ4 derivative stored
// under the LZHAM identifier) and rewrites the container around a single
// stored block, preserving the file directory byte-for-byte.
package unityfs
