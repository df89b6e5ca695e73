// Package blob implements content-addressed external storage for large
// opaque BINARY payloads, grounded on the teacher's glyph.BlobRegistry/
// BlobRef. A Store compresses bodies at rest with
// github.com/klauspost/compress/zstd and keys them by a SHA-256 CID; this
// is a storage-tier concern entirely outside the positional binary wire
// format of the core protocol, which stays byte-exact and uncompressed.
package blob
