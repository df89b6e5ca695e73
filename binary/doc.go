// Package binary implements the untagged, positional binary codec of spec
// §4.5: Writer packs a value into a byte slice and Reader unpacks one back
// out of it, both driven by the same Visit method an objpack.Writer or
// Reader would use, little-endian throughout via encoding/binary.
package binary
