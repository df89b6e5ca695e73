// Package object implements the dynamic node-arena tree that backs
// ObjectWriter/ObjectReader, schema-driven decoding, and the jsonbridge
// package. A tree lives in a shared arena; handles are cheap
// (arena, index) pairs, and the const-flavored ConstObject grants read-only
// access to the same arena as its Object sibling.
package object
