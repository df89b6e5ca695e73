// Package primitive enumerates the primitive value kinds that the packer
// protocol moves across a visit, and the constraints that can be attached to
// a value site (range, length, ordering).
//
// Constraints are advisory for writers: nothing stops a writer from emitting
// an out-of-range value. Readers enforce them at decode time: a decoded
// value that fails validation marks the reader failed, which its top-level
// entry point reports as a pack.LoadError.
package primitive
