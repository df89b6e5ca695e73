// Package randompack generates well-formed random values for any type that
// implements pack.Value, the Go counterpart of datapack's RandomReader
// (util/random.hpp): a pack.Packer running in pack.ModeRead whose answers
// come from an RNG instead of a wire format. It exists to drive the
// round-trip property ("any value generated this way survives an
// encode/decode cycle unchanged") without hand-written fixtures.
package randompack
