// Package labelled bridges Go enums (named integer types) and tagged sums
// (an interface implemented by a closed set of arms) to the packer
// protocol's Enumerate and Variant operations. Both go through a static
// label table rather than the Go value's own discriminant. The object form
// names the arm by its label; the binary form writes the label's index in
// the table, so it stays stable when arms are added at the end but changes
// when arms are reordered.
package labelled
