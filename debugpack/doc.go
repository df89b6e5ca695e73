// Package debugpack implements the Object tree textual rendering of spec
// §6: a pack.Packer running in pack.ModeWrite that produces one line per
// scalar, four-space indentation per nesting level, and bracket/annotation
// markers for containers — "(object, trivial size = N)", "(enum, label)",
// "(variant, label)", "(optional, has_value|no_value)", "(list, trivial)"
// — grounded on original_source's test/util/debug.cpp fixture.
package debugpack
