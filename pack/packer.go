package pack

import "github.com/varnix/structpack/primitive"

// Packer is the full protocol surface of §4.1. Every concrete packer
// (binary, object, schema, random, debug) implements it; every user type
// drives it through a single Visit method.
//
// Ordering contract: within any container, children are emitted strictly
// between Begin and End, each preceded by the appropriate Next call. No
// implementation may reorder them.
type Packer interface {
	Mode() Mode

	// Primitives. Write reads through v; Read writes through v; Define
	// ignores v and records the kind.
	I32(v *int32, cs ...primitive.Constraint)
	I64(v *int64, cs ...primitive.Constraint)
	U32(v *uint32, cs ...primitive.Constraint)
	U64(v *uint64, cs ...primitive.Constraint)
	F32(v *float32, cs ...primitive.Constraint)
	F64(v *float64, cs ...primitive.Constraint)
	Bool(v *bool)
	String(v *string, cs ...primitive.Constraint)

	// Enumerate treats *index as an index into labels. Write emits the
	// chosen index, Read decodes an index into *index, Define just records
	// labels.
	Enumerate(labels []string, index *int)

	// Optional brackets an optional value. *has is the input on write (set
	// by the caller before calling) and the output on read.
	OptionalBegin(has *bool)
	OptionalEnd()

	// Variant opens a tagged choice among labels. VariantMatch both asserts
	// (write/define) and queries (read) whether label is the active arm.
	VariantBegin(labels []string)
	VariantMatch(label string) bool
	VariantEnd()

	// Binary moves a raw byte payload. stride is the element size when the
	// binary represents a packed array of fixed-size elements, 0 for opaque
	// bytes. Write sends len(*data) (divided by stride when set); Read
	// allocates and fills *data; Define just records the site.
	Binary(data *[]byte, stride int, cs ...primitive.Constraint)

	// Object brackets a fixed, named-field aggregate.
	ObjectBegin()
	ObjectEnd()
	ObjectNext(key string)

	// Tuple brackets a fixed, positional aggregate.
	TupleBegin()
	TupleEnd()
	TupleNext()

	// Map brackets a variable-length keyed aggregate. MapNext yields the
	// next key: on read it reports whether another entry exists and sets
	// *key; on write it emits the key the caller already set in *key and
	// always returns true.
	MapBegin(cs ...primitive.Constraint)
	MapEnd()
	MapNext(key *string) bool

	// List brackets a variable-length positional aggregate. ListNext
	// reports (read) whether another element exists, or opens (write) the
	// next slot; it always returns true on write. On define it returns true
	// once per list, admitting the single element shape, and false after.
	ListBegin()
	ListEnd()
	ListNext() bool

	// TrivialBegin/TrivialEnd bracket a region that is byte-identical to a
	// flat POD of size bytes. A packer may fast-path the region as a single
	// binary copy, but must still accept the full sub-traversal from a
	// packer that ignores the hint.
	TrivialBegin(size int)
	TrivialEnd(size int)

	// Fail marks the packer as failed with a human-readable, path-qualified
	// message. Subsequent calls on a failed reader are no-ops that return
	// zero values; subsequent calls on a failed writer/definer are no-ops
	// too. Once failed, a packer stays failed.
	Fail(format string, args ...any)
	// Failed reports whether Fail has been called.
	Failed() bool
	// Err returns the recorded failure, or nil.
	Err() error

	// IsExhaustive reports whether a generic variant matcher must keep
	// probing every label even after a match, in order to detect repeated
	// labels. Only meaningful to readers; other modes report false.
	IsExhaustive() bool

	// Path returns the current path-qualified location, e.g. "foo.bar[3].baz",
	// for inclusion in error messages.
	Path() string
}
