package objpack

import (
	"github.com/varnix/structpack/object"
	"github.com/varnix/structpack/pack"
	"github.com/varnix/structpack/primitive"
)

// Writer is a pack.Packer that materializes a value into an Object tree. It
// keeps a stack of container cursors and a pending map key, set by
// ObjectNext/MapNext/VariantMatch and consumed by whatever the next
// primitive/container call emits, mirroring the C++ ObjectWriter's cursor +
// pending-key design from spec §4.3.
type Writer struct {
	pack.FailState
	pack.PathTracker

	root     object.Object
	rootSet  bool
	stack    []wframe
	pendKey  string
	hasKey   bool
	pathHold bool
}

type wframe struct {
	cursor   object.Object
	idx      int
	popOnEnd bool
}

// NewWriter returns a Writer ready to receive exactly one top-level value.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteValue visits v against a fresh Writer and returns the resulting tree,
// converting a failed run into a DumpError exactly as spec §7 requires of a
// writer's top-level entry point.
func WriteValue(v pack.Value) (object.Object, error) {
	w := NewWriter()
	v.Visit(w)
	if w.Failed() {
		return object.Object{}, &pack.DumpError{Path: w.FailedPath(), Message: w.Message()}
	}
	return w.root, nil
}

// Root returns the tree built so far. Useful for callers (such as
// binschema's schema-driven decoder) that drive a Writer's Packer methods
// directly instead of through a single Visit call.
func (w *Writer) Root() object.Object { return w.root }

func (w *Writer) Mode() pack.Mode { return pack.ModeWrite }

func (w *Writer) Fail(format string, args ...any) {
	w.FailState.Fail(w.Path(), format, args...)
}

func (w *Writer) Err() error {
	if !w.Failed() {
		return nil
	}
	return &pack.DumpError{Path: w.FailedPath(), Message: w.Message()}
}

func (w *Writer) IsExhaustive() bool { return false }

// target inserts value at the current slot: the root if no container has
// been opened yet, a keyed map insertion if the current cursor is a Map, or
// a list append otherwise.
func (w *Writer) target(value object.Value) object.Object {
	if w.Failed() {
		return object.Empty()
	}
	if len(w.stack) == 0 {
		if w.rootSet {
			w.Fail("a second top-level value was written")
			return object.Empty()
		}
		w.root = object.New(value)
		w.rootSet = true
		return w.root
	}
	top := &w.stack[len(w.stack)-1]
	if top.cursor.Value().Kind == object.Map {
		if !w.hasKey {
			w.Fail("map write with no preceding key")
			return object.Empty()
		}
		key := w.pendKey
		w.hasKey = false
		child, err := top.cursor.Insert(key, value)
		if err != nil {
			w.Fail("%v", err)
			return object.Empty()
		}
		return child
	}
	child, err := top.cursor.Append(value)
	if err != nil {
		w.Fail("%v", err)
		return object.Empty()
	}
	top.idx++
	return child
}

// scalar emits a leaf value and closes out any path segment that was
// pending for it.
func (w *Writer) scalar(value object.Value) {
	w.target(value)
	if w.pathHold {
		w.Pop()
		w.pathHold = false
	}
}

// open emits a new container at the current slot and pushes it as the
// cursor for nested writes; close pops it back off.
func (w *Writer) open(kind object.Value) object.Object {
	child := w.target(kind)
	popOnEnd := w.pathHold
	w.pathHold = false
	w.stack = append(w.stack, wframe{cursor: child, popOnEnd: popOnEnd})
	return child
}

func (w *Writer) close() {
	if len(w.stack) == 0 {
		w.Fail("unbalanced container end")
		return
	}
	f := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if f.popOnEnd {
		w.Pop()
	}
}

func (w *Writer) I32(v *int32, cs ...primitive.Constraint) { w.scalar(object.IntValue(int64(*v))) }
func (w *Writer) I64(v *int64, cs ...primitive.Constraint) { w.scalar(object.IntValue(*v)) }
func (w *Writer) U32(v *uint32, cs ...primitive.Constraint) { w.scalar(object.IntValue(int64(*v))) }
func (w *Writer) U64(v *uint64, cs ...primitive.Constraint) { w.scalar(object.IntValue(int64(*v))) }
func (w *Writer) F32(v *float32, cs ...primitive.Constraint) { w.scalar(object.FloatValue(float64(*v))) }
func (w *Writer) F64(v *float64, cs ...primitive.Constraint) { w.scalar(object.FloatValue(*v)) }
func (w *Writer) Bool(v *bool)                               { w.scalar(object.BoolValue(*v)) }
func (w *Writer) String(v *string, cs ...primitive.Constraint) { w.scalar(object.StringValue(*v)) }

func (w *Writer) Enumerate(labels []string, index *int) {
	if w.Failed() {
		return
	}
	if *index < 0 || *index >= len(labels) {
		w.Fail("enum index %d out of range for %d labels", *index, len(labels))
		return
	}
	w.scalar(object.StringValue(labels[*index]))
}

func (w *Writer) OptionalBegin(has *bool) {
	if w.Failed() {
		return
	}
	if !*has {
		w.scalar(object.NullValue())
	}
	// When *has, the pending slot/path state is left untouched so the next
	// value-emitting call lands exactly where the optional's own value
	// would have.
}

func (w *Writer) OptionalEnd() {}

func (w *Writer) VariantBegin(labels []string) {
	if w.Failed() {
		return
	}
	w.open(object.MapValue())
}

func (w *Writer) VariantMatch(label string) bool {
	if w.Failed() {
		return false
	}
	w.pendKey = label
	w.hasKey = true
	w.PushKey(label)
	w.pathHold = true
	return true
}

func (w *Writer) VariantEnd() { w.close() }

func (w *Writer) Binary(data *[]byte, stride int, cs ...primitive.Constraint) {
	if w.Failed() {
		return
	}
	cp := append([]byte(nil), *data...)
	w.scalar(object.BinaryValue(cp))
}

func (w *Writer) ObjectBegin() {
	if w.Failed() {
		return
	}
	w.open(object.MapValue())
}
func (w *Writer) ObjectEnd() { w.close() }
func (w *Writer) ObjectNext(key string) {
	if w.Failed() {
		return
	}
	w.pendKey = key
	w.hasKey = true
	w.PushKey(key)
	w.pathHold = true
}

func (w *Writer) TupleBegin() {
	if w.Failed() {
		return
	}
	w.open(object.ListValue())
}
func (w *Writer) TupleEnd() { w.close() }
func (w *Writer) TupleNext() {
	if w.Failed() || len(w.stack) == 0 {
		return
	}
	top := &w.stack[len(w.stack)-1]
	w.PushIndex(top.idx)
	w.pathHold = true
}

func (w *Writer) MapBegin(cs ...primitive.Constraint) {
	if w.Failed() {
		return
	}
	w.open(object.MapValue())
}
func (w *Writer) MapEnd() { w.close() }
func (w *Writer) MapNext(key *string) bool {
	if w.Failed() {
		return false
	}
	w.pendKey = *key
	w.hasKey = true
	w.PushKey(*key)
	w.pathHold = true
	return true
}

func (w *Writer) ListBegin() {
	if w.Failed() {
		return
	}
	w.open(object.ListValue())
}
func (w *Writer) ListEnd() { w.close() }
func (w *Writer) ListNext() bool {
	if w.Failed() || len(w.stack) == 0 {
		return false
	}
	top := &w.stack[len(w.stack)-1]
	w.PushIndex(top.idx)
	w.pathHold = true
	return true
}

// TrivialBegin/TrivialEnd are ignored: ObjectWriter always does the full
// per-field traversal, per spec §9's recommended rule that only the binary
// codec honors the hint.
func (w *Writer) TrivialBegin(size int) {}
func (w *Writer) TrivialEnd(size int)   {}
