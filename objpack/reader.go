package objpack

import (
	"github.com/varnix/structpack/object"
	"github.com/varnix/structpack/pack"
	"github.com/varnix/structpack/primitive"
)

// Reader is a pack.Packer that walks an existing Object tree in lockstep
// with a value's Visit call, the read-side counterpart of Writer. A
// mismatch between the visit order and the tree shape calls Fail with a
// path-qualified message rather than raising immediately, per spec §7.
type Reader struct {
	pack.FailState
	pack.PathTracker

	root         object.ConstObject
	rootConsumed bool
	stack        []rframe
	pending      object.ConstObject
	hasPending   bool
	pathHold     bool
}

type rframe struct {
	cursor     object.ConstObject
	next       object.ConstObject
	idx        int
	popOnEnd   bool
	ordered    bool
	lastKey    string
	hasLastKey bool
}

// NewReader returns a Reader over root, ready to drive exactly one
// top-level value.
func NewReader(root object.ConstObject) *Reader {
	return &Reader{root: root}
}

// ReadValue visits v against a Reader positioned at root, converting a
// failed run into a LoadError exactly as spec §7 requires.
func ReadValue(root object.ConstObject, v pack.Value) error {
	r := NewReader(root)
	v.Visit(r)
	if r.Failed() {
		return &pack.LoadError{Path: r.FailedPath(), Message: r.Message()}
	}
	return nil
}

func (r *Reader) Mode() pack.Mode { return pack.ModeRead }

func (r *Reader) Fail(format string, args ...any) {
	r.FailState.Fail(r.Path(), format, args...)
}

func (r *Reader) Err() error {
	if !r.Failed() {
		return nil
	}
	return &pack.LoadError{Path: r.FailedPath(), Message: r.Message()}
}

func (r *Reader) IsExhaustive() bool { return false }

// target resolves the node the next read should consume: a value already
// looked up by ObjectNext/MapNext/ListNext/TupleNext/VariantMatch, or the
// root for the very first call.
func (r *Reader) target() (object.ConstObject, bool) {
	if r.Failed() {
		return object.EmptyConst(), false
	}
	if r.hasPending {
		n := r.pending
		r.hasPending = false
		return n, true
	}
	if len(r.stack) == 0 {
		if r.rootConsumed {
			r.Fail("a second top-level value was read")
			return object.EmptyConst(), false
		}
		r.rootConsumed = true
		return r.root, true
	}
	r.Fail("read with no preceding key/index")
	return object.EmptyConst(), false
}

func (r *Reader) scalar() (object.ConstObject, bool) {
	n, ok := r.target()
	if r.pathHold {
		r.Pop()
		r.pathHold = false
	}
	return n, ok
}

func (r *Reader) open(kind object.ValueKind) object.ConstObject {
	n, ok := r.target()
	popOnEnd := r.pathHold
	r.pathHold = false
	if !ok {
		r.stack = append(r.stack, rframe{popOnEnd: popOnEnd})
		return object.EmptyConst()
	}
	if n.Value().Kind != kind {
		r.Fail("expected %s, got %s", kind, n.Value().Kind)
	}
	r.stack = append(r.stack, rframe{cursor: n, next: n.Child(), popOnEnd: popOnEnd})
	return n
}

func (r *Reader) close() {
	if len(r.stack) == 0 {
		r.Fail("unbalanced container end")
		return
	}
	f := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if f.popOnEnd {
		r.Pop()
	}
}

func (r *Reader) I32(v *int32, cs ...primitive.Constraint) {
	n, ok := r.scalar()
	if !ok {
		*v = 0
		return
	}
	iv, err := n.GetInt()
	if err != nil {
		r.Fail("%v", err)
		*v = 0
		return
	}
	if rg, has := primitive.FindRange(cs); has && !rg.Validate(float64(iv)) {
		r.Fail("i32 %d violates range [%v,%v]", iv, rg.Lower, rg.Upper)
		*v = 0
		return
	}
	*v = int32(iv)
}

func (r *Reader) I64(v *int64, cs ...primitive.Constraint) {
	n, ok := r.scalar()
	if !ok {
		*v = 0
		return
	}
	iv, err := n.GetInt()
	if err != nil {
		r.Fail("%v", err)
		*v = 0
		return
	}
	if rg, has := primitive.FindRange(cs); has && !rg.Validate(float64(iv)) {
		r.Fail("i64 %d violates range [%v,%v]", iv, rg.Lower, rg.Upper)
		*v = 0
		return
	}
	*v = iv
}

func (r *Reader) U32(v *uint32, cs ...primitive.Constraint) {
	n, ok := r.scalar()
	if !ok {
		*v = 0
		return
	}
	iv, err := n.GetInt()
	if err != nil {
		r.Fail("%v", err)
		*v = 0
		return
	}
	if rg, has := primitive.FindRange(cs); has && !rg.Validate(float64(iv)) {
		r.Fail("u32 %d violates range [%v,%v]", iv, rg.Lower, rg.Upper)
		*v = 0
		return
	}
	*v = uint32(iv)
}

func (r *Reader) U64(v *uint64, cs ...primitive.Constraint) {
	n, ok := r.scalar()
	if !ok {
		*v = 0
		return
	}
	iv, err := n.GetInt()
	if err != nil {
		r.Fail("%v", err)
		*v = 0
		return
	}
	if rg, has := primitive.FindRange(cs); has && !rg.Validate(float64(iv)) {
		r.Fail("u64 %d violates range [%v,%v]", iv, rg.Lower, rg.Upper)
		*v = 0
		return
	}
	*v = uint64(iv)
}

func (r *Reader) F32(v *float32, cs ...primitive.Constraint) {
	n, ok := r.scalar()
	if !ok {
		*v = 0
		return
	}
	fv, err := n.GetFloat()
	if err != nil {
		r.Fail("%v", err)
		*v = 0
		return
	}
	if rg, has := primitive.FindRange(cs); has && !rg.Validate(fv) {
		r.Fail("f32 %v violates range [%v,%v]", fv, rg.Lower, rg.Upper)
		*v = 0
		return
	}
	*v = float32(fv)
}

func (r *Reader) F64(v *float64, cs ...primitive.Constraint) {
	n, ok := r.scalar()
	if !ok {
		*v = 0
		return
	}
	fv, err := n.GetFloat()
	if err != nil {
		r.Fail("%v", err)
		*v = 0
		return
	}
	if rg, has := primitive.FindRange(cs); has && !rg.Validate(fv) {
		r.Fail("f64 %v violates range [%v,%v]", fv, rg.Lower, rg.Upper)
		*v = 0
		return
	}
	*v = fv
}

func (r *Reader) Bool(v *bool) {
	n, ok := r.scalar()
	if !ok {
		*v = false
		return
	}
	bv, err := n.GetBool()
	if err != nil {
		r.Fail("%v", err)
		*v = false
		return
	}
	*v = bv
}

func (r *Reader) String(v *string, cs ...primitive.Constraint) {
	n, ok := r.scalar()
	if !ok {
		*v = ""
		return
	}
	sv, err := n.GetString()
	if err != nil {
		r.Fail("%v", err)
		*v = ""
		return
	}
	if l, has := primitive.FindLength(cs); has && len(sv) != l.Length {
		r.Fail("string length %d violates length %d", len(sv), l.Length)
		*v = ""
		return
	}
	*v = sv
}

func (r *Reader) Enumerate(labels []string, index *int) {
	n, ok := r.scalar()
	if !ok {
		*index = 0
		return
	}
	sv, err := n.GetString()
	if err != nil {
		r.Fail("%v", err)
		*index = 0
		return
	}
	for i, l := range labels {
		if l == sv {
			*index = i
			return
		}
	}
	r.Fail("no label %q among %v", sv, labels)
	*index = 0
}

func (r *Reader) OptionalBegin(has *bool) {
	n, ok := r.target()
	if !ok {
		*has = false
		return
	}
	if n.Value().Kind == object.Null {
		*has = false
		if r.pathHold {
			r.Pop()
			r.pathHold = false
		}
		return
	}
	*has = true
	r.pending = n
	r.hasPending = true
}

func (r *Reader) OptionalEnd() {}

func (r *Reader) VariantBegin(labels []string) {
	r.open(object.Map)
}

func (r *Reader) VariantMatch(label string) bool {
	if r.Failed() || len(r.stack) == 0 {
		return false
	}
	top := &r.stack[len(r.stack)-1]
	child := top.cursor.Child()
	if !child.IsValid() {
		r.Fail("no matching variant")
		return false
	}
	if child.Key() != label {
		return false
	}
	r.pending = child
	r.hasPending = true
	return true
}

func (r *Reader) VariantEnd() { r.close() }

func (r *Reader) Binary(data *[]byte, stride int, cs ...primitive.Constraint) {
	n, ok := r.scalar()
	if !ok {
		*data = nil
		return
	}
	bv, err := n.GetBinary()
	if err != nil {
		r.Fail("%v", err)
		*data = nil
		return
	}
	if l, has := primitive.FindLength(cs); has {
		elem := l.ElementSize
		if elem == 0 {
			elem = 1
		}
		if len(bv) != l.Length*elem {
			r.Fail("binary length %d violates length %d", len(bv), l.Length)
			*data = nil
			return
		}
	}
	*data = append([]byte(nil), bv...)
}

func (r *Reader) ObjectBegin() { r.open(object.Map) }
func (r *Reader) ObjectEnd()   { r.close() }
func (r *Reader) ObjectNext(key string) {
	if r.Failed() || len(r.stack) == 0 {
		return
	}
	top := &r.stack[len(r.stack)-1]
	child := top.cursor.Get(key)
	if !child.IsValid() {
		r.Fail("missing key %q", key)
		return
	}
	r.pending = child
	r.hasPending = true
	r.PushKey(key)
	r.pathHold = true
}

func (r *Reader) TupleBegin() { r.open(object.List) }
func (r *Reader) TupleEnd()   { r.close() }
func (r *Reader) TupleNext() {
	if r.Failed() || len(r.stack) == 0 {
		return
	}
	top := &r.stack[len(r.stack)-1]
	if !top.next.IsValid() {
		r.Fail("tuple exhausted at index %d", top.idx)
		return
	}
	r.pending = top.next
	r.hasPending = true
	r.PushIndex(top.idx)
	top.idx++
	top.next = top.next.Next()
	r.pathHold = true
}

func (r *Reader) MapBegin(cs ...primitive.Constraint) {
	r.open(object.Map)
	if len(r.stack) > 0 {
		r.stack[len(r.stack)-1].ordered = primitive.HasOrdered(cs)
	}
}
func (r *Reader) MapEnd() { r.close() }
func (r *Reader) MapNext(key *string) bool {
	if r.Failed() || len(r.stack) == 0 {
		return false
	}
	top := &r.stack[len(r.stack)-1]
	if !top.next.IsValid() {
		return false
	}
	*key = top.next.Key()
	if top.ordered && top.hasLastKey && *key < top.lastKey {
		r.Fail("map key %q out of ascending order after %q", *key, top.lastKey)
		return false
	}
	top.lastKey = *key
	top.hasLastKey = true
	r.pending = top.next
	r.hasPending = true
	r.PushKey(*key)
	top.next = top.next.Next()
	r.pathHold = true
	return true
}

func (r *Reader) ListBegin() { r.open(object.List) }
func (r *Reader) ListEnd()   { r.close() }
func (r *Reader) ListNext() bool {
	if r.Failed() || len(r.stack) == 0 {
		return false
	}
	top := &r.stack[len(r.stack)-1]
	if !top.next.IsValid() {
		return false
	}
	r.pending = top.next
	r.hasPending = true
	r.PushIndex(top.idx)
	top.idx++
	top.next = top.next.Next()
	r.pathHold = true
	return true
}

func (r *Reader) TrivialBegin(size int) {}
func (r *Reader) TrivialEnd(size int)   {}
