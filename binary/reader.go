package binary

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/varnix/structpack/pack"
	"github.com/varnix/structpack/primitive"
)

// Reader is a pack.Packer that deserializes the binary format of spec §4.5
// back out of a byte slice, consuming it in lockstep with a value's Visit
// call.
type Reader struct {
	pack.FailState
	pack.PathTracker

	r       *bytes.Reader
	variant []variantFrame
	mapKeys []mapKeyFrame
}

type mapKeyFrame struct {
	ordered bool
	lastKey string
	hasLast bool
}

type variantFrame struct {
	labels  []string
	matched string
	read    bool
}

// NewReader returns a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{r: bytes.NewReader(data)}
}

// ReadValue visits v against a Reader over data, converting a failed run
// into a LoadError per spec §7.
func ReadValue(data []byte, v pack.Value) error {
	r := NewReader(data)
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

func (r *Reader) get(v any) {
	if r.Failed() {
		return
	}
	if err := binary.Read(r.r, binary.LittleEndian, v); err != nil {
		r.Fail("%v", err)
	}
}

func (r *Reader) byte() byte {
	if r.Failed() {
		return 0
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.Fail("%v", err)
		return 0
	}
	return b
}

func (r *Reader) I32(v *int32, cs ...primitive.Constraint) {
	r.get(v)
	if rg, has := primitive.FindRange(cs); has && !r.Failed() && !rg.Validate(float64(*v)) {
		r.Fail("i32 %d violates range [%v,%v]", *v, rg.Lower, rg.Upper)
	}
}

func (r *Reader) I64(v *int64, cs ...primitive.Constraint) {
	r.get(v)
	if rg, has := primitive.FindRange(cs); has && !r.Failed() && !rg.Validate(float64(*v)) {
		r.Fail("i64 %d violates range [%v,%v]", *v, rg.Lower, rg.Upper)
	}
}

func (r *Reader) U32(v *uint32, cs ...primitive.Constraint) {
	r.get(v)
	if rg, has := primitive.FindRange(cs); has && !r.Failed() && !rg.Validate(float64(*v)) {
		r.Fail("u32 %d violates range [%v,%v]", *v, rg.Lower, rg.Upper)
	}
}

func (r *Reader) U64(v *uint64, cs ...primitive.Constraint) {
	r.get(v)
	if rg, has := primitive.FindRange(cs); has && !r.Failed() && !rg.Validate(float64(*v)) {
		r.Fail("u64 %d violates range [%v,%v]", *v, rg.Lower, rg.Upper)
	}
}

func (r *Reader) F32(v *float32, cs ...primitive.Constraint) {
	var bits uint32
	r.get(&bits)
	*v = math.Float32frombits(bits)
	if rg, has := primitive.FindRange(cs); has && !r.Failed() && !rg.Validate(float64(*v)) {
		r.Fail("f32 %v violates range [%v,%v]", *v, rg.Lower, rg.Upper)
	}
}

func (r *Reader) F64(v *float64, cs ...primitive.Constraint) {
	var bits uint64
	r.get(&bits)
	*v = math.Float64frombits(bits)
	if rg, has := primitive.FindRange(cs); has && !r.Failed() && !rg.Validate(*v) {
		r.Fail("f64 %v violates range [%v,%v]", *v, rg.Lower, rg.Upper)
	}
}

func (r *Reader) Bool(v *bool) {
	b := r.byte()
	*v = b != 0
}

func (r *Reader) String(v *string, cs ...primitive.Constraint) {
	var n uint64
	r.get(&n)
	if r.Failed() {
		*v = ""
		return
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		r.Fail("%v", err)
		*v = ""
		return
	}
	if l, has := primitive.FindLength(cs); has && int(n) != l.Length {
		r.Fail("string length %d violates length %d", n, l.Length)
		*v = ""
		return
	}
	*v = string(buf)
}

func (r *Reader) Enumerate(labels []string, index *int) {
	var i uint32
	r.get(&i)
	if r.Failed() {
		*index = 0
		return
	}
	if int(i) >= len(labels) {
		r.Fail("enum index %d out of range for %d labels", i, len(labels))
		*index = 0
		return
	}
	*index = int(i)
}

func (r *Reader) OptionalBegin(has *bool) {
	b := r.byte()
	*has = b != 0
}
func (r *Reader) OptionalEnd() {}

func (r *Reader) VariantBegin(labels []string) {
	r.variant = append(r.variant, variantFrame{labels: labels})
}

func (r *Reader) VariantMatch(label string) bool {
	if r.Failed() || len(r.variant) == 0 {
		return false
	}
	top := &r.variant[len(r.variant)-1]
	if !top.read {
		var idx uint32
		r.get(&idx)
		if r.Failed() {
			return false
		}
		if int(idx) >= len(top.labels) {
			r.Fail("variant index %d out of range for %d labels", idx, len(top.labels))
			return false
		}
		top.matched = top.labels[idx]
		top.read = true
	}
	return top.matched == label
}

func (r *Reader) VariantEnd() {
	if len(r.variant) > 0 {
		r.variant = r.variant[:len(r.variant)-1]
	}
}

func (r *Reader) Binary(data *[]byte, stride int, cs ...primitive.Constraint) {
	var n uint64
	r.get(&n)
	if r.Failed() {
		*data = nil
		return
	}
	size := n
	if stride > 0 {
		size = n * uint64(stride)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		r.Fail("%v", err)
		*data = nil
		return
	}
	if l, has := primitive.FindLength(cs); has && int(n) != l.Length {
		r.Fail("binary length %d violates length %d", n, l.Length)
		*data = nil
		return
	}
	*data = buf
}

func (r *Reader) ObjectBegin()          {}
func (r *Reader) ObjectEnd()            {}
func (r *Reader) ObjectNext(key string) {}

func (r *Reader) TupleBegin() {}
func (r *Reader) TupleEnd()   {}
func (r *Reader) TupleNext()  {}

func (r *Reader) MapBegin(cs ...primitive.Constraint) {
	r.mapKeys = append(r.mapKeys, mapKeyFrame{ordered: primitive.HasOrdered(cs)})
}
func (r *Reader) MapEnd() {
	if len(r.mapKeys) > 0 {
		r.mapKeys = r.mapKeys[:len(r.mapKeys)-1]
	}
}
func (r *Reader) MapNext(key *string) bool {
	more := r.byte()
	if r.Failed() || more == 0 {
		return false
	}
	r.String(key)
	if r.Failed() || len(r.mapKeys) == 0 {
		return !r.Failed()
	}
	top := &r.mapKeys[len(r.mapKeys)-1]
	if top.ordered && top.hasLast && *key < top.lastKey {
		r.Fail("map key %q out of ascending order after %q", *key, top.lastKey)
		return false
	}
	top.lastKey = *key
	top.hasLast = true
	return true
}

func (r *Reader) ListBegin() {}
func (r *Reader) ListEnd()   {}
func (r *Reader) ListNext() bool {
	more := r.byte()
	return !r.Failed() && more != 0
}

// TrivialBegin/TrivialEnd are ignored, mirroring Writer: this codec always
// does the full element-by-element traversal rather than bulk-copying the
// region, per spec §9's "readers and writers are free to honor or ignore
// the hint".
func (r *Reader) TrivialBegin(size int) {}
func (r *Reader) TrivialEnd(size int)   {}
