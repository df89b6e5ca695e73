package binary

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/varnix/structpack/pack"
	"github.com/varnix/structpack/primitive"
)

// Writer is a pack.Packer that serializes a value into the untagged,
// positional binary format of spec §4.5. Object/Tuple fields are simply
// concatenated in declaration order; List/Map entries are each prefixed
// with a continuation byte; everything numeric is little-endian.
type Writer struct {
	pack.FailState
	pack.PathTracker

	buf        bytes.Buffer
	variantLbl [][]string
}

// NewWriter returns a Writer over an empty buffer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteValue visits v against a fresh Writer and returns the encoded bytes,
// converting a failed run into a DumpError per spec §7.
func WriteValue(v pack.Value) ([]byte, error) {
	w := NewWriter()
	v.Visit(w)
	if w.Failed() {
		return nil, &pack.DumpError{Path: w.FailedPath(), Message: w.Message()}
	}
	return w.buf.Bytes(), nil
}

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

func (w *Writer) put(v any) {
	if w.Failed() {
		return
	}
	if err := binary.Write(&w.buf, binary.LittleEndian, v); err != nil {
		w.Fail("%v", err)
	}
}

func (w *Writer) I32(v *int32, cs ...primitive.Constraint)  { w.put(*v) }
func (w *Writer) I64(v *int64, cs ...primitive.Constraint)  { w.put(*v) }
func (w *Writer) U32(v *uint32, cs ...primitive.Constraint) { w.put(*v) }
func (w *Writer) U64(v *uint64, cs ...primitive.Constraint) { w.put(*v) }
func (w *Writer) F32(v *float32, cs ...primitive.Constraint) {
	w.put(math.Float32bits(*v))
}
func (w *Writer) F64(v *float64, cs ...primitive.Constraint) {
	w.put(math.Float64bits(*v))
}

func (w *Writer) Bool(v *bool) {
	if w.Failed() {
		return
	}
	var b byte
	if *v {
		b = 1
	}
	w.buf.WriteByte(b)
}

func (w *Writer) String(v *string, cs ...primitive.Constraint) {
	if w.Failed() {
		return
	}
	w.put(uint64(len(*v)))
	w.buf.WriteString(*v)
}

func (w *Writer) Enumerate(labels []string, index *int) {
	if w.Failed() {
		return
	}
	if *index < 0 || *index >= len(labels) {
		w.Fail("enum index %d out of range for %d labels", *index, len(labels))
		return
	}
	w.put(uint32(*index))
}

func (w *Writer) OptionalBegin(has *bool) {
	if w.Failed() {
		return
	}
	var b byte
	if *has {
		b = 1
	}
	w.buf.WriteByte(b)
}
func (w *Writer) OptionalEnd() {}

func (w *Writer) VariantBegin(labels []string) {
	if w.Failed() {
		return
	}
	w.variantLbl = append(w.variantLbl, labels)
}

func (w *Writer) VariantMatch(label string) bool {
	if w.Failed() || len(w.variantLbl) == 0 {
		return false
	}
	labels := w.variantLbl[len(w.variantLbl)-1]
	for i, l := range labels {
		if l == label {
			w.put(uint32(i))
			return true
		}
	}
	w.Fail("unknown variant label %q", label)
	return false
}

func (w *Writer) VariantEnd() {
	if len(w.variantLbl) > 0 {
		w.variantLbl = w.variantLbl[:len(w.variantLbl)-1]
	}
}

func (w *Writer) Binary(data *[]byte, stride int, cs ...primitive.Constraint) {
	if w.Failed() {
		return
	}
	if stride > 0 {
		if len(*data)%stride != 0 {
			w.Fail("binary length %d is not a multiple of stride %d", len(*data), stride)
			return
		}
		w.put(uint64(len(*data) / stride))
	} else {
		w.put(uint64(len(*data)))
	}
	w.buf.Write(*data)
}

func (w *Writer) ObjectBegin()           {}
func (w *Writer) ObjectEnd()             {}
func (w *Writer) ObjectNext(key string)  {}

func (w *Writer) TupleBegin() {}
func (w *Writer) TupleEnd()   {}
func (w *Writer) TupleNext()  {}

func (w *Writer) MapBegin(cs ...primitive.Constraint) {}
func (w *Writer) MapEnd() {
	if w.Failed() {
		return
	}
	w.buf.WriteByte(0)
}
func (w *Writer) MapNext(key *string) bool {
	if w.Failed() {
		return false
	}
	w.buf.WriteByte(1)
	w.String(key)
	return true
}

func (w *Writer) ListBegin() {}
func (w *Writer) ListEnd() {
	if w.Failed() {
		return
	}
	w.buf.WriteByte(0)
}
func (w *Writer) ListNext() bool {
	if w.Failed() {
		return false
	}
	w.buf.WriteByte(1)
	return true
}

// TrivialBegin/TrivialEnd are ignored per spec §9's recommended rule that a
// bulk-copy fast path is optional; a Go struct has no portable flat byte
// layout to copy without unsafe, so this codec always does the full
// element-by-element traversal instead.
func (w *Writer) TrivialBegin(size int) {}
func (w *Writer) TrivialEnd(size int)   {}
