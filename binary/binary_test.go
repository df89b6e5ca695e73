package binary

import (
	"testing"

	"github.com/varnix/structpack/pack"
)

type point struct {
	X int32
	Y int32
}

func (p *point) Visit(v pack.Packer) {
	v.ObjectBegin()
	v.ObjectNext("x")
	v.I32(&p.X)
	v.ObjectNext("y")
	v.I32(&p.Y)
	v.ObjectEnd()
}

func TestRoundTripObject(t *testing.T) {
	in := &point{X: 42, Y: -17}
	data, err := WriteValue(in)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	out := &point{}
	if err := ReadValue(data, out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if *out != *in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

type bag struct {
	Name  string
	Items []int32
}

func (b *bag) Visit(v pack.Packer) {
	v.ObjectBegin()
	v.ObjectNext("name")
	v.String(&b.Name)
	v.ObjectNext("items")
	pack.Slice(v, &b.Items, func(v pack.Packer, e *int32) { v.I32(e) })
	v.ObjectEnd()
}

func TestRoundTripListAndString(t *testing.T) {
	in := &bag{Name: "widgets", Items: []int32{1, 2, 3, 4}}
	data, err := WriteValue(in)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	out := &bag{}
	if err := ReadValue(data, out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Name != in.Name || len(out.Items) != len(in.Items) {
		t.Fatalf("got %+v, want %+v", out, in)
	}
	for i := range in.Items {
		if out.Items[i] != in.Items[i] {
			t.Errorf("items[%d] = %d, want %d", i, out.Items[i], in.Items[i])
		}
	}
}

type circle struct{ Radius float32 }

func (c *circle) Visit(v pack.Packer) {
	v.ObjectBegin()
	v.ObjectNext("radius")
	v.F32(&c.Radius)
	v.ObjectEnd()
}

type rect struct{ W, H float32 }

func (r *rect) Visit(v pack.Packer) {
	v.ObjectBegin()
	v.ObjectNext("w")
	v.F32(&r.W)
	v.ObjectNext("h")
	v.F32(&r.H)
	v.ObjectEnd()
}

type shape struct {
	IsCircle bool
	C        circle
	R        rect
}

func (s *shape) Visit(v pack.Packer) {
	labels := []string{"circle", "rect"}
	v.VariantBegin(labels)
	switch v.Mode() {
	case pack.ModeWrite, pack.ModeEdit:
		if s.IsCircle {
			v.VariantMatch("circle")
			s.C.Visit(v)
		} else {
			v.VariantMatch("rect")
			s.R.Visit(v)
		}
	default:
		if v.VariantMatch("circle") {
			s.IsCircle = true
			s.C.Visit(v)
		} else if v.VariantMatch("rect") {
			s.IsCircle = false
			s.R.Visit(v)
		}
	}
	v.VariantEnd()
}

func TestRoundTripVariantSecondArm(t *testing.T) {
	in := &shape{IsCircle: false, R: rect{W: 2, H: 5}}
	data, err := WriteValue(in)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	out := &shape{}
	if err := ReadValue(data, out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.IsCircle || out.R != in.R {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

type withOptional struct {
	Has   bool
	Value int32
}

func (w *withOptional) Visit(v pack.Packer) {
	has := w.Has
	v.OptionalBegin(&has)
	if has {
		v.I32(&w.Value)
	}
	v.OptionalEnd()
	w.Has = has
}

func TestRoundTripOptionalAbsent(t *testing.T) {
	in := &withOptional{Has: false}
	data, err := WriteValue(in)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(data) != 1 {
		t.Fatalf("expected a single presence byte, got %d bytes", len(data))
	}
	out := &withOptional{}
	if err := ReadValue(data, out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Has {
		t.Errorf("expected absent, got present with value %d", out.Value)
	}
}

func TestRoundTripBinaryOpaque(t *testing.T) {
	type blobHolder struct{ Data []byte }
	in := &blobHolder{Data: []byte{1, 2, 3, 4, 5}}
	visit := func(v pack.Packer) { v.Binary(&in.Data, 0) }
	w := NewWriter()
	visit(w)
	if w.Failed() {
		t.Fatalf("write: %v", w.Err())
	}
	out := &blobHolder{}
	r := NewReader(w.buf.Bytes())
	func(v pack.Packer) { v.Binary(&out.Data, 0) }(r)
	if r.Failed() {
		t.Fatalf("read: %v", r.Err())
	}
	if string(out.Data) != string(in.Data) {
		t.Errorf("got %v, want %v", out.Data, in.Data)
	}
}
