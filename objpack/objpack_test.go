package objpack

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

type withList struct {
	Name  string
	Items []int32
}

func (w *withList) Visit(v pack.Packer) {
	v.ObjectBegin()
	v.ObjectNext("name")
	v.String(&w.Name)
	v.ObjectNext("items")
	pack.Slice(v, &w.Items, func(v pack.Packer, e *int32) { v.I32(e) })
	v.ObjectEnd()
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	in := &point{X: 3, Y: -7}
	obj, err := WriteValue(in)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	out := &point{}
	if err := ReadValue(obj.AsConst(), out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if *out != *in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestWriteThenReadList(t *testing.T) {
	in := &withList{Name: "bag", Items: []int32{1, 2, 3}}
	obj, err := WriteValue(in)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	out := &withList{}
	if err := ReadValue(obj.AsConst(), out); err != nil {
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

func TestReadMissingKeyFails(t *testing.T) {
	in := &point{X: 1, Y: 2}
	obj, err := WriteValue(in)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	obj.Get("x").Erase()

	out := &point{}
	err = ReadValue(obj.AsConst(), out)
	if err == nil {
		t.Fatalf("expected error for missing key")
	}
}
