package schema

import (
	"testing"

	"github.com/varnix/structpack/objpack"
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

type record struct {
	ID      int32
	Name    string
	Enabled bool
}

func (r *record) Visit(v pack.Packer) {
	v.ObjectBegin()
	v.ObjectNext("i32")
	v.I32(&r.ID)
	v.ObjectNext("name")
	v.String(&r.Name)
	v.ObjectNext("enabled")
	v.Bool(&r.Enabled)
	v.ObjectEnd()
}

func TestSchemaOfObjectShape(t *testing.T) {
	s := SchemaOf(&record{})
	want := []Kind{ObjectBegin, ObjectNext, I32, ObjectNext, String, ObjectNext, Bool, ObjectEnd}
	if len(s.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(s.Tokens), len(want), s.Tokens)
	}
	for i, k := range want {
		if s.Tokens[i].Kind != k {
			t.Errorf("token %d: got kind %s, want %s", i, s.Tokens[i].Kind, k)
		}
	}
	if s.Tokens[1].Key != "i32" || s.Tokens[3].Key != "name" || s.Tokens[5].Key != "enabled" {
		t.Errorf("object_next keys not recorded: %+v", s.Tokens)
	}
}

type withList struct {
	Items []int32
}

func (w *withList) Visit(v pack.Packer) {
	v.ObjectBegin()
	v.ObjectNext("items")
	pack.Slice(v, &w.Items, func(v pack.Packer, e *int32) { v.I32(e) })
	v.ObjectEnd()
}

func TestSchemaOfListShape(t *testing.T) {
	s := SchemaOf(&withList{})
	want := []Kind{ObjectBegin, ObjectNext, List, I32, ObjectEnd}
	if len(s.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(s.Tokens), len(want), s.Tokens)
	}
	for i, k := range want {
		if s.Tokens[i].Kind != k {
			t.Errorf("token %d: got kind %s, want %s", i, s.Tokens[i].Kind, k)
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

type shapeVariant struct {
	Label string
	C     circle
	R     rect
}

func (s *shapeVariant) Visit(v pack.Packer) {
	labels := []string{"circle", "rect"}
	v.VariantBegin(labels)
	if v.VariantMatch("circle") {
		s.C.Visit(v)
	}
	if v.VariantMatch("rect") {
		s.R.Visit(v)
	}
	v.VariantEnd()
}

func TestSchemaOfVariantShape(t *testing.T) {
	s := SchemaOf(&shapeVariant{})
	want := []Kind{
		VariantBegin,
		VariantNext, ObjectBegin, ObjectNext, F32, ObjectEnd,
		VariantNext, ObjectBegin, ObjectNext, F32, ObjectNext, F32, ObjectEnd,
		VariantEnd,
	}
	if len(s.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(s.Tokens), len(want), s.Tokens)
	}
	for i, k := range want {
		if s.Tokens[i].Kind != k {
			t.Errorf("token %d: got kind %s, want %s", i, s.Tokens[i].Kind, k)
		}
	}
	if s.Tokens[0].Labels[0] != "circle" || s.Tokens[0].Labels[1] != "rect" {
		t.Errorf("variant_begin labels not recorded: %+v", s.Tokens[0])
	}
}

func TestTokensEndFlatObject(t *testing.T) {
	s := SchemaOf(&point{})
	end, err := TokensEnd(s.Tokens, 0)
	if err != nil {
		t.Fatalf("TokensEnd: %v", err)
	}
	if end != len(s.Tokens) {
		t.Errorf("got end %d, want %d", end, len(s.Tokens))
	}
}

func TestTokensEndSkipsNestedSubtree(t *testing.T) {
	s := SchemaOf(&withList{})
	// tokens: ObjectBegin, ObjectNext, List, I32, ObjectEnd
	// TokensEnd at the List token must skip its I32 element subtree too.
	listPos := 2
	if s.Tokens[listPos].Kind != List {
		t.Fatalf("test fixture drifted: token %d is %s, not List", listPos, s.Tokens[listPos].Kind)
	}
	end, err := TokensEnd(s.Tokens, listPos)
	if err != nil {
		t.Fatalf("TokensEnd: %v", err)
	}
	if end != listPos+2 {
		t.Errorf("got end %d, want %d (List + I32 element)", end, listPos+2)
	}
}

func TestTokenSelfEncodingRoundTrip(t *testing.T) {
	orig := Schema{Tokens: []Token{
		{Kind: ObjectBegin},
		{Kind: ObjectNext, Key: "radius"},
		{Kind: F32},
		{Kind: ObjectEnd},
	}}

	obj, err := objpack.WriteValue(&orig)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	var out Schema
	if err := objpack.ReadValue(obj.AsConst(), &out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !orig.Equal(out) {
		t.Errorf("got %+v, want %+v", out, orig)
	}
}
