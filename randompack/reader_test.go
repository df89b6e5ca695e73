package randompack

import (
	"math/rand"
	"testing"

	"github.com/varnix/structpack/binary"
	"github.com/varnix/structpack/examples/entity"
	"github.com/varnix/structpack/pack"
	"github.com/varnix/structpack/primitive"
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

func TestGenerateFillsPrimitives(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := &point{}
	if err := Generate(rng, DefaultOptions(), p); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Exercising the same seed twice should be deterministic.
	rng2 := rand.New(rand.NewSource(1))
	p2 := &point{}
	if err := Generate(rng2, DefaultOptions(), p2); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if *p != *p2 {
		t.Errorf("same seed produced different values: %+v vs %+v", p, p2)
	}
}

func TestGeneratedValueRoundTripsThroughBinary(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		e := &entity.Entity{}
		if err := Generate(rng, DefaultOptions(), e); err != nil {
			t.Fatalf("Generate: %v", err)
		}
		data, err := binary.WriteValue(e)
		if err != nil {
			t.Fatalf("WriteValue: %v", err)
		}
		out := &entity.Entity{}
		if err := binary.ReadValue(data, out); err != nil {
			t.Fatalf("ReadValue: %v", err)
		}
	}
}

func TestRangeConstraintIsRespected(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := NewReader(rng, DefaultOptions())
	for i := 0; i < 200; i++ {
		var v int32
		r.I32(&v, primitive.Range{Lower: 10, Upper: 20})
		if v < 10 || v > 20 {
			t.Fatalf("I32 with Range[10,20] produced %d", v)
		}
	}
}

func TestLengthConstraintIsRespected(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	r := NewReader(rng, DefaultOptions())
	for i := 0; i < 50; i++ {
		var s string
		r.String(&s, primitive.Length{Length: 6})
		if len(s) != 6 {
			t.Fatalf("String with Length{6} produced %q (len %d)", s, len(s))
		}
	}
}

func TestMaxContainersZeroYieldsEmptyContainers(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	r := NewReader(rng, Options{MaxContainers: 0})

	r.ListBegin()
	if r.ListNext() {
		t.Errorf("ListNext should report false with zero container budget")
	}
	r.ListEnd()

	var has bool
	r.OptionalBegin(&has)
	if has {
		t.Errorf("OptionalBegin should report false with zero container budget")
	}
	r.OptionalEnd()

	if r.Failed() {
		t.Fatalf("unexpected failure: %v", r.Err())
	}
}
