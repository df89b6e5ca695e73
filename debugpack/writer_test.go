package debugpack

import (
	"strings"
	"testing"

	"github.com/varnix/structpack/examples/entity"
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

func TestRenderSimpleObject(t *testing.T) {
	got, err := Render(&point{X: 42, Y: -17})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "(object) {\n    x: 42,\n    y: -17,\n},\n"
	if got != want {
		t.Errorf("Render =\n%q\nwant\n%q", got, want)
	}
}

type trivialPoint struct {
	X int32
	Y int32
}

func (p *trivialPoint) Visit(v pack.Packer) {
	v.TrivialBegin(8)
	v.ObjectBegin()
	v.ObjectNext("x")
	v.I32(&p.X)
	v.ObjectNext("y")
	v.I32(&p.Y)
	v.ObjectEnd()
	v.TrivialEnd(8)
}

func TestRenderTrivialAnnotation(t *testing.T) {
	got, err := Render(&trivialPoint{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "(object, trivial size = 8) {\n    x: 1,\n    y: 2,\n},\n"
	if got != want {
		t.Errorf("Render =\n%q\nwant\n%q", got, want)
	}
}

type trivialList struct {
	Points []trivialPoint
}

func (l *trivialList) Visit(v pack.Packer) {
	v.ObjectBegin()
	v.ObjectNext("points")
	pack.Slice(v, &l.Points, func(v pack.Packer, p *trivialPoint) { p.Visit(v) })
	v.ObjectEnd()
}

func TestRenderListOfTrivialAnnotatesList(t *testing.T) {
	got, err := Render(&trivialList{Points: []trivialPoint{{X: 1, Y: 2}, {X: 3, Y: 4}}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "points: (list, trivial) {") {
		t.Errorf("expected list annotated trivial, got:\n%s", got)
	}
}

func TestRenderEmptyListIsNotAnnotatedTrivial(t *testing.T) {
	got, err := Render(&trivialList{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "points: (list) {") {
		t.Errorf("expected plain (list) for an empty list, got:\n%s", got)
	}
}

func TestRenderEntityFixture(t *testing.T) {
	e := entity.Example()
	got, err := Render(&e)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Mirrors original_source's test/util/debug.cpp fixture, except
	// `properties`, which this module renders through the native Map
	// protocol (a deliberate deviation, see examples/entity/entity.go).
	wantLines := []string{
		"(object) {",
		"    index: 5,",
		"    name: player,",
		"    enabled: true,",
		"    pose: (object, trivial size = 24) {",
		"        x: 1,",
		"        y: 2,",
		"        angle: 3,",
		"    },",
		"    physics: (enum, kinematic),",
		"    hitbox: (optional, has_value) {",
		"        (variant, circle) {",
		"            (object, trivial size = 8) {",
		"                radius: 1,",
		"            },",
		"        },",
		"    },",
		"    sprite: (object) {",
		"        width: 2,",
		"        height: 2,",
		"        data: (list, trivial) {",
		"            (object, trivial size = 24) {",
		"                r: 0.25,",
		"                g: 0.25,",
		"                b: 0,",
		"            },",
		"            (object, trivial size = 24) {",
		"                r: 0.25,",
		"                g: 0.75,",
		"                b: 0,",
		"            },",
		"            (object, trivial size = 24) {",
		"                r: 0.75,",
		"                g: 0.25,",
		"                b: 0,",
		"            },",
		"            (object, trivial size = 24) {",
		"                r: 0.75,",
		"                g: 0.75,",
		"                b: 0,",
		"            },",
		"        },",
		"    },",
		"    items: (list) {",
		"        (object) {",
		"            count: 5,",
		"            name: hp_potion,",
		"        },",
		"        (object) {",
		"            count: 1,",
		"            name: sword,",
		"        },",
		"        (object) {",
		"            count: 1,",
		"            name: map,",
		"        },",
		"        (object) {",
		"            count: 120,",
		"            name: gold,",
		"        },",
		"    },",
		"    assigned_items: (tuple, trivial size = 12) {",
		"        1,",
		"        2,",
		"        -1,",
		"    },",
		"    properties: (map) {",
		"        agility: 5,",
		"        strength: 10.5,",
		"    },",
		"    flags: (list) {",
		"        (tuple) {",
		"            0,",
		"            true,",
		"        },",
		"        (tuple) {",
		"            1,",
		"            false,",
		"        },",
		"        (tuple) {",
		"            2,",
		"            true,",
		"        },",
		"    },",
		"},",
	}

	gotLines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(gotLines) != len(wantLines) {
		t.Fatalf("line count = %d, want %d\nfull output:\n%s", len(gotLines), len(wantLines), got)
	}
	for i, want := range wantLines {
		if gotLines[i] != want {
			t.Errorf("line %d = %q, want %q", i, gotLines[i], want)
		}
	}
}
