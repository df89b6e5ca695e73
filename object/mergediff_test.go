package object

import (
	"sort"
	"testing"
)

// buildMap inserts kvs in ascending key order, so two maps built from the
// same keys have the same child order (Equal is order-sensitive).
func buildMap(t *testing.T, kvs map[string]Value) Object {
	t.Helper()
	keys := make([]string, 0, len(kvs))
	for k := range kvs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	o := New(MapValue())
	for _, k := range keys {
		if _, err := o.Insert(k, kvs[k]); err != nil {
			t.Fatalf("insert %s: %v", k, err)
		}
	}
	return o
}

func TestMergeDiffRoundTripScalarOverwrite(t *testing.T) {
	base := buildMap(t, map[string]Value{"a": IntValue(1), "b": StringValue("x")})
	modified := buildMap(t, map[string]Value{"a": IntValue(2), "b": StringValue("x")})

	d := Diff(base.AsConst(), modified.AsConst())
	merged := Merge(base.AsConst(), d.AsConst())

	if !Equal(merged.AsConst(), modified.AsConst()) {
		t.Fatalf("merge(base, diff(base, modified)) != modified")
	}
}

func TestDiffOmitsUnchangedKeys(t *testing.T) {
	base := buildMap(t, map[string]Value{"a": IntValue(1), "b": IntValue(2)})
	modified := buildMap(t, map[string]Value{"a": IntValue(1), "b": IntValue(99)})

	d := Diff(base.AsConst(), modified.AsConst())
	if d.Get("a").IsValid() {
		t.Errorf("unchanged key %q should be omitted from diff", "a")
	}
	if v, _ := d.Get("b").AsConst().GetInt(); v != 99 {
		t.Errorf("changed key b = %v, want 99", v)
	}
}

func TestDiffErasedKeyBecomesNull(t *testing.T) {
	base := buildMap(t, map[string]Value{"a": IntValue(1), "b": IntValue(2)})
	modified := buildMap(t, map[string]Value{"a": IntValue(1)})

	d := Diff(base.AsConst(), modified.AsConst())
	bv := d.Get("b")
	if !bv.IsValid() || bv.Value().Kind != Null {
		t.Fatalf("erased key should map to Null in diff, got %+v", bv)
	}

	merged := Merge(base.AsConst(), d.AsConst())
	if merged.Get("b").IsValid() {
		t.Errorf("merged result should have erased key b")
	}
}

func TestDiffAddedKeyAppended(t *testing.T) {
	base := buildMap(t, map[string]Value{"a": IntValue(1)})
	modified := buildMap(t, map[string]Value{"a": IntValue(1), "c": StringValue("new")})

	d := Diff(base.AsConst(), modified.AsConst())
	merged := Merge(base.AsConst(), d.AsConst())
	if !Equal(merged.AsConst(), modified.AsConst()) {
		t.Fatalf("merge(base, diff) should recover appended key")
	}
}

func TestDiffListAppend(t *testing.T) {
	base := New(ListValue())
	base.Append(IntValue(1))
	base.Append(IntValue(2))

	modified := New(ListValue())
	modified.Append(IntValue(1))
	modified.Append(IntValue(2))
	modified.Append(IntValue(3))

	d := Diff(base.AsConst(), modified.AsConst())
	merged := Merge(base.AsConst(), d.AsConst())
	if !Equal(merged.AsConst(), modified.AsConst()) {
		t.Fatalf("list append round trip failed")
	}
	if merged.Size() != 3 {
		t.Fatalf("merged size = %d, want 3", merged.Size())
	}
}

func TestDiffListTruncate(t *testing.T) {
	base := New(ListValue())
	base.Append(IntValue(1))
	base.Append(IntValue(2))
	base.Append(IntValue(3))

	modified := New(ListValue())
	modified.Append(IntValue(1))

	d := Diff(base.AsConst(), modified.AsConst())
	merged := Merge(base.AsConst(), d.AsConst())
	if !Equal(merged.AsConst(), modified.AsConst()) {
		t.Fatalf("list truncate round trip failed")
	}
}

func TestDiffListMiddleErasureShiftsTail(t *testing.T) {
	base := New(ListValue())
	base.Append(IntValue(1))
	base.Append(IntValue(2))
	base.Append(IntValue(3))

	// Removing the middle element is encoded as "shift tail down, erase
	// the last slot" per the documented diff convention.
	modified := New(ListValue())
	modified.Append(IntValue(1))
	modified.Append(IntValue(3))

	d := Diff(base.AsConst(), modified.AsConst())
	merged := Merge(base.AsConst(), d.AsConst())
	if !Equal(merged.AsConst(), modified.AsConst()) {
		t.Fatalf("list middle erasure round trip failed")
	}
}

func TestDiffNestedMap(t *testing.T) {
	base := New(MapValue())
	inner, _ := base.Insert("nested", MapValue())
	inner.Insert("x", IntValue(1))
	inner.Insert("y", IntValue(2))

	modified := New(MapValue())
	modInner, _ := modified.Insert("nested", MapValue())
	modInner.Insert("x", IntValue(1))
	modInner.Insert("y", IntValue(99))

	d := Diff(base.AsConst(), modified.AsConst())
	nestedDiff := d.Get("nested")
	if nestedDiff.Get("x").IsValid() {
		t.Errorf("unchanged nested key x should be omitted")
	}

	merged := Merge(base.AsConst(), d.AsConst())
	if !Equal(merged.AsConst(), modified.AsConst()) {
		t.Fatalf("nested map round trip failed")
	}
}

func TestDiffIdenticalProducesNoOpMerge(t *testing.T) {
	base := buildMap(t, map[string]Value{"a": IntValue(1)})
	d := Diff(base.AsConst(), base.AsConst())
	merged := Merge(base.AsConst(), d.AsConst())
	if !Equal(merged.AsConst(), base.AsConst()) {
		t.Fatalf("merging a no-op diff should reproduce base")
	}
}
