package object

import "testing"

func TestInsertAppendNavigation(t *testing.T) {
	root := New(MapValue())
	a, err := root.Insert("a", IntValue(1))
	if err != nil {
		t.Fatalf("insert a: %v", err)
	}
	b, err := root.Insert("b", StringValue("x"))
	if err != nil {
		t.Fatalf("insert b: %v", err)
	}
	if root.Size() != 2 {
		t.Fatalf("size = %d, want 2", root.Size())
	}
	if got, _ := a.AsConst().GetInt(); got != 1 {
		t.Errorf("a = %d, want 1", got)
	}
	if !a.Next().IsValid() || a.Next().Key() != "b" {
		t.Errorf("a.Next() should be b")
	}
	if b.Prev().Key() != "a" {
		t.Errorf("b.Prev() should be a")
	}
	if root.Get("a").Key() != "a" {
		t.Errorf("Get(a) mismatch")
	}
	if root.Get("missing").IsValid() {
		t.Errorf("Get(missing) should be empty handle")
	}
}

func TestInsertDuplicateKeyFails(t *testing.T) {
	root := New(MapValue())
	if _, err := root.Insert("a", IntValue(1)); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := root.Insert("a", IntValue(2))
	objErr, ok := err.(*Error)
	if !ok || objErr.Kind != ErrDuplicateKey {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestInsertOnNonMapFails(t *testing.T) {
	root := New(ListValue())
	_, err := root.Insert("a", IntValue(1))
	objErr, ok := err.(*Error)
	if !ok || objErr.Kind != ErrNotAMap {
		t.Fatalf("expected ErrNotAMap, got %v", err)
	}
}

func TestListAppendIndex(t *testing.T) {
	root := New(ListValue())
	for i := 0; i < 3; i++ {
		if _, err := root.Append(IntValue(int64(i))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if root.Size() != 3 {
		t.Fatalf("size = %d, want 3", root.Size())
	}
	if v, _ := root.Index(1).AsConst().GetInt(); v != 1 {
		t.Errorf("index 1 = %d, want 1", v)
	}
	if root.Index(5).IsValid() {
		t.Errorf("out-of-range index should be empty")
	}
}

func TestSetReplacesChildren(t *testing.T) {
	root := New(MapValue())
	m, _ := root.Insert("m", MapValue())
	m.Insert("k", IntValue(9))
	if m.Size() != 1 {
		t.Fatalf("expected 1 child before Set")
	}
	m.Set(IntValue(5))
	if m.Size() != 0 {
		t.Fatalf("Set to scalar should free children")
	}
	if v, _ := m.AsConst().GetInt(); v != 5 {
		t.Errorf("m = %d, want 5", v)
	}
}

func TestEraseUnlinksSibling(t *testing.T) {
	root := New(ListValue())
	a, _ := root.Append(IntValue(1))
	b, _ := root.Append(IntValue(2))
	c, _ := root.Append(IntValue(3))
	_ = a
	b.Erase()
	if root.Size() != 2 {
		t.Fatalf("size after erase = %d, want 2", root.Size())
	}
	_ = c
	v0, _ := root.Index(0).AsConst().GetInt()
	v1, _ := root.Index(1).AsConst().GetInt()
	if v0 != 1 || v1 != 3 {
		t.Errorf("list after erase = [%d,%d], want [1,3]", v0, v1)
	}
}

func TestClearEmptiesContainer(t *testing.T) {
	root := New(MapValue())
	root.Insert("a", IntValue(1))
	root.Insert("b", IntValue(2))
	root.Clear()
	if root.Size() != 0 {
		t.Fatalf("size after clear = %d, want 0", root.Size())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	root := New(MapValue())
	root.Insert("a", IntValue(1))
	clone := root.Clone()
	clone.Insert("b", IntValue(2))
	if root.Size() != 1 {
		t.Errorf("original mutated by clone's insert, size = %d", root.Size())
	}
	if !Equal(root.AsConst(), root.AsConst()) {
		t.Errorf("object should equal itself")
	}
	if Equal(root.AsConst(), clone.AsConst()) {
		t.Errorf("clone with extra key should not equal original")
	}
}

func TestEqualStructural(t *testing.T) {
	a := New(MapValue())
	a.Insert("x", IntValue(1))
	b := New(MapValue())
	b.Insert("x", IntValue(1))
	if !Equal(a.AsConst(), b.AsConst()) {
		t.Errorf("structurally identical trees should be equal")
	}
	b.Insert("y", IntValue(2))
	if Equal(a.AsConst(), b.AsConst()) {
		t.Errorf("trees with different child counts should not be equal")
	}
}
