package object

// Object is a handle into a shared arena: (arena, index). Copies share
// ownership of the same arena, exactly like datapack's Object_<false>. The
// zero Object is the empty handle (index -1, falsey).
type Object struct {
	a     *arena
	index int
}

// ConstObject is the read-only flavor of Object, datapack's Object_<true>.
// It is never used to construct a tree, only to navigate and inspect one.
type ConstObject struct {
	a     *arena
	index int
}

// New creates a fresh arena with root holding the given value and returns a
// handle to the root.
func New(root Value) Object {
	return Object{a: newArena(root), index: 0}
}

// Empty returns the falsey handle, equivalent to a failed lookup.
func Empty() Object {
	return Object{index: -1}
}

// EmptyConst returns the falsey const handle.
func EmptyConst() ConstObject {
	return ConstObject{index: -1}
}

func (o Object) IsValid() bool { return o.index != -1 }
func (o ConstObject) IsValid() bool { return o.index != -1 }

// AsConst downgrades o to a read-only handle over the same arena.
func (o Object) AsConst() ConstObject {
	return ConstObject{a: o.a, index: o.index}
}

func (o Object) n() *node        { return &o.a.nodes[o.index] }
func (o ConstObject) n() *node   { return &o.a.nodes[o.index] }

func (o Object) Root() Object {
	return Object{a: o.a, index: 0}
}
func (o ConstObject) Root() ConstObject {
	return ConstObject{a: o.a, index: 0}
}

func (o Object) Value() Value      { return o.n().value }
func (o ConstObject) Value() Value { return o.n().value }
func (o Object) Key() string       { return o.n().key }
func (o ConstObject) Key() string  { return o.n().key }

func (o Object) Parent() Object {
	if !o.IsValid() {
		return Empty()
	}
	return wrap(o.a, o.n().parent)
}
func (o Object) Child() Object {
	if !o.IsValid() {
		return Empty()
	}
	return wrap(o.a, o.n().child)
}
func (o Object) Prev() Object {
	if !o.IsValid() {
		return Empty()
	}
	return wrap(o.a, o.n().prev)
}
func (o Object) Next() Object {
	if !o.IsValid() {
		return Empty()
	}
	return wrap(o.a, o.n().next)
}

func (o ConstObject) Parent() ConstObject {
	if !o.IsValid() {
		return EmptyConst()
	}
	return wrapConst(o.a, o.n().parent)
}
func (o ConstObject) Child() ConstObject {
	if !o.IsValid() {
		return EmptyConst()
	}
	return wrapConst(o.a, o.n().child)
}
func (o ConstObject) Prev() ConstObject {
	if !o.IsValid() {
		return EmptyConst()
	}
	return wrapConst(o.a, o.n().prev)
}
func (o ConstObject) Next() ConstObject {
	if !o.IsValid() {
		return EmptyConst()
	}
	return wrapConst(o.a, o.n().next)
}

func wrap(a *arena, idx int) Object           { return Object{a: a, index: idx} }
func wrapConst(a *arena, idx int) ConstObject { return ConstObject{a: a, index: idx} }

// Size reports the number of direct children for Map/List nodes, 0 for any
// other kind.
func (o Object) Size() int {
	if !o.IsValid() {
		return 0
	}
	return size(o.a, o.index)
}
func (o ConstObject) Size() int {
	if !o.IsValid() {
		return 0
	}
	return size(o.a, o.index)
}

func size(a *arena, idx int) int {
	n := a.nodes[idx]
	if !n.value.Kind.IsContainer() {
		return 0
	}
	count := 0
	for c := n.child; c != -1; c = a.nodes[c].next {
		count++
	}
	return count
}

// Get looks up a map child by key, or a list child by stringified index
// convention is not supported here; use Index for lists. Returns the empty
// handle when not found, never an error — matches datapack's operator[]
// semantics for lookups.
func (o Object) Get(key string) Object {
	if !o.IsValid() {
		return Empty()
	}
	return wrap(o.a, find(o.a, o.index, key))
}
func (o ConstObject) Get(key string) ConstObject {
	if !o.IsValid() {
		return EmptyConst()
	}
	return wrapConst(o.a, find(o.a, o.index, key))
}

func find(a *arena, idx int, key string) int {
	n := a.nodes[idx]
	if n.value.Kind != Map {
		return -1
	}
	for c := n.child; c != -1; c = a.nodes[c].next {
		if a.nodes[c].key == key {
			return c
		}
	}
	return -1
}

// Index looks up a list child by position. Returns the empty handle when
// out of range.
func (o Object) Index(i int) Object {
	if !o.IsValid() {
		return Empty()
	}
	return wrap(o.a, indexAt(o.a, o.index, i))
}
func (o ConstObject) Index(i int) ConstObject {
	if !o.IsValid() {
		return EmptyConst()
	}
	return wrapConst(o.a, indexAt(o.a, o.index, i))
}

func indexAt(a *arena, idx int, i int) int {
	n := a.nodes[idx]
	if n.value.Kind != List || i < 0 {
		return -1
	}
	c := n.child
	for ; c != -1 && i > 0; i-- {
		c = a.nodes[c].next
	}
	return c
}

// Insert appends a new child with key on a Map node. Fails with ErrNotAMap
// if o is not a map, ErrDuplicateKey if key already exists.
func (o Object) Insert(key string, value Value) (Object, error) {
	n := o.n()
	if n.value.Kind != Map {
		return Object{}, newError(ErrNotAMap, "insert: not a map at %q", n.key)
	}
	if find(o.a, o.index, key) != -1 {
		return Object{}, newError(ErrDuplicateKey, "insert: duplicate key %q", key)
	}
	return o.appendChild(key, value), nil
}

// Append appends a new child with no key on a List node. Fails with
// ErrNotAList otherwise.
func (o Object) Append(value Value) (Object, error) {
	n := o.n()
	if n.value.Kind != List {
		return Object{}, newError(ErrNotAList, "append: not a list at %q", n.key)
	}
	return o.appendChild("", value), nil
}

func (o Object) appendChild(key string, value Value) Object {
	last := -1
	for c := o.n().child; c != -1; c = o.a.nodes[c].next {
		last = c
	}
	idx := o.a.alloc(node{value: value, key: key, parent: o.index, child: -1, prev: last, next: -1})
	if last == -1 {
		o.n().child = idx
	} else {
		o.a.nodes[last].next = idx
	}
	return wrap(o.a, idx)
}

// Set replaces the value at o in place. If the new value is not the same
// container kind as the old one (or is not a container at all), any
// existing children are freed.
func (o Object) Set(value Value) {
	n := o.n()
	if n.value.Kind != value.Kind || !value.Kind.IsContainer() {
		o.a.freeSubtree(n.child)
		n.child = -1
	}
	n.value = value
}

// Erase unlinks o's subtree from its parent and frees every node in it,
// including o itself.
func (o Object) Erase() {
	n := o.n()
	if n.prev != -1 {
		o.a.nodes[n.prev].next = n.next
	} else if n.parent != -1 {
		o.a.nodes[n.parent].child = n.next
	}
	if n.next != -1 {
		o.a.nodes[n.next].prev = n.prev
	}
	o.a.freeSubtree(o.index)
}

// Clear erases all children of a Map/List node, leaving it empty.
func (o Object) Clear() {
	n := o.n()
	o.a.freeSubtree(n.child)
	n.child = -1
}

// Clone deep-copies the subtree rooted at o into a brand new arena and
// returns a handle to its root.
func (o ConstObject) Clone() Object {
	dst := &arena{nodes: make([]node, 0, 8)}
	root := cloneInto(dst, o.a, o.index, -1, -1)
	return Object{a: dst, index: root}
}

func (o Object) Clone() Object {
	return o.AsConst().Clone()
}

func cloneInto(dst *arena, src *arena, srcIdx int, parent int, prev int) int {
	if srcIdx == -1 {
		return -1
	}
	n := src.nodes[srcIdx]
	idx := dst.alloc(node{value: n.value, key: n.key, parent: parent, child: -1, prev: prev, next: -1})
	firstChild := -1
	lastChild := -1
	for c := n.child; c != -1; c = src.nodes[c].next {
		childIdx := cloneInto(dst, src, c, idx, lastChild)
		if firstChild == -1 {
			firstChild = childIdx
		} else {
			dst.nodes[lastChild].next = childIdx
		}
		lastChild = childIdx
	}
	dst.nodes[idx].child = firstChild
	return idx
}

// Equal reports whether two const handles describe structurally identical
// trees: same value kinds/payloads and the same children in the same order.
// Keys are compared for map children, ignored for list children.
func Equal(lhs, rhs ConstObject) bool {
	if !lhs.IsValid() || !rhs.IsValid() {
		return lhs.IsValid() == rhs.IsValid()
	}
	lv, rv := lhs.Value(), rhs.Value()
	if lv.Kind != rv.Kind {
		return false
	}
	if !lv.Kind.IsContainer() {
		return lv.Equal(rv)
	}
	lc, rc := lhs.Child(), rhs.Child()
	for lc.IsValid() && rc.IsValid() {
		if lv.Kind == Map && lc.Key() != rc.Key() {
			return false
		}
		if !Equal(lc, rc) {
			return false
		}
		lc, rc = lc.Next(), rc.Next()
	}
	return !lc.IsValid() && !rc.IsValid()
}
