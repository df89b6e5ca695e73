package object

import "strconv"

// Diff computes an object whose application via Merge recovers modified
// from base: Merge(base, Diff(base, modified)) == modified. Unchanged map
// keys are omitted, an erased key becomes Null, and a list diffs to a map
// keyed by decimal index; this mirrors datapack's object_diff.
func Diff(base, modified ConstObject) Object {
	bv, mv := base.Value(), modified.Value()
	switch {
	case bv.Kind == Map && mv.Kind == Map:
		return diffMapValue(base, modified)
	case bv.Kind == List && mv.Kind == List:
		return diffListValue(base, modified)
	default:
		return modified.Clone()
	}
}

func diffMapValue(base, modified ConstObject) Object {
	result := New(MapValue())
	for c := base.Child(); c.IsValid(); c = c.Next() {
		key := c.Key()
		mc := modified.Get(key)
		diffEntryIntoMap(result, key, true, c, mc, mc.IsValid())
	}
	for c := modified.Child(); c.IsValid(); c = c.Next() {
		if base.Get(c.Key()).IsValid() {
			continue
		}
		diffEntryIntoMap(result, c.Key(), false, EmptyConst(), c, true)
	}
	return result
}

func diffListValue(base, modified ConstObject) Object {
	result := New(MapValue())
	baseElems := collectChildren(base)
	modElems := collectChildren(modified)
	n, m := len(baseElems), len(modElems)
	max := n
	if m > max {
		max = m
	}
	for i := 0; i < max; i++ {
		key := strconv.Itoa(i)
		switch {
		case i < n && i < m:
			diffEntryIntoMap(result, key, true, baseElems[i], modElems[i], true)
		case i < n:
			// modified is shorter: erase the tail.
			result.Insert(key, NullValue())
		default:
			// modified is longer: append.
			graftValue(result, key, true, modElems[i])
		}
	}
	return result
}

// diffEntryIntoMap inserts the diff of (base, modified) at key into result,
// or omits key entirely when base and modified agree there. modValid is
// false when key was present in base but is entirely absent from modified
// (not merely Null there) — the key was deleted, which diffs to an erase
// marker just like an explicit Null.
func diffEntryIntoMap(result Object, key string, baseValid bool, base, modified ConstObject, modValid bool) {
	if !baseValid {
		graftValue(result, key, true, modified)
		return
	}
	if !modValid {
		result.Insert(key, NullValue())
		return
	}
	mv := modified.Value()
	bv := base.Value()

	if mv.Kind == Null {
		if bv.Kind == Null {
			return
		}
		result.Insert(key, NullValue())
		return
	}
	if bv.Kind == Null {
		graftValue(result, key, true, modified)
		return
	}
	if bv.Kind == Map && mv.Kind == Map {
		sub := diffMapValue(base, modified)
		if sub.Size() > 0 {
			graftValue(result, key, true, sub.AsConst())
		}
		return
	}
	if bv.Kind == List && mv.Kind == List {
		sub := diffListValue(base, modified)
		if sub.Size() > 0 {
			graftValue(result, key, true, sub.AsConst())
		}
		return
	}
	if bv.Kind == mv.Kind && !mv.Kind.IsContainer() {
		if bv.Equal(mv) {
			return
		}
		result.Insert(key, mv)
		return
	}
	// Kind mismatch: full replace.
	graftValue(result, key, true, modified)
}
