package object

import "strconv"

// Merge applies diff on top of base and returns the result, mirroring
// datapack's object_merge. See Diff for the inverse operation.
func Merge(base, diff ConstObject) Object {
	bv, dv := base.Value(), diff.Value()
	switch {
	case bv.Kind == Map && dv.Kind == Map:
		return mergeMapValue(base, diff)
	case bv.Kind == List && dv.Kind == Map:
		return mergeListValue(base, diff)
	default:
		return diff.Clone()
	}
}

func mergeMapValue(base, diff ConstObject) Object {
	result := New(MapValue())
	for c := base.Child(); c.IsValid(); c = c.Next() {
		key := c.Key()
		dc := diff.Get(key)
		if !dc.IsValid() {
			graftValue(result, key, true, c)
			continue
		}
		mergeEntryIntoMap(result, key, true, c, dc)
	}
	for c := diff.Child(); c.IsValid(); c = c.Next() {
		if base.Get(c.Key()).IsValid() {
			continue
		}
		mergeEntryIntoMap(result, c.Key(), false, EmptyConst(), c)
	}
	return result
}

// mergeEntryIntoMap merges diffChild onto base (if present) and inserts the
// result at key in result, or omits key when diffChild is an erase marker.
func mergeEntryIntoMap(result Object, key string, baseValid bool, base, diffChild ConstObject) {
	dv := diffChild.Value()
	if dv.Kind == Null {
		// Erase: present in base and not carried forward, or a no-op
		// erase of something that was never there.
		return
	}
	if !baseValid {
		graftValue(result, key, true, diffChild)
		return
	}
	bv := base.Value()
	if bv.Kind == Map && dv.Kind == Map {
		merged := mergeMapValue(base, diffChild)
		graftValue(result, key, true, merged.AsConst())
		return
	}
	if bv.Kind == List && dv.Kind == Map {
		merged := mergeListValue(base, diffChild)
		graftValue(result, key, true, merged.AsConst())
		return
	}
	graftValue(result, key, true, diffChild)
}

func mergeListValue(base, diff ConstObject) Object {
	result := New(ListValue())
	baseElems := collectChildren(base)
	n := len(baseElems)
	maxIdx := n - 1
	for c := diff.Child(); c.IsValid(); c = c.Next() {
		if idx, err := strconv.Atoi(c.Key()); err == nil && idx > maxIdx {
			maxIdx = idx
		}
	}
	for i := 0; i <= maxIdx; i++ {
		dc := diff.Get(strconv.Itoa(i))
		if i < n {
			mergeEntryAppend(result, true, baseElems[i], dc)
		} else {
			mergeEntryAppend(result, false, EmptyConst(), dc)
		}
	}
	return result
}

// mergeEntryAppend appends the merge of (base, diffChild) to result (a
// List), or appends nothing when diffChild is absent/erase: omitting a
// position shifts every later element down by one, which is how a
// mid-list erasure is represented.
func mergeEntryAppend(result Object, baseValid bool, base, diffChild ConstObject) {
	if !diffChild.IsValid() {
		if baseValid {
			graftValue(result, "", false, base)
		}
		return
	}
	dv := diffChild.Value()
	if dv.Kind == Null {
		return
	}
	if !baseValid {
		graftValue(result, "", false, diffChild)
		return
	}
	bv := base.Value()
	if bv.Kind == Map && dv.Kind == Map {
		merged := mergeMapValue(base, diffChild)
		graftValue(result, "", false, merged.AsConst())
		return
	}
	if bv.Kind == List && dv.Kind == Map {
		merged := mergeListValue(base, diffChild)
		graftValue(result, "", false, merged.AsConst())
		return
	}
	graftValue(result, "", false, diffChild)
}
