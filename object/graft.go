package object

// graftValue inserts a copy of src as a new child of dstParent (by key, for
// a Map parent; appended, for a List parent) and recursively copies its
// descendants. It is the cross-arena primitive merge/diff build on: src may
// live in an entirely different arena than dstParent.
func graftValue(dstParent Object, key string, isMap bool, src ConstObject) Object {
	var child Object
	var err error
	if isMap {
		child, err = dstParent.Insert(key, src.Value())
	} else {
		child, err = dstParent.Append(src.Value())
	}
	if err != nil {
		panic(err)
	}
	graftChildren(child, src)
	return child
}

func graftChildren(dst Object, src ConstObject) {
	switch dst.Value().Kind {
	case Map:
		for c := src.Child(); c.IsValid(); c = c.Next() {
			grandchild, err := dst.Insert(c.Key(), c.Value())
			if err != nil {
				panic(err)
			}
			graftChildren(grandchild, c)
		}
	case List:
		for c := src.Child(); c.IsValid(); c = c.Next() {
			grandchild, err := dst.Append(c.Value())
			if err != nil {
				panic(err)
			}
			graftChildren(grandchild, c)
		}
	}
}

func collectChildren(o ConstObject) []ConstObject {
	var out []ConstObject
	for c := o.Child(); c.IsValid(); c = c.Next() {
		out = append(out, c)
	}
	return out
}
