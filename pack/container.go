package pack

import (
	"sort"

	"github.com/varnix/structpack/primitive"
)

// Slice bridges a Go slice to the List protocol. elem visits a single
// element; it is called with a pointer into the slice on write, a pointer
// to a scratch value on read, and a pointer to a zero value (once) on
// define.
func Slice[T any](p Packer, s *[]T, elem func(p Packer, v *T)) {
	switch p.Mode() {
	case ModeWrite, ModeEdit:
		p.ListBegin()
		for i := range *s {
			p.ListNext()
			elem(p, &(*s)[i])
		}
		p.ListEnd()
	case ModeRead:
		p.ListBegin()
		var out []T
		for p.ListNext() {
			var v T
			elem(p, &v)
			out = append(out, v)
		}
		p.ListEnd()
		*s = out
	case ModeDefine:
		p.ListBegin()
		var zero T
		elem(p, &zero)
		p.ListEnd()
	}
}

// StringMap bridges a Go map[string]T to the Map protocol. Entries are
// always emitted in ascending key order: the wire format has no inherent
// order for a Go map, and a deterministic order keeps writes reproducible
// and trivially satisfies an Ordered constraint.
func StringMap[T any](p Packer, m *map[string]T, elem func(p Packer, v *T), cs ...primitive.Constraint) {
	p.MapBegin(cs...)
	switch p.Mode() {
	case ModeWrite, ModeEdit:
		keys := make([]string, 0, len(*m))
		for k := range *m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			key := k
			p.MapNext(&key)
			v := (*m)[k]
			elem(p, &v)
		}
	case ModeRead:
		out := make(map[string]T)
		var key string
		for p.MapNext(&key) {
			var v T
			elem(p, &v)
			out[key] = v
		}
		*m = out
	case ModeDefine:
		var key string
		p.MapNext(&key)
		var zero T
		elem(p, &zero)
	}
	p.MapEnd()
}
