package labelled

import "github.com/varnix/structpack/pack"

// PackEnum visits *v as a labelled enum using labels, where T is any named
// integer type. It is uniform across all four modes: write emits the
// current index, read decodes an index into *v, define only records the
// label table.
func PackEnum[T ~int | ~int32 | ~int64 | ~uint | ~uint32](p pack.Packer, v *T, labels []string) {
	idx := int(*v)
	p.Enumerate(labels, &idx)
	*v = T(idx)
}
