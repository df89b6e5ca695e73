package labelled

import "github.com/varnix/structpack/pack"

// Variant is implemented by every arm of a labelled sum type: it knows its
// own wire label and how to visit itself.
type Variant interface {
	pack.Value
	VariantLabel() string
}

// Table describes a labelled sum type: every label in declaration order,
// plus a constructor from label back to a zero-valued arm (needed to
// allocate the right concrete type while reading).
type Table[T Variant] struct {
	Labels []string
	New    map[string]func() T
}

// PackVariant visits *v as a labelled variant using table. See
// match_variant_next in the original datapack source: on read it matches
// every label in turn, stopping at the first match unless the packer
// reports IsExhaustive, in which case it keeps matching so that a repeated
// label can be detected by the caller.
func PackVariant[T Variant](p pack.Packer, v *T, table Table[T]) {
	switch p.Mode() {
	case pack.ModeWrite, pack.ModeEdit:
		label := (*v).VariantLabel()
		p.VariantBegin(table.Labels)
		p.VariantMatch(label)
		(*v).Visit(p)
		p.VariantEnd()

	case pack.ModeRead:
		p.VariantBegin(table.Labels)
		matched := false
		for _, label := range table.Labels {
			if !p.VariantMatch(label) {
				continue
			}
			if matched {
				p.Fail("repeated variant label %q", label)
				continue
			}
			matched = true
			newArm, ok := table.New[label]
			if !ok {
				p.Fail("no constructor registered for variant label %q", label)
				continue
			}
			arm := newArm()
			arm.Visit(p)
			*v = arm
			if !p.IsExhaustive() {
				break
			}
		}
		if !matched {
			p.Fail("no matching variant")
		}
		p.VariantEnd()

	case pack.ModeDefine:
		p.VariantBegin(table.Labels)
		for _, label := range table.Labels {
			p.VariantMatch(label)
			newArm := table.New[label]
			newArm().Visit(p)
		}
		p.VariantEnd()
	}
}
