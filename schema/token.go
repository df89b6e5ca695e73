package schema

import "github.com/varnix/structpack/pack"

// Kind is the tag of the schema alphabet of spec §3. Token equality is
// structural over the payload fields relevant to each kind.
type Kind uint8

const (
	I32 Kind = iota
	I64
	U32
	U64
	F32
	F64
	String
	Bool
	Optional
	Enumerate
	VariantBegin
	VariantEnd
	VariantNext
	BinaryData
	TrivialBegin
	TrivialEnd
	ObjectBegin
	ObjectEnd
	ObjectNext
	TupleBegin
	TupleEnd
	TupleNext
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Optional:
		return "optional"
	case Enumerate:
		return "enumerate"
	case VariantBegin:
		return "variant_begin"
	case VariantEnd:
		return "variant_end"
	case VariantNext:
		return "variant_next"
	case BinaryData:
		return "binary_data"
	case TrivialBegin:
		return "trivial_begin"
	case TrivialEnd:
		return "trivial_end"
	case ObjectBegin:
		return "object_begin"
	case ObjectEnd:
		return "object_end"
	case ObjectNext:
		return "object_next"
	case TupleBegin:
		return "tuple_begin"
	case TupleEnd:
		return "tuple_end"
	case TupleNext:
		return "tuple_next"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// Token is one element of a Schema. Only the fields relevant to Kind are
// meaningful: Labels for Enumerate/VariantBegin, Key for ObjectNext, Type
// for VariantNext, Size for TrivialBegin/TrivialEnd, Stride for BinaryData
// (0 means opaque bytes, matching primitive.Length's ElementSize=0 case;
// this extends the alphabet of spec §3 with the payload the Open Question
// of spec §9 requires the decoder to recover the stride from).
type Token struct {
	Kind   Kind
	Labels []string
	Key    string
	Type   string
	Size   int
	Stride int
}

// Equal reports structural equality over the fields Kind actually uses.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Enumerate, VariantBegin:
		return stringsEqual(t.Labels, other.Labels)
	case VariantNext:
		return t.Type == other.Type
	case ObjectNext:
		return t.Key == other.Key
	case TrivialBegin, TrivialEnd:
		return t.Size == other.Size
	case BinaryData:
		return t.Stride == other.Stride
	default:
		return true
	}
}

// tokenLabels is Token's label table: a Schema is itself packable as a list
// of labelled-variant Tokens (spec §6), one label per Kind in declaration
// order, grounded on token.cpp's variant_labels<Token>::value.
var tokenLabels = []string{
	"i32", "i64", "u32", "u64", "f32", "f64",
	"string", "bool",
	"optional", "enumerate",
	"variant_begin", "variant_end", "variant_next",
	"binary_data", "trivial_begin", "trivial_end",
	"object_begin", "object_end", "object_next",
	"tuple_begin", "tuple_end", "tuple_next",
	"list", "map",
}

// Visit makes Token a packable labelled variant: the active arm is Kind,
// and each arm visits only the payload fields it actually uses, wrapped in
// its own tiny object (mirroring token.cpp's per-variant visit functions).
// Arms with no payload (most of them) visit an empty object, so every arm
// is exactly one value subtree and a codec that names the arm by label
// (objpack) still has a value to store under it.
func (t *Token) Visit(p pack.Packer) {
	switch p.Mode() {
	case pack.ModeWrite, pack.ModeEdit:
		p.VariantBegin(tokenLabels)
		p.VariantMatch(tokenLabels[t.Kind])
		t.visitPayload(p)
		p.VariantEnd()

	case pack.ModeRead:
		p.VariantBegin(tokenLabels)
		matched := false
		for i, label := range tokenLabels {
			if !p.VariantMatch(label) {
				continue
			}
			if matched {
				p.Fail("repeated token label %q", label)
				continue
			}
			matched = true
			t.Kind = Kind(i)
			t.visitPayload(p)
			if !p.IsExhaustive() {
				break
			}
		}
		if !matched {
			p.Fail("no matching token label")
		}
		p.VariantEnd()

	case pack.ModeDefine:
		p.VariantBegin(tokenLabels)
		for i, label := range tokenLabels {
			p.VariantMatch(label)
			arm := Token{Kind: Kind(i)}
			arm.visitPayload(p)
		}
		p.VariantEnd()
	}
}

func (t *Token) visitPayload(p pack.Packer) {
	switch t.Kind {
	case Enumerate, VariantBegin:
		p.ObjectBegin()
		p.ObjectNext("labels")
		pack.Slice(p, &t.Labels, func(p pack.Packer, v *string) { p.String(v) })
		p.ObjectEnd()
	case VariantNext:
		p.ObjectBegin()
		p.ObjectNext("type")
		p.String(&t.Type)
		p.ObjectEnd()
	case ObjectNext:
		p.ObjectBegin()
		p.ObjectNext("key")
		p.String(&t.Key)
		p.ObjectEnd()
	case TrivialBegin, TrivialEnd:
		p.ObjectBegin()
		p.ObjectNext("size")
		size := int32(t.Size)
		p.I32(&size)
		t.Size = int(size)
		p.ObjectEnd()
	case BinaryData:
		p.ObjectBegin()
		p.ObjectNext("stride")
		stride := int32(t.Stride)
		p.I32(&stride)
		t.Stride = int(stride)
		p.ObjectEnd()
	default:
		p.ObjectBegin()
		p.ObjectEnd()
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
