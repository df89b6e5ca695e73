package object

// ValueKind tags the variant stored at a node, mirroring datapack's
// _object::value_t variant: int64, float64, bool, string, null, binary, and
// the two container markers map/list.
type ValueKind uint8

const (
	Null ValueKind = iota
	Int
	Float
	Bool
	String
	Binary
	Map
	List
)

func (k ValueKind) String() string {
	switch k {
	case Null:
		return "null"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Binary:
		return "binary"
	case Map:
		return "map"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

func (k ValueKind) IsContainer() bool {
	return k == Map || k == List
}

// Value is the scalar payload of a node. Only the field matching Kind is
// meaningful; Map and List carry no payload beyond their kind.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
	Bin   []byte
}

func NullValue() Value           { return Value{Kind: Null} }
func IntValue(v int64) Value     { return Value{Kind: Int, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: Float, Float: v} }
func BoolValue(v bool) Value     { return Value{Kind: Bool, Bool: v} }
func StringValue(v string) Value { return Value{Kind: String, Str: v} }
func BinaryValue(v []byte) Value { return Value{Kind: Binary, Bin: v} }
func MapValue() Value            { return Value{Kind: Map} }
func ListValue() Value           { return Value{Kind: List} }

// Equal compares two scalar values structurally; container markers of the
// same kind are always equal (children are compared separately by the
// caller, e.g. object equality walks the tree).
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Int:
		return v.Int == other.Int
	case Float:
		return v.Float == other.Float
	case Bool:
		return v.Bool == other.Bool
	case String:
		return v.Str == other.Str
	case Binary:
		if len(v.Bin) != len(other.Bin) {
			return false
		}
		for i := range v.Bin {
			if v.Bin[i] != other.Bin[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// IsNullish reports whether v is an explicit null. It looks only at v
// itself: a map whose children are all null is not nullish here, and
// Merge/Diff do not treat such a map as absent either.
func (v Value) IsNullish() bool {
	return v.Kind == Null
}
