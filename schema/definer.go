package schema

import (
	"github.com/varnix/structpack/pack"
	"github.com/varnix/structpack/primitive"
)

// Definer is a pack.Packer that records one depth-first traversal of a
// value's shape as a Schema, touching no concrete data. It never fails:
// every value is structurally well-typed by construction, so Fail/Err are
// present only to satisfy pack.Packer.
type Definer struct {
	pack.FailState
	pack.PathTracker

	tokens     []Token
	listFrames []bool
	mapFrames  []bool
}

// NewDefiner returns a Definer with an empty token buffer.
func NewDefiner() *Definer {
	return &Definer{}
}

// SchemaOf runs v through a fresh Definer and returns the resulting Schema.
func SchemaOf(v pack.Value) Schema {
	d := NewDefiner()
	v.Visit(d)
	return Schema{Tokens: d.tokens}
}

func (d *Definer) Mode() pack.Mode { return pack.ModeDefine }

func (d *Definer) Fail(format string, args ...any) {
	d.FailState.Fail(d.Path(), format, args...)
}

func (d *Definer) Err() error {
	if !d.Failed() {
		return nil
	}
	return &pack.DumpError{Path: d.FailedPath(), Message: d.Message()}
}

func (d *Definer) IsExhaustive() bool { return false }

func (d *Definer) emit(t Token) { d.tokens = append(d.tokens, t) }

func (d *Definer) I32(v *int32, cs ...primitive.Constraint)    { d.emit(Token{Kind: I32}) }
func (d *Definer) I64(v *int64, cs ...primitive.Constraint)    { d.emit(Token{Kind: I64}) }
func (d *Definer) U32(v *uint32, cs ...primitive.Constraint)   { d.emit(Token{Kind: U32}) }
func (d *Definer) U64(v *uint64, cs ...primitive.Constraint)   { d.emit(Token{Kind: U64}) }
func (d *Definer) F32(v *float32, cs ...primitive.Constraint)  { d.emit(Token{Kind: F32}) }
func (d *Definer) F64(v *float64, cs ...primitive.Constraint)  { d.emit(Token{Kind: F64}) }
func (d *Definer) Bool(v *bool)                                { d.emit(Token{Kind: Bool}) }
func (d *Definer) String(v *string, cs ...primitive.Constraint) { d.emit(Token{Kind: String}) }

func (d *Definer) Enumerate(labels []string, index *int) {
	d.emit(Token{Kind: Enumerate, Labels: append([]string(nil), labels...)})
}

// OptionalBegin always recurses into the present branch: Define has no
// concrete value to branch on, so the schema records the shape of the
// value an Optional holds, not whether one happens to be present.
func (d *Definer) OptionalBegin(has *bool) {
	d.emit(Token{Kind: Optional})
	*has = true
}
func (d *Definer) OptionalEnd() {}

func (d *Definer) VariantBegin(labels []string) {
	d.emit(Token{Kind: VariantBegin, Labels: append([]string(nil), labels...)})
}

// VariantMatch always reports true: Define enumerates every arm in turn
// regardless of which one a concrete value would pick, recording a
// VariantNext token ahead of each arm's own subtree.
func (d *Definer) VariantMatch(label string) bool {
	d.emit(Token{Kind: VariantNext, Type: label})
	return true
}

func (d *Definer) VariantEnd() { d.emit(Token{Kind: VariantEnd}) }

func (d *Definer) Binary(data *[]byte, stride int, cs ...primitive.Constraint) {
	d.emit(Token{Kind: BinaryData, Stride: stride})
}

func (d *Definer) ObjectBegin() { d.emit(Token{Kind: ObjectBegin}) }
func (d *Definer) ObjectEnd()   { d.emit(Token{Kind: ObjectEnd}) }
func (d *Definer) ObjectNext(key string) {
	d.emit(Token{Kind: ObjectNext, Key: key})
}

func (d *Definer) TupleBegin()  { d.emit(Token{Kind: TupleBegin}) }
func (d *Definer) TupleEnd()    { d.emit(Token{Kind: TupleEnd}) }
func (d *Definer) TupleNext()   { d.emit(Token{Kind: TupleNext}) }

// MapBegin emits a single self-contained Map token: unlike Object/Tuple, a
// map's key set isn't part of its type, so there is nothing for MapNext/
// MapEnd to add to the schema beyond the one entry-type subtree MapNext
// admits (spec §4.4 treats Map as a consume-next-subtree prefix covering
// exactly one value shape, the entry type).
func (d *Definer) MapBegin(cs ...primitive.Constraint) {
	d.emit(Token{Kind: Map})
	d.mapFrames = append(d.mapFrames, true)
}
func (d *Definer) MapEnd() {
	if len(d.mapFrames) > 0 {
		d.mapFrames = d.mapFrames[:len(d.mapFrames)-1]
	}
}
func (d *Definer) MapNext(key *string) bool {
	if len(d.mapFrames) == 0 {
		return false
	}
	top := len(d.mapFrames) - 1
	if !d.mapFrames[top] {
		return false
	}
	d.mapFrames[top] = false
	return true
}

// ListBegin emits a single self-contained List token for the same reason
// MapBegin does: the element count isn't part of the type, only the shape
// of one element is, and ListNext admits exactly that one subtree.
func (d *Definer) ListBegin() {
	d.emit(Token{Kind: List})
	d.listFrames = append(d.listFrames, true)
}
func (d *Definer) ListEnd() {
	if len(d.listFrames) > 0 {
		d.listFrames = d.listFrames[:len(d.listFrames)-1]
	}
}
func (d *Definer) ListNext() bool {
	if len(d.listFrames) == 0 {
		return false
	}
	top := len(d.listFrames) - 1
	if !d.listFrames[top] {
		return false
	}
	d.listFrames[top] = false
	return true
}

func (d *Definer) TrivialBegin(size int) { d.emit(Token{Kind: TrivialBegin, Size: size}) }
func (d *Definer) TrivialEnd(size int)   { d.emit(Token{Kind: TrivialEnd, Size: size}) }
