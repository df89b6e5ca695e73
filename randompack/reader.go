package randompack

import (
	"math/rand"

	"github.com/varnix/structpack/pack"
	"github.com/varnix/structpack/primitive"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Options configures a Reader.
type Options struct {
	// MaxContainers is a budget shared across the whole run, mirroring
	// RandomReader's container_counter: each Map/List given a random length
	// (0 to 3 entries) and each Optional reported present spends one unit.
	// Once exhausted, every further Map/List reports itself empty and every
	// Optional absent, which guarantees termination for self-referential
	// variant types. A Map with a Length constraint takes that length and
	// spends nothing.
	MaxContainers int
}

// DefaultOptions returns a modest container budget, generous enough to
// exercise nested structures without producing unreasonably large trees.
func DefaultOptions() Options {
	return Options{MaxContainers: 32}
}

// Reader is a pack.Packer, running in pack.ModeRead, that answers every
// query from an RNG rather than a decoded source. Object/Tuple shapes are
// fixed by the type being visited, so only Map/List length and the
// Optional/Variant choices are actually randomized.
type Reader struct {
	pack.FailState

	rng    *rand.Rand
	budget int
	stack  []contFrame
	active string // the label VariantBegin picked, consumed by VariantMatch
}

type contFrame struct {
	remaining int
}

// NewReader returns a Reader drawing from rng, bounded by opts.
func NewReader(rng *rand.Rand, opts Options) *Reader {
	return &Reader{rng: rng, budget: opts.MaxContainers}
}

// Generate visits v against a fresh Reader, filling it with random data.
func Generate(rng *rand.Rand, opts Options, v pack.Value) error {
	r := NewReader(rng, opts)
	v.Visit(r)
	if r.Failed() {
		return r.Err()
	}
	return nil
}

func (r *Reader) Mode() pack.Mode { return pack.ModeRead }

func (r *Reader) Fail(format string, args ...any) {
	r.FailState.Fail("", format, args...)
}

func (r *Reader) Err() error {
	if !r.Failed() {
		return nil
	}
	return &pack.LoadError{Message: r.Message()}
}

func (r *Reader) IsExhaustive() bool { return false }
func (r *Reader) Path() string       { return "" }

func randRange(rng *rand.Rand, lower, upper float64) float64 {
	if upper <= lower {
		return lower
	}
	return lower + rng.Float64()*(upper-lower)
}

func (r *Reader) I32(v *int32, cs ...primitive.Constraint) {
	if rg, has := primitive.FindRange(cs); has {
		*v = int32(randRange(r.rng, rg.Lower, rg.Upper))
		return
	}
	*v = int32(r.rng.Intn(2001) - 1000)
}

func (r *Reader) I64(v *int64, cs ...primitive.Constraint) {
	if rg, has := primitive.FindRange(cs); has {
		*v = int64(randRange(r.rng, rg.Lower, rg.Upper))
		return
	}
	*v = int64(r.rng.Intn(2_000_001) - 1_000_000)
}

func (r *Reader) U32(v *uint32, cs ...primitive.Constraint) {
	if rg, has := primitive.FindRange(cs); has {
		*v = uint32(randRange(r.rng, rg.Lower, rg.Upper))
		return
	}
	*v = uint32(r.rng.Intn(1001))
}

func (r *Reader) U64(v *uint64, cs ...primitive.Constraint) {
	if rg, has := primitive.FindRange(cs); has {
		*v = uint64(randRange(r.rng, rg.Lower, rg.Upper))
		return
	}
	*v = uint64(r.rng.Intn(1_000_001))
}

func (r *Reader) F32(v *float32, cs ...primitive.Constraint) {
	if rg, has := primitive.FindRange(cs); has {
		*v = float32(randRange(r.rng, rg.Lower, rg.Upper))
		return
	}
	*v = float32(randRange(r.rng, -1000, 1000))
}

func (r *Reader) F64(v *float64, cs ...primitive.Constraint) {
	if rg, has := primitive.FindRange(cs); has {
		*v = randRange(r.rng, rg.Lower, rg.Upper)
		return
	}
	*v = randRange(r.rng, -1000, 1000)
}

func (r *Reader) Bool(v *bool) { *v = r.rng.Intn(2) == 1 }

func (r *Reader) String(v *string, cs ...primitive.Constraint) {
	n := r.rng.Intn(9)
	if l, has := primitive.FindLength(cs); has {
		n = l.Length
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.rng.Intn(len(alphabet))]
	}
	*v = string(b)
}

func (r *Reader) Enumerate(labels []string, index *int) {
	if len(labels) == 0 {
		r.Fail("enumerate: no labels")
		*index = 0
		return
	}
	*index = r.rng.Intn(len(labels))
}

func (r *Reader) OptionalBegin(has *bool) {
	if r.budget <= 0 {
		*has = false
		return
	}
	*has = r.rng.Intn(2) == 1
	if *has {
		r.budget--
	}
}

func (r *Reader) OptionalEnd() {}

func (r *Reader) VariantBegin(labels []string) {
	if len(labels) == 0 {
		r.Fail("variant_begin: no labels")
		return
	}
	r.active = labels[r.rng.Intn(len(labels))]
}

func (r *Reader) VariantMatch(label string) bool { return label == r.active }

func (r *Reader) VariantEnd() {}

func (r *Reader) Binary(data *[]byte, stride int, cs ...primitive.Constraint) {
	n := r.rng.Intn(5)
	if l, has := primitive.FindLength(cs); has {
		n = l.Length
	}
	elem := stride
	if elem == 0 {
		elem = 1
	}
	b := make([]byte, n*elem)
	r.rng.Read(b)
	*data = b
}

func (r *Reader) ObjectBegin()          {}
func (r *Reader) ObjectEnd()            {}
func (r *Reader) ObjectNext(key string) {}

func (r *Reader) TupleBegin() {}
func (r *Reader) TupleEnd()   {}
func (r *Reader) TupleNext()  {}

// containerLen decides how many entries a Map/List will yield, consuming
// one unit of the shared budget.
func (r *Reader) containerLen(cs []primitive.Constraint) int {
	if l, has := primitive.FindLength(cs); has {
		return l.Length
	}
	if r.budget <= 0 {
		return 0
	}
	r.budget--
	return r.rng.Intn(4)
}

func (r *Reader) MapBegin(cs ...primitive.Constraint) {
	r.stack = append(r.stack, contFrame{remaining: r.containerLen(cs)})
}

func (r *Reader) MapEnd() {
	if len(r.stack) == 0 {
		r.Fail("map_end: unbalanced")
		return
	}
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Reader) MapNext(key *string) bool {
	if len(r.stack) == 0 {
		return false
	}
	top := &r.stack[len(r.stack)-1]
	if top.remaining <= 0 {
		return false
	}
	top.remaining--
	k := make([]byte, 6)
	for i := range k {
		k[i] = alphabet[r.rng.Intn(26)]
	}
	*key = string(k)
	return true
}

func (r *Reader) ListBegin() {
	r.stack = append(r.stack, contFrame{remaining: r.containerLen(nil)})
}

func (r *Reader) ListEnd() {
	if len(r.stack) == 0 {
		r.Fail("list_end: unbalanced")
		return
	}
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Reader) ListNext() bool {
	if len(r.stack) == 0 {
		return false
	}
	top := &r.stack[len(r.stack)-1]
	if top.remaining <= 0 {
		return false
	}
	top.remaining--
	return true
}

func (r *Reader) TrivialBegin(size int) {}
func (r *Reader) TrivialEnd(size int)   {}
