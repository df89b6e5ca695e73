package debugpack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/varnix/structpack/pack"
	"github.com/varnix/structpack/primitive"
)

// Writer is a pack.Packer that renders a value as indented debug text
// rather than a wire format. Each container buffers its own rendered
// children so that a list can learn, once its first child has closed,
// whether to annotate itself "trivial" — the annotation is decided only
// when the container itself closes, never up front.
type Writer struct {
	pack.FailState

	frames  []*frame
	out     strings.Builder
	pending int // size from a just-seen TrivialBegin, -1 when none
	key     string
	hasKey  bool

	// optionalStack remembers, per nested OptionalBegin/End pair, whether a
	// frame was pushed (has_value) or the absence leaf was emitted directly
	// (no_value), so OptionalEnd can tell which case it is closing.
	optionalStack []bool
}

type frame struct {
	kind          string // "object", "tuple", "list", "map", "variant", "optional"
	key           string // the slot key taken when the container opened
	buf           strings.Builder
	annotation    string
	label         string // variant arm label
	labels        []string
	sawChild      bool
	firstChildTrv bool
}

// NewWriter returns a Writer ready to render exactly one top-level value.
func NewWriter() *Writer {
	return &Writer{pending: -1}
}

// Render visits v against a fresh Writer and returns the rendered text.
func Render(v pack.Value) (string, error) {
	w := NewWriter()
	v.Visit(w)
	if w.Failed() {
		return "", &pack.DumpError{Message: w.Message()}
	}
	return w.out.String(), nil
}

func (w *Writer) Mode() pack.Mode { return pack.ModeWrite }

func (w *Writer) Fail(format string, args ...any) {
	w.FailState.Fail("", format, args...)
}

func (w *Writer) Err() error {
	if !w.Failed() {
		return nil
	}
	return &pack.DumpError{Message: w.Message()}
}

func (w *Writer) IsExhaustive() bool { return false }
func (w *Writer) Path() string       { return "" }

// takeKey consumes and returns the pending key set by the last
// ObjectNext/MapNext, or "" if the current slot has no key (list/tuple
// elements, variant/optional contents).
func (w *Writer) takeKey() string {
	if !w.hasKey {
		return ""
	}
	w.hasKey = false
	k := w.key
	w.key = ""
	return k
}

// emit writes one rendered entry (already fully formed, sans trailing
// comma/newline) into the current frame, or the top-level output if the
// stack is empty. trivial reports whether the entry itself closed as a
// trivial-annotated container, for the parent list's own annotation.
func (w *Writer) emit(text string, trivial bool) {
	prefix := ""
	if key := w.takeKey(); key != "" {
		prefix = key + ": "
	}
	line := prefix + text + ",\n"

	if len(w.frames) == 0 {
		w.out.WriteString(line)
		return
	}
	top := w.frames[len(w.frames)-1]
	if !top.sawChild {
		top.sawChild = true
		top.firstChildTrv = trivial
	}
	top.buf.WriteString(line)
}

func (w *Writer) leaf(text string) { w.emit(text, false) }

func (w *Writer) push(kind string) *frame {
	f := &frame{kind: kind, key: w.takeKey()}
	if w.pending >= 0 && (kind == "object" || kind == "tuple") {
		f.annotation = fmt.Sprintf("trivial size = %d", w.pending)
		w.pending = -1
	}
	w.frames = append(w.frames, f)
	return f
}

// close pops the top frame, renders its header + braced body, and emits it
// into the parent (or top-level output), prefixed with the key the frame
// took when it opened. It passes emit whether the closed frame itself
// carries a "trivial size" annotation, so a list parent can learn its own
// trivial-ness from its first child.
func (w *Writer) close() {
	n := len(w.frames)
	if n == 0 {
		w.Fail("debugpack: unbalanced container end")
		return
	}
	f := w.frames[n-1]
	w.frames = w.frames[:n-1]

	header := "(" + f.kind
	switch {
	case f.annotation != "":
		header += ", " + f.annotation
	case f.kind == "list" && f.sawChild && f.firstChildTrv:
		header += ", trivial"
	case f.kind == "variant":
		header += ", " + f.label
	}
	header += ")"

	body := indent(f.buf.String())
	text := header + " {\n" + body + "}"
	if f.key != "" {
		text = f.key + ": " + text
	}
	w.emit(text, strings.HasPrefix(f.annotation, "trivial size"))
}

func indent(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	var b strings.Builder
	for _, l := range lines {
		b.WriteString("    ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

func (w *Writer) I32(v *int32, cs ...primitive.Constraint) { w.leaf(strconv.FormatInt(int64(*v), 10)) }
func (w *Writer) I64(v *int64, cs ...primitive.Constraint) { w.leaf(strconv.FormatInt(*v, 10)) }
func (w *Writer) U32(v *uint32, cs ...primitive.Constraint) {
	w.leaf(strconv.FormatUint(uint64(*v), 10))
}
func (w *Writer) U64(v *uint64, cs ...primitive.Constraint) { w.leaf(strconv.FormatUint(*v, 10)) }
func (w *Writer) F32(v *float32, cs ...primitive.Constraint) {
	w.leaf(strconv.FormatFloat(float64(*v), 'g', -1, 32))
}
func (w *Writer) F64(v *float64, cs ...primitive.Constraint) {
	w.leaf(strconv.FormatFloat(*v, 'g', -1, 64))
}
func (w *Writer) Bool(v *bool) { w.leaf(strconv.FormatBool(*v)) }
func (w *Writer) String(v *string, cs ...primitive.Constraint) { w.leaf(*v) }

func (w *Writer) Enumerate(labels []string, index *int) {
	if *index < 0 || *index >= len(labels) {
		w.Fail("enum index %d out of range for %d labels", *index, len(labels))
		return
	}
	w.leaf("(enum, " + labels[*index] + ")")
}

func (w *Writer) OptionalBegin(has *bool) {
	if !*has {
		w.optionalStack = append(w.optionalStack, false)
		w.leaf("(optional, no_value)")
		return
	}
	w.optionalStack = append(w.optionalStack, true)
	w.push("optional")
}

func (w *Writer) OptionalEnd() {
	n := len(w.optionalStack)
	if n == 0 {
		w.Fail("debugpack: unbalanced optional end")
		return
	}
	pushed := w.optionalStack[n-1]
	w.optionalStack = w.optionalStack[:n-1]
	if pushed {
		w.closeWithAnnotation("has_value")
	}
}

// closeWithAnnotation is close() with a fixed annotation (used for
// optional, whose header text doesn't come from TrivialBegin or a variant
// label).
func (w *Writer) closeWithAnnotation(annotation string) {
	n := len(w.frames)
	if n == 0 {
		w.Fail("debugpack: unbalanced container end")
		return
	}
	w.frames[n-1].annotation = annotation
	w.close()
}

func (w *Writer) VariantBegin(labels []string) {
	f := w.push("variant")
	f.labels = labels
}

func (w *Writer) VariantMatch(label string) bool {
	if len(w.frames) == 0 {
		return false
	}
	top := w.frames[len(w.frames)-1]
	for _, l := range top.labels {
		if l == label {
			top.label = label
			return true
		}
	}
	w.Fail("unknown variant label %q", label)
	return false
}

func (w *Writer) VariantEnd() { w.close() }

func (w *Writer) Binary(data *[]byte, stride int, cs ...primitive.Constraint) {
	w.leaf(fmt.Sprintf("(binary, %d bytes)", len(*data)))
}

func (w *Writer) ObjectBegin()          { w.push("object") }
func (w *Writer) ObjectEnd()            { w.close() }
func (w *Writer) ObjectNext(key string) { w.key = key; w.hasKey = true }

func (w *Writer) TupleBegin() { w.push("tuple") }
func (w *Writer) TupleEnd()   { w.close() }
func (w *Writer) TupleNext()  {}

func (w *Writer) MapBegin(cs ...primitive.Constraint) { w.push("map") }
func (w *Writer) MapEnd()                             { w.close() }
func (w *Writer) MapNext(key *string) bool {
	w.key = *key
	w.hasKey = true
	return true
}

func (w *Writer) ListBegin() { w.push("list") }
func (w *Writer) ListEnd()   { w.close() }
func (w *Writer) ListNext() bool {
	return true
}

func (w *Writer) TrivialBegin(size int) { w.pending = size }
func (w *Writer) TrivialEnd(size int)   { w.pending = -1 }
