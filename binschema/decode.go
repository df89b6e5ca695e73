package binschema

import (
	"fmt"

	"github.com/varnix/structpack/binary"
	"github.com/varnix/structpack/object"
	"github.com/varnix/structpack/objpack"
	"github.com/varnix/structpack/schema"
)

type frameKind int

const (
	frameNone frameKind = iota
	frameMap
	frameList
	frameOptional
	frameVariant
)

// frame brackets one re-entrant region of the token stream: bodyBegin is
// where its single value-subtree starts, bodyEnd is where the schema
// resumes once the container is exhausted (computed once via
// schema.TokensEnd, since Map/List/Optional have no explicit End token of
// their own). done latches Optional/Variant's one-shot "entered the body
// once" transition.
type frame struct {
	kind      frameKind
	bodyBegin int
	bodyEnd   int
	done      bool
}

// Decode walks data per s, producing the Object tree it represents. This is
// the schema-driven counterpart of pairing a binary.Reader directly with a
// pack.Value's Visit: here there is no Go type, only the token stream, so
// the driver itself must supply the container bracketing that Visit would
// otherwise provide.
func Decode(s schema.Schema, data []byte) (object.Object, error) {
	tokens := s.Tokens
	if len(tokens) == 0 {
		return object.Object{}, fmt.Errorf("binschema: empty schema")
	}

	br := binary.NewReader(data)
	w := objpack.NewWriter()
	stack := []*frame{{kind: frameNone}}
	pos := 0

	for pos < len(tokens) || len(stack) > 1 {
		top := stack[len(stack)-1]

		switch top.kind {
		case frameMap:
			var key string
			if !br.MapNext(&key) {
				w.MapEnd()
				pos = top.bodyEnd
				stack = stack[:len(stack)-1]
				continue
			}
			w.MapNext(&key)
			pos = top.bodyBegin

		case frameList:
			if !br.ListNext() {
				w.ListEnd()
				pos = top.bodyEnd
				stack = stack[:len(stack)-1]
				continue
			}
			w.ListNext()
			pos = top.bodyBegin

		case frameOptional:
			if top.done {
				pos = top.bodyEnd
				stack = stack[:len(stack)-1]
				continue
			}
			var has bool
			br.OptionalBegin(&has)
			w.OptionalBegin(&has)
			top.done = true
			if !has {
				br.OptionalEnd()
				w.OptionalEnd()
				pos = top.bodyEnd
				stack = stack[:len(stack)-1]
				continue
			}
			pos = top.bodyBegin

		case frameVariant:
			if top.done {
				br.VariantEnd()
				w.VariantEnd()
				pos = top.bodyEnd
				stack = stack[:len(stack)-1]
				continue
			}
			top.done = true
			pos = top.bodyBegin
		}

		if br.Failed() {
			return object.Object{}, br.Err()
		}
		if w.Failed() {
			return object.Object{}, w.Err()
		}
		if pos >= len(tokens) {
			return object.Object{}, fmt.Errorf("binschema: schema ended mid-container at token %d", pos)
		}

		tok := tokens[pos]
		pos++

		switch tok.Kind {
		case schema.ObjectBegin:
			br.ObjectBegin()
			w.ObjectBegin()
			stack = append(stack, &frame{kind: frameNone})
		case schema.ObjectEnd:
			br.ObjectEnd()
			w.ObjectEnd()
			stack = stack[:len(stack)-1]
		case schema.ObjectNext:
			br.ObjectNext(tok.Key)
			w.ObjectNext(tok.Key)

		case schema.TupleBegin:
			br.TupleBegin()
			w.TupleBegin()
			stack = append(stack, &frame{kind: frameNone})
		case schema.TupleEnd:
			br.TupleEnd()
			w.TupleEnd()
			stack = stack[:len(stack)-1]
		case schema.TupleNext:
			br.TupleNext()
			w.TupleNext()

		case schema.Map:
			br.MapBegin()
			w.MapBegin()
			end, err := schema.TokensEnd(tokens, pos)
			if err != nil {
				return object.Object{}, err
			}
			stack = append(stack, &frame{kind: frameMap, bodyBegin: pos, bodyEnd: end})

		case schema.List:
			br.ListBegin()
			w.ListBegin()
			end, err := schema.TokensEnd(tokens, pos)
			if err != nil {
				return object.Object{}, err
			}
			stack = append(stack, &frame{kind: frameList, bodyBegin: pos, bodyEnd: end})

		case schema.Optional:
			end, err := schema.TokensEnd(tokens, pos)
			if err != nil {
				return object.Object{}, err
			}
			stack = append(stack, &frame{kind: frameOptional, bodyBegin: pos, bodyEnd: end})

		case schema.VariantBegin:
			br.VariantBegin(tok.Labels)
			matchedLabel := ""
			matchedBegin := -1
			foundMatch := false
			for {
				if pos >= len(tokens) {
					return object.Object{}, fmt.Errorf("binschema: unterminated variant at token %d", pos)
				}
				vt := tokens[pos]
				if vt.Kind == schema.VariantEnd {
					pos++
					break
				}
				if vt.Kind != schema.VariantNext {
					return object.Object{}, fmt.Errorf("binschema: expected variant_next or variant_end at token %d", pos)
				}
				pos++
				if br.VariantMatch(vt.Type) {
					if foundMatch {
						return object.Object{}, fmt.Errorf("binschema: repeated variant label %q", vt.Type)
					}
					foundMatch = true
					matchedLabel = vt.Type
					matchedBegin = pos
				}
				var err error
				pos, err = schema.TokensEnd(tokens, pos)
				if err != nil {
					return object.Object{}, err
				}
			}
			if !foundMatch {
				return object.Object{}, fmt.Errorf("binschema: no matching variant among %v", tok.Labels)
			}
			w.VariantBegin(tok.Labels)
			w.VariantMatch(matchedLabel)
			stack = append(stack, &frame{kind: frameVariant, bodyBegin: matchedBegin, bodyEnd: pos})

		case schema.BinaryData:
			var buf []byte
			br.Binary(&buf, tok.Stride)
			w.Binary(&buf, tok.Stride)

		case schema.TrivialBegin:
			br.TrivialBegin(tok.Size)
			w.TrivialBegin(tok.Size)
			stack = append(stack, &frame{kind: frameNone})
		case schema.TrivialEnd:
			br.TrivialEnd(tok.Size)
			w.TrivialEnd(tok.Size)
			stack = stack[:len(stack)-1]

		case schema.I32:
			var v int32
			br.I32(&v)
			w.I32(&v)
		case schema.I64:
			var v int64
			br.I64(&v)
			w.I64(&v)
		case schema.U32:
			var v uint32
			br.U32(&v)
			w.U32(&v)
		case schema.U64:
			var v uint64
			br.U64(&v)
			w.U64(&v)
		case schema.F32:
			var v float32
			br.F32(&v)
			w.F32(&v)
		case schema.F64:
			var v float64
			br.F64(&v)
			w.F64(&v)
		case schema.Bool:
			var v bool
			br.Bool(&v)
			w.Bool(&v)
		case schema.String:
			var v string
			br.String(&v)
			w.String(&v)
		case schema.Enumerate:
			idx := 0
			br.Enumerate(tok.Labels, &idx)
			w.Enumerate(tok.Labels, &idx)

		default:
			return object.Object{}, fmt.Errorf("binschema: unexpected token kind %s at token %d", tok.Kind, pos-1)
		}

		if br.Failed() {
			return object.Object{}, br.Err()
		}
		if w.Failed() {
			return object.Object{}, w.Err()
		}
	}

	return w.Root(), nil
}
