package schema

import (
	"fmt"

	"github.com/varnix/structpack/pack"
)

// Schema is an ordered sequence of tokens, one full depth-first traversal
// of a type, as produced by running Definer over it (SchemaOf).
type Schema struct {
	Tokens []Token
}

// Equal reports structural equality of two schemas.
func (s Schema) Equal(other Schema) bool {
	if len(s.Tokens) != len(other.Tokens) {
		return false
	}
	for i := range s.Tokens {
		if !s.Tokens[i].Equal(other.Tokens[i]) {
			return false
		}
	}
	return true
}

// Visit drives p through the schema's own shape: a Schema is itself a
// packable value per spec §6, a List of labelled-variant Tokens, so it can
// round-trip through any codec including the binary one (testable property
// 4, schema self-encoding).
func (s *Schema) Visit(p pack.Packer) {
	pack.Slice(p, &s.Tokens, func(p pack.Packer, t *Token) { t.Visit(p) })
}

// TokensEnd returns the position just past the subtree rooted at pos,
// counting Begin/End depth while treating Map, List, Optional, and
// BinaryData as prefixes that consume exactly one following subtree
// (recursively, so a container nested directly as another container's
// element type is still skipped correctly) — spec §4.4's tokens_end.
func TokensEnd(tokens []Token, pos int) (int, error) {
	if pos >= len(tokens) {
		return 0, fmt.Errorf("schema: tokens_end: position %d past end of %d tokens", pos, len(tokens))
	}
	t := tokens[pos]
	switch t.Kind {
	case Map, List, Optional, BinaryData:
		return TokensEnd(tokens, pos+1)

	case TrivialBegin:
		inner, err := TokensEnd(tokens, pos+1)
		if err != nil {
			return 0, err
		}
		if inner >= len(tokens) || tokens[inner].Kind != TrivialEnd {
			return 0, fmt.Errorf("schema: trivial_begin at %d missing matching trivial_end", pos)
		}
		return inner + 1, nil

	case ObjectBegin:
		return skipBracketed(tokens, pos+1, ObjectNext, ObjectEnd)
	case TupleBegin:
		return skipBracketed(tokens, pos+1, TupleNext, TupleEnd)
	case VariantBegin:
		return skipVariant(tokens, pos+1)

	default:
		return pos + 1, nil
	}
}

// skipBracketed walks Object/Tuple children: a Next marker is a zero-width
// separator, anything else is a full value subtree, until end is reached.
func skipBracketed(tokens []Token, pos int, next, end Kind) (int, error) {
	for {
		if pos >= len(tokens) {
			return 0, fmt.Errorf("schema: unterminated container starting near %d", pos)
		}
		if tokens[pos].Kind == end {
			return pos + 1, nil
		}
		if tokens[pos].Kind == next {
			pos++
			continue
		}
		var err error
		pos, err = TokensEnd(tokens, pos)
		if err != nil {
			return 0, err
		}
	}
}

func skipVariant(tokens []Token, pos int) (int, error) {
	for {
		if pos >= len(tokens) {
			return 0, fmt.Errorf("schema: unterminated variant starting near %d", pos)
		}
		if tokens[pos].Kind == VariantEnd {
			return pos + 1, nil
		}
		if tokens[pos].Kind != VariantNext {
			return 0, fmt.Errorf("schema: expected variant_next or variant_end at %d", pos)
		}
		pos++
		var err error
		pos, err = TokensEnd(tokens, pos)
		if err != nil {
			return 0, err
		}
	}
}
