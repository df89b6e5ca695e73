package jsonbridge

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/varnix/structpack/object"
)

// ToJSON renders o as JSON bytes. Map children are emitted in their tree's
// insertion order (encoding/json's json.Marshal of a Go map would instead
// sort keys alphabetically, losing that order), and Binary payloads become
// base64 strings.
func ToJSON(o object.ConstObject) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, o object.ConstObject) error {
	v := o.Value()
	switch v.Kind {
	case object.Null:
		buf.WriteString("null")

	case object.Bool:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}

	case object.Int:
		buf.WriteString(strconv.FormatInt(v.Int, 10))

	case object.Float:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return fmt.Errorf("jsonbridge: %v is not representable in JSON", v.Float)
		}
		buf.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))

	case object.String:
		enc, err := json.Marshal(v.Str)
		if err != nil {
			return fmt.Errorf("jsonbridge: %w", err)
		}
		buf.Write(enc)

	case object.Binary:
		enc, err := json.Marshal(base64.StdEncoding.EncodeToString(v.Bin))
		if err != nil {
			return fmt.Errorf("jsonbridge: %w", err)
		}
		buf.Write(enc)

	case object.Map:
		buf.WriteByte('{')
		first := true
		for c := o.Child(); c.IsValid(); c = c.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			keyEnc, err := json.Marshal(c.Key())
			if err != nil {
				return fmt.Errorf("jsonbridge: %w", err)
			}
			buf.Write(keyEnc)
			buf.WriteByte(':')
			if err := writeValue(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case object.List:
		buf.WriteByte('[')
		first := true
		for c := o.Child(); c.IsValid(); c = c.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeValue(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}

// FromJSON parses data into a fresh Object tree, preserving the source's
// key order by walking json.Decoder's token stream directly rather than
// going through a Go map (whose iteration order is unspecified). Binary
// nodes are never produced here: a plain JSON string stays a String node,
// even one that happens to be valid base64 — only a caller that knows a
// given field is binary should base64-decode it itself.
func FromJSON(data []byte) (object.Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return object.Object{}, fmt.Errorf("jsonbridge: %w", err)
	}
	root, err := buildRoot(dec, tok)
	if err != nil {
		return object.Object{}, err
	}
	if dec.More() {
		return object.Object{}, fmt.Errorf("jsonbridge: trailing data after top-level value")
	}
	return root, nil
}

func buildRoot(dec *json.Decoder, tok json.Token) (object.Object, error) {
	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			root := object.New(object.MapValue())
			return root, fillMap(dec, root)
		case '[':
			root := object.New(object.ListValue())
			return root, fillList(dec, root)
		default:
			return object.Object{}, fmt.Errorf("jsonbridge: unexpected delimiter %q", delim)
		}
	}
	v, err := scalarValue(tok)
	if err != nil {
		return object.Object{}, err
	}
	return object.New(v), nil
}

func fillMap(dec *json.Decoder, parent object.Object) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("jsonbridge: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("jsonbridge: expected string key, got %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("jsonbridge: %w", err)
		}
		if err := insertValue(dec, parent, key, valTok); err != nil {
			return err
		}
	}
	_, err := dec.Token() // closing '}'
	return err
}

func fillList(dec *json.Decoder, parent object.Object) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("jsonbridge: %w", err)
		}
		if err := appendValue(dec, parent, tok); err != nil {
			return err
		}
	}
	_, err := dec.Token() // closing ']'
	return err
}

func insertValue(dec *json.Decoder, parent object.Object, key string, tok json.Token) error {
	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			child, err := parent.Insert(key, object.MapValue())
			if err != nil {
				return fmt.Errorf("jsonbridge: %w", err)
			}
			return fillMap(dec, child)
		case '[':
			child, err := parent.Insert(key, object.ListValue())
			if err != nil {
				return fmt.Errorf("jsonbridge: %w", err)
			}
			return fillList(dec, child)
		default:
			return fmt.Errorf("jsonbridge: unexpected delimiter %q", delim)
		}
	}
	v, err := scalarValue(tok)
	if err != nil {
		return err
	}
	_, err = parent.Insert(key, v)
	if err != nil {
		return fmt.Errorf("jsonbridge: %w", err)
	}
	return nil
}

func appendValue(dec *json.Decoder, parent object.Object, tok json.Token) error {
	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			child, err := parent.Append(object.MapValue())
			if err != nil {
				return fmt.Errorf("jsonbridge: %w", err)
			}
			return fillMap(dec, child)
		case '[':
			child, err := parent.Append(object.ListValue())
			if err != nil {
				return fmt.Errorf("jsonbridge: %w", err)
			}
			return fillList(dec, child)
		default:
			return fmt.Errorf("jsonbridge: unexpected delimiter %q", delim)
		}
	}
	v, err := scalarValue(tok)
	if err != nil {
		return err
	}
	_, err = parent.Append(v)
	if err != nil {
		return fmt.Errorf("jsonbridge: %w", err)
	}
	return nil
}

func scalarValue(tok json.Token) (object.Value, error) {
	switch v := tok.(type) {
	case nil:
		return object.NullValue(), nil
	case bool:
		return object.BoolValue(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return object.IntValue(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return object.Value{}, fmt.Errorf("jsonbridge: invalid number %q: %w", v, err)
		}
		return object.FloatValue(f), nil
	case string:
		return object.StringValue(v), nil
	default:
		return object.Value{}, fmt.Errorf("jsonbridge: unsupported JSON token %T", tok)
	}
}
