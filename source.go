package msgconv

import (
	"bytes"
	"errors"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	eng "github.com/reoring/msgconv/internal/engine"
	"github.com/reoring/msgconv/source/gojson"
)

// DecodeOpt controls wire decoding of transport bodies.
type DecodeOpt struct {
	// RejectDuplicateKeys fails on a repeated object key. Otherwise the last
	// value wins and keeps the position of the first occurrence.
	RejectDuplicateKeys bool
	// MaxDepth bounds container nesting. Zero selects DefaultMaxDepth; a
	// negative value disables the check.
	MaxDepth int
	// MaxBytes bounds consumed input; zero means unlimited.
	MaxBytes int64
}

func (o DecodeOpt) engineOptions() eng.EnforceOptions {
	opt := eng.EnforceOptions{OnDuplicate: eng.DupLast, MaxDepth: o.MaxDepth, MaxBytes: o.MaxBytes}
	if o.RejectDuplicateKeys {
		opt.OnDuplicate = eng.DupError
	}
	switch {
	case o.MaxDepth == 0:
		opt.MaxDepth = DefaultMaxDepth
	case o.MaxDepth < 0:
		opt.MaxDepth = 0
	}
	return opt
}

// DecodeJSON decodes a JSON document into a Node. Number tokens become
// numeric scalars that keep their literal text; object key order is kept.
func DecodeJSON(data []byte, opts ...DecodeOpt) (Node, error) {
	return DecodeJSONReader(bytes.NewReader(data), opts...)
}

// DecodeJSONReader is DecodeJSON over a stream.
func DecodeJSONReader(r io.Reader, opts ...DecodeOpt) (Node, error) {
	var opt DecodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	src := eng.WrapWithEnforcement(gojson.NewReader(r), opt.engineOptions())
	return DecodeTokens(src)
}

// DecodeTokens builds a Node from a token stream holding exactly one value.
func DecodeTokens(src eng.TokenSource) (Node, error) {
	tok, err := src.NextToken()
	if err != nil {
		return Node{}, decodeError(err)
	}
	n, err := decodeValue(src, tok)
	if err != nil {
		return Node{}, decodeError(err)
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("trailing data after value")
		}
		return Node{}, decodeError(err)
	}
	return n, nil
}

func decodeValue(src eng.TokenSource, tok eng.Token) (Node, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return decodeObject(src)
	case eng.KindBeginArray:
		return decodeArray(src)
	case eng.KindString:
		return Scalar(tok.String), nil
	case eng.KindNumber:
		return Number(tok.Number), nil
	case eng.KindBool:
		if tok.Bool {
			return Scalar("true"), nil
		}
		return Scalar("false"), nil
	case eng.KindNull:
		return Null(), nil
	}
	return Node{}, io.ErrUnexpectedEOF
}

func decodeObject(src eng.TokenSource) (Node, error) {
	out := Node{kind: NodeMap, entries: []Entry{}}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Node{}, unexpectedEOF(err)
		}
		if tok.Kind == eng.KindEndObject {
			return out, nil
		}
		if tok.Kind != eng.KindKey {
			return Node{}, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return Node{}, unexpectedEOF(err)
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return Node{}, err
		}
		if i := out.indexOf(tok.String); i >= 0 {
			out.entries[i].Value = v
			continue
		}
		out.entries = append(out.entries, Entry{Key: tok.String, Value: v})
	}
}

func decodeArray(src eng.TokenSource) (Node, error) {
	out := Node{kind: NodeList, list: []Node{}}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Node{}, unexpectedEOF(err)
		}
		if tok.Kind == eng.KindEndArray {
			return out, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return Node{}, err
		}
		out.list = append(out.list, v)
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// decodeError maps stream violations onto *Error. Enforcement paths become
// Error.Path segments.
func decodeError(err error) error {
	var ie *eng.IssueError
	if !errors.As(err, &ie) {
		return newError(CodeParseError, CodeParseError, map[string]string{"reason": err.Error()}, err)
	}
	var e *Error
	switch ie.Code {
	case eng.IssueDuplicateKey:
		key := ie.Path
		if i := strings.LastIndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		e = newError(CodeDuplicateKey, CodeDuplicateKey, map[string]string{"key": key}, err)
	case eng.IssueDepthExceeded:
		e = newError(CodeDepthExceeded, CodeDepthExceeded, nil, err)
	default:
		e = newError(CodeParseError, CodeParseError, map[string]string{"reason": ie.Message}, err)
	}
	if ie.Path != "" {
		e.Path = strings.Split(ie.Path, ".")
	}
	return e
}

// EncodeJSON renders n as compact JSON. Numeric scalars are written as bare
// literals, other scalars as strings; map entries keep their order.
func EncodeJSON(n Node) ([]byte, error) {
	return appendJSON(nil, n)
}

func appendJSON(dst []byte, n Node) ([]byte, error) {
	switch n.kind {
	case NodeNull:
		return append(dst, "null"...), nil
	case NodeScalar:
		if n.numeric && json.Valid([]byte(n.text)) {
			return append(dst, n.text...), nil
		}
		return appendString(dst, n.text)
	case NodeList:
		dst = append(dst, '[')
		for i, item := range n.list {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = appendJSON(dst, item); err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	}
	dst = append(dst, '{')
	for i, e := range n.entries {
		if i > 0 {
			dst = append(dst, ',')
		}
		var err error
		if dst, err = appendString(dst, e.Key); err != nil {
			return nil, err
		}
		dst = append(dst, ':')
		if dst, err = appendJSON(dst, e.Value); err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}

func appendString(dst []byte, s string) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) { return EncodeJSON(n) }
