// Package engine defines the token stream shared by the wire decoders and the
// enforcement wrapper applied to it.
package engine

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "begin_object"
	case KindEndObject:
		return "end_object"
	case KindBeginArray:
		return "begin_array"
	case KindEndArray:
		return "end_array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}
	return "unknown"
}

// Token represents a streaming token with approximate input offset.
// Number keeps the literal exactly as written on the wire.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the decoders.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// IsValue reports whether the token completes a value on its own.
func (t Token) IsValue() bool {
	switch t.Kind {
	case KindString, KindNumber, KindBool, KindNull:
		return true
	}
	return false
}
