package msgconv

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ScalarKind enumerates the concrete scalar kinds a typed field may carry.
type ScalarKind int

const (
	KindInvalid ScalarKind = iota
	KindBoolean
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindDecimal
	KindCharacter
	KindString
	KindDate
	KindTime
	KindDateTime
)

var scalarKindNames = [...]string{
	KindInvalid:   "invalid",
	KindBoolean:   "boolean",
	KindByte:      "byte",
	KindShort:     "short",
	KindInt:       "int",
	KindLong:      "long",
	KindFloat:     "float",
	KindDouble:    "double",
	KindDecimal:   "decimal",
	KindCharacter: "char",
	KindString:    "string",
	KindDate:      "date",
	KindTime:      "time",
	KindDateTime:  "datetime",
}

func (k ScalarKind) String() string {
	if k >= 0 && int(k) < len(scalarKindNames) {
		return scalarKindNames[k]
	}
	return "ScalarKind(" + strconv.Itoa(int(k)) + ")"
}

// ParseScalarKind resolves a kind by its name as used in dictionaries. Java
// style aliases ("integer", "bigdecimal", "localdatetime", ...) are accepted.
func ParseScalarKind(name string) (ScalarKind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "boolean", "bool":
		return KindBoolean, true
	case "byte":
		return KindByte, true
	case "short":
		return KindShort, true
	case "int", "integer":
		return KindInt, true
	case "long":
		return KindLong, true
	case "float":
		return KindFloat, true
	case "double":
		return KindDouble, true
	case "decimal", "bigdecimal":
		return KindDecimal, true
	case "char", "character":
		return KindCharacter, true
	case "string":
		return KindString, true
	case "date", "localdate":
		return KindDate, true
	case "time", "localtime":
		return KindTime, true
	case "datetime", "localdatetime":
		return KindDateTime, true
	}
	return KindInvalid, false
}

// IsInteger reports whether k is a fixed-width integer kind.
func (k ScalarKind) IsInteger() bool {
	return k == KindByte || k == KindShort || k == KindInt || k == KindLong
}

// IsTemporal reports whether k is a date, time or date-time kind.
func (k ScalarKind) IsTemporal() bool {
	return k == KindDate || k == KindTime || k == KindDateTime
}

// ValueKind identifies the variant held by a TypedValue.
type ValueKind int

const (
	ValueNull ValueKind = iota
	// ValueMarker is the null marker: an opaque token standing for an
	// expected null, interpreted only by comparison logic.
	ValueMarker
	ValueScalar
	ValueMessage
	ValueList
)

// TypedValue is a field value of a TypedMessage: a scalar of one concrete
// kind, a nested message, a list of either, a typed null, or the null marker.
// The zero TypedValue is a typed null.
type TypedValue struct {
	kind   ValueKind
	scalar ScalarKind
	b      bool
	i      int64
	f      float64
	d      decimal.Decimal
	s      string
	t      time.Time
	msg    *TypedMessage
	list   []TypedValue
}

func NullValue() TypedValue   { return TypedValue{} }
func MarkerValue() TypedValue { return TypedValue{kind: ValueMarker} }

func BoolValue(b bool) TypedValue { return TypedValue{kind: ValueScalar, scalar: KindBoolean, b: b} }
func ByteValue(v int8) TypedValue { return TypedValue{kind: ValueScalar, scalar: KindByte, i: int64(v)} }
func ShortValue(v int16) TypedValue {
	return TypedValue{kind: ValueScalar, scalar: KindShort, i: int64(v)}
}
func IntValue(v int32) TypedValue  { return TypedValue{kind: ValueScalar, scalar: KindInt, i: int64(v)} }
func LongValue(v int64) TypedValue { return TypedValue{kind: ValueScalar, scalar: KindLong, i: v} }
func FloatValue(v float32) TypedValue {
	return TypedValue{kind: ValueScalar, scalar: KindFloat, f: float64(v)}
}
func DoubleValue(v float64) TypedValue {
	return TypedValue{kind: ValueScalar, scalar: KindDouble, f: v}
}
func DecimalValue(d decimal.Decimal) TypedValue {
	return TypedValue{kind: ValueScalar, scalar: KindDecimal, d: d}
}
func CharValue(r rune) TypedValue {
	return TypedValue{kind: ValueScalar, scalar: KindCharacter, s: string(r)}
}
func StringValue(s string) TypedValue {
	return TypedValue{kind: ValueScalar, scalar: KindString, s: s}
}

// DateValue keeps the calendar date of t; the clock part is dropped.
func DateValue(t time.Time) TypedValue {
	y, m, d := t.Date()
	return TypedValue{kind: ValueScalar, scalar: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// TimeValue keeps the clock part of t anchored at 0000-01-01.
func TimeValue(t time.Time) TypedValue {
	return TypedValue{kind: ValueScalar, scalar: KindTime, t: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// DateTimeValue keeps t as a local date-time; the zone is dropped.
func DateTimeValue(t time.Time) TypedValue {
	return TypedValue{kind: ValueScalar, scalar: KindDateTime, t: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

func MessageValue(m *TypedMessage) TypedValue {
	if m == nil {
		return NullValue()
	}
	return TypedValue{kind: ValueMessage, msg: m}
}

func ListValue(items ...TypedValue) TypedValue {
	if items == nil {
		items = []TypedValue{}
	}
	return TypedValue{kind: ValueList, list: items}
}

func (v TypedValue) Kind() ValueKind          { return v.kind }
func (v TypedValue) ScalarKind() ScalarKind   { return v.scalar }
func (v TypedValue) IsNull() bool             { return v.kind == ValueNull }
func (v TypedValue) IsMarker() bool           { return v.kind == ValueMarker }
func (v TypedValue) Bool() bool               { return v.b }
func (v TypedValue) Int() int64               { return v.i }
func (v TypedValue) Float() float64           { return v.f }
func (v TypedValue) Decimal() decimal.Decimal { return v.d }
func (v TypedValue) Str() string              { return v.s }
func (v TypedValue) Time() time.Time          { return v.t }
func (v TypedValue) Message() *TypedMessage   { return v.msg }
func (v TypedValue) Items() []TypedValue      { return v.list }

// Char returns the character of a KindCharacter value.
func (v TypedValue) Char() rune {
	for _, r := range v.s {
		return r
	}
	return 0
}

// Equal reports logical equality. Decimals compare by value, temporals by
// instant, messages field by field in order.
func (v TypedValue) Equal(o TypedValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueNull, ValueMarker:
		return true
	case ValueMessage:
		return v.msg.Equal(o.msg)
	case ValueList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	if v.scalar != o.scalar {
		return false
	}
	switch v.scalar {
	case KindBoolean:
		return v.b == o.b
	case KindByte, KindShort, KindInt, KindLong:
		return v.i == o.i
	case KindFloat, KindDouble:
		return v.f == o.f
	case KindDecimal:
		return v.d.Equal(o.d)
	case KindCharacter, KindString:
		return v.s == o.s
	case KindDate, KindTime, KindDateTime:
		return v.t.Equal(o.t)
	}
	return false
}

func (v TypedValue) String() string {
	switch v.kind {
	case ValueNull:
		return "null"
	case ValueMarker:
		return "<null marker>"
	case ValueMessage:
		return v.msg.String()
	case ValueList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return FormatScalar(v, FromTypedParams{})
}

// TypedMessage is a named message whose fields keep insertion order.
type TypedMessage struct {
	Name      string
	Namespace string
	Metadata  map[string]string
	names     []string
	fields    map[string]TypedValue
}

// NewTypedMessage returns an empty message.
func NewTypedMessage(name, namespace string) *TypedMessage {
	return &TypedMessage{Name: name, Namespace: namespace, fields: map[string]TypedValue{}}
}

// AddField sets a field. Setting an existing field replaces its value and
// keeps its position.
func (m *TypedMessage) AddField(name string, v TypedValue) {
	if m.fields == nil {
		m.fields = map[string]TypedValue{}
	}
	if _, ok := m.fields[name]; !ok {
		m.names = append(m.names, name)
	}
	m.fields[name] = v
}

func (m *TypedMessage) Field(name string) (TypedValue, bool) {
	v, ok := m.fields[name]
	return v, ok
}

// FieldNames returns the field names in insertion order.
func (m *TypedMessage) FieldNames() []string { return append([]string(nil), m.names...) }

func (m *TypedMessage) Len() int { return len(m.names) }

// Equal compares name, namespace and fields in order. Metadata is ignored.
func (m *TypedMessage) Equal(o *TypedMessage) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Name != o.Name || m.Namespace != o.Namespace || len(m.names) != len(o.names) {
		return false
	}
	for i, name := range m.names {
		if o.names[i] != name {
			return false
		}
		if !m.fields[name].Equal(o.fields[name]) {
			return false
		}
	}
	return true
}

func (m *TypedMessage) String() string {
	if m == nil {
		return "null"
	}
	b := &strings.Builder{}
	b.WriteString(m.Name)
	b.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(m.fields[name].String())
	}
	b.WriteByte('}')
	return b.String()
}

// MessageFactory creates empty typed messages. It is the single point where
// converters instantiate messages, so hosts can supply their own binding.
type MessageFactory interface {
	CreateMessage(typeName, namespace string) *TypedMessage
}

// MessageFactoryFunc adapts a function to MessageFactory.
type MessageFactoryFunc func(typeName, namespace string) *TypedMessage

func (f MessageFactoryFunc) CreateMessage(typeName, namespace string) *TypedMessage {
	return f(typeName, namespace)
}

// DefaultMessageFactory creates plain TypedMessage values.
var DefaultMessageFactory MessageFactory = MessageFactoryFunc(NewTypedMessage)
