package msgconv

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/reoring/msgconv/codec"
)

// CoerceFunc converts canonical text into a scalar of one kind.
type CoerceFunc func(text string) (TypedValue, error)

// Coercions is the scalar-kind dispatch table used by the converters. It is
// immutable; build it once and share it.
type Coercions struct {
	table map[ScalarKind]CoerceFunc
}

var defaultCoercions = NewCoercions(DefaultBooleanAliases)

// DefaultCoercions returns the shared table built with DefaultBooleanAliases.
func DefaultCoercions() *Coercions { return defaultCoercions }

// NewCoercions builds the table for every supported kind. aliases configures
// the single-letter boolean pair.
func NewCoercions(aliases BooleanAliases) *Coercions {
	return &Coercions{table: map[ScalarKind]CoerceFunc{
		KindBoolean:   boolCoercer(aliases),
		KindByte:      integerCoercer(KindByte),
		KindShort:     integerCoercer(KindShort),
		KindInt:       integerCoercer(KindInt),
		KindLong:      integerCoercer(KindLong),
		KindFloat:     floatCoercer(KindFloat, 32),
		KindDouble:    floatCoercer(KindDouble, 64),
		KindDecimal:   coerceDecimal,
		KindCharacter: coerceChar,
		KindString:    func(s string) (TypedValue, error) { return StringValue(s), nil },
		KindDate:      temporalCoercer(KindDate, codec.ParseDate, DateValue),
		KindTime:      temporalCoercer(KindTime, codec.ParseTime, TimeValue),
		KindDateTime:  temporalCoercer(KindDateTime, codec.ParseDateTime, DateTimeValue),
	}}
}

// With returns a copy of the table with fn registered for kind.
func (c *Coercions) With(kind ScalarKind, fn CoerceFunc) *Coercions {
	out := c.clone()
	out.table[kind] = fn
	return out
}

// Without returns a copy of the table without the given kinds.
func (c *Coercions) Without(kinds ...ScalarKind) *Coercions {
	out := c.clone()
	for _, k := range kinds {
		delete(out.table, k)
	}
	return out
}

func (c *Coercions) clone() *Coercions {
	out := &Coercions{table: make(map[ScalarKind]CoerceFunc, len(c.table))}
	for k, fn := range c.table {
		out.table[k] = fn
	}
	return out
}

// Supports reports whether kind has a registered coercion.
func (c *Coercions) Supports(kind ScalarKind) bool {
	_, ok := c.table[kind]
	return ok
}

// Coerce converts text to kind. An unregistered kind fails
// unsupported_scalar_kind.
func (c *Coercions) Coerce(kind ScalarKind, text string) (TypedValue, error) {
	fn, ok := c.table[kind]
	if !ok {
		return TypedValue{}, unsupportedKind(kind)
	}
	return fn(text)
}

// CoerceNumber converts a numeric wire literal to kind. Integral literals
// follow ConvertBigInt; other literals go through Coerce, except that a
// number never becomes a boolean, character or temporal value.
func (c *Coercions) CoerceNumber(kind ScalarKind, literal string) (TypedValue, error) {
	if !c.Supports(kind) {
		return TypedValue{}, unsupportedKind(kind)
	}
	if b, ok := new(big.Int).SetString(literal, 10); ok {
		return ConvertBigInt(b, kind)
	}
	switch {
	case kind == KindBoolean, kind == KindCharacter, kind.IsTemporal():
		return TypedValue{}, invalidFormat(kind, literal, nil)
	case kind == KindString:
		if n, ok := NormalizeNumber(literal); ok {
			return StringValue(n), nil
		}
	}
	return c.Coerce(kind, literal)
}

// ConvertBigInt converts an arbitrary-precision integer. Fixed-width integer
// kinds require the value to fit exactly, floating kinds accept rounding,
// decimal and string are exact. Boolean, character and temporal kinds are
// always rejected.
func ConvertBigInt(v *big.Int, kind ScalarKind) (TypedValue, error) {
	switch kind {
	case KindByte, KindShort, KindInt, KindLong:
		lo, hi := integerBounds(kind)
		if !v.IsInt64() || v.Int64() < lo || v.Int64() > hi {
			return TypedValue{}, overflow(v.String(), kind, nil)
		}
		return integerValue(kind, v.Int64()), nil
	case KindFloat:
		f, _ := new(big.Float).SetInt(v).Float32()
		if math.IsInf(float64(f), 0) {
			return TypedValue{}, overflow(v.String(), kind, nil)
		}
		return FloatValue(f), nil
	case KindDouble:
		f, _ := new(big.Float).SetInt(v).Float64()
		if math.IsInf(f, 0) {
			return TypedValue{}, overflow(v.String(), kind, nil)
		}
		return DoubleValue(f), nil
	case KindDecimal:
		return DecimalValue(decimal.NewFromBigInt(v, 0)), nil
	case KindString:
		return StringValue(v.String()), nil
	case KindBoolean, KindCharacter, KindDate, KindTime, KindDateTime:
		return TypedValue{}, newError(CodeTypeMismatch, "integer_conversion", map[string]string{"kind": kind.String()}, nil)
	}
	return TypedValue{}, unsupportedKind(kind)
}

// MaxNumberDigits bounds the plain-notation width of a number the converters
// will materialize. Literals such as 1e50000000 are tiny on the wire but
// expand to millions of digits.
const MaxNumberDigits = 4096

// maxInt64Digits is the digit count of math.MaxInt64.
const maxInt64Digits = 19

// plainWidth returns the number of digits d has in plain notation without
// rendering it.
func plainWidth(d decimal.Decimal) int64 {
	digits := int64(d.NumDigits())
	exp := int64(d.Exponent())
	switch {
	case exp >= 0:
		return digits + exp
	case -exp >= digits:
		return -exp + 1
	}
	return digits + 1
}

// NormalizeNumber re-renders a numeric literal in canonical form: integers
// without sign or leading zero noise, decimals in plain notation with their
// scale kept. ok is false when literal is not a number. A number wider than
// MaxNumberDigits in plain notation is returned as written.
func NormalizeNumber(literal string) (string, bool) {
	if b, ok := new(big.Int).SetString(literal, 10); ok {
		return b.String(), true
	}
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return literal, false
	}
	if plainWidth(d) > MaxNumberDigits {
		return literal, true
	}
	return formatDecimal(d, false), true
}

// ResolveEnum maps raw text to the canonical literal of an enum field. Entries
// are scanned in declaration order; within an entry the code is tried before
// the literal. ok is false when nothing matched.
func ResolveEnum(f *FieldStructure, text string) (literal string, ok bool) {
	for _, ev := range f.EnumValues {
		if ev.Code == text || ev.Literal == text {
			return ev.Literal, true
		}
	}
	return "", false
}

// FormatScalar renders a scalar in canonical text form. Decimals never round;
// temporals always carry a 3, 6 or 9 digit fraction.
func FormatScalar(v TypedValue, p FromTypedParams) string {
	switch v.scalar {
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindByte, KindShort, KindInt, KindLong:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 32)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindDecimal:
		return formatDecimal(v.d, p.StripTrailingZeros)
	case KindCharacter, KindString:
		return v.s
	case KindDate:
		return codec.FormatDate(v.t)
	case KindTime:
		return codec.FormatTime(v.t)
	case KindDateTime:
		return codec.FormatDateTime(v.t)
	}
	return ""
}

func formatDecimal(d decimal.Decimal, strip bool) string {
	if strip || d.Exponent() >= 0 {
		return d.String()
	}
	return d.StringFixed(-d.Exponent())
}

// ---- per-kind coercers ----

func boolCoercer(aliases BooleanAliases) CoerceFunc {
	return func(s string) (TypedValue, error) {
		switch {
		case strings.EqualFold(s, "true"), aliases.True != "" && strings.EqualFold(s, aliases.True):
			return BoolValue(true), nil
		case strings.EqualFold(s, "false"), aliases.False != "" && strings.EqualFold(s, aliases.False):
			return BoolValue(false), nil
		}
		return TypedValue{}, invalidFormat(KindBoolean, s, nil)
	}
}

func integerCoercer(kind ScalarKind) CoerceFunc {
	return func(s string) (TypedValue, error) {
		if b, ok := new(big.Int).SetString(s, 10); ok {
			return ConvertBigInt(b, kind)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return TypedValue{}, invalidFormat(kind, s, err)
		}
		switch {
		case d.IsZero():
			return integerValue(kind, 0), nil
		case d.Exponent() >= 0 && int64(d.NumDigits())+int64(d.Exponent()) > maxInt64Digits:
			return TypedValue{}, overflow(s, kind, nil)
		case !d.IsInteger():
			return TypedValue{}, overflow(s, kind, nil)
		}
		return ConvertBigInt(d.BigInt(), kind)
	}
}

func floatCoercer(kind ScalarKind, bits int) CoerceFunc {
	return func(s string) (TypedValue, error) {
		f, err := strconv.ParseFloat(s, bits)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return TypedValue{}, overflow(s, kind, err)
			}
			return TypedValue{}, invalidFormat(kind, s, err)
		}
		if bits == 32 {
			return FloatValue(float32(f)), nil
		}
		return DoubleValue(f), nil
	}
}

func coerceDecimal(s string) (TypedValue, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return TypedValue{}, invalidFormat(KindDecimal, s, err)
	}
	if plainWidth(d) > MaxNumberDigits {
		return TypedValue{}, overflow(s, KindDecimal, nil)
	}
	return DecimalValue(d), nil
}

func coerceChar(s string) (TypedValue, error) {
	if utf8.RuneCountInString(s) != 1 {
		return TypedValue{}, invalidFormat(KindCharacter, s, nil)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return CharValue(r), nil
}

func temporalCoercer(kind ScalarKind, parse func(string) (time.Time, error), build func(time.Time) TypedValue) CoerceFunc {
	return func(s string) (TypedValue, error) {
		t, err := parse(s)
		if err != nil {
			return TypedValue{}, invalidFormat(kind, s, err)
		}
		return build(t), nil
	}
}

func integerBounds(kind ScalarKind) (int64, int64) {
	switch kind {
	case KindByte:
		return math.MinInt8, math.MaxInt8
	case KindShort:
		return math.MinInt16, math.MaxInt16
	case KindInt:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

func integerValue(kind ScalarKind, v int64) TypedValue {
	return TypedValue{kind: ValueScalar, scalar: kind, i: v}
}

// maxValueInMessage bounds how much of an offending value is quoted in an
// error message.
const maxValueInMessage = 64

func clipValue(s string) string {
	if len(s) <= maxValueInMessage {
		return s
	}
	cut := maxValueInMessage
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func invalidFormat(kind ScalarKind, value string, cause error) *Error {
	return newError(CodeTypeMismatch, "invalid_format", map[string]string{"kind": kind.String(), "value": clipValue(value)}, cause)
}

func overflow(value string, kind ScalarKind, cause error) *Error {
	return newError(CodeNumericOverflow, CodeNumericOverflow, map[string]string{"kind": kind.String(), "value": clipValue(value)}, cause)
}

func unsupportedKind(kind ScalarKind) *Error {
	return newError(CodeUnsupportedScalarKind, CodeUnsupportedScalarKind, map[string]string{"kind": kind.String()}, nil)
}
