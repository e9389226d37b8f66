package msgconv_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/reoring/msgconv"
)

func TestResolveEnum_FirstMatchCodeBeforeLiteral(t *testing.T) {
	f := &msgconv.FieldStructure{Name: "e", EnumValues: []msgconv.EnumValue{
		{Code: "X", Literal: "Y"},
		{Code: "Y", Literal: "Z"},
	}}
	cases := map[string]string{"X": "Y", "Y": "Y", "Z": "Z"}
	for in, want := range cases {
		got, ok := msgconv.ResolveEnum(f, in)
		if !ok || got != want {
			t.Fatalf("%s: want %s, got %s (%v)", in, want, got, ok)
		}
	}
	if _, ok := msgconv.ResolveEnum(f, "x"); ok {
		t.Fatalf("matching must be case-sensitive")
	}
}

func TestNormalizeNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"42", "42", true},
		{"+42", "42", true},
		{"-0007", "-7", true},
		{"1.50", "1.50", true},
		{"1e3", "1000", true},
		{"1.5e-3", "0.0015", true},
		{"12345678901234567890123", "12345678901234567890123", true},
		{"abc", "abc", false},
	}
	for _, tc := range cases {
		got, ok := msgconv.NormalizeNumber(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%s: want %s/%v, got %s/%v", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestConvertBigInt(t *testing.T) {
	v := big.NewInt(127)
	for _, k := range []msgconv.ScalarKind{msgconv.KindByte, msgconv.KindShort, msgconv.KindInt, msgconv.KindLong} {
		got, err := msgconv.ConvertBigInt(v, k)
		if err != nil || got.Int() != 127 || got.ScalarKind() != k {
			t.Fatalf("%v: unexpected %v %v", k, got, err)
		}
	}
	if _, err := msgconv.ConvertBigInt(big.NewInt(128), msgconv.KindByte); err == nil {
		t.Fatalf("128 must not fit a byte")
	}
	if _, err := msgconv.ConvertBigInt(big.NewInt(-32769), msgconv.KindShort); err == nil {
		t.Fatalf("-32769 must not fit a short")
	}
	for _, k := range []msgconv.ScalarKind{msgconv.KindBoolean, msgconv.KindDate, msgconv.KindTime, msgconv.KindDateTime, msgconv.KindCharacter} {
		_, err := msgconv.ConvertBigInt(big.NewInt(0), k)
		ce, ok := msgconv.AsError(err)
		if !ok || ce.Code != msgconv.CodeTypeMismatch {
			t.Fatalf("%v: expected type_mismatch, got %v", k, err)
		}
	}
	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(51), nil)
	if _, err := msgconv.ConvertBigInt(huge, msgconv.KindFloat); err == nil {
		t.Fatalf("1e51 overflows float32")
	}
	if got, err := msgconv.ConvertBigInt(huge, msgconv.KindDouble); err != nil || got.Float() < 1e50 {
		t.Fatalf("double accepts 1e51: %v %v", got, err)
	}
}

func TestCoercions_BooleanAliases(t *testing.T) {
	def := msgconv.DefaultCoercions()
	for in, want := range map[string]bool{"true": true, "TRUE": true, "Y": true, "y": true, "false": false, "n": false} {
		got, err := def.Coerce(msgconv.KindBoolean, in)
		if err != nil || got.Bool() != want {
			t.Fatalf("%s: want %v, got %v %v", in, want, got, err)
		}
	}
	custom := msgconv.NewCoercions(msgconv.BooleanAliases{True: "T", False: "F"})
	if got, err := custom.Coerce(msgconv.KindBoolean, "t"); err != nil || !got.Bool() {
		t.Fatalf("custom alias: %v %v", got, err)
	}
	if _, err := custom.Coerce(msgconv.KindBoolean, "Y"); err == nil {
		t.Fatalf("default alias must not leak into a custom table")
	}
}

func TestCoercions_WithAndWithoutCopy(t *testing.T) {
	def := msgconv.DefaultCoercions()
	upper := def.With(msgconv.KindString, func(s string) (msgconv.TypedValue, error) {
		return msgconv.StringValue("<" + s + ">"), nil
	})
	if got, _ := upper.Coerce(msgconv.KindString, "a"); got.Str() != "<a>" {
		t.Fatalf("override not applied: %v", got)
	}
	if got, _ := def.Coerce(msgconv.KindString, "a"); got.Str() != "a" {
		t.Fatalf("default table must stay untouched: %v", got)
	}
	trimmed := def.Without(msgconv.KindDecimal)
	if trimmed.Supports(msgconv.KindDecimal) || !def.Supports(msgconv.KindDecimal) {
		t.Fatalf("Without must copy")
	}
	_, err := trimmed.CoerceNumber(msgconv.KindDecimal, "1")
	ce, ok := msgconv.AsError(err)
	if !ok || ce.Code != msgconv.CodeUnsupportedScalarKind {
		t.Fatalf("expected unsupported_scalar_kind, got %v", err)
	}
	if _, err := def.Coerce(msgconv.KindInvalid, "x"); err == nil {
		t.Fatalf("invalid kind must be unsupported")
	}
}

func TestCoercions_NumberIntoString(t *testing.T) {
	got, err := msgconv.DefaultCoercions().CoerceNumber(msgconv.KindString, "0.50")
	if err != nil || got.Str() != "0.50" {
		t.Fatalf("unexpected %v %v", got, err)
	}
	got, err = msgconv.DefaultCoercions().CoerceNumber(msgconv.KindString, "010")
	if err != nil || got.Str() != "10" {
		t.Fatalf("unexpected %v %v", got, err)
	}
}

func TestParseScalarKind(t *testing.T) {
	for name, want := range map[string]msgconv.ScalarKind{
		"int": msgconv.KindInt, "Integer": msgconv.KindInt, "BigDecimal": msgconv.KindDecimal,
		"LocalDateTime": msgconv.KindDateTime, "char": msgconv.KindCharacter,
	} {
		if got, ok := msgconv.ParseScalarKind(name); !ok || got != want {
			t.Fatalf("%s: want %v, got %v", name, want, got)
		}
	}
	if _, ok := msgconv.ParseScalarKind("blob"); ok {
		t.Fatalf("unknown kind must not parse")
	}
}

func TestHugeExponentsAreNotExpanded(t *testing.T) {
	const wide = "1e1000000000"
	if got, ok := msgconv.NormalizeNumber(wide); !ok || got != wide {
		t.Fatalf("wide literal must pass through as written, got %q %v", got, ok)
	}
	if got, ok := msgconv.NormalizeNumber("2.5e3"); !ok || got != "2500" {
		t.Fatalf("narrow literal must still normalize, got %q %v", got, ok)
	}

	m, err := msgconv.UntypedToTyped("Root", msgconv.Map(kv("n", num(wide))), nil, msgconv.ToTypedParams{})
	if err != nil {
		t.Fatalf("schema-less convert: %v", err)
	}
	if v, _ := m.Field("n"); v.Str() != wide {
		t.Fatalf("unexpected value %v", v)
	}

	c := schemaConverter(msgconv.ToTypedParams{})
	for _, body := range []msgconv.Node{
		msgconv.Map(kv("num", sc(wide))),
		msgconv.Map(kv("num", num(wide))),
		msgconv.Map(kv("big", sc("1e20"))),
		msgconv.Map(kv("price", num(wide))),
		msgconv.Map(kv("price", sc("1e-1000000000"))),
	} {
		_, err := c.ToTyped("RootMessage", body, true)
		ce, ok := msgconv.AsError(err)
		if !ok || ce.Code != msgconv.CodeNumericOverflow {
			t.Fatalf("%v: expected numeric_overflow, got %v", body, err)
		}
		if len(err.Error()) > 200 {
			t.Fatalf("error text must stay short, got %d bytes", len(err.Error()))
		}
	}

	m, err = c.ToTyped("RootMessage", msgconv.Map(kv("num", sc("0e-1000000000")), kv("big", sc("9e18"))), true)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if v, _ := m.Field("num"); v.Int() != 0 {
		t.Fatalf("zero with a wide scale is still zero, got %v", v)
	}
	if v, _ := m.Field("big"); v.Int() != 9_000_000_000_000_000_000 {
		t.Fatalf("9e18 fits a long, got %v", v)
	}
}

func TestOverflowMessageClipsLongValues(t *testing.T) {
	digits := strings.Repeat("9", 500)
	_, err := schemaConverter(msgconv.ToTypedParams{}).ToTyped("RootMessage", msgconv.Map(kv("byteField", sc(digits))), true)
	ce, ok := msgconv.AsError(err)
	if !ok || ce.Code != msgconv.CodeNumericOverflow {
		t.Fatalf("expected numeric_overflow, got %v", err)
	}
	if !strings.Contains(err.Error(), strings.Repeat("9", 64)+"...") || strings.Contains(err.Error(), strings.Repeat("9", 65)) {
		t.Fatalf("value must be clipped to 64 characters: %s", err.Error())
	}
}
