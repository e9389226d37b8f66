package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reoring/msgconv"
)

const testDictionary = `namespace: shop
messages:
  Order:
    fields:
      id: {type: string}
      qty: {type: int}
      price: {type: decimal}
      paid: {type: boolean}
      lines: {ref: Line, collection: true}
  Line:
    fields:
      sku: {type: string}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestConvertCmdWithDictionary(t *testing.T) {
	dir := t.TempDir()
	dict := writeFile(t, dir, "dict.yaml", testDictionary)
	body := writeFile(t, dir, "order.json", `{"id":"o-1","qty":"3","price":2.50,"paid":"Y","lines":[{"sku":"a"}]}`)

	var out bytes.Buffer
	if err := convertCmd([]string{"-type", "Order", "-dict", dict, body}, &out, zerolog.Nop(), false); err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := "Order{id=o-1, qty=3, price=2.50, paid=true, lines=[Line{sku=a}]}\n"
	if out.String() != want {
		t.Fatalf("want %q, got %q", want, out.String())
	}
}

func TestRoundtripCmdAppliesConfig(t *testing.T) {
	dir := t.TempDir()
	dict := writeFile(t, dir, "dict.yaml", testDictionary)
	cfg := writeFile(t, dir, "msgconv.toml", "dictionary = \""+filepath.ToSlash(dict)+"\"\n\n[to_typed]\ntrue_alias = \"T\"\nfalse_alias = \"F\"\n\n[from_typed]\nstrip_trailing_zeros = true\n")
	body := writeFile(t, dir, "order.yaml", "id: o-2\nqty: 4\nprice: 2.50\npaid: f\n")

	var out bytes.Buffer
	if err := convertCmd([]string{"-type", "Order", "-config", cfg, "-yaml", body}, &out, zerolog.Nop(), true); err != nil {
		t.Fatalf("roundtrip: %v", err)
	}
	want := `{"id":"o-2","qty":"4","price":"2.5","paid":"false"}` + "\n"
	if out.String() != want {
		t.Fatalf("want %q, got %q", want, out.String())
	}
}

func TestConvertCmdSchemaless(t *testing.T) {
	dir := t.TempDir()
	body := writeFile(t, dir, "any.json", `{"a":1.0,"b":{"c":"d"}}`)
	var out bytes.Buffer
	if err := convertCmd([]string{"-type", "Any", "-schemaless", body}, &out, zerolog.Nop(), false); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "Any{a=1.0, b=b{c=d}}" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestConvertCmdReportsQualifiedErrors(t *testing.T) {
	dir := t.TempDir()
	dict := writeFile(t, dir, "dict.yaml", testDictionary)
	body := writeFile(t, dir, "bad.json", `{"lines":[{"sku":"a"},{"bogus":1}]}`)
	err := convertCmd([]string{"-type", "Order", "-dict", dict, body}, &bytes.Buffer{}, zerolog.Nop(), false)
	ce, ok := msgconv.AsError(err)
	if !ok || ce.Code != msgconv.CodeFieldNotFound || ce.PathString() != "Order.lines.[1]" {
		t.Fatalf("expected field_not_found at Order.lines.[1], got %v", err)
	}
	if err := convertCmd([]string{body}, &bytes.Buffer{}, zerolog.Nop(), false); err == nil {
		t.Fatalf("missing -type must fail")
	}
}
