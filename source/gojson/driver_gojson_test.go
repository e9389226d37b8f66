package gojson

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	eng "github.com/reoring/msgconv/internal/engine"
)

func kinds(t *testing.T, src eng.TokenSource) ([]eng.Kind, []eng.Token) {
	t.Helper()
	var ks []eng.Kind
	var toks []eng.Token
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return ks, toks
		}
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		ks = append(ks, tok.Kind)
		toks = append(toks, tok)
	}
}

func TestTokenStream(t *testing.T) {
	ks, toks := kinds(t, NewBytes([]byte(`{"a":"b","n":1.50,"l":[true,null,{"k":"v"}],"z":-3}`)))
	want := []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindString,
		eng.KindKey, eng.KindNumber,
		eng.KindKey, eng.KindBeginArray, eng.KindBool, eng.KindNull,
		eng.KindBeginObject, eng.KindKey, eng.KindString, eng.KindEndObject,
		eng.KindEndArray,
		eng.KindKey, eng.KindNumber,
		eng.KindEndObject,
	}
	if diff := cmp.Diff(want, ks); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
	if toks[4].Number != "1.50" || toks[15].Number != "-3" {
		t.Fatalf("number literals must be verbatim: %q %q", toks[4].Number, toks[15].Number)
	}
	if toks[11].String != "v" || toks[10].String != "k" {
		t.Fatalf("key/value strings mixed up: %+v %+v", toks[10], toks[11])
	}
}

func TestLocationAdvances(t *testing.T) {
	src := NewBytes([]byte(`{"abc": 1}`))
	if _, err := src.NextToken(); err != nil {
		t.Fatalf("token: %v", err)
	}
	before := src.Location()
	_, _ = kinds(t, src)
	if src.Location() <= before {
		t.Fatalf("offset must advance: %d -> %d", before, src.Location())
	}
}
