package msgconv

import (
	"bytes"
	"errors"
	"io"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes the first document of a YAML stream into a Node. Mapping
// order is kept. Integer and float scalars become numeric scalars in
// canonical base-10 form; a mapping key that is not a string fails
// type_mismatch qualified by the bracketed key.
func DecodeYAML(data []byte, opts ...DecodeOpt) (Node, error) {
	var opt DecodeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Null(), nil
		}
		return Node{}, newError(CodeParseError, CodeParseError, map[string]string{"reason": err.Error()}, err)
	}
	w := &yamlWalker{rejectDup: opt.RejectDuplicateKeys, limit: opt.engineOptions().MaxDepth}
	return w.walk(&doc, 0)
}

// yamlWalker converts a yaml.Node tree. It counts visited nodes and the share
// reached through aliases so that nested anchors cannot expand a small
// document into an unbounded tree.
type yamlWalker struct {
	rejectDup  bool
	limit      int
	visited    int
	aliased    int
	aliasDepth int
}

// allowedAliasRatio follows the ratio yaml.v3 applies when decoding into Go
// values: generous for small documents, tightening as the tree grows.
func allowedAliasRatio(visited int) float64 {
	switch {
	case visited <= 400_000:
		return 0.99
	case visited >= 4_000_000:
		return 0.10
	}
	return 0.99 - 0.89*(float64(visited-400_000)/3_600_000)
}

func (w *yamlWalker) count() error {
	w.visited++
	if w.aliasDepth > 0 {
		w.aliased++
	}
	if w.aliased > 100 && w.visited > 1000 && float64(w.aliased)/float64(w.visited) > allowedAliasRatio(w.visited) {
		return newError(CodeParseError, CodeParseError, map[string]string{"reason": "document contains excessive aliasing"}, nil)
	}
	return nil
}

func (w *yamlWalker) walk(y *yaml.Node, depth int) (Node, error) {
	if err := w.count(); err != nil {
		return Node{}, err
	}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return Null(), nil
		}
		return w.walk(y.Content[0], depth)
	case yaml.AliasNode:
		w.aliasDepth++
		n, err := w.walk(y.Alias, depth)
		w.aliasDepth--
		return n, err
	case yaml.ScalarNode:
		return yamlScalar(y), nil
	}
	if w.limit > 0 && depth+1 > w.limit {
		return Node{}, newError(CodeDepthExceeded, CodeDepthExceeded, nil, nil)
	}
	if y.Kind == yaml.SequenceNode {
		out := Node{kind: NodeList, list: make([]Node, 0, len(y.Content))}
		for i, c := range y.Content {
			n, err := w.walk(c, depth+1)
			if err != nil {
				return Node{}, withPath(IndexSegment(i), err)
			}
			out.list = append(out.list, n)
		}
		return out, nil
	}
	out := Node{kind: NodeMap, entries: make([]Entry, 0, len(y.Content)/2)}
	for i := 0; i+1 < len(y.Content); i += 2 {
		k, v := y.Content[i], y.Content[i+1]
		if k.Kind != yaml.ScalarNode || k.ShortTag() != "!!str" {
			return Node{}, withPath("["+k.Value+"]", newError(CodeTypeMismatch, CodeTypeMismatch, map[string]string{
				"expected": "string", "got": k.ShortTag(), "field": k.Value,
			}, nil))
		}
		n, err := w.walk(v, depth+1)
		if err != nil {
			return Node{}, withPath(k.Value, err)
		}
		if j := out.indexOf(k.Value); j >= 0 {
			if w.rejectDup {
				return Node{}, withPath(k.Value, newError(CodeDuplicateKey, CodeDuplicateKey, map[string]string{"key": k.Value}, nil))
			}
			out.entries[j].Value = n
			continue
		}
		out.entries = append(out.entries, Entry{Key: k.Value, Value: n})
	}
	return out, nil
}

func yamlScalar(y *yaml.Node) Node {
	switch y.ShortTag() {
	case "!!null":
		return Null()
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err == nil {
			return Scalar(strconv.FormatBool(b))
		}
	case "!!int":
		if b, ok := new(big.Int).SetString(y.Value, 0); ok {
			return Number(b.String())
		}
	case "!!float":
		if d, err := decimal.NewFromString(y.Value); err == nil {
			if plainWidth(d) > MaxNumberDigits {
				return Number(y.Value)
			}
			return Number(formatDecimal(d, false))
		}
	}
	return Scalar(y.Value)
}
