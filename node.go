package msgconv

import (
	"fmt"
	"maps"
	"math/big"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// NodeKind identifies the shape of an untyped Node.
type NodeKind int

const (
	NodeNull NodeKind = iota
	NodeScalar
	NodeList
	NodeMap
)

func (k NodeKind) String() string {
	switch k {
	case NodeNull:
		return "null"
	case NodeScalar:
		return "scalar"
	case NodeList:
		return "list"
	case NodeMap:
		return "map"
	default:
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is the untyped tree exchanged at the transport boundary: null, scalar
// text, an ordered list, or an ordered string-keyed map. The zero Node is null.
type Node struct {
	kind    NodeKind
	text    string
	numeric bool
	list    []Node
	entries []Entry
}

// Entry is a single key/value pair of a map Node.
type Entry struct {
	Key   string
	Value Node
}

// Null returns the null Node.
func Null() Node { return Node{} }

// Scalar returns a text scalar.
func Scalar(text string) Node { return Node{kind: NodeScalar, text: text} }

// Number returns a scalar that originated from a numeric wire token. Its text
// is the literal as written.
func Number(literal string) Node { return Node{kind: NodeScalar, text: literal, numeric: true} }

// List returns a list Node holding items in order.
func List(items ...Node) Node {
	if items == nil {
		items = []Node{}
	}
	return Node{kind: NodeList, list: items}
}

// Map returns a map Node holding entries in order. A repeated key replaces the
// earlier value in place.
func Map(entries ...Entry) Node {
	n := Node{kind: NodeMap, entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		if i := n.indexOf(e.Key); i >= 0 {
			n.entries[i].Value = e.Value
			continue
		}
		n.entries = append(n.entries, e)
	}
	return n
}

// E is shorthand for an Entry literal.
func E(key string, v Node) Entry { return Entry{Key: key, Value: v} }

func (n Node) Kind() NodeKind  { return n.kind }
func (n Node) IsNull() bool    { return n.kind == NodeNull }
func (n Node) IsNumeric() bool { return n.kind == NodeScalar && n.numeric }

// Text returns the scalar text; empty for other kinds.
func (n Node) Text() string { return n.text }

// Items returns the list elements; nil for other kinds.
func (n Node) Items() []Node { return n.list }

// Entries returns the map entries in order; nil for other kinds.
func (n Node) Entries() []Entry { return n.entries }

// Len reports the number of list items or map entries.
func (n Node) Len() int {
	switch n.kind {
	case NodeList:
		return len(n.list)
	case NodeMap:
		return len(n.entries)
	default:
		return 0
	}
}

// Get looks up a map entry by key.
func (n Node) Get(key string) (Node, bool) {
	if i := n.indexOf(key); i >= 0 {
		return n.entries[i].Value, true
	}
	return Node{}, false
}

func (n Node) indexOf(key string) int {
	for i, e := range n.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// With returns a copy of a map Node with key set to v. Calling With on a
// non-map Node yields a single-entry map.
func (n Node) With(key string, v Node) Node {
	out := Node{kind: NodeMap, entries: make([]Entry, 0, len(n.entries)+1)}
	replaced := false
	for _, e := range n.entries {
		if e.Key == key {
			e.Value = v
			replaced = true
		}
		out.entries = append(out.entries, e)
	}
	if !replaced {
		out.entries = append(out.entries, Entry{Key: key, Value: v})
	}
	return out
}

func (n Node) String() string {
	b, err := EncodeJSON(n)
	if err != nil {
		return "<" + n.kind.String() + ">"
	}
	return string(b)
}

// FromAny builds a Node from a generic Go tree such as the output of a JSON
// or YAML decoder. Map keys must be strings; a non-string key fails with
// type_mismatch qualified by the position of the key.
func FromAny(v any) (Node, error) {
	return fromAny(v)
}

func fromAny(v any) (Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Node:
		return t, nil
	case string:
		return Scalar(t), nil
	case bool:
		return Scalar(strconv.FormatBool(t)), nil
	case json.Number:
		return Number(string(t)), nil
	case *big.Int:
		if t == nil {
			return Null(), nil
		}
		return Number(t.String()), nil
	case decimal.Decimal:
		return Number(t.String()), nil
	case int:
		return Number(strconv.Itoa(t)), nil
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Number(fmt.Sprint(t)), nil
	case float32:
		return Number(strconv.FormatFloat(float64(t), 'f', -1, 32)), nil
	case float64:
		return Number(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case []any:
		items := make([]Node, 0, len(t))
		for i, e := range t {
			n, err := fromAny(e)
			if err != nil {
				return Node{}, withPath(IndexSegment(i), err)
			}
			items = append(items, n)
		}
		return List(items...), nil
	case []string:
		items := make([]Node, 0, len(t))
		for _, s := range t {
			items = append(items, Scalar(s))
		}
		return List(items...), nil
	case map[string]any:
		out := Node{kind: NodeMap, entries: make([]Entry, 0, len(t))}
		for _, k := range slices.Sorted(maps.Keys(t)) {
			n, err := fromAny(t[k])
			if err != nil {
				return Node{}, withPath(k, err)
			}
			out.entries = append(out.entries, Entry{Key: k, Value: n})
		}
		return out, nil
	case map[any]any:
		out := Node{kind: NodeMap, entries: make([]Entry, 0, len(t))}
		keys := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				return Node{}, withPath("["+fmt.Sprint(k)+"]", newError(CodeTypeMismatch, CodeTypeMismatch, map[string]string{
					"expected": "string", "got": fmt.Sprintf("%T", k), "field": fmt.Sprint(k),
				}, nil))
			}
			keys[ks] = vv
		}
		for _, k := range slices.Sorted(maps.Keys(keys)) {
			n, err := fromAny(keys[k])
			if err != nil {
				return Node{}, withPath(k, err)
			}
			out.entries = append(out.entries, Entry{Key: k, Value: n})
		}
		return out, nil
	default:
		return Node{}, newError(CodeTypeMismatch, CodeTypeMismatch, map[string]string{
			"expected": "string", "got": fmt.Sprintf("%T", v), "field": "",
		}, nil)
	}
}
