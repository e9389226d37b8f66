// Package dictionary loads message dictionaries from YAML into an immutable
// msgconv.Registry.
//
// A dictionary looks like:
//
//	namespace: trading
//	messages:
//	  NewOrderSingle:
//	    fields:
//	      Side:
//	        type: char
//	        enum:
//	          - {code: "1", literal: BUY}
//	          - {code: "2", literal: SELL}
//	      Legs: {ref: Leg, collection: true}
//	  Leg:
//	    fields:
//	      Price: {type: decimal}
//
// A field with ref is complex; ref names the nested message.
package dictionary

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/reoring/msgconv"
)

// ErrInvalidDictionary wraps every structural problem found while loading.
var ErrInvalidDictionary = errors.New("dictionary: invalid")

type document struct {
	Namespace string             `yaml:"namespace"`
	Messages  map[string]message `yaml:"messages"`
}

type message struct {
	ReferenceName string           `yaml:"reference_name"`
	Fields        map[string]field `yaml:"fields"`
}

type field struct {
	Type       string      `yaml:"type"`
	Ref        string      `yaml:"ref"`
	Collection bool        `yaml:"collection"`
	Enum       []enumValue `yaml:"enum"`
}

type enumValue struct {
	Code    string `yaml:"code"`
	Literal string `yaml:"literal"`
}

// Load reads and parses the dictionary file at path.
func Load(path string) (msgconv.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a Registry from YAML. Unknown keys are rejected, every scalar
// field needs a known type, and every ref must name a message of the same
// dictionary.
func Parse(data []byte) (msgconv.Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}
	structures := make([]*msgconv.MessageStructure, 0, len(doc.Messages))
	for _, name := range slices.Sorted(maps.Keys(doc.Messages)) {
		ms, err := buildMessage(doc, name)
		if err != nil {
			return nil, err
		}
		structures = append(structures, ms)
	}
	return msgconv.NewRegistry(doc.Namespace, structures...), nil
}

func buildMessage(doc document, name string) (*msgconv.MessageStructure, error) {
	m := doc.Messages[name]
	ms := &msgconv.MessageStructure{
		Name:          name,
		ReferenceName: m.ReferenceName,
		Fields:        make(map[string]*msgconv.FieldStructure, len(m.Fields)),
	}
	for fname, f := range m.Fields {
		fs := &msgconv.FieldStructure{
			Name:          fname,
			Collection:    f.Collection,
			Namespace:     doc.Namespace,
			ReferenceName: f.Ref,
		}
		switch {
		case f.Ref != "":
			if _, ok := doc.Messages[f.Ref]; !ok {
				return nil, fmt.Errorf("%w: %s.%s references unknown message %q", ErrInvalidDictionary, name, fname, f.Ref)
			}
			if f.Type != "" || len(f.Enum) > 0 {
				return nil, fmt.Errorf("%w: %s.%s: ref excludes type and enum", ErrInvalidDictionary, name, fname)
			}
			fs.Complex = true
		default:
			kind, ok := msgconv.ParseScalarKind(f.Type)
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s has unknown type %q", ErrInvalidDictionary, name, fname, f.Type)
			}
			fs.Kind = kind
		}
		for _, ev := range f.Enum {
			fs.EnumValues = append(fs.EnumValues, msgconv.EnumValue{Code: ev.Code, Literal: ev.Literal})
		}
		ms.Fields[fname] = fs
	}
	return ms, nil
}
