package msgconv

// Registry supplies message structures by type name. Implementations must be
// immutable once built so that any number of conversions can share them.
type Registry interface {
	Lookup(typeName string) (*MessageStructure, bool)
	Namespace() string
}

// MessageStructure describes a message type.
type MessageStructure struct {
	Name   string
	Fields map[string]*FieldStructure
	// ReferenceName is the name used when the structure is embedded as a
	// nested field type. Empty means Name.
	ReferenceName string
}

// FieldStructure describes a single field.
type FieldStructure struct {
	Name       string
	Complex    bool
	Collection bool
	Kind       ScalarKind
	// EnumValues lists code/literal pairs in declaration order. A field is an
	// enum when the slice is non-empty.
	EnumValues []EnumValue
	Namespace  string
	// ReferenceName is the registry name of the nested structure of a
	// complex field. Empty means the field's own Name.
	ReferenceName string
}

// EnumValue is a single enum alias: Code is the wire alias, Literal the
// canonical value.
type EnumValue struct {
	Code    string
	Literal string
}

// IsEnum reports whether the field declares enum values.
func (f *FieldStructure) IsEnum() bool { return len(f.EnumValues) > 0 }

// nestedName is the registry name of a complex field's structure.
func (f *FieldStructure) nestedName() string {
	if f.ReferenceName != "" {
		return f.ReferenceName
	}
	return f.Name
}

// typeName is the name a message created from s carries when it is nested.
func (s *MessageStructure) typeName() string {
	if s.ReferenceName != "" {
		return s.ReferenceName
	}
	return s.Name
}

// staticRegistry is the built-in immutable Registry.
type staticRegistry struct {
	namespace string
	messages  map[string]*MessageStructure
}

// NewRegistry builds an immutable Registry from the given structures. Later
// structures with the same name replace earlier ones.
func NewRegistry(namespace string, messages ...*MessageStructure) Registry {
	r := &staticRegistry{namespace: namespace, messages: make(map[string]*MessageStructure, len(messages))}
	for _, m := range messages {
		if m == nil {
			continue
		}
		r.messages[m.Name] = m
	}
	return r
}

func (r *staticRegistry) Lookup(typeName string) (*MessageStructure, bool) {
	m, ok := r.messages[typeName]
	return m, ok
}

func (r *staticRegistry) Namespace() string { return r.namespace }
