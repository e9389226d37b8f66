package msgconv

import "maps"

// TypedToUntyped flattens a typed message into a map Node, fields in
// insertion order. Scalars render through FormatScalar. Typed nulls and null
// markers are left out of maps and become Null inside lists. List elements
// are rendered independently; mixed element kinds are not rejected.
func TypedToUntyped(m *TypedMessage, p FromTypedParams) Node {
	if m == nil {
		return Map()
	}
	return flattenMessage(m, p, 0)
}

// ToParsed flattens m into a transport envelope typed after m.Name.
func ToParsed(m *TypedMessage, p FromTypedParams) ParsedMessage {
	pm := ParsedMessage{Body: TypedToUntyped(m, p)}
	if m != nil {
		pm.Type = m.Name
		if len(m.Metadata) > 0 {
			pm.Metadata = maps.Clone(m.Metadata)
		}
	}
	return pm
}

func flattenMessage(m *TypedMessage, p FromTypedParams, depth int) Node {
	out := Node{kind: NodeMap, entries: make([]Entry, 0, m.Len())}
	for _, name := range m.names {
		v := m.fields[name]
		if v.kind == ValueNull || v.kind == ValueMarker {
			continue
		}
		out.entries = append(out.entries, Entry{Key: name, Value: flattenValue(v, p, depth+1)})
	}
	return out
}

func flattenValue(v TypedValue, p FromTypedParams, depth int) Node {
	if limit := p.maxDepth(); limit > 0 && depth > limit {
		return Null()
	}
	switch v.kind {
	case ValueNull, ValueMarker:
		return Null()
	case ValueMessage:
		return flattenMessage(v.msg, p, depth)
	case ValueList:
		items := make([]Node, len(v.list))
		for i, e := range v.list {
			items[i] = flattenValue(e, p, depth+1)
		}
		return List(items...)
	}
	return Scalar(FormatScalar(v, p))
}
