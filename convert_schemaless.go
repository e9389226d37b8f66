package msgconv

func (c *Converter) convertWithoutSchema(typeName string, body Node) (*TypedMessage, error) {
	if body.Kind() != NodeMap && !body.IsNull() {
		return nil, withPath(typeName, typeMismatch("map", body, typeName))
	}
	m, err := c.messageWithoutSchema(typeName, body, 0)
	if err != nil {
		return nil, withPath(typeName, err)
	}
	return m, nil
}

// messageWithoutSchema names every nested message after the field holding it.
func (c *Converter) messageWithoutSchema(name string, body Node, depth int) (*TypedMessage, error) {
	m := c.factory.CreateMessage(name, c.Namespace())
	for _, e := range body.Entries() {
		v, keep, err := c.valueWithoutSchema(e.Key, e.Value, depth+1)
		if err != nil {
			return nil, withPath(e.Key, err)
		}
		if keep {
			m.AddField(e.Key, v)
		}
	}
	c.logger.Debug().Str("type", name).Int("fields", m.Len()).Msg("converted message without dictionary")
	return m, nil
}

// valueWithoutSchema passes text through unchanged and re-renders numeric
// literals canonically. A null list element under NullOmit fails: without a
// schema there is no typed null to stand in for it.
func (c *Converter) valueWithoutSchema(fieldName string, n Node, depth int) (TypedValue, bool, error) {
	if err := c.checkDepth(depth); err != nil {
		return TypedValue{}, false, err
	}
	switch n.Kind() {
	case NodeNull:
		v, keep := c.nullValue(false)
		return v, keep, nil
	case NodeScalar:
		if n.IsNumeric() {
			text, _ := NormalizeNumber(n.Text())
			return StringValue(text), true, nil
		}
		return StringValue(n.Text()), true, nil
	case NodeMap:
		m, err := c.messageWithoutSchema(fieldName, n, depth)
		if err != nil {
			return TypedValue{}, false, err
		}
		return MessageValue(m), true, nil
	}
	items := make([]TypedValue, 0, n.Len())
	for i, el := range n.Items() {
		if el.IsNull() && c.params.NullRepresentation != NullMarker {
			return TypedValue{}, false, withPath(IndexSegment(i), newError(CodeBlankOrNull, CodeBlankOrNull, map[string]string{"field": fieldName}, nil))
		}
		v, _, err := c.valueWithoutSchema(fieldName, el, depth+1)
		if err != nil {
			return TypedValue{}, false, withPath(IndexSegment(i), err)
		}
		items = append(items, v)
	}
	return ListValue(items...), true, nil
}
