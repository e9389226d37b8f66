package msgconv

func (c *Converter) convertBySchema(typeName string, body Node) (*TypedMessage, error) {
	ms, ok := c.registry.Lookup(typeName)
	if !ok {
		return nil, newError(CodeMessageTypeNotFound, CodeMessageTypeNotFound, map[string]string{"type": typeName}, nil)
	}
	m, err := c.messageBySchema(ms, ms.Name, body, 0)
	if err != nil {
		return nil, withPath(ms.Name, err)
	}
	return m, nil
}

// messageBySchema builds a message named name from a map body. A null body
// yields an empty message.
func (c *Converter) messageBySchema(ms *MessageStructure, name string, body Node, depth int) (*TypedMessage, error) {
	if body.Kind() != NodeMap && !body.IsNull() {
		return nil, typeMismatch("map", body, name)
	}
	m := c.factory.CreateMessage(name, c.Namespace())
	for _, e := range body.Entries() {
		fs, ok := ms.Fields[e.Key]
		if !ok {
			// reported at the enclosing message; the text names the field
			return nil, newError(CodeFieldNotFound, CodeFieldNotFound, map[string]string{"field": e.Key, "type": name}, nil)
		}
		v, err := c.fieldBySchema(fs, e.Value, depth+1)
		if err != nil {
			return nil, withPath(e.Key, err)
		}
		m.AddField(e.Key, v)
	}
	c.logger.Debug().Str("type", name).Int("fields", m.Len()).Msg("converted message by dictionary")
	return m, nil
}

func (c *Converter) fieldBySchema(fs *FieldStructure, n Node, depth int) (TypedValue, error) {
	if err := c.checkDepth(depth); err != nil {
		return TypedValue{}, err
	}
	if n.IsNull() {
		v, _ := c.nullValue(true)
		return v, nil
	}
	if fs.Complex {
		return c.complexBySchema(fs, n, depth)
	}
	if !fs.Collection {
		return c.scalarBySchema(fs, n)
	}
	if n.Kind() != NodeList {
		return TypedValue{}, typeMismatch("list", n, fs.Name)
	}
	items := make([]TypedValue, 0, n.Len())
	for i, el := range n.Items() {
		if el.IsNull() {
			v, _ := c.nullValue(true)
			items = append(items, v)
			continue
		}
		v, err := c.scalarBySchema(fs, el)
		if err != nil {
			return TypedValue{}, withPath(IndexSegment(i), err)
		}
		items = append(items, v)
	}
	return ListValue(items...), nil
}

func (c *Converter) complexBySchema(fs *FieldStructure, n Node, depth int) (TypedValue, error) {
	nested, ok := c.registry.Lookup(fs.nestedName())
	if !ok {
		return TypedValue{}, newError(CodeMessageTypeNotFound, CodeMessageTypeNotFound, map[string]string{"type": fs.nestedName()}, nil)
	}
	name := fs.ReferenceName
	if name == "" {
		name = nested.typeName()
	}
	if !fs.Collection {
		if n.Kind() != NodeMap {
			return TypedValue{}, typeMismatch("map", n, fs.Name)
		}
		m, err := c.messageBySchema(nested, name, n, depth)
		if err != nil {
			return TypedValue{}, err
		}
		return MessageValue(m), nil
	}
	if n.Kind() != NodeList {
		return TypedValue{}, typeMismatch("list", n, fs.Name)
	}
	items := make([]TypedValue, 0, n.Len())
	for i, el := range n.Items() {
		if el.IsNull() {
			v, _ := c.nullValue(true)
			items = append(items, v)
			continue
		}
		if el.Kind() != NodeMap {
			return TypedValue{}, withPath(IndexSegment(i), typeMismatch("map", el, fs.Name))
		}
		if err := c.checkDepth(depth + 1); err != nil {
			return TypedValue{}, withPath(IndexSegment(i), err)
		}
		m, err := c.messageBySchema(nested, name, el, depth+1)
		if err != nil {
			return TypedValue{}, withPath(IndexSegment(i), err)
		}
		items = append(items, MessageValue(m))
	}
	return ListValue(items...), nil
}

// scalarBySchema coerces a single scalar node, resolving enum aliases first.
// An unknown enum value is kept as raw text when the parameters allow it.
func (c *Converter) scalarBySchema(fs *FieldStructure, n Node) (TypedValue, error) {
	if n.Kind() != NodeScalar {
		return TypedValue{}, typeMismatch("scalar", n, fs.Name)
	}
	text := n.Text()
	if fs.IsEnum() {
		literal, ok := ResolveEnum(fs, text)
		if !ok {
			if c.params.AllowUnknownEnumValues {
				return StringValue(text), nil
			}
			ns := fs.Namespace
			if ns == "" {
				ns = c.Namespace()
			}
			return TypedValue{}, newError(CodeUnknownEnum, CodeUnknownEnum, map[string]string{
				"field": fs.Name, "value": clipValue(text), "namespace": ns,
			}, nil)
		}
		return c.coercions.Coerce(fs.Kind, literal)
	}
	if n.IsNumeric() {
		return c.coercions.CoerceNumber(fs.Kind, text)
	}
	return c.coercions.Coerce(fs.Kind, text)
}
