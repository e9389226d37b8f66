package msgconv

import (
	"maps"
	"strings"

	"github.com/rs/zerolog"
)

// UnknownNamespace is the namespace of messages created without a Registry.
const UnknownNamespace = "unknown"

// ParsedMessage is the transport envelope of an untyped message.
type ParsedMessage struct {
	Type     string
	Metadata map[string]string
	Body     Node
}

// Converter turns untyped bodies into typed messages. It holds only
// immutable collaborators, so one Converter may serve concurrent calls.
type Converter struct {
	registry  Registry
	factory   MessageFactory
	coercions *Coercions
	params    ToTypedParams
	logger    zerolog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithRegistry enables schema-driven conversion.
func WithRegistry(r Registry) Option { return func(c *Converter) { c.registry = r } }

// WithMessageFactory replaces DefaultMessageFactory.
func WithMessageFactory(f MessageFactory) Option {
	return func(c *Converter) {
		if f != nil {
			c.factory = f
		}
	}
}

// WithCoercions replaces DefaultCoercions.
func WithCoercions(t *Coercions) Option {
	return func(c *Converter) {
		if t != nil {
			c.coercions = t
		}
	}
}

// WithToTypedParams sets the parameters ToTyped and FromParsed apply.
func WithToTypedParams(p ToTypedParams) Option { return func(c *Converter) { c.params = p } }

// WithLogger sets the debug logger. The default discards output.
func WithLogger(l zerolog.Logger) Option { return func(c *Converter) { c.logger = l } }

// NewConverter builds a Converter. Without WithRegistry only schema-less
// conversion is available.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		factory:   DefaultMessageFactory,
		coercions: DefaultCoercions(),
		logger:    zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Namespace is the namespace stamped on created messages.
func (c *Converter) Namespace() string {
	if c.registry == nil || c.registry.Namespace() == "" {
		return UnknownNamespace
	}
	return c.registry.Namespace()
}

// ToTyped converts body into a message of typeName. With useSchema the
// Registry drives the conversion; otherwise the body shape does.
//
// A blank typeName and schema-driven mode without a Registry fail before any
// traversal and are not path-qualified. Every other failure is an *Error
// whose Path starts at the root type name.
func (c *Converter) ToTyped(typeName string, body Node, useSchema bool) (*TypedMessage, error) {
	if strings.TrimSpace(typeName) == "" {
		return nil, newError(CodeBlankOrNull, "blank_type", nil, nil)
	}
	c.logger.Debug().Str("type", typeName).Bool("use_schema", useSchema).Msg("converting message")
	if useSchema {
		if c.registry == nil {
			return nil, ErrNoRegistry
		}
		return c.convertBySchema(typeName, body)
	}
	return c.convertWithoutSchema(typeName, body)
}

// FromParsed converts a transport envelope and copies its metadata onto the
// result.
func (c *Converter) FromParsed(pm ParsedMessage, useSchema bool) (*TypedMessage, error) {
	m, err := c.ToTyped(pm.Type, pm.Body, useSchema)
	if err != nil {
		return nil, err
	}
	if len(pm.Metadata) > 0 {
		m.Metadata = maps.Clone(pm.Metadata)
	}
	return m, nil
}

// UntypedToTyped is the functional form of Converter.ToTyped. A nil registry
// selects schema-less conversion.
func UntypedToTyped(typeName string, body Node, registry Registry, params ToTypedParams) (*TypedMessage, error) {
	c := NewConverter(WithRegistry(registry), WithToTypedParams(params))
	return c.ToTyped(typeName, body, registry != nil)
}

// nullValue applies the null policy. keep is false when the position must be
// dropped.
func (c *Converter) nullValue(schemaDriven bool) (v TypedValue, keep bool) {
	if c.params.NullRepresentation == NullMarker {
		return MarkerValue(), true
	}
	return NullValue(), schemaDriven
}

func (c *Converter) checkDepth(depth int) error {
	if limit := c.params.maxDepth(); limit > 0 && depth > limit {
		return newError(CodeDepthExceeded, CodeDepthExceeded, nil, nil)
	}
	return nil
}

func typeMismatch(expected string, got Node, field string) *Error {
	return newError(CodeTypeMismatch, CodeTypeMismatch, map[string]string{
		"expected": expected, "got": got.Kind().String(), "field": field,
	}, nil)
}
