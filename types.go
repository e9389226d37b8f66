package msgconv

// NullRepresentation controls how null positions of an untyped body are
// represented in the typed result.
type NullRepresentation int

const (
	// NullOmit drops null fields in schema-less mode and keeps them as typed
	// nulls in schema-driven mode.
	NullOmit NullRepresentation = iota
	// NullMarker replaces every null position with the null marker.
	NullMarker
)

func (r NullRepresentation) String() string {
	if r == NullMarker {
		return "marker"
	}
	return "omit"
}

// DefaultMaxDepth bounds message nesting when ToTypedParams.MaxDepth is zero.
const DefaultMaxDepth = 128

// ToTypedParams configures untyped-to-typed conversion.
type ToTypedParams struct {
	AllowUnknownEnumValues bool
	NullRepresentation     NullRepresentation
	// MaxDepth is the nesting ceiling counted in path segments below the
	// root. Zero selects DefaultMaxDepth; a negative value disables the check.
	MaxDepth int
}

func (p ToTypedParams) maxDepth() int {
	if p.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return p.MaxDepth
}

// FromTypedParams configures typed-to-untyped flattening.
type FromTypedParams struct {
	// StripTrailingZeros removes trailing fractional zeros from decimals. It
	// never rounds.
	StripTrailingZeros bool
	// MaxDepth bounds flattening the same way ToTypedParams.MaxDepth does;
	// deeper subtrees render as null.
	MaxDepth int
}

func (p FromTypedParams) maxDepth() int {
	if p.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return p.MaxDepth
}

// BooleanAliases is the single-letter alias pair accepted when coercing text
// to a boolean, in addition to "true"/"false". Matching ignores case.
type BooleanAliases struct {
	True  string
	False string
}

// DefaultBooleanAliases accepts "Y"/"N".
var DefaultBooleanAliases = BooleanAliases{True: "Y", False: "N"}
