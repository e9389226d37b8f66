package msgconv

import (
	"errors"

	"github.com/reoring/msgconv/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMessageTypeNotFound   = "message_type_not_found"
	CodeFieldNotFound         = "field_not_found"
	CodeTypeMismatch          = "type_mismatch"
	CodeUnknownEnum           = "unknown_enum"
	CodeNumericOverflow       = "numeric_overflow"
	CodeBlankOrNull           = "blank_or_null"
	CodeUnsupportedScalarKind = "unsupported_scalar_kind"
	// Nesting deeper than ToTypedParams.MaxDepth.
	CodeDepthExceeded = "depth_exceeded"
	// Wire decoding only.
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
)

// Sentinels for errors.Is. Matching compares codes only, so a path-qualified
// *Error still matches the sentinel of its code.
var (
	ErrMessageTypeNotFound   = &Error{Code: CodeMessageTypeNotFound}
	ErrFieldNotFound         = &Error{Code: CodeFieldNotFound}
	ErrTypeMismatch          = &Error{Code: CodeTypeMismatch}
	ErrUnknownEnum           = &Error{Code: CodeUnknownEnum}
	ErrNumericOverflow       = &Error{Code: CodeNumericOverflow}
	ErrBlankOrNull           = &Error{Code: CodeBlankOrNull}
	ErrUnsupportedScalarKind = &Error{Code: CodeUnsupportedScalarKind}
	ErrDepthExceeded         = &Error{Code: CodeDepthExceeded}
	ErrDuplicateKey          = &Error{Code: CodeDuplicateKey}
	ErrParseError            = &Error{Code: CodeParseError}
)

// ErrNoRegistry indicates schema-driven conversion was requested on a
// Converter built without a Registry.
var ErrNoRegistry = errors.New("Cannot convert using dictionary without dictionary set")

// Error is a conversion failure. Path lists the route from the root message
// type to the failing field; list elements appear as "[i]" segments. Path is
// empty for root-level precondition failures.
type Error struct {
	Code    string
	Path    []string
	Message string
	Cause   error // Optional: underlying error.
}

// Error renders "Message path: Root.field.[1], cause: <message>" for
// qualified errors and the bare message otherwise. The format is stable.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if len(e.Path) == 0 {
		return msg
	}
	return "Message path: " + e.PathString() + ", cause: " + msg
}

// PathString joins the path segments with ".".
func (e *Error) PathString() string { return JoinPath(e.Path...) }

func (e *Error) Unwrap() error { return e.Cause }

// Is reports code equality with another *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// AsError extracts *Error from an error using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// newError builds an unqualified error whose message comes from the i18n
// translator. tpl selects the message template; it usually equals code.
func newError(code, tpl string, data map[string]string, cause error) *Error {
	return &Error{Code: code, Message: i18n.T(tpl, data), Cause: cause}
}

// withPath qualifies err with seg. Errors that are not *Error become
// type_mismatch failures carrying err as their cause.
func withPath(seg string, err error) error {
	if err == nil {
		return nil
	}
	ce, ok := err.(*Error)
	if !ok {
		return &Error{Code: CodeTypeMismatch, Path: []string{seg}, Message: err.Error(), Cause: err}
	}
	path := make([]string, 0, len(ce.Path)+1)
	path = append(path, seg)
	path = append(path, ce.Path...)
	return &Error{Code: ce.Code, Path: path, Message: ce.Message, Cause: ce.Cause}
}
