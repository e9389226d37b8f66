package engine

import "strconv"

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	// DupLast lets a repeated key replace the earlier value.
	DupLast DuplicateStrictness = iota
	DupError
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	// MaxDepth limits container nesting; zero disables the check.
	MaxDepth int
	MaxBytes int64
}

// Issue codes reported through IssueError.
const (
	IssueDuplicateKey  = "duplicate_key"
	IssueDepthExceeded = "depth_exceeded"
	IssueTruncated     = "truncated"
)

// IssueError is a fatal stream violation. Path uses dotted segments with
// list indexes rendered as "[i]".
type IssueError struct {
	Code    string
	Path    string
	Message string
}

func (e *IssueError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Message + " at " + e.Path
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	key          string
	nextIndex    int
}

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy, maximum nesting depth and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	path := e.pathFor(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f = frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path}
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, &IssueError{Code: IssueDepthExceeded, Path: path, Message: "max depth exceeded"}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if top := e.top(); top != nil && top.kind == kindObject && top.expectingKey {
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate == DupError {
				return Token{}, &IssueError{Code: IssueDuplicateKey, Path: path, Message: "key '" + tok.String + "' duplicated"}
			}
			top.keys[tok.String] = struct{}{}
			top.expectingKey = false
			top.key = tok.String
		}
	default:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off > e.opt.MaxBytes {
			return Token{}, &IssueError{Code: IssueTruncated, Path: path, Message: "max bytes exceeded"}
		}
	}
	return tok, nil
}

func (e *enforcingTokenSource) top() *frame {
	if n := len(e.stack); n > 0 {
		return &e.stack[n-1]
	}
	return nil
}

func (e *enforcingTokenSource) valueDone() {
	if top := e.top(); top != nil && top.kind == kindObject {
		top.expectingKey = true
	}
}

// pathFor returns the dotted path of the value or key tok starts.
func (e *enforcingTokenSource) pathFor(tok Token) string {
	top := e.top()
	if top == nil {
		return ""
	}
	switch tok.Kind {
	case KindKey:
		return join(top.path, tok.String)
	case KindEndObject, KindEndArray:
		return top.path
	}
	if top.kind == kindArray {
		p := join(top.path, "["+strconv.Itoa(top.nextIndex)+"]")
		top.nextIndex++
		return p
	}
	return join(top.path, top.key)
}

func join(base, seg string) string {
	if base == "" {
		return seg
	}
	return base + "." + seg
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
