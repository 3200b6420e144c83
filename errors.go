package yalisp

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	SyntaxError ErrorKind = iota
	ArityError
	ApplyError
	PrimitiveError
	DepthError
)

var errorKindNames = map[ErrorKind]string{
	SyntaxError:    "syntax error",
	ArityError:     "arity error",
	ApplyError:     "apply error",
	PrimitiveError: "primitive error",
	DepthError:     "depth error",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error(%d)", int(k))
}

// Error is the only error type the core returns. Pos is a byte offset into
// the source for syntax errors and -1 everywhere else.
type Error struct {
	Kind ErrorKind
	Pos  int
	Msg  string
	Err  error

	incomplete bool
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrSyntax    = &Error{Kind: SyntaxError, Pos: -1}
	ErrArity     = &Error{Kind: ArityError, Pos: -1}
	ErrApply     = &Error{Kind: ApplyError, Pos: -1}
	ErrPrimitive = &Error{Kind: PrimitiveError, Pos: -1}
	ErrDepth     = &Error{Kind: DepthError, Pos: -1}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Pos >= 0 {
		msg += fmt.Sprintf(" at %d", e.Pos)
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) Unwrap() error { return e.Err }

func syntaxErr(pos int, format string, a ...interface{}) *Error {
	return &Error{Kind: SyntaxError, Pos: pos, Msg: fmt.Sprintf(format, a...)}
}

// incompleteErr is a syntax error caused only by running out of input.
func incompleteErr(pos int, format string, a ...interface{}) *Error {
	e := syntaxErr(pos, format, a...)
	e.incomplete = true
	return e
}

func arityErr(format string, a ...interface{}) *Error {
	return &Error{Kind: ArityError, Pos: -1, Msg: fmt.Sprintf(format, a...)}
}

func applyErr(cause error, format string, a ...interface{}) *Error {
	return &Error{Kind: ApplyError, Pos: -1, Msg: fmt.Sprintf(format, a...), Err: cause}
}

func primitiveErr(name string, format string, a ...interface{}) *Error {
	return &Error{Kind: PrimitiveError, Pos: -1, Msg: name + ": " + fmt.Sprintf(format, a...)}
}

func depthErr(limit int) *Error {
	return &Error{Kind: DepthError, Pos: -1, Msg: fmt.Sprintf("nesting exceeds %d", limit)}
}

// IsIncomplete reports whether err means the input stopped before the
// expression was finished, so more input could complete it.
func IsIncomplete(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.incomplete
}
