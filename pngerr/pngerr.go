// Package pngerr defines the typed error values surfaced by the deflate
// and pngo packages. Every failure mode of the decoder becomes one of
// these values instead of a panic.
package pngerr

import "fmt"

// Kind identifies which invariant of the PNG/DEFLATE format was violated.
type Kind string

const (
	BadSignature     Kind = "bad_signature"
	TruncatedStream  Kind = "truncated_stream"
	BadHeader        Kind = "bad_header"
	UnsupportedZlib  Kind = "unsupported_zlib"
	MalformedBlock   Kind = "malformed_block"
	MalformedHuffman Kind = "malformed_huffman"
	BadBackReference Kind = "bad_back_reference"
	BadFilter        Kind = "bad_filter"
)

// Error is the value every exported failure of this module takes the
// shape of. Op names the component that raised it ("deflate.Inflate",
// "pngo.chunkWalker", ...); Wrapped is the underlying cause, if any.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a *Error of the same Kind, so callers
// can write errors.Is(err, pngerr.New(pngerr.BadFilter, "", "")).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// New constructs an Error of the given kind.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap constructs an Error of the given kind around a lower-level cause.
func Wrap(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Wrapped: cause}
}

// Sentinel returns a zero-message Error of the given kind, suitable as
// the target of errors.Is — matching is by Kind only.
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
}
