package object

import "fmt"

// Error is raised by Object mutators, mirroring datapack's ObjectException.
// Kind lets callers distinguish failure modes without string matching.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type ErrorKind uint8

const (
	ErrKindMismatch ErrorKind = iota
	ErrNotAMap
	ErrNotAList
	ErrDuplicateKey
	ErrEmptyHandle
)

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
