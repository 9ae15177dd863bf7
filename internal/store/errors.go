package store

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

var (
	// ErrNotFound is returned when no record exists for a kind and id
	ErrNotFound = errors.New("record not found")
	// ErrInvalidKey is returned for unknown kinds and ids that are empty or contain path separators
	ErrInvalidKey = errors.New("invalid record key")
)

// Error describes a failed store operation. It records where the failure was wrapped.
type Error struct {
	Op    string
	Kind  Kind
	ID    string
	Err   error
	stack []byte
}

func (e *Error) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("store %s %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("store %s %s/%s: %v", e.Op, e.Kind, e.ID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StackTrace returns the stack captured when the error was wrapped
func (e *Error) StackTrace() []byte {
	return e.stack
}

func wrap(op string, kind Kind, id string, err error) error {
	if err == nil {
		return nil
	}
	var stack []byte
	if stackErr, ok := err.(*goerrors.Error); ok {
		stack = stackErr.Stack()
	} else {
		stack = goerrors.Wrap(err, 2).Stack()
	}
	return &Error{Op: op, Kind: kind, ID: id, Err: err, stack: stack}
}
