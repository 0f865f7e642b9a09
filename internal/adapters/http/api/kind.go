package api

import (
	"errors"
	"fmt"
)

// kindError attaches an operation name to a sentinel kind so handlers can
// report where an error surfaced while callers keep using errors.Is.
type kindError struct {
	op   string
	kind error
	err  error
}

func (e *kindError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %v", e.op, e.kind)
	}
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

func (e *kindError) Unwrap() error {
	if e.err != nil {
		return e.err
	}
	return e.kind
}

func (e *kindError) Is(target error) bool {
	return errors.Is(e.kind, target) || errors.Is(e.err, target)
}

// NewKind creates an error of the given kind tagged with an operation.
func NewKind(op string, kind error) error {
	return &kindError{op: op, kind: kind}
}

// WrapKind wraps err under a kind, keeping both visible to errors.Is.
func WrapKind(op string, kind, err error) error {
	return &kindError{op: op, kind: kind, err: err}
}

// Wrap annotates err with an operation without changing its kind.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
