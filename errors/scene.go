package errors

import (
	"fmt"
	"strings"
)

// Prefix marks diagnostics that already carry source context. Wrapping
// helpers check for it so an error is annotated at most once on its way
// out of the loader.
const Prefix = "Error while loading"

// Scene describes a loader error bound to a source document and a
// human-readable position ("line 12, col 8" or "byte offset 512").
type Scene struct {
	SrcID    string
	Position string
	Message  string
	Near     bool
	Err      error
}

// Error formats the diagnostic with its source context.
func (e *Scene) Error() string {
	prep := "at"
	if e.Near {
		prep = "near"
	}
	return fmt.Sprintf("%s %q (%s %s): %s", Prefix, e.SrcID, prep, e.Position, e.Message)
}

// Unwrap returns the wrapped error, if any.
func (e *Scene) Unwrap() error {
	return e.Err
}

// New builds a Scene error from a format string.
func New(srcID, position, format string, args ...any) *Scene {
	return &Scene{
		SrcID:    srcID,
		Position: position,
		Message:  fmt.Sprintf(format, args...),
	}
}

// NewNear builds a Scene error using the "near" preposition.
func NewNear(srcID, position, format string, args ...any) *Scene {
	e := New(srcID, position, format, args...)
	e.Near = true
	return e
}

// IsWrapped reports whether err already carries loader source context.
func IsWrapped(err error) bool {
	return err != nil && strings.Contains(err.Error(), Prefix)
}

// WrapAt annotates err with source context unless it is already annotated.
func WrapAt(err error, srcID, position string) error {
	if err == nil || IsWrapped(err) {
		return err
	}
	return &Scene{SrcID: srcID, Position: position, Message: err.Error(), Err: err}
}

// WrapNear is WrapAt with the "near" preposition used by the instantiation
// phase, where positions refer to the element that opened the object.
func WrapNear(err error, srcID, position string) error {
	if err == nil || IsWrapped(err) {
		return err
	}
	return &Scene{SrcID: srcID, Position: position, Message: err.Error(), Near: true, Err: err}
}
