// Copyright © 2024 The ELPS authors

// Package diagnostic renders interpreter errors for terminal output.
package diagnostic

import (
	"errors"

	"github.com/luthersystems/ares/lisp"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Diagnostic is a single message with trailing notes.
type Diagnostic struct {
	Severity Severity
	// Code classifies the message, such as the kind of a lisp error.
	Code    string
	Message string
	Notes   []string
}

// FromError returns an error diagnostic for err.  Lisp errors are coded with
// their kind and the wrapped cause of a user error is added as a note.
func FromError(err error) Diagnostic {
	d := Diagnostic{Severity: SeverityError, Message: err.Error()}
	var lerr *lisp.Error
	if !errors.As(err, &lerr) {
		return d
	}
	d.Code = lerr.Kind.String()
	switch {
	case errors.Is(err, lisp.ErrUndefinedName):
		d.Notes = append(d.Notes, "use (help) to list the names in scope")
	case errors.Is(err, lisp.ErrAstFunctionPass), errors.Is(err, lisp.ErrMacroReference):
		d.Notes = append(d.Notes, "special operators and macros may only appear at the head of a call")
	case errors.Is(err, lisp.ErrStackOverflow):
		d.Notes = append(d.Notes, "raise the limit with --max-stack-height")
	}
	if cause := errors.Unwrap(lerr); cause != nil && lerr.Kind == lisp.UserErrorKind {
		d.Notes = append(d.Notes, "caused by: "+cause.Error())
	}
	return d
}
