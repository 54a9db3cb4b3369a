// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
)

// ErrorKind classifies an Error.
type ErrorKind uint

// Possible ErrorKind values.
const (
	InvalidError ErrorKind = iota
	UndefinedName
	AlreadyDefined
	UnexpectedType
	UnexpectedArity
	UnexpectedArgsList
	ExecuteEmptyList
	NoLambdaBody
	UnexecutableValue
	AstFunctionPass
	MacroReference
	InvalidUnquotation
	IllegalConversion
	InvalidForeignFunctionState
	UserErrorKind
	ParseError
	NoProgram
	InvalidState
	DivideByZero
	StackOverflow
	MacroExpansionDepth
)

var errorKindStrings = []string{
	InvalidError:                "invalid-error",
	UndefinedName:               "undefined-name",
	AlreadyDefined:              "already-defined",
	UnexpectedType:              "unexpected-type",
	UnexpectedArity:             "unexpected-arity",
	UnexpectedArgsList:          "unexpected-args-list",
	ExecuteEmptyList:            "execute-empty-list",
	NoLambdaBody:                "no-lambda-body",
	UnexecutableValue:           "unexecutable-value",
	AstFunctionPass:             "ast-function-pass",
	MacroReference:              "macro-reference",
	InvalidUnquotation:          "invalid-unquotation",
	IllegalConversion:           "illegal-conversion",
	InvalidForeignFunctionState: "invalid-foreign-function-state",
	UserErrorKind:               "user-error",
	ParseError:                  "parse-error",
	NoProgram:                   "no-program",
	InvalidState:                "invalid-state",
	DivideByZero:                "divide-by-zero",
	StackOverflow:               "stack-overflow",
	MacroExpansionDepth:         "macro-expansion-depth",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindStrings) {
		return errorKindStrings[InvalidError]
	}
	return errorKindStrings[k]
}

// Sentinels for use with errors.Is.  Only the Kind of the target is
// compared.
var (
	ErrUndefinedName               = &Error{Kind: UndefinedName}
	ErrAlreadyDefined              = &Error{Kind: AlreadyDefined}
	ErrUnexpectedType              = &Error{Kind: UnexpectedType}
	ErrUnexpectedArity             = &Error{Kind: UnexpectedArity}
	ErrUnexpectedArgsList          = &Error{Kind: UnexpectedArgsList}
	ErrExecuteEmptyList            = &Error{Kind: ExecuteEmptyList}
	ErrNoLambdaBody                = &Error{Kind: NoLambdaBody}
	ErrUnexecutableValue           = &Error{Kind: UnexecutableValue}
	ErrAstFunctionPass             = &Error{Kind: AstFunctionPass}
	ErrMacroReference              = &Error{Kind: MacroReference}
	ErrInvalidUnquotation          = &Error{Kind: InvalidUnquotation}
	ErrIllegalConversion           = &Error{Kind: IllegalConversion}
	ErrInvalidForeignFunctionState = &Error{Kind: InvalidForeignFunctionState}
	ErrUserError                   = &Error{Kind: UserErrorKind}
	ErrParseError                  = &Error{Kind: ParseError}
	ErrNoProgram                   = &Error{Kind: NoProgram}
	ErrInvalidState                = &Error{Kind: InvalidState}
	ErrDivideByZero                = &Error{Kind: DivideByZero}
	ErrStackOverflow               = &Error{Kind: StackOverflow}
	ErrMacroExpansionDepth         = &Error{Kind: MacroExpansionDepth}
)

// Error is the error type returned by the interpreter.  Which fields are
// populated depends on Kind.
type Error struct {
	Kind ErrorKind
	// Name is the symbol name for UndefinedName and AlreadyDefined.
	Name string
	// Value is the offending value for UnexpectedType, UnexpectedArgsList,
	// UnexecutableValue, IllegalConversion and the payload of a user error.
	Value Value
	// Expected describes the expected type or argument count.
	Expected string
	// Found is the number of arguments given for UnexpectedArity.
	Found int
	// Into names the target type of an IllegalConversion.
	Into string
	// Message is free text for InvalidState and similar errors.
	Message string
	// Err is a wrapped cause, such as the reader error behind a ParseError.
	Err error

	// interner is attached by the evaluator so symbols in Value print by
	// name.
	interner *Interner
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	switch e.Kind {
	case UndefinedName:
		return fmt.Sprintf("undefined name: %s", e.Name)
	case AlreadyDefined:
		return fmt.Sprintf("name already defined: %s", e.Name)
	case UnexpectedType:
		return fmt.Sprintf("unexpected type: expected %s (got %s)", e.Expected, e.format(e.Value))
	case UnexpectedArity:
		return fmt.Sprintf("unexpected number of arguments: expected %s (got %d)", e.Expected, e.Found)
	case UnexpectedArgsList:
		return fmt.Sprintf("unexpected argument list: %s", e.format(e.Value))
	case ExecuteEmptyList:
		return "cannot execute an empty list"
	case NoLambdaBody:
		return "lambda has no body"
	case UnexecutableValue:
		return fmt.Sprintf("value is not executable: %s", e.format(e.Value))
	case AstFunctionPass:
		return fmt.Sprintf("special operator used as a value: %s", e.Name)
	case MacroReference:
		return fmt.Sprintf("macro used as a value: %s", e.Name)
	case InvalidUnquotation:
		return "unquote-splicing outside of a list"
	case IllegalConversion:
		return fmt.Sprintf("cannot convert %s into %s", e.format(e.Value), e.Into)
	case InvalidForeignFunctionState:
		return fmt.Sprintf("foreign function state type mismatch: %s", e.Message)
	case UserErrorKind:
		if e.Err != nil {
			return e.Err.Error()
		}
		return fmt.Sprintf("user error: %s", e.format(e.Value))
	case ParseError:
		return fmt.Sprintf("parse error: %v", e.Err)
	case NoProgram:
		return "no program to evaluate"
	case StackOverflow:
		return fmt.Sprintf("stack overflow: %s", e.Message)
	case MacroExpansionDepth:
		return fmt.Sprintf("maximum macro expansion depth exceeded: %s", e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

func (e *Error) format(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return Format(e.interner, v)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Unwrap returns the wrapped cause of e, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// UndefinedNameError returns an UndefinedName error for name.
func UndefinedNameError(name string) *Error {
	return &Error{Kind: UndefinedName, Name: name}
}

// AlreadyDefinedError returns an AlreadyDefined error for name.
func AlreadyDefinedError(name string) *Error {
	return &Error{Kind: AlreadyDefined, Name: name}
}

// UnexpectedTypeError returns an UnexpectedType error.
func UnexpectedTypeError(v Value, expected string) *Error {
	return &Error{Kind: UnexpectedType, Value: v, Expected: expected}
}

// UnexpectedArityError returns an UnexpectedArity error.
func UnexpectedArityError(found int, expected string) *Error {
	return &Error{Kind: UnexpectedArity, Found: found, Expected: expected}
}

// IllegalConversionError returns an IllegalConversion error.
func IllegalConversionError(v Value, into string) *Error {
	return &Error{Kind: IllegalConversion, Value: v, Into: into}
}

// InvalidStateError returns an InvalidState error with the given message.
func InvalidStateError(format string, v ...interface{}) *Error {
	return &Error{Kind: InvalidState, Message: fmt.Sprintf(format, v...)}
}

// UserError returns an error carrying an arbitrary embedder payload.
func UserError(payload Value) *Error {
	return &Error{Kind: UserErrorKind, Value: payload}
}

// WrapUserError returns a user error wrapping a native Go error.
func WrapUserError(err error) *Error {
	return &Error{Kind: UserErrorKind, Err: err}
}

func errorOf(kind ErrorKind, v Value) *Error {
	return &Error{Kind: kind, Value: v}
}
