// Copyright © 2018 The ELPS authors

package lisp

// Type is the runtime type of a Value.
type Type uint

// Possible Type values.
const (
	TInt Type = iota
	TFloat
	TBool
	TString
	TSymbol
	TList
	TMap
	TLambda
	TForeignFn
	TUserData
	// tTail marks a deferred evaluation handed back by an Ast function.  It
	// never escapes the evaluator.
	tTail
)

var typeStrings = []string{
	TInt:       "Int",
	TFloat:     "Float",
	TBool:      "Bool",
	TString:    "String",
	TSymbol:    "Symbol",
	TList:      "List",
	TMap:       "Map",
	TLambda:    "Lambda",
	TForeignFn: "ForeignFunction",
	TUserData:  "UserData",
	tTail:      "TailEval",
}

func (t Type) String() string {
	if int(t) >= len(typeStrings) {
		return "INVALID"
	}
	return typeStrings[t]
}

// Value is a runtime lisp value.  Values must be compared using Equal and
// never with the == operator.
type Value interface {
	Type() Type
}

// Int is a 64-bit signed integer.  Arithmetic on Int values wraps.
type Int int64

// Float is a 64-bit IEEE 754 float.
type Float float64

// Bool is a boolean.
type Bool bool

// String is an immutable string.
type String string

// Symbol is an interned identifier.  Its name can only be recovered through
// the Interner that produced it.
type Symbol uint32

// List is an immutable sequence of values.  Lists may share backing storage
// and must not be modified after construction.
type List []Value

// UserData wraps an embedder value that lisp code can pass around but not
// inspect.
type UserData struct {
	Data any
}

func (Int) Type() Type       { return TInt }
func (Float) Type() Type     { return TFloat }
func (Bool) Type() Type      { return TBool }
func (String) Type() Type    { return TString }
func (Symbol) Type() Type    { return TSymbol }
func (List) Type() Type      { return TList }
func (*UserData) Type() Type { return TUserData }

// NewUserData returns a UserData holding data.
func NewUserData(data any) *UserData {
	return &UserData{Data: data}
}

// Executable returns true if v can appear in the head position of an
// expression.
func Executable(v Value) bool {
	switch v.(type) {
	case *Procedure, *ForeignFunction:
		return true
	}
	return false
}

// Equal reports whether a and b are equal.  Scalars, strings, lists and maps
// are compared structurally.  Procedures, foreign functions and user data are
// compared by identity.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Int:
		b, ok := b.(Int)
		return ok && a == b
	case Float:
		b, ok := b.(Float)
		return ok && a == b
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Symbol:
		b, ok := b.(Symbol)
		return ok && a == b
	case List:
		b, ok := b.(List)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case *Map:
		b, ok := b.(*Map)
		return ok && a.equal(b)
	case *Procedure:
		b, ok := b.(*Procedure)
		return ok && a == b
	case *ForeignFunction:
		b, ok := b.(*ForeignFunction)
		return ok && a == b
	case *UserData:
		b, ok := b.(*UserData)
		return ok && a == b
	}
	return false
}
