// Copyright © 2018 The ELPS authors

package libmath

import (
	"cmp"
	"math"

	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the math functions and the constants pi and e to env.
func LoadPackage(rt *lisp.Runtime, env *lisp.Env) error {
	env.InsertHere(rt.Symbol("pi"), lisp.Float(math.Pi))
	env.InsertHere(rt.Symbol("e"), lisp.Float(math.E))
	libutil.Install(rt, env, builtins)
	return nil
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("abs", 1, builtinAbs,
		`Returns the absolute value of number. Preserves the type: an int
		argument returns an int, a float returns a float.  The absolute
		value of the minimum int wraps.`),
	floatFn("sqrt", math.Sqrt, `Returns the square root of number as a float.`),
	floatFn("cbrt", math.Cbrt, `Returns the cube root of number as a float.`),
	floatFn("exp", math.Exp, `Returns e raised to the power of number.`),
	floatFn("ln", math.Log, `Returns the natural logarithm of number.`),
	floatFn("log2", math.Log2, `Returns the base 2 logarithm of number.`),
	floatFn("log10", math.Log10, `Returns the base 10 logarithm of number.`),
	floatFn("floor", math.Floor, `Returns the largest integral float not greater than number.`),
	floatFn("ceil", math.Ceil, `Returns the smallest integral float not less than number.`),
	floatFn("round", math.Round, `Rounds number to the nearest integral float, half away from zero.`),
	floatFn("trunc", math.Trunc, `Returns the integral part of number as a float.`),
	floatFn("fract", fract, `Returns the fractional part of number.`),
	floatFn("recip", func(x float64) float64 { return 1 / x }, `Returns 1 divided by number.`),
	floatFn("sin", math.Sin, `Returns the sine of radians.`),
	floatFn("cos", math.Cos, `Returns the cosine of radians.`),
	floatFn("tan", math.Tan, `Returns the tangent of radians.`),
	floatFn("asin", math.Asin, `Returns the arcsine of number in radians.`),
	floatFn("acos", math.Acos, `Returns the arccosine of number in radians.`),
	floatFn("atan", math.Atan, `Returns the arctangent of number in radians.`),
	floatFn("sinh", math.Sinh, `Returns the hyperbolic sine of number.`),
	floatFn("cosh", math.Cosh, `Returns the hyperbolic cosine of number.`),
	floatFn("tanh", math.Tanh, `Returns the hyperbolic tangent of number.`),
	floatFn("to-degrees", func(x float64) float64 { return x * 180 / math.Pi }, `Converts radians to degrees.`),
	floatFn("to-radians", func(x float64) float64 { return x * math.Pi / 180 }, `Converts degrees to radians.`),
	compare("<", func(c int) bool { return c < 0 }),
	compare("<=", func(c int) bool { return c <= 0 }),
	compare(">", func(c int) bool { return c > 0 }),
	compare(">=", func(c int) bool { return c >= 0 }),
	predicate("nan?", math.IsNaN, `Returns true if number is NaN.`),
	predicate("infinite?", func(x float64) bool { return math.IsInf(x, 0) }, `Returns true if number is infinite.`),
	predicate("finite?", func(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) },
		`Returns true if number is neither infinite nor NaN.`),
}

func floatFn(name string, fn func(float64) float64, docs string) *libutil.Builtin {
	return libutil.FunctionDoc(name, 1, func(args []lisp.Value) (lisp.Value, error) {
		x, err := libutil.Number(args[0])
		if err != nil {
			return nil, err
		}
		return lisp.Float(fn(x)), nil
	}, docs)
}

func predicate(name string, fn func(float64) bool, docs string) *libutil.Builtin {
	return libutil.FunctionDoc(name, 1, func(args []lisp.Value) (lisp.Value, error) {
		x, err := libutil.Number(args[0])
		if err != nil {
			return nil, err
		}
		return lisp.Bool(fn(x)), nil
	}, docs)
}

// compare returns a builtin that is true when ok holds for every adjacent
// pair of its numeric arguments.  Two ints are compared exactly.
func compare(name string, ok func(c int) bool) *libutil.Builtin {
	return libutil.FunctionDoc(name, -1, func(args []lisp.Value) (lisp.Value, error) {
		if err := lisp.CheckMinArity(args, 2); err != nil {
			return nil, err
		}
		result := true
		for i := 1; i < len(args); i++ {
			c, err := compareNumbers(args[i-1], args[i])
			if err != nil {
				return nil, err
			}
			if !ok(c) {
				result = false
			}
		}
		return lisp.Bool(result), nil
	}, "Compares each adjacent pair of its numeric arguments with "+name+".")
}

func compareNumbers(a, b lisp.Value) (int, error) {
	if x, ok := a.(lisp.Int); ok {
		if y, ok := b.(lisp.Int); ok {
			return cmp.Compare(x, y), nil
		}
	}
	x, err := libutil.Number(a)
	if err != nil {
		return 0, err
	}
	y, err := libutil.Number(b)
	if err != nil {
		return 0, err
	}
	return cmp.Compare(x, y), nil
}

func fract(x float64) float64 {
	_, f := math.Modf(x)
	return f
}

func builtinAbs(args []lisp.Value) (lisp.Value, error) {
	switch x := args[0].(type) {
	case lisp.Int:
		if x < 0 {
			return -x, nil
		}
		return x, nil
	case lisp.Float:
		return lisp.Float(math.Abs(float64(x))), nil
	}
	return nil, lisp.UnexpectedTypeError(args[0], "Int or Float")
}
