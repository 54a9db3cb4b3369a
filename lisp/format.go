// Copyright © 2018 The ELPS authors

package lisp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Format returns the printed representation of v.  Symbol names are resolved
// through in, which may be nil.
func Format(in *Interner, v Value) string {
	var buf bytes.Buffer
	writeValue(&buf, in, v)
	return buf.String()
}

func writeValue(buf *bytes.Buffer, in *Interner, v Value) {
	switch v := v.(type) {
	case nil:
		buf.WriteString("<nil>")
	case Int:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case Float:
		buf.WriteString(formatFloat(float64(v)))
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(v)))
	case String:
		buf.WriteString(strconv.Quote(string(v)))
	case Symbol:
		buf.WriteString(symbolName(in, v))
	case List:
		buf.WriteByte('(')
		for i, x := range v {
			if i > 0 {
				buf.WriteByte(' ')
			}
			writeValue(buf, in, x)
		}
		buf.WriteByte(')')
	case *Map:
		buf.WriteByte('{')
		first := true
		v.Each(func(k, x Value) bool {
			if !first {
				buf.WriteByte(' ')
			}
			first = false
			writeValue(buf, in, k)
			buf.WriteByte(' ')
			writeValue(buf, in, x)
			return true
		})
		buf.WriteByte('}')
	case *Procedure:
		kind := "lambda"
		if v.IsMacro {
			kind = "macro"
		}
		if v.Name == "" {
			fmt.Fprintf(buf, "<%s>", kind)
		} else {
			fmt.Fprintf(buf, "<%s %s>", kind, v.Name)
		}
	case *ForeignFunction:
		fmt.Fprintf(buf, "<foreign-fn %s>", v.Name)
	case *UserData:
		fmt.Fprintf(buf, "<user-data %T>", v.Data)
	default:
		fmt.Fprintf(buf, "<%v>", v.Type())
	}
}

func symbolName(in *Interner, sym Symbol) string {
	if in == nil {
		return fmt.Sprintf("s%d", sym)
	}
	return in.LookupOrAnon(sym)
}

// formatFloat always includes a decimal point or exponent so a Float never
// prints like an Int.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

// Display returns the representation of v used by print and ->string, in
// which strings appear without quotes.
func Display(in *Interner, v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	return Format(in, v)
}
