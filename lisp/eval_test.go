// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/ares/arestest"
)

func TestEval(t *testing.T) {
	tests := arestest.TestSuite{
		{"arithmetic", arestest.TestSequence{
			{"(+ 1 2 3)", "6", ""},
			{"(+)", "0", ""},
			{"(- 5)", "-5", ""},
			{"(- 10 1 2)", "7", ""},
			{"(* 2 3 4)", "24", ""},
			{"(/ 7 2)", "3", ""},
			{"(/ 1 0)", "divide-by-zero: 1 / 0", ""},
			{"(+ 9223372036854775807 1)", "-9223372036854775808", ""},
			{"(+ 1 2.0)", "unexpected type: expected Int (got 2.0)", ""},
			{"(+. 1.5 2.5)", "4.0", ""},
			{"(/. 1.0 4.0)", "0.25", ""},
			{"(= 1 1 1)", "true", ""},
			{"(= 1 1.0)", "false", ""},
			{`(string-concat "ab" "cd")`, `"abcd"`, ""},
		}},
		{"special operators as values", arestest.TestSequence{
			{"(+ 1 define)", "special operator used as a value: define", ""},
			{"if", "special operator used as a value: if", ""},
			{"(list quote)", "special operator used as a value: quote", ""},
		}},
		{"if", arestest.TestSequence{
			{"(if true 1 2)", "1", ""},
			{"(if false 1 2)", "2", ""},
			{"(if (= 1 1) (+ 1 1) undefined-thing)", "2", ""},
			{"(if 1 2 3)", "unexpected type: expected Bool (got 1)", ""},
			{"(if true 1)", "unexpected number of arguments: expected exactly 3 (got 2)", ""},
		}},
		{"cond", arestest.TestSequence{
			{"(cond ((= 1 2) 1) (else 2))", "2", ""},
			{"(cond ((= 1 1) 1 10) (else 2))", "10", ""},
			{"(cond ((= 1 2) 1))", "()", ""},
		}},
		{"define and set", arestest.TestSequence{
			{"(define x 5)", "5", ""},
			{"x", "5", ""},
			{"(define x 6)", "name already defined: x", ""},
			{"(set x 7)", "7", ""},
			{"x", "7", ""},
			{"(set y 1)", "undefined name: y", ""},
			{"(define 1 2)", "unexpected type: expected Symbol (got 1)", ""},
			{"(define f (lambda (n) n))", "<lambda f>", ""},
		}},
		{"let", arestest.TestSequence{
			{"(let (x 1 y (+ x 1)) (+ x y))", "3", ""},
			{"x", "undefined name: x", ""},
			{"(let (x 1 y) x)", "unexpected number of arguments: expected an even number of binding forms (got 3)", ""},
			{"(define z 1)", "1", ""},
			{"(let (z 2) (set z 3) z)", "3", ""},
			{"z", "1", ""},
			{"(let (w 1) (set z w))", "1", ""},
			{"z", "1", ""},
		}},
		{"lambda", arestest.TestSequence{
			{"((lambda (x y) (+ x y)) 1 2)", "3", ""},
			{"((lambda (x y) x) 1)", "unexpected number of arguments: expected exactly 2 (got 1)", ""},
			{"((lambda (x . rest) rest) 1 2 3)", "(2 3)", ""},
			{"((lambda (x . rest) rest) 1)", "()", ""},
			{"((lambda (x . rest) rest))", "unexpected number of arguments: expected at least 1 (got 0)", ""},
			{"((lambda args args) 1 2)", "(1 2)", ""},
			{"(lambda (1) 1)", "unexpected type: expected Symbol (got 1)", ""},
			{"(lambda (x . y z) 1)", "unexpected argument list: (x . y z)", ""},
			{"(lambda (x))", "unexpected number of arguments: expected at least 2 (got 1)", ""},
			{"(((lambda (x) (lambda () (+ x 2))) 3))", "5", ""},
			{"((lambda () (define a 1) (+ a 1)))", "2", ""},
			{"a", "undefined name: a", ""},
		}},
		{"calls", arestest.TestSequence{
			{"()", "cannot execute an empty list", ""},
			{"(1 2)", "value is not executable: 1", ""},
			{"(undefined-fn 1)", "undefined name: undefined-fn", ""},
		}},
		{"logical", arestest.TestSequence{
			{"(and true true)", "true", ""},
			{"(and true false undefined)", "false", ""},
			{"(and)", "true", ""},
			{"(or false true undefined)", "true", ""},
			{"(or)", "false", ""},
			{"(or 1)", "unexpected type: expected Bool (got 1)", ""},
			{"(xor true false)", "true", ""},
			{"(xor true true)", "false", ""},
			{"(xor false false)", "false", ""},
			{"(xor true false undefined)", "true", ""},
		}},
		{"quote and quasiquote", arestest.TestSequence{
			{"'a", "a", ""},
			{"'(1 (2 3))", "(1 (2 3))", ""},
			{"(define x 5)", "5", ""},
			{"`(a ,x)", "(a 5)", ""},
			{"`(a (b ,x))", "(a (b 5))", ""},
			{"`,x", "5", ""},
			{"`(a ,@(list 1 2) b)", "(a 1 2 b)", ""},
			{"`(a ~@(list 1 2) ~x)", "(a 1 2 5)", ""},
			{"`,@x", "unquote-splicing outside of a list", ""},
			{"`(a ,@x)", "unexpected type: expected List (got 5)", ""},
			{"`(a (unquote x x))", "unexpected number of arguments: expected exactly 1 (got 2)", ""},
		}},
		{"eval and apply", arestest.TestSequence{
			{"(eval '(+ 1 2))", "3", ""},
			{"(eval (list '+ 1 2))", "3", ""},
			{"(apply + (list 1 2 3))", "6", ""},
			{"(apply (lambda (x . r) r) (list 1 2 3))", "(2 3)", ""},
			{"(apply + 1)", "unexpected type: expected List (got 1)", ""},
		}},
		{"print", arestest.TestSequence{
			{`(print "a" 1)`, "1", "a 1\n"},
			{`(print '(1 "b"))`, `(1 "b")`, "(1 \"b\")\n"},
			{`(print)`, "()", "\n"},
		}},
		{"gensym", arestest.TestSequence{
			{"(= (gensym) (gensym))", "false", ""},
			{`(symbol? (gensym "tmp"))`, "true", ""},
		}},
		{"build-list", arestest.TestSequence{
			{"(build-list (lambda (push) 1))", "()", ""},
			{"(build-list (lambda (push) (push 1) (push 2 3)))", "(1 2 3)", ""},
			{"(build-list (lambda (push push-all) (push-all (list 1 2) (list 3))))", "(1 2 3)", ""},
			{"(define saved (list))", "()", ""},
			{"(build-list (lambda (push) (set saved push)))", "()", ""},
			{"(saved 1)", "invalid-state: build-list push called after build-list returned", ""},
		}},
		{"for-each", arestest.TestSequence{
			{"(for-each (list 1 2 3) (lambda (x) (print x)))", "3", "1\n2\n3\n"},
			{"(for-each (list) print)", "0", ""},
			{"(for-each 1 print)", "unexpected type: expected List (got 1)", ""},
		}},
		{"maps", arestest.TestSequence{
			{`{"b" 2 "a" 1}`, `{"a" 1 "b" 2}`, ""},
			{`{1 "x" true 2}`, `{1 "x" true 2}`, ""},
			{`{"x" (+ 1 2)}`, `{"x" 3}`, ""},
			{`(hash-map "x" 1 "y")`, "unexpected number of arguments: expected an even number (got 3)", ""},
			{`(hash-map 'a 1)`, "unexpected type: expected Int, Float, Bool or String (got a)", ""},
		}},
	}
	arestest.RunTestSuite(t, tests)
}

func TestRecursion(t *testing.T) {
	tests := arestest.TestSuite{
		{"deep recursion", arestest.TestSequence{
			{"(define sum (lambda (n) (if (= n 0) 0 (+ n (sum (- n 1))))))", "<lambda sum>", ""},
			{"(sum 100000)", "5000050000", ""},
		}},
		{"tail calls", arestest.TestSequence{
			{"(define loop (lambda (n acc) (if (= n 0) acc (loop (- n 1) (+ acc 1)))))", "<lambda loop>", ""},
			{"(loop 1000000 0)", "1000000", ""},
			{"(define count (lambda (n) (cond ((= n 0) 'done) (else (let (m (- n 1)) (count m))))))", "<lambda count>", ""},
			{"(count 100000)", "done", ""},
		}},
		{"mutual recursion", arestest.TestSequence{
			{"(define even? (lambda (n) (if (= n 0) true (odd? (- n 1)))))", "<lambda even?>", ""},
			{"(define odd? (lambda (n) (if (= n 0) false (even? (- n 1)))))", "<lambda odd?>", ""},
			{"(even? 100001)", "false", ""},
		}},
	}
	arestest.RunTestSuite(t, tests)
}

func TestMacro(t *testing.T) {
	tests := arestest.TestSuite{
		{"unless", arestest.TestSequence{
			{"(define-macro unless (lambda (c body) `(if ,c (list) ,body)))", "<macro unless>", ""},
			{"(unless false (+ 1 2))", "3", ""},
			{"(unless true (+ 1 2))", "()", ""},
			{"(macroexpand '(unless false 5))", "(if false (list) 5)", ""},
			{"(macroexpand-1 '(unless false 5))", "(if false (list) 5)", ""},
			{"(= (macroexpand '(unless false 5)) (macroexpand (macroexpand '(unless false 5))))", "true", ""},
			{"(macroexpand ''(unless false 5))", "(quote (unless false 5))", ""},
			{"unless", "macro used as a value: unless", ""},
			{"(list unless)", "macro used as a value: unless", ""},
		}},
		{"unless splicing a non-list body", arestest.TestSequence{
			{"(define-macro unless (lambda (c b) `(if ,c '() ,@b)))", "<macro unless>", ""},
			{"(unless false 5)", "unexpected type: expected List (got 5)", ""},
			{"(unless false (5))", "5", ""},
			{"(unless true (5))", "()", ""},
			{"(macroexpand '(unless false (+ 1 2)))", "(if false (quote ()) + 1 2)", ""},
		}},
		{"nested expansion", arestest.TestSequence{
			{"(define-macro when (lambda (c . body) `(if ,c (begin ,@body) (list))))", "<macro when>", ""},
			{"(define-macro when-not (lambda (c . body) `(when (if ,c false true) ,@body)))", "<macro when-not>", ""},
			{"(when-not false 1 2)", "2", ""},
			{"(macroexpand '(when-not false 1))", "(if (if false false true) (begin 1) (list))", ""},
		}},
		{"runaway", arestest.TestSequence{
			{"(define-macro forever (lambda () '(forever)))", "<macro forever>", ""},
			{"(forever)", "maximum macro expansion depth exceeded: forever expanded more than 10000 times", ""},
		}},
		{"define-macro errors", arestest.TestSequence{
			{"(define-macro m 1)", "unexpected type: expected Lambda (got 1)", ""},
			{"(define-macro m (lambda (x) x))", "<macro m>", ""},
			{"(define-macro m (lambda (x) x))", "name already defined: m", ""},
		}},
	}
	arestest.RunTestSuite(t, tests)
}
