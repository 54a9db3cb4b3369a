// Copyright © 2018 The ELPS authors

package lisp

type frameKind uint8

const (
	// stepEvalThis evaluates value.  When head is set the value is in the
	// operator position of a call.
	stepEvalThis frameKind = iota
	// stepReturn brackets one logical Eval or Apply.
	stepReturn
	// stepComplete carries a finished value to the frame below it.
	stepComplete
	// stepPreEvaluatedCallable waits for the operator of a call.  remaining
	// holds the raw argument expressions.
	stepPreEvaluatedCallable
	// stepArgCollecting evaluates the arguments of value (a procedure or an
	// eager foreign function) one at a time.
	stepArgCollecting
	// stepEvaluatingLambda evaluates the remaining bodies of a procedure,
	// discarding every value except the last.
	stepEvaluatingLambda
	// stepPopEnv restores env once the value above it completes.
	stepPopEnv
)

var frameKindStrings = []string{
	stepEvalThis:             "eval-this",
	stepReturn:               "return",
	stepComplete:             "complete",
	stepPreEvaluatedCallable: "pre-evaluated-callable",
	stepArgCollecting:        "arg-collecting",
	stepEvaluatingLambda:     "evaluating-lambda",
	stepPopEnv:               "pop-env",
}

func (k frameKind) String() string {
	if int(k) >= len(frameKindStrings) {
		return "invalid"
	}
	return frameKindStrings[k]
}

type frame struct {
	kind      frameKind
	value     Value
	head      bool
	remaining []Value
	args      []Value
	name      string
	env       *Env
	done      func()
}

func (ev *Evaluator) push(f frame) {
	ev.stack = append(ev.stack, f)
}

func (ev *Evaluator) pushEval(v Value, head bool) {
	ev.stack = append(ev.stack, frame{kind: stepEvalThis, value: v, head: head})
}

func (ev *Evaluator) pushComplete(v Value) {
	ev.stack = append(ev.stack, frame{kind: stepComplete, value: v})
}

// popTo truncates the stack to height n.
func (ev *Evaluator) popTo(n int) {
	clear(ev.stack[n:])
	ev.stack = ev.stack[:n]
}

// pushScope makes env current until the value computed above the new frame
// completes.  A scope entered directly on top of another restoring frame
// needs no frame of its own, which keeps tail calls from growing the stack.
func (ev *Evaluator) pushScope(env *Env, done func()) {
	n := len(ev.stack)
	if done != nil || n == 0 || ev.stack[n-1].kind != stepPopEnv {
		ev.push(frame{kind: stepPopEnv, env: ev.env, done: done})
	}
	ev.env = env
}

// pushBodies evaluates bodies in sequence.  The last body is evaluated with
// no frame of its own.
func (ev *Evaluator) pushBodies(bodies []Value, name string) {
	if len(bodies) > 1 {
		ev.push(frame{kind: stepEvaluatingLambda, remaining: bodies[1:], name: name})
	}
	ev.pushEval(bodies[0], false)
}
