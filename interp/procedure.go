package interp

import (
	"fmt"
	"strings"
)

// Code is the return code of an evaluation step.
type Code int8

// Return codes. Everything but OK aborts the current script fragment.
const (
	OK Code = iota
	Error
	Return
	Break
	Continue
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case Error:
		return "ERROR"
	case Return:
		return "RETURN"
	case Break:
		return "BREAK"
	case Continue:
		return "CONTINUE"
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Procedure is the contract for everything callable from a script.
// args[0] is the name the procedure has been invoked with. A procedure
// communicates its result through the interpreter's result register
// (SetResult) and reports failures with Fail.
type Procedure interface {
	Call(intp *Interp, args []string) Code
}

// ProcFunc is an adapter to use ordinary functions as procedures.
type ProcFunc func(intp *Interp, args []string) Code

// Call calls f(intp, args).
func (f ProcFunc) Call(intp *Interp, args []string) Code {
	return f(intp, args)
}

// Defined is a procedure defined by a script, using `proc`.
type Defined struct {
	Name   string
	Params []string
	Body   string
}

func (d *Defined) String() string {
	return fmt.Sprintf("proc %s {%s} {…}", d.Name, strings.Join(d.Params, " "))
}

// Call binds the arguments to the parameters in a fresh call frame and
// evaluates the body. The frame's result is handed to the caller's frame,
// no matter how the body completes.
func (d *Defined) Call(intp *Interp, args []string) (code Code) {
	if len(args)-1 != len(d.Params) {
		return intp.Fail(ArityMismatch,
			"wrong number of arguments to procedure '%s': expected %d, got %d",
			d.Name, len(d.Params), len(args)-1)
	}
	frame := intp.frames.Push(d.Name)
	for i, p := range d.Params {
		frame.Set(p, args[i+1])
	}
	defer func() {
		f := intp.frames.Pop()
		intp.frames.Current().Result = f.Result
	}()
	code, _ = intp.Evaluate(d.Body)
	switch code {
	case Return:
		code = OK
	case Break, Continue:
		if intp.strictControl() {
			code = intp.Fail(MisplacedControl,
				"invoked \"%s\" outside of a loop in procedure '%s'", keyword(code), d.Name)
		} else {
			code = OK
		}
	}
	return code
}

func keyword(code Code) string {
	return strings.ToLower(code.String())
}
