package interp

import "fmt"

// ErrorKind classifies script errors.
type ErrorKind int8

// Kinds of errors a script may run into.
const (
	UndefinedVariable ErrorKind = iota + 1
	UnknownProcedure
	ArityMismatch
	ProcedureRedefinition
	UserError       // raised by `error` or reported by host procedures
	ExpressionError // from the expression evaluator
	ConversionError // argument of a native procedure malformed
	MisplacedControl
	StackOverflow
)

var errorKindNames = map[ErrorKind]string{
	UndefinedVariable:     "UndefinedVariable",
	UnknownProcedure:      "UnknownProcedure",
	ArityMismatch:         "ArityMismatch",
	ProcedureRedefinition: "ProcedureRedefinition",
	UserError:             "UserError",
	ExpressionError:       "ExpressionError",
	ConversionError:       "ConversionError",
	MisplacedControl:      "MisplacedControl",
	StackOverflow:         "StackOverflow",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ScriptError is the error type for failed script evaluations.
type ScriptError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ScriptError) Error() string {
	return e.Msg
}

// Is lets errors.Is match a ScriptError against one of the sentinel errors,
// comparing kinds only.
func (e *ScriptError) Is(target error) bool {
	t, ok := target.(*ScriptError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

// Sentinel errors, usable with errors.Is.
var (
	ErrUndefinedVariable     = &ScriptError{Kind: UndefinedVariable}
	ErrUnknownProcedure      = &ScriptError{Kind: UnknownProcedure}
	ErrArityMismatch         = &ScriptError{Kind: ArityMismatch}
	ErrProcedureRedefinition = &ScriptError{Kind: ProcedureRedefinition}
	ErrUser                  = &ScriptError{Kind: UserError}
	ErrExpression            = &ScriptError{Kind: ExpressionError}
	ErrConversion            = &ScriptError{Kind: ConversionError}
	ErrMisplacedControl      = &ScriptError{Kind: MisplacedControl}
	ErrStackOverflow         = &ScriptError{Kind: StackOverflow}
)

// Fail records an error, reports it to the diagnostic trace and returns Error.
// Procedures use it as
//
//    return intp.Fail(interp.UserError, "cannot open %q", name)
//
func (intp *Interp) Fail(kind ErrorKind, format string, args ...interface{}) Code {
	intp.lastErr = &ScriptError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
	tracer().P("kind", kind).Errorf("script error: %s", intp.lastErr.Msg)
	return Error
}

// failure returns the error recorded for the most recent Error code. A
// procedure may return Error without calling Fail, which is reported as a
// user error.
func (intp *Interp) failure() *ScriptError {
	if intp.lastErr == nil {
		intp.lastErr = &ScriptError{Kind: UserError, Msg: "unknown error"}
	}
	return intp.lastErr
}

func (intp *Interp) arityError(name string) Code {
	return intp.Fail(ArityMismatch, "wrong number of arguments to procedure '%s'", name)
}
