package interp

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/tickle/expr"
	"github.com/npillmayer/tickle/runtime"
)

// builtins are the procedures every interpreter knows.
var builtins = map[string]ProcFunc{
	"set":      builtinSet,
	"unset":    builtinUnset,
	"proc":     builtinProc,
	"if":       builtinIf,
	"while":    builtinWhile,
	"return":   builtinReturn,
	"break":    builtinBreak,
	"continue": builtinContinue,
	"error":    builtinError,
	"eval":     builtinEval,
	"expr":     builtinExpr,
	"incr":     builtinIncr,
	"puts":     builtinPuts,
	"info":     builtinInfo,
}

// IsBuiltin is a predicate: is name the name of a built-in procedure?
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func builtinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// set name ?value?
func builtinSet(intp *Interp, args []string) Code {
	frame := intp.frames.Current()
	switch len(args) {
	case 2:
		v, ok := frame.Get(args[1])
		if !ok {
			return intp.Fail(UndefinedVariable, "could not locate variable '%s'", args[1])
		}
		intp.SetResult(v)
	case 3:
		frame.Set(args[1], args[2])
		intp.SetResult(args[2])
	default:
		return intp.arityError(args[0])
	}
	return OK
}

// unset name
func builtinUnset(intp *Interp, args []string) Code {
	if len(args) != 2 {
		return intp.arityError(args[0])
	}
	if !intp.frames.Current().Unset(args[1]) {
		return intp.Fail(UndefinedVariable, "could not locate variable '%s'", args[1])
	}
	intp.SetResult("")
	return OK
}

// proc name params body
func builtinProc(intp *Interp, args []string) Code {
	if len(args) != 4 {
		return intp.arityError(args[0])
	}
	name := args[1]
	if name == "" {
		return intp.Fail(UserError, "procedure 'proc' needs a non-empty name")
	}
	if intp.procs.Has(name) {
		return intp.Fail(ProcedureRedefinition, "procedure of name '%s' already exists", name)
	}
	d := &Defined{
		Name:   name,
		Params: strings.Fields(args[2]),
		Body:   args[3],
	}
	if err := intp.procs.Define(name, d); err != nil {
		return intp.Fail(ProcedureRedefinition, "%v", err)
	}
	tracer().Debugf("defined %s", d)
	intp.SetResult("")
	return OK
}

// if cond then ?else elsebranch?
func builtinIf(intp *Interp, args []string) Code {
	if len(args) != 3 && len(args) != 5 {
		return intp.arityError(args[0])
	}
	if len(args) == 5 && args[3] != "else" {
		return intp.Fail(ArityMismatch, "expected 'else' in procedure 'if', got '%s'", args[3])
	}
	ok, code := intp.test(args[1])
	if code != OK {
		return code
	}
	if ok {
		code, _ = intp.Evaluate(args[2])
		return code
	}
	if len(args) == 5 {
		code, _ = intp.Evaluate(args[4])
		return code
	}
	intp.SetResult("")
	return OK
}

// while cond body
func builtinWhile(intp *Interp, args []string) Code {
	if len(args) != 3 {
		return intp.arityError(args[0])
	}
	for {
		ok, code := intp.test(args[1])
		if code != OK {
			return code
		}
		if !ok {
			break
		}
		code, _ = intp.Evaluate(args[2])
		switch code {
		case OK, Continue:
			continue
		case Break:
		default:
			return code
		}
		break
	}
	intp.SetResult("")
	return OK
}

// test evaluates a condition of `if` or `while`. A condition starting with
// the name of a procedure is run as a script, everything else is handed
// to `expr`.
func (intp *Interp) test(cond string) (bool, Code) {
	script := cond
	if w := strings.Fields(cond); len(w) == 0 || !intp.procs.Has(w[0]) {
		script = "expr " + cond
	}
	code, result := intp.Evaluate(script)
	if code != OK {
		return false, code
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(result), 64)
	if err != nil {
		return false, intp.Fail(ExpressionError, "condition {%s} yields non-numeric result '%s'", cond, result)
	}
	return expr.Truthy(v), OK
}

// return ?value?
func builtinReturn(intp *Interp, args []string) Code {
	switch len(args) {
	case 1:
		intp.SetResult("")
	case 2:
		intp.SetResult(args[1])
	default:
		return intp.arityError(args[0])
	}
	return Return
}

func builtinBreak(intp *Interp, args []string) Code {
	if len(args) != 1 {
		return intp.arityError(args[0])
	}
	return Break
}

func builtinContinue(intp *Interp, args []string) Code {
	if len(args) != 1 {
		return intp.arityError(args[0])
	}
	return Continue
}

// error message
func builtinError(intp *Interp, args []string) Code {
	if len(args) != 2 {
		return intp.arityError(args[0])
	}
	return intp.Fail(UserError, "%s", args[1])
}

// eval arg ?arg ...?
func builtinEval(intp *Interp, args []string) Code {
	if len(args) < 2 {
		return intp.arityError(args[0])
	}
	code, _ := intp.Evaluate(strings.Join(args[1:], " "))
	return code
}

// expr arg ?arg ...?
func builtinExpr(intp *Interp, args []string) Code {
	if len(args) < 2 {
		return intp.arityError(args[0])
	}
	v, err := intp.calc.Calculate(strings.Join(args[1:], " "))
	if err != nil {
		return intp.Fail(ExpressionError, "%v", err)
	}
	intp.SetResult(expr.Format(v))
	return OK
}

// incr name ?delta?
func builtinIncr(intp *Interp, args []string) Code {
	if len(args) != 2 && len(args) != 3 {
		return intp.arityError(args[0])
	}
	frame := intp.frames.Current()
	v, ok := frame.Get(args[1])
	if !ok {
		return intp.Fail(UndefinedVariable, "could not locate variable '%s'", args[1])
	}
	n, err := strictInt(v)
	if err != nil {
		return intp.Fail(ConversionError, "variable '%s': %v", args[1], err)
	}
	delta := int64(1)
	if len(args) == 3 {
		if delta, err = strictInt(args[2]); err != nil {
			return intp.Fail(ConversionError, "increment: %v", err)
		}
	}
	r := strconv.FormatInt(n+delta, 10)
	frame.Set(args[1], r)
	intp.SetResult(r)
	return OK
}

// strictInt parses an integer, either in decimal notation or as a number
// without fractional part (as produced by `expr`).
func strictInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
		return 0, fmt.Errorf("expected integer but got '%s'", s)
	}
	return int64(f), nil
}

// puts ?arg ...?
func builtinPuts(intp *Interp, args []string) Code {
	if _, err := fmt.Fprintln(intp.out, strings.Join(args[1:], " ")); err != nil {
		return intp.Fail(UserError, "puts: %v", err)
	}
	intp.SetResult("")
	return OK
}

// info exists name | info procs | info vars | info level
func builtinInfo(intp *Interp, args []string) Code {
	if len(args) < 2 {
		return intp.arityError(args[0])
	}
	switch args[1] {
	case "exists":
		if len(args) != 3 {
			return intp.arityError("info exists")
		}
		_, ok := intp.frames.Current().Get(args[2])
		intp.SetResult(boolString(ok))
	case "procs":
		if len(args) != 2 {
			return intp.arityError("info procs")
		}
		intp.SetResult(strings.Join(intp.procs.Names(), " "))
	case "vars":
		if len(args) != 2 {
			return intp.arityError("info vars")
		}
		var names []string
		intp.frames.Current().Vars.Each(func(name string, _ *runtime.Tag) {
			names = append(names, name)
		})
		sort.Strings(names)
		intp.SetResult(strings.Join(names, " "))
	case "level":
		if len(args) != 2 {
			return intp.arityError("info level")
		}
		intp.SetResult(strconv.Itoa(intp.frames.Depth() - 1))
	default:
		return intp.Fail(UserError, "unknown subcommand 'info %s', must be one of exists, procs, vars, level", args[1])
	}
	return OK
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
