package interp

import (
	"fmt"
	"strings"

	"github.com/npillmayer/tickle"
	"github.com/npillmayer/tickle/scanner"
)

// Eval evaluates a script at top level. It returns the script's result or a
// *ScriptError. A script may end with `return`, which is normal completion.
// `break` and `continue` outside of a loop are errors, unless key
// "tickle.strict-control" is configured to false.
//
// Host procedures may call Eval for scripts which should complete on their
// own, e.g. callbacks; it then evaluates in the current call frame.
func (intp *Interp) Eval(script string) (string, error) {
	return intp.EvalSource("", script)
}

// EvalSource is Eval for a script read from a named source, e.g. a file.
// Error messages are prefixed with the source name and the line of the
// failing top-level statement.
func (intp *Interp) EvalSource(name, script string) (string, error) {
	intp.lastErr = nil
	if intp.depth == 0 {
		intp.source = name
		defer func() { intp.source = "" }()
	}
	code := intp.evaluate(script)
	result, err := intp.complete(code)
	intp.settle()
	return result, err
}

// complete maps the return code of a script evaluated on its own to a result
// or an error.
func (intp *Interp) complete(code Code) (string, error) {
	switch code {
	case OK, Return:
		return intp.Result(), nil
	case Break, Continue:
		if !intp.strictControl() {
			return intp.Result(), nil
		}
		intp.Fail(MisplacedControl, "invoked \"%s\" outside of a loop", keyword(code))
	}
	return "", intp.failure()
}

// Evaluate evaluates a script fragment in the current call frame. It is the
// primitive underlying procedure bodies, loop bodies and command substitution,
// and host procedures may call it as well.
//
// For code Error the string returned is the error message, for all other codes
// it is the content of the result register.
func (intp *Interp) Evaluate(script string) (Code, string) {
	code := intp.evaluate(script)
	var s string
	if code == Error {
		s = intp.failure().Msg
	} else {
		s = intp.Result()
	}
	intp.settle()
	return code, s
}

// settle carries out a reset requested during evaluation, as soon as the
// outermost evaluation has returned. The error of that evaluation is kept.
func (intp *Interp) settle() {
	if intp.depth > 0 || !intp.resetPending {
		return
	}
	err := intp.lastErr
	intp.reset()
	intp.lastErr = err
}

// evaluate runs a script statement by statement. Words of a statement are
// collected from the tokens, with variables and commands substituted. Tokens
// not separated by whitespace are concatenated into a single word.
func (intp *Interp) evaluate(script string) Code {
	intp.depth++
	defer func() { intp.depth-- }()
	if intp.depth > intp.maxDepth {
		return intp.Fail(StackOverflow, "too many nested evaluations (infinite recursion?), limit is %d",
			intp.maxDepth)
	}
	intp.SetResult("")
	var opts []scanner.Option
	opts = append(opts, scanner.ErrorHandler(func(err error) {
		tracer().Debugf("%v", err)
	}))
	var stmt tickle.Span // of the current statement
	located := intp.depth == 1 && intp.source != ""
	if located {
		opts = append(opts, scanner.SourceID(intp.source))
	}
	failed := func(code Code) Code {
		if code == Error && located {
			intp.locate(script, stmt)
		}
		return code
	}
	sc := scanner.New(script, opts...)
	var words []string
	newWord := true
	for {
		token := sc.Next()
		var value string
		switch token.Kind {
		case scanner.Separator:
			newWord = true
			continue
		case scanner.EndOfLine, scanner.EndOfFile:
			if len(words) > 0 {
				if code := intp.invoke(words); code != OK {
					return failed(code)
				}
				words = nil
			}
			if token.Kind == scanner.EndOfFile {
				return OK
			}
			stmt = tickle.Span{}
			newWord = true
			continue
		}
		if stmt.IsNull() {
			stmt = token.Pos
		} else {
			stmt = stmt.Extend(token.Pos)
		}
		switch token.Kind {
		case scanner.Variable:
			v, ok := intp.frames.Current().Get(token.Text)
			if !ok {
				return failed(intp.Fail(UndefinedVariable, "could not locate variable '%s'", token.Text))
			}
			value = v
		case scanner.Command:
			if code := intp.evaluate(token.Text); code != OK {
				return failed(code)
			}
			value = intp.Result()
		default: // String, Escaped
			value = token.Text
		}
		if newWord || len(words) == 0 {
			words = append(words, value)
		} else {
			words[len(words)-1] += value
		}
		newWord = false
	}
}

// locate prefixes the current error message with the source name and the
// line of a statement.
func (intp *Interp) locate(script string, stmt tickle.Span) {
	err := intp.failure()
	from, to := int(stmt.From()), int(stmt.To())
	if to > len(script) {
		to = len(script)
	}
	if from > to {
		from = to
	}
	line := 1 + strings.Count(script[:from], "\n")
	tracer().P("source", intp.source).Debugf("line %d: %q", line, script[from:to])
	err.Msg = fmt.Sprintf("%s:%d: %s", intp.source, line, err.Msg)
}

// invoke calls the procedure named by the first word of a statement.
func (intp *Interp) invoke(words []string) Code {
	proc, ok := intp.procs.Lookup(words[0])
	if !ok {
		return intp.Fail(UnknownProcedure, "could not find procedure '%s'", words[0])
	}
	tracer().Debugf("call %q", words)
	intp.lastErr = nil
	code := proc.Call(intp, words)
	if code == Error && intp.lastErr == nil {
		intp.Fail(UserError, "procedure '%s' failed", words[0])
	}
	return code
}
