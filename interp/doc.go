/*
Package interp implements the tickle interpreter.

An interpreter evaluates script text directly, statement by statement. Each
statement is split into words by the scanner, variable references ($name) and
command substitutions ([cmd ...]) are replaced by their values, and the first
word is looked up in the procedure registry. The procedure receives all words
(including its own name) as strings.

Procedures come in three flavours:

■ built-ins like `set`, `proc`, `if` and `while`, which are part of every interpreter,

■ native procedures, which wrap plain Go functions with primitive parameters,

■ defined procedures, created by scripts with `proc`.

Interpreters are created with a builder, which is the only place where hosts
register native functions:

    intp, err := interp.NewBuilder().
        Bind("world:createEmpty", world.CreateEmpty).
        Bind("player::setName", player.SetName).
        Output(os.Stdout).
        Build()
    ...
    result, err := intp.Eval(script)

The list of registrations is frozen when the interpreter is built. Reset drops
all variables and script-defined procedures and re-installs the frozen list,
which lets hosts reload scripts without restarting.

Return Codes

Every evaluation step yields a return code: OK, Error, Return, Break or
Continue. Codes other than OK abort the current script fragment and travel
upwards until a construct interprets them: `while` consumes Break and Continue,
procedure invocation consumes Return. Error is never intercepted by built-ins
and aborts the whole script; its message is available from the interpreter.

Concurrency

An interpreter is strictly single-threaded. Hosts running scripts on
multiple goroutines have to create one interpreter per goroutine.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package interp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tickle.interp'.
func tracer() tracing.Trace {
	return tracing.Select("tickle.interp")
}
