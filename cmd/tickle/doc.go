/*
Command tickle runs tickle scripts, or provides an interactive shell for
experimenting with the language.

Usage:

    tickle [flags] [script files...]

    -trace Debug|Info|Error   trace level for all tickle packages
    -init  file               script to evaluate before anything else
    -config file              YAML configuration file
    -e     script             evaluate script and exit

Without script files and without -e, tickle starts an interactive shell.
Input lines with open braces, brackets or quotes are continued on the next
line. Lines starting with a colon are shell commands:

    :reset   discard all procedures and variables, then reload the init file
    :procs   list procedures
    :vars    list global variables
    :help    list shell commands
    :quit    leave the shell

The shell knows the input bindings of package keymap. `key name 1` and
`key name 0` simulate key transitions, `mouse x y` moves the mouse.

Configuration

A configuration file may set

    tracing:
      adapter: go
    tracelevel:
      tickle.interp: Debug
    tickle:
      maxdepth: 500
      strict-control: true
    repl:
      history: /tmp/tickle.history

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tickle.cli'
func tracer() tracing.Trace {
	return tracing.Select("tickle.cli")
}
