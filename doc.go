/*
Package tickle is a small embeddable command language.

Tickle binds actions of a host application to named functions, so that key
bindings, configuration steps or gameplay commands may be written as text
scripts and changed without recompiling the host. The language is Tcl-flavoured:
every statement is a list of words, the first word names a procedure, and
everything is a string.

    set speed 5
    proc faster {n} { expr $n * 2 }
    input::bind space {puts "jump at [faster $speed]"}

Package structure is as follows:

■ scanner: Package scanner splits script text into tokens.

■ runtime: Package runtime provides call frames and symbol tables for variables.

■ interp: Package interp implements the evaluator, the procedure registry,
the built-in procedures and the adapter for native Go functions.

■ expr: Package expr evaluates arithmetic and comparison expressions for the
built-ins `expr`, `if` and `while`.

■ keymap: Package keymap is an example host subsystem, binding key names to scripts.

■ cmd/tickle: Command tickle runs scripts and provides an interactive shell.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tickle
