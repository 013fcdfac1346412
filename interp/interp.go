package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/tickle/expr"
	"github.com/npillmayer/tickle/runtime"
)

// DefaultMaxDepth is the default limit for nested evaluations, if not
// configured by key "tickle.maxdepth".
const DefaultMaxDepth = 1000

// Interp is a tickle interpreter. Create one with a Builder or with New.
type Interp struct {
	frames       *runtime.FrameStack
	procs        *Registry
	natives      *arraylist.List // frozen registrations, replayed by Reset
	out          io.Writer
	calc         expr.Calculator
	maxDepth     int
	depth        int // nesting of active evaluations
	resetPending bool
	source       string // name of the script evaluated at top level
	lastErr      *ScriptError
}

// registration is an entry of the frozen list of procedures.
type registration struct {
	name string
	proc Procedure
}

// New creates an interpreter with built-in procedures only.
func New() *Interp {
	intp, err := NewBuilder().Build()
	if err != nil { // cannot happen without host registrations
		panic(err)
	}
	return intp
}

// Frames returns the call stack of the interpreter.
func (intp *Interp) Frames() *runtime.FrameStack {
	return intp.frames
}

// Registry returns the procedure registry of the interpreter.
func (intp *Interp) Registry() *Registry {
	return intp.procs
}

// Output returns the writer `puts` writes to.
func (intp *Interp) Output() io.Writer {
	return intp.out
}

// Result returns the result register of the current frame.
func (intp *Interp) Result() string {
	return intp.frames.Current().Result
}

// SetResult sets the result register of the current frame.
func (intp *Interp) SetResult(r string) {
	intp.frames.Current().Result = r
}

// LastError returns the most recent script error, or nil.
func (intp *Interp) LastError() error {
	if intp.lastErr == nil {
		return nil
	}
	return intp.lastErr
}

// Reset discards all variables and all procedures, then re-installs the
// built-ins and the host procedures the interpreter has been built with.
// If Reset is called during an evaluation (e.g., from a host procedure),
// it takes effect as soon as the outermost evaluation returns.
func (intp *Interp) Reset() {
	if intp.depth > 0 {
		tracer().Infof("reset requested during evaluation, deferred")
		intp.resetPending = true
		return
	}
	intp.reset()
}

func (intp *Interp) reset() {
	intp.resetPending = false
	intp.frames.Reset()
	intp.procs.Clear()
	intp.natives.Each(func(_ int, v interface{}) {
		r := v.(registration)
		if err := intp.procs.Define(r.name, r.proc); err != nil {
			panic(err) // frozen list has been checked by the builder
		}
	})
	intp.lastErr = nil
	tracer().Debugf("interpreter reset, %d procedures", intp.procs.Len())
}

func (intp *Interp) strictControl() bool {
	return !gconf.IsSet("tickle.strict-control") || gconf.GetBool("tickle.strict-control")
}

// --- Builder ---------------------------------------------------------------

// Builder collects host registrations and settings for a new interpreter.
// The first error encountered sticks and is returned by Build.
type Builder struct {
	regs     *arraylist.List
	names    map[string]bool
	out      io.Writer
	calc     expr.Calculator
	maxDepth int
	err      error
}

// NewBuilder creates a builder for an interpreter, pre-loaded with the
// built-in procedures.
func NewBuilder() *Builder {
	b := &Builder{
		regs:  arraylist.New(),
		names: make(map[string]bool),
	}
	for _, name := range builtinNames() {
		b.Proc(name, builtins[name])
	}
	return b
}

// Bind registers a Go function as a native procedure. See Native for the
// function signatures supported.
func (b *Builder) Bind(name string, fn interface{}) *Builder {
	if b.err != nil {
		return b
	}
	n, err := NewNative(name, fn)
	if err != nil {
		b.err = err
		return b
	}
	return b.Proc(name, n)
}

// Proc registers a host procedure.
func (b *Builder) Proc(name string, p Procedure) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" || p == nil {
		b.err = fmt.Errorf("illegal procedure registration for name '%s'", name)
		return b
	}
	if b.names[name] {
		b.err = fmt.Errorf("procedure of name '%s' already exists", name)
		return b
	}
	b.names[name] = true
	b.regs.Add(registration{name: name, proc: p})
	return b
}

// Output sets the writer for `puts`. Default is os.Stdout.
func (b *Builder) Output(w io.Writer) *Builder {
	b.out = w
	return b
}

// MaxDepth limits the nesting of evaluations (procedure calls, command
// substitutions and control structures).
func (b *Builder) MaxDepth(n int) *Builder {
	b.maxDepth = n
	return b
}

// Calculator replaces the default expression evaluator.
func (b *Builder) Calculator(c expr.Calculator) *Builder {
	b.calc = c
	return b
}

// Build creates the interpreter. It returns the first registration error,
// if any.
func (b *Builder) Build() (*Interp, error) {
	if b.err != nil {
		return nil, b.err
	}
	intp := &Interp{
		frames:   runtime.NewFrameStack(),
		procs:    NewRegistry(),
		natives:  arraylist.New(),
		out:      b.out,
		calc:     b.calc,
		maxDepth: b.maxDepth,
	}
	b.regs.Each(func(_ int, v interface{}) {
		intp.natives.Add(v)
	})
	if intp.out == nil {
		intp.out = os.Stdout
	}
	if intp.calc == nil {
		intp.calc = expr.New()
	}
	if intp.maxDepth <= 0 {
		intp.maxDepth = gconf.GetInt("tickle.maxdepth")
		if intp.maxDepth <= 0 {
			intp.maxDepth = DefaultMaxDepth
		}
	}
	intp.reset()
	return intp, nil
}
