package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/tickle/interp"
	"github.com/npillmayer/tickle/keymap"
	"github.com/npillmayer/tickle/runtime"
	"github.com/pterm/pterm"
)

const (
	prompt     = "tickle> "
	contPrompt = "   ...> "
)

// Shell holds an interpreter together with the host subsystems it exposes.
type Shell struct {
	intp     *interp.Interp
	keys     *keymap.Map
	repl     *readline.Instance
	initFile string
}

// NewShell creates an interpreter with the keymap natives and the shell's
// host procedures. Script output goes to out.
func NewShell(out io.Writer) (*Shell, error) {
	sh := &Shell{keys: keymap.New()}
	b := interp.NewBuilder().Output(out)
	sh.keys.Register(b)
	b.Proc("key", interp.ProcFunc(sh.key))
	b.Bind("mouse", sh.keys.SetMousePos)
	intp, err := b.Build()
	if err != nil {
		return nil, err
	}
	sh.intp = intp
	return sh, nil
}

// key name down: simulate a key transition.
func (sh *Shell) key(intp *interp.Interp, args []string) interp.Code {
	if len(args) != 3 {
		return intp.Fail(interp.ArityMismatch, "usage: key name down")
	}
	down, err := strconv.ParseBool(args[2])
	if err != nil {
		return intp.Fail(interp.ConversionError, "key: not a boolean: '%s'", args[2])
	}
	if err := sh.keys.Key(intp, args[1], down); err != nil {
		return interp.Error
	}
	intp.SetResult("")
	return interp.OK
}

// Eval evaluates a script and prints its result or error.
func (sh *Shell) Eval(script string) error {
	result, err := sh.intp.Eval(script)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	if result != "" {
		pterm.Info.Println(result)
	}
	return nil
}

// RunFile evaluates a script file.
func (sh *Shell) RunFile(filename string) error {
	script, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("cannot read script: %w", err)
	}
	tracer().Infof("running %s", filename)
	_, err = sh.intp.EvalSource(filepath.Base(filename), string(script))
	return err
}

func (sh *Shell) loadInitFile() {
	if sh.initFile == "" {
		return
	}
	if err := sh.RunFile(sh.initFile); err != nil {
		tracer().Errorf("init file: %v", err)
		pterm.Error.Println(err.Error())
	}
}

// REPL starts interactive mode.
func (sh *Shell) REPL() error {
	completer := readline.NewPrefixCompleter(
		readline.PcItem(":reset"),
		readline.PcItem(":procs"),
		readline.PcItem(":vars"),
		readline.PcItem(":help"),
		readline.PcItem(":quit"),
		readline.PcItemDynamic(func(string) []string {
			return sh.intp.Registry().Names()
		}),
	)
	repl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     gconf.GetString("repl.history"),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return err
	}
	defer repl.Close()
	sh.repl = repl
	tracer().Infof("Quit with <ctrl>D")
	var input strings.Builder
	for {
		line, err := repl.Readline()
		if err == readline.ErrInterrupt {
			input.Reset()
			repl.SetPrompt(prompt)
			continue
		} else if err != nil { // io.EOF
			break
		}
		if input.Len() == 0 {
			cmd := strings.TrimSpace(line)
			if cmd == "" {
				continue
			}
			if strings.HasPrefix(cmd, ":") {
				if quit := sh.meta(cmd); quit {
					break
				}
				continue
			}
		}
		input.WriteString(line)
		input.WriteByte('\n')
		if ok, err := balanced(input.String()); err == nil && !ok {
			repl.SetPrompt(contPrompt)
			continue
		}
		repl.SetPrompt(prompt)
		sh.Eval(input.String())
		input.Reset()
	}
	pterm.Info.Println("Good bye!")
	return nil
}

// meta executes a shell command. It returns true if the shell should quit.
func (sh *Shell) meta(cmd string) bool {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":reset":
		sh.intp.Reset()
		sh.keys.Clear()
		sh.loadInitFile()
		pterm.Info.Println("interpreter reset")
	case ":procs":
		pterm.DefaultTable.WithHasHeader().WithData(sh.procTable()).Render()
	case ":vars":
		pterm.DefaultTable.WithHasHeader().WithData(sh.varTable()).Render()
	case ":help":
		pterm.Info.Println(":reset  :procs  :vars  :help  :quit")
	default:
		pterm.Error.Printf("unknown shell command %s\n", cmd)
	}
	return false
}

func (sh *Shell) procTable() [][]string {
	data := [][]string{{"Procedure", "Kind", "Signature"}}
	sh.intp.Registry().Each(func(name string, p interp.Procedure) {
		switch proc := p.(type) {
		case *interp.Defined:
			data = append(data, []string{name, "proc", strings.Join(proc.Params, " ")})
		case *interp.Native:
			data = append(data, []string{name, "native", fmt.Sprintf("%d args", proc.Arity())})
		default:
			kind := "host"
			if interp.IsBuiltin(name) {
				kind = "built-in"
			}
			data = append(data, []string{name, kind, ""})
		}
	})
	return data
}

func (sh *Shell) varTable() [][]string {
	data := [][]string{{"Variable", "Value"}}
	var rows [][]string
	sh.intp.Frames().Globals().Vars.Each(func(name string, tag *runtime.Tag) {
		rows = append(rows, []string{name, tag.Value})
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return append(data, rows...)
}
