package main

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"flag"
	"os"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// traceKeys are the tracers of the tickle packages.
var traceKeys = []string{
	"tickle.scanner", "tickle.runtime", "tickle.interp",
	"tickle.expr", "tickle.keymap", "tickle.cli",
}

// main() runs script files given as arguments, or starts an interactive
// shell.
func main() {
	initDisplay()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	conff := flag.String("config", "", "Configuration file (YAML)")
	script := flag.String("e", "", "Evaluate script and exit")
	flag.Parse()
	if err := initConfig(*conff, *tlevel); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	//
	sh, err := NewShell(os.Stdout)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	sh.initFile = *initf
	sh.loadInitFile()
	switch {
	case *script != "":
		if sh.Eval(*script) != nil {
			os.Exit(1)
		}
	case flag.NArg() > 0:
		for _, filename := range flag.Args() {
			if err := sh.RunFile(filename); err != nil {
				pterm.Error.Println(err.Error())
				os.Exit(1)
			}
		}
	default:
		pterm.Info.Println("Welcome to tickle")
		if err := sh.REPL(); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(3)
		}
	}
}

// initConfig sets up global configuration and tracing. Tracers not
// configured explicitly get the trace level given by the command line.
func initConfig(filename string, level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := newConfig()
	if filename != "" {
		var err error
		if conf, err = loadConfigFile(filename); err != nil {
			return err
		}
	}
	for _, key := range traceKeys {
		if k := "tracelevel." + key; !conf.IsSet(k) {
			conf.Set(k, level)
		}
	}
	gconf.Initialize(conf)
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
