package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.cli")
	defer teardown()
	//
	out := &bytes.Buffer{}
	sh, err := NewShell(out)
	require.NoError(t, err)
	require.NoError(t, sh.Eval("input::bind2 w {puts down} {puts up}; key w 1; key w 0"))
	assert.Equal(t, "down\nup\n", out.String())
	require.NoError(t, sh.Eval("mouse 3 4; set p [input::mouseX],[input::mouseY]"))
	p, _ := sh.intp.Frames().Globals().Get("p")
	assert.Equal(t, "3,4", p)
	assert.Error(t, sh.Eval("key w maybe"))
}

func TestShellReset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.cli")
	defer teardown()
	//
	dir := t.TempDir()
	initFile := filepath.Join(dir, "init.tcl")
	require.NoError(t, os.WriteFile(initFile, []byte("proc hello {} {return hi}\nset loaded 1\n"), 0644))
	sh, err := NewShell(&bytes.Buffer{})
	require.NoError(t, err)
	sh.initFile = initFile
	sh.loadInitFile()
	require.NoError(t, sh.Eval("input::bind a {puts a}; set extra 1"))
	assert.False(t, sh.meta(":reset"))
	_, ok := sh.intp.Frames().Globals().Get("extra")
	assert.False(t, ok)
	_, ok = sh.intp.Frames().Globals().Get("loaded")
	assert.True(t, ok)
	assert.True(t, sh.intp.Registry().Has("hello"))
	assert.Equal(t, 0, sh.keys.Len())
	assert.True(t, sh.meta(":quit"))
}

func TestShellTables(t *testing.T) {
	sh, err := NewShell(&bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, sh.Eval("proc f {a b} {}; set z 1; set a 2"))
	procs := sh.procTable()
	kinds := make(map[string]string)
	for _, row := range procs[1:] {
		kinds[row[0]] = row[1]
	}
	assert.Equal(t, "proc", kinds["f"])
	assert.Equal(t, "native", kinds["input::bind"])
	assert.Equal(t, "host", kinds["key"])
	assert.Equal(t, "built-in", kinds["while"])
	assert.Equal(t, [][]string{{"Variable", "Value"}, {"a", "2"}, {"z", "1"}}, sh.varTable())
}

func TestRunFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.cli")
	defer teardown()
	//
	dir := t.TempDir()
	good := filepath.Join(dir, "good.tcl")
	bad := filepath.Join(dir, "bad.tcl")
	require.NoError(t, os.WriteFile(good, []byte("set i 0\nwhile {$i < 3} {\n  incr i\n}\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("set a 1\n\nnosuchproc $a\n"), 0644))
	sh, err := NewShell(&bytes.Buffer{})
	require.NoError(t, err)
	assert.NoError(t, sh.RunFile(good))
	err = sh.RunFile(bad)
	require.Error(t, err)
	assert.Equal(t, "bad.tcl:3: could not find procedure 'nosuchproc'", err.Error())
	assert.Error(t, sh.RunFile(filepath.Join(dir, "missing.tcl")))
}
