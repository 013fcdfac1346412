package keymap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tickle/interp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyBindings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.keymap")
	defer teardown()
	//
	m := New()
	out := &bytes.Buffer{}
	intp, err := m.Register(interp.NewBuilder().Output(out)).Build()
	require.NoError(t, err)
	_, err = intp.Eval(`
		input::bind space {puts jump}
		input::bind2 w {puts walk} {puts stop}
		input::bind x {error broken}
	`)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())
	//
	require.NoError(t, m.Key(intp, "space", true))
	require.NoError(t, m.Key(intp, "space", false)) // no up script
	require.NoError(t, m.Key(intp, "w", true))
	require.NoError(t, m.Key(intp, "w", false))
	require.NoError(t, m.Key(intp, "q", true)) // unbound
	assert.Equal(t, "jump\nwalk\nstop\n", out.String())
	assert.Error(t, m.Key(intp, "x", true))
	//
	m.Clear()
	assert.Equal(t, 0, m.Len())
	_, ok := m.Lookup("space")
	assert.False(t, ok)
}

func TestBindingsCompleteOnTheirOwn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.keymap")
	defer teardown()
	//
	m := New()
	out := &bytes.Buffer{}
	intp, err := m.Register(interp.NewBuilder().Output(out)).Build()
	require.NoError(t, err)
	_, err = intp.Eval(`
		input::bind r {return done; puts unreachable}
		input::bind b {break}
		input::bind c {continue}
	`)
	require.NoError(t, err)
	assert.NoError(t, m.Key(intp, "r", true))
	assert.Equal(t, "", out.String())
	err = m.Key(intp, "b", true)
	assert.True(t, errors.Is(err, interp.ErrMisplacedControl), "got %v", err)
	err = m.Key(intp, "c", true)
	assert.True(t, errors.Is(err, interp.ErrMisplacedControl), "got %v", err)
}

func TestRebind(t *testing.T) {
	m := New()
	intp, err := m.Register(interp.NewBuilder()).Build()
	require.NoError(t, err)
	_, err = intp.Eval("input::bind2 a {set d 1} {set u 1}; input::bind a {set d 2}")
	require.NoError(t, err)
	b, ok := m.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, Binding{Down: "set d 2"}, b)
}

func TestMousePosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.keymap")
	defer teardown()
	//
	m := New()
	intp, err := m.Register(interp.NewBuilder()).Build()
	require.NoError(t, err)
	m.SetMousePos(120, -4)
	result, err := intp.Eval("expr [input::mouseX] + [input::mouseY]")
	require.NoError(t, err)
	assert.Equal(t, "116.000000", result)
}
