/*
Package keymap binds input events to tickle scripts.

Keymap is a host subsystem in the way games use tickle: scripts call

    input::bind  space {player::jump}
    input::bind2 w {player::walk 1} {player::walk 0}

and the host feeds key transitions and mouse positions into the map. Scripts
read the mouse position with input::mouseX and input::mouseY.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package keymap

import (
	"github.com/emirpasic/gods/maps/hashmap"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tickle/interp"
)

// tracer traces with key 'tickle.keymap'.
func tracer() tracing.Trace {
	return tracing.Select("tickle.keymap")
}

// Binding holds the scripts to run for a key.
type Binding struct {
	Down string
	Up   string
}

// Map maps key names to bindings and tracks the mouse position.
type Map struct {
	bindings *hashmap.Map
	x, y     int32
}

// New creates an empty key map.
func New() *Map {
	return &Map{bindings: hashmap.New()}
}

// Register binds the script interface of the map to an interpreter builder.
func (m *Map) Register(b *interp.Builder) *interp.Builder {
	return b.
		Bind("input::bind", m.bind).
		Bind("input::bind2", m.bind2).
		Bind("input::mouseX", m.mouseX).
		Bind("input::mouseY", m.mouseY)
}

func (m *Map) bind(key, down string) {
	m.bindings.Put(key, Binding{Down: down})
	tracer().Debugf("bound key %q", key)
}

func (m *Map) bind2(key, down, up string) {
	m.bindings.Put(key, Binding{Down: down, Up: up})
	tracer().Debugf("bound key %q (down+up)", key)
}

func (m *Map) mouseX() int32 {
	return m.x
}

func (m *Map) mouseY() int32 {
	return m.y
}

// Lookup returns the binding for a key.
func (m *Map) Lookup(key string) (Binding, bool) {
	b, found := m.bindings.Get(key)
	if !found {
		return Binding{}, false
	}
	return b.(Binding), true
}

// Key runs the script bound to a key transition. Unbound keys and
// transitions without a script are ignored. A binding completes on its own:
// `return` ends it normally, `break` and `continue` are errors.
func (m *Map) Key(intp *interp.Interp, key string, down bool) error {
	b, ok := m.Lookup(key)
	if !ok {
		return nil
	}
	script := b.Up
	if down {
		script = b.Down
	}
	if script == "" {
		return nil
	}
	tracer().Debugf("key %q down=%v: %s", key, down, script)
	_, err := intp.Eval(script)
	return err
}

// SetMousePos sets the mouse position scripts will see.
func (m *Map) SetMousePos(x, y int32) {
	m.x, m.y = x, y
}

// Clear removes all bindings.
func (m *Map) Clear() {
	m.bindings.Clear()
}

// Len returns the number of bound keys.
func (m *Map) Len() int {
	return m.bindings.Size()
}
