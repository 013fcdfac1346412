package runtime

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFrameVariables(t *testing.T) {
	f := NewFrame("test")
	if _, ok := f.Get("x"); ok {
		t.Errorf("variable x should be undefined")
	}
	f.Set("x", "5")
	f.Set("x", "7")
	if v, ok := f.Get("x"); !ok || v != "7" {
		t.Errorf("expected x=7, got %q (%v)", v, ok)
	}
	if !f.Unset("x") || f.Unset("x") {
		t.Errorf("expected x to be unset exactly once")
	}
}

func TestFrameStackPushPop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.runtime")
	defer teardown()
	//
	fst := NewFrameStack()
	if fst.Depth() != 1 || fst.Current() != fst.Globals() || fst.Current().Parent != nil {
		t.Fatalf("expected a single global frame")
	}
	fst.Globals().Set("g", "global")
	f := fst.Push("proc")
	f.Set("l", "local")
	if fst.Current() != f || fst.Depth() != 2 {
		t.Errorf("pushed frame should be TOS")
	}
	if _, ok := fst.Current().Get("g"); ok {
		t.Errorf("globals must not be visible from a procedure frame")
	}
	if popped := fst.Pop(); popped != f {
		t.Errorf("expected to pop frame %v, got %v", f, popped)
	}
	if fst.Current() != fst.Globals() || fst.Depth() != 1 {
		t.Errorf("expected global frame to be TOS again")
	}
}

func TestFrameStackPopGlobalPanics(t *testing.T) {
	fst := NewFrameStack()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected popping the global frame to panic")
		}
	}()
	fst.Pop()
}

func TestFrameStackReset(t *testing.T) {
	fst := NewFrameStack()
	fst.Globals().Set("x", "1")
	fst.Push("a")
	fst.Push("b")
	fst.Reset()
	if fst.Depth() != 1 {
		t.Errorf("expected depth 1 after reset, is %d", fst.Depth())
	}
	if _, ok := fst.Globals().Get("x"); ok {
		t.Errorf("expected fresh global frame after reset")
	}
}
