package runtime

import (
	"fmt"
)

// Frame is a call frame, representing the variables of an active procedure
// invocation (or the globals, for the bottom frame).
type Frame struct {
	Name   string
	Vars   *SymbolTable
	Result string // result register
	Parent *Frame
}

// NewFrame creates a new call frame with an empty symbol table.
func NewFrame(nm string) *Frame {
	f := &Frame{
		Name: nm,
		Vars: NewSymbolTable(),
	}
	return f
}

func (f *Frame) String() string {
	return fmt.Sprintf("<frame %s: %d vars>", f.Name, f.Vars.Size())
}

// Get returns the value of a variable and a flag signalling whether the
// variable is defined in this frame.
func (f *Frame) Get(name string) (string, bool) {
	tag := f.Vars.ResolveTag(name)
	if tag == nil {
		return "", false
	}
	return tag.Value, true
}

// Set assigns a value to a variable, creating it if necessary.
func (f *Frame) Set(name, value string) {
	tag, _ := f.Vars.ResolveOrDefineTag(name)
	if tag == nil {
		return // empty name
	}
	tag.Value = value
}

// Unset removes a variable. Returns false if it has not been defined.
func (f *Frame) Unset(name string) bool {
	return f.Vars.RemoveTag(name) != nil
}

// ---------------------------------------------------------------------------

// FrameStack is a call stack of frames.
type FrameStack struct {
	frameBase *Frame
	frameTOS  *Frame
	depth     int
}

// NewFrameStack creates a call stack, containing a fresh global frame.
func NewFrameStack() *FrameStack {
	fst := &FrameStack{}
	fst.Push(GlobalFrameName)
	return fst
}

// Current gets the current frame of a stack (TOS).
func (fst *FrameStack) Current() *Frame {
	if fst.frameTOS == nil {
		panic("attempt to access frame from empty stack")
	}
	return fst.frameTOS
}

// Globals gets the outermost frame, containing global variables.
func (fst *FrameStack) Globals() *Frame {
	if fst.frameBase == nil {
		panic("attempt to access global frame from empty stack")
	}
	return fst.frameBase
}

// Depth returns the number of frames on the stack, including the global frame.
func (fst *FrameStack) Depth() int {
	return fst.depth
}

// Push pushes a new frame as TOS, having the recent TOS as its
// parent. If the stack has been empty, the new frame becomes the
// bottom-most (global) frame.
//
func (fst *FrameStack) Push(nm string) *Frame {
	fp := fst.frameTOS
	f := NewFrame(nm)
	f.Parent = fp
	if fp == nil { // the new frame is the global frame
		fst.frameBase = f // make new frame anchor
	}
	fst.frameTOS = f // new frame now TOS
	fst.depth++
	tracer().P("frame", f.Name).Debugf("pushing new call frame, depth=%d", fst.depth)
	return f
}

// Pop pops the top-most frame. Returns the popped frame.
// The global frame cannot be popped; use Reset instead.
func (fst *FrameStack) Pop() *Frame {
	if fst.frameTOS == nil {
		panic("attempt to pop frame from empty call stack")
	}
	if fst.frameTOS == fst.frameBase {
		panic("attempt to pop global frame from call stack")
	}
	f := fst.frameTOS
	tracer().Debugf("popping call frame [%s]", f.Name)
	fst.frameTOS = fst.frameTOS.Parent
	fst.depth--
	return f
}

// Reset drops all frames and starts over with a single, empty global frame.
func (fst *FrameStack) Reset() {
	fst.frameBase, fst.frameTOS, fst.depth = nil, nil, 0
	fst.Push(GlobalFrameName)
}
