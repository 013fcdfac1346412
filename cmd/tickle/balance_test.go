package main

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBalanced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.cli")
	defer teardown()
	//
	var inputs = []struct {
		text     string
		balanced bool
	}{
		{"", true},
		{"set x 1", true},
		{"proc f {n} {", false},
		{"proc f {n} {\n  expr $n * 2\n}", true},
		{"set x [expr 1 +", false},
		{"set x [expr {1 + 2}]", true},
		{`set s "hello`, false},
		{`set s "hello world"`, true},
		{`set s "a [set x"`, false},
		{`set s a"b`, true},
		{"puts a{b", true},
		{"puts a{b\nputs {c", false},
		{`set s \{`, true},
		{`set s {a \} b}`, true},
		{`set s {a "b}`, true},
		{"set s }", true},
		{`puts a\`, true},
	}
	for _, input := range inputs {
		ok, err := balanced(input.text)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", input.text, err)
			continue
		}
		if ok != input.balanced {
			t.Errorf("expected balanced(%q) to be %v, is %v", input.text, input.balanced, ok)
		}
	}
}
