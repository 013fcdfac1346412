package scanner

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type tok struct {
	K Kind
	T string
}

func collect(t *testing.T, input string) []tok {
	s := New(input, SourceID("test"))
	var toks []tok
	for i := 0; i < 100; i++ {
		token := s.Next()
		if token.Kind == EndOfFile {
			return toks
		}
		toks = append(toks, tok{token.Kind, token.Text})
	}
	t.Fatalf("scanner did not reach end of input for %q", input)
	return nil
}

func TestScanTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.scanner")
	defer teardown()
	//
	var tests = []struct {
		input    string
		expected []tok
	}{
		{"", nil},
		{"set x 5", []tok{
			{Escaped, "set"}, {Separator, ""}, {Escaped, "x"}, {Separator, ""}, {Escaped, "5"},
		}},
		{"a;b\n\n  c", []tok{
			{Escaped, "a"}, {EndOfLine, ""}, {Escaped, "b"}, {EndOfLine, ""}, {Escaped, "c"},
		}},
		{"puts $a$b", []tok{
			{Escaped, "puts"}, {Separator, ""}, {Variable, "a"}, {Variable, "b"},
		}},
		{"x$ y", []tok{
			{Escaped, "x"}, {String, "$"}, {Separator, ""}, {Escaped, "y"},
		}},
		{`set s {a b $c [d]}`, []tok{
			{Escaped, "set"}, {Separator, ""}, {Escaped, "s"}, {Separator, ""}, {String, "a b $c [d]"},
		}},
		{`"val=$v"`, []tok{
			{Escaped, "val="}, {Variable, "v"}, {Escaped, ""},
		}},
		{`"a b;c"`, []tok{
			{Escaped, "a b;c"},
		}},
		{`pre[cmd {x]} [y]]post`, []tok{
			{Escaped, "pre"}, {Command, "cmd {x]} [y]"}, {Escaped, "post"},
		}},
		{`a\$b\ c`, []tok{
			{Escaped, "a$b c"},
		}},
	}
	for i, test := range tests {
		toks := collect(t, test.input)
		if diff := cmp.Diff(test.expected, toks); diff != "" {
			t.Errorf("test #%d %q: token mismatch (-want +got):\n%s", i, test.input, diff)
		}
	}
}

func TestScanComments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.scanner")
	defer teardown()
	//
	toks := collect(t, "# a comment\nset x 1 # trailing")
	expected := []tok{
		{EndOfLine, ""}, {Escaped, "set"}, {Separator, ""}, {Escaped, "x"},
		{Separator, ""}, {Escaped, "1"}, {Separator, ""},
	}
	if diff := cmp.Diff(expected, toks); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
	toks = collect(t, `puts a#b "#c"`)
	expected = []tok{
		{Escaped, "puts"}, {Separator, ""}, {Escaped, "a#b"}, {Separator, ""}, {Escaped, "#c"},
	}
	if diff := cmp.Diff(expected, toks); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanNestedBraces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.scanner")
	defer teardown()
	//
	toks := collect(t, `{a {b} \} c}`)
	if len(toks) != 1 || toks[0].K != String {
		t.Fatalf("expected a single string token, got %v", toks)
	}
	if toks[0].T != `a {b} \} c` {
		t.Errorf("expected exact inner text, got %q", toks[0].T)
	}
}

func TestScanUnterminated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.scanner")
	defer teardown()
	//
	for _, input := range []string{"{abc", "[abc", `"abc`, `x\`} {
		var errs []string
		s := New(input, SourceID("t.tcl"), ErrorHandler(func(e error) {
			errs = append(errs, e.Error())
		}))
		count := 0
		for token := s.Next(); token.Kind != EndOfFile; token = s.Next() {
			count++
			if count > 10 {
				t.Fatalf("no progress scanning %q", input)
			}
		}
		if strings.HasSuffix(input, `\`) {
			if len(errs) != 0 {
				t.Errorf("trailing backslash should not be an error, got %v", errs)
			}
		} else if len(errs) != 1 {
			t.Errorf("expected one error report for %q, got %v", input, errs)
		} else if !strings.HasPrefix(errs[0], "t.tcl: ") {
			t.Errorf("expected error report to name the source, got %q", errs[0])
		}
	}
}

func TestTokenSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tickle.scanner")
	defer teardown()
	//
	s := New("set name $v")
	var last Token
	for token := s.Next(); token.Kind != EndOfFile; token = s.Next() {
		last = token
	}
	if last.Kind != Variable || last.Pos.From() != 9 || last.Pos.To() != 11 {
		t.Errorf("expected variable token at (9…11), got %v at %s", last, last.Pos)
	}
	if last.Text != "v" {
		t.Errorf("expected variable name v, got %q", last.Text)
	}
}
