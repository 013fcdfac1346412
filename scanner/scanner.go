/*
Package scanner splits tickle scripts into tokens.

The scanner works in a single pass over an immutable script buffer. It does
not build statements or words: a single argument word may be delivered as a
sequence of String, Variable, Command and Escaped tokens without a Separator
in between, and it is up to the evaluator to concatenate them.

    puts "total=$n[unit]"

yields

    Escaped "puts" · Separator · Escaped "total=" · Variable "n" · Command "unit" · Escaped "" · EndOfFile

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tickle"
)

// tracer traces with key 'tickle.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("tickle.scanner")
}

// Kind is the category of a token.
type Kind int8

// Token categories. Error completes the token model of the language; this
// scanner reports malformed input to its error handler instead.
const (
	EndOfLine Kind = iota
	EndOfFile
	Separator
	String
	Variable
	Escaped
	Command
	Error
)

var kindNames = [...]string{
	"EndOfLine", "EndOfFile", "Separator", "String",
	"Variable", "Escaped", "Command", "Error",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Token is the token type produced by the scanner. For Variable tokens Text
// holds the variable name, for Command tokens the raw text between the brackets.
type Token struct {
	Kind Kind
	Text string
	Pos  tickle.Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// Default error reporting function for scanners.
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// Scanner is the default tokenizer for tickle scripts. Create one with New.
// A scanner is used for exactly one script fragment and then discarded.
type Scanner struct {
	code     string
	pos      int         // cursor, never beyond len(code)
	start    int         // start of the current token
	quoted   bool        // inside a double-quoted string
	last     Kind        // category of the previously produced token
	sourceID string      // name of the script, for diagnostics
	Error    func(error) // error handler
}

// New creates a scanner for a script.
func New(script string, opts ...Option) *Scanner {
	s := &Scanner{
		code:  script,
		last:  EndOfLine,
		Error: logError,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetErrorHandler sets an error handler for the scanner. Errors are reported for
// unterminated braces, brackets and quotes; scanning continues nevertheless.
func (s *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		s.Error = logError
		return
	}
	s.Error = h
}

// Next consumes input from the cursor position and returns the next token.
// After end of input every call returns an EndOfFile token.
func (s *Scanner) Next() Token {
	for {
		s.start = s.pos
		if s.eof() {
			return s.emit(EndOfFile, "")
		}
		switch s.cur() {
		case ' ', '\t', '\r':
			if s.quoted {
				return s.scanWord()
			}
			return s.scanSeparator()
		case '\n', ';':
			if s.quoted {
				return s.scanWord()
			}
			return s.scanEndOfLine()
		case '$':
			return s.scanVariable()
		case '[':
			return s.scanCommand()
		case '#':
			if s.quoted || !s.atWordStart() {
				return s.scanWord()
			}
			s.skipComment()
			continue
		default:
			return s.scanWord()
		}
	}
}

// --- Scanning rules --------------------------------------------------------

func (s *Scanner) scanSeparator() Token {
	for isBlank(s.cur()) && !s.eof() {
		s.inc()
	}
	return s.emit(Separator, "")
}

func (s *Scanner) scanEndOfLine() Token {
	for !s.eof() && (isBlank(s.cur()) || s.cur() == '\n' || s.cur() == ';') {
		s.inc()
	}
	return s.emit(EndOfLine, "")
}

func (s *Scanner) skipComment() {
	from := s.pos
	for !s.eof() && s.cur() != '\n' {
		s.inc()
	}
	tracer().Debugf("%sskipping comment %q", s.prefix(), s.code[from:s.pos])
}

func (s *Scanner) scanVariable() Token {
	s.inc() // eat $
	from := s.pos
	for !s.eof() && isAlnum(s.cur()) {
		s.inc()
	}
	if s.pos == from { // just a single character string "$"
		return s.emit(String, "$")
	}
	return s.emit(Variable, s.code[from:s.pos])
}

// scanCommand scans to the matching ']'. Brackets inside braces do not count.
func (s *Scanner) scanCommand() Token {
	outer, brace := 1, 0
	s.inc() // eat [
	from := s.pos
	for !s.eof() {
		c := s.cur()
		if c == '\\' {
			s.inc()
			if !s.eof() {
				s.inc()
			}
			continue
		}
		if brace == 0 {
			if c == '[' {
				outer++
			} else if c == ']' {
				if outer--; outer == 0 {
					break
				}
			}
		}
		if c == '{' {
			brace++
		} else if c == '}' && brace > 0 {
			brace--
		}
		s.inc()
	}
	body := s.code[from:s.pos]
	if s.eof() {
		s.Error(fmt.Errorf("%sunterminated command substitution at %d", s.prefix(), s.start))
	} else {
		s.inc() // eat ]
	}
	return s.emit(Command, body)
}

// scanBraces returns the exact text between a pair of braces, without any
// substitution.
func (s *Scanner) scanBraces() Token {
	level := 1
	s.inc() // eat {
	from := s.pos
	for !s.eof() {
		c := s.cur()
		if c == '\\' && s.remaining() >= 2 {
			if n := s.code[s.pos+1]; n == '{' || n == '}' {
				s.inc()
				s.inc()
				continue
			}
		}
		if c == '{' {
			level++
		} else if c == '}' {
			if level--; level == 0 {
				break
			}
		}
		s.inc()
	}
	text := s.code[from:s.pos]
	if s.eof() {
		s.Error(fmt.Errorf("%sunterminated brace at %d", s.prefix(), s.start))
	} else {
		s.inc() // eat }
	}
	return s.emit(String, text)
}

// scanWord accumulates bare characters. It stops in front of substitutions and,
// outside of quotes, in front of word and statement separators.
func (s *Scanner) scanWord() Token {
	if s.atWordStart() && !s.quoted {
		switch s.cur() {
		case '{':
			return s.scanBraces()
		case '"':
			s.quoted = true
			s.inc()
		}
	}
	var b strings.Builder
	for {
		if s.eof() {
			if s.quoted {
				s.Error(fmt.Errorf("%sunterminated quoted string", s.prefix()))
				s.quoted = false
			}
			return s.emit(Escaped, b.String())
		}
		c := s.cur()
		switch c {
		case '\\':
			if s.remaining() >= 2 {
				s.inc()
				c = s.cur()
			}
		case '$', '[':
			return s.emit(Escaped, b.String())
		case ' ', '\t', '\r', '\n', ';':
			if !s.quoted {
				return s.emit(Escaped, b.String())
			}
		case '"':
			if s.quoted {
				s.inc()
				s.quoted = false
				return s.emit(Escaped, b.String())
			}
		}
		b.WriteByte(c)
		s.inc()
	}
}

// --- Helpers ---------------------------------------------------------------

func (s *Scanner) emit(k Kind, text string) Token {
	s.last = k
	t := Token{
		Kind: k,
		Text: text,
		Pos:  tickle.Span{uint64(s.start), uint64(s.pos)},
	}
	tracer().Debugf("%s%s %q %s", s.prefix(), k, text, t.Pos)
	return t
}

func (s *Scanner) atWordStart() bool {
	return s.last == Separator || s.last == EndOfLine
}

func (s *Scanner) cur() byte {
	if s.pos < len(s.code) {
		return s.code[s.pos]
	}
	return 0
}

func (s *Scanner) inc() {
	if s.pos < len(s.code) {
		s.pos++
	}
}

func (s *Scanner) eof() bool {
	return s.pos >= len(s.code)
}

func (s *Scanner) remaining() int {
	return len(s.code) - s.pos
}

func (s *Scanner) prefix() string {
	if s.sourceID == "" {
		return ""
	}
	return s.sourceID + ": "
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// --- Scanner options -------------------------------------------------------

// Option configures a scanner.
type Option func(s *Scanner)

// SourceID sets a name for the script, used in diagnostics.
func SourceID(id string) Option {
	return func(s *Scanner) {
		s.sourceID = id
	}
}

// ErrorHandler sets the handler for scanner errors.
func ErrorHandler(h func(error)) Option {
	return func(s *Scanner) {
		s.SetErrorHandler(h)
	}
}
