package main

import (
	"sync"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Tokens of the balance lexer.
const (
	tokEscape = iota + 1
	tokQuote
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokBlank
	tokText
)

var balanceLexer *lexmachine.Lexer
var balanceErr error
var lexerOnce sync.Once

func lexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lx := lexmachine.NewLexer()
		lx.Add([]byte(`\\(.|\n)`), makeToken(tokEscape))
		lx.Add([]byte(`"`), makeToken(tokQuote))
		lx.Add([]byte(`\{`), makeToken(tokLBrace))
		lx.Add([]byte(`\}`), makeToken(tokRBrace))
		lx.Add([]byte(`\[`), makeToken(tokLBracket))
		lx.Add([]byte(`\]`), makeToken(tokRBracket))
		lx.Add([]byte(`( |\t|\r|\n|;)+`), makeToken(tokBlank))
		lx.Add([]byte(`[^\\"\{\}\[\] \t\r\n;]+`), makeToken(tokText))
		if balanceErr = lx.Compile(); balanceErr != nil {
			tracer().Errorf("error compiling DFA: %v", balanceErr)
			return
		}
		balanceLexer = lx
	})
	return balanceLexer, balanceErr
}

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// balanced is a predicate: does input close all braces, brackets and quotes it
// opens? The shell uses it to decide whether to ask for more input lines.
func balanced(input string) (bool, error) {
	lx, err := lexer()
	if err != nil {
		return true, err
	}
	scan, err := lx.Scanner([]byte(input))
	if err != nil {
		return true, err
	}
	open := arraystack.New() // of delimiters
	wordStart := true
	for tok, err, eof := scan.Next(); !eof; tok, err, eof = scan.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is { // dangling backslash
				if ui.FailTC > scan.TC {
					scan.TC = ui.FailTC
				} else {
					scan.TC++
				}
				continue
			}
			return true, err
		}
		token := tok.(*lexmachine.Token)
		top, _ := open.Peek()
		switch top {
		case nil:
			switch token.Type {
			case tokLBracket:
				open.Push(token.Type)
			case tokLBrace, tokQuote: // literal inside a word
				if wordStart {
					open.Push(token.Type)
				}
			}
		case tokLBrace:
			switch token.Type {
			case tokLBrace:
				open.Push(token.Type)
			case tokRBrace:
				open.Pop()
			}
		case tokLBracket:
			switch token.Type {
			case tokLBrace, tokLBracket:
				open.Push(token.Type)
			case tokRBracket:
				open.Pop()
			}
		case tokQuote:
			switch token.Type {
			case tokLBracket:
				open.Push(token.Type)
			case tokQuote:
				open.Pop()
			}
		}
		wordStart = token.Type == tokBlank
	}
	return open.Empty(), nil
}
