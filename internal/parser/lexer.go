// Package parser is a minimal hand-written recursive-descent parser for
// the S-expression-style surface syntax spec.md §6 reserves heads for
// (define/namespace, define/component, port, new, new-std, ->, @, seq,
// par, if, ifen, while, print, enable, disable, empty). It is a
// collaborator stand-in, not the deliverable (§1): good enough to
// round-trip the textual fixtures this module's own tests and cmd/ilc
// driver use, not a production grammar for the full concrete syntax.
package parser

import (
	"strings"
	"unicode"

	"github.com/ilang-hdl/ilc/internal/token"
)

// tokKind mirrors token.Token's "Kind is a string, not an enum" convention
// (internal/token/token.go): the core never re-lexes, so there is no
// pressure to make lexing itself fast via an int enum.
const (
	tokLParen = "LPAREN"
	tokRParen = "RPAREN"
	tokAtom   = "ATOM"
	tokEOF    = "EOF"
)

// lexer tokenizes the S-expression surface: parens are structural, `;` to
// end of line is a comment, and everything else between whitespace is one
// atom (an identifier, a decimal number, or a punctuation symbol like `->`
// or `@`).
type lexer struct {
	file   string
	src    []rune
	pos    int
	line   int
	column int
}

func newLexer(file, src string) *lexer {
	return &lexer{file: file, src: []rune(src), line: 1, column: 1}
}

func (l *lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *lexer) pos0() token.Position {
	return token.Position{File: l.file, Line: l.line, Column: l.column}
}

func isAtomBreak(r rune) bool {
	return r == 0 || r == '(' || r == ')' || unicode.IsSpace(r)
}

func (l *lexer) skipIgnorable() {
	for l.pos < len(l.src) {
		r := l.peekRune()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == ';':
			for l.pos < len(l.src) && l.peekRune() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// next returns the next token, advancing the lexer past it.
func (l *lexer) next() token.Token {
	l.skipIgnorable()
	pos := l.pos0()
	if l.pos >= len(l.src) {
		return token.Token{Kind: tokEOF, Pos: pos}
	}
	r := l.peekRune()
	switch r {
	case '(':
		l.advance()
		return token.Token{Kind: tokLParen, Lexeme: "(", Pos: pos}
	case ')':
		l.advance()
		return token.Token{Kind: tokRParen, Lexeme: ")", Pos: pos}
	}
	var sb strings.Builder
	for l.pos < len(l.src) && !isAtomBreak(l.peekRune()) {
		sb.WriteRune(l.advance())
	}
	return token.Token{Kind: tokAtom, Lexeme: sb.String(), Pos: pos}
}
