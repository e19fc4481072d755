package parser

import (
	"fmt"
	"strconv"

	"github.com/ilang-hdl/ilc/internal/ast"
	"github.com/ilang-hdl/ilc/internal/diagnostics"
	"github.com/ilang-hdl/ilc/internal/token"
)

// Parser holds a fully-lexed token stream (the grammar here is small
// enough that one-token lookahead over a pre-lexed slice is simpler than
// threading a lexer through every recursive call, the same tradeoff the
// teacher's own parser makes by consuming a *lexer.Lexer's full
// TokenStream up front).
type Parser struct {
	toks []token.Token
	pos  int
	file string
}

// New builds a Parser over src, tokenizing eagerly.
func New(file, src string) *Parser {
	lx := newLexer(file, src)
	var toks []token.Token
	for {
		t := lx.next()
		toks = append(toks, t)
		if t.Kind == tokEOF {
			break
		}
	}
	return &Parser{toks: toks, file: file}
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) errf(format string, args ...any) error {
	return diagnostics.ParseError(p.cur().Pos, fmt.Sprintf(format, args...))
}

func (p *Parser) expectLParen() error {
	if p.cur().Kind != tokLParen {
		return p.errf("expected '(', got %q", p.cur().Lexeme)
	}
	p.advance()
	return nil
}

func (p *Parser) expectRParen() error {
	if p.cur().Kind != tokRParen {
		return p.errf("expected ')', got %q", p.cur().Lexeme)
	}
	p.advance()
	return nil
}

// expectAtom consumes the current token as an atom and returns its
// lexeme, failing if the current token is a paren.
func (p *Parser) expectAtom() (string, token.Token, error) {
	if p.cur().Kind != tokAtom {
		return "", token.Token{}, p.errf("expected identifier, got %q", p.cur().Lexeme)
	}
	t := p.advance()
	return t.Lexeme, t, nil
}

// expectHead consumes `( head` and returns the head's token (for position
// reporting by the caller).
func (p *Parser) expectHead(head string) (token.Token, error) {
	if err := p.expectLParen(); err != nil {
		return token.Token{}, err
	}
	name, t, err := p.expectAtom()
	if err != nil {
		return token.Token{}, err
	}
	if name != head {
		return token.Token{}, p.errf("expected %q, got %q", head, name)
	}
	return t, nil
}

func (p *Parser) atLParenHead(head string) bool {
	return p.cur().Kind == tokLParen && p.pos+1 < len(p.toks) &&
		p.toks[p.pos+1].Kind == tokAtom && p.toks[p.pos+1].Lexeme == head
}

func (p *Parser) parseUint() (uint64, error) {
	lex, _, err := p.expectAtom()
	if err != nil {
		return 0, err
	}
	n, perr := strconv.ParseUint(lex, 10, 64)
	if perr != nil {
		return 0, p.errf("expected integer, got %q", lex)
	}
	return n, nil
}

// ParseNamespace parses a full `(define/namespace NAME component*)` file.
func ParseNamespace(file, src string) (*ast.NamespaceDef, error) {
	p := New(file, src)
	ns, err := p.parseNamespace()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != tokEOF {
		return nil, p.errf("unexpected trailing input %q", p.cur().Lexeme)
	}
	return ns, nil
}

func (p *Parser) parseNamespace() (*ast.NamespaceDef, error) {
	tok, err := p.expectHead("define/namespace")
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	ns := &ast.NamespaceDef{Token: tok, Name: name}
	for p.atLParenHead("define/component") {
		c, err := p.parseComponent()
		if err != nil {
			return nil, err
		}
		ns.Components = append(ns.Components, c)
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return ns, nil
}

func (p *Parser) parseComponent() (*ast.ComponentDef, error) {
	tok, err := p.expectHead("define/component")
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	sig, err := p.parseSignature()
	if err != nil {
		return nil, err
	}
	structure, err := p.parseStructure()
	if err != nil {
		return nil, err
	}
	ctrl, err := p.parseControlForm()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &ast.ComponentDef{Token: tok, Name: name, Signature: sig, Structure: structure, Control: ctrl}, nil
}

func (p *Parser) parseSignature() (*ast.Signature, error) {
	if _, err := p.expectHead("signature"); err != nil {
		return nil, err
	}
	sig := &ast.Signature{}
	if _, err := p.expectHead("inputs"); err != nil {
		return nil, err
	}
	for p.atLParenHead("port") {
		pd, err := p.parsePortdef()
		if err != nil {
			return nil, err
		}
		sig.Inputs = append(sig.Inputs, pd)
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	if _, err := p.expectHead("outputs"); err != nil {
		return nil, err
	}
	for p.atLParenHead("port") {
		pd, err := p.parsePortdef()
		if err != nil {
			return nil, err
		}
		sig.Outputs = append(sig.Outputs, pd)
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return sig, nil
}

// parsePortdef parses `(port NAME WIDTH (attr K V)*)` — the trailing
// attrs are how a boundary port on a user component gets marked `stable`
// for §4.5's applicability predicate, the same `(attr K V)*` tail
// parseGroup/parseAssign already accept.
func (p *Parser) parsePortdef() (*ast.Portdef, error) {
	tok, err := p.expectHead("port")
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	width, err := p.parseUint()
	if err != nil {
		return nil, err
	}
	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &ast.Portdef{Token: tok, Name: name, Width: width, Attrs: attrs}, nil
}
