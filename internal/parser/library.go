package parser

import (
	"github.com/ilang-hdl/ilc/internal/library"
)

// ParseLibrary parses a primitive library file: zero or more
// `(define/prim NAME (params P...) (inputs (port N W)...) (outputs (port
// N W)...) [comb])` forms (§6 "Library file format"). Width expressions W
// are the minimal arithmetic sublanguage of Open Question (b): integer
// literals, parameter references, and `+`/`-`/`*`.
func ParseLibrary(file, src string) ([]*library.Template, error) {
	p := New(file, src)
	var out []*library.Template
	for p.atLParenHead("define/prim") {
		tmpl, err := p.parseTemplate()
		if err != nil {
			return nil, err
		}
		out = append(out, tmpl)
	}
	if p.cur().Kind != tokEOF {
		return nil, p.errf("unexpected trailing input %q", p.cur().Lexeme)
	}
	return out, nil
}

func (p *Parser) parseTemplate() (*library.Template, error) {
	if _, err := p.expectHead("define/prim"); err != nil {
		return nil, err
	}
	name, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectHead("params"); err != nil {
		return nil, err
	}
	var params []string
	for p.cur().Kind == tokAtom {
		n, _, err := p.expectAtom()
		if err != nil {
			return nil, err
		}
		params = append(params, n)
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}

	inputs, err := p.parseParamPorts("inputs")
	if err != nil {
		return nil, err
	}
	outputs, err := p.parseParamPorts("outputs")
	if err != nil {
		return nil, err
	}

	comb := false
	if p.atLParenHead("comb") {
		if _, err := p.expectHead("comb"); err != nil {
			return nil, err
		}
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
		comb = true
	}

	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &library.Template{Name: name, Params: params, Inputs: inputs, Outputs: outputs, IsComb: comb}, nil
}

// parseParamPorts parses `(inputs|outputs (port N W (attr K V)*)*)`. The
// trailing attrs are how a primitive declares a port `stable` — e.g.
// std_reg's `out` stays valid after `done` fires — for §4.5's
// applicability predicate to read.
func (p *Parser) parseParamPorts(head string) ([]library.ParamPort, error) {
	if _, err := p.expectHead(head); err != nil {
		return nil, err
	}
	var out []library.ParamPort
	for p.atLParenHead("port") {
		if _, err := p.expectHead("port"); err != nil {
			return nil, err
		}
		name, _, err := p.expectAtom()
		if err != nil {
			return nil, err
		}
		w, err := p.parseWidthExpr()
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
		out = append(out, library.ParamPort{Name: name, Width: w, Attrs: attrs})
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseWidthExpr parses a constant, a bare parameter reference, or a
// `(+ e e)` / `(- e e)` / `(* e e)` binary form.
func (p *Parser) parseWidthExpr() (library.WidthExpr, error) {
	if p.cur().Kind == tokAtom {
		lex, _, err := p.expectAtom()
		if err != nil {
			return nil, err
		}
		if n, ok := parseDecimal(lex); ok {
			return library.Const(n), nil
		}
		return library.ParamRef(lex), nil
	}
	switch {
	case p.atLParenHead("+"):
		return p.parseWidthBinary("+")
	case p.atLParenHead("-"):
		return p.parseWidthBinary("-")
	case p.atLParenHead("*"):
		return p.parseWidthBinary("*")
	default:
		return nil, p.errf("expected a width expression")
	}
}

func (p *Parser) parseWidthBinary(op string) (library.WidthExpr, error) {
	if _, err := p.expectHead(op); err != nil {
		return nil, err
	}
	l, err := p.parseWidthExpr()
	if err != nil {
		return nil, err
	}
	r, err := p.parseWidthExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	switch op {
	case "+":
		return library.Add{L: l, R: r}, nil
	case "-":
		return library.Sub{L: l, R: r}, nil
	default:
		return library.Mul{L: l, R: r}, nil
	}
}

func parseDecimal(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	neg := false
	i := 0
	if s[0] == '-' {
		neg = true
		i = 1
	}
	if i == len(s) {
		return 0, false
	}
	var n int64
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int64(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}
