package parser

import "github.com/ilang-hdl/ilc/internal/ast"

// parseControlForm parses `(control ctrl)` wrapping the component's single
// top-level control statement.
func (p *Parser) parseControlForm() (ast.Control, error) {
	if _, err := p.expectHead("control"); err != nil {
		return nil, err
	}
	ctrl, err := p.parseControl()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func (p *Parser) parseControl() (ast.Control, error) {
	switch {
	case p.atLParenHead("seq"):
		return p.parseSeq()
	case p.atLParenHead("par"):
		return p.parsePar()
	case p.atLParenHead("if"), p.atLParenHead("ifen"):
		return p.parseIf()
	case p.atLParenHead("while"):
		return p.parseWhile()
	case p.atLParenHead("enable"):
		return p.parseEnable()
	case p.atLParenHead("invoke"):
		return p.parseInvoke()
	case p.atLParenHead("print"):
		return p.parsePrint()
	case p.atLParenHead("disable"):
		return p.parseDisable()
	case p.atLParenHead("empty"):
		return p.parseEmpty()
	default:
		return nil, p.errf("expected a control construct")
	}
}

func (p *Parser) parseStmtsUntilClose() ([]ast.Control, error) {
	var out []ast.Control
	for p.cur().Kind == tokLParen {
		c, err := p.parseControl()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (p *Parser) parseSeq() (ast.Control, error) {
	tok, err := p.expectHead("seq")
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStmtsUntilClose()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &ast.SeqControl{Token: tok, Stmts: stmts}, nil
}

func (p *Parser) parsePar() (ast.Control, error) {
	tok, err := p.expectHead("par")
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStmtsUntilClose()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &ast.ParControl{Token: tok, Stmts: stmts}, nil
}

// parseCondSpec parses `(cond NAME)` or `(nocond)`, returning the group
// name pointer (nil for nocond) — the carrier for Open Question (a)'s
// EnableCond unification of if/ifen.
func (p *Parser) parseCondSpec() (*string, error) {
	if p.atLParenHead("nocond") {
		if _, err := p.expectHead("nocond"); err != nil {
			return nil, err
		}
		return nil, p.expectRParen()
	}
	if _, err := p.expectHead("cond"); err != nil {
		return nil, err
	}
	name, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &name, nil
}

func (p *Parser) parseIf() (ast.Control, error) {
	head := "if"
	if p.atLParenHead("ifen") {
		head = "ifen"
	}
	tok, err := p.expectHead(head)
	if err != nil {
		return nil, err
	}
	cond, err := p.parsePortRef()
	if err != nil {
		return nil, err
	}
	condGroup, err := p.parseCondSpec()
	if err != nil {
		return nil, err
	}
	tb, err := p.parseControl()
	if err != nil {
		return nil, err
	}
	fb, err := p.parseControl()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	// Both `if` and `ifen` accept either `(cond NAME)` or `(nocond)`;
	// EnableCond here records only which keyword was used (both lower the
	// same way, Open Question (a)).
	return &ast.IfControl{Token: tok, Cond: cond, CondGroup: condGroup, EnableCond: head == "ifen", TBranch: tb, FBranch: fb}, nil
}

func (p *Parser) parseWhile() (ast.Control, error) {
	tok, err := p.expectHead("while")
	if err != nil {
		return nil, err
	}
	cond, err := p.parsePortRef()
	if err != nil {
		return nil, err
	}
	condGroup, err := p.parseCondSpec()
	if err != nil {
		return nil, err
	}
	body, err := p.parseControl()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &ast.WhileControl{Token: tok, Cond: cond, CondGroup: condGroup, Body: body}, nil
}

func (p *Parser) parseEnable() (ast.Control, error) {
	tok, err := p.expectHead("enable")
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectAtom()
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
	n := &ast.EnableControl{Token: tok, Group: name}
	n.Attrs = attrs
	return n, nil
}

func (p *Parser) parseInvoke() (ast.Control, error) {
	tok, err := p.expectHead("invoke")
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	var args []ast.InvokeArg
	for p.atLParenHead("arg") {
		if _, err := p.expectHead("arg"); err != nil {
			return nil, err
		}
		port, _, err := p.expectAtom()
		if err != nil {
			return nil, err
		}
		src, err := p.parsePortRef()
		if err != nil {
			return nil, err
		}
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
		args = append(args, ast.InvokeArg{Port: port, Src: src})
	}
	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	n := &ast.InvokeControl{Token: tok, Instance: name, Args: args}
	n.Attrs = attrs
	return n, nil
}

func (p *Parser) parsePrint() (ast.Control, error) {
	tok, err := p.expectHead("print")
	if err != nil {
		return nil, err
	}
	target, err := p.parsePortRef()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &ast.PrintControl{Token: tok, Target: target}, nil
}

func (p *Parser) parseDisable() (ast.Control, error) {
	tok, err := p.expectHead("disable")
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &ast.DisableControl{Token: tok, Group: name}, nil
}

func (p *Parser) parseEmpty() (ast.Control, error) {
	tok, err := p.expectHead("empty")
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
	n := &ast.EmptyControl{Token: tok}
	n.Attrs = attrs
	return n, nil
}
