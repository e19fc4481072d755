package parser

import "github.com/ilang-hdl/ilc/internal/ast"

// parseStructure parses `(structure item*)`, where item is a `new`
// declaration, a `new-std` primitive instantiation, a `->` wire, or a
// `group` definition (§3 "Structure", §6 reserved heads).
func (p *Parser) parseStructure() ([]ast.Structure, error) {
	if _, err := p.expectHead("structure"); err != nil {
		return nil, err
	}
	var items []ast.Structure
	for p.cur().Kind == tokLParen {
		item, err := p.parseStructureItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Parser) parseStructureItem() (ast.Structure, error) {
	switch {
	case p.atLParenHead("new"):
		return p.parseDecl()
	case p.atLParenHead("new-std"):
		return p.parseStd()
	case p.atLParenHead("->"):
		return p.parseWire()
	case p.atLParenHead("group"):
		return p.parseGroup()
	default:
		return nil, p.errf("expected new, new-std, ->, or group")
	}
}

func (p *Parser) parseDecl() (*ast.DeclStructure, error) {
	tok, err := p.expectHead("new")
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	comp, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &ast.DeclStructure{Token: tok, Name: name, Component: comp}, nil
}

func (p *Parser) parseStd() (*ast.StdStructure, error) {
	tok, err := p.expectHead("new-std")
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	prim, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	var params []uint64
	for p.cur().Kind == tokAtom {
		n, err := p.parseUint()
		if err != nil {
			return nil, err
		}
		params = append(params, n)
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &ast.StdStructure{Token: tok, Name: name, Instance: ast.Compinst{Name: prim, Params: params}}, nil
}

func (p *Parser) parseWire() (*ast.WireStructure, error) {
	tok, err := p.expectHead("->")
	if err != nil {
		return nil, err
	}
	src, err := p.parsePortRef()
	if err != nil {
		return nil, err
	}
	dst, err := p.parsePortRef()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return &ast.WireStructure{Token: tok, Src: src, Dest: dst}, nil
}

// parsePortRef parses `(@ this NAME)`, `(@ INST NAME)`, or `(@g GROUP)`.
func (p *Parser) parsePortRef() (ast.Port, error) {
	if p.atLParenHead("@g") {
		tok, err := p.expectHead("@g")
		if err != nil {
			return nil, err
		}
		group, _, err := p.expectAtom()
		if err != nil {
			return nil, err
		}
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
		return &ast.GroupPort{Token: tok, Group: group}, nil
	}
	tok, err := p.expectHead("@")
	if err != nil {
		return nil, err
	}
	ref, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	port, _, err := p.expectAtom()
	if err != nil {
		return nil, err
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	if ref == "this" {
		return &ast.ThisPort{Token: tok, Port: port}, nil
	}
	return &ast.CompPort{Token: tok, Component: ref, Port: port}, nil
}

// parseGroup parses `(group NAME (attr K V)* assign*)`.
func (p *Parser) parseGroup() (*ast.GroupDef, error) {
	tok, err := p.expectHead("group")
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
	def := &ast.GroupDef{Token: tok, Name: name, Attrs: attrs}
	for p.atLParenHead("asgn") {
		a, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		def.Assignments = append(def.Assignments, a)
	}
	if err := p.expectRParen(); err != nil {
		return nil, err
	}
	return def, nil
}

// parseAttrs parses zero or more `(attr KEY VALUE)` forms.
func (p *Parser) parseAttrs() (ast.Attributes, error) {
	attrs := ast.Attributes{}
	for p.atLParenHead("attr") {
		if _, err := p.expectHead("attr"); err != nil {
			return nil, err
		}
		key, _, err := p.expectAtom()
		if err != nil {
			return nil, err
		}
		val, err := p.parseUint()
		if err != nil {
			return nil, err
		}
		attrs[key] = int64(val)
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
	}
	return attrs, nil
}

func (p *Parser) parseAssign() (*ast.GroupAssign, error) {
	tok, err := p.expectHead("asgn")
	if err != nil {
		return nil, err
	}
	dst, err := p.parsePortRef()
	if err != nil {
		return nil, err
	}
	guard, err := p.parseGuard()
	if err != nil {
		return nil, err
	}
	src, err := p.parsePortRef()
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
	return &ast.GroupAssign{Token: tok, Dst: dst, Guard: guard, Src: src, Attrs: attrs}, nil
}

// parseGuard parses `(true)`, a bare port ref (truthy guard), or a
// `not`/`and`/`or` combination (§3 "Guard").
func (p *Parser) parseGuard() (ast.GuardExpr, error) {
	switch {
	case p.atLParenHead("true"):
		tok, err := p.expectHead("true")
		if err != nil {
			return nil, err
		}
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
		return &ast.TrueGuard{Token: tok}, nil
	case p.atLParenHead("not"):
		tok, err := p.expectHead("not")
		if err != nil {
			return nil, err
		}
		inner, err := p.parseGuard()
		if err != nil {
			return nil, err
		}
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
		return &ast.NotGuard{Token: tok, G: inner}, nil
	case p.atLParenHead("and"), p.atLParenHead("or"):
		isAnd := p.atLParenHead("and")
		head := "or"
		if isAnd {
			head = "and"
		}
		tok, err := p.expectHead(head)
		if err != nil {
			return nil, err
		}
		l, err := p.parseGuard()
		if err != nil {
			return nil, err
		}
		r, err := p.parseGuard()
		if err != nil {
			return nil, err
		}
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
		if isAnd {
			return &ast.AndGuard{Token: tok, L: l, R: r}, nil
		}
		return &ast.OrGuard{Token: tok, L: l, R: r}, nil
	default:
		port, err := p.parsePortRef()
		if err != nil {
			return nil, err
		}
		return &ast.PortGuard{Token: port.GetToken(), Port: port}, nil
	}
}
