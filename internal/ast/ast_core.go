// Package ast is the surface syntax for the IL: namespaces, components,
// signatures, structure items, and control constructs. It mirrors the
// funxy convention of a small Node interface plus a visitor dispatched
// through Accept, but the node set here is the one spec.md §3 describes
// rather than a general-purpose scripting language's.
package ast

import "github.com/ilang-hdl/ilc/internal/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	GetToken() token.Token
}

// NamespaceDef is the root of a parsed file: `define/namespace`.
type NamespaceDef struct {
	Token      token.Token
	Name       string
	Components []*ComponentDef
}

func (n *NamespaceDef) Accept(v Visitor)        { v.VisitNamespaceDef(n) }
func (n *NamespaceDef) TokenLiteral() string    { return n.Token.Lexeme }
func (n *NamespaceDef) GetToken() token.Token   { return n.Token }

// ComponentDef is `define/component`: a name, a signature, a structural
// netlist, and a control program.
type ComponentDef struct {
	Token     token.Token
	Name      string
	Signature *Signature
	Structure []Structure
	Control   Control
}

func (c *ComponentDef) Accept(v Visitor)      { v.VisitComponentDef(c) }
func (c *ComponentDef) TokenLiteral() string  { return c.Token.Lexeme }
func (c *ComponentDef) GetToken() token.Token { return c.Token }
