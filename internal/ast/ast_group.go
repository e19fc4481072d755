package ast

import "github.com/ilang-hdl/ilc/internal/token"

// GuardExpr is the surface form of a boolean guard over ports (§3
// "Assignment"): True, a bare port read, or a boolean combination.
type GuardExpr interface {
	Node
	guardNode()
}

// TrueGuard is the always-on guard.
type TrueGuard struct{ Token token.Token }

func (g *TrueGuard) Accept(v Visitor)      { v.VisitTrueGuard(g) }
func (g *TrueGuard) TokenLiteral() string  { return g.Token.Lexeme }
func (g *TrueGuard) GetToken() token.Token { return g.Token }
func (g *TrueGuard) guardNode()            {}

// PortGuard is truthy exactly when Port reads as 1.
type PortGuard struct {
	Token token.Token
	Port  Port
}

func (g *PortGuard) Accept(v Visitor)      { v.VisitPortGuard(g) }
func (g *PortGuard) TokenLiteral() string  { return g.Token.Lexeme }
func (g *PortGuard) GetToken() token.Token { return g.Token }
func (g *PortGuard) guardNode()            {}

// NotGuard, AndGuard, OrGuard compose guards.
type NotGuard struct {
	Token token.Token
	G     GuardExpr
}

func (g *NotGuard) Accept(v Visitor)      { v.VisitNotGuard(g) }
func (g *NotGuard) TokenLiteral() string  { return g.Token.Lexeme }
func (g *NotGuard) GetToken() token.Token { return g.Token }
func (g *NotGuard) guardNode()            {}

type AndGuard struct {
	Token token.Token
	L, R  GuardExpr
}

func (g *AndGuard) Accept(v Visitor)      { v.VisitAndGuard(g) }
func (g *AndGuard) TokenLiteral() string  { return g.Token.Lexeme }
func (g *AndGuard) GetToken() token.Token { return g.Token }
func (g *AndGuard) guardNode()            {}

type OrGuard struct {
	Token token.Token
	L, R  GuardExpr
}

func (g *OrGuard) Accept(v Visitor)      { v.VisitOrGuard(g) }
func (g *OrGuard) TokenLiteral() string  { return g.Token.Lexeme }
func (g *OrGuard) GetToken() token.Token { return g.Token }
func (g *OrGuard) guardNode()            {}

// GroupAssign is one `dst = guard ? src` line inside a group body.
type GroupAssign struct {
	Token token.Token
	Dst   Port
	Guard GuardExpr
	Src   Port
	Attrs Attributes
}

// GroupDef is a named, scoped bundle of assignments plus its implicit
// `done` signal — `group name { ... }` — kept as a Structure item so it
// shares the same netlist-level namespace as instance declarations and
// wires (§3 "Group").
type GroupDef struct {
	Token       token.Token
	Name        string
	Assignments []*GroupAssign
	Attrs       Attributes
}

func (g *GroupDef) Accept(v Visitor)      { v.VisitGroupDef(g) }
func (g *GroupDef) TokenLiteral() string  { return g.Token.Lexeme }
func (g *GroupDef) GetToken() token.Token { return g.Token }
func (g *GroupDef) structureNode()        {}
