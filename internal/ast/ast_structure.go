package ast

import "github.com/ilang-hdl/ilc/internal/token"

// Signature is an ordered list of input and output port definitions. Order
// is externally observable (printers, positional defaults); wires still
// resolve by name (§3).
type Signature struct {
	Inputs  []*Portdef
	Outputs []*Portdef
}

// Portdef is a (name, width) pair, plus the same short-string-key attribute
// map every other attributable construct carries — the only one §4.5's
// applicability predicate reads being `stable` (port_reads(asmt) over a
// port marked stable doesn't disqualify a group from splitting).
type Portdef struct {
	Token token.Token
	Name  string
	Width uint64
	Attrs Attributes
}

func (p *Portdef) GetToken() token.Token { return p.Token }

// Port is a reference to either a boundary port (`@ this p`) or a named
// child's port (`@ child p`).
type Port interface {
	Node
	portNode()
	// RefName is the instance name for Comp, or "" for This.
	RefName() string
	PortName() string
}

// ThisPort is `@ this p`, a boundary port of the enclosing component.
type ThisPort struct {
	Token token.Token
	Port  string
}

func (p *ThisPort) Accept(v Visitor)      { v.VisitThisPort(p) }
func (p *ThisPort) TokenLiteral() string  { return p.Token.Lexeme }
func (p *ThisPort) GetToken() token.Token { return p.Token }
func (p *ThisPort) portNode()             {}
func (p *ThisPort) RefName() string       { return "" }
func (p *ThisPort) PortName() string      { return p.Port }

// CompPort is `@ child p`, a port on a named sub-component instance.
type CompPort struct {
	Token     token.Token
	Component string
	Port      string
}

func (p *CompPort) Accept(v Visitor)      { v.VisitCompPort(p) }
func (p *CompPort) TokenLiteral() string  { return p.Token.Lexeme }
func (p *CompPort) GetToken() token.Token { return p.Token }
func (p *CompPort) portNode()             {}
func (p *CompPort) RefName() string       { return p.Component }
func (p *CompPort) PortName() string      { return p.Port }

// GroupPort is `@g group`, a group's own completion signal — the only
// port a GroupDef's body or a control condition can read off a group.
type GroupPort struct {
	Token token.Token
	Group string
}

func (p *GroupPort) Accept(v Visitor)      { v.VisitGroupPort(p) }
func (p *GroupPort) TokenLiteral() string  { return p.Token.Lexeme }
func (p *GroupPort) GetToken() token.Token { return p.Token }
func (p *GroupPort) portNode()             {}
func (p *GroupPort) RefName() string       { return p.Group }
func (p *GroupPort) PortName() string      { return "done" }

// Compinst is `name(params...)` — the name of a library primitive together
// with the concrete parameter values to instantiate it with.
type Compinst struct {
	Token  token.Token
	Name   string
	Params []uint64
}

// Structure is one item of a component's structural netlist: an instance
// declaration (of a sibling user component or a library primitive) or a
// wire between two port references.
type Structure interface {
	Node
	structureNode()
}

// DeclStructure is `new name = ComponentType` — a sub-component instance.
type DeclStructure struct {
	Token     token.Token
	Name      string
	Component string
}

func (d *DeclStructure) Accept(v Visitor)      { v.VisitDeclStructure(d) }
func (d *DeclStructure) TokenLiteral() string  { return d.Token.Lexeme }
func (d *DeclStructure) GetToken() token.Token { return d.Token }
func (d *DeclStructure) structureNode()        {}

// StdStructure is `new-std name = primitive(params...)` — a primitive
// instance.
type StdStructure struct {
	Token    token.Token
	Name     string
	Instance Compinst
}

func (s *StdStructure) Accept(v Visitor)      { v.VisitStdStructure(s) }
func (s *StdStructure) TokenLiteral() string  { return s.Token.Lexeme }
func (s *StdStructure) GetToken() token.Token { return s.Token }
func (s *StdStructure) structureNode()        {}

// WireStructure is `src -> dest`, directed from src to dest.
type WireStructure struct {
	Token token.Token
	Src   Port
	Dest  Port
}

func (w *WireStructure) Accept(v Visitor)      { v.VisitWireStructure(w) }
func (w *WireStructure) TokenLiteral() string  { return w.Token.Lexeme }
func (w *WireStructure) GetToken() token.Token { return w.Token }
func (w *WireStructure) structureNode()        {}
