package ast

import "github.com/ilang-hdl/ilc/internal/token"

// Attributes is the short-string-key -> integer attribute map every control
// node (and, later, every IR assignment/port) carries — `@sync(1)`,
// `@bound(4)`, and so on.
type Attributes map[string]int64

// Has reports whether key is present.
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Get returns the value for key and whether it was present.
func (a Attributes) Get(key string) (int64, bool) {
	v, ok := a[key]
	return v, ok
}

// Attributed is implemented by every control node.
type Attributed interface {
	GetAttributes() Attributes
}

// Control is the recursive sum of composition constructs (§3). Each
// concrete type below is a tagged variant; Go has no closed sum types, so
// controlNode() is the marker method and a type switch in internal/pass
// dispatches on the concrete type.
type Control interface {
	Node
	Attributed
	controlNode()
}

// base carries the attribute map shared by every control node.
type base struct {
	Attrs Attributes
}

func (b *base) GetAttributes() Attributes {
	if b.Attrs == nil {
		b.Attrs = Attributes{}
	}
	return b.Attrs
}

// EmptyControl is the no-op leaf; also the only legal site for `@sync(n)`.
type EmptyControl struct {
	base
	Token token.Token
}

func (e *EmptyControl) Accept(v Visitor)      { v.VisitEmpty(e) }
func (e *EmptyControl) TokenLiteral() string  { return e.Token.Lexeme }
func (e *EmptyControl) GetToken() token.Token { return e.Token }
func (e *EmptyControl) controlNode()          {}

// EnableControl runs a named group to completion.
type EnableControl struct {
	base
	Token token.Token
	Group string
}

func (e *EnableControl) Accept(v Visitor)      { v.VisitEnable(e) }
func (e *EnableControl) TokenLiteral() string  { return e.Token.Lexeme }
func (e *EnableControl) GetToken() token.Token { return e.Token }
func (e *EnableControl) controlNode()          {}

// InvokeControl invokes a sub-component instance directly, binding its
// input ports to the given argument expressions (given here as port refs;
// the core does not evaluate expressions).
type InvokeControl struct {
	base
	Token    token.Token
	Instance string
	Args     []InvokeArg
}

// InvokeArg binds one input port of the invoked instance.
type InvokeArg struct {
	Port string
	Src  Port
}

func (i *InvokeControl) Accept(v Visitor)      { v.VisitInvoke(i) }
func (i *InvokeControl) TokenLiteral() string  { return i.Token.Lexeme }
func (i *InvokeControl) GetToken() token.Token { return i.Token }
func (i *InvokeControl) controlNode()          {}

// SeqControl composes its children in order.
type SeqControl struct {
	base
	Token token.Token
	Stmts []Control
}

func (s *SeqControl) Accept(v Visitor)      { v.VisitSeq(s) }
func (s *SeqControl) TokenLiteral() string  { return s.Token.Lexeme }
func (s *SeqControl) GetToken() token.Token { return s.Token }
func (s *SeqControl) controlNode()          {}

// ParControl composes its children to run concurrently.
type ParControl struct {
	base
	Token token.Token
	Stmts []Control
}

func (p *ParControl) Accept(v Visitor)      { v.VisitPar(p) }
func (p *ParControl) TokenLiteral() string  { return p.Token.Lexeme }
func (p *ParControl) GetToken() token.Token { return p.Token }
func (p *ParControl) controlNode()          {}

// IfControl is `if`/`ifen` unified (Open Question (a)): EnableCond is true
// iff the source used `ifen`, meaning CondGroup must run before testing
// Cond.
type IfControl struct {
	base
	Token      token.Token
	Cond       Port
	CondGroup  *string
	EnableCond bool
	TBranch    Control
	FBranch    Control
}

func (i *IfControl) Accept(v Visitor)      { v.VisitIf(i) }
func (i *IfControl) TokenLiteral() string  { return i.Token.Lexeme }
func (i *IfControl) GetToken() token.Token { return i.Token }
func (i *IfControl) controlNode()          {}

// WhileControl loops Body while Cond holds.
type WhileControl struct {
	base
	Token     token.Token
	Cond      Port
	CondGroup *string
	Body      Control
}

func (w *WhileControl) Accept(v Visitor)      { v.VisitWhile(w) }
func (w *WhileControl) TokenLiteral() string  { return w.Token.Lexeme }
func (w *WhileControl) GetToken() token.Token { return w.Token }
func (w *WhileControl) controlNode()          {}

// PrintControl is a diagnostic leaf printing a port's value during
// simulation/debugging (not evaluated by the core, §1 non-goals).
type PrintControl struct {
	base
	Token  token.Token
	Target Port
}

func (p *PrintControl) Accept(v Visitor)      { v.VisitPrint(p) }
func (p *PrintControl) TokenLiteral() string  { return p.Token.Lexeme }
func (p *PrintControl) GetToken() token.Token { return p.Token }
func (p *PrintControl) controlNode()          {}

// DisableControl is a diagnostic leaf forcing a group's done signal low.
type DisableControl struct {
	base
	Token token.Token
	Group string
}

func (d *DisableControl) Accept(v Visitor)      { v.VisitDisable(d) }
func (d *DisableControl) TokenLiteral() string  { return d.Token.Lexeme }
func (d *DisableControl) GetToken() token.Token { return d.Token }
func (d *DisableControl) controlNode()          {}
