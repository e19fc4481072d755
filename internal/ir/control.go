package ir

import (
	"github.com/ilang-hdl/ilc/internal/ast"
	"github.com/ilang-hdl/ilc/internal/token"
)

// Control is the IR-level control tree: the same shape as ast.Control, but
// referencing groups and instances by name instead of holding AST port
// nodes, and built from mutable struct pointers so a pass's Action::Change
// can splice a replacement in place of a node held by its parent (§4.3
// "the pass driver rewrites a node in place when a hook returns Change").
type Control interface {
	ast.Attributed
	controlNode()
}

// Base carries the attribute map and source position every ir control
// node keeps from its ast counterpart, so a pass that rejects a malformed
// attribute (e.g. `@sync` on a leaf, §4.4) can still report a position.
type Base struct {
	Attrs ast.Attributes
	Pos   token.Position
}

func (b *Base) GetAttributes() ast.Attributes {
	if b.Attrs == nil {
		b.Attrs = ast.Attributes{}
	}
	return b.Attrs
}

// GetPos returns the source position this node was elaborated from, or
// the zero Position for control synthesized by a pass.
func (b *Base) GetPos() token.Position { return b.Pos }

// CopyAttrs builds a Base carrying a fresh copy of attrs and pos, used
// when elaboration lowers an ast control node (which owns its own
// attribute map) into its ir counterpart.
func CopyAttrs(attrs ast.Attributes, pos token.Position) Base {
	cp := make(ast.Attributes, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	return Base{Attrs: cp, Pos: pos}
}

// Empty is a no-op control node; the only node kind `@sync` attributes are
// legal on (§4.4 precondition).
type Empty struct{ Base }

func (*Empty) controlNode() {}

// Enable runs a single group to completion.
type Enable struct {
	Base
	Group string
}

func (*Enable) controlNode() {}

// InvokeArg binds one input/output port of an invoked cell.
type InvokeArg struct {
	Port string
	Src  PortRef
}

// Invoke runs one cell's go/done protocol with bound arguments.
type Invoke struct {
	Base
	Instance string
	Args     []InvokeArg
}

func (*Invoke) controlNode() {}

// Seq runs its statements one after another.
type Seq struct {
	Base
	Stmts []Control
}

func (*Seq) controlNode() {}

// Par runs its statements concurrently, finishing when all finish.
type Par struct {
	Base
	Stmts []Control
}

func (*Par) controlNode() {}

// If evaluates Cond (optionally gated by running CondGroup first when
// EnableCond is true — the unification of the original If/Ifen split,
// Open Question (a)) and runs TBranch or FBranch.
type If struct {
	Base
	Cond       PortRef
	CondGroup  string
	EnableCond bool
	TBranch    Control
	FBranch    Control
}

func (*If) controlNode() {}

// While repeatedly evaluates Cond (optionally via CondGroup) and runs Body
// while it holds.
type While struct {
	Base
	Cond      PortRef
	CondGroup string
	Body      Control
}

func (*While) controlNode() {}

// Print emits the current value of Target for debugging; never lowered
// away by any pass, since it has no structural effect.
type Print struct {
	Base
	Target PortRef
}

func (*Print) controlNode() {}

// Disable explicitly de-asserts a group's go signal; used by generated
// control (e.g. clear_n groups never need one, but kept for completeness
// with the surface grammar, §3 "Control").
type Disable struct {
	Base
	Group string
}

func (*Disable) controlNode() {}
