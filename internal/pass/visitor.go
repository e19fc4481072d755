package pass

import "github.com/ilang-hdl/ilc/internal/ir"

// Visitor is the capability interface a pass implements. Every hook
// defaults to ContinueResult() via BaseVisitor; a pass embeds BaseVisitor
// and overrides only the hooks it cares about (§4.3 "deterministic hooks
// per construct").
type Visitor interface {
	StartComponent(comp *ir.Component) error
	FinishComponent(comp *ir.Component) error

	StartSeq(n *ir.Seq) (Result, error)
	FinishSeq(n *ir.Seq) (Result, error)
	StartPar(n *ir.Par) (Result, error)
	FinishPar(n *ir.Par) (Result, error)
	StartIf(n *ir.If) (Result, error)
	FinishIf(n *ir.If) (Result, error)
	StartWhile(n *ir.While) (Result, error)
	FinishWhile(n *ir.While) (Result, error)

	VisitEnable(n *ir.Enable) (Result, error)
	VisitInvoke(n *ir.Invoke) (Result, error)
	VisitEmpty(n *ir.Empty) (Result, error)
	VisitPrint(n *ir.Print) (Result, error)
	VisitDisable(n *ir.Disable) (Result, error)
}

// BaseVisitor implements Visitor with Continue everywhere, so a pass only
// overrides the hooks its transformation actually needs.
type BaseVisitor struct{}

func (BaseVisitor) StartComponent(*ir.Component) error  { return nil }
func (BaseVisitor) FinishComponent(*ir.Component) error { return nil }

func (BaseVisitor) StartSeq(*ir.Seq) (Result, error)     { return ContinueResult(), nil }
func (BaseVisitor) FinishSeq(*ir.Seq) (Result, error)    { return ContinueResult(), nil }
func (BaseVisitor) StartPar(*ir.Par) (Result, error)     { return ContinueResult(), nil }
func (BaseVisitor) FinishPar(*ir.Par) (Result, error)    { return ContinueResult(), nil }
func (BaseVisitor) StartIf(*ir.If) (Result, error)       { return ContinueResult(), nil }
func (BaseVisitor) FinishIf(*ir.If) (Result, error)      { return ContinueResult(), nil }
func (BaseVisitor) StartWhile(*ir.While) (Result, error) { return ContinueResult(), nil }
func (BaseVisitor) FinishWhile(*ir.While) (Result, error){ return ContinueResult(), nil }

func (BaseVisitor) VisitEnable(*ir.Enable) (Result, error)   { return ContinueResult(), nil }
func (BaseVisitor) VisitInvoke(*ir.Invoke) (Result, error)   { return ContinueResult(), nil }
func (BaseVisitor) VisitEmpty(*ir.Empty) (Result, error)     { return ContinueResult(), nil }
func (BaseVisitor) VisitPrint(*ir.Print) (Result, error)     { return ContinueResult(), nil }
func (BaseVisitor) VisitDisable(*ir.Disable) (Result, error) { return ContinueResult(), nil }
