package ast

// Visitor is the dispatch target for Node.Accept, following funxy's
// Accept/VisitXxx convention (internal/ast/ast_core.go in the teacher).
// The surface AST's own visitor is only used by the parser/printer
// collaborators; the typed IR's control tree has its own, richer visitor
// in internal/pass (Action-returning, with pre/post hooks) since that is
// where the pass framework operates.
type Visitor interface {
	VisitNamespaceDef(n *NamespaceDef)
	VisitComponentDef(c *ComponentDef)
	VisitThisPort(p *ThisPort)
	VisitCompPort(p *CompPort)
	VisitGroupPort(p *GroupPort)
	VisitDeclStructure(d *DeclStructure)
	VisitStdStructure(s *StdStructure)
	VisitWireStructure(w *WireStructure)
	VisitGroupDef(g *GroupDef)
	VisitTrueGuard(g *TrueGuard)
	VisitPortGuard(g *PortGuard)
	VisitNotGuard(g *NotGuard)
	VisitAndGuard(g *AndGuard)
	VisitOrGuard(g *OrGuard)
	VisitEmpty(e *EmptyControl)
	VisitEnable(e *EnableControl)
	VisitInvoke(i *InvokeControl)
	VisitSeq(s *SeqControl)
	VisitPar(p *ParControl)
	VisitIf(i *IfControl)
	VisitWhile(w *WhileControl)
	VisitPrint(p *PrintControl)
	VisitDisable(d *DisableControl)
}

// BaseVisitor implements Visitor with no-op methods so callers can embed it
// and override only the hooks they care about (e.g. a namespace walker that
// only needs VisitComponentDef).
type BaseVisitor struct{}

func (BaseVisitor) VisitNamespaceDef(*NamespaceDef)     {}
func (BaseVisitor) VisitComponentDef(*ComponentDef)     {}
func (BaseVisitor) VisitThisPort(*ThisPort)             {}
func (BaseVisitor) VisitCompPort(*CompPort)             {}
func (BaseVisitor) VisitGroupPort(*GroupPort)           {}
func (BaseVisitor) VisitDeclStructure(*DeclStructure)   {}
func (BaseVisitor) VisitStdStructure(*StdStructure)     {}
func (BaseVisitor) VisitWireStructure(*WireStructure)   {}
func (BaseVisitor) VisitGroupDef(*GroupDef)             {}
func (BaseVisitor) VisitTrueGuard(*TrueGuard)           {}
func (BaseVisitor) VisitPortGuard(*PortGuard)           {}
func (BaseVisitor) VisitNotGuard(*NotGuard)             {}
func (BaseVisitor) VisitAndGuard(*AndGuard)             {}
func (BaseVisitor) VisitOrGuard(*OrGuard)               {}
func (BaseVisitor) VisitEmpty(*EmptyControl)            {}
func (BaseVisitor) VisitEnable(*EnableControl)          {}
func (BaseVisitor) VisitInvoke(*InvokeControl)          {}
func (BaseVisitor) VisitSeq(*SeqControl)                {}
func (BaseVisitor) VisitPar(*ParControl)                {}
func (BaseVisitor) VisitIf(*IfControl)                  {}
func (BaseVisitor) VisitWhile(*WhileControl)            {}
func (BaseVisitor) VisitPrint(*PrintControl)            {}
func (BaseVisitor) VisitDisable(*DisableControl)        {}
