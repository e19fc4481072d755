// Package passes holds the two representative transformation passes:
// synchronization-barrier lowering and group-to-sequence splitting (§4.4,
// §4.5).
package passes

import (
	"fmt"

	"github.com/ilang-hdl/ilc/internal/ast"
	"github.com/ilang-hdl/ilc/internal/diagnostics"
	"github.com/ilang-hdl/ilc/internal/ir"
	"github.com/ilang-hdl/ilc/internal/pass"
	"github.com/ilang-hdl/ilc/internal/token"
)

const syncAttr = "sync"

// posGetter is satisfied by every concrete ir.Control (they all embed
// ir.Base), even though ir.Control itself doesn't require GetPos.
type posGetter interface{ GetPos() token.Position }

func posOf(node ir.Control) token.Position {
	if pg, ok := node.(posGetter); ok {
		return pg.GetPos()
	}
	return token.Position{}
}

// bit1 is the one-bit primitive signature every barrier state cell and
// flag cell share (a std_reg(1) in all but name).
var bit1 = &ast.Signature{
	Inputs:  []*ast.Portdef{{Name: "in", Width: 1}, {Name: "write_en", Width: 1}},
	Outputs: []*ast.Portdef{{Name: "out", Width: 1}, {Name: "done", Width: 1}},
}

// constOut returns the cell name of a 1-bit constant-source cell holding
// value, creating it on comp the first time it's needed. Every
// structurally-synthesized "always 1" or "always 0" driver in this pass
// goes through a real cell rather than a magic sentinel port, the same
// way a constant value is just another primitive instance in the
// surface language (§3 "Cell").
func constOut(comp *ir.Component, value uint64) ir.PortRef {
	name := fmt.Sprintf("%s__const1_%d", comp.Name, value)
	if _, ok := comp.Cells[name]; !ok {
		sig := &ast.Signature{Outputs: []*ast.Portdef{{Name: "out", Width: 1}}}
		comp.AddCell(ir.NewCell(name, ir.CellPrimitive, "std_const", sig, true))
	}
	return ir.CellPort(name, "out")
}

// barrierEntry is one barrier id's shared state within the enclosing Par:
// its state register and the conjunction of every participating branch's
// flag output (§4.4 "Let B be the map barrierId → (reg, guard)").
type barrierEntry struct {
	reg   string
	guard ir.Guard
}

// Barrier implements synchronization-barrier lowering (§4.4). It holds the
// component currently being visited so its helper methods (lowerPar,
// rewriteBranch, lowerBarrierPoint) can add cells and groups without
// threading it through every call; the driver guarantees only one
// component is ever in flight at a time (§5), so a single mutable field is
// safe to reuse across a StartComponent/FinishComponent pair.
type Barrier struct {
	pass.BaseVisitor
	comp *ir.Component
}

// NewBarrier constructs a fresh barrier-lowering pass instance.
func NewBarrier() *Barrier { return &Barrier{} }

func (b *Barrier) StartComponent(comp *ir.Component) error {
	b.comp = comp
	return nil
}

func (b *Barrier) FinishComponent(*ir.Component) error {
	b.comp = nil
	return nil
}

// VisitEnable and VisitInvoke enforce the precondition that `@sync` may
// only appear on Empty nodes.
func (b *Barrier) VisitEnable(n *ir.Enable) (pass.Result, error) {
	if n.GetAttributes().Has(syncAttr) {
		return pass.Result{}, diagnostics.MalformedControl(n.Pos, "@sync is only legal on an empty control node, not an enable")
	}
	return pass.ContinueResult(), nil
}

func (b *Barrier) VisitInvoke(n *ir.Invoke) (pass.Result, error) {
	if n.GetAttributes().Has(syncAttr) {
		return pass.Result{}, diagnostics.MalformedControl(n.Pos, "@sync is only legal on an empty control node, not an invoke")
	}
	return pass.ContinueResult(), nil
}

// FinishPar does all of §4.4's work for one Par node, in post-order: by
// leaving StartPar at its BaseVisitor default (Continue), the driver
// descends into every branch first, so a Par nested inside this Par's
// branches runs its own StartPar/descend/FinishPar — and is fully lowered —
// before this FinishPar ever runs. rewriteBranch's nested-Par case can then
// safely leave a Par it encounters alone: it has already been lowered.
func (b *Barrier) FinishPar(n *ir.Par) (pass.Result, error) {
	if err := b.lowerPar(n); err != nil {
		return pass.Result{}, err
	}
	return pass.ContinueResult(), nil
}

func (b *Barrier) lowerPar(n *ir.Par) error {
	comp := b.comp
	parIdx := comp.NextParIndex()

	B := make(map[int64]*barrierEntry)
	var idOrder []int64

	for branchIdx, branch := range n.Stmts {
		seen := make(map[int64]bool)
		rewritten, err := b.rewriteBranch(branch, parIdx, branchIdx, B, &idOrder, seen)
		if err != nil {
			return err
		}
		n.Stmts[branchIdx] = rewritten
	}

	for _, id := range idOrder {
		entry := B[id]
		comp.ContinuousAssignments = append(comp.ContinuousAssignments,
			ir.Guarded(ir.CellPort(entry.reg, "in"), constOut(comp, 1), entry.guard))
		comp.ContinuousAssignments = append(comp.ContinuousAssignments,
			ir.NewAssignment(ir.CellPort(entry.reg, "write_en"), constOut(comp, 1)))
	}
	return nil
}

// rewriteBranch walks one Par branch in source order, replacing every
// `@sync(n)` Empty node per §4.4's three numbered steps. It does not lower a
// nested Par itself (Open Question (c)): by the time FinishPar calls this,
// the generic driver has already descended into and lowered any nested Par
// on its own, independent, FinishPar call, so rewriteBranch just leaves it
// as it finds it.
func (b *Barrier) rewriteBranch(node ir.Control, parIdx, branchIdx int, B map[int64]*barrierEntry, idOrder *[]int64, seen map[int64]bool) (ir.Control, error) {
	// The generic descend already ran VisitEnable/VisitInvoke (and every
	// other hook) over this branch before FinishPar called rewriteBranch, so
	// an Enable/Invoke bearing @sync was already rejected there. Re-check
	// the precondition here too, for every node kind but the one it's legal
	// on, since rewriteBranch also walks Seq/If/While nodes the generic
	// hooks don't inspect for this attribute.
	if _, isEmpty := node.(*ir.Empty); !isEmpty {
		if _, ok := node.GetAttributes().Get(syncAttr); ok {
			return nil, diagnostics.MalformedControl(posOf(node), "@sync is only legal on an empty control node")
		}
	}

	switch n := node.(type) {
	case *ir.Empty:
		id, ok := n.GetAttributes().Get(syncAttr)
		if !ok {
			return node, nil
		}
		return b.lowerBarrierPoint(n, id, parIdx, branchIdx, B, idOrder, seen)

	case *ir.Seq:
		for i := range n.Stmts {
			rewritten, err := b.rewriteBranch(n.Stmts[i], parIdx, branchIdx, B, idOrder, seen)
			if err != nil {
				return nil, err
			}
			n.Stmts[i] = rewritten
		}
		return n, nil

	case *ir.If:
		tb, err := b.rewriteBranch(n.TBranch, parIdx, branchIdx, B, idOrder, seen)
		if err != nil {
			return nil, err
		}
		n.TBranch = tb
		fb, err := b.rewriteBranch(n.FBranch, parIdx, branchIdx, B, idOrder, seen)
		if err != nil {
			return nil, err
		}
		n.FBranch = fb
		return n, nil

	case *ir.While:
		body, err := b.rewriteBranch(n.Body, parIdx, branchIdx, B, idOrder, seen)
		if err != nil {
			return nil, err
		}
		n.Body = body
		return n, nil

	default:
		// *ir.Par: already lowered by its own FinishPar during the generic
		// descend that ran before this FinishPar, so there is nothing left
		// to rewrite inside it. *ir.Enable, *ir.Invoke, *ir.Print,
		// *ir.Disable: none can carry a barrier point of their own.
		return node, nil
	}
}

func (b *Barrier) lowerBarrierPoint(empty *ir.Empty, id int64, parIdx, branchIdx int, B map[int64]*barrierEntry, idOrder *[]int64, seen map[int64]bool) (ir.Control, error) {
	comp := b.comp

	entry, ok := B[id]
	if !ok {
		regName := comp.BarrierRegName(parIdx, id)
		comp.AddCell(ir.NewCell(regName, ir.CellPrimitive, "std_reg", bit1, false))
		entry = &barrierEntry{reg: regName, guard: ir.True{}}
		B[id] = entry
		*idOrder = append(*idOrder, id)
	}

	flagName := comp.BarrierFlagName(parIdx, id, branchIdx)
	if !seen[id] {
		comp.AddCell(ir.NewCell(flagName, ir.CellPrimitive, "std_reg", bit1, false))
		entry.guard = ir.And{L: entry.guard, R: ir.Atom{Port: ir.CellPort(flagName, "out")}}
		seen[id] = true
	}

	waitName := comp.WaitGroupName(parIdx, id, branchIdx)
	if _, ok := comp.Groups[waitName]; !ok {
		wait := ir.NewGroup(waitName)
		wait.Add(ir.NewAssignment(ir.CellPort(flagName, "in"), constOut(comp, 1)))
		wait.Add(ir.NewAssignment(ir.CellPort(flagName, "write_en"), constOut(comp, 1)))
		wait.Add(ir.NewAssignment(ir.GroupDone(waitName), ir.CellPort(B[id].reg, "out")))
		comp.AddGroup(wait)
	}

	clearName := comp.ClearGroupName(parIdx, id, branchIdx)
	if _, ok := comp.Groups[clearName]; !ok {
		clear := ir.NewGroup(clearName)
		clear.Add(ir.NewAssignment(ir.CellPort(flagName, "in"), constOut(comp, 0)))
		clear.Add(ir.NewAssignment(ir.CellPort(flagName, "write_en"), constOut(comp, 1)))
		clear.Add(ir.NewAssignment(ir.GroupDone(clearName), constOut(comp, 1)))
		comp.AddGroup(clear)
	}

	_ = empty
	return &ir.Seq{Stmts: []ir.Control{
		&ir.Enable{Group: waitName},
		&ir.Enable{Group: clearName},
	}}, nil
}
