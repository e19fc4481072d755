package passes

import (
	"github.com/ilang-hdl/ilc/internal/analysis"
	"github.com/ilang-hdl/ilc/internal/ir"
	"github.com/ilang-hdl/ilc/internal/pass"
)

// GroupSplit implements group-to-sequence splitting (§4.5): factor a group
// implementing two sequentially dependent stateful operations into a
// sequence of two smaller groups, exposing finer-grained scheduling to
// later passes (original_source/calyx/src/passes/group_to_seq.rs).
type GroupSplit struct {
	pass.BaseVisitor
	comp *ir.Component
	// rewrites maps an original splittable group's name to the Seq its
	// Enable sites must be replaced with. Populated once, up front, in
	// StartComponent, since the applicability predicate only looks at a
	// group's own assignments and does not depend on traversal order.
	rewrites map[string]*rewrite
	drained  []string
}

type rewrite struct {
	beg, end string
}

// NewGroupSplit constructs a fresh group-to-sequence splitting pass
// instance.
func NewGroupSplit() *GroupSplit {
	return &GroupSplit{}
}

func (gs *GroupSplit) StartComponent(comp *ir.Component) error {
	gs.comp = comp
	gs.rewrites = make(map[string]*rewrite)
	gs.drained = nil

	for _, g := range comp.GroupsInOrder() {
		begName, endName, ok := gs.trySplit(g)
		if !ok {
			continue
		}
		gs.rewrites[g.Name] = &rewrite{beg: begName, end: endName}
		gs.drained = append(gs.drained, g.Name)
	}
	return nil
}

func (gs *GroupSplit) FinishComponent(comp *ir.Component) error {
	for _, name := range gs.drained {
		if g, ok := comp.Groups[name]; ok && len(g.Assignments) == 0 {
			comp.RemoveGroup(name)
		}
	}
	gs.comp = nil
	return nil
}

// VisitEnable replaces every Enable(G) referencing a group that was
// rewritten with the recorded Seq[Enable(beg), Enable(end)] (§4.5
// "Rewrite map", "During the subsequent Enable visitor pass, replace
// every Enable(G) with the recorded sequence"). A fresh Seq/Enable pair is
// built per call site so no two sites in the tree alias the same nodes.
func (gs *GroupSplit) VisitEnable(n *ir.Enable) (pass.Result, error) {
	rw, ok := gs.rewrites[n.Group]
	if !ok {
		return pass.ContinueResult(), nil
	}
	return pass.ChangeResult(&ir.Seq{Stmts: []ir.Control{
		&ir.Enable{Group: rw.beg},
		&ir.Enable{Group: rw.end},
	}}), nil
}

// trySplit checks g against the §4.5 applicability predicate and, if it
// holds, performs the rewrite: synthesizing beg_spl_<g> and end_spl_<g> on
// the component and draining g's own assignment list. Returns ok=false
// (never an error, §4.5 "Non-applicability") whenever any condition fails.
func (gs *GroupSplit) trySplit(g *ir.Group) (begName, endName string, ok bool) {
	comp := gs.comp

	written := analysis.WriteSet(g.Assignments)
	if len(written) != 2 {
		return "", "", false
	}

	// Find the go-done assignment (B.go = A.done); it names A and B
	// unambiguously, independent of write-set iteration order.
	goDoneIdx := -1
	var a, b string
	for i, asmt := range g.Assignments {
		if asmt.Dst.Kind == ir.PortCell && asmt.Dst.Name == "go" &&
			asmt.Src.Kind == ir.PortCell && asmt.Src.Name == "done" && asmt.Dst.Cell != asmt.Src.Cell {
			goDoneIdx = i
			b = asmt.Dst.Cell
			a = asmt.Src.Cell
			break
		}
	}
	if goDoneIdx == -1 {
		return "", "", false
	}
	if !((written[0] == a && written[1] == b) || (written[0] == b && written[1] == a)) {
		return "", "", false
	}

	cellA, okA := comp.Cells[a]
	cellB, okB := comp.Cells[b]
	if !okA || !okB || !eligibleCell(cellA) || !eligibleCell(cellB) {
		return "", "", false
	}

	groupDoneIdx := -1
	for i, asmt := range g.Assignments {
		if asmt.Dst.Kind == ir.PortGroupDone && asmt.Dst.Group == g.Name {
			if asmt.Src.Kind != ir.PortCell || asmt.Src.Cell != b || asmt.Src.Name != "done" {
				// Some other assignment targets G.done: disqualifying
				// per "there is no other assignment targeting G.done".
				return "", "", false
			}
			if groupDoneIdx != -1 {
				return "", "", false
			}
			groupDoneIdx = i
		}
	}
	if groupDoneIdx == -1 {
		return "", "", false
	}

	// Every read of a port on A must be either A.done or a `stable`
	// attributed port.
	for _, asmt := range g.Assignments {
		for _, p := range analysis.PortReads(asmt) {
			if p.Kind != ir.PortCell || p.Cell != a {
				continue
			}
			if p.Name == "done" {
				continue
			}
			port, ok := cellA.Port(p.Name)
			if !ok || !port.HasAttr("stable") {
				return "", "", false
			}
		}
	}

	var firstAsmts, sndAsmts []*ir.Assignment
	for i, asmt := range g.Assignments {
		switch {
		case i == goDoneIdx || i == groupDoneIdx:
			continue
		case asmt.Dst.Kind == ir.PortCell && asmt.Dst.Cell == a:
			if ir.IsNotDone(asmt.Guard, a) {
				firstAsmts = append(firstAsmts, &ir.Assignment{Dst: asmt.Dst, Src: asmt.Src, Guard: ir.True{}, Attrs: asmt.Attrs})
			} else {
				firstAsmts = append(firstAsmts, asmt)
			}
		case asmt.Dst.Kind == ir.PortCell && asmt.Dst.Cell == b:
			sndAsmts = append(sndAsmts, asmt)
		default:
			// An assignment targeting neither A nor B would mean more
			// than two cells are written, already ruled out above.
		}
	}
	sndAsmts = append(sndAsmts, ir.NewAssignment(ir.CellPort(b, "go"), constOut(comp, 1)))

	groupDoneGuard := g.Assignments[groupDoneIdx].Guard

	begName = SplitBegName(g.Name)
	endName = SplitEndName(g.Name)

	beg := ir.NewGroup(begName)
	beg.Assignments = append(beg.Assignments, firstAsmts...)
	beg.Add(ir.NewAssignment(ir.GroupDone(begName), ir.CellPort(a, "done")))
	comp.AddGroup(beg)

	end := ir.NewGroup(endName)
	end.Assignments = append(end.Assignments, sndAsmts...)
	end.Add(ir.Guarded(ir.GroupDone(endName), ir.CellPort(b, "done"), groupDoneGuard))
	comp.AddGroup(end)

	g.Assignments = nil
	return begName, endName, true
}

// SplitBegName and SplitEndName are re-exported here for readability at
// call sites; the canonical definitions are package-level functions in ir,
// beside the barrier pass's naming helpers on ir.Component.
func SplitBegName(group string) string { return ir.SplitBegName(group) }
func SplitEndName(group string) string { return ir.SplitEndName(group) }

// eligibleCell reports whether a cell may stand in for A or B: a
// sub-component, or a non-combinational primitive (§4.5 predicate 2).
func eligibleCell(c *ir.Cell) bool {
	return c.Kind == ir.CellComponent || !c.IsComb
}
