package passes_test

import (
	"testing"

	"github.com/ilang-hdl/ilc/internal/ast"
	"github.com/ilang-hdl/ilc/internal/ir"
	"github.com/ilang-hdl/ilc/internal/pass"
	"github.com/ilang-hdl/ilc/internal/passes"
)

var regSig = &ast.Signature{
	Inputs:  []*ast.Portdef{{Name: "in", Width: 8}, {Name: "go", Width: 1}},
	Outputs: []*ast.Portdef{{Name: "out", Width: 8}, {Name: "done", Width: 1}},
}

// buildSplittableComponent builds a component with two sequentially
// dependent registers A and B wired through a single group do_both that
// satisfies §4.5's applicability predicate: A.go fires unconditionally,
// B.go fires off A.done, the group's own done is B.done, and the only
// other read of A is A.done itself.
func buildSplittableComponent(t *testing.T) *ir.Component {
	t.Helper()
	comp := ir.New("main", &ast.Signature{}, nil)
	comp.AddCell(ir.NewCell("a", ir.CellPrimitive, "std_reg", regSig, false))
	comp.AddCell(ir.NewCell("b", ir.CellPrimitive, "std_reg", regSig, false))

	g := ir.NewGroup("do_both")
	g.Add(ir.NewAssignment(ir.CellPort("a", "go"), ir.BoundaryPort("start")))
	g.Add(ir.NewAssignment(ir.CellPort("b", "go"), ir.CellPort("a", "done")))
	g.Add(ir.NewAssignment(ir.GroupDone("do_both"), ir.CellPort("b", "done")))
	comp.AddGroup(g)

	comp.Control = &ir.Seq{Stmts: []ir.Control{&ir.Enable{Group: "do_both"}}}
	return comp
}

func TestGroupSplitAppliesToTwoStageGroup(t *testing.T) {
	comp := buildSplittableComponent(t)

	if err := pass.Run(passes.NewGroupSplit(), comp); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, ok := comp.Groups["do_both"]; ok {
		t.Fatal("expected do_both to be drained and removed after the split")
	}
	begName := passes.SplitBegName("do_both")
	endName := passes.SplitEndName("do_both")
	if _, ok := comp.Groups[begName]; !ok {
		t.Fatalf("expected %s", begName)
	}
	if _, ok := comp.Groups[endName]; !ok {
		t.Fatalf("expected %s", endName)
	}

	seq, ok := comp.Control.(*ir.Seq)
	if !ok || len(seq.Stmts) != 1 {
		t.Fatalf("expected a single top-level Seq statement, got %#v", comp.Control)
	}
	inner, ok := seq.Stmts[0].(*ir.Seq)
	if !ok || len(inner.Stmts) != 2 {
		t.Fatalf("expected Enable(do_both) to be replaced by a 2-statement Seq, got %#v", seq.Stmts[0])
	}
	e0, ok0 := inner.Stmts[0].(*ir.Enable)
	e1, ok1 := inner.Stmts[1].(*ir.Enable)
	if !ok0 || !ok1 || e0.Group != begName || e1.Group != endName {
		t.Fatalf("expected Enable(%s), Enable(%s); got %#v, %#v", begName, endName, inner.Stmts[0], inner.Stmts[1])
	}
}

// TestGroupSplitDoesNotApplyWithoutStableAttr covers S6: a third
// assignment reads A.out directly (not just A.done), and A.out carries no
// `stable` attribute, so the predicate must reject the split.
func TestGroupSplitDoesNotApplyWithoutStableAttr(t *testing.T) {
	comp := ir.New("main", &ast.Signature{}, nil)
	comp.AddCell(ir.NewCell("a", ir.CellPrimitive, "std_reg", regSig, false))
	comp.AddCell(ir.NewCell("b", ir.CellPrimitive, "std_reg", regSig, false))

	g := ir.NewGroup("do_both")
	g.Add(ir.NewAssignment(ir.CellPort("a", "go"), ir.BoundaryPort("start")))
	g.Add(ir.NewAssignment(ir.CellPort("b", "go"), ir.CellPort("a", "done")))
	// This extra read of A.out is not A.done and A.out has no stable
	// attribute, disqualifying the group from splitting.
	g.Add(ir.NewAssignment(ir.CellPort("b", "in"), ir.CellPort("a", "out")))
	g.Add(ir.NewAssignment(ir.GroupDone("do_both"), ir.CellPort("b", "done")))
	comp.AddGroup(g)
	comp.Control = &ir.Seq{Stmts: []ir.Control{&ir.Enable{Group: "do_both"}}}

	if err := pass.Run(passes.NewGroupSplit(), comp); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, ok := comp.Groups["do_both"]; !ok {
		t.Fatal("expected do_both to remain untouched since the predicate does not hold")
	}
	seq := comp.Control.(*ir.Seq)
	en, ok := seq.Stmts[0].(*ir.Enable)
	if !ok || en.Group != "do_both" {
		t.Fatalf("expected Enable(do_both) to remain unchanged, got %#v", seq.Stmts[0])
	}
}

// TestGroupSplitAppliesWithStableRead covers the other half of predicate 4:
// a read of A.out is permitted, not just A.done, when A.out carries the
// `stable` attribute — the mirror image of
// TestGroupSplitDoesNotApplyWithoutStableAttr.
func TestGroupSplitAppliesWithStableRead(t *testing.T) {
	stableRegSig := &ast.Signature{
		Inputs:  []*ast.Portdef{{Name: "in", Width: 8}, {Name: "go", Width: 1}},
		Outputs: []*ast.Portdef{{Name: "out", Width: 8, Attrs: ast.Attributes{"stable": 1}}, {Name: "done", Width: 1}},
	}
	comp := ir.New("main", &ast.Signature{}, nil)
	comp.AddCell(ir.NewCell("a", ir.CellPrimitive, "std_reg", stableRegSig, false))
	comp.AddCell(ir.NewCell("b", ir.CellPrimitive, "std_reg", regSig, false))

	g := ir.NewGroup("do_both")
	g.Add(ir.NewAssignment(ir.CellPort("a", "go"), ir.BoundaryPort("start")))
	g.Add(ir.NewAssignment(ir.CellPort("b", "go"), ir.CellPort("a", "done")))
	// A.out is read here, but it carries `stable`, so it doesn't disqualify
	// the split the way the unmarked read in
	// TestGroupSplitDoesNotApplyWithoutStableAttr does.
	g.Add(ir.NewAssignment(ir.CellPort("b", "in"), ir.CellPort("a", "out")))
	g.Add(ir.NewAssignment(ir.GroupDone("do_both"), ir.CellPort("b", "done")))
	comp.AddGroup(g)
	comp.Control = &ir.Seq{Stmts: []ir.Control{&ir.Enable{Group: "do_both"}}}

	if err := pass.Run(passes.NewGroupSplit(), comp); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, ok := comp.Groups["do_both"]; ok {
		t.Fatal("expected do_both to be drained and removed: the stable-attributed read should not block the split")
	}
	begName := passes.SplitBegName("do_both")
	endName := passes.SplitEndName("do_both")
	if _, ok := comp.Groups[begName]; !ok {
		t.Fatalf("expected %s", begName)
	}
	if _, ok := comp.Groups[endName]; !ok {
		t.Fatalf("expected %s", endName)
	}
}

// TestGroupSplitIneligibleForCombinationalCells covers the "A and B must
// be stateful" half of the predicate: a comb cell can't stand in for
// either role even if the go/done shape otherwise matches.
func TestGroupSplitIneligibleForCombinationalCells(t *testing.T) {
	comp := ir.New("main", &ast.Signature{}, nil)
	comp.AddCell(ir.NewCell("a", ir.CellPrimitive, "std_add", regSig, true)) // comb
	comp.AddCell(ir.NewCell("b", ir.CellPrimitive, "std_reg", regSig, false))

	g := ir.NewGroup("do_both")
	g.Add(ir.NewAssignment(ir.CellPort("a", "go"), ir.BoundaryPort("start")))
	g.Add(ir.NewAssignment(ir.CellPort("b", "go"), ir.CellPort("a", "done")))
	g.Add(ir.NewAssignment(ir.GroupDone("do_both"), ir.CellPort("b", "done")))
	comp.AddGroup(g)
	comp.Control = &ir.Seq{Stmts: []ir.Control{&ir.Enable{Group: "do_both"}}}

	if err := pass.Run(passes.NewGroupSplit(), comp); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := comp.Groups["do_both"]; !ok {
		t.Fatal("expected do_both to remain untouched: A is combinational, ineligible")
	}
}

// TestGroupSplitRejectsAmbiguousGroupDone covers the "no other assignment
// targets G.done" half of the predicate: a second write to the group's own
// done signal disqualifies the split even when the go/done shape matches.
func TestGroupSplitRejectsAmbiguousGroupDone(t *testing.T) {
	comp := ir.New("main", &ast.Signature{}, nil)
	comp.AddCell(ir.NewCell("a", ir.CellPrimitive, "std_reg", regSig, false))
	comp.AddCell(ir.NewCell("b", ir.CellPrimitive, "std_reg", regSig, false))

	g := ir.NewGroup("do_both")
	g.Add(ir.NewAssignment(ir.CellPort("a", "go"), ir.BoundaryPort("start")))
	g.Add(ir.NewAssignment(ir.CellPort("b", "go"), ir.CellPort("a", "done")))
	g.Add(ir.NewAssignment(ir.GroupDone("do_both"), ir.CellPort("b", "done")))
	g.Add(ir.NewAssignment(ir.GroupDone("do_both"), ir.CellPort("a", "done")))
	comp.AddGroup(g)
	comp.Control = &ir.Seq{Stmts: []ir.Control{&ir.Enable{Group: "do_both"}}}

	if err := pass.Run(passes.NewGroupSplit(), comp); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := comp.Groups["do_both"]; !ok {
		t.Fatal("expected do_both to remain untouched: ambiguous group-done source")
	}
}
