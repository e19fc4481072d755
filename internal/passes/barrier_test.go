package passes_test

import (
	"testing"

	"github.com/ilang-hdl/ilc/internal/ast"
	"github.com/ilang-hdl/ilc/internal/ir"
	"github.com/ilang-hdl/ilc/internal/pass"
	"github.com/ilang-hdl/ilc/internal/passes"
)

func syncEmpty(id int64) *ir.Empty {
	return &ir.Empty{Base: ir.Base{Attrs: ast.Attributes{"sync": id}}}
}

// TestBarrierLowersTwoBranchPar covers §4.4's concrete shape: a Par with
// two branches each carrying a single @sync(1) point lowers into two
// rewritten Seq branches, one shared barrier register, one flag register
// per branch, and the two continuous assignments driving the barrier
// register.
func TestBarrierLowersTwoBranchPar(t *testing.T) {
	comp := ir.New("main", &ast.Signature{}, nil)
	par := &ir.Par{Stmts: []ir.Control{syncEmpty(1), syncEmpty(1)}}
	comp.Control = par

	if err := pass.Run(passes.NewBarrier(), comp); err != nil {
		t.Fatalf("Run: %v", err)
	}

	regName := comp.BarrierRegName(0, 1)
	if _, ok := comp.Cells[regName]; !ok {
		t.Fatalf("expected shared barrier register %s", regName)
	}
	flag0 := comp.BarrierFlagName(0, 1, 0)
	flag1 := comp.BarrierFlagName(0, 1, 1)
	if _, ok := comp.Cells[flag0]; !ok {
		t.Fatalf("expected branch-0 flag register %s", flag0)
	}
	if _, ok := comp.Cells[flag1]; !ok {
		t.Fatalf("expected branch-1 flag register %s", flag1)
	}

	if got := len(comp.ContinuousAssignments); got != 2 {
		t.Fatalf("expected 2 continuous assignments driving the barrier register, got %d", got)
	}
	for _, a := range comp.ContinuousAssignments {
		if a.Dst.Kind != ir.PortCell || a.Dst.Cell != regName {
			t.Fatalf("expected every continuous assignment to target %s, got %+v", regName, a.Dst)
		}
	}

	gotPar, ok := comp.Control.(*ir.Par)
	if !ok {
		t.Fatalf("expected the top-level Par to remain, got %#v", comp.Control)
	}
	for i, branch := range gotPar.Stmts {
		seq, ok := branch.(*ir.Seq)
		if !ok || len(seq.Stmts) != 2 {
			t.Fatalf("branch %d: expected a 2-statement Seq, got %#v", i, branch)
		}
		if _, ok := seq.Stmts[0].(*ir.Enable); !ok {
			t.Fatalf("branch %d: expected first statement to be an Enable (wait group)", i)
		}
		if _, ok := seq.Stmts[1].(*ir.Enable); !ok {
			t.Fatalf("branch %d: expected second statement to be an Enable (clear group)", i)
		}
	}

	waitName := comp.WaitGroupName(0, 1, 0)
	clearName := comp.ClearGroupName(0, 1, 0)
	if _, ok := comp.Groups[waitName]; !ok {
		t.Fatalf("expected wait group %s", waitName)
	}
	if _, ok := comp.Groups[clearName]; !ok {
		t.Fatalf("expected clear group %s", clearName)
	}
}

// TestBarrierRejectsSyncOnEnable covers S4: @sync on a non-Empty node is
// malformed control, not silently ignored.
func TestBarrierRejectsSyncOnEnable(t *testing.T) {
	comp := ir.New("main", &ast.Signature{}, nil)
	en := &ir.Enable{Base: ir.Base{Attrs: ast.Attributes{"sync": 1}}, Group: "g"}
	comp.Control = &ir.Par{Stmts: []ir.Control{en, &ir.Empty{}}}

	err := pass.Run(passes.NewBarrier(), comp)
	if err == nil {
		t.Fatal("expected MalformedControl for @sync on an Enable")
	}
}

// anySyncAttr reports whether node or any of its descendants still carries
// a `sync` attribute, the P3 property barrier lowering must establish.
func anySyncAttr(node ir.Control) bool {
	if node == nil {
		return false
	}
	if _, ok := node.GetAttributes().Get("sync"); ok {
		return true
	}
	switch n := node.(type) {
	case *ir.Seq:
		for _, s := range n.Stmts {
			if anySyncAttr(s) {
				return true
			}
		}
	case *ir.Par:
		for _, s := range n.Stmts {
			if anySyncAttr(s) {
				return true
			}
		}
	case *ir.If:
		return anySyncAttr(n.TBranch) || anySyncAttr(n.FBranch)
	case *ir.While:
		return anySyncAttr(n.Body)
	}
	return false
}

// TestBarrierLowersNestedPar covers P3 for a Par nested inside another
// Par's branch: both the outer barrier (id 1) and the inner one (id 2)
// must be lowered, and no node in the resulting tree may still carry
// `sync`, even though the inner Par sits underneath a Seq underneath one
// of the outer Par's branches.
func TestBarrierLowersNestedPar(t *testing.T) {
	comp := ir.New("main", &ast.Signature{}, nil)
	inner := &ir.Par{Stmts: []ir.Control{syncEmpty(2), syncEmpty(2)}}
	comp.Control = &ir.Par{Stmts: []ir.Control{
		syncEmpty(1),
		&ir.Seq{Stmts: []ir.Control{inner}},
	}}

	if err := pass.Run(passes.NewBarrier(), comp); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if anySyncAttr(comp.Control) {
		t.Fatal("expected no control node to carry a sync attribute after lowering")
	}

	outerReg := comp.BarrierRegName(1, 1)
	innerReg := comp.BarrierRegName(0, 2)
	if _, ok := comp.Cells[outerReg]; !ok {
		t.Fatalf("expected outer barrier register %s", outerReg)
	}
	if _, ok := comp.Cells[innerReg]; !ok {
		t.Fatalf("expected inner barrier register %s", innerReg)
	}

	outerPar, ok := comp.Control.(*ir.Par)
	if !ok {
		t.Fatalf("expected the outer Par to remain at the root, got %#v", comp.Control)
	}
	branch1Seq, ok := outerPar.Stmts[1].(*ir.Seq)
	if !ok || len(branch1Seq.Stmts) != 1 {
		t.Fatalf("expected branch 1 to still be a single-statement Seq, got %#v", outerPar.Stmts[1])
	}
	innerPar, ok := branch1Seq.Stmts[0].(*ir.Par)
	if !ok {
		t.Fatalf("expected the inner Par to remain nested, got %#v", branch1Seq.Stmts[0])
	}
	for i, s := range innerPar.Stmts {
		seq, ok := s.(*ir.Seq)
		if !ok || len(seq.Stmts) != 2 {
			t.Fatalf("inner branch %d: expected a 2-statement Seq, got %#v", i, s)
		}
	}
}

// TestBarrierIndependentParsDoNotCollide confirms two sibling Par
// statements with barrier id 1 each get their own register, disambiguated
// by Par index, not a bare (component, barrier id) pair.
func TestBarrierIndependentParsDoNotCollide(t *testing.T) {
	comp := ir.New("main", &ast.Signature{}, nil)
	comp.Control = &ir.Seq{Stmts: []ir.Control{
		&ir.Par{Stmts: []ir.Control{syncEmpty(1), syncEmpty(1)}},
		&ir.Par{Stmts: []ir.Control{syncEmpty(1), syncEmpty(1)}},
	}}

	if err := pass.Run(passes.NewBarrier(), comp); err != nil {
		t.Fatalf("Run: %v", err)
	}

	reg0 := comp.BarrierRegName(0, 1)
	reg1 := comp.BarrierRegName(1, 1)
	if reg0 == reg1 {
		t.Fatal("expected distinct barrier registers for each Par")
	}
	if _, ok := comp.Cells[reg0]; !ok {
		t.Fatalf("missing %s", reg0)
	}
	if _, ok := comp.Cells[reg1]; !ok {
		t.Fatalf("missing %s", reg1)
	}
}
