package pass_test

import (
	"testing"

	"github.com/ilang-hdl/ilc/internal/ir"
	"github.com/ilang-hdl/ilc/internal/pass"
)

// countingVisitor counts how many Enable leaves it visits and replaces the
// first one named "swap" with an Empty node.
type countingVisitor struct {
	pass.BaseVisitor
	visited int
}

func (v *countingVisitor) VisitEnable(n *ir.Enable) (pass.Result, error) {
	v.visited++
	if n.Group == "swap" {
		return pass.ChangeResult(&ir.Empty{}), nil
	}
	return pass.ContinueResult(), nil
}

func TestRunWalksEveryLeaf(t *testing.T) {
	comp := ir.New("main", nil, nil)
	comp.Control = &ir.Seq{Stmts: []ir.Control{
		&ir.Enable{Group: "a"},
		&ir.Par{Stmts: []ir.Control{
			&ir.Enable{Group: "b"},
			&ir.Enable{Group: "swap"},
		}},
	}}

	v := &countingVisitor{}
	if err := pass.Run(v, comp); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.visited != 3 {
		t.Fatalf("expected 3 enables visited, got %d", v.visited)
	}

	seq := comp.Control.(*ir.Seq)
	par := seq.Stmts[1].(*ir.Par)
	if _, ok := par.Stmts[1].(*ir.Empty); !ok {
		t.Fatalf("expected the \"swap\" enable to have been replaced with Empty, got %#v", par.Stmts[1])
	}
}

type skippingVisitor struct {
	pass.BaseVisitor
	descended bool
}

func (v *skippingVisitor) StartPar(n *ir.Par) (pass.Result, error) {
	return pass.SkipResult(), nil
}

func (v *skippingVisitor) VisitEnable(n *ir.Enable) (pass.Result, error) {
	v.descended = true
	return pass.ContinueResult(), nil
}

func TestSkipDoesNotDescend(t *testing.T) {
	comp := ir.New("main", nil, nil)
	comp.Control = &ir.Par{Stmts: []ir.Control{&ir.Enable{Group: "a"}}}

	v := &skippingVisitor{}
	if err := pass.Run(v, comp); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.descended {
		t.Fatal("expected Skip on StartPar to prevent descending into its children")
	}
}

type stoppingVisitor struct {
	pass.BaseVisitor
	seen []string
}

func (v *stoppingVisitor) VisitEnable(n *ir.Enable) (pass.Result, error) {
	v.seen = append(v.seen, n.Group)
	if n.Group == "first" {
		return pass.StopResult(), nil
	}
	return pass.ContinueResult(), nil
}

func TestStopAbortsTraversal(t *testing.T) {
	comp := ir.New("main", nil, nil)
	comp.Control = &ir.Seq{Stmts: []ir.Control{
		&ir.Enable{Group: "first"},
		&ir.Enable{Group: "second"},
	}}

	v := &stoppingVisitor{}
	if err := pass.Run(v, comp); err != nil {
		t.Fatalf("Run should convert Stop into a clean return, got %v", err)
	}
	if len(v.seen) != 1 {
		t.Fatalf("expected traversal to stop after the first enable, visited %v", v.seen)
	}
}
