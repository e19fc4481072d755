package elaborate_test

import (
	"testing"

	"github.com/ilang-hdl/ilc/internal/elaborate"
	"github.com/ilang-hdl/ilc/internal/ir"
	"github.com/ilang-hdl/ilc/internal/library"
	"github.com/ilang-hdl/ilc/internal/parser"
)

func regTemplates() []*library.Template {
	return []*library.Template{{
		Name:   "std_reg",
		Params: []string{"width"},
		Inputs: []library.ParamPort{
			{Name: "in", Width: library.ParamRef("width")},
			{Name: "write_en", Width: library.Const(1)},
		},
		Outputs: []library.ParamPort{
			{Name: "out", Width: library.ParamRef("width")},
			{Name: "done", Width: library.Const(1)},
		},
	}}
}

const passthroughSrc = `
(define/namespace test
  (define/component main
    (signature
      (inputs (port in 8))
      (outputs (port out 8)))
    (structure
      (new-std r std_reg 8)
      (-> (@ this in) (@ r in))
      (-> (@ r out) (@ this out))
      (group do_reg
        (asgn (@ r write_en) (true) (@ this in))))
    (control
      (seq
        (enable do_reg)))))
`

func TestElaborateBuildsCellsGroupsControl(t *testing.T) {
	ns, err := parser.ParseNamespace("test.ilc", passthroughSrc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	lib := library.NewContext(regTemplates())
	comps, err := elaborate.Namespace(ns, lib)
	if err != nil {
		t.Fatalf("elaborate: %v", err)
	}
	main, ok := comps["main"]
	if !ok {
		t.Fatal("expected a main component")
	}
	if _, ok := main.Cells["r"]; !ok {
		t.Fatal("expected cell r")
	}
	if len(main.ContinuousAssignments) != 2 {
		t.Fatalf("expected 2 continuous assignments from wires, got %d", len(main.ContinuousAssignments))
	}
	grp, ok := main.Groups["do_reg"]
	if !ok {
		t.Fatal("expected group do_reg")
	}
	if len(grp.Assignments) != 1 {
		t.Fatalf("expected 1 assignment in do_reg, got %d", len(grp.Assignments))
	}
	seq, ok := main.Control.(*ir.Seq)
	if !ok || len(seq.Stmts) != 1 {
		t.Fatalf("expected top-level Seq with one Enable, got %#v", main.Control)
	}
	en, ok := seq.Stmts[0].(*ir.Enable)
	if !ok || en.Group != "do_reg" {
		t.Fatalf("expected Enable(do_reg), got %#v", seq.Stmts[0])
	}
	if main.Graph == nil || main.Graph.NodeCount() == 0 {
		t.Fatal("expected a populated structural graph")
	}
}

const widthMismatchSrc = `
(define/namespace test
  (define/component main
    (signature
      (inputs (port in 4))
      (outputs (port out 8)))
    (structure
      (-> (@ this in) (@ this out)))
    (control (empty))))
`

func TestElaborateMismatchedWidthsFails(t *testing.T) {
	ns, err := parser.ParseNamespace("test.ilc", widthMismatchSrc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := elaborate.Namespace(ns, library.NewContext(nil)); err == nil {
		t.Fatal("expected a width-mismatch error")
	}
}

const inputAsSinkSrc = `
(define/namespace test
  (define/component main
    (signature
      (inputs (port in 1))
      (outputs (port out 1)))
    (structure
      (-> (@ this out) (@ this in)))
    (control (empty))))
`

func TestElaborateWireDirectionValidated(t *testing.T) {
	ns, err := parser.ParseNamespace("test.ilc", inputAsSinkSrc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// Using the output boundary as a source and the input boundary as a
	// destination is backwards: an input can only ever source a wire and
	// an output can only ever sink one.
	if _, err := elaborate.Namespace(ns, library.NewContext(nil)); err == nil {
		t.Fatal("expected UndefinedPort for a reversed boundary wire")
	}
}

const dupInstanceSrc = `
(define/namespace test
  (define/component main
    (signature (inputs) (outputs))
    (structure
      (new-std r std_reg 1)
      (new-std r std_reg 1))
    (control (empty))))
`

func TestElaborateDuplicateInstanceFails(t *testing.T) {
	ns, err := parser.ParseNamespace("test.ilc", dupInstanceSrc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := elaborate.Namespace(ns, library.NewContext(regTemplates())); err == nil {
		t.Fatal("expected DuplicateInstance error")
	}
}

const undefComponentSrc = `
(define/namespace test
  (define/component main
    (signature (inputs) (outputs))
    (structure
      (new child DoesNotExist))
    (control (empty))))
`

func TestElaborateUndefinedComponentFails(t *testing.T) {
	ns, err := parser.ParseNamespace("test.ilc", undefComponentSrc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := elaborate.Namespace(ns, library.NewContext(nil)); err == nil {
		t.Fatal("expected SignatureResolutionFailed error")
	}
}

const dupComponentSrc = `
(define/namespace test
  (define/component main
    (signature (inputs) (outputs))
    (structure)
    (control (empty)))
  (define/component main
    (signature (inputs) (outputs))
    (structure)
    (control (empty))))
`

func TestElaborateDuplicateComponentNameFails(t *testing.T) {
	ns, err := parser.ParseNamespace("test.ilc", dupComponentSrc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := elaborate.Namespace(ns, library.NewContext(nil)); err == nil {
		t.Fatal("expected a duplicate-component error before either component is elaborated")
	}
}
