package library_test

import (
	"testing"

	"github.com/ilang-hdl/ilc/internal/library"
	"github.com/ilang-hdl/ilc/internal/token"
)

func reg(width library.WidthExpr) []*library.Template {
	return []*library.Template{{
		Name:   "std_reg",
		Params: []string{"width"},
		Inputs: []library.ParamPort{
			{Name: "in", Width: width},
			{Name: "write_en", Width: library.Const(1)},
		},
		Outputs: []library.ParamPort{
			{Name: "out", Width: width},
			{Name: "done", Width: library.Const(1)},
		},
		IsComb: false,
	}}
}

func TestResolveSubstitutesParams(t *testing.T) {
	ctx := library.NewContext(reg(library.ParamRef("width")))
	sig, err := ctx.Resolve(token.Position{}, "std_reg", []uint64{32})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(sig.Inputs) != 2 || sig.Inputs[0].Width != 32 {
		t.Fatalf("unexpected inputs: %+v", sig.Inputs)
	}
	if sig.Outputs[0].Width != 32 || sig.Outputs[1].Width != 1 {
		t.Fatalf("unexpected outputs: %+v", sig.Outputs)
	}
}

func TestResolveUnknownPrimitiveFails(t *testing.T) {
	ctx := library.NewContext(nil)
	if _, err := ctx.Resolve(token.Position{}, "nope", nil); err == nil {
		t.Fatal("expected SignatureResolutionFailed, got nil")
	}
}

func TestResolveArityMismatchFails(t *testing.T) {
	ctx := library.NewContext(reg(library.ParamRef("width")))
	if _, err := ctx.Resolve(token.Position{}, "std_reg", []uint64{1, 2}); err == nil {
		t.Fatal("expected arity-mismatch failure, got nil")
	}
}

func TestResolveArithmeticWidthExpr(t *testing.T) {
	tmpl := []*library.Template{{
		Name:   "adder",
		Params: []string{"width"},
		Inputs: []library.ParamPort{
			{Name: "left", Width: library.ParamRef("width")},
			{Name: "right", Width: library.ParamRef("width")},
		},
		Outputs: []library.ParamPort{
			{Name: "out", Width: library.Add{L: library.ParamRef("width"), R: library.Const(1)}},
		},
		IsComb: true,
	}}
	ctx := library.NewContext(tmpl)
	sig, err := ctx.Resolve(token.Position{}, "adder", []uint64{8})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sig.Outputs[0].Width != 9 {
		t.Fatalf("expected carry-out width 9, got %d", sig.Outputs[0].Width)
	}
	if !ctx.IsComb("adder") {
		t.Fatal("expected adder to be combinational")
	}
}

func TestResolveNonPositiveWidthFails(t *testing.T) {
	tmpl := []*library.Template{{
		Name:    "bad",
		Params:  []string{"w"},
		Inputs:  []library.ParamPort{{Name: "in", Width: library.Sub{L: library.ParamRef("w"), R: library.Const(10)}}},
		Outputs: nil,
	}}
	ctx := library.NewContext(tmpl)
	if _, err := ctx.Resolve(token.Position{}, "bad", []uint64{4}); err == nil {
		t.Fatal("expected failure for non-positive width (4 - 10)")
	}
}
