package ast_test

import (
	"testing"

	"github.com/ilang-hdl/ilc/internal/ast"
)

func TestDuplicateComponentVisitorFindsRepeatedNames(t *testing.T) {
	ns := &ast.NamespaceDef{
		Name: "test",
		Components: []*ast.ComponentDef{
			{Name: "a"},
			{Name: "b"},
			{Name: "a"},
		},
	}
	v := ast.NewDuplicateComponentVisitor()
	ast.WalkComponents(ns, v)
	if len(v.Duplicate) != 1 || v.Duplicate[0].Name != "a" {
		t.Fatalf("expected one duplicate named a, got %+v", v.Duplicate)
	}
}

func TestDuplicateComponentVisitorAllowsUniqueNames(t *testing.T) {
	ns := &ast.NamespaceDef{
		Name: "test",
		Components: []*ast.ComponentDef{
			{Name: "a"},
			{Name: "b"},
		},
	}
	v := ast.NewDuplicateComponentVisitor()
	ast.WalkComponents(ns, v)
	if len(v.Duplicate) != 0 {
		t.Fatalf("expected no duplicates, got %+v", v.Duplicate)
	}
}
