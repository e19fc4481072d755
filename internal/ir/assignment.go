package ir

import "github.com/ilang-hdl/ilc/internal/ast"

// Assignment is one guarded wire inside a group or a component's
// continuous-assignment list: Dst := Src when Guard (§3 "Assignment").
type Assignment struct {
	Dst   PortRef
	Src   PortRef
	Guard Guard
	Attrs ast.Attributes
}

// NewAssignment builds an unconditionally-true assignment, the common case
// for structurally-generated wires (barrier lowering, group splitting).
func NewAssignment(dst, src PortRef) *Assignment {
	return &Assignment{Dst: dst, Src: src, Guard: True{}}
}

// Guarded builds an assignment that only fires while g holds.
func Guarded(dst, src PortRef, g Guard) *Assignment {
	return &Assignment{Dst: dst, Src: src, Guard: g}
}
