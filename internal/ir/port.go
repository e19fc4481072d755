// Package ir is the typed intermediate representation: components with
// resolved signatures, named groups of guarded assignments, continuous
// assignments, typed cells, and a control tree that references groups by
// name (§3 "Component (IR)").
package ir

import "github.com/ilang-hdl/ilc/internal/ast"

// Port is one named, width-typed port belonging to a Cell. It carries its
// own attribute map so passes can test "is this the go/done port" or "is
// this port marked stable" the way §4.5's applicability predicate needs to
// (read_set membership, guard.is_not_done, attr_has(port, "stable")).
type Port struct {
	Name  string
	Width uint64
	Attrs ast.Attributes
}

func (p *Port) HasAttr(key string) bool {
	return p != nil && p.Attrs.Has(key)
}

// PortKind distinguishes the three places a PortRef can point: a cell's
// port, a component boundary port, or a group's own `done` signal
// (mirroring Calyx's PortParent::{Cell, Group} distinction used throughout
// group_to_seq.rs's pattern matching).
type PortKind int

const (
	PortCell PortKind = iota
	PortBoundary
	PortGroupDone
)

// PortRef names one port: either Cell+Name on an owned cell, Name alone on
// the component boundary, or Group+"done" on a group's completion signal.
type PortRef struct {
	Kind  PortKind
	Cell  string
	Group string
	Name  string
}

func CellPort(cell, name string) PortRef { return PortRef{Kind: PortCell, Cell: cell, Name: name} }
func BoundaryPort(name string) PortRef   { return PortRef{Kind: PortBoundary, Name: name} }
func GroupDone(group string) PortRef     { return PortRef{Kind: PortGroupDone, Group: group, Name: "done"} }

// IsDone reports whether this ref names a `.done` port, cell or group.
func (r PortRef) IsDone() bool {
	return r.Name == "done"
}

// String renders the ref for diagnostics/snapshots, e.g. "reg.out",
// "this.valid", "my_group[done]".
func (r PortRef) String() string {
	switch r.Kind {
	case PortBoundary:
		return "this." + r.Name
	case PortGroupDone:
		return r.Group + "[done]"
	default:
		return r.Cell + "." + r.Name
	}
}
