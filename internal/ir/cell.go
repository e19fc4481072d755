package ir

import "github.com/ilang-hdl/ilc/internal/ast"

// CellKind distinguishes a resolved primitive instance from a sub-component
// instance; both carry a resolved ast.Signature once elaborated.
type CellKind int

const (
	CellPrimitive CellKind = iota
	CellComponent
)

// Cell is one named, typed instance owned by a Component: either a
// resolved primitive or a sub-component, with its ports materialized from
// the resolved signature (§3 "Cell").
type Cell struct {
	Name     string
	Kind     CellKind
	TypeName string
	IsComb   bool

	inputs  map[string]*Port
	outputs map[string]*Port

	inputOrder  []string
	outputOrder []string
}

// NewCell builds a Cell from a resolved signature, auto-marking the
// conventional go/done ports when the signature has them — the same
// go/done convention every stateful Calyx primitive follows
// (original_source/calyx/src/lang/library/ast.rs ProtoSig) and that §4.4
// and §4.5 both depend on to find a cell's completion signal.
func NewCell(name string, kind CellKind, typeName string, sig *ast.Signature, isComb bool) *Cell {
	c := &Cell{
		Name:     name,
		Kind:     kind,
		TypeName: typeName,
		IsComb:   isComb,
		inputs:   make(map[string]*Port, len(sig.Inputs)),
		outputs:  make(map[string]*Port, len(sig.Outputs)),
	}
	for _, p := range sig.Inputs {
		attrs := copyAttrs(p.Attrs)
		if p.Name == "go" {
			attrs["go"] = 1
		}
		port := &Port{Name: p.Name, Width: p.Width, Attrs: attrs}
		c.inputs[p.Name] = port
		c.inputOrder = append(c.inputOrder, p.Name)
	}
	for _, p := range sig.Outputs {
		attrs := copyAttrs(p.Attrs)
		if p.Name == "done" {
			attrs["done"] = 1
		}
		port := &Port{Name: p.Name, Width: p.Width, Attrs: attrs}
		c.outputs[p.Name] = port
		c.outputOrder = append(c.outputOrder, p.Name)
	}
	return c
}

// copyAttrs returns a fresh attribute map seeded from a resolved
// ast.Portdef's own Attrs (e.g. a library-declared `stable`), so the
// go/done markers NewCell adds never alias the signature's own map.
func copyAttrs(src ast.Attributes) ast.Attributes {
	out := make(ast.Attributes, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Port looks up a port by name on either side of the cell.
func (c *Cell) Port(name string) (*Port, bool) {
	if p, ok := c.inputs[name]; ok {
		return p, true
	}
	p, ok := c.outputs[name]
	return p, ok
}

// DonePort returns the cell's `done` output, if it has one — nil for
// combinational cells, which never complete asynchronously.
func (c *Cell) DonePort() (*Port, bool) {
	p, ok := c.outputs["done"]
	return p, ok
}

// GoPort returns the cell's `go` input, if it has one.
func (c *Cell) GoPort() (*Port, bool) {
	p, ok := c.inputs["go"]
	return p, ok
}

// Inputs and Outputs return ports in declaration order.
func (c *Cell) Inputs() []*Port {
	out := make([]*Port, len(c.inputOrder))
	for i, n := range c.inputOrder {
		out[i] = c.inputs[n]
	}
	return out
}

func (c *Cell) Outputs() []*Port {
	out := make([]*Port, len(c.outputOrder))
	for i, n := range c.outputOrder {
		out[i] = c.outputs[n]
	}
	return out
}
