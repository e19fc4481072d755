package ir

import (
	"fmt"

	"github.com/ilang-hdl/ilc/internal/ast"
	"github.com/ilang-hdl/ilc/internal/graph"
)

// Component is one elaborated component: a resolved signature, its cells
// and groups, continuous assignments, and a control tree that drives them
// (§3 "Component (IR)"). Graph is the structural graph elaboration built
// alongside it; passes that only touch groups/control never need it, but
// analyses that walk connectivity (and round-trip emission) do.
type Component struct {
	Name      string
	Signature *ast.Signature

	Cells map[string]*Cell
	Groups map[string]*Group

	ContinuousAssignments []*Assignment
	Control                Control

	// ResolvedPrimitiveSignatures caches every primitive signature this
	// component's cells resolved to, keyed by cell name, so a later pass
	// never needs to re-run library.Resolve.
	ResolvedPrimitiveSignatures map[string]*ast.Signature

	Graph *graph.Graph

	cellOrder  []string
	groupOrder []string
	parCounter int
}

// New builds an empty Component ready for elaborate to populate.
func New(name string, sig *ast.Signature, g *graph.Graph) *Component {
	return &Component{
		Name:                        name,
		Signature:                   sig,
		Cells:                       make(map[string]*Cell),
		Groups:                      make(map[string]*Group),
		ResolvedPrimitiveSignatures: make(map[string]*ast.Signature),
		Graph:                       g,
	}
}

// AddCell registers a cell, preserving insertion order for deterministic
// emission and iteration.
func (c *Component) AddCell(cell *Cell) {
	if _, exists := c.Cells[cell.Name]; !exists {
		c.cellOrder = append(c.cellOrder, cell.Name)
	}
	c.Cells[cell.Name] = cell
}

// RemoveCell drops a cell that no assignment or control node references
// any more. No pass in this module calls it.
func (c *Component) RemoveCell(name string) {
	if _, ok := c.Cells[name]; !ok {
		return
	}
	delete(c.Cells, name)
	for i, n := range c.cellOrder {
		if n == name {
			c.cellOrder = append(c.cellOrder[:i], c.cellOrder[i+1:]...)
			break
		}
	}
}

// CellsInOrder returns cells in insertion order.
func (c *Component) CellsInOrder() []*Cell {
	out := make([]*Cell, len(c.cellOrder))
	for i, n := range c.cellOrder {
		out[i] = c.Cells[n]
	}
	return out
}

// AddGroup registers a group, preserving insertion order.
func (c *Component) AddGroup(g *Group) {
	if _, exists := c.Groups[g.Name]; !exists {
		c.groupOrder = append(c.groupOrder, g.Name)
	}
	c.Groups[g.Name] = g
}

// RemoveGroup drops a group once no control node references it any more
// (§4.5, after group_to_seq rewrites every Enable that used it).
func (c *Component) RemoveGroup(name string) {
	if _, ok := c.Groups[name]; !ok {
		return
	}
	delete(c.Groups, name)
	for i, n := range c.groupOrder {
		if n == name {
			c.groupOrder = append(c.groupOrder[:i], c.groupOrder[i+1:]...)
			break
		}
	}
}

// GroupsInOrder returns groups in insertion order.
func (c *Component) GroupsInOrder() []*Group {
	out := make([]*Group, len(c.groupOrder))
	for i, n := range c.groupOrder {
		out[i] = c.Groups[n]
	}
	return out
}

// NextParIndex returns a monotonic, zero-based index identifying the next
// Par node the barrier-lowering pass visits in this component, used only
// to keep two @sync barriers with the same id in two different Par
// statements from colliding when they generate deterministic names (§5
// "fresh names are deterministic functions of (component, barrier id,
// branch index)" — the Par index disambiguates "which barrier" alongside
// that triple).
func (c *Component) NextParIndex() int {
	i := c.parCounter
	c.parCounter++
	return i
}

// BarrierRegName, BarrierFlagName, WaitGroupName and ClearGroupName derive
// the deterministic names §4.4 requires for barrier-synchronization
// lowering: every name is a pure function of (component, Par index,
// barrier id[, branch index]), so re-running the pass on the same input
// always produces the same names (original_source/calyx/src/passes/
// compile_sync_without_sync_reg.rs's ad hoc `format!` naming, made
// deterministic and collision-free across multiple Par statements).
func (c *Component) BarrierRegName(parIdx int, barrierID int64) string {
	return fmt.Sprintf("%s__par%d_bar_reg_%d", c.Name, parIdx, barrierID)
}

func (c *Component) BarrierFlagName(parIdx int, barrierID int64, branchIdx int) string {
	return fmt.Sprintf("%s__par%d_bar_flag_%d_%d", c.Name, parIdx, barrierID, branchIdx)
}

func (c *Component) WaitGroupName(parIdx int, barrierID int64, branchIdx int) string {
	return fmt.Sprintf("%s__par%d_wait_%d_%d", c.Name, parIdx, barrierID, branchIdx)
}

func (c *Component) ClearGroupName(parIdx int, barrierID int64, branchIdx int) string {
	return fmt.Sprintf("%s__par%d_clear_%d_%d", c.Name, parIdx, barrierID, branchIdx)
}

// SplitBegName and SplitEndName derive the two group names group_to_seq
// splits G into (§4.5): beg_spl_<G> and end_spl_<G>. No counter is needed
// since the split is keyed on the original group's own (already unique)
// name.
func SplitBegName(group string) string { return "beg_spl_" + group }
func SplitEndName(group string) string { return "end_spl_" + group }
