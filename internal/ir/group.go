package ir

import "github.com/ilang-hdl/ilc/internal/ast"

// Group is a named, schedulable bundle of assignments plus its own `done`
// signal (§3 "Group"). Unlike a Cell, a Group has no ports of its own on
// the structural graph — only the synthetic GroupDone PortRef that
// Assignment.Dst can target to declare the group's completion condition.
type Group struct {
	Name        string
	Assignments []*Assignment
	Attrs       ast.Attributes
}

func NewGroup(name string) *Group {
	return &Group{Name: name, Attrs: ast.Attributes{}}
}

// Done finds the assignment that drives this group's own done signal, if
// present.
func (g *Group) Done() (*Assignment, bool) {
	for _, a := range g.Assignments {
		if a.Dst.Kind == PortGroupDone && a.Dst.Group == g.Name {
			return a, true
		}
	}
	return nil, false
}

// Add appends an assignment to the group.
func (g *Group) Add(a *Assignment) { g.Assignments = append(g.Assignments, a) }
