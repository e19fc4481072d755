package graph

import "github.com/ilang-hdl/ilc/internal/ast"

// constructPort converts a (node, portName) pair back into a surface Port
// reference, mirroring Calyx's StructureGraph::construct_port.
func constructPort(n *Node, portName string) ast.Port {
	switch d := n.Data.(type) {
	case InputNode:
		return &ast.ThisPort{Port: d.Port.Name}
	case OutputNode:
		return &ast.ThisPort{Port: d.Port.Name}
	case InstanceNode:
		return &ast.CompPort{Component: d.Name, Port: portName}
	default:
		panic("graph: unknown node data")
	}
}

// EmitStructure reconstructs a structure-item list from the graph: every
// instance's origin structure item, in insertion order, followed by a
// WireStructure per edge, in insertion order (§4.2 "nodes are emitted in
// insertion order of the instance table, followed by wires in insertion
// order of the edge set").
func (g *Graph) EmitStructure() []ast.Structure {
	out := make([]ast.Structure, 0, len(g.instOrder)+len(g.edgeOrder))
	for _, n := range g.instOrder {
		inst := n.Data.(InstanceNode)
		if inst.Origin != nil {
			out = append(out, inst.Origin)
		}
	}
	for _, e := range g.edgeOrder {
		out = append(out, &ast.WireStructure{
			Src:  constructPort(e.F, e.SrcPort),
			Dest: constructPort(e.T, e.DstPort),
		})
	}
	return out
}
