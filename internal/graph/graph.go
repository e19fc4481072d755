// Package graph is the structural graph: a stable, directed multigraph of
// boundary ports and instances connected by width-typed wires (§3, §9).
//
// It is backed by gonum's graph/multi package rather than a hand-rolled
// arena. gonum's multigraph already gives exactly the properties spec.md
// asks for — node and edge storage keyed by opaque, stable int64 IDs that
// survive removals, insertion-order-independent construction, and genuine
// multi-edge support for repeated port-to-port wiring — which is the Go
// ecosystem's closest analogue to the petgraph StableDiGraph the original
// Calyx StructureGraph is built on (original_source/calyx/src/lang/structure.rs).
package graph

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/ilang-hdl/ilc/internal/ast"
)

// Node is a structural graph node: a boundary input, a boundary output, or
// an instance of a sub-component or resolved primitive.
type Node struct {
	id   int64
	Data NodeData
}

// ID implements graph.Node.
func (n *Node) ID() int64 { return n.id }

// NodeData is the payload carried by a structural graph node.
type NodeData interface{ isNodeData() }

// InputNode is a boundary input port.
type InputNode struct{ Port *ast.Portdef }

func (InputNode) isNodeData() {}

// OutputNode is a boundary output port.
type OutputNode struct{ Port *ast.Portdef }

func (OutputNode) isNodeData() {}

// InstanceNode is a named sub-component or primitive instance.
type InstanceNode struct {
	Name      string
	Signature *ast.Signature
	// Origin is the structure item that produced this instance, kept so
	// the graph can round-trip back to a structure-item list (§4.2 "The
	// graph supports round-trip emission").
	Origin ast.Structure
}

func (InstanceNode) isNodeData() {}

// Edge is a wire: a width-typed directed connection between two named
// ports on the graph's endpoints.
type Edge struct {
	F, T             *Node
	uid              int64
	SrcPort, DstPort string
	Width            uint64
}

func (e *Edge) From() graph.Node   { return e.F }
func (e *Edge) To() graph.Node     { return e.T }
func (e *Edge) ID() int64          { return e.uid }
func (e *Edge) ReversedLine() graph.Line {
	return &Edge{F: e.T, T: e.F, uid: e.uid, SrcPort: e.SrcPort, DstPort: e.DstPort, Width: e.Width}
}

// Graph is the stable multigraph of one component's structure. Two
// separate name tables (ports, instances) prevent a collision between a
// port named "x" and an instance named "x" (§3).
type Graph struct {
	g *multi.DirectedGraph

	portIndex map[string]*Node
	instIndex map[string]*Node

	instOrder []*Node // insertion order, for round-trip emission
	edgeOrder []*Edge // insertion order, for round-trip emission
}

// New creates an empty structural graph.
func New() *Graph {
	return &Graph{
		g:         multi.NewDirectedGraph(),
		portIndex: make(map[string]*Node),
		instIndex: make(map[string]*Node),
	}
}

func (g *Graph) addNode(data NodeData) *Node {
	id := g.g.NewNode().ID()
	n := &Node{id: id, Data: data}
	g.g.AddNode(n)
	return n
}

// AddInput inserts a boundary input port node.
func (g *Graph) AddInput(p *ast.Portdef) *Node {
	n := g.addNode(InputNode{Port: p})
	g.portIndex[p.Name] = n
	return n
}

// AddOutput inserts a boundary output port node.
func (g *Graph) AddOutput(p *ast.Portdef) *Node {
	n := g.addNode(OutputNode{Port: p})
	g.portIndex[p.Name] = n
	return n
}

// AddInstance inserts an instance node under name, keyed separately from
// the port table.
func (g *Graph) AddInstance(name string, sig *ast.Signature, origin ast.Structure) *Node {
	n := g.addNode(InstanceNode{Name: name, Signature: sig, Origin: origin})
	g.instIndex[name] = n
	g.instOrder = append(g.instOrder, n)
	return n
}

// LookupPort finds a boundary port node by name.
func (g *Graph) LookupPort(name string) (*Node, bool) {
	n, ok := g.portIndex[name]
	return n, ok
}

// LookupInstance finds an instance node by name.
func (g *Graph) LookupInstance(name string) (*Node, bool) {
	n, ok := g.instIndex[name]
	return n, ok
}

// AddEdge inserts a width-typed wire from (src, srcPort) to (dst, dstPort).
// Callers are expected to have already validated that the widths agree
// (internal/elaborate does this before calling AddEdge, see §4.2).
func (g *Graph) AddEdge(src *Node, srcPort string, dst *Node, dstPort string, width uint64) *Edge {
	line := g.g.NewLine(src, dst)
	e := &Edge{F: src, T: dst, uid: line.ID(), SrcPort: srcPort, DstPort: dstPort, Width: width}
	g.g.SetLine(e)
	g.edgeOrder = append(g.edgeOrder, e)
	return e
}

// RemoveInstance removes an instance node and every incident edge. Node
// IDs of everything else remain valid (§3 "Stability").
func (g *Graph) RemoveInstance(name string) {
	n, ok := g.instIndex[name]
	if !ok {
		return
	}
	g.g.RemoveNode(n.ID())
	delete(g.instIndex, name)
	filtered := g.instOrder[:0]
	for _, in := range g.instOrder {
		if in != n {
			filtered = append(filtered, in)
		}
	}
	g.instOrder = filtered
	remEdges := g.edgeOrder[:0]
	for _, e := range g.edgeOrder {
		if e.F == n || e.T == n {
			continue
		}
		remEdges = append(remEdges, e)
	}
	g.edgeOrder = remEdges
}

// Instances returns every instance node in insertion order.
func (g *Graph) Instances() []*Node { return append([]*Node(nil), g.instOrder...) }

// Edges returns every edge in insertion order.
func (g *Graph) Edges() []*Edge { return append([]*Edge(nil), g.edgeOrder...) }

// NodeCount reports how many nodes are currently in the graph (ports +
// instances), used by the round-trip isomorphism property test (P2).
func (g *Graph) NodeCount() int { return g.g.Nodes().Len() }
