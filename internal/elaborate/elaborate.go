// Package elaborate runs the two-pass algorithm of spec.md §4.2: turn one
// component's signature and structure items into a structural graph plus a
// typed ir.Component, validating every instance and wire as it goes.
package elaborate

import (
	"github.com/ilang-hdl/ilc/internal/ast"
	"github.com/ilang-hdl/ilc/internal/diagnostics"
	"github.com/ilang-hdl/ilc/internal/graph"
	"github.com/ilang-hdl/ilc/internal/ir"
	"github.com/ilang-hdl/ilc/internal/library"
)

// Namespace elaborates every component of ns, resolving DeclStructure
// instances against their siblings' signatures regardless of declaration
// order (signatures are collected in a pass over ns.Components before any
// component's structure is walked).
func Namespace(ns *ast.NamespaceDef, lib *library.Context) (map[string]*ir.Component, error) {
	dup := ast.NewDuplicateComponentVisitor()
	ast.WalkComponents(ns, dup)
	if len(dup.Duplicate) > 0 {
		first := dup.Duplicate[0]
		return nil, diagnostics.DuplicateComponent(first.Token.Pos, first.Name)
	}

	sigs := make(map[string]*ast.Signature, len(ns.Components))
	for _, c := range ns.Components {
		sigs[c.Name] = c.Signature
	}

	out := make(map[string]*ir.Component, len(ns.Components))
	for _, c := range ns.Components {
		comp, err := Component(c, lib, sigs)
		if err != nil {
			return nil, err
		}
		out[c.Name] = comp
	}
	return out, nil
}

// Component elaborates a single ComponentDef. siblingSigs maps every
// component name in the enclosing namespace (including this one) to its
// signature, used to resolve `new` declarations of sub-components.
func Component(c *ast.ComponentDef, lib *library.Context, siblingSigs map[string]*ast.Signature) (*ir.Component, error) {
	g := graph.New()
	for _, p := range c.Signature.Inputs {
		g.AddInput(p)
	}
	for _, p := range c.Signature.Outputs {
		g.AddOutput(p)
	}

	comp := ir.New(c.Name, c.Signature, g)

	// Pass 1: instance declarations. Wires are skipped here; a wire may
	// name an instance declared later in the structure list.
	for _, s := range c.Structure {
		switch item := s.(type) {
		case *ast.DeclStructure:
			if _, dup := g.LookupInstance(item.Name); dup {
				return nil, diagnostics.DuplicateInstance(item.Token.Pos, item.Name)
			}
			sig, ok := siblingSigs[item.Component]
			if !ok {
				return nil, diagnostics.SignatureResolutionFailed(item.Token.Pos, item.Component)
			}
			g.AddInstance(item.Name, sig, item)
			comp.AddCell(ir.NewCell(item.Name, ir.CellComponent, item.Component, sig, false))
			comp.ResolvedPrimitiveSignatures[item.Name] = sig

		case *ast.StdStructure:
			if _, dup := g.LookupInstance(item.Name); dup {
				return nil, diagnostics.DuplicateInstance(item.Token.Pos, item.Name)
			}
			sig, err := lib.Resolve(item.Token.Pos, item.Instance.Name, item.Instance.Params)
			if err != nil {
				return nil, err
			}
			g.AddInstance(item.Name, sig, item)
			comp.AddCell(ir.NewCell(item.Name, ir.CellPrimitive, item.Instance.Name, sig, lib.IsComb(item.Instance.Name)))
			comp.ResolvedPrimitiveSignatures[item.Name] = sig
		}
	}

	// Pass 1b: group bodies, now that every instance they might reference
	// is resolvable. Groups never appear on the structural graph; they are
	// IR-only, collected directly onto the Component.
	for _, s := range c.Structure {
		def, ok := s.(*ast.GroupDef)
		if !ok {
			continue
		}
		if _, dup := comp.Groups[def.Name]; dup {
			return nil, diagnostics.DuplicateInstance(def.Token.Pos, def.Name)
		}
		grp, err := convertGroup(g, def)
		if err != nil {
			return nil, err
		}
		comp.AddGroup(grp)
	}

	// Pass 2: wires, now that every instance is resolvable.
	for _, s := range c.Structure {
		w, ok := s.(*ast.WireStructure)
		if !ok {
			continue
		}
		srcNode, srcPortName, srcWidth, err := resolveEndpoint(g, w.Src, true)
		if err != nil {
			return nil, err
		}
		dstNode, dstPortName, dstWidth, err := resolveEndpoint(g, w.Dest, false)
		if err != nil {
			return nil, err
		}
		if srcWidth != dstWidth {
			return nil, diagnostics.MismatchedPortWidths(w.Token.Pos, srcPortName, int(srcWidth), dstPortName, int(dstWidth))
		}
		g.AddEdge(srcNode, srcPortName, dstNode, dstPortName, srcWidth)
		comp.ContinuousAssignments = append(comp.ContinuousAssignments,
			ir.NewAssignment(portRef(w.Dest), portRef(w.Src)))
	}

	ctrl, err := convertControl(g, c.Control)
	if err != nil {
		return nil, err
	}
	comp.Control = ctrl

	return comp, nil
}

// resolveEndpoint finds the graph node a surface Port refers to, together
// with its bare port name and declared width. isSrc distinguishes a wire's
// source endpoint from its destination endpoint: per §4.2, "using an input
// boundary as a wire destination, or an output boundary as a wire source,
// fails UndefinedPort(p)" — and symmetrically, a sub-component/primitive
// instance can only source a wire from one of its outputs and sink a wire
// into one of its inputs (§3 invariants: "every edge connects src (either
// Input or an Instance output port) to dst (either Output or an Instance
// input port)").
func resolveEndpoint(g *graph.Graph, p ast.Port, isSrc bool) (*graph.Node, string, uint64, error) {
	switch ref := p.(type) {
	case *ast.ThisPort:
		n, ok := g.LookupPort(ref.Port)
		if !ok {
			return nil, "", 0, diagnostics.UndefinedPort(ref.Token.Pos, ref.Port)
		}
		switch d := n.Data.(type) {
		case graph.InputNode:
			if !isSrc {
				return nil, "", 0, diagnostics.UndefinedPort(ref.Token.Pos, ref.Port)
			}
			return n, ref.Port, d.Port.Width, nil
		case graph.OutputNode:
			if isSrc {
				return nil, "", 0, diagnostics.UndefinedPort(ref.Token.Pos, ref.Port)
			}
			return n, ref.Port, d.Port.Width, nil
		default:
			return nil, "", 0, diagnostics.Internal("boundary port node carries non-boundary data")
		}

	case *ast.CompPort:
		n, ok := g.LookupInstance(ref.Component)
		if !ok {
			return nil, "", 0, diagnostics.UndefinedComponent(ref.Token.Pos, ref.Component)
		}
		inst := n.Data.(graph.InstanceNode)
		// A wire sources from an instance's outputs and sinks into its
		// inputs — the mirror image of a boundary port's own direction.
		if isSrc {
			for _, pd := range inst.Signature.Outputs {
				if pd.Name == ref.Port {
					return n, ref.Port, pd.Width, nil
				}
			}
		} else {
			for _, pd := range inst.Signature.Inputs {
				if pd.Name == ref.Port {
					return n, ref.Port, pd.Width, nil
				}
			}
		}
		return nil, "", 0, diagnostics.UndefinedPort(ref.Token.Pos, ref.Port)

	default:
		return nil, "", 0, diagnostics.Internal("unknown port reference kind")
	}
}

// portRef converts a validated surface Port into an ir.PortRef. Callers
// must have already run resolveEndpoint (or an equivalent check) on p.
func portRef(p ast.Port) ir.PortRef {
	switch ref := p.(type) {
	case *ast.ThisPort:
		return ir.BoundaryPort(ref.Port)
	case *ast.CompPort:
		return ir.CellPort(ref.Component, ref.Port)
	default:
		panic("elaborate: unknown port reference kind")
	}
}
