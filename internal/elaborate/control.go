package elaborate

import (
	"github.com/ilang-hdl/ilc/internal/ast"
	"github.com/ilang-hdl/ilc/internal/diagnostics"
	"github.com/ilang-hdl/ilc/internal/graph"
	"github.com/ilang-hdl/ilc/internal/ir"
)

// convertPort validates and converts a surface Port reference that does
// not need a resolved width — group bodies and control conditions, as
// opposed to structural wires, which go through resolveEndpoint instead.
func convertPort(g *graph.Graph, port ast.Port) (ir.PortRef, error) {
	switch ref := port.(type) {
	case *ast.ThisPort:
		if _, ok := g.LookupPort(ref.Port); !ok {
			return ir.PortRef{}, diagnostics.UndefinedPort(ref.Token.Pos, ref.Port)
		}
		return ir.BoundaryPort(ref.Port), nil

	case *ast.CompPort:
		n, ok := g.LookupInstance(ref.Component)
		if !ok {
			return ir.PortRef{}, diagnostics.UndefinedComponent(ref.Token.Pos, ref.Component)
		}
		inst := n.Data.(graph.InstanceNode)
		for _, pd := range inst.Signature.Inputs {
			if pd.Name == ref.Port {
				return ir.CellPort(ref.Component, ref.Port), nil
			}
		}
		for _, pd := range inst.Signature.Outputs {
			if pd.Name == ref.Port {
				return ir.CellPort(ref.Component, ref.Port), nil
			}
		}
		return ir.PortRef{}, diagnostics.UndefinedPort(ref.Token.Pos, ref.Port)

	case *ast.GroupPort:
		return ir.GroupDone(ref.Group), nil

	default:
		return ir.PortRef{}, diagnostics.Internal("unknown port reference kind")
	}
}

func convertGuard(g *graph.Graph, expr ast.GuardExpr) (ir.Guard, error) {
	switch v := expr.(type) {
	case nil:
		return ir.True{}, nil
	case *ast.TrueGuard:
		return ir.True{}, nil
	case *ast.PortGuard:
		pr, err := convertPort(g, v.Port)
		if err != nil {
			return nil, err
		}
		return ir.Atom{Port: pr}, nil
	case *ast.NotGuard:
		inner, err := convertGuard(g, v.G)
		if err != nil {
			return nil, err
		}
		return ir.Not{G: inner}, nil
	case *ast.AndGuard:
		l, err := convertGuard(g, v.L)
		if err != nil {
			return nil, err
		}
		r, err := convertGuard(g, v.R)
		if err != nil {
			return nil, err
		}
		return ir.And{L: l, R: r}, nil
	case *ast.OrGuard:
		l, err := convertGuard(g, v.L)
		if err != nil {
			return nil, err
		}
		r, err := convertGuard(g, v.R)
		if err != nil {
			return nil, err
		}
		return ir.Or{L: l, R: r}, nil
	default:
		return nil, diagnostics.Internal("unknown guard expression kind")
	}
}

func convertGroup(g *graph.Graph, def *ast.GroupDef) (*ir.Group, error) {
	grp := ir.NewGroup(def.Name)
	for k, v := range def.Attrs {
		grp.Attrs[k] = v
	}
	for _, a := range def.Assignments {
		dst, err := convertPort(g, a.Dst)
		if err != nil {
			return nil, err
		}
		src, err := convertPort(g, a.Src)
		if err != nil {
			return nil, err
		}
		guard, err := convertGuard(g, a.Guard)
		if err != nil {
			return nil, err
		}
		attrs := ast.Attributes{}
		for k, v := range a.Attrs {
			attrs[k] = v
		}
		grp.Add(&ir.Assignment{Dst: dst, Src: src, Guard: guard, Attrs: attrs})
	}
	return grp, nil
}

func convertInvokeArgs(g *graph.Graph, args []ast.InvokeArg) ([]ir.InvokeArg, error) {
	out := make([]ir.InvokeArg, 0, len(args))
	for _, a := range args {
		src, err := convertPort(g, a.Src)
		if err != nil {
			return nil, err
		}
		out = append(out, ir.InvokeArg{Port: a.Port, Src: src})
	}
	return out, nil
}

// convertControl recursively lowers a surface control tree into the IR's
// control tree, unifying If/Ifen per Open Question (a): EnableCond is set
// whenever the surface node supplied a CondGroup.
func convertControl(g *graph.Graph, c ast.Control) (ir.Control, error) {
	switch node := c.(type) {
	case nil:
		return &ir.Empty{}, nil

	case *ast.EmptyControl:
		return &ir.Empty{Base: ir.CopyAttrs(node.GetAttributes(), node.GetToken().Pos)}, nil

	case *ast.EnableControl:
		return &ir.Enable{Base: ir.CopyAttrs(node.GetAttributes(), node.GetToken().Pos), Group: node.Group}, nil

	case *ast.InvokeControl:
		args, err := convertInvokeArgs(g, node.Args)
		if err != nil {
			return nil, err
		}
		if _, ok := g.LookupInstance(node.Instance); !ok {
			return nil, diagnostics.UndefinedComponent(node.Token.Pos, node.Instance)
		}
		return &ir.Invoke{Base: ir.CopyAttrs(node.GetAttributes(), node.GetToken().Pos), Instance: node.Instance, Args: args}, nil

	case *ast.SeqControl:
		stmts, err := convertStmts(g, node.Stmts)
		if err != nil {
			return nil, err
		}
		return &ir.Seq{Base: ir.CopyAttrs(node.GetAttributes(), node.GetToken().Pos), Stmts: stmts}, nil

	case *ast.ParControl:
		stmts, err := convertStmts(g, node.Stmts)
		if err != nil {
			return nil, err
		}
		return &ir.Par{Base: ir.CopyAttrs(node.GetAttributes(), node.GetToken().Pos), Stmts: stmts}, nil

	case *ast.IfControl:
		cond, err := convertPort(g, node.Cond)
		if err != nil {
			return nil, err
		}
		tb, err := convertControl(g, node.TBranch)
		if err != nil {
			return nil, err
		}
		fb, err := convertControl(g, node.FBranch)
		if err != nil {
			return nil, err
		}
		condGroup := ""
		if node.CondGroup != nil {
			condGroup = *node.CondGroup
		}
		return &ir.If{
			Base:       ir.CopyAttrs(node.GetAttributes(), node.GetToken().Pos),
			Cond:       cond,
			CondGroup:  condGroup,
			EnableCond: node.CondGroup != nil,
			TBranch:    tb,
			FBranch:    fb,
		}, nil

	case *ast.WhileControl:
		cond, err := convertPort(g, node.Cond)
		if err != nil {
			return nil, err
		}
		body, err := convertControl(g, node.Body)
		if err != nil {
			return nil, err
		}
		condGroup := ""
		if node.CondGroup != nil {
			condGroup = *node.CondGroup
		}
		return &ir.While{Base: ir.CopyAttrs(node.GetAttributes(), node.GetToken().Pos), Cond: cond, CondGroup: condGroup, Body: body}, nil

	case *ast.PrintControl:
		target, err := convertPort(g, node.Target)
		if err != nil {
			return nil, err
		}
		return &ir.Print{Base: ir.CopyAttrs(node.GetAttributes(), node.GetToken().Pos), Target: target}, nil

	case *ast.DisableControl:
		return &ir.Disable{Base: ir.CopyAttrs(node.GetAttributes(), node.GetToken().Pos), Group: node.Group}, nil

	default:
		return nil, diagnostics.Internal("unknown control node kind")
	}
}

func convertStmts(g *graph.Graph, stmts []ast.Control) ([]ir.Control, error) {
	out := make([]ir.Control, 0, len(stmts))
	for _, s := range stmts {
		c, err := convertControl(g, s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
