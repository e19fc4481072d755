package pass

import "github.com/ilang-hdl/ilc/internal/ir"

// stopErr is an internal sentinel used to unwind the recursive walk the
// moment a hook returns Stop; Run converts it back into a clean (nil)
// return since Stop is a normal way for a pass to end early, not a failure.
type stopErr struct{}

func (stopErr) Error() string { return "pass: traversal stopped" }

// Run drives v over comp's control tree: StartComponent, a depth-first
// walk with per-construct hooks, then FinishComponent. Passes run in a
// configured order by the caller; each is expected to leave the IR
// well-formed (§4.3).
func Run(v Visitor, comp *ir.Component) error {
	if err := v.StartComponent(comp); err != nil {
		return err
	}
	newCtrl, err := walk(v, comp.Control)
	if err != nil {
		if _, ok := err.(stopErr); ok {
			return v.FinishComponent(comp)
		}
		return err
	}
	comp.Control = newCtrl
	return v.FinishComponent(comp)
}

func walk(v Visitor, node ir.Control) (ir.Control, error) {
	switch n := node.(type) {
	case *ir.Seq:
		return walkComposite(node,
			func() (Result, error) { return v.StartSeq(n) },
			func() (Result, error) { return v.FinishSeq(n) },
			func() error {
				for i := range n.Stmts {
					child, err := walk(v, n.Stmts[i])
					if err != nil {
						return err
					}
					n.Stmts[i] = child
				}
				return nil
			})

	case *ir.Par:
		return walkComposite(node,
			func() (Result, error) { return v.StartPar(n) },
			func() (Result, error) { return v.FinishPar(n) },
			func() error {
				for i := range n.Stmts {
					child, err := walk(v, n.Stmts[i])
					if err != nil {
						return err
					}
					n.Stmts[i] = child
				}
				return nil
			})

	case *ir.If:
		return walkComposite(node,
			func() (Result, error) { return v.StartIf(n) },
			func() (Result, error) { return v.FinishIf(n) },
			func() error {
				tb, err := walk(v, n.TBranch)
				if err != nil {
					return err
				}
				n.TBranch = tb
				fb, err := walk(v, n.FBranch)
				if err != nil {
					return err
				}
				n.FBranch = fb
				return nil
			})

	case *ir.While:
		return walkComposite(node,
			func() (Result, error) { return v.StartWhile(n) },
			func() (Result, error) { return v.FinishWhile(n) },
			func() error {
				body, err := walk(v, n.Body)
				if err != nil {
					return err
				}
				n.Body = body
				return nil
			})

	case *ir.Enable:
		return walkLeaf(node, v.VisitEnable(n))
	case *ir.Invoke:
		return walkLeaf(node, v.VisitInvoke(n))
	case *ir.Empty:
		return walkLeaf(node, v.VisitEmpty(n))
	case *ir.Print:
		return walkLeaf(node, v.VisitPrint(n))
	case *ir.Disable:
		return walkLeaf(node, v.VisitDisable(n))

	default:
		return node, nil
	}
}

func walkLeaf(node ir.Control, res Result, err error) (ir.Control, error) {
	if err != nil {
		return nil, err
	}
	switch res.Action {
	case Stop:
		return node, stopErr{}
	case Change:
		return res.New, nil
	default:
		return node, nil
	}
}

// walkComposite applies a composite node's Start hook, recurses into its
// children via descend unless Start said otherwise, then applies Finish.
func walkComposite(node ir.Control, start, finish func() (Result, error), descend func() error) (ir.Control, error) {
	sres, err := start()
	if err != nil {
		return nil, err
	}
	switch sres.Action {
	case Stop:
		return node, stopErr{}
	case Change:
		return sres.New, nil
	case Skip:
		return node, nil
	}

	if err := descend(); err != nil {
		return nil, err
	}

	fres, err := finish()
	if err != nil {
		return nil, err
	}
	switch fres.Action {
	case Stop:
		return node, stopErr{}
	case Change:
		return fres.New, nil
	default:
		return node, nil
	}
}
