// Package pass is the visitor-based pass framework of spec.md §4.3: a
// depth-first driver over one component's control tree, dispatching to a
// capability interface whose hooks return a structured rewrite action
// instead of mutating the tree directly.
package pass

import "github.com/ilang-hdl/ilc/internal/ir"

// Action is the sum of rewrite decisions a hook can make.
type Action int

const (
	// Continue descends into the node's children normally (composite
	// nodes only; a no-op for leaves).
	Continue Action = iota
	// Skip leaves the node as-is and does not descend into its children.
	Skip
	// Change replaces the node with Result.New and does not descend into
	// either the old or the new subtree this pass.
	Change
	// Stop aborts the entire traversal of this component immediately.
	Stop
)

// Result is what every hook returns.
type Result struct {
	Action Action
	New    ir.Control
}

func ContinueResult() Result            { return Result{Action: Continue} }
func SkipResult() Result                { return Result{Action: Skip} }
func StopResult() Result                { return Result{Action: Stop} }
func ChangeResult(n ir.Control) Result  { return Result{Action: Change, New: n} }
