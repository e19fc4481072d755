// Package passrunner wires pass names (as named on the CLI, §6 "--pass
// <name> (repeatable)") to concrete internal/passes.Visitor instances and
// drives them over every component of a namespace in a fixed, deterministic
// order — the glue between internal/config.DefaultPassOrder and the
// internal/pass framework's per-component Run.
package passrunner

import (
	"fmt"

	"github.com/ilang-hdl/ilc/internal/diagnostics"
	"github.com/ilang-hdl/ilc/internal/ir"
	"github.com/ilang-hdl/ilc/internal/pass"
	"github.com/ilang-hdl/ilc/internal/passes"
	"github.com/ilang-hdl/ilc/internal/pipeline"
)

// NewVisitor builds a fresh instance of the named pass. A fresh instance
// per (pass name, component) pair keeps each pass's own mutable state
// (e.g. Barrier.comp) from leaking across components.
func NewVisitor(name string) (pass.Visitor, error) {
	switch name {
	case "compile-sync":
		return passes.NewBarrier(), nil
	case "group-to-seq":
		return passes.NewGroupSplit(), nil
	default:
		return nil, fmt.Errorf("unknown pass %q", name)
	}
}

// Run drives every named pass, in order, over every component named in
// order. Each pass gets its own fresh Visitor per component (see
// NewVisitor). The first error from any pass on any component is returned
// at once: no further component and no further pass runs (§7 "errors
// surface immediately... there is no local recovery").
func Run(passNames []string, order []string, comps map[string]*ir.Component) error {
	for _, name := range passNames {
		for _, compName := range order {
			comp, ok := comps[compName]
			if !ok {
				continue
			}
			v, err := NewVisitor(name)
			if err != nil {
				return diagnostics.Internal(err.Error())
			}
			if err := pass.Run(v, comp); err != nil {
				return err
			}
		}
	}
	return nil
}

// Processor adapts Run into a pipeline.Processor stage, reading
// ctx.PassNames (or config.DefaultPassOrder if unset by the caller) and
// ctx.Components, in ctx.Namespace's declaration order.
type Processor struct {
	// DefaultOrder is used when ctx.PassNames is empty.
	DefaultOrder []string
}

func (p Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Namespace == nil || ctx.Components == nil {
		return ctx
	}
	names := ctx.PassNames
	if len(names) == 0 {
		names = p.DefaultOrder
	}
	order := make([]string, 0, len(ctx.Namespace.Components))
	for _, c := range ctx.Namespace.Components {
		order = append(order, c.Name)
	}
	if err := Run(names, order, ctx.Components); err != nil {
		if de, ok := err.(*diagnostics.DiagnosticError); ok {
			ctx.AddError(de)
		} else {
			ctx.AddError(diagnostics.Internal(err.Error()))
		}
	}
	return ctx
}
