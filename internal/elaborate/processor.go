package elaborate

import (
	"github.com/ilang-hdl/ilc/internal/diagnostics"
	"github.com/ilang-hdl/ilc/internal/library"
	"github.com/ilang-hdl/ilc/internal/pipeline"
)

// Processor is the pipeline.Processor stage that elaborates ctx.Namespace
// (populated by a prior parser.Processor stage) into ctx.Components,
// using ctx.Library (populated by a prior library-loading stage, or an
// empty Context if the namespace declares no primitive instances).
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Namespace == nil {
		return ctx
	}
	lib := ctx.Library
	if lib == nil {
		lib = library.NewContext(nil)
	}
	comps, err := Namespace(ctx.Namespace, lib)
	if err != nil {
		if de, ok := err.(*diagnostics.DiagnosticError); ok {
			ctx.AddError(de)
		} else {
			ctx.AddError(diagnostics.Internal(err.Error()))
		}
		return ctx
	}
	ctx.Components = comps
	return ctx
}
