package parser

import (
	"github.com/ilang-hdl/ilc/internal/diagnostics"
	"github.com/ilang-hdl/ilc/internal/pipeline"
)

// Processor is the pipeline.Processor stage that parses ctx.Source into
// ctx.Namespace, the same ParserProcessor.Process shape the teacher's
// internal/parser.ParserProcessor uses to adapt a hand-written parser into
// a pipeline stage.
type Processor struct{}

func (Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ns, err := ParseNamespace(ctx.FilePath, ctx.Source)
	if err != nil {
		if de, ok := err.(*diagnostics.DiagnosticError); ok {
			ctx.AddError(de)
		} else {
			ctx.AddError(diagnostics.Internal(err.Error()))
		}
		return ctx
	}
	ctx.Namespace = ns
	return ctx
}
