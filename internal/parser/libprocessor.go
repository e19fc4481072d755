package parser

import (
	"github.com/ilang-hdl/ilc/internal/diagnostics"
	"github.com/ilang-hdl/ilc/internal/library"
	"github.com/ilang-hdl/ilc/internal/pipeline"
)

// LibrarySource is one not-yet-parsed library file, read by the CLI driver
// (or a test) before the pipeline runs — this package never touches the
// filesystem itself, keeping IO at the cmd/ edge and pure text in, data
// out everywhere else.
type LibrarySource struct {
	File string
	Text string
}

// LibraryProcessor is the pipeline.Processor stage that parses zero or
// more library sources into ctx.Library. With no sources it leaves
// ctx.Library nil, and elaborate.Processor falls back to an empty
// library.Context — a namespace with no primitive instances never needs
// one.
type LibraryProcessor struct {
	Sources []LibrarySource
}

func (lp LibraryProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(lp.Sources) == 0 {
		return ctx
	}
	var all []*library.Template
	for _, src := range lp.Sources {
		tmpls, err := ParseLibrary(src.File, src.Text)
		if err != nil {
			if de, ok := err.(*diagnostics.DiagnosticError); ok {
				ctx.AddError(de)
			} else {
				ctx.AddError(diagnostics.Internal(err.Error()))
			}
			continue
		}
		all = append(all, tmpls...)
	}
	ctx.Library = library.NewContext(all)
	return ctx
}
