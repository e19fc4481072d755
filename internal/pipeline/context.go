package pipeline

import (
	"github.com/google/uuid"

	"github.com/ilang-hdl/ilc/internal/ast"
	"github.com/ilang-hdl/ilc/internal/diagnostics"
	"github.com/ilang-hdl/ilc/internal/ir"
	"github.com/ilang-hdl/ilc/internal/library"
)

// Processor is one stage of the compilation pipeline, threading a mutable
// PipelineContext through in sequence — the same shape as the teacher's
// lexer/parser/analyzer processors (internal/lexer.LexerProcessor,
// internal/parser.ParserProcessor, internal/analyzer.SemanticAnalyzerProcessor).
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext is the mutable state threaded through every stage: raw
// source in, a parsed namespace, a library context, elaborated components,
// and any diagnostics collected along the way. Fields are additive —
// earlier stages populate fields later stages read, mirroring the
// teacher's PipelineContext{Errors, AstRoot, TypeMap, SymbolTable} grown
// incrementally by each processor.
type PipelineContext struct {
	// RunID correlates every diagnostic and log line from one Run call,
	// stamped once up front. It is never used to name groups, cells, or
	// any other IR artifact — those names must stay deterministic
	// functions of (component, counter) per §5, not random per-run IDs.
	RunID uuid.UUID

	FilePath string
	Source   string

	LibraryPaths []string
	PassNames    []string

	Namespace *ast.NamespaceDef
	Library   *library.Context

	Components map[string]*ir.Component

	Errors []*diagnostics.DiagnosticError
}

// NewPipelineContext builds the initial context for one compilation run:
// source text plus a fresh run ID, everything else left for later stages.
func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		RunID:  uuid.New(),
		Source: source,
	}
}

// AddError appends a diagnostic to the context without aborting the
// pipeline — later stages keep running so a single compile surfaces as
// many diagnostics as possible, the same "continue on errors" contract
// Pipeline.Run documents.
func (c *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	c.Errors = append(c.Errors, err)
}

// HasErrors reports whether any stage recorded a diagnostic.
func (c *PipelineContext) HasErrors() bool { return len(c.Errors) > 0 }
