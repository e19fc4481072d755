package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Keep running later stages even once a stage reports a diagnostic:
		// a parse failure and an elaboration failure in the same file
		// should both surface from one `ilc --file` invocation rather than
		// stopping at the first. Each Process guards on its own missing
		// upstream input (nil Namespace, nil Components) rather than on
		// ctx.HasErrors(), so a stage with nothing to do is a no-op instead
		// of a panic.
	}
	return ctx
}
