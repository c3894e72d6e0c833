package analyzer

import (
	"github.com/solbind/solbind/internal/ast"
	"github.com/solbind/solbind/internal/pipeline"
)

type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	prog, ok := ctx.AstRoot.(*ast.Program)
	if !ok || prog == nil {
		// Parse failed; parser diagnostics already explain why.
		return ctx
	}

	a := &analyzer{}
	a.checkProgram(prog)

	for _, err := range a.errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	ctx.Errors = append(ctx.Errors, a.errors...)
	return ctx
}
