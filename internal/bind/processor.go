package bind

import (
	"github.com/solbind/solbind/internal/ast"
	"github.com/solbind/solbind/internal/pipeline"
)

// BinderProcessor compiles every contract in the AST into ctx.Contracts.
type BinderProcessor struct{}

func (bp *BinderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous stages failed, don't bind: the analyzer guarantees the
	// invariants the binder relies on.
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	prog, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return ctx
	}

	for _, decl := range prog.Contracts {
		contract, diags := Bind(decl)
		if len(diags) > 0 {
			for _, d := range diags {
				if d.File == "" {
					d.File = ctx.FilePath
				}
			}
			ctx.Errors = append(ctx.Errors, diags...)
			continue
		}
		ctx.Contracts = append(ctx.Contracts, contract)
	}
	return ctx
}
