package pipeline

import (
	"github.com/solbind/solbind/internal/ast"
	"github.com/solbind/solbind/internal/diagnostics"
	"github.com/solbind/solbind/internal/token"
	"github.com/solbind/solbind/pkg/group"
)

// Processor is a single pipeline stage. Stages mutate and return the shared
// context; they append diagnostics instead of failing.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the state of one compilation pass through the
// stages: source in, tokens, AST, and finally the compiled contract groups.
type PipelineContext struct {
	FilePath    string
	SourceCode  string
	TokenStream []token.Token
	AstRoot     ast.Node
	Contracts   []*group.Contract
	Errors      []*diagnostics.DiagnosticError
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}
