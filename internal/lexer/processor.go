package lexer

import (
	"github.com/solbind/solbind/internal/diagnostics"
	"github.com/solbind/solbind/internal/pipeline"
	"github.com/solbind/solbind/internal/token"
)

// LexerProcessor tokenizes ctx.SourceCode into ctx.TokenStream. Illegal
// characters become diagnostics; the token stream always ends with EOF so the
// parser can run even on bad input.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)

	var stream []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(
				diagnostics.ErrL001, tok,
				"illegal character '"+tok.Lexeme+"'",
			))
			continue
		}
		stream = append(stream, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	if open, ok := l.OpenComment(); ok {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(
			diagnostics.ErrL002, open, "unterminated block comment",
		))
	}

	ctx.TokenStream = stream
	return ctx
}
