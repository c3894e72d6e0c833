package lexer

import (
	"testing"

	"github.com/solbind/solbind/internal/diagnostics"
	"github.com/solbind/solbind/internal/pipeline"
	"github.com/solbind/solbind/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `contract Token {
	function transfer(address to, uint256 amount) returns (bool);
	event Transfer(address indexed from, address indexed to, uint256 value);
	error Overdrawn(uint256 by); // trailing comment
	/* block
	   comment */
	uint8[4] $weird _name
}`

	expected := []struct {
		typ    token.TokenType
		lexeme string
	}{
		{token.CONTRACT, "contract"},
		{token.IDENT, "Token"},
		{token.LBRACE, "{"},
		{token.FUNCTION, "function"},
		{token.IDENT, "transfer"},
		{token.LPAREN, "("},
		{token.IDENT, "address"},
		{token.IDENT, "to"},
		{token.COMMA, ","},
		{token.IDENT, "uint256"},
		{token.IDENT, "amount"},
		{token.RPAREN, ")"},
		{token.RETURNS, "returns"},
		{token.LPAREN, "("},
		{token.IDENT, "bool"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.EVENT, "event"},
		{token.IDENT, "Transfer"},
		{token.LPAREN, "("},
		{token.IDENT, "address"},
		{token.INDEXED, "indexed"},
		{token.IDENT, "from"},
		{token.COMMA, ","},
		{token.IDENT, "address"},
		{token.INDEXED, "indexed"},
		{token.IDENT, "to"},
		{token.COMMA, ","},
		{token.IDENT, "uint256"},
		{token.IDENT, "value"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.ERROR, "error"},
		{token.IDENT, "Overdrawn"},
		{token.LPAREN, "("},
		{token.IDENT, "uint256"},
		{token.IDENT, "by"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "uint8"},
		{token.LBRACKET, "["},
		{token.INT, "4"},
		{token.RBRACKET, "]"},
		{token.IDENT, "$weird"},
		{token.IDENT, "_name"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Fatalf("token %d: type = %q, want %q (lexeme %q)", i, tok.Type, exp.typ, tok.Lexeme)
		}
		if exp.lexeme != "" && tok.Lexeme != exp.lexeme {
			t.Fatalf("token %d: lexeme = %q, want %q", i, tok.Lexeme, exp.lexeme)
		}
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	input := "contract A\n  {}"

	l := New(input)
	positions := []struct {
		line, column int
	}{
		{1, 1},  // contract
		{1, 10}, // A
		{2, 3},  // {
		{2, 4},  // }
	}
	for i, want := range positions {
		tok := l.NextToken()
		if tok.Line != want.line || tok.Column != want.column {
			t.Errorf("token %d (%q): at %d:%d, want %d:%d",
				i, tok.Lexeme, tok.Line, tok.Column, want.line, want.column)
		}
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	l := New("contract /* never closed")
	if tok := l.NextToken(); tok.Type != token.CONTRACT {
		t.Fatalf("first token = %q, want contract", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != token.EOF {
		t.Errorf("token after open comment = %q, want EOF", tok.Type)
	}
	open, ok := l.OpenComment()
	if !ok {
		t.Fatalf("open comment not recorded")
	}
	if open.Line != 1 || open.Column != 10 {
		t.Errorf("open comment at %d:%d, want 1:10", open.Line, open.Column)
	}
}

func TestUnterminatedBlockCommentDiagnostic(t *testing.T) {
	// The declarations before the open comment still tokenize; the comment
	// itself is a diagnostic, not a silent truncation.
	source := "contract C { function f(uint256 a); function g(bool b); } /* never closed"
	ctx := pipeline.NewPipelineContext(source)
	ctx = (&LexerProcessor{}).Process(ctx)

	if len(ctx.Errors) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(ctx.Errors))
	}
	if ctx.Errors[0].Code != diagnostics.ErrL002 {
		t.Errorf("diagnostic code = %q, want L002", ctx.Errors[0].Code)
	}

	var idents []string
	for _, tok := range ctx.TokenStream {
		if tok.Type == token.FUNCTION {
			idents = append(idents, tok.Lexeme)
		}
	}
	if len(idents) != 2 {
		t.Errorf("got %d function keywords before the open comment, want 2", len(idents))
	}
}

func TestLexerProcessorReportsIllegal(t *testing.T) {
	ctx := pipeline.NewPipelineContext("contract @ {}")
	ctx = (&LexerProcessor{}).Process(ctx)

	if len(ctx.Errors) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(ctx.Errors))
	}
	if ctx.Errors[0].Code != "L001" {
		t.Errorf("diagnostic code = %q, want L001", ctx.Errors[0].Code)
	}

	// The illegal character is dropped; the stream still ends with EOF.
	last := ctx.TokenStream[len(ctx.TokenStream)-1]
	if last.Type != token.EOF {
		t.Errorf("stream ends with %q, want EOF", last.Type)
	}
	for _, tok := range ctx.TokenStream {
		if tok.Type == token.ILLEGAL {
			t.Errorf("illegal token leaked into the stream")
		}
	}
}
