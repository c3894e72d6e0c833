// Package parser builds the AST for contract interface definition files.
// The grammar is a small Solidity-style subset: contract/interface blocks
// holding function, error, and event declarations.
package parser

import (
	"strings"

	"github.com/solbind/solbind/internal/ast"
	"github.com/solbind/solbind/internal/diagnostics"
	"github.com/solbind/solbind/internal/pipeline"
	"github.com/solbind/solbind/internal/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
	ctx    *pipeline.PipelineContext
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	return &Parser{tokens: tokens, ctx: ctx}
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) addError(code diagnostics.Code, tok token.Token, msg string) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, msg))
}

// expect consumes the current token if it has the wanted type, otherwise it
// reports ErrP002 and leaves the position unchanged.
func (p *Parser) expect(t token.TokenType, what string) (token.Token, bool) {
	if p.cur().Type != t {
		p.addError(diagnostics.ErrP002, p.cur(),
			"expected "+what+", got '"+p.cur().Lexeme+"'")
		return p.cur(), false
	}
	return p.advance(), true
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for p.cur().Type != token.EOF {
		switch p.cur().Type {
		case token.CONTRACT, token.INTERFACE:
			if c := p.parseContract(); c != nil {
				program.Contracts = append(program.Contracts, c)
			}
		case token.SEMICOLON:
			p.advance()
		default:
			p.addError(diagnostics.ErrP001, p.cur(),
				"expected 'contract' or 'interface', got '"+p.cur().Lexeme+"'")
			p.advance()
		}
	}
	return program
}

func (p *Parser) parseContract() *ast.ContractDecl {
	decl := &ast.ContractDecl{Token: p.advance()}

	nameTok, ok := p.expect(token.IDENT, "contract name")
	if !ok {
		p.recoverToContract()
		return nil
	}
	decl.Name = nameTok.Lexeme

	if _, ok := p.expect(token.LBRACE, "'{'"); !ok {
		p.recoverToContract()
		return nil
	}

	for p.cur().Type != token.RBRACE && p.cur().Type != token.EOF {
		switch p.cur().Type {
		case token.FUNCTION:
			if f := p.parseFunction(); f != nil {
				decl.Functions = append(decl.Functions, f)
			}
		case token.ERROR:
			if e := p.parseError(); e != nil {
				decl.Errors = append(decl.Errors, e)
			}
		case token.EVENT:
			if e := p.parseEvent(); e != nil {
				decl.Events = append(decl.Events, e)
			}
		case token.SEMICOLON:
			p.advance()
		default:
			p.addError(diagnostics.ErrP001, p.cur(),
				"expected 'function', 'error', or 'event', got '"+p.cur().Lexeme+"'")
			p.recoverToDecl()
		}
	}
	p.expect(token.RBRACE, "'}'")
	return decl
}

func (p *Parser) parseFunction() *ast.FunctionDecl {
	decl := &ast.FunctionDecl{Token: p.advance()}

	nameTok, ok := p.expect(token.IDENT, "function name")
	if !ok {
		p.recoverToDecl()
		return nil
	}
	decl.Name = nameTok.Lexeme
	decl.NameTok = nameTok

	params, ok := p.parseParamList(false)
	if !ok {
		p.recoverToDecl()
		return nil
	}
	decl.Params = params

	// Modifiers like 'external' or 'view' are accepted and ignored; they do
	// not affect the signature.
	for p.cur().Type == token.IDENT {
		p.advance()
	}

	if p.cur().Type == token.RETURNS {
		p.advance()
		returns, ok := p.parseParamList(false)
		if !ok {
			p.recoverToDecl()
			return nil
		}
		decl.Returns = returns
	}
	p.eatSemicolon()
	return decl
}

func (p *Parser) parseError() *ast.ErrorDecl {
	decl := &ast.ErrorDecl{Token: p.advance()}

	nameTok, ok := p.expect(token.IDENT, "error name")
	if !ok {
		p.recoverToDecl()
		return nil
	}
	decl.Name = nameTok.Lexeme
	decl.NameTok = nameTok

	params, ok := p.parseParamList(false)
	if !ok {
		p.recoverToDecl()
		return nil
	}
	decl.Params = params
	p.eatSemicolon()
	return decl
}

func (p *Parser) parseEvent() *ast.EventDecl {
	decl := &ast.EventDecl{Token: p.advance()}

	nameTok, ok := p.expect(token.IDENT, "event name")
	if !ok {
		p.recoverToDecl()
		return nil
	}
	decl.Name = nameTok.Lexeme
	decl.NameTok = nameTok

	params, ok := p.parseParamList(true)
	if !ok {
		p.recoverToDecl()
		return nil
	}
	decl.Params = params

	if p.cur().Type == token.ANONYMOUS {
		p.advance()
		decl.Anonymous = true
	}
	p.eatSemicolon()
	return decl
}

// parseParamList parses "(" [param ("," param)*] ")". allowIndexed permits
// the 'indexed' keyword between type and name (events only).
func (p *Parser) parseParamList(allowIndexed bool) ([]*ast.Param, bool) {
	if _, ok := p.expect(token.LPAREN, "'('"); !ok {
		return nil, false
	}

	var params []*ast.Param
	if p.cur().Type == token.RPAREN {
		p.advance()
		return params, true
	}

	for {
		param, ok := p.parseParam(allowIndexed)
		if !ok {
			return nil, false
		}
		params = append(params, param)

		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RPAREN, "')'"); !ok {
		return nil, false
	}
	return params, true
}

// parseParam parses: type ['indexed'] [name].
func (p *Parser) parseParam(allowIndexed bool) (*ast.Param, bool) {
	typeTok := p.cur()
	typeName, ok := p.parseTypeName()
	if !ok {
		return nil, false
	}
	param := &ast.Param{Token: typeTok, TypeName: typeName}

	if p.cur().Type == token.INDEXED {
		if !allowIndexed {
			// Reported here rather than in the analyzer: the token cannot
			// appear outside an event parameter list at all.
			p.addError(diagnostics.ErrP004, p.cur(),
				"'indexed' is only allowed on event parameters")
		}
		p.advance()
		param.Indexed = true
	}

	if p.cur().Type == token.IDENT {
		param.Name = p.advance().Lexeme
	}
	return param, true
}

// parseTypeName parses IDENT ("[" [INT] "]")* into its textual form.
// Validity of the base type is the analyzer's concern.
func (p *Parser) parseTypeName() (string, bool) {
	base, ok := p.expect(token.IDENT, "parameter type")
	if !ok {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString(base.Lexeme)
	for p.cur().Type == token.LBRACKET {
		p.advance()
		sb.WriteByte('[')
		if p.cur().Type == token.INT {
			sb.WriteString(p.advance().Lexeme)
		}
		if _, ok := p.expect(token.RBRACKET, "']'"); !ok {
			return "", false
		}
		sb.WriteByte(']')
	}
	return sb.String(), true
}

func (p *Parser) eatSemicolon() {
	if p.cur().Type == token.SEMICOLON {
		p.advance()
	}
}

// recoverToDecl skips to the next declaration boundary inside a contract so
// one malformed declaration does not swallow the rest.
func (p *Parser) recoverToDecl() {
	for {
		switch p.cur().Type {
		case token.FUNCTION, token.ERROR, token.EVENT, token.RBRACE, token.EOF:
			return
		}
		p.advance()
	}
}

func (p *Parser) recoverToContract() {
	for {
		switch p.cur().Type {
		case token.CONTRACT, token.INTERFACE, token.EOF:
			return
		}
		p.advance()
	}
}
