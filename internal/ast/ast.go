// Package ast defines the syntax tree for contract interface definition
// files: contracts containing function, error, and event declarations.
package ast

import (
	"github.com/solbind/solbind/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Program is the root node of every AST the parser produces.
type Program struct {
	File      string // Source file path
	Contracts []*ContractDecl
}

func (p *Program) TokenLiteral() string {
	if len(p.Contracts) > 0 {
		return p.Contracts[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if p == nil || len(p.Contracts) == 0 {
		return token.Token{}
	}
	return p.Contracts[0].GetToken()
}

// ContractDecl represents one contract or interface block.
// contract Token { ... }
type ContractDecl struct {
	Token     token.Token // The 'contract' or 'interface' token
	Name      string
	Functions []*FunctionDecl
	Errors    []*ErrorDecl
	Events    []*EventDecl
}

func (c *ContractDecl) TokenLiteral() string { return c.Token.Lexeme }
func (c *ContractDecl) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// FunctionDecl represents a function declaration.
// function transfer(address to, uint256 amount) returns (bool)
type FunctionDecl struct {
	Token   token.Token // The 'function' token
	Name    string
	NameTok token.Token
	Params  []*Param
	Returns []*Param // parsed and retained; not part of the signature
}

func (f *FunctionDecl) TokenLiteral() string { return f.Token.Lexeme }
func (f *FunctionDecl) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// ErrorDecl represents a declared error condition.
// error InsufficientBalance(uint256 available, uint256 required)
type ErrorDecl struct {
	Token   token.Token // The 'error' token
	Name    string
	NameTok token.Token
	Params  []*Param
}

func (e *ErrorDecl) TokenLiteral() string { return e.Token.Lexeme }
func (e *ErrorDecl) GetToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	return e.Token
}

// EventDecl represents an emitted event.
// event Transfer(address indexed from, address indexed to, uint256 value)
type EventDecl struct {
	Token     token.Token // The 'event' token
	Name      string
	NameTok   token.Token
	Params    []*Param
	Anonymous bool
}

func (e *EventDecl) TokenLiteral() string { return e.Token.Lexeme }
func (e *EventDecl) GetToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	return e.Token
}

// Param is one parameter of a function, error, or event. The type stays
// textual until the analyzer resolves it.
type Param struct {
	Token    token.Token // first token of the type
	TypeName string      // e.g. "uint256", "address[4]", "bytes"
	Name     string      // optional
	Indexed  bool        // events only
}

func (p *Param) TokenLiteral() string { return p.Token.Lexeme }
func (p *Param) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}
