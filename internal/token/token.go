package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers and literals
	IDENT = "IDENT" // transfer, uint256, Token
	INT   = "INT"   // array lengths: uint256[3]

	// Delimiters
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	LBRACKET  = "["
	RBRACKET  = "]"
	COMMA     = ","
	SEMICOLON = ";"

	// Keywords
	CONTRACT  = "CONTRACT"
	INTERFACE = "INTERFACE"
	FUNCTION  = "FUNCTION"
	ERROR     = "ERROR"
	EVENT     = "EVENT"
	RETURNS   = "RETURNS"
	INDEXED   = "INDEXED"
	ANONYMOUS = "ANONYMOUS"
)

type Token struct {
	Type    TokenType
	Lexeme  string // exact source text
	Literal string
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"contract":  CONTRACT,
	"interface": INTERFACE,
	"function":  FUNCTION,
	"error":     ERROR,
	"event":     EVENT,
	"returns":   RETURNS,
	"indexed":   INDEXED,
	"anonymous": ANONYMOUS,
}

// LookupIdent returns the keyword type for ident, or IDENT if it is not a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
