package token

type TokenType string

const (
	// Punctuation
	TokenLParen TokenType = "LPAREN" // (
	TokenRParen TokenType = "RPAREN" // )
	TokenLBrace TokenType = "LBRACE" // {
	TokenRBrace TokenType = "RBRACE" // }
	TokenSemi   TokenType = "SEMI"   // ;
	TokenComma  TokenType = "COMMA"  // ,

	// Operators
	TokenAssign   TokenType = "ASSIGN" // =
	TokenEq       TokenType = "EQ"     // ==
	TokenLt       TokenType = "LT"     // <
	TokenGt       TokenType = "GT"     // >
	TokenPlus     TokenType = "PLUS"   // +
	TokenMinus    TokenType = "MINUS"  // -
	TokenAsterisk TokenType = "MULT"   // *
	TokenSlash    TokenType = "DIV"    // /

	// Literals & identifiers
	TokenIdent  TokenType = "IDENT"  // lowercase user-defined name
	TokenNumber TokenType = "NUMBER" // 0 | [1-9][0-9]*
	TokenString TokenType = "STRING" // "..." max 15 chars, single line

	// Keywords
	TokenGlob   TokenType = "glob"
	TokenProc   TokenType = "proc"
	TokenFunc   TokenType = "func"
	TokenMain   TokenType = "main"
	TokenLocal  TokenType = "local"
	TokenVar    TokenType = "var"
	TokenHalt   TokenType = "halt"
	TokenPrint  TokenType = "print"
	TokenDo     TokenType = "do"
	TokenUntil  TokenType = "until"
	TokenWhile  TokenType = "while"
	TokenIf     TokenType = "if"
	TokenElse   TokenType = "else"
	TokenReturn TokenType = "return"

	TokenEOF TokenType = "EOF"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsComparison reports whether the token is one of the comparison operators.
// Comparisons sit below +/- in the expression grammar and yield a number
// (0 or 1) in the target language.
func (t Token) IsComparison() bool {
	return t.Type == TokenEq || t.Type == TokenLt || t.Type == TokenGt
}
