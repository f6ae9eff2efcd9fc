package lexer

import (
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/diag"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/token"
)

// maxStringLen is the SPL limit on string literal contents.
const maxStringLen = 15

// Lexer performs a single maximal-munch pass over the source text. The
// first unrecognized input aborts the scan with a lexical error; there is
// no backtracking and no recovery.
type Lexer struct {
	input string
	pos   int // index of the current (unconsumed) character

	line int // 1-indexed position of the current character
	col  int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// ch returns the current character, or 0 at end of input.
func (l *Lexer) ch() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// peekChar returns the character after the current one without consuming it.
func (l *Lexer) peekChar() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// advance consumes the current character and tracks line/column numbers.
func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// NextToken scans and returns the next token. On unrecognized input it
// returns a *diag.Diagnostic carrying the offending character and position.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	startLine := l.line
	startCol := l.col

	switch ch := l.ch(); ch {
	case 0:
		return l.newToken(token.TokenEOF, "", startLine, startCol), nil
	case '(':
		l.advance()
		return l.newToken(token.TokenLParen, "(", startLine, startCol), nil
	case ')':
		l.advance()
		return l.newToken(token.TokenRParen, ")", startLine, startCol), nil
	case '{':
		l.advance()
		return l.newToken(token.TokenLBrace, "{", startLine, startCol), nil
	case '}':
		l.advance()
		return l.newToken(token.TokenRBrace, "}", startLine, startCol), nil
	case ';':
		l.advance()
		return l.newToken(token.TokenSemi, ";", startLine, startCol), nil
	case ',':
		l.advance()
		return l.newToken(token.TokenComma, ",", startLine, startCol), nil
	case '+':
		l.advance()
		return l.newToken(token.TokenPlus, "+", startLine, startCol), nil
	case '-':
		l.advance()
		return l.newToken(token.TokenMinus, "-", startLine, startCol), nil
	case '*':
		l.advance()
		return l.newToken(token.TokenAsterisk, "*", startLine, startCol), nil
	case '<':
		l.advance()
		return l.newToken(token.TokenLt, "<", startLine, startCol), nil
	case '>':
		l.advance()
		return l.newToken(token.TokenGt, ">", startLine, startCol), nil
	case '=':
		l.advance()
		if l.ch() == '=' {
			l.advance()
			return l.newToken(token.TokenEq, "==", startLine, startCol), nil
		}
		return l.newToken(token.TokenAssign, "=", startLine, startCol), nil
	case '/':
		if l.peekChar() == '/' {
			l.skipLineComment()
			return l.NextToken()
		}
		if l.peekChar() == '*' {
			if err := l.skipBlockComment(startLine, startCol); err != nil {
				return token.Token{}, err
			}
			return l.NextToken()
		}
		l.advance()
		return l.newToken(token.TokenSlash, "/", startLine, startCol), nil
	case '"':
		return l.readString(startLine, startCol)
	default:
		if isDigit(ch) {
			return l.readNumber(startLine, startCol)
		}
		if isLower(ch) {
			return l.readIdentifier(startLine, startCol), nil
		}
		return token.Token{}, diag.New(diag.LexicalError, startLine, startCol,
			"unexpected character %q", string(ch))
	}
}

func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) skipLineComment() {
	for l.ch() != '\n' && l.ch() != 0 {
		l.advance()
	}
}

func (l *Lexer) skipBlockComment(startLine, startCol int) error {
	l.advance() // consume '/'
	l.advance() // consume '*'
	for {
		if l.ch() == 0 {
			return diag.New(diag.LexicalError, startLine, startCol, "unterminated block comment")
		}
		if l.ch() == '*' && l.peekChar() == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
}

// readString scans a double-quoted literal. Strings cannot span lines and
// hold at most maxStringLen characters.
func (l *Lexer) readString(startLine, startCol int) (token.Token, error) {
	l.advance() // consume opening "
	start := l.pos
	for {
		switch l.ch() {
		case 0:
			return token.Token{}, diag.New(diag.LexicalError, startLine, startCol,
				"unterminated string literal")
		case '\n':
			return token.Token{}, diag.New(diag.LexicalError, l.line, l.col,
				"string literal cannot span lines")
		case '"':
			lit := l.input[start:l.pos]
			l.advance() // consume closing "
			if len(lit) > maxStringLen {
				return token.Token{}, diag.New(diag.LexicalError, startLine, startCol,
					"string literal exceeds max length %d", maxStringLen)
			}
			return l.newToken(token.TokenString, lit, startLine, startCol), nil
		default:
			l.advance()
		}
	}
}

// readNumber scans 0 or [1-9][0-9]*. Leading zeros are rejected.
func (l *Lexer) readNumber(startLine, startCol int) (token.Token, error) {
	start := l.pos
	if l.ch() == '0' {
		l.advance()
		if isDigit(l.ch()) {
			return token.Token{}, diag.New(diag.LexicalError, startLine, startCol,
				"numbers cannot have leading zeros")
		}
	} else {
		for isDigit(l.ch()) {
			l.advance()
		}
	}
	return l.newToken(token.TokenNumber, l.input[start:l.pos], startLine, startCol), nil
}

// readIdentifier scans [a-z][a-z0-9]* and promotes keywords.
func (l *Lexer) readIdentifier(startLine, startCol int) token.Token {
	start := l.pos
	for isLower(l.ch()) || isDigit(l.ch()) {
		l.advance()
	}
	lit := l.input[start:l.pos]
	return l.newToken(lookupIdent(lit), lit, startLine, startCol)
}

func isLower(ch byte) bool {
	return 'a' <= ch && ch <= 'z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// keywords maps identifier spellings to their keyword token types.
var keywords = map[string]token.TokenType{
	"glob":   token.TokenGlob,
	"proc":   token.TokenProc,
	"func":   token.TokenFunc,
	"main":   token.TokenMain,
	"local":  token.TokenLocal,
	"var":    token.TokenVar,
	"halt":   token.TokenHalt,
	"print":  token.TokenPrint,
	"do":     token.TokenDo,
	"until":  token.TokenUntil,
	"while":  token.TokenWhile,
	"if":     token.TokenIf,
	"else":   token.TokenElse,
	"return": token.TokenReturn,
}

// lookupIdent returns the keyword type for reserved words and
// token.TokenIdent otherwise.
func lookupIdent(ident string) token.TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return token.TokenIdent
}
