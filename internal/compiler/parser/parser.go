package parser

import (
	"strconv"

	"github.com/EthanVletter/Compiler-Crew/internal/compiler/ast"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/diag"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/lexer"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/token"
)

// maxListLen bounds parameters, locals and call arguments (the MAXTHREE
// grammar rule).
const maxListLen = 3

// Parser is a recursive-descent parser with one method per production. The
// cursor is the explicit curTok/peekTok pair owned by the instance; there is
// no shared parsing state. The first mismatch aborts with a syntax error and
// parsing is non-resumable.
type Parser struct {
	l       *lexer.Lexer
	curTok  token.Token
	peekTok token.Token
}

func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

// nextToken advances the cursor, surfacing lexical errors.
func (p *Parser) nextToken() error {
	var err error
	p.curTok = p.peekTok
	p.peekTok, err = p.l.NextToken()
	return err
}

func (p *Parser) syntaxError(tok token.Token, format string, args ...any) error {
	return diag.New(diag.SyntaxError, tok.Line, tok.Column, format, args...)
}

// describe renders a token for error messages.
func describe(tok token.Token) string {
	if tok.Type == token.TokenEOF {
		return "end of input"
	}
	return "'" + tok.Literal + "'"
}

// expect consumes the current token if it has the wanted type, or fails
// naming what was expected and what was found.
func (p *Parser) expect(tt token.TokenType, what string) (token.Token, error) {
	if p.curTok.Type != tt {
		return token.Token{}, p.syntaxError(p.curTok, "expected %s, found %s", what, describe(p.curTok))
	}
	tok := p.curTok
	if err := p.nextToken(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

// ParseProgram parses the four fixed top-level blocks:
//
//	program := 'glob' '{' idents '}' 'proc' '{' procdefs '}'
//	           'func' '{' funcdefs '}' 'main' '{' var-block stmts '}'
func (p *Parser) ParseProgram() (*ast.Program, error) {
	// Prime curTok and peekTok.
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	prog := &ast.Program{}

	globals, err := p.parseDeclBlock(token.TokenGlob, "'glob'", 0)
	if err != nil {
		return nil, err
	}
	prog.Globals = globals

	if _, err := p.expect(token.TokenProc, "'proc'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	for p.curTok.Type == token.TokenIdent {
		pd, err := p.parseProcDef()
		if err != nil {
			return nil, err
		}
		prog.Procs = append(prog.Procs, pd)
	}
	if _, err := p.expect(token.TokenRBrace, "'}'"); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.TokenFunc, "'func'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	for p.curTok.Type == token.TokenIdent {
		fd, err := p.parseFuncDef()
		if err != nil {
			return nil, err
		}
		prog.Funcs = append(prog.Funcs, fd)
	}
	if _, err := p.expect(token.TokenRBrace, "'}'"); err != nil {
		return nil, err
	}

	main, err := p.parseMainBlock()
	if err != nil {
		return nil, err
	}
	prog.Main = main

	if p.curTok.Type != token.TokenEOF {
		return nil, p.syntaxError(p.curTok, "expected end of input, found %s", describe(p.curTok))
	}
	return prog, nil
}

// parseDeclBlock parses KEYWORD '{' ident-list '}'. A max of 0 means
// unbounded.
func (p *Parser) parseDeclBlock(kw token.TokenType, what string, max int) (*ast.VarDecl, error) {
	kwTok, err := p.expect(kw, what)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	names, err := p.parseIdentList(max)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Token: kwTok, Names: names}, nil
}

// parseIdentList parses zero or more identifiers with an optional comma
// separator. The original grammar separates names by whitespace alone; the
// comma form is accepted as well.
func (p *Parser) parseIdentList(max int) ([]*ast.Identifier, error) {
	var names []*ast.Identifier
	for p.curTok.Type == token.TokenIdent {
		if max > 0 && len(names) == max {
			return nil, p.syntaxError(p.curTok, "at most %d names allowed here", max)
		}
		names = append(names, &ast.Identifier{Token: p.curTok, Value: p.curTok.Literal})
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if p.curTok.Type == token.TokenComma {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			if p.curTok.Type != token.TokenIdent {
				return nil, p.syntaxError(p.curTok, "expected identifier after ',', found %s", describe(p.curTok))
			}
		}
	}
	return names, nil
}

// parseProcDef parses name '(' params ')' '{' local-block stmts '}'.
func (p *Parser) parseProcDef() (*ast.ProcDecl, error) {
	nameTok, name, params, err := p.parseRoutineHeader()
	if err != nil {
		return nil, err
	}
	locals, err := p.parseDeclBlock(token.TokenLocal, "'local'", maxListLen)
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatementList(token.TokenRBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.ProcDecl{Token: nameTok, Name: name, Params: params, Locals: locals, Body: body}, nil
}

// parseFuncDef parses name '(' params ')' '{' local-block stmts ';'
// 'return' expr '}'.
func (p *Parser) parseFuncDef() (*ast.FuncDecl, error) {
	nameTok, name, params, err := p.parseRoutineHeader()
	if err != nil {
		return nil, err
	}
	locals, err := p.parseDeclBlock(token.TokenLocal, "'local'", maxListLen)
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatementList(token.TokenRBrace, token.TokenReturn)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenReturn, "'return'"); err != nil {
		return nil, err
	}
	ret, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.FuncDecl{Token: nameTok, Name: name, Params: params, Locals: locals, Body: body, Return: ret}, nil
}

// parseRoutineHeader parses name '(' params ')' '{' shared by proc and
// func definitions.
func (p *Parser) parseRoutineHeader() (token.Token, *ast.Identifier, []*ast.Identifier, error) {
	nameTok, err := p.expect(token.TokenIdent, "routine name")
	if err != nil {
		return token.Token{}, nil, nil, err
	}
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}
	if _, err := p.expect(token.TokenLParen, "'('"); err != nil {
		return token.Token{}, nil, nil, err
	}
	params, err := p.parseIdentList(maxListLen)
	if err != nil {
		return token.Token{}, nil, nil, err
	}
	if _, err := p.expect(token.TokenRParen, "')'"); err != nil {
		return token.Token{}, nil, nil, err
	}
	if _, err := p.expect(token.TokenLBrace, "'{'"); err != nil {
		return token.Token{}, nil, nil, err
	}
	return nameTok, name, params, nil
}

// parseMainBlock parses 'main' '{' var-block stmts '}'.
func (p *Parser) parseMainBlock() (*ast.MainBlock, error) {
	mainTok, err := p.expect(token.TokenMain, "'main'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	vars, err := p.parseDeclBlock(token.TokenVar, "'var'", 0)
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatementList(token.TokenRBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.MainBlock{Token: mainTok, Vars: vars, Body: body}, nil
}

// parseStatementList parses stmt (';' stmt)* with an optional trailing
// semicolon. The list must hold at least one statement. Parsing stops when
// the current token is one of the terminators.
func (p *Parser) parseStatementList(terminators ...token.TokenType) ([]ast.Statement, error) {
	var stmts []ast.Statement
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)

		if p.curTok.Type != token.TokenSemi {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if p.terminated(terminators) {
			break
		}
	}
	return stmts, nil
}

func (p *Parser) terminated(terminators []token.TokenType) bool {
	for _, tt := range terminators {
		if p.curTok.Type == tt {
			return true
		}
	}
	return false
}

// parseStatement dispatches on the leading token of one instruction.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curTok.Type {
	case token.TokenHalt:
		stmt := &ast.HaltStatement{Token: p.curTok}
		return stmt, p.nextToken()
	case token.TokenPrint:
		return p.parsePrintStatement()
	case token.TokenIf:
		return p.parseConditional()
	case token.TokenWhile:
		return p.parseWhileLoop()
	case token.TokenDo:
		return p.parseDoUntilLoop()
	case token.TokenIdent:
		switch p.peekTok.Type {
		case token.TokenAssign:
			return p.parseAssignment()
		case token.TokenLParen:
			return p.parseCallStatement()
		default:
			return nil, p.syntaxError(p.peekTok, "expected '=' or '(' after identifier, found %s", describe(p.peekTok))
		}
	default:
		return nil, p.syntaxError(p.curTok, "expected statement, found %s", describe(p.curTok))
	}
}

func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	printTok := p.curTok
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Token: printTok, Value: value}, nil
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	target := &ast.Identifier{Token: p.curTok, Value: p.curTok.Literal}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	assignTok, err := p.expect(token.TokenAssign, "'='")
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Token: assignTok, Target: target, Value: value}, nil
}

func (p *Parser) parseCallStatement() (ast.Statement, error) {
	callTok := p.curTok
	call, err := p.parseCallExpr()
	if err != nil {
		return nil, err
	}
	return &ast.CallStatement{Token: callTok, Call: call}, nil
}

func (p *Parser) parseConditional() (ast.Statement, error) {
	ifTok := p.curTok
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBracedStatements()
	if err != nil {
		return nil, err
	}
	stmt := &ast.Conditional{Token: ifTok, Cond: cond, Then: then}
	if p.curTok.Type == token.TokenElse {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		stmt.Else, err = p.parseBracedStatements()
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhileLoop() (ast.Statement, error) {
	whileTok := p.curTok
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBracedStatements()
	if err != nil {
		return nil, err
	}
	return &ast.Loop{Token: whileTok, Cond: cond, Body: body}, nil
}

func (p *Parser) parseDoUntilLoop() (ast.Statement, error) {
	doTok := p.curTok
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	body, err := p.parseBracedStatements()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenUntil, "'until'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Loop{Token: doTok, Cond: cond, Body: body, Until: true}, nil
}

// parseBracedStatements parses '{' stmts '}'.
func (p *Parser) parseBracedStatements() ([]ast.Statement, error) {
	if _, err := p.expect(token.TokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList(token.TokenRBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenRBrace, "'}'"); err != nil {
		return nil, err
	}
	return stmts, nil
}

// --- Expressions ---
//
// expr   := arith (('==' | '<' | '>') arith)*
// arith  := term (('+' | '-') term)*
// term   := factor (('*' | '/') factor)*
// factor := identifier ['(' args ')'] | number | string | '(' expr ')'
//
// All levels are left-associative.

func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	for p.curTok.IsComparison() {
		opTok := p.curTok
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Token: opTok, Operator: opTok.Literal, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseArith() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == token.TokenPlus || p.curTok.Type == token.TokenMinus {
		opTok := p.curTok
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Token: opTok, Operator: opTok.Literal, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == token.TokenAsterisk || p.curTok.Type == token.TokenSlash {
		opTok := p.curTok
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Token: opTok, Operator: opTok.Literal, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	switch p.curTok.Type {
	case token.TokenNumber:
		value, err := strconv.Atoi(p.curTok.Literal)
		if err != nil {
			return nil, p.syntaxError(p.curTok, "number %s out of range", p.curTok.Literal)
		}
		lit := &ast.NumberLiteral{Token: p.curTok, Value: value}
		return lit, p.nextToken()
	case token.TokenString:
		lit := &ast.StringLiteral{Token: p.curTok, Value: p.curTok.Literal}
		return lit, p.nextToken()
	case token.TokenIdent:
		if p.peekTok.Type == token.TokenLParen {
			return p.parseCallExpr()
		}
		ident := &ast.Identifier{Token: p.curTok, Value: p.curTok.Literal}
		return ident, p.nextToken()
	case token.TokenLParen:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.TokenRParen, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.syntaxError(p.curTok, "expected expression, found %s", describe(p.curTok))
	}
}

// parseCallExpr parses name '(' args ')' with at most three arguments.
func (p *Parser) parseCallExpr() (*ast.CallExpr, error) {
	nameTok := p.curTok
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TokenLParen, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for p.curTok.Type != token.TokenRParen {
		if len(args) == maxListLen {
			return nil, p.syntaxError(p.curTok, "at most %d arguments allowed", maxListLen)
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curTok.Type == token.TokenComma {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			if p.curTok.Type == token.TokenRParen {
				return nil, p.syntaxError(p.curTok, "expected expression after ',', found ')'")
			}
		}
	}
	if _, err := p.expect(token.TokenRParen, "')'"); err != nil {
		return nil, err
	}
	return &ast.CallExpr{Token: nameTok, Name: name, Args: args}, nil
}
