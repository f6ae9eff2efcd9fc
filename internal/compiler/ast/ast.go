package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/EthanVletter/Compiler-Crew/internal/compiler/symbols"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/token"
)

// The node set is closed: every pass dispatches over these variants with a
// type switch, so an unhandled kind shows up as a missing case during
// development instead of silently at runtime.

type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
	// ResultType reports the inferred type (symbols.TypeNumber or
	// symbols.TypeText) once identifiers have been resolved.
	ResultType() string
	GetToken() token.Token
}

// --- Program structure ---

// Program is the root: the four fixed top-level blocks.
type Program struct {
	Globals *VarDecl
	Procs   []*ProcDecl
	Funcs   []*FuncDecl
	Main    *MainBlock
}

func (p *Program) TokenLiteral() string { return "glob" }

func (p *Program) String() string {
	var out bytes.Buffer
	out.WriteString("glob { " + identList(p.Globals) + " } ")
	out.WriteString("proc { ")
	for _, pd := range p.Procs {
		out.WriteString(pd.String() + " ")
	}
	out.WriteString("} func { ")
	for _, fd := range p.Funcs {
		out.WriteString(fd.String() + " ")
	}
	out.WriteString("} ")
	out.WriteString(p.Main.String())
	return out.String()
}

// VarDecl is one declaration block: glob { ... }, var { ... } or
// local { ... }.
type VarDecl struct {
	Token token.Token // glob, var or local
	Names []*Identifier
}

func (vd *VarDecl) statementNode()       {}
func (vd *VarDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDecl) String() string {
	return vd.Token.Literal + " { " + identList(vd) + " }"
}

// MainBlock is the main { var { ... } stmts } section.
type MainBlock struct {
	Token token.Token // main
	Vars  *VarDecl
	Body  []Statement
}

func (mb *MainBlock) TokenLiteral() string { return mb.Token.Literal }
func (mb *MainBlock) String() string {
	return "main { " + mb.Vars.String() + " " + stmtList(mb.Body) + " }"
}

// ProcDecl -> name(params) { local { ... } stmts }
type ProcDecl struct {
	Token  token.Token // the name token
	Name   *Identifier
	Params []*Identifier
	Locals *VarDecl
	Body   []Statement
}

func (pd *ProcDecl) statementNode()       {}
func (pd *ProcDecl) TokenLiteral() string { return pd.Token.Literal }
func (pd *ProcDecl) String() string {
	return fmt.Sprintf("%s(%s) { %s %s }",
		pd.Name.String(), identNames(pd.Params), pd.Locals.String(), stmtList(pd.Body))
}

// FuncDecl -> name(params) { local { ... } stmts ; return expr }
type FuncDecl struct {
	Token  token.Token // the name token
	Name   *Identifier
	Params []*Identifier
	Locals *VarDecl
	Body   []Statement
	Return Expression
}

func (fd *FuncDecl) statementNode()       {}
func (fd *FuncDecl) TokenLiteral() string { return fd.Token.Literal }
func (fd *FuncDecl) String() string {
	return fmt.Sprintf("%s(%s) { %s %s; return %s }",
		fd.Name.String(), identNames(fd.Params), fd.Locals.String(),
		stmtList(fd.Body), fd.Return.String())
}

// --- Statements ---

// Assignment -> x = expr
type Assignment struct {
	Token  token.Token // =
	Target *Identifier
	Value  Expression
}

func (a *Assignment) statementNode()       {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) String() string {
	return a.Target.String() + " = " + a.Value.String()
}

// PrintStatement -> print expr
type PrintStatement struct {
	Token token.Token // print
	Value Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) String() string {
	return "print " + ps.Value.String()
}

// HaltStatement -> halt
type HaltStatement struct {
	Token token.Token // halt
}

func (hs *HaltStatement) statementNode()       {}
func (hs *HaltStatement) TokenLiteral() string { return hs.Token.Literal }
func (hs *HaltStatement) String() string       { return "halt" }

// CallStatement -> name(args) used as an instruction (procedure call)
type CallStatement struct {
	Token token.Token // the name token
	Call  *CallExpr
}

func (cs *CallStatement) statementNode()       {}
func (cs *CallStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CallStatement) String() string       { return cs.Call.String() }

// Conditional -> if cond { ... } else { ... }
type Conditional struct {
	Token token.Token // if
	Cond  Expression
	Then  []Statement
	Else  []Statement // nil when absent
}

func (c *Conditional) statementNode()       {}
func (c *Conditional) TokenLiteral() string { return c.Token.Literal }
func (c *Conditional) String() string {
	var out bytes.Buffer
	out.WriteString("if " + c.Cond.String() + " { " + stmtList(c.Then) + " }")
	if c.Else != nil {
		out.WriteString(" else { " + stmtList(c.Else) + " }")
	}
	return out.String()
}

// Loop -> while cond { ... }  or  do { ... } until cond
type Loop struct {
	Token token.Token // while or do
	Cond  Expression
	Body  []Statement
	Until bool // true for the do-until form
}

func (lp *Loop) statementNode()       {}
func (lp *Loop) TokenLiteral() string { return lp.Token.Literal }
func (lp *Loop) String() string {
	if lp.Until {
		return "do { " + stmtList(lp.Body) + " } until " + lp.Cond.String()
	}
	return "while " + lp.Cond.String() + " { " + stmtList(lp.Body) + " }"
}

// --- Expressions ---

// Identifier -> a variable or routine name. The checker annotates it with
// its resolved symbol so the generator never re-traverses scopes.
type Identifier struct {
	Token  token.Token // IDENT
	Value  string
	Symbol *symbols.Info
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }
func (i *Identifier) GetToken() token.Token {
	return i.Token
}

func (i *Identifier) ResultType() string {
	if i.Symbol != nil {
		return i.Symbol.Type
	}
	return ""
}

// NumberLiteral -> 42
type NumberLiteral struct {
	Token token.Token
	Value int
}

func (nl *NumberLiteral) expressionNode()       {}
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Literal }
func (nl *NumberLiteral) String() string        { return nl.Token.Literal }
func (nl *NumberLiteral) ResultType() string    { return symbols.TypeNumber }
func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }

// StringLiteral -> "hello"
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Literal }
func (sl *StringLiteral) String() string        { return fmt.Sprintf("%q", sl.Value) }
func (sl *StringLiteral) ResultType() string    { return symbols.TypeText }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// BinaryExpr -> (left op right)
type BinaryExpr struct {
	Token    token.Token // the operator token
	Operator string      // + - * / == < >
	Left     Expression
	Right    Expression
}

func (be *BinaryExpr) expressionNode()      {}
func (be *BinaryExpr) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpr) String() string {
	return "(" + be.Left.String() + " " + be.Operator + " " + be.Right.String() + ")"
}
func (be *BinaryExpr) ResultType() string    { return symbols.TypeNumber }
func (be *BinaryExpr) GetToken() token.Token { return be.Token }

// CallExpr -> name(args). As an expression it is a function call; wrapped
// in CallStatement it is a procedure call.
type CallExpr struct {
	Token  token.Token // the name token
	Name   *Identifier
	Args   []Expression
	Symbol *symbols.Info // resolved routine, set by the checker
}

func (ce *CallExpr) expressionNode()      {}
func (ce *CallExpr) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpr) String() string {
	args := make([]string, len(ce.Args))
	for i, a := range ce.Args {
		args[i] = a.String()
	}
	return ce.Name.String() + "(" + strings.Join(args, ", ") + ")"
}
func (ce *CallExpr) ResultType() string    { return symbols.TypeNumber }
func (ce *CallExpr) GetToken() token.Token { return ce.Token }

// --- helpers ---

func identList(vd *VarDecl) string {
	if vd == nil {
		return ""
	}
	return identNames(vd.Names)
}

func identNames(ids []*Identifier) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Value
	}
	return strings.Join(names, ", ")
}

func stmtList(stmts []Statement) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}
