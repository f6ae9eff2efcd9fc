// Package check resolves identifier uses against the symbol table and
// enforces the typing rules: variables and arithmetic are numeric, text
// exists only as string literals handed to print, and conditions are
// numeric. Diagnostics are collected across the whole program in one pass
// so a single run reports everything; any diagnostic blocks code
// generation.
package check

import (
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/ast"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/diag"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/scope"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/symbols"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/symtab"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/token"
)

type checker struct {
	table *symtab.Table
	diags diag.List
}

// Check validates the whole program and annotates identifier and call
// nodes with their resolved symbols for the code generator.
func Check(prog *ast.Program, table *symtab.Table) diag.List {
	c := &checker{table: table}

	for _, pd := range prog.Procs {
		c.checkStatements(c.routineScope(pd.Name.Value), pd.Body)
	}
	for _, fd := range prog.Funcs {
		sc := c.routineScope(fd.Name.Value)
		c.checkStatements(sc, fd.Body)
		if t := c.checkExpr(sc, fd.Return); t != "" && t != symbols.TypeNumber {
			c.errorAt(fd.Return.GetToken(), diag.TypeMismatchError,
				"function '%s' must return a number", fd.Name.Value)
		}
	}
	c.checkStatements(table.Main, prog.Main.Body)

	return c.diags
}

// routineScope falls back to the global scope when the builder could not
// register the routine (duplicate name); checking continues either way.
func (c *checker) routineScope(name string) *scope.Scope {
	if sc, ok := c.table.Routines[name]; ok {
		return sc
	}
	return c.table.Global
}

func (c *checker) errorAt(tok token.Token, kind diag.Kind, format string, args ...any) {
	c.diags.Addf(kind, tok.Line, tok.Column, format, args...)
}

func (c *checker) checkStatements(sc *scope.Scope, stmts []ast.Statement) {
	for _, stmt := range stmts {
		c.checkStatement(sc, stmt)
	}
}

func (c *checker) checkStatement(sc *scope.Scope, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.HaltStatement:
		// nothing to check

	case *ast.PrintStatement:
		// print accepts a number or a string literal
		c.checkExpr(sc, s.Value)

	case *ast.Assignment:
		valueType := c.checkExpr(sc, s.Value)
		if c.resolveVariable(sc, s.Target) && valueType != "" && valueType != symbols.TypeNumber {
			c.errorAt(s.Token, diag.TypeMismatchError,
				"cannot assign %s to '%s' (variables hold numbers)", valueType, s.Target.Value)
		}

	case *ast.CallStatement:
		c.checkCall(sc, s.Call, symbols.KindProcedure)

	case *ast.Conditional:
		c.checkCondition(sc, s.Cond, "if")
		c.checkStatements(sc, s.Then)
		c.checkStatements(sc, s.Else)

	case *ast.Loop:
		keyword := "while"
		if s.Until {
			keyword = "until"
		}
		c.checkCondition(sc, s.Cond, keyword)
		c.checkStatements(sc, s.Body)
	}
}

func (c *checker) checkCondition(sc *scope.Scope, cond ast.Expression, keyword string) {
	if t := c.checkExpr(sc, cond); t != "" && t != symbols.TypeNumber {
		c.errorAt(cond.GetToken(), diag.TypeMismatchError, "%s condition must be a number", keyword)
	}
}

// checkExpr infers the expression's type bottom-up, recording diagnostics
// for unresolved names and operand mismatches. It returns "" when the type
// could not be established (the fault is already reported).
func (c *checker) checkExpr(sc *scope.Scope, expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return symbols.TypeNumber

	case *ast.StringLiteral:
		return symbols.TypeText

	case *ast.Identifier:
		if !c.resolveVariable(sc, e) {
			return ""
		}
		return e.Symbol.Type

	case *ast.BinaryExpr:
		leftType := c.checkExpr(sc, e.Left)
		rightType := c.checkExpr(sc, e.Right)
		if leftType != "" && leftType != symbols.TypeNumber {
			c.errorAt(e.Token, diag.TypeMismatchError,
				"operator '%s' requires number operands", e.Operator)
		} else if rightType != "" && rightType != symbols.TypeNumber {
			c.errorAt(e.Token, diag.TypeMismatchError,
				"operator '%s' requires number operands", e.Operator)
		}
		return symbols.TypeNumber

	case *ast.CallExpr:
		c.checkCall(sc, e, symbols.KindFunction)
		return symbols.TypeNumber
	}
	return ""
}

// resolveVariable binds an identifier use to its symbol. Every use must
// resolve to a declared variable; routines cannot appear where a value is
// expected.
func (c *checker) resolveVariable(sc *scope.Scope, ident *ast.Identifier) bool {
	info, ok := sc.Lookup(ident.Value)
	if !ok {
		c.errorAt(ident.Token, diag.UndeclaredIdentifierError, "undeclared variable '%s'", ident.Value)
		return false
	}
	if info.Kind != symbols.KindVariable {
		c.errorAt(ident.Token, diag.TypeMismatchError,
			"'%s' is a %s, not a variable", ident.Value, info.Kind)
		return false
	}
	ident.Symbol = info
	return true
}

// checkCall binds a call site to its routine and validates kind, arity and
// argument types.
func (c *checker) checkCall(sc *scope.Scope, call *ast.CallExpr, want symbols.Kind) {
	for _, arg := range call.Args {
		if t := c.checkExpr(sc, arg); t != "" && t != symbols.TypeNumber {
			c.errorAt(arg.GetToken(), diag.TypeMismatchError, "call arguments must be numbers")
		}
	}

	info, ok := sc.Lookup(call.Name.Value)
	if !ok {
		c.errorAt(call.Token, diag.UndeclaredIdentifierError,
			"undeclared %s '%s'", want, call.Name.Value)
		return
	}
	if info.Kind != want {
		c.errorAt(call.Token, diag.TypeMismatchError,
			"'%s' is a %s, not a %s", call.Name.Value, info.Kind, want)
		return
	}
	if len(call.Args) != len(info.ParamNames) {
		c.errorAt(call.Token, diag.TypeMismatchError,
			"'%s' takes %d argument(s), got %d", call.Name.Value, len(info.ParamNames), len(call.Args))
		return
	}
	call.Symbol = info
}
