// Package symtab builds the nested scopes of declared names from a parsed
// program. Declarations only: uses of identifiers and call sites are
// resolved later by the checker, since routines may be declared after the
// code that calls them.
package symtab

import (
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/ast"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/diag"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/scope"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/symbols"
)

// Table holds the program's scopes: the global scope, one child scope per
// routine keyed by routine name, and main's scope.
type Table struct {
	Global   *scope.Scope
	Main     *scope.Scope
	Routines map[string]*scope.Scope
}

type builder struct {
	ordinal int
	diags   diag.List
}

// Build walks the program once and returns its scopes. Duplicate
// declarations are collected, not fail-fast, so one run reports every
// duplicate in the program.
func Build(prog *ast.Program) (*Table, diag.List) {
	b := &builder{}
	table := &Table{
		Global:   scope.NewScope(nil, "global"),
		Routines: make(map[string]*scope.Scope),
	}

	for _, name := range prog.Globals.Names {
		b.defineVar(table.Global, name)
	}

	for _, pd := range prog.Procs {
		b.defineRoutine(table.Global, pd.Name, symbols.KindProcedure, pd.Params)
		table.Routines[pd.Name.Value] = b.buildRoutineScope(table.Global, pd.Name.Value, pd.Params, pd.Locals)
	}
	for _, fd := range prog.Funcs {
		b.defineRoutine(table.Global, fd.Name, symbols.KindFunction, fd.Params)
		table.Routines[fd.Name.Value] = b.buildRoutineScope(table.Global, fd.Name.Value, fd.Params, fd.Locals)
	}

	table.Main = scope.NewScope(table.Global, "main")
	for _, name := range prog.Main.Vars.Names {
		b.defineVar(table.Main, name)
	}

	return table, b.diags
}

// buildRoutineScope seeds a routine's scope with its parameters, then its
// locals.
func (b *builder) buildRoutineScope(global *scope.Scope, name string, params []*ast.Identifier, locals *ast.VarDecl) *scope.Scope {
	sc := scope.NewScope(global, name)
	for _, param := range params {
		b.defineVar(sc, param)
	}
	for _, local := range locals.Names {
		b.defineVar(sc, local)
	}
	return sc
}

func (b *builder) defineVar(sc *scope.Scope, ident *ast.Identifier) {
	info := &symbols.Info{
		Kind:    symbols.KindVariable,
		Type:    symbols.TypeNumber,
		Ordinal: b.nextOrdinal(),
	}
	if err := sc.Define(ident.Value, info); err != nil {
		b.diags.Addf(diag.DuplicateDeclarationError, ident.Token.Line, ident.Token.Column, "%s", err)
	}
}

func (b *builder) defineRoutine(global *scope.Scope, name *ast.Identifier, kind symbols.Kind, params []*ast.Identifier) {
	paramNames := make([]string, len(params))
	for i, param := range params {
		paramNames[i] = param.Value
	}
	info := &symbols.Info{
		Kind:       kind,
		Ordinal:    b.nextOrdinal(),
		ParamNames: paramNames,
	}
	if err := global.Define(name.Value, info); err != nil {
		b.diags.Addf(diag.DuplicateDeclarationError, name.Token.Line, name.Token.Column, "%s", err)
	}
}

func (b *builder) nextOrdinal() int {
	b.ordinal++
	return b.ordinal
}
