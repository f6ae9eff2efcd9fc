// Package codegen lowers a checked program into the flat three-address
// instruction sequence. One AST node yields one instruction: an assignment
// always emits ASSIGN even when its source is a freshly produced
// temporary. That costs a copy but keeps every output line traceable to
// its source node; there is no copy-elimination pass.
package codegen

import (
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/ast"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/ir"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/symbols"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/symtab"
)

// Generator owns its temporary and label counters, so independent
// compilations never share state and repeated runs are reproducible.
type Generator struct {
	table   *symtab.Table
	temps   int
	labels  int
	code    []ir.Instruction
	entries map[string]ir.Label      // routine name -> entry label
	retSyms map[string]*symbols.Info // function name -> return slot
}

func NewGenerator(table *symtab.Table) *Generator {
	return &Generator{
		table:   table,
		entries: make(map[string]ir.Label),
		retSyms: make(map[string]*symbols.Info),
	}
}

// Generate walks globals, procedures, functions and main in declaration
// order. Globals carry no initializers, so they emit nothing. Routine
// bodies precede main; when any exist, a leading jump keeps execution
// starting in main. The final STOP is appended by the converter.
func (g *Generator) Generate(prog *ast.Program) []ir.Instruction {
	hasRoutines := len(prog.Procs)+len(prog.Funcs) > 0

	var mainEntry ir.Label
	if hasRoutines {
		mainEntry = g.newLabel()
		for _, pd := range prog.Procs {
			g.entries[pd.Name.Value] = g.newLabel()
		}
		for _, fd := range prog.Funcs {
			g.entries[fd.Name.Value] = g.newLabel()
		}
		g.emit(ir.Instruction{Op: ir.OpJump, Target: mainEntry})
	}

	for _, pd := range prog.Procs {
		g.emit(ir.Instruction{Op: ir.OpLabel, Target: g.entries[pd.Name.Value]})
		g.lowerStatements(pd.Body)
		g.emit(ir.Instruction{Op: ir.OpReturn})
	}
	for _, fd := range prog.Funcs {
		g.emit(ir.Instruction{Op: ir.OpLabel, Target: g.entries[fd.Name.Value]})
		g.lowerStatements(fd.Body)
		result := g.lowerExpr(fd.Return)
		g.emit(ir.Instruction{Op: ir.OpAssign, Target: g.returnSlot(fd.Name.Value), Left: result})
		g.emit(ir.Instruction{Op: ir.OpReturn})
	}

	if hasRoutines {
		g.emit(ir.Instruction{Op: ir.OpLabel, Target: mainEntry})
	}
	g.lowerStatements(prog.Main.Body)

	return g.code
}

func (g *Generator) emit(in ir.Instruction) {
	in.Pos = len(g.code)
	g.code = append(g.code, in)
}

func (g *Generator) newTemp() ir.Temp {
	g.temps++
	return ir.Temp{N: g.temps}
}

func (g *Generator) newLabel() ir.Label {
	g.labels++
	return ir.Label{ID: g.labels}
}

// returnSlot is the variable a function leaves its result in, read by the
// caller right after the GOSUB. Source names cannot contain '_', so the
// slot cannot collide with a declared variable.
func (g *Generator) returnSlot(fn string) ir.SymRef {
	info, ok := g.retSyms[fn]
	if !ok {
		info = &symbols.Info{
			Name:  "ret",
			Kind:  symbols.KindVariable,
			Type:  symbols.TypeNumber,
			Scope: fn,
		}
		g.retSyms[fn] = info
	}
	return ir.SymRef{Sym: info}
}

func (g *Generator) lowerStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		g.lowerStatement(stmt)
	}
}

func (g *Generator) lowerStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.HaltStatement:
		g.emit(ir.Instruction{Op: ir.OpStop})

	case *ast.PrintStatement:
		if lit, ok := s.Value.(*ast.StringLiteral); ok {
			g.emit(ir.Instruction{Op: ir.OpPrintString, Left: ir.Text{Value: lit.Value}})
			return
		}
		g.emit(ir.Instruction{Op: ir.OpPrint, Left: g.lowerExpr(s.Value)})

	case *ast.Assignment:
		value := g.lowerExpr(s.Value)
		g.emit(ir.Instruction{Op: ir.OpAssign, Target: ir.SymRef{Sym: s.Target.Symbol}, Left: value})

	case *ast.CallStatement:
		g.lowerCall(s.Call, false)

	case *ast.Conditional:
		g.lowerConditional(s)

	case *ast.Loop:
		g.lowerLoop(s)
	}
}

// lowerConditional linearizes if/else:
//
//	<cond>                     <cond>
//	JUMP_IF_FALSE c, Lend      JUMP_IF_FALSE c, Lelse
//	<then>                     <then>
//	LABEL Lend                 JUMP Lend
//	                           LABEL Lelse
//	                           <else>
//	                           LABEL Lend
func (g *Generator) lowerConditional(s *ast.Conditional) {
	cond := g.lowerExpr(s.Cond)

	if s.Else == nil {
		end := g.newLabel()
		g.emit(ir.Instruction{Op: ir.OpJumpIfFalse, Left: cond, Target: end})
		g.lowerStatements(s.Then)
		g.emit(ir.Instruction{Op: ir.OpLabel, Target: end})
		return
	}

	elseLabel := g.newLabel()
	end := g.newLabel()
	g.emit(ir.Instruction{Op: ir.OpJumpIfFalse, Left: cond, Target: elseLabel})
	g.lowerStatements(s.Then)
	g.emit(ir.Instruction{Op: ir.OpJump, Target: end})
	g.emit(ir.Instruction{Op: ir.OpLabel, Target: elseLabel})
	g.lowerStatements(s.Else)
	g.emit(ir.Instruction{Op: ir.OpLabel, Target: end})
}

// lowerLoop linearizes while (test first) and do-until (test last):
//
//	LABEL Lstart               LABEL Lstart
//	<cond>                     <body>
//	JUMP_IF_FALSE c, Lend      <cond>
//	<body>                     JUMP_IF_FALSE c, Lstart
//	JUMP Lstart
//	LABEL Lend
func (g *Generator) lowerLoop(s *ast.Loop) {
	start := g.newLabel()

	if s.Until {
		g.emit(ir.Instruction{Op: ir.OpLabel, Target: start})
		g.lowerStatements(s.Body)
		cond := g.lowerExpr(s.Cond)
		g.emit(ir.Instruction{Op: ir.OpJumpIfFalse, Left: cond, Target: start})
		return
	}

	end := g.newLabel()
	g.emit(ir.Instruction{Op: ir.OpLabel, Target: start})
	cond := g.lowerExpr(s.Cond)
	g.emit(ir.Instruction{Op: ir.OpJumpIfFalse, Left: cond, Target: end})
	g.lowerStatements(s.Body)
	g.emit(ir.Instruction{Op: ir.OpJump, Target: start})
	g.emit(ir.Instruction{Op: ir.OpLabel, Target: end})
}

// lowerExpr flattens an expression to a single operand. Literals and
// identifiers need no instruction; a binary expression lowers both sides
// and claims one fresh temporary. Temporary numbering is monotonic across
// the whole run so output stays traceable to source.
func (g *Generator) lowerExpr(expr ast.Expression) ir.Operand {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return ir.Number{Value: e.Value}

	case *ast.StringLiteral:
		// only reachable under print; handled there
		return ir.Text{Value: e.Value}

	case *ast.Identifier:
		return ir.SymRef{Sym: e.Symbol}

	case *ast.BinaryExpr:
		left := g.lowerExpr(e.Left)
		right := g.lowerExpr(e.Right)
		temp := g.newTemp()
		g.emit(ir.Instruction{Op: ir.OpBinop, Target: temp, Operator: e.Operator, Left: left, Right: right})
		return temp

	case *ast.CallExpr:
		return g.lowerCall(e, true)
	}
	return nil
}

// lowerCall hands each argument to its parameter slot, jumps to the
// routine, and for function calls copies the return slot into a fresh
// temporary.
func (g *Generator) lowerCall(call *ast.CallExpr, wantResult bool) ir.Operand {
	name := call.Symbol.Name
	routineScope := g.table.Routines[name]

	for i, arg := range call.Args {
		value := g.lowerExpr(arg)
		param, _ := routineScope.LookupCurrentScope(call.Symbol.ParamNames[i])
		g.emit(ir.Instruction{Op: ir.OpAssign, Target: ir.SymRef{Sym: param}, Left: value})
	}

	g.emit(ir.Instruction{Op: ir.OpCall, Target: g.entries[name]})

	if !wantResult {
		return nil
	}
	temp := g.newTemp()
	g.emit(ir.Instruction{Op: ir.OpAssign, Target: temp, Left: g.returnSlot(name)})
	return temp
}
