package basic

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/EthanVletter/Compiler-Crew/internal/compiler/ir"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/symbols"
)

func sym(name string) ir.SymRef {
	return ir.SymRef{Sym: &symbols.Info{
		Name:  name,
		Kind:  symbols.KindVariable,
		Type:  symbols.TypeNumber,
		Scope: "main",
	}}
}

func TestDefaultNumbering(t *testing.T) {
	code := []ir.Instruction{
		{Op: ir.OpAssign, Target: sym("x"), Left: ir.Number{Value: 42}},
		{Op: ir.OpPrint, Left: sym("x")},
	}
	got := Converter{}.Convert(code)
	be.Equal(t, got, "10 x = 42\n20 PRINT x\n30 STOP\n")
}

func TestCustomNumbering(t *testing.T) {
	code := []ir.Instruction{
		{Op: ir.OpAssign, Target: sym("x"), Left: ir.Number{Value: 1}},
		{Op: ir.OpPrint, Left: sym("x")},
	}
	got := Converter{Start: 100, Step: 5}.Convert(code)
	be.Equal(t, got, "100 x = 1\n105 PRINT x\n110 STOP\n")
}

func TestEmptyProgramIsJustStop(t *testing.T) {
	got := Converter{}.Convert(nil)
	be.Equal(t, got, "10 STOP\n")
}

func TestLabelBindsToNextLine(t *testing.T) {
	// The label renders no line of its own; the jump resolves to the line
	// of the instruction after it.
	start := ir.Label{ID: 1}
	code := []ir.Instruction{
		{Op: ir.OpLabel, Target: start},
		{Op: ir.OpPrint, Left: sym("x")},
		{Op: ir.OpJump, Target: start},
	}
	got := Converter{}.Convert(code)
	be.Equal(t, got, "10 PRINT x\n20 GOTO 10\n30 STOP\n")
}

func TestTrailingLabelResolvesToStop(t *testing.T) {
	end := ir.Label{ID: 1}
	code := []ir.Instruction{
		{Op: ir.OpJumpIfFalse, Left: ir.Temp{N: 1}, Target: end},
		{Op: ir.OpPrint, Left: sym("x")},
		{Op: ir.OpLabel, Target: end},
	}
	got := Converter{}.Convert(code)
	be.Equal(t, got, "10 IF t1 = 0 THEN 30\n20 PRINT x\n30 STOP\n")
}

func TestAdjacentLabelsShareALine(t *testing.T) {
	// Two labels in a row both resolve to the next rendered line.
	a, b := ir.Label{ID: 1}, ir.Label{ID: 2}
	code := []ir.Instruction{
		{Op: ir.OpJump, Target: a},
		{Op: ir.OpJump, Target: b},
		{Op: ir.OpLabel, Target: a},
		{Op: ir.OpLabel, Target: b},
		{Op: ir.OpPrint, Left: sym("x")},
	}
	got := Converter{}.Convert(code)
	be.Equal(t, got, "10 GOTO 30\n20 GOTO 30\n30 PRINT x\n40 STOP\n")
}

func TestCallAndReturnRendering(t *testing.T) {
	entry := ir.Label{ID: 1}
	code := []ir.Instruction{
		{Op: ir.OpJump, Target: ir.Label{ID: 2}},
		{Op: ir.OpLabel, Target: entry},
		{Op: ir.OpReturn},
		{Op: ir.OpLabel, Target: ir.Label{ID: 2}},
		{Op: ir.OpCall, Target: entry},
	}
	got := Converter{}.Convert(code)
	be.Equal(t, got, "10 GOTO 30\n20 RETURN\n30 GOSUB 20\n40 STOP\n")
}

func TestStringRendering(t *testing.T) {
	code := []ir.Instruction{
		{Op: ir.OpPrintString, Left: ir.Text{Value: "The answer is: "}},
	}
	got := Converter{}.Convert(code)
	be.Equal(t, got, "10 PRINT \"The answer is: \"\n20 STOP\n")
}

func TestEveryLineNumbered(t *testing.T) {
	code := []ir.Instruction{
		{Op: ir.OpAssign, Target: sym("a"), Left: ir.Number{Value: 1}},
		{Op: ir.OpBinop, Target: ir.Temp{N: 1}, Operator: "+", Left: sym("a"), Right: ir.Number{Value: 2}},
		{Op: ir.OpAssign, Target: sym("b"), Left: ir.Temp{N: 1}},
		{Op: ir.OpStop},
	}
	got := Converter{}.Convert(code)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	be.Equal(t, len(lines), 5)
	for i, line := range lines {
		be.True(t, strings.HasPrefix(line, []string{"10 ", "20 ", "30 ", "40 ", "50 "}[i]))
	}
}
