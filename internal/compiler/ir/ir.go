// Package ir is the three-address intermediate form: a flat, ordered
// instruction sequence with control flow already linearized into labels
// and jumps. Each instruction has at most one operator and explicit
// operand/result names.
package ir

import (
	"fmt"
	"strconv"

	"github.com/EthanVletter/Compiler-Crew/internal/compiler/symbols"
)

type Opcode string

const (
	OpAssign      Opcode = "ASSIGN"
	OpBinop       Opcode = "BINOP"
	OpPrint       Opcode = "PRINT"
	OpPrintString Opcode = "PRINT_STRING"
	OpLabel       Opcode = "LABEL"
	OpJump        Opcode = "JUMP"
	OpJumpIfFalse Opcode = "JUMP_IF_FALSE"
	OpCall        Opcode = "CALL"
	OpReturn      Opcode = "RETURN"
	OpStop        Opcode = "STOP"
)

// Operand is a symbol reference, a compiler temporary, a literal, or a
// label.
type Operand interface {
	operand()
	String() string
}

// SymRef names a declared variable.
type SymRef struct {
	Sym *symbols.Info
}

func (s SymRef) operand()       {}
func (s SymRef) String() string { return s.Sym.TargetName() }

// Temp is a compiler-generated single-assignment name (t1, t2, ...).
type Temp struct {
	N int
}

func (t Temp) operand()       {}
func (t Temp) String() string { return "t" + strconv.Itoa(t.N) }

// Number is a numeric literal operand.
type Number struct {
	Value int
}

func (n Number) operand()       {}
func (n Number) String() string { return strconv.Itoa(n.Value) }

// Text is a string literal operand; only PRINT_STRING carries one.
type Text struct {
	Value string
}

func (t Text) operand()       {}
func (t Text) String() string { return fmt.Sprintf("%q", t.Value) }

// Label is a jump anchor (L1, L2, ...). It renders as no output line of
// its own; the converter resolves it to the line number of the next
// rendered instruction.
type Label struct {
	ID int
}

func (l Label) operand()       {}
func (l Label) String() string { return "L" + strconv.Itoa(l.ID) }

// Instruction is one three-address instruction. Field use per opcode:
//
//	ASSIGN         Target = destination, Left = source
//	BINOP          Target = temporary, Operator, Left, Right
//	PRINT          Left = value
//	PRINT_STRING   Left = Text
//	LABEL          Target = Label
//	JUMP           Target = Label
//	JUMP_IF_FALSE  Left = condition, Target = Label
//	CALL           Target = callee entry Label
//	RETURN, STOP   no operands
type Instruction struct {
	Op       Opcode
	Target   Operand
	Operator string // BINOP source operator: + - * / == < >
	Left     Operand
	Right    Operand
	Pos      int // sequence position, 0-based
}

// basicOperator maps a source operator to its BASIC spelling.
func basicOperator(op string) string {
	if op == "==" {
		return "="
	}
	return op
}

// Format renders the instruction as target statement text, resolving label
// operands through the given function. The converter passes resolved line
// numbers; String passes the label's own name.
func (in Instruction) Format(label func(Label) string) string {
	switch in.Op {
	case OpAssign:
		return fmt.Sprintf("%s = %s", in.Target, in.Left)
	case OpBinop:
		return fmt.Sprintf("%s = %s %s %s", in.Target, in.Left, basicOperator(in.Operator), in.Right)
	case OpPrint, OpPrintString:
		return fmt.Sprintf("PRINT %s", in.Left)
	case OpLabel:
		return fmt.Sprintf("LABEL %s", label(in.Target.(Label)))
	case OpJump:
		return fmt.Sprintf("GOTO %s", label(in.Target.(Label)))
	case OpJumpIfFalse:
		return fmt.Sprintf("IF %s = 0 THEN %s", in.Left, label(in.Target.(Label)))
	case OpCall:
		return fmt.Sprintf("GOSUB %s", label(in.Target.(Label)))
	case OpReturn:
		return "RETURN"
	case OpStop:
		return "STOP"
	}
	return fmt.Sprintf("<unknown opcode %s>", in.Op)
}

func (in Instruction) String() string {
	return in.Format(func(l Label) string { return l.String() })
}
