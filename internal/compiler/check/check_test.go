package check

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/EthanVletter/Compiler-Crew/internal/compiler/ast"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/diag"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/lexer"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/parser"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/symtab"
)

// checkSource runs parsing, scope building and checking, returning the
// program and the combined diagnostics.
func checkSource(t *testing.T, src string) (*ast.Program, diag.List) {
	t.Helper()
	p := parser.NewParser(lexer.NewLexer(src))
	prog, err := p.ParseProgram()
	be.Err(t, err, nil)
	table, diags := symtab.Build(prog)
	diags = append(diags, Check(prog, table)...)
	return prog, diags
}

func wrapMain(vars, body string) string {
	return "glob { } proc { } func { } main { var { " + vars + " } " + body + " }"
}

func TestValidProgram(t *testing.T) {
	_, diags := checkSource(t, `
		glob { total }
		proc {
			bump(n) {
				local { }
				total = total + n
			}
		}
		func {
			twice(n) {
				local { }
				n = n + n;
				return n
			}
		}
		main {
			var { x }
			x = twice(3);
			bump(x);
			if x > 5 { print x } else { print "small" };
			while x > 0 { x = x - 1 };
			do { x = x + 1 } until x == 3;
			print "done";
			halt
		}`)
	be.Equal(t, len(diags), 0)
}

func TestIdentifiersAnnotated(t *testing.T) {
	prog, diags := checkSource(t, wrapMain("x", "x = 1; print x"))
	be.Equal(t, len(diags), 0)

	assign := prog.Main.Body[0].(*ast.Assignment)
	be.True(t, assign.Target.Symbol != nil)
	be.Equal(t, assign.Target.Symbol.TargetName(), "x")

	pr := prog.Main.Body[1].(*ast.PrintStatement)
	ident := pr.Value.(*ast.Identifier)
	be.Equal(t, ident.Symbol, assign.Target.Symbol)
}

func TestUndeclaredVariable(t *testing.T) {
	_, diags := checkSource(t, wrapMain("", "print z"))
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Kind, diag.UndeclaredIdentifierError)
	be.Equal(t, diags[0].Message, "undeclared variable 'z'")
}

func TestAssignTextToVariable(t *testing.T) {
	_, diags := checkSource(t, wrapMain("x", `x = "oops"`))
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Kind, diag.TypeMismatchError)
	be.Equal(t, diags[0].Message, "cannot assign text to 'x' (variables hold numbers)")
}

func TestTextInArithmetic(t *testing.T) {
	_, diags := checkSource(t, wrapMain("x", `x = "hi" + 1`))
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Kind, diag.TypeMismatchError)
	be.Equal(t, diags[0].Message, "operator '+' requires number operands")
}

func TestTextCondition(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`if "a" { halt }`, "if condition must be a number"},
		{`while "a" { halt }`, "while condition must be a number"},
		{`do { halt } until "a"`, "until condition must be a number"},
	}
	for _, tt := range tests {
		_, diags := checkSource(t, wrapMain("", tt.body))
		be.Equal(t, len(diags), 1)
		be.Equal(t, diags[0].Message, tt.want)
	}
}

func TestRoutineUsedAsValue(t *testing.T) {
	_, diags := checkSource(t, `
		glob { }
		proc { p() { local { } halt } }
		func { }
		main { var { x } x = p + 1 }`)
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Kind, diag.TypeMismatchError)
	be.Equal(t, diags[0].Message, "'p' is a procedure, not a variable")
}

func TestCallKindMismatch(t *testing.T) {
	// A function cannot be called as a statement, a procedure cannot be
	// called in an expression, and a variable is neither.
	src := `
		glob { }
		proc { p() { local { } halt } }
		func {
			f(n) {
				local { }
				n = n;
				return n
			}
		}
		main { var { x } %s }`

	_, diags := checkSource(t, strings.Replace(src, "%s", "f(1)", 1))
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Message, "'f' is a function, not a procedure")

	_, diags = checkSource(t, strings.Replace(src, "%s", "x = p()", 1))
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Message, "'p' is a procedure, not a function")

	_, diags = checkSource(t, strings.Replace(src, "%s", "x()", 1))
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Message, "'x' is a variable, not a procedure")
}

func TestUndeclaredRoutine(t *testing.T) {
	_, diags := checkSource(t, wrapMain("", "missing()"))
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Kind, diag.UndeclaredIdentifierError)
	be.Equal(t, diags[0].Message, "undeclared procedure 'missing'")

	_, diags = checkSource(t, wrapMain("x", "x = missing()"))
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Message, "undeclared function 'missing'")
}

func TestArityMismatch(t *testing.T) {
	_, diags := checkSource(t, `
		glob { }
		proc { p(a, b) { local { } halt } }
		func { }
		main { var { } p(1) }`)
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Kind, diag.TypeMismatchError)
	be.Equal(t, diags[0].Message, "'p' takes 2 argument(s), got 1")
}

func TestTextArgument(t *testing.T) {
	_, diags := checkSource(t, `
		glob { }
		proc { p(a) { local { } halt } }
		func { }
		main { var { } p("no") }`)
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Message, "call arguments must be numbers")
}

func TestFunctionMustReturnNumber(t *testing.T) {
	_, diags := checkSource(t, `
		glob { }
		proc { }
		func {
			f() {
				local { }
				halt;
				return "text"
			}
		}
		main { var { } halt }`)
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Message, "function 'f' must return a number")
}

func TestDiagnosticsAreBatched(t *testing.T) {
	// One run reports every fault in the program.
	_, diags := checkSource(t, wrapMain("x", `x = "oops"; print z; x = y + 1`))
	be.Equal(t, len(diags), 3)
	be.Equal(t, diags[0].Kind, diag.TypeMismatchError)
	be.Equal(t, diags[1].Kind, diag.UndeclaredIdentifierError)
	be.Equal(t, diags[2].Kind, diag.UndeclaredIdentifierError)
}

func TestPrintAcceptsNumberAndText(t *testing.T) {
	_, diags := checkSource(t, wrapMain("x", `x = 1; print x; print "ok"; print x + 1`))
	be.Equal(t, len(diags), 0)
}
