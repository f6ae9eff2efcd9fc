package parser

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/EthanVletter/Compiler-Crew/internal/compiler/ast"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := NewParser(lexer.NewLexer(src))
	prog, err := p.ParseProgram()
	be.Err(t, err, nil)
	return prog
}

func parseError(t *testing.T, src string) error {
	t.Helper()
	p := NewParser(lexer.NewLexer(src))
	_, err := p.ParseProgram()
	be.True(t, err != nil)
	return err
}

// wrapMain embeds a statement list in an otherwise empty program with two
// main variables.
func wrapMain(body string) string {
	return "glob { } proc { } func { } main { var { x y } " + body + " }"
}

func TestMinimalProgram(t *testing.T) {
	prog := parse(t, `
		glob { }
		proc { }
		func { }
		main {
			var { x }
			x = 42;
			print x
		}`)

	be.Equal(t, len(prog.Globals.Names), 0)
	be.Equal(t, len(prog.Procs), 0)
	be.Equal(t, len(prog.Funcs), 0)
	be.Equal(t, len(prog.Main.Vars.Names), 1)
	be.Equal(t, prog.Main.Vars.Names[0].Value, "x")
	be.Equal(t, len(prog.Main.Body), 2)

	assign, ok := prog.Main.Body[0].(*ast.Assignment)
	be.True(t, ok)
	be.Equal(t, assign.Target.Value, "x")
	be.Equal(t, assign.String(), "x = 42")

	pr, ok := prog.Main.Body[1].(*ast.PrintStatement)
	be.True(t, ok)
	be.Equal(t, pr.String(), "print x")
}

func TestGlobalsWithAndWithoutCommas(t *testing.T) {
	// Whitespace-separated and comma-separated name lists are equivalent.
	a := parse(t, "glob { a b c } proc { } func { } main { var { } halt }")
	b := parse(t, "glob { a, b, c } proc { } func { } main { var { } halt }")
	be.Equal(t, len(a.Globals.Names), 3)
	be.Equal(t, a.Globals.String(), b.Globals.String())
}

func TestProcDef(t *testing.T) {
	prog := parse(t, `
		glob { total }
		proc {
			add(n) {
				local { t }
				t = total + n;
				total = t
			}
		}
		func { }
		main { var { } add(1) }`)

	be.Equal(t, len(prog.Procs), 1)
	pd := prog.Procs[0]
	be.Equal(t, pd.Name.Value, "add")
	be.Equal(t, len(pd.Params), 1)
	be.Equal(t, pd.Params[0].Value, "n")
	be.Equal(t, len(pd.Locals.Names), 1)
	be.Equal(t, len(pd.Body), 2)

	call, ok := prog.Main.Body[0].(*ast.CallStatement)
	be.True(t, ok)
	be.Equal(t, call.String(), "add(1)")
}

func TestFuncDefRequiresReturn(t *testing.T) {
	prog := parse(t, `
		glob { }
		proc { }
		func {
			inc(n) {
				local { }
				n = n + 1;
				return n
			}
		}
		main { var { x } x = inc(1) }`)

	be.Equal(t, len(prog.Funcs), 1)
	fd := prog.Funcs[0]
	be.Equal(t, fd.Name.Value, "inc")
	be.True(t, fd.Return != nil)
	be.Equal(t, fd.Return.String(), "n")

	err := parseError(t, `
		glob { }
		proc { }
		func {
			inc(n) {
				local { }
				n = n + 1
			}
		}
		main { var { } halt }`)
	be.True(t, strings.Contains(err.Error(), "expected 'return'"))
}

// exprString parses a single assignment and renders its right-hand side
// with full parenthesization.
func exprString(t *testing.T, expr string) string {
	t.Helper()
	prog := parse(t, wrapMain("x = "+expr))
	assign := prog.Main.Body[0].(*ast.Assignment)
	return assign.Value.String()
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 + 2 < 3 * 4", "((1 + 2) < (3 * 4))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"x < y == 1", "((x < y) == 1)"},
	}
	for _, tt := range tests {
		be.Equal(t, exprString(t, tt.input), tt.want)
	}
}

func TestLeftAssociativity(t *testing.T) {
	be.Equal(t, exprString(t, "1 - 2 - 3"), "((1 - 2) - 3)")
	be.Equal(t, exprString(t, "8 / 4 / 2"), "((8 / 4) / 2)")
	be.Equal(t, exprString(t, "1 < 2 < 3"), "((1 < 2) < 3)")
}

func TestCallExpressions(t *testing.T) {
	be.Equal(t, exprString(t, "f()"), "f()")
	be.Equal(t, exprString(t, "f(1, 2, 3)"), "f(1, 2, 3)")
	be.Equal(t, exprString(t, "f(1 2)"), "f(1, 2)") // comma optional
	be.Equal(t, exprString(t, "f(g(1), 2) + 3"), "(f(g(1), 2) + 3)")
}

func TestControlFlowStatements(t *testing.T) {
	prog := parse(t, wrapMain(`
		if x < 1 { x = 1 } else { x = 2 };
		while x > 0 { x = x - 1 };
		do { x = x + 1 } until x == 3;
		halt`))
	be.Equal(t, len(prog.Main.Body), 4)

	cond := prog.Main.Body[0].(*ast.Conditional)
	be.Equal(t, cond.String(), "if (x < 1) { x = 1 } else { x = 2 }")

	while := prog.Main.Body[1].(*ast.Loop)
	be.True(t, !while.Until)
	be.Equal(t, while.String(), "while (x > 0) { x = (x - 1) }")

	until := prog.Main.Body[2].(*ast.Loop)
	be.True(t, until.Until)
	be.Equal(t, until.String(), "do { x = (x + 1) } until (x == 3)")
}

func TestTrailingSemicolonAllowed(t *testing.T) {
	prog := parse(t, wrapMain("x = 1; print x;"))
	be.Equal(t, len(prog.Main.Body), 2)
}

func TestListLimits(t *testing.T) {
	// Parameters, locals and call arguments are capped at three.
	err := parseError(t, `
		glob { }
		proc { p(a, b, c, d) { local { } halt } }
		func { }
		main { var { } halt }`)
	be.True(t, strings.Contains(err.Error(), "at most 3 names allowed here"))

	err = parseError(t, `
		glob { }
		proc { p() { local { a, b, c, d } halt } }
		func { }
		main { var { } halt }`)
	be.True(t, strings.Contains(err.Error(), "at most 3 names allowed here"))

	err = parseError(t, wrapMain("f(1, 2, 3, 4)"))
	be.True(t, strings.Contains(err.Error(), "at most 3 arguments allowed"))
}

func TestGlobalsUnbounded(t *testing.T) {
	prog := parse(t, "glob { a b c d e f } proc { } func { } main { var { } halt }")
	be.Equal(t, len(prog.Globals.Names), 6)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"proc { } func { } main { var { } halt }", "expected 'glob'"},
		{"glob { } func { } main { var { } halt }", "expected 'proc'"},
		{"glob { } proc { } func { } main { halt }", "expected 'var'"},
		{"glob { } proc { } func { } main { var { } }", "expected statement, found '}'"},
		{wrapMain("x = "), "expected expression, found '}'"},
		{wrapMain("x"), "expected '=' or '(' after identifier"},
		{wrapMain("f(1,)"), "expected expression after ',', found ')'"},
		{wrapMain("do { x = 1 } while x"), "expected 'until'"},
		{"glob { a, } proc { } func { } main { var { } halt }", "expected identifier after ','"},
		{wrapMain("halt") + " extra", "expected end of input"},
	}
	for _, tt := range tests {
		err := parseError(t, tt.src)
		be.True(t, strings.Contains(err.Error(), tt.want))
	}
}

func TestErrorsCarryPosition(t *testing.T) {
	err := parseError(t, "nope { }")
	be.Equal(t, err.Error(), "1:1: syntax error: expected 'glob', found 'nope'")
}
