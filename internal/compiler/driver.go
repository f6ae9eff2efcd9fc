// Package compiler wires the stages into the full pipeline: lex, parse,
// build scopes, check, lower to three-address code, render BASIC.
// Compilation is synchronous and all state lives in the per-run values,
// so independent runs in one process never interfere.
package compiler

import (
	"os"

	"github.com/EthanVletter/Compiler-Crew/internal/compiler/ast"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/basic"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/check"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/codegen"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/ir"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/lexer"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/parser"
	"github.com/EthanVletter/Compiler-Crew/internal/compiler/symtab"
)

// Config holds the output line numbering. The zero value means the 10/10
// default.
type Config struct {
	LineStart int
	LineStep  int
}

// Compile translates SPL source text to BASIC text with default numbering.
func Compile(src string) (string, error) {
	return Config{}.Compile(src)
}

// Compile translates SPL source text to BASIC text. On failure it returns
// either a single fatal diagnostic (lexical or syntax) or the batch of
// declaration and type diagnostics as a diag.List.
func (c Config) Compile(src string) (string, error) {
	code, err := c.instructions(src)
	if err != nil {
		return "", err
	}
	conv := basic.Converter{Start: c.LineStart, Step: c.LineStep}
	return conv.Convert(code), nil
}

// Check runs the front end only: lexing, parsing, scope building and type
// checking. It returns nil when the program is valid.
func Check(src string) error {
	_, _, err := analyze(src)
	return err
}

// Instructions exposes the intermediate sequence, for inspection tools and
// tests.
func Instructions(src string) ([]ir.Instruction, error) {
	return Config{}.instructions(src)
}

func (c Config) instructions(src string) ([]ir.Instruction, error) {
	prog, table, err := analyze(src)
	if err != nil {
		return nil, err
	}
	gen := codegen.NewGenerator(table)
	return gen.Generate(prog), nil
}

// analyze runs lexing through type checking. Lexical and syntax errors
// abort immediately; declaration and type diagnostics are batched.
func analyze(src string) (*ast.Program, *symtab.Table, error) {
	p := parser.NewParser(lexer.NewLexer(src))
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, nil, err
	}

	table, diags := symtab.Build(prog)
	diags = append(diags, check.Check(prog, table)...)
	if err := diags.Err(); err != nil {
		return nil, nil, err
	}
	return prog, table, nil
}

// CompileAndWrite compiles srcPath into outPath. The output file is
// written only after the whole pipeline has succeeded; a failing run
// leaves no partial output behind.
func CompileAndWrite(srcPath, outPath string, cfg Config) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	out, err := cfg.Compile(string(content))
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, []byte(out), 0o644)
}
