// Package diag carries the diagnostics produced by the compiler stages.
// Lexical and syntax diagnostics abort their stage immediately; declaration
// and type diagnostics are collected across the whole program and reported
// as a batch.
package diag

import (
	"fmt"
	"strings"
)

type Kind string

const (
	LexicalError              Kind = "lexical error"
	SyntaxError               Kind = "syntax error"
	DuplicateDeclarationError Kind = "duplicate declaration"
	UndeclaredIdentifierError Kind = "undeclared identifier"
	TypeMismatchError         Kind = "type mismatch"
)

// Diagnostic is a single compiler error with its source position.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Column  int
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Kind, d.Message)
}

// New builds a diagnostic at the given position.
func New(kind Kind, line, col int, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	}
}

// List is an ordered batch of diagnostics. It implements error so a stage
// can hand its whole report back through an ordinary error return.
type List []*Diagnostic

func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, d := range l {
		msgs[i] = d.Error()
	}
	return strings.Join(msgs, "\n")
}

func (l *List) Add(d *Diagnostic) {
	*l = append(*l, d)
}

func (l *List) Addf(kind Kind, line, col int, format string, args ...any) {
	l.Add(New(kind, line, col, format, args...))
}

// Err returns the list as an error, or nil when the list is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
