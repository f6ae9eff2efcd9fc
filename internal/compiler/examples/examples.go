// Package examples extracts documented SPL programs and their expected
// results from markdown. Each example is a heading "Example: <name>"
// followed by an `spl` fenced block and either a `basic` block (expected
// output) or an `errors` block (expected diagnostics, one substring per
// line). The golden tests compile every documented example, so the
// documentation cannot drift from the compiler.
package examples

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	fenceInput  = "spl"
	fenceOutput = "basic"
	fenceErrors = "errors"
)

// Example is one documented program with its expected outcome.
type Example struct {
	Name   string
	Source string
	Want   string   // expected BASIC text; empty when Errors is set
	Errors []string // expected diagnostic substrings
}

// Extract parses the markdown document and collects all examples.
func Extract(markdownContent []byte) ([]Example, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(markdownContent))

	var examples []Example
	var current *Example

	finish := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		examples = append(examples, *current)
		current = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := headingText(n, markdownContent)
			if name, ok := strings.CutPrefix(heading, "Example: "); ok {
				if err := finish(); err != nil {
					return ast.WalkStop, err
				}
				current = &Example{Name: name}
			}

		case *ast.FencedCodeBlock:
			language := string(n.Language(markdownContent))
			content := fenceContent(n, markdownContent)
			switch language {
			case fenceInput:
				if current == nil {
					return ast.WalkStop, fmt.Errorf("spl fence outside of an example")
				}
				if current.Source != "" {
					return ast.WalkStop, fmt.Errorf("example %q has multiple spl fences", current.Name)
				}
				current.Source = content
			case fenceOutput:
				if current == nil {
					return ast.WalkStop, fmt.Errorf("basic fence outside of an example")
				}
				current.Want = content
			case fenceErrors:
				if current == nil {
					return ast.WalkStop, fmt.Errorf("errors fence outside of an example")
				}
				for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
					if line = strings.TrimSpace(line); line != "" {
						current.Errors = append(current.Errors, line)
					}
				}
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return examples, nil
}

func validate(e *Example) error {
	if e.Source == "" {
		return fmt.Errorf("example %q has no spl fence", e.Name)
	}
	if e.Want == "" && len(e.Errors) == 0 {
		return fmt.Errorf("example %q has neither a basic nor an errors fence", e.Name)
	}
	if e.Want != "" && len(e.Errors) > 0 {
		return fmt.Errorf("example %q has both a basic and an errors fence", e.Name)
	}
	return nil
}

func headingText(n *ast.Heading, source []byte) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}

func fenceContent(n *ast.FencedCodeBlock, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}
