// Package casebook reads golden test cases from Markdown.
//
// A case starts at a heading "Case: name" and owns the fenced code blocks
// that follow it up to the next case heading:
//
//	## Case: sum
//	```src
//	x = 1 + 2
//	```
//	```tac
//	t0 := 1 ADD 2
//	x := t0
//	```
//
// Every case needs one src fence and at least one expectation fence.
// Untagged fences are free-form prose and are ignored.
package casebook

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FenceType is the info string of a fenced code block.
type FenceType string

const (
	FenceSource  FenceType = "src"
	FenceAST     FenceType = "ast"
	FenceTAC     FenceType = "tac"
	FenceSymbols FenceType = "symbols"
	FenceError   FenceType = "error"

	// FenceDiagnostics lists the non-fatal diagnostics of a case that
	// compiles, one per line.
	FenceDiagnostics FenceType = "diagnostics"
)

func (f FenceType) known() bool {
	switch f {
	case FenceSource, FenceAST, FenceTAC, FenceSymbols, FenceError, FenceDiagnostics:
		return true
	}
	return false
}

// Expectation is one expectation fence. Content has trailing newlines
// trimmed.
type Expectation struct {
	Type    FenceType
	Content string
	Line    int
}

// Case is one golden test case.
type Case struct {
	Name         string
	Line         int
	Source       string
	Expectations []Expectation
}

// Expect returns the content of the fence of type typ, if present.
func (c *Case) Expect(typ FenceType) (string, bool) {
	for _, e := range c.Expectations {
		if e.Type == typ {
			return e.Content, true
		}
	}
	return "", false
}

const casePrefix = "Case: "

// Extract parses markdown and returns its cases in document order.
func Extract(markdown string) ([]Case, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []Case
	var cur *Case
	hasSource := false

	finish := func() error {
		if cur == nil {
			return nil
		}
		if !hasSource {
			return fmt.Errorf("line %d: case %q has no src fence", cur.Line, cur.Name)
		}
		if len(cur.Expectations) == 0 {
			return fmt.Errorf("line %d: case %q has no expectation fences", cur.Line, cur.Name)
		}
		cases = append(cases, *cur)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			title := nodeText(n, source)
			if !strings.HasPrefix(title, casePrefix) {
				return ast.WalkSkipChildren, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			cur = &Case{
				Name: strings.TrimSpace(strings.TrimPrefix(title, casePrefix)),
				Line: lineOf(n, source),
			}
			hasSource = false
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			lang := FenceType(n.Language(source))
			line := lineOf(n, source)
			if lang == "" {
				return ast.WalkContinue, nil
			}
			if !lang.known() {
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence %q", line, lang)
			}
			if cur == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a case", line, lang)
			}
			content := strings.TrimRight(fenceContent(n, source), "\n")

			if lang == FenceSource {
				if hasSource {
					return ast.WalkStop, fmt.Errorf("line %d: case %q has more than one src fence", line, cur.Name)
				}
				cur.Source = content
				hasSource = true
				return ast.WalkContinue, nil
			}
			if _, dup := cur.Expect(lang); dup {
				return ast.WalkStop, fmt.Errorf("line %d: case %q has more than one %s fence", line, cur.Name, lang)
			}
			cur.Expectations = append(cur.Expectations, Expectation{Type: lang, Content: content, Line: line})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based line of the node's first content line. For a
// fence that is the line after the opening backticks.
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte("\n")) + 1
}
