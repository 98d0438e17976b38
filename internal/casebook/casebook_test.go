package casebook

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

const fence = "```"

func book(lines ...string) string {
	return strings.ReplaceAll(strings.Join(lines, "\n"), "~~~", fence)
}

func TestExtract(t *testing.T) {
	markdown := book(
		"# Book",
		"",
		"## Case: sum",
		"~~~src",
		"x = 1 + 2",
		"~~~",
		"~~~tac",
		"t0 := 1 ADD 2",
		"x := t0",
		"~~~",
		"",
		"Some prose.",
		"",
		"~~~",
		"untagged",
		"~~~",
		"",
		"## Case: bad",
		"~~~src",
		"y = z",
		"~~~",
		"~~~error",
		"undefined symbol z",
		"~~~",
	)

	cases, err := Extract(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	sum := cases[0]
	be.Equal(t, sum.Name, "sum")
	be.Equal(t, sum.Line, 3)
	be.Equal(t, sum.Source, "x = 1 + 2")
	be.Equal(t, len(sum.Expectations), 1)
	be.Equal(t, sum.Expectations[0].Type, FenceTAC)
	be.Equal(t, sum.Expectations[0].Content, "t0 := 1 ADD 2\nx := t0")
	be.Equal(t, sum.Expectations[0].Line, 8)

	bad := cases[1]
	be.Equal(t, bad.Name, "bad")
	be.Equal(t, bad.Line, 18)
	msg, ok := bad.Expect(FenceError)
	be.True(t, ok)
	be.Equal(t, msg, "undefined symbol z")
	_, ok = bad.Expect(FenceTAC)
	be.True(t, !ok)
}

func TestExtract_MultipleExpectations(t *testing.T) {
	markdown := book(
		"### Case: all fences",
		"~~~src",
		"a = 1",
		"~~~",
		"~~~ast",
		"(program (= a 1))",
		"~~~",
		"~~~tac",
		"a := 1",
		"~~~",
		"~~~symbols",
		"global a : INTEGER size 4 offset 0 program",
		"~~~",
		"~~~diagnostics",
		"1:3: illegal character '@'",
		"~~~",
	)
	cases, err := Extract(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 1)

	c := cases[0]
	be.Equal(t, c.Name, "all fences")
	be.Equal(t, len(c.Expectations), 4)
	be.Equal(t, c.Expectations[0].Type, FenceAST)
	be.Equal(t, c.Expectations[1].Type, FenceTAC)
	be.Equal(t, c.Expectations[2].Type, FenceSymbols)
	be.Equal(t, c.Expectations[3].Type, FenceDiagnostics)
	got, _ := c.Expect(FenceSymbols)
	be.Equal(t, got, "global a : INTEGER size 4 offset 0 program")
	got, _ = c.Expect(FenceDiagnostics)
	be.Equal(t, got, "1:3: illegal character '@'")
}

func TestExtract_NoCases(t *testing.T) {
	cases, err := Extract("# Title\n\n## Notes\n\nNothing here.\n")
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 0)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "no src",
			markdown: book("## Case: a", "~~~tac", "x := 1", "~~~"),
			want:     `case "a" has no src fence`,
		},
		{
			name:     "no expectations",
			markdown: book("## Case: a", "~~~src", "x = 1", "~~~"),
			want:     `case "a" has no expectation fences`,
		},
		{
			name:     "fence outside case",
			markdown: book("# Intro", "~~~src", "x = 1", "~~~"),
			want:     "line 3: src fence outside of a case",
		},
		{
			name:     "unknown fence",
			markdown: book("## Case: a", "~~~python", "x = 1", "~~~"),
			want:     `line 3: unknown fence "python"`,
		},
		{
			name:     "duplicate src",
			markdown: book("## Case: a", "~~~src", "x = 1", "~~~", "~~~src", "y = 1", "~~~"),
			want:     `case "a" has more than one src fence`,
		},
		{
			name: "duplicate expectation",
			markdown: book("## Case: a", "~~~src", "x = 1", "~~~",
				"~~~tac", "x := 1", "~~~", "~~~tac", "x := 1", "~~~"),
			want: `case "a" has more than one tac fence`,
		},
		{
			name: "first case incomplete",
			markdown: book("## Case: a", "~~~src", "x = 1", "~~~",
				"## Case: b", "~~~src", "y = 1", "~~~", "~~~tac", "y := 1", "~~~"),
			want: `line 1: case "a" has no expectation fences`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cases, err := Extract(test.markdown)
			be.Err(t, err, test.want)
			be.Equal(t, len(cases), 0)
		})
	}
}
