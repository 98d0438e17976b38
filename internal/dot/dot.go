// Package dot renders syntax trees and control flow graphs in Graphviz
// DOT format.
package dot

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hassan/tacc/internal/ir"
	"github.com/hassan/tacc/internal/parser/ast"
)

var nodeColors = map[string]string{
	"Program":         "#e6f3ff",
	"Block":           "#e6ffff",
	"Assignment":      "#fff0e6",
	"BinaryOp":        "#e6ffe6",
	"UnaryOp":         "#e6ffff",
	"Literal":         "#f2e6ff",
	"Identifier":      "#ffe6e6",
	"FunctionCall":    "#ffe6f2",
	"FunctionDef":     "#e6f2ff",
	"IfStatement":     "#fff2e6",
	"WhileLoop":       "#f2ffe6",
	"ForLoop":         "#ffe6ff",
	"ReturnStatement": "#ffffe6",
}

const defaultColor = "#f5f5f5"

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

// WriteAST writes the tree rooted at root as a digraph. Nodes are numbered
// n0, n1, ... in preorder and colored by kind.
func WriteAST(w io.Writer, root ast.Node) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph AST {")
	fmt.Fprintln(bw, `  node [shape=box, style="rounded,filled", fontname="Arial"];`)
	next := 0
	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		id := next
		next++
		color, ok := nodeColors[n.Kind()]
		if !ok {
			color = defaultColor
		}
		fmt.Fprintf(bw, "  n%d [label=%s, fillcolor=%q];\n", id, quote(ast.Label(n)), color)
		for _, child := range ast.Children(n) {
			fmt.Fprintf(bw, "  n%d -> n%d;\n", id, next)
			visit(child)
		}
	}
	visit(root)
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// WriteCFG writes basic blocks as a digraph with one record per block.
// The two edges out of a conditional jump are labeled true (fallthrough)
// and false (jump target).
func WriteCFG(w io.Writer, blocks []*ir.BasicBlock) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph CFG {")
	fmt.Fprintln(bw, `  node [shape=box, fontname="monospace"];`)
	for _, bb := range blocks {
		var label strings.Builder
		label.WriteString(escaper.Replace(bb.Label))
		label.WriteString(`\l`)
		for i, instr := range bb.Instructions {
			fmt.Fprintf(&label, "%03d: %s", bb.Start+i, escaper.Replace(instr.String()))
			label.WriteString(`\l`)
		}
		fmt.Fprintf(bw, "  b%d [label=\"%s\"];\n", bb.Index, label.String())
	}
	for _, bb := range blocks {
		cond, _ := bb.Terminator().(*ir.IfFalseGoto)
		for _, succ := range bb.Successors {
			switch {
			case cond == nil:
				fmt.Fprintf(bw, "  b%d -> b%d;\n", bb.Index, succ.Index)
			case succ.Label == cond.Target:
				fmt.Fprintf(bw, "  b%d -> b%d [label=\"false\"];\n", bb.Index, succ.Index)
			default:
				fmt.Fprintf(bw, "  b%d -> b%d [label=\"true\"];\n", bb.Index, succ.Index)
			}
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
