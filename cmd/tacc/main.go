// Command tacc compiles source files to three-address code and dumps the
// intermediate products of each front end stage.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hassan/tacc/internal/compiler"
	"github.com/hassan/tacc/internal/dot"
	"github.com/hassan/tacc/internal/ir"
	"github.com/hassan/tacc/internal/lexer"
	"github.com/hassan/tacc/internal/parser/ast"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func showUsage(w io.Writer) {
	fmt.Fprint(w, `tacc - compile source files to three-address code

Usage:
    tacc <command> [-o file] [-strict] [-names] <file>

Commands:
    tokens <file>      Print the token stream
    ast <file>         Print the syntax tree as an S-expression
    dot <file>         Print the syntax tree as a Graphviz digraph
    tac <file>...      Print the three-address code of each file
    symbols <file>     Print the symbol table after lowering
    cfg <file>         Print the basic blocks as a Graphviz digraph
    help               Show this help message

Examples:
    tacc tac prog.src
    tacc tac -names -o prog.tac prog.src
    tacc cfg prog.src | dot -Tpng -o cfg.png

Use "tacc <command> -h" for the command flags.
`)
}

type command struct {
	multi bool
	run   func(w, stderr io.Writer, paths []string, opts compiler.Options) bool
}

var commands = map[string]command{
	"tokens":  {run: tokensCommand},
	"ast":     {run: astCommand},
	"dot":     {run: dotCommand},
	"tac":     {run: tacCommand, multi: true},
	"symbols": {run: symbolsCommand},
	"cfg":     {run: cfgCommand},
}

// run executes one command line and returns the exit status: 0 on
// success, 1 when compilation fails, 2 on a usage error.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		showUsage(stderr)
		return 2
	}
	name := args[0]
	switch name {
	case "help", "-h", "-help", "--help":
		showUsage(stdout)
		return 0
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "error: unknown command %q\n\n", name)
		showUsage(stderr)
		return 2
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", "", "write output to `file` instead of stdout")
	strict := fs.Bool("strict", false, "make a variable changing type an error")
	names := fs.Bool("names", false, "print TAC operands by name instead of by slot")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tacc %s [-o file] [-strict] [-names] <file>\n\nFlags:\n", name)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 || (!cmd.multi && fs.NArg() != 1) {
		want := "exactly one file argument"
		if cmd.multi {
			want = "at least one file argument"
		}
		fmt.Fprintf(stderr, "error: %s expects %s\n", name, want)
		fs.Usage()
		return 2
	}

	opts := compiler.Options{StrictRetype: *strict}
	if *names {
		opts.Style = ir.Names
	}

	var dest io.Writer = stdout
	var file *os.File
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			report(stderr, "error", err)
			return 1
		}
		file = f
		dest = f
	}

	bw := bufio.NewWriter(dest)
	ok = cmd.run(bw, stderr, fs.Args(), opts)
	err := bw.Flush()
	if file != nil {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		report(stderr, "error", err)
		return 1
	}
	if !ok {
		return 1
	}
	return 0
}

// report prints err to stderr, one line per joined error.
func report(stderr io.Writer, prefix string, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			report(stderr, prefix, e)
		}
		return
	}
	fmt.Fprintf(stderr, "%s: %v\n", prefix, err)
}

func readSource(stderr io.Writer, path string) (string, bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		report(stderr, "error", err)
		return "", false
	}
	return string(src), true
}

func tokensCommand(w, stderr io.Writer, paths []string, opts compiler.Options) bool {
	src, ok := readSource(stderr, paths[0])
	if !ok {
		return false
	}
	opts.Filename = paths[0]
	tokens, errs := compiler.Tokenize(src, opts)
	if err := lexer.WriteTokens(w, tokens); err != nil {
		report(stderr, "error", err)
		return false
	}
	for _, err := range errs {
		report(stderr, "error", err)
	}
	return len(errs) == 0
}

// parse reports lexical errors and keeps going with the healed token
// stream. clean is false when anything was reported; prog is nil only on a
// fatal error.
func parse(stderr io.Writer, path string, opts compiler.Options) (prog *ast.Program, clean bool) {
	src, ok := readSource(stderr, path)
	if !ok {
		return nil, false
	}
	opts.Filename = path
	prog, lexErrs, err := compiler.Parse(src, opts)
	for _, lexErr := range lexErrs {
		report(stderr, "error", lexErr)
	}
	if err != nil {
		report(stderr, "error", err)
		return nil, false
	}
	return prog, len(lexErrs) == 0
}

func astCommand(w, stderr io.Writer, paths []string, opts compiler.Options) bool {
	prog, clean := parse(stderr, paths[0], opts)
	if prog == nil {
		return false
	}
	fmt.Fprintln(w, ast.Sexpr(prog))
	return clean
}

func dotCommand(w, stderr io.Writer, paths []string, opts compiler.Options) bool {
	prog, clean := parse(stderr, paths[0], opts)
	if prog == nil {
		return false
	}
	if err := dot.WriteAST(w, prog); err != nil {
		report(stderr, "error", err)
		return false
	}
	return clean
}

// compile prints the diagnostics of a compilation. clean is false when
// any error was reported, even if out is usable.
func compile(stderr io.Writer, path string, opts compiler.Options) (out *compiler.Output, clean bool) {
	src, ok := readSource(stderr, path)
	if !ok {
		return nil, false
	}
	opts.Filename = path
	out, err := compiler.Compile(src, opts)
	if err != nil {
		report(stderr, "error", err)
		return nil, false
	}
	return out, diagnose(stderr, out)
}

// diagnose prints recovered lexical errors and warnings, and reports
// whether there were no errors.
func diagnose(stderr io.Writer, out *compiler.Output) bool {
	for _, err := range out.Errors() {
		report(stderr, "error", err)
	}
	for _, warning := range out.Warnings() {
		report(stderr, "warning", warning)
	}
	return len(out.Errors()) == 0
}

func tacCommand(w, stderr io.Writer, paths []string, opts compiler.Options) bool {
	units, err := compiler.CompileFiles(context.Background(), paths, opts)
	if err != nil {
		report(stderr, "error", err)
		return false
	}
	ok := true
	for _, unit := range units {
		if len(units) > 1 {
			fmt.Fprintf(w, "# %s\n", unit.Path)
		}
		if unit.Err != nil {
			report(stderr, "error", unit.Err)
			ok = false
			continue
		}
		if !diagnose(stderr, unit.Output) {
			ok = false
		}
		if err := unit.Output.WriteTAC(w); err != nil {
			report(stderr, "error", err)
			return false
		}
	}
	return ok
}

func symbolsCommand(w, stderr io.Writer, paths []string, opts compiler.Options) bool {
	out, clean := compile(stderr, paths[0], opts)
	if out == nil {
		return false
	}
	if err := out.WriteSymbols(w); err != nil {
		report(stderr, "error", err)
		return false
	}
	return clean
}

func cfgCommand(w, stderr io.Writer, paths []string, opts compiler.Options) bool {
	out, clean := compile(stderr, paths[0], opts)
	if out == nil {
		return false
	}
	if err := dot.WriteCFG(w, ir.SplitBlocks(out.Result.Instructions)); err != nil {
		report(stderr, "error", err)
		return false
	}
	return clean
}
