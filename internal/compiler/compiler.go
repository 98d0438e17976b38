// Package compiler runs the front end pipeline: lexing, parsing and
// lowering to three-address code.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/hassan/tacc/internal/ir"
	"github.com/hassan/tacc/internal/lexer"
	"github.com/hassan/tacc/internal/parser"
	"github.com/hassan/tacc/internal/parser/ast"
	"golang.org/x/sync/errgroup"
)

// Options configure one compilation.
type Options struct {
	// Filename prefixes every position in diagnostics. It may be empty.
	Filename string

	// StrictRetype makes a variable changing type a fatal error instead of
	// a warning.
	StrictRetype bool

	// Style selects the operand format of WriteTAC.
	Style ir.Style
}

// Output is the product of a successful compilation.
type Output struct {
	Program *ast.Program
	Result  *ir.Result
	opts    Options
	lexErrs []error
}

// Errors returns the lexical errors the lexer recovered from. The
// offending characters were skipped and the rest of the file compiled.
func (o *Output) Errors() []error {
	return o.lexErrs
}

// Warnings returns the non-fatal diagnostics of the compilation.
func (o *Output) Warnings() []error {
	return o.Result.Warnings
}

// WriteTAC serializes the instructions in the configured style.
func (o *Output) WriteTAC(w io.Writer) error {
	return ir.Write(w, o.Result, o.opts.Style)
}

// WriteSymbols lists every symbol and temporary.
func (o *Output) WriteSymbols(w io.Writer) error {
	return o.Result.Symbols.Dump(w)
}

// Tokenize lexes src. Lexical errors are returned beside the tokens; the
// offending characters are left out of the stream.
func Tokenize(src string, opts Options) ([]lexer.Token, []error) {
	return lexer.Tokenize(src, opts.Filename)
}

// Parse lexes and parses src. A bad character does not stop the pipeline:
// the parser reads the healed token stream and the lexical errors come back
// as diagnostics. err is the syntax error, if any.
func Parse(src string, opts Options) (prog *ast.Program, lexErrs []error, err error) {
	tokens, lexErrs := Tokenize(src, opts)
	prog, err = parser.New(tokens).Parse()
	if err != nil {
		return nil, lexErrs, err
	}
	return prog, lexErrs, nil
}

// Compile parses src and lowers it to TAC, then checks the result is well
// formed. When compilation fails, the lexical errors seen on the way are
// joined in front of the fatal one.
func Compile(src string, opts Options) (*Output, error) {
	prog, lexErrs, err := Parse(src, opts)
	if err != nil {
		return nil, withLexErrors(lexErrs, err)
	}
	res, err := ir.Emit(prog, ir.Options{StrictRetype: opts.StrictRetype})
	if err != nil {
		return nil, withLexErrors(lexErrs, err)
	}
	if err := ir.Verify(res.Instructions); err != nil {
		return nil, fmt.Errorf("%s: malformed TAC: %w", opts.Filename, err)
	}
	return &Output{Program: prog, Result: res, opts: opts, lexErrs: lexErrs}, nil
}

func withLexErrors(lexErrs []error, err error) error {
	if len(lexErrs) == 0 {
		return err
	}
	errs := make([]error, 0, len(lexErrs)+1)
	errs = append(errs, lexErrs...)
	return errors.Join(append(errs, err)...)
}

// Unit is the outcome of compiling one file with CompileFiles.
type Unit struct {
	Path   string
	Output *Output
	Err    error
}

// CompileFiles compiles each file independently and concurrently. Results
// keep the order of paths. A compile error is recorded in its Unit; only
// failing to read a file, or ctx ending, aborts the batch.
func CompileFiles(ctx context.Context, paths []string, opts Options) ([]Unit, error) {
	units := make([]Unit, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			fileOpts := opts
			fileOpts.Filename = path
			out, err := Compile(string(src), fileOpts)
			units[i] = Unit{Path: path, Output: out, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}
