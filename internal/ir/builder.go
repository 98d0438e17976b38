package ir

import (
	"errors"
	"fmt"

	"github.com/hassan/tacc/internal/parser/ast"
	"github.com/hassan/tacc/internal/semantic"
	"github.com/hassan/tacc/internal/semantic/types"
	"github.com/hassan/tacc/internal/symtab"
)

// ErrReturnOutsideFunction is wrapped by the error for a return statement
// at top level.
var ErrReturnOutsideFunction = errors.New("return outside function")

// Options control lowering.
type Options struct {
	// StrictRetype turns a retype warning into a fatal error.
	StrictRetype bool
}

// Result is the output of a successful lowering.
type Result struct {
	Instructions []Instruction
	Symbols      *symtab.Table

	// ProgramBytes and TempBytes are the final offset counters of the two
	// storage classes.
	ProgramBytes int
	TempBytes    int

	// Warnings holds *semantic.RetypeWarning values in source order.
	Warnings []error
}

// Builder lowers a syntax tree to TAC in a single pass, declaring symbols
// and checking types as it goes. The first error stops lowering.
//
// CONTROL FLOW:
// Every construct becomes labels and jumps. An if chain shares one end
// label that each clause jumps to:
//
//	if a == 1 b = 1 elseif a == 2 b = 2 end
//
//	t0 := a EQ 1
//	if_false t0 goto L1
//	b := 1
//	goto L0
//	L1:
//	t1 := a EQ 2
//	if_false t1 goto L0
//	b := 2
//	goto L0
//	L0:
//
// While loops test at the top and jump back; for loops count an induction
// temporary up to an inclusive bound.
//
// STATE:
// A Builder owns its symbol table and label counter and is good for one
// Build call.
type Builder struct {
	opts     Options
	table    *symtab.Table
	resolver *semantic.Resolver

	code     []Instruction
	labels   int
	warnings []error

	// funcs is the stack of functions being lowered, innermost last.
	funcs []*funcState
	built bool
}

type funcState struct {
	sym *symtab.Symbol
	fn  *types.FunctionType
	// typed is set once a return with a value has fixed fn.Return.
	typed bool
}

// NewBuilder returns a builder with a fresh symbol table.
func NewBuilder(opts Options) *Builder {
	table := symtab.New()
	return &Builder{
		opts:     opts,
		table:    table,
		resolver: semantic.NewResolver(table),
	}
}

// Emit lowers prog with a new Builder.
func Emit(prog *ast.Program, opts Options) (*Result, error) {
	return NewBuilder(opts).Build(prog)
}

// Build lowers prog. On error the partial instruction list is discarded.
func (b *Builder) Build(prog *ast.Program) (*Result, error) {
	if b.built {
		return nil, errors.New("ir: Builder.Build called twice")
	}
	b.built = true

	if err := b.buildStmts(prog.Statements); err != nil {
		return nil, err
	}
	return &Result{
		Instructions: b.code,
		Symbols:      b.table,
		ProgramBytes: b.table.Size(symtab.StorageProgram),
		TempBytes:    b.table.Size(symtab.StorageTemp),
		Warnings:     b.warnings,
	}, nil
}

func (b *Builder) emit(instr Instruction) {
	b.code = append(b.code, instr)
}

func (b *Builder) newLabel() string {
	name := fmt.Sprintf("L%d", b.labels)
	b.labels++
	return name
}

func (b *Builder) newTemp(typ types.Type) Operand {
	return Slot(b.table.NewTemp(typ))
}

func (b *Builder) buildStmts(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := b.buildStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildBlock(block *ast.Block) error {
	if block == nil {
		return nil
	}
	return b.buildStmts(block.Statements)
}

func (b *Builder) buildStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Assignment:
		_, err := b.buildAssignment(s)
		return err
	case *ast.ExprStmt:
		_, err := b.buildExpr(s.X)
		return err
	case *ast.IfStatement:
		return b.buildIf(s)
	case *ast.WhileLoop:
		return b.buildWhile(s)
	case *ast.ForLoop:
		return b.buildFor(s)
	case *ast.FunctionDef:
		return b.buildFunction(s)
	case *ast.ReturnStatement:
		return b.buildReturn(s)
	}
	panic(fmt.Sprintf("ir: unexpected statement %T", stmt))
}

// buildIf lowers an if/elseif/else chain. Each clause tests its condition
// and jumps to the next clause when false; every taken clause jumps to a
// shared end label.
func (b *Builder) buildIf(s *ast.IfStatement) error {
	end := b.newLabel()
	next := end
	if len(s.ElseIfs) > 0 || s.Else != nil {
		next = b.newLabel()
	}
	if err := b.buildClause(s.Cond, s.Then, next, end); err != nil {
		return err
	}

	for i, clause := range s.ElseIfs {
		next = end
		if i < len(s.ElseIfs)-1 || s.Else != nil {
			next = b.newLabel()
		}
		if err := b.buildClause(clause.Cond, clause.Body, next, end); err != nil {
			return err
		}
	}

	if err := b.buildBlock(s.Else); err != nil {
		return err
	}
	b.emit(&Label{Name: end})
	return nil
}

func (b *Builder) buildClause(cond ast.Expr, body *ast.Block, next, end string) error {
	c, err := b.buildExpr(cond)
	if err != nil {
		return err
	}
	b.emit(&IfFalseGoto{Cond: c, Target: next})
	if err := b.buildBlock(body); err != nil {
		return err
	}
	b.emit(&Goto{Target: end})
	if next != end {
		b.emit(&Label{Name: next})
	}
	return nil
}

func (b *Builder) buildWhile(s *ast.WhileLoop) error {
	start := b.newLabel()
	end := b.newLabel()

	b.emit(&Label{Name: start})
	cond, err := b.buildExpr(s.Cond)
	if err != nil {
		return err
	}
	b.emit(&IfFalseGoto{Cond: cond, Target: end})
	if err := b.buildBlock(s.Body); err != nil {
		return err
	}
	b.emit(&Goto{Target: start})
	b.emit(&Label{Name: end})
	return nil
}

// buildFor lowers an inclusive range loop. The end bound is evaluated
// once; the loop variable is bound in the enclosing scope and reassigned
// from a hidden induction temporary on every iteration.
func (b *Builder) buildFor(s *ast.ForLoop) error {
	start, err := b.buildExpr(s.Start)
	if err != nil {
		return err
	}
	limit, err := b.buildExpr(s.End)
	if err != nil {
		return err
	}
	typ, err := semantic.RangeBound(s, start.Type, limit.Type)
	if err != nil {
		return err
	}

	induction := b.newTemp(typ)
	b.emit(&Assign{Dest: induction, Src: start})
	if limit.IsSlot() && limit.Sym.Class == symtab.StorageProgram {
		// The body may assign to the bound variable.
		frozen := b.newTemp(limit.Type)
		b.emit(&Assign{Dest: frozen, Src: limit})
		limit = frozen
	}

	top := b.newLabel()
	exit := b.newLabel()
	b.emit(&Label{Name: top})
	cmp := b.newTemp(types.Bool)
	b.emit(&Binary{Dest: cmp, Op: OpLe, Left: induction, Right: limit})
	b.emit(&IfFalseGoto{Cond: cmp, Target: exit})

	if _, err := b.store(s.Var, induction, s); err != nil {
		return err
	}
	if err := b.buildBlock(s.Body); err != nil {
		return err
	}

	b.emit(&Binary{Dest: induction, Op: OpAdd, Left: induction, Right: Const("1", types.Int)})
	b.emit(&Goto{Target: top})
	b.emit(&Label{Name: exit})
	return nil
}

// buildFunction lowers a definition inline. The function is declared
// before its body so it can call itself.
func (b *Builder) buildFunction(s *ast.FunctionDef) error {
	fn := types.NewFunction(len(s.Params))
	sym, ok := b.table.DeclareFunction(s.Name.Name, fn, s.Name.Pos())
	if !ok {
		return &symtab.RedeclarationError{Name: s.Name.Name, Kind: symtab.SymbolFunction, Pos: s.Name.Pos(), Prev: sym}
	}

	b.emit(&FuncBegin{Name: s.Name.Name})
	b.table.EnterScope(s.Name.Name)
	for _, param := range s.Params {
		p, ok := b.table.DeclareParam(param.Name, param.Pos())
		if !ok {
			return &symtab.RedeclarationError{Name: param.Name, Kind: symtab.SymbolParameter, Pos: param.Pos(), Prev: p}
		}
		b.emit(&PopParam{Param: Slot(p)})
	}

	b.funcs = append(b.funcs, &funcState{sym: sym, fn: fn})
	err := b.buildBlock(s.Body)
	b.funcs = b.funcs[:len(b.funcs)-1]
	if err != nil {
		return err
	}

	b.table.ExitScope()
	b.emit(&FuncEnd{Name: s.Name.Name})
	return nil
}

// buildReturn also infers the enclosing function's return type: the type
// of its first valued return, widened to ANY when a later one disagrees.
func (b *Builder) buildReturn(s *ast.ReturnStatement) error {
	if len(b.funcs) == 0 {
		return fmt.Errorf("%s: %w", s.Pos(), ErrReturnOutsideFunction)
	}
	if s.Value == nil {
		b.emit(&Return{})
		return nil
	}

	v, err := b.buildExpr(s.Value)
	if err != nil {
		return err
	}
	cur := b.funcs[len(b.funcs)-1]
	switch {
	case !cur.typed:
		cur.fn.Return = v.Type
		cur.typed = true
	case !cur.fn.Return.Equals(v.Type):
		cur.fn.Return = types.Any
	}
	b.emit(&Return{Value: &v})
	return nil
}

func (b *Builder) buildExpr(expr ast.Expr) (Operand, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		typ, _ := b.resolver.Node(e)
		return Const(e.Text(), typ), nil

	case *ast.Identifier:
		sym, err := b.resolver.Variable(e, e.Kind())
		if err != nil {
			return Operand{}, err
		}
		return Slot(sym), nil

	case *ast.BinaryOp:
		return b.buildBinary(e)

	case *ast.UnaryOp:
		return b.buildUnary(e)

	case *ast.Assignment:
		return b.buildAssignment(e)

	case *ast.FunctionCall:
		return b.buildCall(e)
	}
	panic(fmt.Sprintf("ir: unexpected expression %T", expr))
}

func (b *Builder) buildBinary(e *ast.BinaryOp) (Operand, error) {
	op, ok := LookupOperator(e.Op)
	if !ok {
		return Operand{}, fmt.Errorf("%s: unknown operator %q in %s", e.Pos(), e.Op, e.Kind())
	}
	left, err := b.buildExpr(e.Left)
	if err != nil {
		return Operand{}, err
	}
	right, err := b.buildExpr(e.Right)
	if err != nil {
		return Operand{}, err
	}
	typ, err := b.resolver.Node(e, left.Type, right.Type)
	if err != nil {
		return Operand{}, err
	}
	dest := b.newTemp(typ)
	b.emit(&Binary{Dest: dest, Op: op, Left: left, Right: right})
	return dest, nil
}

// buildUnary rewrites prefix operators as binary ones: -x is 0 SUB x and
// !x is x EQ false.
func (b *Builder) buildUnary(e *ast.UnaryOp) (Operand, error) {
	if e.Op != "-" && e.Op != "!" {
		return Operand{}, fmt.Errorf("%s: unknown operator %q in %s", e.Pos(), e.Op, e.Kind())
	}
	operand, err := b.buildExpr(e.Operand)
	if err != nil {
		return Operand{}, err
	}
	typ, err := b.resolver.Node(e, operand.Type)
	if err != nil {
		return Operand{}, err
	}

	dest := b.newTemp(typ)
	if e.Op == "-" {
		zero := Const("0", types.Int)
		if typ.Equals(types.Float) {
			zero = Const("0.0", types.Float)
		}
		b.emit(&Binary{Dest: dest, Op: OpSub, Left: zero, Right: operand})
	} else {
		b.emit(&Binary{Dest: dest, Op: OpEq, Left: operand, Right: Const("false", types.Bool)})
	}
	return dest, nil
}

// buildAssignment evaluates the value before touching the target, so
// x = x + 1 reads the old x. It returns the target slot.
func (b *Builder) buildAssignment(e *ast.Assignment) (Operand, error) {
	value, err := b.buildExpr(e.Value)
	if err != nil {
		return Operand{}, err
	}
	if !e.IsCompound() {
		return b.store(e.Target, value, e)
	}

	sym, err := b.resolver.Variable(e.Target, e.Kind())
	if err != nil {
		return Operand{}, err
	}
	typ, err := b.resolver.Node(e, value.Type)
	if err != nil {
		return Operand{}, err
	}
	op, _ := LookupOperator(e.ArithOp())
	tmp := b.newTemp(typ)
	b.emit(&Binary{Dest: tmp, Op: op, Left: Slot(sym), Right: value})
	if err := b.retype(sym, typ, e); err != nil {
		return Operand{}, err
	}
	dest := Slot(sym)
	b.emit(&Assign{Dest: dest, Src: tmp})
	return dest, nil
}

// store assigns value to the variable named by target, declaring it in
// the current scope on first use and retyping it otherwise.
func (b *Builder) store(target *ast.Identifier, value Operand, node ast.Node) (Operand, error) {
	sym, ok := b.table.Lookup(target.Name)
	switch {
	case !ok:
		sym, _ = b.table.Declare(target.Name, value.Type, target.Pos())
	case !sym.HasStorage():
		return Operand{}, &semantic.TypeMismatchError{
			Node:   node.Kind(),
			Pos:    target.Pos(),
			Detail: fmt.Sprintf("cannot assign to %s %s", sym.Kind, sym.Name),
		}
	default:
		if err := b.retype(sym, value.Type, node); err != nil {
			return Operand{}, err
		}
	}
	dest := Slot(sym)
	b.emit(&Assign{Dest: dest, Src: value})
	return dest, nil
}

// retype records typ as the type of sym. Leaving ANY is silent; any other
// change is a warning, or an error under StrictRetype.
func (b *Builder) retype(sym *symtab.Symbol, typ types.Type, node ast.Node) error {
	if sym.Type.Equals(typ) {
		return nil
	}
	if !types.IsAny(sym.Type) {
		w := &semantic.RetypeWarning{Name: sym.Name, From: sym.Type, To: typ, SlotSize: sym.Size, Pos: node.Pos()}
		if b.opts.StrictRetype {
			return w
		}
		b.warnings = append(b.warnings, w)
	}
	b.table.Retype(sym, typ)
	return nil
}

// buildCall evaluates every argument left to right, then pushes them in
// the same order and calls.
func (b *Builder) buildCall(e *ast.FunctionCall) (Operand, error) {
	fn, err := b.resolver.Function(e)
	if err != nil {
		return Operand{}, err
	}
	args := make([]Operand, 0, len(e.Args))
	for _, arg := range e.Args {
		v, err := b.buildExpr(arg)
		if err != nil {
			return Operand{}, err
		}
		args = append(args, v)
	}
	for _, arg := range args {
		b.emit(&PushParam{Src: arg})
	}
	dest := b.newTemp(fn.Return)
	b.emit(&Call{Dest: dest, Func: e.Name, NArgs: len(args)})
	return dest, nil
}
