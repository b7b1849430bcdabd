// Package eval implements the snip evaluator.
package eval

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"nickandperla.net/snip/internal/node"
	"nickandperla.net/snip/internal/reader"
	"nickandperla.net/snip/internal/store"
)

// Store is the interface for definition persistence.
type Store = store.Store

// PersistMode controls when definitions are persisted.
type PersistMode int

const (
	// PersistOnDemand is the default - explicit persist/restore calls only.
	PersistOnDemand PersistMode = iota
	// PersistAlways persists every root-level define/set! and restores on
	// root-level lookup misses.
	PersistAlways
	// PersistNever makes persist a no-op (memory-only mode).
	PersistNever
)

// String returns the string representation of a PersistMode.
func (m PersistMode) String() string {
	switch m {
	case PersistOnDemand:
		return "ON_DEMAND"
	case PersistAlways:
		return "ALWAYS"
	case PersistNever:
		return "NEVER"
	default:
		return "UNKNOWN"
	}
}

// ParsePersistMode parses a string into a PersistMode.
func ParsePersistMode(s string) (PersistMode, bool) {
	switch strings.ToUpper(s) {
	case "ON_DEMAND":
		return PersistOnDemand, true
	case "ALWAYS":
		return PersistAlways, true
	case "NEVER":
		return PersistNever, true
	default:
		return PersistOnDemand, false
	}
}

// CommandRunner runs a shell command and returns its exit status.
type CommandRunner func(command string) (int, error)

// Evaluator interprets snip nodes.
type Evaluator struct {
	root        *node.Env
	store       Store
	persistMode PersistMode
	out         io.Writer
	errOut      io.Writer
	input       *reader.Reader
	logger      *slog.Logger
	exit        func(code int)
	runCommand  CommandRunner
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithStore sets the persistence store.
func WithStore(s Store) Option {
	return func(e *Evaluator) { e.store = s }
}

// WithPersistMode sets the persistence mode.
func WithPersistMode(mode PersistMode) Option {
	return func(e *Evaluator) { e.persistMode = mode }
}

// WithOutput sets the writer used by print and exec.
func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) { e.out = w }
}

// WithErrorOutput sets the writer that load reports failing forms to.
func WithErrorOutput(w io.Writer) Option {
	return func(e *Evaluator) { e.errOut = w }
}

// WithInput sets the source read by (read) without arguments.
func WithInput(r io.Reader) Option {
	return func(e *Evaluator) { e.input = reader.New(r) }
}

// WithLogger sets the logger for evaluator tracing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// WithExit sets the handler called by the exit builtin.
func WithExit(fn func(code int)) Option {
	return func(e *Evaluator) { e.exit = fn }
}

// WithCommandRunner sets the handler used by the exec builtin.
func WithCommandRunner(fn CommandRunner) Option {
	return func(e *Evaluator) { e.runCommand = fn }
}

// New creates a new Evaluator with the given options. The root environment
// is populated with the special forms and the core builtins.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		out:    os.Stdout,
		errOut: os.Stderr,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.runCommand == nil {
		e.runCommand = e.runShell
	}
	if e.input == nil {
		e.input = reader.New(os.Stdin)
	}
	e.root = node.NewEnv(nil)
	bindSpecialForms(e.root)
	e.installBuiltins(e.root)
	return e
}

// Global returns the root environment.
func (e *Evaluator) Global() *node.Env {
	return e.root
}

// Store returns the persistence store, or nil.
func (e *Evaluator) Store() Store {
	return e.store
}

// PersistMode returns the current persistence mode.
func (e *Evaluator) PersistMode() PersistMode {
	return e.persistMode
}

// SetPersistMode sets the persistence mode.
func (e *Evaluator) SetPersistMode(mode PersistMode) {
	e.persistMode = mode
}

// Eval evaluates n in env.
func (e *Evaluator) Eval(n node.Node, env *node.Env) (node.Node, error) {
	return e.eval(n, env, &callStack{})
}

// EvalString reads and evaluates every form of input in the root
// environment, returning the last result. It stops at the first failure.
func (e *Evaluator) EvalString(input string) (node.Node, error) {
	return e.EvalReader(strings.NewReader(input))
}

// EvalReader evaluates snip from a reader.
func (e *Evaluator) EvalReader(r io.Reader) (node.Node, error) {
	rd := reader.New(r)
	var result node.Node = node.Nil()
	for {
		form, err := rd.Read()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		result, err = e.Eval(form, e.root)
		if err != nil {
			return nil, err
		}
	}
}

// LoadReader evaluates every form of r in the root environment. A failing
// form is passed to report, prefixed with the line it started on, and
// loading continues with the next form. Only read errors abort the load.
func (e *Evaluator) LoadReader(r io.Reader, report func(error)) (node.Node, error) {
	rd := reader.New(r)
	var result node.Node = node.Nil()
	for {
		form, err := rd.Read()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return result, err
		}
		v, err := e.Eval(form, e.root)
		if err != nil {
			if report != nil {
				report(fmt.Errorf("line %d: %w", rd.Line(), err))
			}
			continue
		}
		result = v
	}
}

// reportTo returns a report func that writes errors to the error output.
func (e *Evaluator) reportTo() func(error) {
	return func(err error) {
		fmt.Fprintf(e.errOut, "error: %v\n", err)
	}
}

// eval is the interpreter loop. Tail positions reassign n and env and
// continue instead of recursing.
func (e *Evaluator) eval(n node.Node, env *node.Env, cs *callStack) (result node.Node, err error) {
	cs.push(n)
	defer func() {
		if err != nil {
			cs.annotate(err)
		}
		cs.pop()
	}()

	for {
		cs.replace(n)

		if node.IsNil(n) {
			return node.Nil(), nil
		}
		call, ok := n.(*node.List)
		if !ok {
			if sym, ok := n.(*node.Symbol); ok && sym.Name != "" {
				return e.lookup(sym, env)
			}
			return n, nil
		}

		fn, err := e.eval(call.Items[0], env, cs)
		if err != nil {
			return nil, err
		}

		if form, ok := fn.(*node.Builtin); ok && isSpecial(form) {
			next, result, tail, err := e.special(form, call, env, cs)
			if err != nil {
				return nil, err
			}
			if !tail {
				return result, nil
			}
			n = next
			continue
		}

		args, err := e.evalArgs(call, env, cs)
		if err != nil {
			return nil, err
		}

		switch f := fn.(type) {
		case *node.Closure:
			frame, curried, err := bindParams(f, args, call)
			if err != nil {
				return nil, err
			}
			if curried != nil {
				return curried, nil
			}
			e.logger.Debug("tail call",
				slog.Int("argument-count", args.Len()),
				slog.Int("stack-depth", cs.depth()))
			env, n = frame, f.Body
			continue

		case *node.Builtin:
			if _, err := node.ArgsCheck(args, f.MinArgs); err != nil {
				return nil, err
			}
			switch f {
			case evalForm:
				n = args.At(0)
				continue
			case applyForm:
				next, err := applyList(args)
				if err != nil {
					return nil, err
				}
				n = next
				continue
			}
			e.logger.Debug("builtin call",
				slog.String("op", f.Name),
				slog.Int("argument-count", args.Len()))
			v, err := f.Call(args, env)
			if err != nil {
				return nil, err
			}
			return node.OrNil(v), nil
		}

		return nil, node.Errorf(node.NotCallable, call, "function expected")
	}
}

// evalArgs evaluates the operands of call left to right.
func (e *Evaluator) evalArgs(call *node.List, env *node.Env, cs *callStack) (*node.List, error) {
	args := &node.List{Items: make([]node.Node, 0, len(call.Items)-1)}
	for _, operand := range call.Items[1:] {
		v, err := e.eval(operand, env, cs)
		if err != nil {
			return nil, err
		}
		args.Items = append(args.Items, v)
	}
	return args, nil
}

// lookup resolves sym, restoring it from the store first when persistence
// is automatic and the symbol is unbound.
func (e *Evaluator) lookup(sym *node.Symbol, env *node.Env) (node.Node, error) {
	v, err := env.Lookup(sym)
	if err == nil || e.persistMode != PersistAlways || e.store == nil {
		return v, err
	}
	restored, ok, rerr := e.restore(sym.Name)
	if rerr != nil {
		return nil, fmt.Errorf("restore %s: %w", sym.Name, rerr)
	}
	if !ok {
		return nil, err
	}
	return restored, nil
}

// bindParams binds args to the closure's parameters in a new frame whose
// parent is the captured environment. With fewer args than parameters it
// returns a closure over the remaining parameters instead.
func bindParams(f *node.Closure, args *node.List, call *node.List) (*node.Env, *node.Closure, error) {
	nvars, nargs := f.Params.Len(), args.Len()
	if nvars < nargs {
		return nil, nil, node.Errorf(node.TooManyArguments, call,
			"too many arguments in lambda (expected %d, got %d)", nvars, nargs)
	}

	frame := node.NewEnv(f.Env)
	for i := 0; i < nargs; i++ {
		sym, err := node.SymbolArg(f.Params.At(i))
		if err != nil {
			return nil, nil, err
		}
		frame.Define(sym, args.At(i))
	}

	if nvars > nargs {
		rest := node.NewList(f.Params.Items[nargs:]...)
		return nil, &node.Closure{Params: rest, Body: f.Body, Env: frame}, nil
	}
	return frame, nil, nil
}

// applyList builds the call (fn arg...) from (apply fn (arg...)).
func applyList(args *node.List) (node.Node, error) {
	if _, err := node.ArgsCheck(args, 2); err != nil {
		return nil, err
	}
	rest, err := node.ListArg(args.At(1))
	if err != nil {
		return nil, err
	}
	items := make([]node.Node, 0, rest.Len()+1)
	items = append(items, args.At(0))
	items = append(items, rest.Items...)
	return node.NewList(items...), nil
}
