package snip

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"nickandperla.net/snip/internal/eval"
	"nickandperla.net/snip/internal/node"
	"nickandperla.net/snip/internal/reader"
)

// Types used by native operations registered with BindBuiltin.
type (
	Node        = node.Node
	List        = node.List
	Env         = node.Env
	BuiltinFunc = node.BuiltinFunc
	Kind        = node.Kind
	Error       = node.Error
	ErrorKind   = node.ErrorKind
)

// Guards for native operations. They return the checked value unchanged.
var (
	TypeCheck = node.TypeCheck
	ArgsCheck = node.ArgsCheck
)

// Runtime is the snip interpreter runtime.
type Runtime struct {
	evaluator   *eval.Evaluator
	store       Store
	storeErr    error
	out         io.Writer
	errOut      io.Writer
	input       io.Reader
	logger      *slog.Logger
	exit        func(code int)
	prelude     string // Custom prelude source (if empty, uses DefaultPrelude)
	noStdlib    bool   // If true, skip loading prelude
	persistMode PersistMode
}

// New creates a new snip runtime with the given options.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		out:    os.Stdout,
		errOut: os.Stderr,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.storeErr != nil {
		r.logger.Warn("persistence disabled", slog.Any("error", r.storeErr))
	}

	// Build evaluator options
	evalOpts := []eval.Option{
		eval.WithOutput(r.out),
		eval.WithErrorOutput(r.errOut),
		eval.WithLogger(r.logger),
	}
	if r.store != nil {
		evalOpts = append(evalOpts, eval.WithStore(r.store))
	}
	if r.input != nil {
		evalOpts = append(evalOpts, eval.WithInput(r.input))
	}
	if r.exit != nil {
		evalOpts = append(evalOpts, eval.WithExit(r.exit))
	}

	r.evaluator = eval.New(evalOpts...)

	// Load prelude unless disabled
	if !r.noStdlib {
		prelude := r.prelude
		if prelude == "" {
			prelude = DefaultPrelude
		}

		// Check for database override
		if r.store != nil {
			v, ok, err := r.evaluator.Restore(preludeName)
			if err != nil {
				r.logger.Warn("stored prelude ignored", slog.Any("error", err))
			} else if s, isStr := v.(*node.String); ok && isStr {
				prelude = s.Value
			}
		}

		if _, err := r.LoadReader(strings.NewReader(prelude)); err != nil {
			r.logger.Warn("prelude failed to load", slog.Any("error", err))
		}
	}

	// Prelude definitions are never auto-persisted
	r.evaluator.SetPersistMode(r.persistMode)

	return r
}

// Eval evaluates every form of input and returns the display form of the
// last result. Evaluation stops at the first failing form.
func (r *Runtime) Eval(input string) (string, error) {
	return r.EvalReader(strings.NewReader(input))
}

// EvalReader evaluates snip from a reader.
func (r *Runtime) EvalReader(rd io.Reader) (string, error) {
	result, err := r.evaluator.EvalReader(rd)
	if err != nil {
		return "", err
	}
	return node.Display(result), nil
}

// LoadReader evaluates every form of rd, reporting failing forms to the
// error output and continuing with the next one. Only read errors are
// returned.
func (r *Runtime) LoadReader(rd io.Reader) (string, error) {
	result, err := r.evaluator.LoadReader(rd, func(err error) {
		fmt.Fprintf(r.errOut, "error: %v\n", err)
	})
	return node.Display(result), err
}

// LoadFile loads a program file form by form.
func (r *Runtime) LoadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return r.LoadReader(f)
}

// BindBuiltin registers a native operation in the root environment.
func (r *Runtime) BindBuiltin(name string, fn BuiltinFunc, minArgs int) {
	r.evaluator.Global().BindBuiltin(name, fn, minArgs)
}

// Session evaluates the forms of in one at a time against the runtime's
// persistent environment.
type Session struct {
	runtime *Runtime
	reader  *reader.Reader
}

// Session starts reading forms from in.
func (r *Runtime) Session(in io.Reader) *Session {
	return &Session{runtime: r, reader: reader.New(in)}
}

// Next reads and evaluates one form. It returns io.EOF when the input is
// exhausted; an evaluation failure leaves the session usable.
func (s *Session) Next() (string, error) {
	form, err := s.reader.Read()
	if err != nil {
		return "", err
	}
	v, err := s.runtime.evaluator.Eval(form, s.runtime.evaluator.Global())
	if err != nil {
		return "", err
	}
	return node.Display(v), nil
}

// IsComplete reports whether src closes every list and string it opens.
func IsComplete(src string) bool {
	return reader.Complete(src)
}

// Close releases resources.
func (r *Runtime) Close() error {
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}
