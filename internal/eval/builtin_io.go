package eval

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"nickandperla.net/snip/internal/node"
	"nickandperla.net/snip/internal/reader"
)

// builtinPrint writes every argument to the output without separators.
func (e *Evaluator) builtinPrint(args *node.List, env *node.Env) (node.Node, error) {
	for _, a := range args.Items {
		if _, err := io.WriteString(e.out, node.Display(a)); err != nil {
			return nil, node.Errorf(node.IOError, a, "print: %v", err)
		}
	}
	return node.NewString(""), nil
}

// builtinSave writes the remaining arguments to the file named by the
// first, in readable form.
func builtinSave(args *node.List, env *node.Env) (node.Node, error) {
	path, err := node.StringArg(args.At(0))
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	for _, a := range args.Items[1:] {
		sb.WriteString(node.Write(a))
	}
	if err := os.WriteFile(path.Value, []byte(sb.String()), 0644); err != nil {
		return nil, node.Errorf(node.IOError, args, "cannot create output file: %v", err)
	}
	return node.NewString(""), nil
}

// builtinRead returns every form of the named file as a list, or one form
// from the evaluator input when called without arguments.
func (e *Evaluator) builtinRead(args *node.List, env *node.Env) (node.Node, error) {
	if args.Len() == 0 {
		n, err := e.input.Read()
		if err != nil && err != io.EOF {
			return nil, node.Errorf(node.IOError, nil, "read: %v", err)
		}
		return n, nil
	}

	path, err := node.StringArg(args.At(0))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path.Value)
	if err != nil {
		return nil, node.Errorf(node.IOError, args, "cannot open input file: %v", err)
	}
	defer f.Close()

	forms, err := reader.New(f).ReadAll()
	if err != nil {
		return nil, node.Errorf(node.IOError, args, "read: %v", err)
	}
	return node.NewList(forms...), nil
}

// builtinLoad evaluates a file form by form in the root environment.
// Failing forms are reported and skipped.
func (e *Evaluator) builtinLoad(args *node.List, env *node.Env) (node.Node, error) {
	path, err := node.StringArg(args.At(0))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path.Value)
	if err != nil {
		return nil, node.Errorf(node.IOError, args, "cannot open input file: %v", err)
	}
	defer f.Close()

	result, err := e.LoadReader(f, func(err error) {
		e.reportTo()(fmt.Errorf("%s: %w", path.Value, err))
	})
	if err != nil {
		return nil, node.Errorf(node.IOError, args, "load: %v", err)
	}
	return result, nil
}

// builtinExec runs a shell command and returns its exit status.
func (e *Evaluator) builtinExec(args *node.List, env *node.Env) (node.Node, error) {
	cmd, err := node.StringArg(args.At(0))
	if err != nil {
		return nil, err
	}
	status, err := e.runCommand(cmd.Value)
	if err != nil {
		return nil, node.Errorf(node.IOError, cmd, "exec: %v", err)
	}
	return node.NewNumber(float64(status)), nil
}

func (e *Evaluator) builtinExit(args *node.List, env *node.Env) (node.Node, error) {
	code := 0
	if args.Len() > 0 {
		num, err := node.NumberArg(args.At(0))
		if err != nil {
			return nil, err
		}
		code = int(num.Value)
	}
	fmt.Fprintln(e.out)
	e.exit(code)
	return node.Nil(), nil
}

// runShell runs command through sh, writing to the evaluator's outputs.
func (e *Evaluator) runShell(command string) (int, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = e.out
	cmd.Stderr = e.errOut
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}
