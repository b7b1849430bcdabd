// Command snip is the snip interpreter CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"nickandperla.net/snip/pkg/snip"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("snip", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		evalStr     = fs.String("e", "", "Evaluate snip string")
		file        = fs.String("f", "", "Execute snip file")
		dbPath      = fs.String("db", "", "SQLite database path (empty for memory only)")
		noStdlib    = fs.Bool("no-stdlib", false, "Disable standard library prelude")
		persistMode = fs.String("persist-mode", "on_demand", "Persistence mode: on_demand, always, or never")
		debug       = fs.Bool("debug", false, "Log evaluator tracing to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Build options
	opts := []snip.Option{
		snip.WithOutput(stdout),
		snip.WithErrorOutput(stderr),
		snip.WithInput(stdin),
		snip.WithLogger(logger),
	}
	if *dbPath != "" {
		opts = append(opts, snip.WithSQLiteStore(*dbPath))
	}
	if *noStdlib {
		opts = append(opts, snip.WithNoStdlib())
	}

	mode, ok := snip.ParsePersistMode(*persistMode)
	if !ok {
		fmt.Fprintf(stderr, "Unknown persist mode: %s (use on_demand, always, or never)\n", *persistMode)
		return 1
	}
	opts = append(opts, snip.WithPersistMode(mode))

	status := -1
	opts = append(opts, snip.WithExit(func(code int) {
		status = code
		panic(exitSignal{})
	}))

	runtime := snip.New(opts...)
	defer runtime.Close()

	return catchExit(&status, func() int {
		// Files are loaded form by form; a failing form is reported and skipped
		files := fs.Args()
		if *file != "" {
			files = append([]string{*file}, files...)
		}
		for _, path := range files {
			if _, err := runtime.LoadFile(path); err != nil {
				fmt.Fprintf(stderr, "Error loading file: %v\n", err)
				return 1
			}
		}

		if *evalStr != "" {
			result, err := runtime.Eval(*evalStr)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return 1
			}
			fmt.Fprintln(stdout, result)
		}

		if len(files) > 0 || *evalStr != "" {
			return 0
		}
		runREPL(runtime, stdin, stdout, stderr)
		return 0
	})
}

// exitSignal unwinds the interpreter when a program calls (exit).
type exitSignal struct{}

func catchExit(status *int, body func() int) (code int) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(exitSignal); !ok {
				panic(r)
			}
			code = *status
		}
	}()
	return body()
}
