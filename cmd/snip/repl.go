package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
	"nickandperla.net/snip/pkg/snip"
)

const (
	historyFile = ".snip_history"
	promptMain  = "snip> "
	promptCont  = "...   "
)

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "snip REPL (Ctrl+D to exit, Ctrl+C cancels input)")
	fmt.Fprintln(w)
}

func runREPL(runtime *snip.Runtime, stdin io.Reader, stdout, stderr io.Writer) {
	// Check if stdin is a terminal
	f, ok := stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		// Not a TTY, fall back to basic mode
		runBasicREPL(runtime, stdin, stdout, stderr)
		return
	}

	printBanner(stdout)
	runLinerREPL(runtime, stdout, stderr)
}

// runBasicREPL evaluates piped input one form at a time, printing each
// result. A failing form is reported and the loop continues.
func runBasicREPL(runtime *snip.Runtime, stdin io.Reader, stdout, stderr io.Writer) {
	session := runtime.Session(stdin)
	for {
		result, err := session.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(stdout, result)
	}
}

// runLinerREPL handles TTY input with line editing and history.
func runLinerREPL(runtime *snip.Runtime, stdout, stderr io.Writer) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := readByParseProbe(ln)
		if !ok {
			fmt.Fprintln(stdout)
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(src)

		session := runtime.Session(strings.NewReader(src))
		for {
			result, err := session.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				continue
			}
			fmt.Fprintln(stdout, result)
		}
	}
}

// readByParseProbe collects lines until they hold a complete form.
// It returns false at end of input.
func readByParseProbe(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if snip.IsComplete(src) {
			return src, true
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}
