package eval

import (
	"errors"

	"nickandperla.net/snip/internal/node"
)

// maxTraceEntry bounds the rendering of one pending node in a trace.
const maxTraceEntry = 72

// callStack records the nodes pending evaluation for one top-level Eval.
// It is threaded through the loop explicitly; every frame pushes on entry
// and pops on exit, and a tail-jump replaces the top entry in place.
type callStack struct {
	frames []node.Node
}

func (cs *callStack) push(n node.Node) {
	cs.frames = append(cs.frames, n)
}

func (cs *callStack) replace(n node.Node) {
	cs.frames[len(cs.frames)-1] = n
}

func (cs *callStack) pop() {
	cs.frames = cs.frames[:len(cs.frames)-1]
}

func (cs *callStack) depth() int {
	return len(cs.frames)
}

// annotate attaches the pending nodes, innermost first, to a structured
// error that has no trace yet. The innermost frame that sees the error wins.
func (cs *callStack) annotate(err error) {
	var e *node.Error
	if !errors.As(err, &e) || e.Trace != nil {
		return
	}
	e.Trace = make([]string, 0, len(cs.frames))
	for i := len(cs.frames) - 1; i >= 0; i-- {
		e.Trace = append(e.Trace, abbreviate(node.Write(cs.frames[i])))
	}
}

func abbreviate(s string) string {
	r := []rune(s)
	if len(r) <= maxTraceEntry {
		return s
	}
	return string(r[:maxTraceEntry-3]) + "..."
}
