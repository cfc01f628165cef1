package core

import "github.com/vovakirdan/wirechat-client/internal/proto"

// Task is a type-erased handle over one task state. Handles are immutable: every
// transition yields a new handle, and the previous one must be dropped.
type Task interface {
	// Name describes the task for logs and diagnostics.
	Name() string
	// Receive feeds one message to the task.
	Receive(msg proto.Message) Step
	// Stop tears the task down on request and returns its final outbound messages.
	Stop() []proto.Message

	kind() Kind
}

// Step is the outcome of Task.Receive. A nil Next means the task stopped.
type Step struct {
	Out  []proto.Message
	Next Task
}

// Stopped reports whether the task terminated.
func (s Step) Stopped() bool {
	return s.Next == nil
}

// Transition is the outcome of a state-level receive.
type Transition[S any] struct {
	Out   []proto.Message
	State S
	Done  bool
}

// Continue keeps the task alive with state.
func Continue[S any](state S, out ...proto.Message) Transition[S] {
	return Transition[S]{Out: out, State: state}
}

// Terminate stops the task after sending out.
func Terminate[S any](out ...proto.Message) Transition[S] {
	return Transition[S]{Out: out, Done: true}
}

// Ops is the operation table of one task kind. Receive is required.
type Ops[S any] struct {
	Name    func(S) string
	Receive func(S, proto.Message) Transition[S]
	Stop    func(S) []proto.Message
}

// Kind is the erased operation table of a task kind, as returned by Inspect.
type Kind interface {
	// Label names the kind.
	Label() string
	// Operations lists the operations the kind implements, in the order
	// name, receive, stop. Kinds without a name operation fall back to Label.
	Operations() []string
}

// Witness is the identity of one task kind. Only Inject creates usable witnesses,
// and handles are matched against them by identity, never by type alone.
type Witness[S any] struct {
	label string
	ops   Ops[S]
}

// Inject creates a fresh witness bound to ops. Call it once per kind, at package
// initialisation.
func Inject[S any](label string, ops Ops[S]) *Witness[S] {
	if ops.Receive == nil {
		panic("core: witness " + label + " has no receive operation")
	}
	return &Witness[S]{label: label, ops: ops}
}

// Label names the kind.
func (w *Witness[S]) Label() string {
	return w.label
}

// Operations lists the operations bound to w.
func (w *Witness[S]) Operations() []string {
	ops := make([]string, 0, 3)
	if w.ops.Name != nil {
		ops = append(ops, "name")
	}
	ops = append(ops, "receive")
	if w.ops.Stop != nil {
		ops = append(ops, "stop")
	}
	return ops
}

// Construct wraps state in a handle tied to w.
func Construct[S any](w *Witness[S], state S) Task {
	return handle[S]{w: w, state: state}
}

// Extract returns the state held by t if t was built from w.
func Extract[S any](w *Witness[S], t Task) (S, bool) {
	h, ok := t.(handle[S])
	if !ok || h.w != w {
		var zero S
		return zero, false
	}
	return h.state, true
}

// Inspect returns the name of t and the operation table of its kind, without
// recovering the concrete state.
func Inspect(t Task) (string, Kind) {
	return t.Name(), t.kind()
}

type handle[S any] struct {
	w     *Witness[S]
	state S
}

func (h handle[S]) Name() string {
	if h.w.ops.Name == nil {
		return h.w.label
	}
	return h.w.ops.Name(h.state)
}

func (h handle[S]) Receive(msg proto.Message) Step {
	tr := h.w.ops.Receive(h.state, msg)
	if tr.Done {
		return Step{Out: tr.Out}
	}
	return Step{Out: tr.Out, Next: handle[S]{w: h.w, state: tr.State}}
}

func (h handle[S]) Stop() []proto.Message {
	if h.w.ops.Stop == nil {
		return nil
	}
	return h.w.ops.Stop(h.state)
}

func (h handle[S]) kind() Kind {
	return h.w
}
