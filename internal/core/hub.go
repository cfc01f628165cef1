package core

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-client/internal/proto"
)

// Metrics receives dispatcher counters. observability.Metrics implements it.
type Metrics interface {
	MessageDispatched(command string)
	OutboundQueued(command string)
	TaskStopped(kind string)
	TasksLive(n int)
}

// TaskInfo is the diagnostic view of one registered task.
type TaskInfo struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Operations []string `json:"operations"`
}

// Hub owns the task list and feeds every incoming message to each task in
// registration order. Actions emitted by tasks go straight to their sink, which
// must not call back into the hub.
type Hub struct {
	mu      sync.Mutex
	tasks   []Task
	log     *zerolog.Logger
	metrics Metrics
}

// NewHub creates an empty hub. Both logger and metrics may be nil.
func NewHub(logger *zerolog.Logger, metrics Metrics) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{log: logger, metrics: metrics}
}

// Register appends t to the task list.
func (h *Hub) Register(t Task) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.tasks = append(h.tasks, t)
	name, kind := Inspect(t)
	h.log.Info().Str("task", name).Str("kind", kind.Label()).Msg("task registered")
	h.observeLive()
}

// Dispatch feeds msg to every task and returns the outbound messages in
// emission order. Stopped tasks are dropped before the next dispatch.
func (h *Hub) Dispatch(msg proto.Message) []proto.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.log.Debug().Str("command", msg.Command).Str("msg", msg.String()).Msg("dispatch")
	if h.metrics != nil {
		h.metrics.MessageDispatched(msg.Command)
	}

	var out []proto.Message
	next := make([]Task, 0, len(h.tasks))
	for _, t := range h.tasks {
		step := t.Receive(msg)
		out = append(out, step.Out...)
		if step.Stopped() {
			h.stopped(t)
			continue
		}
		next = append(next, step.Next)
	}
	h.tasks = next
	h.observeOut(out)
	h.observeLive()
	return out
}

// Nickname returns the nickname currently attempted by the session. It panics
// if no nickname task is registered.
func (h *Hub) Nickname() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return CurrentNickname(h.tasks)
}

// HasNickname reports whether a nickname task is still registered.
func (h *Hub) HasNickname() bool {
	_, ok := h.LookupNickname()
	return ok
}

// LookupNickname returns the current nickname, or false once the nickname task
// has stopped. Unlike Nickname it never panics.
func (h *Hub) LookupNickname() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range h.tasks {
		if nick, ok := NicknameOf(t); ok {
			return nick, true
		}
	}
	return "", false
}

// Leave stops the task bound to channel and returns its final messages. It
// returns nil when no such task is registered.
func (h *Hub) Leave(channel string) []proto.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, t := range h.tasks {
		name, _, ok := ChannelOf(t)
		if !ok || !proto.NickEqual(name, channel) {
			continue
		}
		out := t.Stop()
		h.tasks = append(h.tasks[:i:i], h.tasks[i+1:]...)
		h.stopped(t)
		h.observeOut(out)
		h.observeLive()
		return out
	}
	return nil
}

// Shutdown stops every task, most recently registered first, and empties the hub.
func (h *Hub) Shutdown() []proto.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []proto.Message
	for i := len(h.tasks) - 1; i >= 0; i-- {
		out = append(out, h.tasks[i].Stop()...)
		h.stopped(h.tasks[i])
	}
	h.tasks = nil
	h.observeOut(out)
	h.observeLive()
	return out
}

// Snapshot describes every registered task.
func (h *Hub) Snapshot() []TaskInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	infos := make([]TaskInfo, 0, len(h.tasks))
	for _, t := range h.tasks {
		name, kind := Inspect(t)
		infos = append(infos, TaskInfo{Name: name, Kind: kind.Label(), Operations: kind.Operations()})
	}
	return infos
}

// Len returns the number of registered tasks.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tasks)
}

func (h *Hub) stopped(t Task) {
	name, kind := Inspect(t)
	h.log.Info().Str("task", name).Str("kind", kind.Label()).Msg("task stopped")
	if h.metrics != nil {
		h.metrics.TaskStopped(kind.Label())
	}
}

func (h *Hub) observeOut(out []proto.Message) {
	if h.metrics == nil {
		return
	}
	for _, m := range out {
		h.metrics.OutboundQueued(m.Command)
	}
}

func (h *Hub) observeLive() {
	if h.metrics != nil {
		h.metrics.TasksLive(len(h.tasks))
	}
}
