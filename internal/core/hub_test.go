package core

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/wirechat-client/internal/proto"
)

type fakeMetrics struct {
	dispatched map[string]int
	outbound   map[string]int
	stopped    map[string]int
	live       int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		dispatched: map[string]int{},
		outbound:   map[string]int{},
		stopped:    map[string]int{},
	}
}

func (m *fakeMetrics) MessageDispatched(command string) { m.dispatched[command]++ }
func (m *fakeMetrics) OutboundQueued(command string)    { m.outbound[command]++ }
func (m *fakeMetrics) TaskStopped(kind string)          { m.stopped[kind]++ }
func (m *fakeMetrics) TasksLive(n int)                  { m.live = n }

// newSession registers the standard task set and returns the initial outbound messages.
func newSession(t *testing.T, hub *Hub, rec *recorder, nicks []string, channels ...string) []proto.Message {
	t.Helper()

	var out []proto.Message
	nick, nickOut, err := Nickname(fixedClock, rec.sink, testServer, nil, nicks)
	if err != nil {
		t.Fatalf("nickname: %v", err)
	}
	hub.Register(nick)
	out = append(out, nickOut...)

	errTask, _ := Error(fixedClock, rec.sink, testServer)
	hub.Register(errTask)
	notice, _ := Notice(fixedClock, rec.sink, testServer)
	hub.Register(notice)

	for _, name := range channels {
		ch, chOut, err := Channel(fixedClock, rec.sink, testServer, Uid("win-"+name), name)
		if err != nil {
			t.Fatalf("channel: %v", err)
		}
		hub.Register(ch)
		out = append(out, chOut...)
	}
	return out
}

func TestHubNicknameFallback(t *testing.T) {
	hub := NewHub(nil, nil)
	rec := &recorder{}
	out := newSession(t, hub, rec, []string{"alice", "bob"}, "#go")
	mustOut(t, out, "NICK alice", "JOIN #go")

	if got := hub.Nickname(); got != "alice" {
		t.Fatalf("expected alice, got %q", got)
	}

	out = hub.Dispatch(nickInUse("alice"))
	mustOut(t, out, "NICK bob")
	if got := hub.Nickname(); got != "bob" {
		t.Fatalf("expected bob, got %q", got)
	}

	out = hub.Dispatch(nickInUse("bob"))
	mustOut(t, out, "QUIT :All nicknames are taken")
	if hub.HasNickname() {
		t.Fatalf("nickname task must be removed after exhaustion")
	}
	if hub.Len() != 3 {
		t.Fatalf("expected 3 remaining tasks, got %d", hub.Len())
	}
}

func TestHubRemovesStoppedTaskImmediately(t *testing.T) {
	hub := NewHub(nil, nil)
	rec := &recorder{}
	newSession(t, hub, rec, []string{"alice"}, "#go", "#rust")
	rec.reset()

	out := hub.Dispatch(proto.New(proto.ErrNotRegistered, "*", "You have not registered"))
	mustOut(t, out)
	mustKinds(t, rec.actions,
		ActionSetStatus, ActionDeleteWindow,
		ActionSetStatus, ActionDeleteWindow,
	)
	if hub.Len() != 3 {
		t.Fatalf("expected channel tasks removed, got %d tasks", hub.Len())
	}

	rec.reset()
	hub.Dispatch(proto.New(proto.CmdPrivmsg, "#go", "hi").WithPrefix(&proto.Prefix{Nick: "bob"}))
	if len(rec.actions) != 0 {
		t.Fatalf("stopped channel task must not receive messages, got %+v", rec.actions)
	}
}

func TestHubDispatchOrder(t *testing.T) {
	hub := NewHub(nil, nil)
	rec := &recorder{}
	newSession(t, hub, rec, []string{"alice"}, "#go")
	rec.reset()

	hub.Dispatch(proto.New(proto.CmdError, "going down"))
	hub.Dispatch(proto.New(proto.CmdPrivmsg, "#go", "first").WithPrefix(&proto.Prefix{Nick: "bob"}))
	hub.Dispatch(proto.New(proto.CmdPrivmsg, "#go", "second").WithPrefix(&proto.Prefix{Nick: "bob"}))

	want := []struct {
		window Uid
		text   string
	}{
		{Console, "going down"},
		{"win-#go", "first"},
		{"win-#go", "second"},
	}
	if len(rec.actions) != len(want) {
		t.Fatalf("expected %d actions, got %+v", len(want), rec.actions)
	}
	for i, w := range want {
		if rec.actions[i].Window != w.window || rec.actions[i].Line.Text != w.text {
			t.Fatalf("action[%d]: expected %v %q, got %+v", i, w.window, w.text, rec.actions[i])
		}
	}
}

func TestHubLeave(t *testing.T) {
	hub := NewHub(nil, nil)
	rec := &recorder{}
	newSession(t, hub, rec, []string{"alice"}, "#go", "#rust")
	rec.reset()

	mustOut(t, hub.Leave("#GO"), "PART #go")
	mustKinds(t, rec.actions, ActionDeleteWindow)
	if hub.Len() != 4 {
		t.Fatalf("expected 4 tasks, got %d", hub.Len())
	}
	if out := hub.Leave("#go"); out != nil {
		t.Fatalf("second leave must be a no-op, got %v", out)
	}
}

func TestHubShutdown(t *testing.T) {
	metrics := newFakeMetrics()
	hub := NewHub(nil, metrics)
	rec := &recorder{}
	newSession(t, hub, rec, []string{"alice"}, "#go", "#rust")

	out := hub.Shutdown()
	mustOut(t, out, "PART #rust", "PART #go", "QUIT bye")
	if hub.Len() != 0 {
		t.Fatalf("expected empty hub, got %d", hub.Len())
	}
	if metrics.stopped["channel"] != 2 || metrics.stopped["nickname"] != 1 {
		t.Fatalf("unexpected stop counters: %v", metrics.stopped)
	}
	if metrics.outbound[proto.CmdPart] != 2 || metrics.live != 0 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

func TestHubSnapshot(t *testing.T) {
	hub := NewHub(nil, nil)
	rec := &recorder{}
	newSession(t, hub, rec, []string{"alice"}, "#go")

	got := hub.Snapshot()
	want := []TaskInfo{
		{Name: "nickname(alice)", Kind: "nickname", Operations: []string{"name", "receive", "stop"}},
		{Name: "error", Kind: "error", Operations: []string{"receive"}},
		{Name: "notice", Kind: "notice", Operations: []string{"receive"}},
		{Name: "channel(#go)", Kind: "channel", Operations: []string{"name", "receive", "stop"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestHubMetrics(t *testing.T) {
	metrics := newFakeMetrics()
	hub := NewHub(nil, metrics)
	rec := &recorder{}
	newSession(t, hub, rec, []string{"alice", "bob"})

	hub.Dispatch(nickInUse("alice"))
	if metrics.dispatched[proto.ErrNicknameInUse] != 1 {
		t.Fatalf("expected one dispatched 433, got %v", metrics.dispatched)
	}
	if metrics.outbound[proto.CmdNick] != 1 {
		t.Fatalf("expected one outbound NICK, got %v", metrics.outbound)
	}
	if metrics.live != 3 {
		t.Fatalf("expected 3 live tasks, got %d", metrics.live)
	}
}

func TestHubNicknamePanicsWhenMissing(t *testing.T) {
	hub := NewHub(nil, nil)
	errTask, _ := Error(fixedClock, (&recorder{}).sink, testServer)
	hub.Register(errTask)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	hub.Nickname()
}

func TestHubLookupNickname(t *testing.T) {
	hub := NewHub(nil, nil)
	rec := &recorder{}
	newSession(t, hub, rec, []string{"alice"})

	if nick, ok := hub.LookupNickname(); !ok || nick != "alice" {
		t.Fatalf("expected alice, got %q %v", nick, ok)
	}

	hub.Dispatch(nickInUse("alice"))
	if nick, ok := hub.LookupNickname(); ok || nick != "" {
		t.Fatalf("expected no nickname after exhaustion, got %q %v", nick, ok)
	}
}
