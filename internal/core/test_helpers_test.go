package core

import (
	"testing"
	"time"

	"github.com/vovakirdan/wirechat-client/internal/proto"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testTime }

var testServer = Server{Name: "irc.example.org", QuitMessage: "bye"}

type recorder struct {
	actions []Action
}

func (r *recorder) sink(a Action) {
	r.actions = append(r.actions, a)
}

func (r *recorder) reset() {
	r.actions = nil
}

func mustOut(t *testing.T, out []proto.Message, want ...string) {
	t.Helper()

	if len(out) != len(want) {
		t.Fatalf("expected %d outbound messages %v, got %d: %v", len(want), want, len(out), out)
	}
	for i := range want {
		if got := out[i].String(); got != want[i] {
			t.Fatalf("outbound[%d]: expected %q, got %q", i, want[i], got)
		}
	}
}

func mustKinds(t *testing.T, actions []Action, want ...ActionKind) {
	t.Helper()

	if len(actions) != len(want) {
		t.Fatalf("expected %d actions %v, got %d: %+v", len(want), want, len(actions), actions)
	}
	for i := range want {
		if actions[i].Kind != want[i] {
			t.Fatalf("action[%d]: expected %v, got %v", i, want[i], actions[i].Kind)
		}
	}
}

func nickInUse(nick string) proto.Message {
	return proto.New(proto.ErrNicknameInUse, "*", nick, "Nickname is already in use")
}
