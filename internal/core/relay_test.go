package core

import (
	"testing"

	"github.com/vovakirdan/wirechat-client/internal/proto"
)

func TestErrorRelay(t *testing.T) {
	rec := &recorder{}
	task, out := Error(fixedClock, rec.sink, testServer)
	if len(out) != 0 {
		t.Fatalf("error task must not send on construction")
	}

	step := task.Receive(proto.New(proto.CmdError, "Closing Link: timeout"))
	if step.Stopped() || len(step.Out) != 0 {
		t.Fatalf("expected silent continuation, got %+v", step)
	}
	mustKinds(t, rec.actions, ActionNewMessage)
	if a := rec.actions[0]; a.Window != Console || a.Line.Text != "Closing Link: timeout" {
		t.Fatalf("unexpected action: %+v", a)
	}

	rec.reset()
	task.Receive(proto.New(proto.CmdError))
	if len(rec.actions) != 0 {
		t.Fatalf("ERROR without text must be ignored")
	}
}

func TestNoticeRelay(t *testing.T) {
	server := &proto.Prefix{Nick: "irc.example.org"}
	tests := []struct {
		name string
		msg  proto.Message
		want string
	}{
		{
			name: "broadcast notice",
			msg:  proto.New(proto.CmdNotice, "*", "*** Looking up your hostname").WithPrefix(server),
			want: "*** Looking up your hostname",
		},
		{
			name: "motd start",
			msg:  proto.New(proto.RplMotdStart, "alice", "- irc.example.org Message of the day -"),
			want: "- irc.example.org Message of the day -",
		},
		{
			name: "motd line",
			msg:  proto.New(proto.RplMotd, "alice", "- be nice"),
			want: "- be nice",
		},
		{
			name: "motd without client",
			msg:  proto.New(proto.RplMotd, "raw text"),
			want: "raw text",
		},
		{
			name: "multi destination notice",
			msg:  proto.New(proto.CmdNotice, "*,alice", "hello"),
		},
		{
			name: "notice to user",
			msg:  proto.New(proto.CmdNotice, "alice", "hello"),
		},
		{
			name: "unrelated",
			msg:  proto.New(proto.CmdPrivmsg, "*", "hello"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			task, _ := Notice(fixedClock, rec.sink, testServer)

			step := task.Receive(tt.msg)
			if step.Stopped() || len(step.Out) != 0 {
				t.Fatalf("expected silent continuation, got %+v", step)
			}
			if tt.want == "" {
				mustKinds(t, rec.actions)
				return
			}
			mustKinds(t, rec.actions, ActionNewMessage)
			if a := rec.actions[0]; a.Window != Console || a.Line.Text != tt.want {
				t.Fatalf("unexpected action: %+v", a)
			}
		})
	}
}

func TestNoticeKeepsSender(t *testing.T) {
	rec := &recorder{}
	task, _ := Notice(fixedClock, rec.sink, testServer)

	task.Receive(proto.New(proto.CmdNotice, "*", "hi").WithPrefix(&proto.Prefix{Nick: "irc.example.org"}))
	if got := rec.actions[0].Line.From; got != "irc.example.org" {
		t.Fatalf("expected sender irc.example.org, got %q", got)
	}
}
