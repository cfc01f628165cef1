package core

import "github.com/vovakirdan/wirechat-client/internal/proto"

// relay copies server text into the console window.
type relay struct {
	clock  Clock
	sink   Sink
	server Server
}

func (s relay) console(from *proto.Prefix, text string) {
	s.sink(NewMessage(Console, NewLine(s.clock, from, s.server, "%s", text)))
}

var errorKind = Inject("error", Ops[relay]{
	Receive: func(s relay, msg proto.Message) Transition[relay] {
		if msg.Command == proto.CmdError && len(msg.Params) > 0 {
			s.console(nil, msg.Trailing())
		}
		return Continue(s)
	},
})

var noticeKind = Inject("notice", Ops[relay]{
	Receive: func(s relay, msg proto.Message) Transition[relay] {
		switch msg.Command {
		case proto.CmdNotice:
			// NOTICE <dest> :<text>
			if len(msg.Params) >= 2 && proto.IsBroadcast(msg.Param(0)) {
				s.console(msg.Prefix, msg.Trailing())
			}
		case proto.RplMotdStart, proto.RplMotd:
			if len(msg.Params) > 0 {
				s.console(nil, msg.Trailing())
			}
		}
		return Continue(s)
	},
})

// Error builds the task relaying ERROR messages to the console.
func Error(clock Clock, sink Sink, srv Server) (Task, []proto.Message) {
	return Construct(errorKind, relay{clock: clock, sink: sink, server: srv}), nil
}

// Notice builds the task relaying broadcast notices and the MOTD to the console.
func Notice(clock Clock, sink Sink, srv Server) (Task, []proto.Message) {
	return Construct(noticeKind, relay{clock: clock, sink: sink, server: srv}), nil
}
