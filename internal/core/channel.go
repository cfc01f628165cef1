package core

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/wirechat-client/internal/proto"
)

// channel tracks one joined channel and its window.
type channel struct {
	clock  Clock
	window Uid
	name   string
	sink   Sink
	server Server
}

var channelKind = Inject("channel", Ops[channel]{
	Name: func(s channel) string {
		return fmt.Sprintf("channel(%s)", s.name)
	},
	Receive: receiveChannel,
	Stop: func(s channel) []proto.Message {
		s.sink(DeleteWindow(s.window))
		return []proto.Message{proto.New(proto.CmdPart, s.name)}
	},
})

// Channel opens a window for name and builds the task joining it.
func Channel(clock Clock, sink Sink, srv Server, window Uid, name string) (Task, []proto.Message, error) {
	if name == "" {
		return nil, nil, ErrNoChannel
	}
	s := channel{clock: clock, window: window, name: name, sink: sink, server: srv}
	sink(NewWindow(window, name))
	return Construct(channelKind, s), []proto.Message{proto.New(proto.CmdJoin, name)}, nil
}

func (s channel) say(from *proto.Prefix, format string, args ...any) {
	s.sink(NewMessage(s.window, NewLine(s.clock, from, s.server, format, args...)))
}

func receiveChannel(s channel, msg proto.Message) Transition[channel] {
	switch msg.Command {
	case proto.RplTopic:
		// 332 <client> <channel> :<topic>
		if len(msg.Params) >= 3 && proto.HasTarget(msg.Param(1), s.name) {
			s.say(nil, "Topic: %s", msg.Trailing())
		}
	case proto.RplNamReply:
		// 353 <client> <symbol> <channel> :<names>
		if len(msg.Params) >= 4 && proto.HasTarget(msg.Param(2), s.name) {
			s.say(nil, "Members: %s", strings.Join(memberNicks(msg.Trailing()), ", "))
		}
	case proto.ErrNotRegistered:
		s.sink(SetStatus(StatusError))
		s.sink(DeleteWindow(s.window))
		return Terminate[channel]()
	case proto.CmdPrivmsg:
		// PRIVMSG <targets> :<text>
		if len(msg.Params) >= 2 && proto.HasTarget(msg.Param(0), s.name) {
			s.say(msg.Prefix, "%s", msg.Trailing())
		}
	}
	return Continue(s)
}

// memberNicks strips membership prefixes from a names reply.
func memberNicks(names string) []string {
	fields := strings.Fields(names)
	nicks := make([]string, 0, len(fields))
	for _, f := range fields {
		if nick := strings.TrimLeft(f, "~&@%+"); nick != "" {
			nicks = append(nicks, nick)
		}
	}
	return nicks
}

// ChannelOf returns the channel name and window of t, if t is a channel task.
func ChannelOf(t Task) (string, Uid, bool) {
	s, ok := Extract(channelKind, t)
	if !ok {
		return "", "", false
	}
	return s.name, s.window, true
}
