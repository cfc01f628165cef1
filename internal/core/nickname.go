package core

import (
	"fmt"

	"github.com/vovakirdan/wirechat-client/internal/proto"
)

// QuitNoNickname is sent when every candidate nickname has been rejected.
const QuitNoNickname = "All nicknames are taken"

// nickname negotiates the session nickname. candidates is never empty while the
// task is alive; its head is the nickname currently attempted.
type nickname struct {
	candidates []string
	clock      Clock
	sink       Sink
	server     Server
	prefix     *proto.Prefix
}

var nicknameKind = Inject("nickname", Ops[nickname]{
	Name: func(s nickname) string {
		return fmt.Sprintf("nickname(%s)", s.current())
	},
	Receive: receiveNickname,
	Stop:    stopNickname,
})

// Nickname builds the nickname negotiation task and the first NICK attempt.
func Nickname(clock Clock, sink Sink, srv Server, prefix *proto.Prefix, candidates []string) (Task, []proto.Message, error) {
	if len(candidates) == 0 {
		return nil, nil, ErrNoNicknames
	}
	s := nickname{
		candidates: append([]string(nil), candidates...),
		clock:      clock,
		sink:       sink,
		server:     srv,
		prefix:     prefix,
	}
	return Construct(nicknameKind, s), []proto.Message{s.attempt()}, nil
}

func (s nickname) current() string {
	if len(s.candidates) == 0 {
		panic("core: nickname task has no candidates")
	}
	return s.candidates[0]
}

func (s nickname) attempt() proto.Message {
	return proto.New(proto.CmdNick, s.current()).WithPrefix(s.prefix)
}

// without returns the candidates minus name, and whether name was present.
func (s nickname) without(name string) ([]string, bool) {
	rest := make([]string, 0, len(s.candidates))
	found := false
	for _, c := range s.candidates {
		if !found && proto.NickEqual(c, name) {
			found = true
			continue
		}
		rest = append(rest, c)
	}
	return rest, found
}

func receiveNickname(s nickname, msg proto.Message) Transition[nickname] {
	if msg.Command != proto.ErrNicknameInUse {
		return Continue(s)
	}
	// 433 <client> <nick> :Nickname is already in use
	rejected := msg.Param(1)
	s.sink(NewMessage(Console, NewLine(s.clock, nil, s.server, "Nickname %s is already in use", rejected)))

	rest, found := s.without(rejected)
	if !found {
		return Continue(s)
	}
	if len(rest) == 0 {
		s.sink(SetStatus(StatusError))
		return Terminate[nickname](proto.New(proto.CmdQuit, QuitNoNickname).WithPrefix(s.prefix))
	}
	s.candidates = rest
	return Continue(s, s.attempt())
}

func stopNickname(s nickname) []proto.Message {
	quit := proto.New(proto.CmdQuit)
	if s.server.QuitMessage != "" {
		quit = proto.New(proto.CmdQuit, s.server.QuitMessage)
	}
	return []proto.Message{quit.WithPrefix(s.prefix)}
}

// NicknameOf returns the nickname currently attempted by t, if t negotiates nicknames.
func NicknameOf(t Task) (string, bool) {
	s, ok := Extract(nicknameKind, t)
	if !ok {
		return "", false
	}
	return s.current(), true
}

// CurrentNickname scans tasks for the nickname task and returns its current
// nickname. A session always registers one, so its absence panics.
func CurrentNickname(tasks []Task) string {
	for _, t := range tasks {
		if nick, ok := NicknameOf(t); ok {
			return nick
		}
	}
	panic("core: no nickname task registered")
}
