package core

import (
	"fmt"
	"time"

	"github.com/vovakirdan/wirechat-client/internal/proto"
)

// Clock returns the current time. Tasks take it as a dependency so tests can pin it.
type Clock func() time.Time

// Server is the session context every task carries.
type Server struct {
	Name        string
	QuitMessage string
}

// Line is a rendering-ready chat line.
type Line struct {
	From   string // empty for system lines
	Server string
	Text   string
	Time   time.Time
}

// System reports whether the line has no sender.
func (l Line) System() bool {
	return l.From == ""
}

// NewLine formats a chat line stamped with clock. A nil from yields a system line.
func NewLine(clock Clock, from *proto.Prefix, srv Server, format string, args ...any) Line {
	line := Line{
		Server: srv.Name,
		Text:   fmt.Sprintf(format, args...),
		Time:   clock(),
	}
	if from != nil {
		line.From = from.Nick
	}
	return line
}
