package proto

import "strings"

// Commands and numeric replies the client core understands.
const (
	CmdNick    = "NICK"
	CmdJoin    = "JOIN"
	CmdPart    = "PART"
	CmdQuit    = "QUIT"
	CmdPrivmsg = "PRIVMSG"
	CmdNotice  = "NOTICE"
	CmdError   = "ERROR"

	RplTopic         = "332"
	RplNamReply      = "353"
	RplMotd          = "372"
	RplMotdStart     = "375"
	ErrNicknameInUse = "433"
	ErrNotRegistered = "451"
)

// Broadcast is the destination servers use for notices addressed to everyone,
// typically before registration completes.
const Broadcast = "*"

// Prefix identifies the origin of a message.
type Prefix struct {
	Nick string `json:"nick"`
	User string `json:"user,omitempty"`
	Host string `json:"host,omitempty"`
}

// String renders the prefix as nick!user@host, omitting empty parts.
func (p Prefix) String() string {
	var b strings.Builder
	b.WriteString(p.Nick)
	if p.User != "" {
		b.WriteByte('!')
		b.WriteString(p.User)
	}
	if p.Host != "" {
		b.WriteByte('@')
		b.WriteString(p.Host)
	}
	return b.String()
}

// Message is an already decoded protocol message.
type Message struct {
	Prefix  *Prefix
	Command string
	Params  []string
}

// New builds a message without a prefix.
func New(command string, params ...string) Message {
	return Message{Command: command, Params: params}
}

// WithPrefix returns a copy of m carrying prefix.
func (m Message) WithPrefix(prefix *Prefix) Message {
	m.Prefix = prefix
	return m
}

// Param returns the i-th parameter or an empty string.
func (m Message) Param(i int) string {
	if i < 0 || i >= len(m.Params) {
		return ""
	}
	return m.Params[i]
}

// Trailing returns the last parameter, which carries the free-form text of most replies.
func (m Message) Trailing() string {
	if len(m.Params) == 0 {
		return ""
	}
	return m.Params[len(m.Params)-1]
}

// String renders the message in wire order for logs.
func (m Message) String() string {
	var b strings.Builder
	if m.Prefix != nil {
		b.WriteByte(':')
		b.WriteString(m.Prefix.String())
		b.WriteByte(' ')
	}
	b.WriteString(m.Command)
	for i, p := range m.Params {
		b.WriteByte(' ')
		if i == len(m.Params)-1 && (p == "" || strings.ContainsAny(p, " :") || p[0] == ':') {
			b.WriteByte(':')
		}
		b.WriteString(p)
	}
	return b.String()
}
