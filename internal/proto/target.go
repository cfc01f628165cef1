package proto

import "strings"

// Targets splits a comma separated destination list.
func Targets(dest string) []string {
	if dest == "" {
		return nil
	}
	return strings.Split(dest, ",")
}

// HasTarget reports whether the destination list dest includes channel.
// Channel names compare case-insensitively.
func HasTarget(dest, channel string) bool {
	for _, t := range Targets(dest) {
		if FoldNick(t) == FoldNick(channel) {
			return true
		}
	}
	return false
}

// IsBroadcast reports whether dest addresses everyone. Destination lists with
// more than one entry never count as broadcast.
func IsBroadcast(dest string) bool {
	targets := Targets(dest)
	return len(targets) == 1 && targets[0] == Broadcast
}

// FoldNick normalizes a nickname or channel name using RFC 1459 case mapping.
func FoldNick(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == '[':
			return '{'
		case r == ']':
			return '}'
		case r == '\\':
			return '|'
		case r == '~':
			return '^'
		}
		return r
	}, name)
}

// NickEqual compares two nicknames in their normalized form.
func NickEqual(a, b string) bool {
	return FoldNick(a) == FoldNick(b)
}
