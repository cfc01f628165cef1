package core

// Uid identifies a conversation window.
type Uid string

// Console is the window holding system and status lines.
const Console Uid = "console"

// Status is the connection state shown by the UI.
type Status int

const (
	// StatusConnecting is shown until the session is usable.
	StatusConnecting Status = iota
	// StatusConnected means the session is registered and usable.
	StatusConnected
	// StatusError means the session hit a condition it cannot recover from.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ActionKind is a UI-facing event the core emits.
type ActionKind int

const (
	// ActionNewMessage appends a chat line to a window.
	ActionNewMessage ActionKind = iota
	// ActionNewWindow opens a conversation window.
	ActionNewWindow
	// ActionDeleteWindow closes a conversation window.
	ActionDeleteWindow
	// ActionSetStatus updates the connection status.
	ActionSetStatus
)

func (k ActionKind) String() string {
	switch k {
	case ActionNewMessage:
		return "new_message"
	case ActionNewWindow:
		return "new_window"
	case ActionDeleteWindow:
		return "delete_window"
	case ActionSetStatus:
		return "set_status"
	default:
		return "unknown"
	}
}

// Action describes what the UI should do. Only the fields relevant to Kind are set;
// build actions with the constructors below.
type Action struct {
	Kind   ActionKind
	Window Uid
	Line   Line   // ActionNewMessage
	Name   string // ActionNewWindow
	Status Status // ActionSetStatus
}

// Sink receives actions synchronously, in emission order.
type Sink func(Action)

// NewMessage appends line to window uid.
func NewMessage(uid Uid, line Line) Action {
	return Action{Kind: ActionNewMessage, Window: uid, Line: line}
}

// NewWindow opens window uid titled name.
func NewWindow(uid Uid, name string) Action {
	return Action{Kind: ActionNewWindow, Window: uid, Name: name}
}

// DeleteWindow closes window uid.
func DeleteWindow(uid Uid) Action {
	return Action{Kind: ActionDeleteWindow, Window: uid}
}

// SetStatus updates the connection status.
func SetStatus(status Status) Action {
	return Action{Kind: ActionSetStatus, Status: status}
}
