package proto

// Frame is the JSON envelope exchanged with the gateway. The gateway owns the
// line grammar; frames carry messages already split into their parts.
type Frame struct {
	Prefix  *Prefix  `json:"prefix,omitempty"`
	Command string   `json:"command"`
	Params  []string `json:"params,omitempty"`
}

// FrameOf converts a message into its wire envelope.
func FrameOf(m Message) Frame {
	return Frame{Prefix: m.Prefix, Command: m.Command, Params: m.Params}
}

// Message converts the envelope back into a decoded message.
func (f Frame) Message() Message {
	return Message{Prefix: f.Prefix, Command: f.Command, Params: f.Params}
}
