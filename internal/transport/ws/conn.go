package ws

import (
	"context"
	"errors"
	"fmt"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-client/internal/proto"
)

// ErrClosed is returned by Read once the gateway closed the connection normally.
var ErrClosed = errors.New("gateway closed the connection")

// Conn carries decoded protocol messages to and from the gateway.
type Conn struct {
	conn *websocket.Conn
	log  *zerolog.Logger
}

// Dial connects to the gateway at url.
func Dial(ctx context.Context, url string, logger *zerolog.Logger) (*Conn, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return newConn(conn, logger), nil
}

func newConn(conn *websocket.Conn, logger *zerolog.Logger) *Conn {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Conn{conn: conn, log: logger}
}

// Read blocks until the next message arrives.
func (c *Conn) Read(ctx context.Context) (proto.Message, error) {
	var frame proto.Frame
	if err := wsjson.Read(ctx, c.conn, &frame); err != nil {
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			return proto.Message{}, ErrClosed
		}
		return proto.Message{}, fmt.Errorf("read frame: %w", err)
	}
	msg := frame.Message()
	c.log.Debug().Str("msg", msg.String()).Msg("<-")
	return msg, nil
}

// Write sends msgs in order and stops at the first failure.
func (c *Conn) Write(ctx context.Context, msgs ...proto.Message) error {
	for _, msg := range msgs {
		c.log.Debug().Str("msg", msg.String()).Msg("->")
		if err := wsjson.Write(ctx, c.conn, proto.FrameOf(msg)); err != nil {
			return fmt.Errorf("write %s: %w", msg.Command, err)
		}
	}
	return nil
}

// Close closes the connection with a normal closure status.
func (c *Conn) Close(reason string) error {
	return c.conn.Close(websocket.StatusNormalClosure, reason)
}
