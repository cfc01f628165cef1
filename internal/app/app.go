package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-client/internal/config"
	"github.com/vovakirdan/wirechat-client/internal/core"
	"github.com/vovakirdan/wirechat-client/internal/observability"
	"github.com/vovakirdan/wirechat-client/internal/proto"
	transporthttp "github.com/vovakirdan/wirechat-client/internal/transport/http"
	"github.com/vovakirdan/wirechat-client/internal/transport/ws"
	"github.com/vovakirdan/wirechat-client/internal/utils"
)

// Transport moves decoded messages between the hub and the gateway.
type Transport interface {
	Read(ctx context.Context) (proto.Message, error)
	Write(ctx context.Context, msgs ...proto.Message) error
	Close(reason string) error
}

type dialFunc func(ctx context.Context, url string, logger *zerolog.Logger) (Transport, error)

func dialGateway(ctx context.Context, url string, logger *zerolog.Logger) (Transport, error) {
	conn, err := ws.Dial(ctx, url, logger)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// App wires together the task hub, the gateway transport and diagnostics.
type App struct {
	cfg      config.Config
	hub      *core.Hub
	metrics  *observability.Metrics
	renderer *Renderer
	diag     *stdhttp.Server
	dial     dialFunc
	clock    core.Clock
	log      *zerolog.Logger
}

// New constructs the application with provided configuration. Chat lines are written to out.
func New(cfg config.Config, logger *zerolog.Logger, out io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	metrics := observability.NewMetrics("wirechat")
	hub := core.NewHub(logger, metrics)

	a := &App{
		cfg:      cfg,
		hub:      hub,
		metrics:  metrics,
		renderer: NewRenderer(out, logger),
		dial:     dialGateway,
		clock:    time.Now,
		log:      logger,
	}
	if cfg.DiagAddr != "" {
		a.diag = transporthttp.NewServer(cfg.DiagAddr, hub, metrics.Handler(), logger)
	}
	return a, nil
}

// Hub exposes the task hub.
func (a *App) Hub() *core.Hub {
	return a.hub
}

// Run connects to the gateway and dispatches messages until the context is
// cancelled, the gateway hangs up, or the nickname negotiation gives up.
func (a *App) Run(ctx context.Context) error {
	conn, err := a.dial(ctx, a.cfg.GatewayURL, a.log)
	if err != nil {
		return err
	}
	a.log.Info().Str("gateway", a.cfg.GatewayURL).Msg("connected to gateway")

	if a.diag != nil {
		go a.serveDiag()
		defer a.stopDiag()
	}

	// The connection outlives ctx so the shutdown messages can still be sent.
	connCtx, cancelConn := context.WithCancel(context.Background())
	defer cancelConn()

	closeReason := "internal error"
	defer func() {
		if err := conn.Close(closeReason); err != nil {
			a.log.Debug().Err(err).Msg("close gateway connection")
		}
	}()

	out, err := a.register()
	if err != nil {
		return err
	}
	if err := conn.Write(connCtx, out...); err != nil {
		return err
	}

	msgs := make(chan proto.Message)
	readErr := make(chan error, 1)
	go func() {
		for {
			msg, err := conn.Read(connCtx)
			if err != nil {
				readErr <- err
				return
			}
			select {
			case msgs <- msg:
			case <-connCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			closeReason = "quit"
			return a.shutdown(connCtx, conn)
		case err := <-readErr:
			if errors.Is(err, ws.ErrClosed) {
				closeReason = "bye"
				a.log.Info().Msg("gateway closed the session")
				return nil
			}
			return fmt.Errorf("session: %w", err)
		case msg := <-msgs:
			if err := conn.Write(connCtx, a.hub.Dispatch(msg)...); err != nil {
				return fmt.Errorf("session: %w", err)
			}
			if !a.hub.HasNickname() {
				closeReason = "quit"
				a.log.Warn().Msg("no nickname left, session ended")
				return nil
			}
		}
	}
}

// register builds the session tasks and returns their initial outbound messages.
func (a *App) register() ([]proto.Message, error) {
	srv := core.Server{Name: a.cfg.ServerName, QuitMessage: a.cfg.QuitMessage}
	sink := a.renderer.Apply

	var out []proto.Message
	nick, nickOut, err := core.Nickname(a.clock, sink, srv, nil, a.cfg.Nicknames)
	if err != nil {
		return nil, fmt.Errorf("nickname task: %w", err)
	}
	a.hub.Register(nick)
	out = append(out, nickOut...)

	errTask, errOut := core.Error(a.clock, sink, srv)
	a.hub.Register(errTask)
	out = append(out, errOut...)

	notice, noticeOut := core.Notice(a.clock, sink, srv)
	a.hub.Register(notice)
	out = append(out, noticeOut...)

	for _, name := range a.cfg.Channels {
		ch, chOut, err := core.Channel(a.clock, sink, srv, core.Uid(utils.NewID()), name)
		if err != nil {
			return nil, fmt.Errorf("channel task %q: %w", name, err)
		}
		a.hub.Register(ch)
		out = append(out, chOut...)
	}
	return out, nil
}

func (a *App) shutdown(parent context.Context, conn Transport) error {
	ctx, cancel := context.WithTimeout(parent, a.cfg.ShutdownTimeout)
	defer cancel()

	a.log.Info().Msg("shutting down session")
	return conn.Write(ctx, a.hub.Shutdown()...)
}

func (a *App) serveDiag() {
	a.log.Info().Str("addr", a.diag.Addr).Msg("diagnostics listening")
	if err := a.diag.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
		a.log.Error().Err(err).Msg("diagnostics server failed")
	}
}

func (a *App) stopDiag() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.diag.Shutdown(ctx); err != nil {
		a.log.Warn().Err(err).Msg("failed to stop diagnostics server")
	}
}
