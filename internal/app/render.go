package app

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-client/internal/core"
)

// Renderer applies actions to a plain text stream, one chat line per row.
type Renderer struct {
	mu      sync.Mutex
	out     io.Writer
	windows map[core.Uid]string
	status  core.Status
	log     *zerolog.Logger
}

// NewRenderer creates a renderer with only the console window open.
func NewRenderer(out io.Writer, logger *zerolog.Logger) *Renderer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Renderer{
		out:     out,
		windows: map[core.Uid]string{core.Console: string(core.Console)},
		status:  core.StatusConnecting,
		log:     logger,
	}
}

// Apply is the action sink handed to every task.
func (r *Renderer) Apply(a core.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch a.Kind {
	case core.ActionNewMessage:
		name, ok := r.windows[a.Window]
		if !ok {
			r.log.Warn().Str("window", string(a.Window)).Msg("line for unknown window")
			name = string(a.Window)
		}
		from := "-!-"
		if !a.Line.System() {
			from = "<" + a.Line.From + ">"
		}
		fmt.Fprintf(r.out, "[%s] %s %s %s\n", name, a.Line.Time.Format("15:04:05"), from, a.Line.Text)
	case core.ActionNewWindow:
		r.windows[a.Window] = a.Name
		r.log.Debug().Str("window", string(a.Window)).Str("name", a.Name).Msg("window opened")
	case core.ActionDeleteWindow:
		r.log.Debug().Str("window", string(a.Window)).Str("name", r.windows[a.Window]).Msg("window closed")
		delete(r.windows, a.Window)
	case core.ActionSetStatus:
		r.status = a.Status
		r.log.Info().Stringer("status", a.Status).Msg("status changed")
	}
}

// Status returns the last status applied.
func (r *Renderer) Status() core.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Windows returns the number of open windows, console included.
func (r *Renderer) Windows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.windows)
}
