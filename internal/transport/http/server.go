package http

import (
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-client/internal/core"
)

// TaskLister is the part of core.Hub the diagnostics server reads.
type TaskLister interface {
	Snapshot() []core.TaskInfo
	LookupNickname() (string, bool)
}

// NewServer builds the diagnostics HTTP server. metrics and logger may be nil.
func NewServer(addr string, hub TaskLister, metrics stdhttp.Handler, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              addr,
		Handler:           NewRouter(hub, metrics, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// NewRouter registers the diagnostics routes.
func NewRouter(hub TaskLister, metrics stdhttp.Handler, logger *zerolog.Logger) *gin.Engine {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), LoggerMiddleware(logger))

	h := &DiagHandlers{hub: hub}
	r.GET("/health", h.Health)
	r.GET("/tasks", h.Tasks)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}
	return r
}
