package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/wirechat-client/internal/core"
)

// DiagHandlers serves read-only views of the task hub.
type DiagHandlers struct {
	hub TaskLister
}

// TasksResponse lists the registered tasks.
type TasksResponse struct {
	Nickname string          `json:"nickname,omitempty"`
	Tasks    []core.TaskInfo `json:"tasks"`
}

// Health handles liveness checks.
// GET /health
func (h *DiagHandlers) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Tasks lists the tasks registered in the hub.
// GET /tasks
func (h *DiagHandlers) Tasks(c *gin.Context) {
	resp := TasksResponse{Tasks: h.hub.Snapshot()}
	resp.Nickname, _ = h.hub.LookupNickname()
	c.JSON(http.StatusOK, resp)
}
