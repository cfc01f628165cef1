package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the Prometheus instruments of the task hub.
type Metrics struct {
	registry *prometheus.Registry

	Dispatched   *prometheus.CounterVec
	Outbound     *prometheus.CounterVec
	TasksStopped *prometheus.CounterVec
	LiveTasks    prometheus.Gauge
}

func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Dispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_dispatched_total",
			Help:      "Incoming protocol messages dispatched to tasks, by command.",
		}, []string{"command"}),
		Outbound: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbound_messages_total",
			Help:      "Outbound protocol messages produced by tasks, by command.",
		}, []string{"command"}),
		TasksStopped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_stopped_total",
			Help:      "Tasks removed from the hub, by kind.",
		}, []string{"kind"}),
		LiveTasks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_tasks",
			Help:      "Number of tasks registered in the hub.",
		}),
	}
}

func (m *Metrics) MessageDispatched(command string) {
	m.Dispatched.WithLabelValues(command).Inc()
}

func (m *Metrics) OutboundQueued(command string) {
	m.Outbound.WithLabelValues(command).Inc()
}

func (m *Metrics) TaskStopped(kind string) {
	m.TasksStopped.WithLabelValues(kind).Inc()
}

func (m *Metrics) TasksLive(n int) {
	m.LiveTasks.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
