package observability

import (
	"chat-relay/contract"
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chat_relay"

// Metrics groups the collectors of the delivery core on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	sessions        prometheus.Gauge
	handshakes      *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
	messages        *prometheus.CounterVec
	groupChats      *prometheus.CounterVec
	attachmentBytes prometheus.Counter
	valueLogGC      *prometheus.CounterVec
	processRSS      prometheus.Gauge
	processCPU      prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Live sessions currently registered.",
		}),
		handshakes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handshakes_total",
			Help:      "Socket handshakes by outcome.",
		}, []string{"outcome"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_deliveries_total",
			Help:      "Event deliveries to sessions by event kind and outcome.",
		}, []string{"kind", "outcome"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_ingested_total",
			Help:      "Inbound chat messages by outcome.",
		}, []string{"outcome"}),
		groupChats: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "group_chats_total",
			Help:      "Group chat formations by outcome.",
		}, []string{"outcome"}),
		attachmentBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attachment_bytes_total",
			Help:      "Bytes written to attachment storage.",
		}),
		valueLogGC: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "value_log_gc_runs_total",
			Help:      "Store value log collections by outcome.",
		}, []string{"outcome"}),
		processRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_rss_bytes",
			Help:      "Resident memory of the relay process.",
		}),
		processCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_cpu_percent",
			Help:      "CPU usage of the relay process since its start.",
		}),
	}
	m.registry.MustRegister(m.sessions, m.handshakes, m.deliveries, m.messages, m.groupChats, m.attachmentBytes,
		m.valueLogGC, m.processRSS, m.processCPU,
		collectors.NewGoCollector())
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) SessionOpened() { m.sessions.Inc() }

func (m *Metrics) SessionClosed() { m.sessions.Dec() }

func (m *Metrics) Handshake(outcome string) { m.handshakes.WithLabelValues(outcome).Inc() }

func (m *Metrics) Delivery(kind string, d contract.Delivery) {
	m.deliveries.WithLabelValues(kind, "delivered").Add(float64(d.Delivered))
	m.deliveries.WithLabelValues(kind, "failed").Add(float64(d.Failed))
}

func (m *Metrics) MessageIngested(outcome string) { m.messages.WithLabelValues(outcome).Inc() }

func (m *Metrics) GroupChat(outcome string) { m.groupChats.WithLabelValues(outcome).Inc() }

func (m *Metrics) AttachmentWritten(n int) { m.attachmentBytes.Add(float64(n)) }

func (m *Metrics) ValueLogGC(outcome string) { m.valueLogGC.WithLabelValues(outcome).Inc() }

func (m *Metrics) Process(rss uint64, cpuPercent float64) {
	m.processRSS.Set(float64(rss))
	m.processCPU.Set(cpuPercent)
}

// MonitoringStats is the health snapshot served on /healthz.
type MonitoringStats struct {
	Rooms      int    `json:"rooms"`
	Sessions   int    `json:"sessions"`
	AllocMemMb uint64 `json:"alloc_mem_mb"`
	NumGC      uint32 `json:"num_gc"`
}

type statsSource interface {
	Stats() (rooms, sessions int)
}

func Snapshot(source statsSource) MonitoringStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	rooms, sessions := source.Stats()
	return MonitoringStats{
		Rooms:      rooms,
		Sessions:   sessions,
		AllocMemMb: mem.Alloc / 1024 / 1024,
		NumGC:      mem.NumGC,
	}
}
