package observability

import (
	"chat-relay/contract"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type fixedStats struct{ rooms, sessions int }

func (f fixedStats) Stats() (int, int) { return f.rooms, f.sessions }

func TestMetrics_Delivery(t *testing.T) {
	req := require.New(t)
	m := NewMetrics()

	m.Delivery("new_group_chat", contract.Delivery{Delivered: 3, Failed: 1})
	m.Delivery("new_group_chat", contract.Delivery{Delivered: 1})

	req.Equal(float64(4), testutil.ToFloat64(m.deliveries.WithLabelValues("new_group_chat", "delivered")))
	req.Equal(float64(1), testutil.ToFloat64(m.deliveries.WithLabelValues("new_group_chat", "failed")))
}

func TestMetrics_Sessions(t *testing.T) {
	m := NewMetrics()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	require.Equal(t, float64(1), testutil.ToFloat64(m.sessions))
}

func TestSnapshot(t *testing.T) {
	stats := Snapshot(fixedStats{rooms: 2, sessions: 5})
	require.Equal(t, 2, stats.Rooms)
	require.Equal(t, 5, stats.Sessions)
}

func TestMetrics_Maintenance(t *testing.T) {
	req := require.New(t)
	m := NewMetrics()

	m.ValueLogGC("noop")
	m.ValueLogGC("rewritten")
	m.ValueLogGC("noop")
	m.Process(64<<20, 12.5)

	req.Equal(float64(2), testutil.ToFloat64(m.valueLogGC.WithLabelValues("noop")))
	req.Equal(float64(64<<20), testutil.ToFloat64(m.processRSS))
	req.Equal(12.5, testutil.ToFloat64(m.processCPU))
}
