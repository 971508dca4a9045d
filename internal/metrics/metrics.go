package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"tutordesk/internal/academy"
)

// Recorder counts store operations by entity, op and outcome.
type Recorder struct {
	ops *prometheus.CounterVec
}

// NewRecorder registers the operation counter on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tutordesk",
		Name:      "operations_total",
		Help:      "Store operations by entity, operation and outcome.",
	}, []string{"entity", "op", "outcome"})
	reg.MustRegister(ops)
	return &Recorder{ops: ops}
}

// Observe implements academy.Recorder.
func (r *Recorder) Observe(entity, op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.ops.WithLabelValues(entity, op, outcome).Inc()
}

// SnapshotSource is anything that can hand out a consistent store snapshot.
type SnapshotSource interface {
	Snapshot() academy.Snapshot
}

var allStatuses = []academy.SessionStatus{
	academy.SessionScheduled,
	academy.SessionReady,
	academy.SessionInProgress,
	academy.SessionCompleted,
}

// StoreCollector reports collection sizes computed from a fresh snapshot on
// every scrape.
type StoreCollector struct {
	src      SnapshotSource
	sessions *prometheus.Desc
	students *prometheus.Desc
	staff    *prometheus.Desc
	rate     *prometheus.Desc
}

// NewStoreCollector creates a collector over src.
func NewStoreCollector(src SnapshotSource) *StoreCollector {
	return &StoreCollector{
		src:      src,
		sessions: prometheus.NewDesc("tutordesk_sessions", "Sessions by status.", []string{"status"}, nil),
		students: prometheus.NewDesc("tutordesk_students", "Students by status.", []string{"status"}, nil),
		staff:    prometheus.NewDesc("tutordesk_staff", "Staff members by status.", []string{"status"}, nil),
		rate:     prometheus.NewDesc("tutordesk_session_completion_percent", "Rounded share of completed sessions.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sessions
	ch <- c.students
	ch <- c.staff
	ch <- c.rate
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.src.Snapshot()

	bySession := map[academy.SessionStatus]int{}
	for _, s := range snap.Sessions {
		bySession[s.Status]++
	}
	for _, st := range allStatuses {
		ch <- prometheus.MustNewConstMetric(c.sessions, prometheus.GaugeValue, float64(bySession[st]), string(st))
	}

	byStudent := map[academy.Status]int{}
	for _, s := range snap.Students {
		byStudent[s.Status]++
	}
	byStaff := map[academy.Status]int{}
	for _, m := range snap.Staff {
		byStaff[m.Status]++
	}
	for _, st := range []academy.Status{academy.StatusActive, academy.StatusInactive} {
		ch <- prometheus.MustNewConstMetric(c.students, prometheus.GaugeValue, float64(byStudent[st]), string(st))
		ch <- prometheus.MustNewConstMetric(c.staff, prometheus.GaugeValue, float64(byStaff[st]), string(st))
	}

	ch <- prometheus.MustNewConstMetric(c.rate, prometheus.GaugeValue, float64(academy.CompletionRate(snap.Sessions)))
}
