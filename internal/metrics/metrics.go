package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters exposed on /metrics. Attendance and notification throughput are
// the numbers operators actually watch; everything else comes from the
// default Go collectors.
var (
	AttendanceCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schoolsync_attendance_sessions_total",
		Help: "Number of attendance sessions captured.",
	})

	NoticesEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schoolsync_absence_notices_enqueued_total",
		Help: "Number of absence notices published to the outbox queue.",
	})

	NoticesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schoolsync_absence_notices_sent_total",
		Help: "Number of absence notices delivered by the worker.",
	})

	NoticesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schoolsync_absence_notices_failed_total",
		Help: "Number of absence notice deliveries that failed (including retries).",
	})

	NoticesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schoolsync_absence_notices_dropped_total",
		Help: "Number of absence notices dropped after exhausting retries.",
	})
)
