// Package audit records booking lifecycle events as structured log lines.
package audit

import (
	"encoding/json"
	"log/slog"

	"github.com/gorags/sewa-lapangan/pkg/metrics"
)

type Recorder struct {
	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewRecorder(log *slog.Logger, m *metrics.Metrics) *Recorder {
	return &Recorder{log: log, metrics: m}
}

// Handle logs one event. Payloads that are not JSON objects are logged raw
// at warn level.
func (r *Recorder) Handle(subject string, data []byte) {
	r.metrics.EventsReceived.WithLabelValues(subject).Inc()

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		r.log.Warn("Undecodable booking event", "subject", subject, "raw", string(data), "error", err)
		return
	}
	r.log.Info("Booking event", "subject", subject, "event", payload)
}
