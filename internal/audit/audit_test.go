package audit_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gorags/sewa-lapangan/internal/audit"
	"github.com/gorags/sewa-lapangan/pkg/events"
	"github.com/gorags/sewa-lapangan/pkg/logger"
	"github.com/gorags/sewa-lapangan/pkg/metrics"
)

func TestRecorder_Handle(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.New()
	rec := audit.NewRecorder(logger.New(&buf, "info"), m)

	data, _ := json.Marshal(events.SewaDeletedEvent{NomorTelepon: "08123456789", Tanggal: "2024-05-01", Rows: 1})
	rec.Handle(events.SewaDeleted, data)

	var line struct {
		Msg     string         `json:"msg"`
		Subject string         `json:"subject"`
		Event   map[string]any `json:"event"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
	}
	if line.Msg != "Booking event" || line.Subject != events.SewaDeleted {
		t.Fatalf("unexpected log line %+v", line)
	}
	if line.Event["tanggal"] != "2024-05-01" {
		t.Fatalf("event payload = %v", line.Event)
	}
	if got := testutil.ToFloat64(m.EventsReceived.WithLabelValues(events.SewaDeleted)); got != 1 {
		t.Fatalf("events received = %v", got)
	}
}

func TestRecorder_UndecodablePayload(t *testing.T) {
	var buf bytes.Buffer
	rec := audit.NewRecorder(logger.New(&buf, "info"), metrics.New())
	rec.Handle(events.SewaCreated, []byte("not json"))

	var line struct {
		Level string `json:"level"`
		Raw   string `json:"raw"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatal(err)
	}
	if line.Level != "WARN" || line.Raw != "not json" {
		t.Fatalf("unexpected log line %+v", line)
	}
}
