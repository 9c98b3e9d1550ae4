package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorags/sewa-lapangan/pkg/logger"
	"github.com/nats-io/nats.go"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("sewa-lapangan"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

// Subscribe delivers every message on subject to h. NATS wildcards such as
// SewaAll are accepted.
func (n *NATSPublisher) Subscribe(subject string, h func(subject string, data []byte)) (*nats.Subscription, error) {
	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) { h(msg.Subject, msg.Data) })
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	return sub, nil
}

func (n *NATSPublisher) Close() error {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return err
	}
	return nil
}

// NopPublisher drops every event. Used when no NATS_URL is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NopPublisher) Close() error                                       { return nil }

// Connect returns a NATS publisher for url, or a NopPublisher when url is empty.
func Connect(url string) (Publisher, error) {
	if url == "" {
		return NopPublisher{}, nil
	}
	return NewNATSPublisher(url)
}

const (
	SewaCreated = "sewa.created"
	SewaUpdated = "sewa.updated"
	SewaDeleted = "sewa.deleted"

	// SewaAll matches every booking lifecycle subject.
	SewaAll = "sewa.>"
)

type SewaCreatedEvent struct {
	ID           int64     `json:"id"`
	Nama         string    `json:"nama"`
	Tanggal      string    `json:"tanggal"`
	JamMasuk     string    `json:"jam_masuk"`
	JamKeluar    string    `json:"jam_keluar"`
	NomorTelepon string    `json:"nomor_telepon"`
	CreatedAt    time.Time `json:"created_at"`
}

type SewaUpdatedEvent struct {
	NomorTelepon string    `json:"nomor_telepon"`
	Tanggal      string    `json:"tanggal"`
	Nama         string    `json:"nama"`
	JamMasuk     string    `json:"jam_masuk"`
	JamKeluar    string    `json:"jam_keluar"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SewaDeletedEvent struct {
	NomorTelepon string    `json:"nomor_telepon"`
	Tanggal      string    `json:"tanggal"`
	Rows         int64     `json:"rows"`
	DeletedAt    time.Time `json:"deleted_at"`
}
