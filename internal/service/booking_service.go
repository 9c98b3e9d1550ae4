package service

import (
	"context"
	"errors"
	"time"

	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/gorags/sewa-lapangan/internal/repository"
	"github.com/gorags/sewa-lapangan/internal/validation"
	"github.com/gorags/sewa-lapangan/pkg/events"
	"github.com/gorags/sewa-lapangan/pkg/logger"
	"github.com/gorags/sewa-lapangan/pkg/metrics"
)

type BookingService interface {
	Create(ctx context.Context, req domain.SewaRequest) (*domain.Sewa, error)
	ListByDate(ctx context.Context, tanggal string) ([]domain.Sewa, error)
	ListAll(ctx context.Context) ([]domain.Sewa, error)
	GetByID(ctx context.Context, id int64) (*domain.Sewa, error)
	Exists(ctx context.Context, phone, tanggal string) (bool, error)
	Update(ctx context.Context, req domain.SewaRequest) (*domain.Sewa, error)
	Delete(ctx context.Context, phone, tanggal, jamMasuk, jamKeluar string) (int64, error)
}

type bookingService struct {
	repo     repository.SewaRepository
	eventBus events.Publisher
	metrics  *metrics.Metrics
}

func NewBookingService(repo repository.SewaRepository, eventBus events.Publisher, m *metrics.Metrics) BookingService {
	return &bookingService{repo: repo, eventBus: eventBus, metrics: m}
}

func (s *bookingService) reject(reason string) {
	s.metrics.BookingRejected.WithLabelValues(reason).Inc()
}

func (s *bookingService) Create(ctx context.Context, req domain.SewaRequest) (*domain.Sewa, error) {
	in, err := validation.Sewa(req)
	if err != nil {
		s.reject("validation")
		return nil, err
	}

	out, err := s.repo.Create(ctx, &in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateBooking) {
			s.reject("duplicate")
		}
		return nil, err
	}
	s.metrics.BookingsCreated.Inc()

	event := events.SewaCreatedEvent{
		ID:           out.ID,
		Nama:         out.Nama,
		Tanggal:      out.TanggalString(),
		JamMasuk:     out.JamMasuk,
		JamKeluar:    out.JamKeluar,
		NomorTelepon: out.NomorTelepon,
		CreatedAt:    out.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.SewaCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish sewa created event", "error", err, "sewa_id", out.ID)
	}
	return out, nil
}

func (s *bookingService) ListByDate(ctx context.Context, tanggal string) ([]domain.Sewa, error) {
	t, err := validation.Date(tanggal)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByDate(ctx, t)
}

func (s *bookingService) ListAll(ctx context.Context) ([]domain.Sewa, error) {
	return s.repo.ListAll(ctx)
}

func (s *bookingService) GetByID(ctx context.Context, id int64) (*domain.Sewa, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *bookingService) Exists(ctx context.Context, phone, tanggal string) (bool, error) {
	key, err := validation.Key(phone, tanggal, "", "")
	if err != nil {
		return false, err
	}
	b, err := s.repo.FindByPhoneAndDate(ctx, key.NomorTelepon, key.Tanggal)
	if err != nil {
		return false, err
	}
	return b != nil, nil
}

// Update applies the form's name and times to the booking at its (phone,
// date). A missing pair is ErrNotRegistered and nothing is written.
func (s *bookingService) Update(ctx context.Context, req domain.SewaRequest) (*domain.Sewa, error) {
	in, err := validation.Sewa(req)
	if err != nil {
		s.reject("validation")
		return nil, err
	}

	key := domain.SewaKey{NomorTelepon: in.NomorTelepon, Tanggal: in.Tanggal}
	patch := domain.SewaPatch{Nama: in.Nama, JamMasuk: in.JamMasuk, JamKeluar: in.JamKeluar}
	ok, err := s.repo.Update(ctx, key, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.reject("not_registered")
		return nil, domain.ErrNotRegistered
	}
	s.metrics.BookingsUpdated.Inc()

	event := events.SewaUpdatedEvent{
		NomorTelepon: in.NomorTelepon,
		Tanggal:      in.TanggalString(),
		Nama:         in.Nama,
		JamMasuk:     in.JamMasuk,
		JamKeluar:    in.JamKeluar,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.eventBus.Publish(ctx, events.SewaUpdated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish sewa updated event", "error", err)
	}
	return &in, nil
}

func (s *bookingService) Delete(ctx context.Context, phone, tanggal, jamMasuk, jamKeluar string) (int64, error) {
	key, err := validation.Key(phone, tanggal, jamMasuk, jamKeluar)
	if err != nil {
		s.reject("validation")
		return 0, err
	}

	n, err := s.repo.Delete(ctx, key)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		s.reject("not_found")
		return 0, domain.ErrNotFound
	}
	s.metrics.BookingsDeleted.Add(float64(n))

	event := events.SewaDeletedEvent{
		NomorTelepon: key.NomorTelepon,
		Tanggal:      key.Tanggal.Format(domain.DateLayout),
		Rows:         n,
		DeletedAt:    time.Now().UTC(),
	}
	if err := s.eventBus.Publish(ctx, events.SewaDeleted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish sewa deleted event", "error", err)
	}
	return n, nil
}
