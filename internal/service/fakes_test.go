package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gorags/sewa-lapangan/internal/domain"
)

// ---------- Mocks ----------

type pairKey struct {
	phone string
	date  string
}

type mockSewaRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Sewa
	err    error
}

func newMockSewaRepo() *mockSewaRepo {
	return &mockSewaRepo{nextID: 1, rows: make(map[int64]*domain.Sewa)}
}

func (m *mockSewaRepo) key(s *domain.Sewa) pairKey {
	return pairKey{s.NomorTelepon, s.TanggalString()}
}

func (m *mockSewaRepo) Create(_ context.Context, in *domain.Sewa) (*domain.Sewa, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.rows {
		if m.key(r) == m.key(in) {
			return nil, domain.ErrDuplicateBooking
		}
	}
	s := *in
	s.ID = m.nextID
	s.CreatedAt = time.Now()
	m.nextID++
	m.rows[s.ID] = &s
	out := s
	return &out, nil
}

func (m *mockSewaRepo) GetByID(_ context.Context, id int64) (*domain.Sewa, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rows[id]; ok {
		out := *r
		return &out, nil
	}
	return nil, m.err
}

func (m *mockSewaRepo) FindByPhoneAndDate(_ context.Context, phone string, t time.Time) (*domain.Sewa, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.NomorTelepon == phone && r.Tanggal.Equal(t) {
			out := *r
			return &out, nil
		}
	}
	return nil, m.err
}

func (m *mockSewaRepo) ListByDate(_ context.Context, t time.Time) ([]domain.Sewa, error) {
	return m.filter(func(s *domain.Sewa) bool { return s.Tanggal.Equal(t) }), m.err
}

func (m *mockSewaRepo) ListAll(context.Context) ([]domain.Sewa, error) {
	return m.filter(func(*domain.Sewa) bool { return true }), m.err
}

func (m *mockSewaRepo) filter(keep func(*domain.Sewa) bool) []domain.Sewa {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Sewa{}
	for _, r := range m.rows {
		if keep(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockSewaRepo) Update(_ context.Context, key domain.SewaKey, p domain.SewaPatch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	found := false
	for _, r := range m.rows {
		if r.NomorTelepon == key.NomorTelepon && r.Tanggal.Equal(key.Tanggal) {
			r.Nama, r.JamMasuk, r.JamKeluar = p.Nama, p.JamMasuk, p.JamKeluar
			found = true
		}
	}
	return found, nil
}

func (m *mockSewaRepo) Delete(_ context.Context, key domain.SewaKey) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for id, r := range m.rows {
		if r.NomorTelepon != key.NomorTelepon || !r.Tanggal.Equal(key.Tanggal) {
			continue
		}
		if key.JamMasuk != "" && r.JamMasuk != key.JamMasuk {
			continue
		}
		if key.JamKeluar != "" && r.JamKeluar != key.JamKeluar {
			continue
		}
		delete(m.rows, id)
		n++
	}
	return n, nil
}

func (m *mockSewaRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type mockAdminRepo struct {
	admins []domain.Admin
}

func (m *mockAdminRepo) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	out := *a
	out.ID = int64(len(m.admins) + 1)
	m.admins = append(m.admins, out)
	return &out, nil
}

func (m *mockAdminRepo) FindByIdentifier(_ context.Context, id string) (*domain.Admin, error) {
	for _, a := range m.admins {
		if a.Nama == id || a.NomorTelepon == id {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (m *mockAdminRepo) FindByPhone(_ context.Context, phone string) (*domain.Admin, error) {
	for _, a := range m.admins {
		if a.NomorTelepon == phone {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

type mockPelangganRepo struct {
	rows map[string]domain.Pelanggan
}

func newMockPelangganRepo() *mockPelangganRepo {
	return &mockPelangganRepo{rows: make(map[string]domain.Pelanggan)}
}

func (m *mockPelangganRepo) Create(_ context.Context, p *domain.Pelanggan) error {
	if _, ok := m.rows[p.NoTelp]; ok {
		return domain.ErrDuplicateCustomer
	}
	m.rows[p.NoTelp] = *p
	return nil
}

func (m *mockPelangganRepo) FindByPhone(_ context.Context, phone string) (*domain.Pelanggan, error) {
	if p, ok := m.rows[phone]; ok {
		return &p, nil
	}
	return nil, nil
}

type recordedEvent struct {
	subject string
	data    any
}

type mockPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, subject string, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, recordedEvent{subject, data})
	return m.err
}

func (m *mockPublisher) Close() error { return nil }
