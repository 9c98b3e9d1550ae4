package service

import (
	"context"
	"errors"

	"github.com/gorags/sewa-lapangan/internal/auth"
	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/gorags/sewa-lapangan/internal/repository"
	"github.com/gorags/sewa-lapangan/internal/validation"
	"github.com/gorags/sewa-lapangan/pkg/logger"
	"github.com/gorags/sewa-lapangan/pkg/metrics"
)

type AdminService interface {
	// Login returns the admin whose name or phone equals identifier and whose
	// stored digest verifies password. Any mismatch is ErrInvalidCredentials.
	Login(ctx context.Context, identifier, password string) (*domain.Admin, error)
	Create(ctx context.Context, nama, phone, password string) (*domain.Admin, error)
	CheckPassword(ctx context.Context, phone, password string) (bool, error)
}

type adminService struct {
	repo    repository.AdminRepository
	metrics *metrics.Metrics
}

func NewAdminService(repo repository.AdminRepository, m *metrics.Metrics) AdminService {
	return &adminService{repo: repo, metrics: m}
}

func (s *adminService) Login(ctx context.Context, identifier, password string) (*domain.Admin, error) {
	id, err := validation.Credentials(identifier, password)
	if err != nil {
		s.metrics.AdminLogins.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	a, err := s.repo.FindByIdentifier(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || !verify(ctx, password, a.PasswordHash) {
		s.metrics.AdminLogins.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	s.metrics.AdminLogins.WithLabelValues("success").Inc()
	return a, nil
}

func (s *adminService) Create(ctx context.Context, nama, phone, password string) (*domain.Admin, error) {
	if nama == "" || phone == "" || password == "" {
		return nil, &validation.FieldError{Field: "admin", Message: "name, phone and password are required"}
	}
	digest, err := auth.HashBcrypt(password)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &domain.Admin{Nama: nama, NomorTelepon: phone, PasswordHash: digest})
}

// CheckPassword reads the digest stored for phone back and verifies password
// against it.
func (s *adminService) CheckPassword(ctx context.Context, phone, password string) (bool, error) {
	a, err := s.repo.FindByPhone(ctx, phone)
	if err != nil || a == nil {
		return false, err
	}
	return verify(ctx, password, a.PasswordHash), nil
}

type CustomerService interface {
	Register(ctx context.Context, req domain.RegisterRequest) error
	Login(ctx context.Context, phone, password string) (*domain.Pelanggan, error)
}

type customerService struct {
	repo repository.PelangganRepository
}

func NewCustomerService(repo repository.PelangganRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Register(ctx context.Context, req domain.RegisterRequest) error {
	in, err := validation.Register(req)
	if err != nil {
		return err
	}
	digest, err := auth.HashArgon2id(in.Password)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, &domain.Pelanggan{
		NoTelp:        in.NoTelp,
		PasswordHash:  digest,
		NamaPelanggan: in.NamaPelanggan,
	})
}

func (s *customerService) Login(ctx context.Context, phone, password string) (*domain.Pelanggan, error) {
	id, err := validation.Credentials(phone, password)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	p, err := s.repo.FindByPhone(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !verify(ctx, password, p.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return p, nil
}

func verify(ctx context.Context, password, digest string) bool {
	ok, err := auth.Verify(password, digest)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownScheme) {
			logger.WarnContext(ctx, "Stored password digest has an unknown scheme")
		} else {
			logger.ErrorContext(ctx, "Password verification failed", "error", err)
		}
		return false
	}
	return ok
}
