package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository interface {
	Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error)
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Admin, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Admin, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	const q = `INSERT INTO admin (nama, nomor_telepon, password) VALUES ($1,$2,$3)
	RETURNING id, nama, nomor_telepon, password`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var out domain.Admin
	err := r.pool.QueryRow(ctx, q, a.Nama, a.NomorTelepon, a.PasswordHash).
		Scan(&out.ID, &out.Nama, &out.NomorTelepon, &out.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return &out, nil
}

// FindByIdentifier matches identifier against name or phone. When several
// rows match, the oldest wins.
func (r *adminRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.Admin, error) {
	const q = `SELECT id, nama, nomor_telepon, password FROM admin
	WHERE nama=$1 OR nomor_telepon=$1 ORDER BY id LIMIT 1`
	return r.findOne(ctx, q, identifier)
}

func (r *adminRepository) FindByPhone(ctx context.Context, phone string) (*domain.Admin, error) {
	const q = `SELECT id, nama, nomor_telepon, password FROM admin
	WHERE nomor_telepon=$1 ORDER BY id LIMIT 1`
	return r.findOne(ctx, q, phone)
}

func (r *adminRepository) findOne(ctx context.Context, q string, arg string) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Admin
	err := r.pool.QueryRow(ctx, q, arg).Scan(&a.ID, &a.Nama, &a.NomorTelepon, &a.PasswordHash)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &a, nil
}
