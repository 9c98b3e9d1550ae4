package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PelangganRepository interface {
	Create(ctx context.Context, p *domain.Pelanggan) error
	FindByPhone(ctx context.Context, phone string) (*domain.Pelanggan, error)
}

type pelangganRepository struct {
	pool *pgxpool.Pool
}

func NewPelangganRepository(pool *pgxpool.Pool) PelangganRepository {
	return &pelangganRepository{pool: pool}
}

func (r *pelangganRepository) Create(ctx context.Context, p *domain.Pelanggan) error {
	const q = `INSERT INTO pelanggan (no_telp, password, nama_pelanggan) VALUES ($1,$2,$3)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, p.NoTelp, p.PasswordHash, p.NamaPelanggan)
	return insertError(err, domain.ErrDuplicateCustomer, "pelanggan")
}

func (r *pelangganRepository) FindByPhone(ctx context.Context, phone string) (*domain.Pelanggan, error) {
	const q = `SELECT no_telp, password, nama_pelanggan FROM pelanggan WHERE no_telp=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.Pelanggan
	err := r.pool.QueryRow(ctx, q, phone).Scan(&p.NoTelp, &p.PasswordHash, &p.NamaPelanggan)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find pelanggan: %w", err)
	}
	return &p, nil
}
