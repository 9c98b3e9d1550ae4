package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SewaRepository interface {
	Create(ctx context.Context, s *domain.Sewa) (*domain.Sewa, error)
	GetByID(ctx context.Context, id int64) (*domain.Sewa, error)
	FindByPhoneAndDate(ctx context.Context, phone string, tanggal time.Time) (*domain.Sewa, error)
	ListByDate(ctx context.Context, tanggal time.Time) ([]domain.Sewa, error)
	ListAll(ctx context.Context) ([]domain.Sewa, error)
	Update(ctx context.Context, key domain.SewaKey, patch domain.SewaPatch) (bool, error)
	Delete(ctx context.Context, key domain.SewaKey) (int64, error)
}

type sewaRepository struct {
	pool *pgxpool.Pool
}

func NewSewaRepository(pool *pgxpool.Pool) SewaRepository {
	return &sewaRepository{pool: pool}
}

const sewaCols = `id, nama, tanggal, jam_masuk, jam_keluar, nomor_telepon, created_at`

// uniqueViolation is the postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// insertError maps a unique violation to duplicate and wraps anything else.
func insertError(err, duplicate error, table string) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return duplicate
	default:
		return fmt.Errorf("insert %s: %w", table, err)
	}
}

func scanSewa(row pgx.Row, s *domain.Sewa) error {
	return row.Scan(&s.ID, &s.Nama, &s.Tanggal, &s.JamMasuk, &s.JamKeluar, &s.NomorTelepon, &s.CreatedAt)
}

func (r *sewaRepository) Create(ctx context.Context, in *domain.Sewa) (*domain.Sewa, error) {
	const q = `INSERT INTO sewa (nama, tanggal, jam_masuk, jam_keluar, nomor_telepon)
	VALUES ($1,$2,$3,$4,$5)
	RETURNING ` + sewaCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.Sewa
	err := scanSewa(r.pool.QueryRow(ctx, q, in.Nama, in.Tanggal, in.JamMasuk, in.JamKeluar, in.NomorTelepon), &s)
	if err := insertError(err, domain.ErrDuplicateBooking, "sewa"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sewaRepository) GetByID(ctx context.Context, id int64) (*domain.Sewa, error) {
	const q = `SELECT ` + sewaCols + ` FROM sewa WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.Sewa
	err := scanSewa(r.pool.QueryRow(ctx, q, id), &s)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sewa %d: %w", id, err)
	}
	return &s, nil
}

func (r *sewaRepository) FindByPhoneAndDate(ctx context.Context, phone string, tanggal time.Time) (*domain.Sewa, error) {
	const q = `SELECT ` + sewaCols + ` FROM sewa WHERE nomor_telepon=$1 AND tanggal=$2 ORDER BY id LIMIT 1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.Sewa
	err := scanSewa(r.pool.QueryRow(ctx, q, phone, tanggal), &s)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find sewa: %w", err)
	}
	return &s, nil
}

func (r *sewaRepository) ListByDate(ctx context.Context, tanggal time.Time) ([]domain.Sewa, error) {
	const q = `SELECT ` + sewaCols + ` FROM sewa WHERE tanggal=$1 ORDER BY id`
	return r.list(ctx, q, tanggal)
}

func (r *sewaRepository) ListAll(ctx context.Context) ([]domain.Sewa, error) {
	const q = `SELECT ` + sewaCols + ` FROM sewa ORDER BY tanggal, id`
	return r.list(ctx, q)
}

func (r *sewaRepository) list(ctx context.Context, q string, args ...any) ([]domain.Sewa, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sewa: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Sewa, 0)
	for rows.Next() {
		var s domain.Sewa
		if err := scanSewa(rows, &s); err != nil {
			return nil, fmt.Errorf("scan sewa: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of the booking at key. The affected row
// count is the only existence check.
func (r *sewaRepository) Update(ctx context.Context, key domain.SewaKey, patch domain.SewaPatch) (bool, error) {
	const q = `UPDATE sewa SET nama=$3, jam_masuk=$4, jam_keluar=$5
	WHERE nomor_telepon=$1 AND tanggal=$2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, key.NomorTelepon, key.Tanggal, patch.Nama, patch.JamMasuk, patch.JamKeluar)
	if err != nil {
		return false, fmt.Errorf("update sewa: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

// Delete removes bookings at (phone, date). Empty JamMasuk or JamKeluar on the
// key match any value.
func (r *sewaRepository) Delete(ctx context.Context, key domain.SewaKey) (int64, error) {
	const q = `DELETE FROM sewa
	WHERE nomor_telepon=$1 AND tanggal=$2
	  AND ($3::text = '' OR jam_masuk=$3::text)
	  AND ($4::text = '' OR jam_keluar=$4::text)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, key.NomorTelepon, key.Tanggal, key.JamMasuk, key.JamKeluar)
	if err != nil {
		return 0, fmt.Errorf("delete sewa: %w", err)
	}
	return ct.RowsAffected(), nil
}
