package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/gorags/sewa-lapangan/pkg/database"
)

func TestInsertError(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "sewa_nomor_telepon_tanggal_key"}
	other := &pgconn.PgError{Code: "22021"}

	tests := []struct {
		name    string
		err     error
		want    error
		wrapped bool
	}{
		{"nil", nil, nil, false},
		{"unique violation", unique, domain.ErrDuplicateBooking, false},
		{"wrapped unique violation", fmt.Errorf("scan: %w", unique), domain.ErrDuplicateBooking, false},
		{"other pg error", other, other, true},
		{"plain error", context.DeadlineExceeded, context.DeadlineExceeded, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := insertError(tt.err, domain.ErrDuplicateBooking, "sewa")
			if tt.want == nil {
				if got != nil {
					t.Fatalf("got %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if tt.wrapped && errors.Is(got, domain.ErrDuplicateBooking) {
				t.Fatalf("%v must not map to a duplicate", tt.err)
			}
		})
	}
}

// testPool connects to SEWA_TEST_DATABASE_URL or skips.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("SEWA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("SEWA_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return pool
}

func TestSewaRepository_Postgres(t *testing.T) {
	pool := testPool(t)
	repo := NewSewaRepository(pool)
	ctx := context.Background()

	day := time.Date(2099, 1, 2, 0, 0, 0, 0, time.UTC)
	const phone = "0899000000001"
	key := domain.SewaKey{NomorTelepon: phone, Tanggal: day}
	cleanup := func() { _, _ = repo.Delete(ctx, key) }
	cleanup()
	t.Cleanup(cleanup)

	in := &domain.Sewa{Nama: "Agus", Tanggal: day, JamMasuk: "10:00", JamKeluar: "11:00", NomorTelepon: phone}
	if _, err := repo.Create(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("duplicate pair", func(t *testing.T) {
		if _, err := repo.Create(ctx, in); !errors.Is(err, domain.ErrDuplicateBooking) {
			t.Fatalf("err = %v, want ErrDuplicateBooking", err)
		}
	})

	t.Run("narrowed delete misses", func(t *testing.T) {
		n, err := repo.Delete(ctx, domain.SewaKey{NomorTelepon: phone, Tanggal: day, JamMasuk: "09:00"})
		if err != nil || n != 0 {
			t.Fatalf("Delete = %d, %v; want 0", n, err)
		}
		n, err = repo.Delete(ctx, domain.SewaKey{NomorTelepon: phone, Tanggal: day, JamKeluar: "12:00"})
		if err != nil || n != 0 {
			t.Fatalf("Delete = %d, %v; want 0", n, err)
		}
	})

	t.Run("narrowed delete matches", func(t *testing.T) {
		n, err := repo.Delete(ctx, domain.SewaKey{NomorTelepon: phone, Tanggal: day, JamMasuk: "10:00", JamKeluar: "11:00"})
		if err != nil || n != 1 {
			t.Fatalf("Delete = %d, %v; want 1", n, err)
		}
	})

	t.Run("unnarrowed delete", func(t *testing.T) {
		if _, err := repo.Create(ctx, in); err != nil {
			t.Fatalf("recreate: %v", err)
		}
		n, err := repo.Delete(ctx, key)
		if err != nil || n != 1 {
			t.Fatalf("Delete = %d, %v; want 1", n, err)
		}
	})
}
