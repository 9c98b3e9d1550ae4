package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gorags/sewa-lapangan/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dbCfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MinConns = int32(dbCfg.MinConns)
	cfg.MaxConns = int32(dbCfg.MaxConns)
	cfg.MaxConnLifetime = dbCfg.MaxLifetime
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS sewa (
	id            BIGSERIAL PRIMARY KEY,
	nama          VARCHAR(100) NOT NULL,
	tanggal       DATE NOT NULL,
	jam_masuk     VARCHAR(16) NOT NULL,
	jam_keluar    VARCHAR(16) NOT NULL,
	nomor_telepon VARCHAR(13) NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT sewa_telepon_tanggal_key UNIQUE (nomor_telepon, tanggal)
);

CREATE INDEX IF NOT EXISTS sewa_tanggal_idx ON sewa (tanggal);

CREATE TABLE IF NOT EXISTS pelanggan (
	no_telp        VARCHAR(13) PRIMARY KEY,
	password       TEXT NOT NULL,
	nama_pelanggan VARCHAR(100) NOT NULL
);

CREATE TABLE IF NOT EXISTS admin (
	id            BIGSERIAL PRIMARY KEY,
	nama          VARCHAR(100) NOT NULL,
	nomor_telepon VARCHAR(13) NOT NULL,
	password      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rate_limits (
	rl_key       TEXT PRIMARY KEY,
	count        INTEGER NOT NULL,
	window_start TIMESTAMPTZ NOT NULL,
	expires_at   TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the tables the application needs when they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
