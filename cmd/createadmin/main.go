// Command createadmin provisions one admin account from ADMIN_NAME,
// ADMIN_PHONE and ADMIN_PASSWORD, then checks the stored digest verifies.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/gorags/sewa-lapangan/internal/repository"
	"github.com/gorags/sewa-lapangan/internal/service"
	"github.com/gorags/sewa-lapangan/pkg/config"
	"github.com/gorags/sewa-lapangan/pkg/database"
	"github.com/gorags/sewa-lapangan/pkg/logger"
	"github.com/gorags/sewa-lapangan/pkg/metrics"
)

func main() {
	if err := run(); err != nil {
		logger.Error("Failed to create admin", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Admin.Password == "" {
		return errors.New("ADMIN_PASSWORD is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	admins := service.NewAdminService(repository.NewAdminRepository(pool), metrics.New())
	a, err := admins.Create(ctx, cfg.Admin.Name, cfg.Admin.Phone, cfg.Admin.Password)
	if err != nil {
		return err
	}
	logger.Info("Admin added", "admin_id", a.ID, "nama", a.Nama)

	ok, err := admins.CheckPassword(ctx, cfg.Admin.Phone, cfg.Admin.Password)
	if err != nil {
		return err
	}
	logger.Info("Password match result after insertion", "match", ok)
	if !ok {
		return errors.New("stored digest does not verify")
	}
	return nil
}
