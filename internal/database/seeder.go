package database

import (
	"context"
	"errors"

	"employee-portal/config"
	"employee-portal/internal/model"
	"employee-portal/internal/repository"
	"employee-portal/internal/usecase"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Demo employee created by SeedAll alongside the admin.
const (
	demoUsername = "employee"
	demoEmail    = "employee@example.com"
	demoPassword = "employee123"
)

// SeedAdmin makes sure the configured admin account exists.
func SeedAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	users := usecase.NewUserUsecase(repository.NewUserRepository(db), nil)

	admin, created, err := users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("username", admin.Username).Msg("admin account created")
	}
	return nil
}

// SeedAll seeds the admin and one regular employee for local use.
func SeedAll(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	// 1. Admin
	if err := SeedAdmin(ctx, db, cfg); err != nil {
		return err
	}

	// 2. Demo employee
	users := usecase.NewUserUsecase(repository.NewUserRepository(db), nil)
	_, err := users.Register(ctx, usecase.RegisterInput{
		Username: demoUsername,
		Email:    demoEmail,
		Password: demoPassword,
	})
	switch {
	case errors.Is(err, model.ErrUsernameTaken), errors.Is(err, model.ErrEmailTaken):
		log.Info().Str("username", demoUsername).Msg("demo employee already present")
	case err != nil:
		return err
	default:
		log.Info().Str("username", demoUsername).Msg("demo employee created")
	}
	return nil
}
