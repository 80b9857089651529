package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/syndicma/syndic-api/internal/config"
	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/repository"
	"github.com/syndicma/syndic-api/internal/services"
	"github.com/syndicma/syndic-api/pkg/logger"
	"github.com/syndicma/syndic-api/pkg/pg"
)

// Usage:
//
//	cli migrate [--env=.env] [--dir=./migrations]
//	cli create-admin [--env=.env] --username=admin --email=a@b.ma --password=secret
func main() {
	envPath := getArg("--env", ".env")
	if _, err := os.Stat(envPath); err != nil {
		envPath = ""
	}
	if err := config.Load(envPath); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	switch command() {
	case "migrate":
		migrate()
	case "create-admin":
		createAdmin()
	default:
		fmt.Println("usage: cli <migrate|create-admin> [flags]")
		os.Exit(2)
	}
}

func migrate() {
	pgConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}
	if err := pg.Migrate(pgConf, getArg("--dir", "./migrations")); err != nil {
		logger.Error("migration: error running migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("migration: done")
}

// createAdmin bootstraps the first account; after that, users are
// managed through the API.
func createAdmin() {
	username := getArg("--username", "")
	email := getArg("--email", "")
	password := getArg("--password", "")
	if username == "" || email == "" || password == "" {
		fmt.Println("usage: cli create-admin --username=... --email=... --password=...")
		os.Exit(2)
	}

	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}
	db, err := pg.CreateReadWrite(writeConf, writeConf, false)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, config.Get().JwtSecret,
		time.Duration(config.Get().JwtExpiryHours)*time.Hour)

	user, err := authService.Register(context.Background(), model.UserCreateRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     model.RoleAdmin,
	})
	if err != nil {
		logger.Error("failed creating admin", "error", err)
		os.Exit(1)
	}
	logger.Info("admin account created", "id", user.ID, "username", user.Username)
}

func command() string {
	for _, v := range os.Args[1:] {
		if !strings.HasPrefix(v, "-") {
			return v
		}
	}
	return ""
}

func getArg(name, fallback string) string {
	for _, v := range os.Args {
		if strings.HasPrefix(v, name+"=") {
			return strings.TrimPrefix(v, name+"=")
		}
	}
	return fallback
}
