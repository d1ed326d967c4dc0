// Command seedadmin creates the initial admin user. Safe to re-run; it
// refuses to overwrite an existing account with the same username.
//
// Usage: go run ./cmd/seedadmin -username admin -password <pw> -name "Office Admin" [-email admin@example.com]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"maktab/internal/config"
	"maktab/internal/domain"
	"maktab/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	fullName := flag.String("name", "Administrator", "admin display name")
	email := flag.String("email", "", "admin email address")
	flag.Parse()

	if *password == "" {
		return errors.New("password is required")
	}
	if len(*password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := postgres.NewUserRepo(db)
	if _, err := repo.GetByUsername(ctx, *username); err == nil {
		return fmt.Errorf("user %q already exists", *username)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     *username,
		PasswordHash: string(hash),
		FullName:     *fullName,
		Email:        *email,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Printf("admin user %q created (id=%s)", user.Username, user.ID)
	return nil
}
