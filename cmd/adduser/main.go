// Command adduser creates a user directly in the database, bypassing the
// HTTP admin gate. It exists so an operator can bootstrap the first admin.
package main

import (
	"context"
	"flag"
	"time"

	"golang.org/x/crypto/bcrypt"

	"notehub/internal/config"
	"notehub/internal/db"
	"notehub/internal/logger"
	"notehub/internal/model"
	"notehub/internal/repository"
)

func main() {
	log := logger.New()

	firstName := flag.String("first-name", "", "user first name")
	lastName := flag.String("last-name", "", "user last name")
	username := flag.String("username", "", "unique username")
	password := flag.String("password", "", "plaintext password, hashed before storage")
	role := flag.String("role", model.RoleUser, "ROLE_USER or ROLE_ADMIN")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal().Msg("username and password are required")
	}
	if *role != model.RoleUser && *role != model.RoleAdmin {
		log.Fatal().Str("role", *role).Msg("unknown role")
	}

	cfg := config.Load()
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Note{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}

	user := &model.User{
		FirstName:    *firstName,
		LastName:     *lastName,
		Username:     *username,
		PasswordHash: string(hash),
		Roles:        model.Roles{*role},
	}
	user.StampCreate(time.Now())

	repo := repository.NewUserRepository(gormDB)
	if err := repo.Create(context.Background(), user); err != nil {
		log.Fatal().Err(err).Msg("create user")
	}
	log.Info().Uint("id", user.ID).Str("username", user.Username).Msg("user created")
}
