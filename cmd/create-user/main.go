// Command create-user creates an editor account or resets its password.
// It is used to recover access when no account can sign in.
//
// Usage:
//
//	create-user -username=admin -password=secret
//
// Requires DATABASE_DSN environment variable to be set. AUTH_BCRYPT_COST
// overrides the hashing cost.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	userrepo "github.com/aistomin/andys-backend/internal/adapter/postgres/user"
	"github.com/aistomin/andys-backend/internal/service/user"
)

func main() {
	username := flag.String("username", "", "account username")
	password := flag.String("password", "", "new password")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Usage: create-user -username=admin -password=secret")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	cost := bcrypt.DefaultCost
	if v := os.Getenv("AUTH_BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("AUTH_BCRYPT_COST: %v", err)
		}
		cost = n
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	svc := user.NewService(logger, userrepo.New(pool), cost)

	u, err := svc.ResetPassword(ctx, user.CredentialsInput{Username: *username, Password: *password})
	if err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("User %q (id %d) is ready.\n", u.Username, u.ID)
}
