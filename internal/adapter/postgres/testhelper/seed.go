package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aistomin/andys-backend/internal/domain"
)

// UniqueEmail returns an address that does not collide across parallel tests.
func UniqueEmail(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8] + "@example.com"
}

// SeedPerson inserts a Person with a unique address.
func SeedPerson(t *testing.T, pool *pgxpool.Pool, prefix string) domain.Person {
	t.Helper()

	p := domain.Person{
		Email:     UniqueEmail(prefix),
		CreatedOn: time.Now().UTC().Truncate(time.Microsecond),
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO persons (email, allow_newsletters, created_on) VALUES ($1, $2, $3) RETURNING id`,
		p.Email, p.AllowNewsletters, p.CreatedOn,
	).Scan(&p.ID)
	if err != nil {
		t.Fatalf("testhelper: seed person: %v", err)
	}
	return p
}

// SeedEmail inserts an EmailMessage row created at createdOn.
func SeedEmail(t *testing.T, pool *pgxpool.Pool, from, to domain.Person, subject, body string, createdOn time.Time) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO email_messages (dispatcher_id, receptor_id, subject, body, status, type, created_on)
		 VALUES ($1, $2, $3, $4, 'CREATED', 'CONTACT_REQUEST', $5) RETURNING id`,
		from.ID, to.ID, subject, body, createdOn,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed email: %v", err)
	}
	return id
}
