// Package person implements Person persistence.
package person

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/aistomin/andys-backend/internal/adapter/postgres"
	"github.com/aistomin/andys-backend/internal/domain"
)

var columns = []string{"id", "first_name", "last_name", "email", "allow_newsletters", "created_on"}

type row struct {
	ID               int64     `db:"id"`
	FirstName        *string   `db:"first_name"`
	LastName         *string   `db:"last_name"`
	Email            string    `db:"email"`
	AllowNewsletters bool      `db:"allow_newsletters"`
	CreatedOn        time.Time `db:"created_on"`
}

func (r row) toDomain() *domain.Person {
	return &domain.Person{
		ID:               r.ID,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		AllowNewsletters: r.AllowNewsletters,
		CreatedOn:        r.CreatedOn,
	}
}

// Repo provides Person persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new person repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a person by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	var out row
	query := postgres.Builder.Select(columns...).From("persons").Where(sq.Eq{"id": id})
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query); err != nil {
		return nil, postgres.MapError(err, "person", id)
	}
	return out.toDomain(), nil
}

// GetByEmail returns the person owning the address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	var out row
	query := postgres.Builder.Select(columns...).From("persons").Where(sq.Eq{"email": email})
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query); err != nil {
		return nil, postgres.MapError(err, "person", email)
	}
	return out.toDomain(), nil
}

// Create inserts a person. A taken address is ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, p domain.Person) (*domain.Person, error) {
	var out row
	query := postgres.Builder.Insert("persons").
		Columns("first_name", "last_name", "email", "allow_newsletters", "created_on").
		Values(p.FirstName, p.LastName, p.Email, p.AllowNewsletters, p.CreatedOn).
		Suffix("RETURNING id, first_name, last_name, email, allow_newsletters, created_on")
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query); err != nil {
		return nil, postgres.MapError(err, "person", p.Email)
	}
	return out.toDomain(), nil
}

// UpdateConsent overwrites the newsletter consent flag.
func (r *Repo) UpdateConsent(ctx context.Context, id int64, allow bool) (*domain.Person, error) {
	var out row
	query := postgres.Builder.Update("persons").
		Set("allow_newsletters", allow).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, first_name, last_name, email, allow_newsletters, created_on")
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query); err != nil {
		return nil, postgres.MapError(err, "person", id)
	}
	return out.toDomain(), nil
}
