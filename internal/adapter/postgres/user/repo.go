// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/aistomin/andys-backend/internal/adapter/postgres"
	"github.com/aistomin/andys-backend/internal/domain"
)

type row struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	CreatedOn time.Time `db:"created_on"`
}

func (r row) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.Password,
		CreatedOn:    r.CreatedOn,
	}
}

var table = postgres.Table[row]{
	Name:    "users",
	Entity:  "user",
	Columns: []string{"id", "username", "password", "created_on"},
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// List returns all users ordered by id.
func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := table.List(ctx, postgres.QuerierFromCtx(ctx, r.db))
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row, err := table.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), id)
	if err != nil {
		return nil, err
	}
	u := row.toDomain()
	return &u, nil
}

// GetByUsername returns a user by username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var out row
	query := postgres.Builder.Select(table.Columns...).From(table.Name).Where(sq.Eq{"username": username})
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query); err != nil {
		return nil, postgres.MapError(err, "user", username)
	}
	u := out.toDomain()
	return &u, nil
}

// Create inserts u. A taken username is ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	row, err := table.Insert(ctx, postgres.QuerierFromCtx(ctx, r.db), values(u))
	if err != nil {
		return nil, err
	}
	created := row.toDomain()
	return &created, nil
}

// Update overwrites the stored user with the same id.
func (r *Repo) Update(ctx context.Context, u domain.User) (*domain.User, error) {
	row, err := table.Update(ctx, postgres.QuerierFromCtx(ctx, r.db), u.ID, values(u))
	if err != nil {
		return nil, err
	}
	updated := row.toDomain()
	return &updated, nil
}

// Delete removes a user. A missing user is ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	return table.Delete(ctx, postgres.QuerierFromCtx(ctx, r.db), id)
}

func values(u domain.User) map[string]any {
	return map[string]any{
		"username":   u.Username,
		"password":   u.PasswordHash,
		"created_on": u.CreatedOn,
	}
}
