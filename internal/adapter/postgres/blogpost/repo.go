// Package blogpost implements BlogPost persistence.
package blogpost

import (
	"context"
	"time"

	postgres "github.com/aistomin/andys-backend/internal/adapter/postgres"
	"github.com/aistomin/andys-backend/internal/domain"
)

type row struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	Text        *string    `db:"text"`
	CreatedOn   time.Time  `db:"created_on"`
	PublishedOn *time.Time `db:"published_on"`
}

func (r row) toDomain() domain.BlogPost {
	return domain.BlogPost{
		ID:          r.ID,
		Title:       r.Title,
		Text:        r.Text,
		CreatedOn:   r.CreatedOn,
		PublishedOn: r.PublishedOn,
	}
}

// Repo provides BlogPost persistence backed by PostgreSQL.
type Repo struct {
	db    postgres.Querier
	table postgres.Table[row]
}

// New creates a new blog post repository.
func New(db postgres.Querier) *Repo {
	return &Repo{
		db: db,
		table: postgres.Table[row]{
			Name:    "blog_posts",
			Entity:  "blog post",
			Columns: []string{"id", "title", "text", "created_on", "published_on"},
		},
	}
}

func (r *Repo) List(ctx context.Context) ([]domain.BlogPost, error) {
	rows, err := r.table.List(ctx, postgres.QuerierFromCtx(ctx, r.db))
	if err != nil {
		return nil, err
	}
	out := make([]domain.BlogPost, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.BlogPost, error) {
	row, err := r.table.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), id)
	if err != nil {
		return nil, err
	}
	p := row.toDomain()
	return &p, nil
}

func (r *Repo) Save(ctx context.Context, p domain.BlogPost) (*domain.BlogPost, error) {
	row, err := r.table.Save(ctx, postgres.QuerierFromCtx(ctx, r.db), p.ID, map[string]any{
		"title":        p.Title,
		"text":         p.Text,
		"created_on":   p.CreatedOn,
		"published_on": p.PublishedOn,
	})
	if err != nil {
		return nil, err
	}
	saved := row.toDomain()
	return &saved, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	return r.table.Delete(ctx, postgres.QuerierFromCtx(ctx, r.db), id)
}
