// Package lyrics implements Lyrics persistence.
package lyrics

import (
	"context"
	"time"

	postgres "github.com/aistomin/andys-backend/internal/adapter/postgres"
	"github.com/aistomin/andys-backend/internal/domain"
)

// Columns is exported for the video repository, which joins lyrics.
var Columns = []string{"id", "title", "text", "created_on", "published_on"}

// Row is the scany mapping of a lyrics row.
type Row struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	Text        *string    `db:"text"`
	CreatedOn   time.Time  `db:"created_on"`
	PublishedOn *time.Time `db:"published_on"`
}

// ToDomain converts the row into domain.Lyrics.
func (r Row) ToDomain() domain.Lyrics {
	return domain.Lyrics{
		ID:          r.ID,
		Title:       r.Title,
		Text:        r.Text,
		CreatedOn:   r.CreatedOn,
		PublishedOn: r.PublishedOn,
	}
}

// Repo provides Lyrics persistence backed by PostgreSQL.
type Repo struct {
	db    postgres.Querier
	table postgres.Table[Row]
}

// New creates a new lyrics repository.
func New(db postgres.Querier) *Repo {
	return &Repo{
		db:    db,
		table: postgres.Table[Row]{Name: "lyrics", Entity: "lyrics", Columns: Columns},
	}
}

func (r *Repo) List(ctx context.Context) ([]domain.Lyrics, error) {
	rows, err := r.table.List(ctx, postgres.QuerierFromCtx(ctx, r.db))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Lyrics, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Lyrics, error) {
	row, err := r.table.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), id)
	if err != nil {
		return nil, err
	}
	l := row.ToDomain()
	return &l, nil
}

func (r *Repo) Save(ctx context.Context, l domain.Lyrics) (*domain.Lyrics, error) {
	row, err := r.table.Save(ctx, postgres.QuerierFromCtx(ctx, r.db), l.ID, map[string]any{
		"title":        l.Title,
		"text":         l.Text,
		"created_on":   l.CreatedOn,
		"published_on": l.PublishedOn,
	})
	if err != nil {
		return nil, err
	}
	saved := row.ToDomain()
	return &saved, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	return r.table.Delete(ctx, postgres.QuerierFromCtx(ctx, r.db), id)
}
