// Package musicsheet implements MusicSheet persistence.
package musicsheet

import (
	"context"
	"time"

	postgres "github.com/aistomin/andys-backend/internal/adapter/postgres"
	"github.com/aistomin/andys-backend/internal/domain"
)

// Columns is exported for the video repository, which joins sheets.
var Columns = []string{"id", "title", "description", "preview_url", "download_url", "created_on", "published_on"}

// Row is the scany mapping of a music_sheets row.
type Row struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	PreviewURL  *string    `db:"preview_url"`
	DownloadURL *string    `db:"download_url"`
	CreatedOn   time.Time  `db:"created_on"`
	PublishedOn *time.Time `db:"published_on"`
}

// ToDomain converts the row into a domain.MusicSheet.
func (r Row) ToDomain() domain.MusicSheet {
	return domain.MusicSheet{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		PreviewURL:  r.PreviewURL,
		DownloadURL: r.DownloadURL,
		CreatedOn:   r.CreatedOn,
		PublishedOn: r.PublishedOn,
	}
}

// Repo provides MusicSheet persistence backed by PostgreSQL.
type Repo struct {
	db    postgres.Querier
	table postgres.Table[Row]
}

// New creates a new music sheet repository.
func New(db postgres.Querier) *Repo {
	return &Repo{
		db:    db,
		table: postgres.Table[Row]{Name: "music_sheets", Entity: "music sheet", Columns: Columns},
	}
}

func (r *Repo) List(ctx context.Context) ([]domain.MusicSheet, error) {
	rows, err := r.table.List(ctx, postgres.QuerierFromCtx(ctx, r.db))
	if err != nil {
		return nil, err
	}
	out := make([]domain.MusicSheet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.MusicSheet, error) {
	row, err := r.table.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), id)
	if err != nil {
		return nil, err
	}
	s := row.ToDomain()
	return &s, nil
}

func (r *Repo) Save(ctx context.Context, s domain.MusicSheet) (*domain.MusicSheet, error) {
	row, err := r.table.Save(ctx, postgres.QuerierFromCtx(ctx, r.db), s.ID, map[string]any{
		"title":        s.Title,
		"description":  s.Description,
		"preview_url":  s.PreviewURL,
		"download_url": s.DownloadURL,
		"created_on":   s.CreatedOn,
		"published_on": s.PublishedOn,
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
