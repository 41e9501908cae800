// Package video implements Video persistence together with the music
// sheets and lyrics linked to each video.
package video

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/aistomin/andys-backend/internal/adapter/postgres"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/lyrics"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/musicsheet"
	"github.com/aistomin/andys-backend/internal/domain"
)

type row struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	URL         string     `db:"url"`
	YoutubeID   string     `db:"youtube_id"`
	CreatedOn   time.Time  `db:"created_on"`
	PublishedOn *time.Time `db:"published_on"`
}

type sheetRow struct {
	VideoID int64 `db:"video_id"`
	musicsheet.Row
}

type lyricsRow struct {
	VideoID int64 `db:"video_id"`
	lyrics.Row
}

// Repo provides Video persistence backed by PostgreSQL. Run Save inside
// TxManager.RunInTx so the row and its links change atomically.
type Repo struct {
	db    postgres.Querier
	table postgres.Table[row]
}

// New creates a new video repository.
func New(db postgres.Querier) *Repo {
	return &Repo{
		db: db,
		table: postgres.Table[row]{
			Name:    "videos",
			Entity:  "video",
			Columns: []string{"id", "title", "description", "url", "youtube_id", "created_on", "published_on"},
		},
	}
}

// List returns all videos with their sheets and lyrics.
func (r *Repo) List(ctx context.Context) ([]domain.Video, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := r.table.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return r.withLinks(ctx, q, rows)
}

// GetByID returns one video with its sheets and lyrics.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Video, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rw, err := r.table.Get(ctx, q, id)
	if err != nil {
		return nil, err
	}
	videos, err := r.withLinks(ctx, q, []row{rw})
	if err != nil {
		return nil, err
	}
	return &videos[0], nil
}

// Save upserts the video and replaces its sheet and lyrics links with the
// ids found in v.Sheets and v.Lyrics. Linking an unknown id is ErrNotFound.
func (r *Repo) Save(ctx context.Context, v domain.Video) (*domain.Video, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rw, err := r.table.Save(ctx, q, v.ID, map[string]any{
		"title":        v.Title,
		"description":  v.Description,
		"url":          v.URL,
		"youtube_id":   v.YoutubeID,
		"created_on":   v.CreatedOn,
		"published_on": v.PublishedOn,
	})
	if err != nil {
		return nil, err
	}

	sheetIDs := make([]int64, 0, len(v.Sheets))
	for _, s := range v.Sheets {
		sheetIDs = append(sheetIDs, s.ID)
	}
	if err := r.replaceLinks(ctx, q, "video_sheets", "sheet_id", rw.ID, sheetIDs); err != nil {
		return nil, err
	}

	lyricsIDs := make([]int64, 0, len(v.Lyrics))
	for _, l := range v.Lyrics {
		lyricsIDs = append(lyricsIDs, l.ID)
	}
	if err := r.replaceLinks(ctx, q, "video_lyrics", "lyrics_id", rw.ID, lyricsIDs); err != nil {
		return nil, err
	}

	videos, err := r.withLinks(ctx, q, []row{rw})
	if err != nil {
		return nil, err
	}
	return &videos[0], nil
}

// Delete removes the video. Linked sheets and lyrics are kept.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	return r.table.Delete(ctx, postgres.QuerierFromCtx(ctx, r.db), id)
}

// replaceLinks rewrites the join rows of one video. A sheet or lyrics row
// can belong to a single video, so linking it here moves it.
func (r *Repo) replaceLinks(ctx context.Context, q postgres.Querier, table, column string, videoID int64, ids []int64) error {
	if _, err := postgres.Exec(ctx, q, postgres.Builder.Delete(table).Where(sq.Eq{"video_id": videoID})); err != nil {
		return postgres.MapError(err, "video", videoID)
	}
	if len(ids) == 0 {
		return nil
	}

	insert := postgres.Builder.Insert(table).Columns("video_id", column)
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		insert = insert.Values(videoID, id)
	}
	insert = insert.Suffix(fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET video_id = EXCLUDED.video_id", column))

	if _, err := postgres.Exec(ctx, q, insert); err != nil {
		return postgres.MapError(err, "video", videoID)
	}
	return nil
}

func (r *Repo) withLinks(ctx context.Context, q postgres.Querier, rows []row) ([]domain.Video, error) {
	videos := make([]domain.Video, len(rows))
	if len(rows) == 0 {
		return videos, nil
	}

	ids := make([]int64, len(rows))
	index := make(map[int64]int, len(rows))
	for i, rw := range rows {
		ids[i] = rw.ID
		index[rw.ID] = i
		videos[i] = domain.Video{
			ID:          rw.ID,
			Title:       rw.Title,
			Description: rw.Description,
			URL:         rw.URL,
			YoutubeID:   rw.YoutubeID,
			Sheets:      []domain.MusicSheet{},
			Lyrics:      []domain.Lyrics{},
			CreatedOn:   rw.CreatedOn,
			PublishedOn: rw.PublishedOn,
		}
	}

	var sheets []sheetRow
	sheetQuery := postgres.Builder.
		Select(append([]string{"vs.video_id"}, qualify("s", musicsheet.Columns)...)...).
		From("video_sheets vs").
		Join("music_sheets s ON s.id = vs.sheet_id").
		Where(sq.Eq{"vs.video_id": ids}).
		OrderBy("s.id")
	if err := postgres.Select(ctx, q, &sheets, sheetQuery); err != nil {
		return nil, postgres.MapError(err, "video sheets", ids)
	}
	for _, s := range sheets {
		i := index[s.VideoID]
		videos[i].Sheets = append(videos[i].Sheets, s.ToDomain())
	}

	var texts []lyricsRow
	lyricsQuery := postgres.Builder.
		Select(append([]string{"vl.video_id"}, qualify("l", lyrics.Columns)...)...).
		From("video_lyrics vl").
		Join("lyrics l ON l.id = vl.lyrics_id").
		Where(sq.Eq{"vl.video_id": ids}).
		OrderBy("l.id")
	if err := postgres.Select(ctx, q, &texts, lyricsQuery); err != nil {
		return nil, postgres.MapError(err, "video lyrics", ids)
	}
	for _, l := range texts {
		i := index[l.VideoID]
		videos[i].Lyrics = append(videos[i].Lyrics, l.ToDomain())
	}

	return videos, nil
}

func qualify(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}
