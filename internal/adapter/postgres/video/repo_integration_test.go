//go:build integration

package video_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aistomin/andys-backend/internal/adapter/postgres"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/lyrics"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/musicsheet"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/testhelper"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/video"
	"github.com/aistomin/andys-backend/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestRepo_SaveWithLinks(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	tx := postgres.NewTxManager(pool)
	videos := video.New(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	sheet, err := musicsheet.New(pool).Save(ctx, domain.MusicSheet{Title: "Etude", CreatedOn: now})
	if err != nil {
		t.Fatalf("save sheet: %v", err)
	}
	text, err := lyrics.New(pool).Save(ctx, domain.Lyrics{Title: "Song", Text: ptr("la la"), CreatedOn: now})
	if err != nil {
		t.Fatalf("save lyrics: %v", err)
	}

	var first *domain.Video
	err = tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		first, err = videos.Save(ctx, domain.Video{
			Title:     "Live",
			URL:       "https://youtu.be/abc",
			YoutubeID: "abc",
			Sheets:    []domain.MusicSheet{*sheet, *sheet},
			Lyrics:    []domain.Lyrics{*text},
			CreatedOn: now,
		})
		return err
	})
	if err != nil {
		t.Fatalf("save video: %v", err)
	}
	if len(first.Sheets) != 1 || len(first.Lyrics) != 1 {
		t.Fatalf("links: got %d sheets, %d lyrics", len(first.Sheets), len(first.Lyrics))
	}

	// Linking the same sheet to another video moves it.
	second, err := videos.Save(ctx, domain.Video{
		Title:     "Studio",
		URL:       "https://youtu.be/def",
		YoutubeID: "def",
		Sheets:    []domain.MusicSheet{*sheet},
		CreatedOn: now,
	})
	if err != nil {
		t.Fatalf("save second video: %v", err)
	}
	if len(second.Sheets) != 1 {
		t.Fatalf("second video sheets: got %d", len(second.Sheets))
	}

	reloaded, err := videos.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(reloaded.Sheets) != 0 {
		t.Errorf("sheet still linked to first video")
	}
	if len(reloaded.Lyrics) != 1 {
		t.Errorf("lyrics lost: got %d", len(reloaded.Lyrics))
	}
}

func TestRepo_Save_UnknownSheet(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)

	_, err := video.New(pool).Save(context.Background(), domain.Video{
		Title:     "Broken",
		URL:       "https://youtu.be/x",
		YoutubeID: "x",
		Sheets:    []domain.MusicSheet{{ID: 987654321}},
		CreatedOn: time.Now(),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Delete_KeepsSheets(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	sheets := musicsheet.New(pool)
	videos := video.New(pool)

	sheet, err := sheets.Save(ctx, domain.MusicSheet{Title: "Kept", CreatedOn: time.Now()})
	if err != nil {
		t.Fatalf("save sheet: %v", err)
	}
	v, err := videos.Save(ctx, domain.Video{
		Title: "Gone", URL: "u", YoutubeID: "y",
		Sheets:    []domain.MusicSheet{*sheet},
		CreatedOn: time.Now(),
	})
	if err != nil {
		t.Fatalf("save video: %v", err)
	}

	if err := videos.Delete(ctx, v.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := sheets.GetByID(ctx, sheet.ID); err != nil {
		t.Errorf("sheet removed with video: %v", err)
	}
	if err := videos.Delete(ctx, v.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
