package content

import (
	"log/slog"
	"strings"
	"time"

	"github.com/aistomin/andys-backend/internal/domain"
	"github.com/aistomin/andys-backend/internal/validation"
)

// NewVideos creates the video service. Saving a video also relinks its
// sheets and lyrics, so it always runs in a transaction.
func NewVideos(log *slog.Logger, r repo[domain.Video], tx txManager) *Service[domain.Video] {
	return newService(log, r, tx, kind[domain.Video]{
		name:    "video",
		prepare: prepareVideo,
		id:      func(v domain.Video) int64 { return v.ID },
	})
}

// NewMusicSheets creates the music sheet service.
func NewMusicSheets(log *slog.Logger, r repo[domain.MusicSheet], tx txManager) *Service[domain.MusicSheet] {
	return newService(log, r, tx, kind[domain.MusicSheet]{
		name: "music sheet",
		prepare: func(s *domain.MusicSheet, now time.Time) error {
			s.Title = strings.TrimSpace(s.Title)
			errs := validation.Var("title", s.Title, "notblank,max=255")
			errs = append(errs, optionalURL("previewUrl", s.PreviewURL)...)
			errs = append(errs, optionalURL("downloadUrl", s.DownloadURL)...)
			defaultCreated(&s.CreatedOn, now)
			return domain.NewValidationErrors(errs)
		},
		id: func(s domain.MusicSheet) int64 { return s.ID },
	})
}

// NewLyrics creates the lyrics service.
func NewLyrics(log *slog.Logger, r repo[domain.Lyrics], tx txManager) *Service[domain.Lyrics] {
	return newService(log, r, tx, kind[domain.Lyrics]{
		name: "lyrics",
		prepare: func(l *domain.Lyrics, now time.Time) error {
			l.Title = strings.TrimSpace(l.Title)
			defaultCreated(&l.CreatedOn, now)
			return domain.NewValidationErrors(validation.Var("title", l.Title, "notblank,max=255"))
		},
		id: func(l domain.Lyrics) int64 { return l.ID },
	})
}

// NewBlogPosts creates the blog post service.
func NewBlogPosts(log *slog.Logger, r repo[domain.BlogPost], tx txManager) *Service[domain.BlogPost] {
	return newService(log, r, tx, kind[domain.BlogPost]{
		name: "blog post",
		prepare: func(p *domain.BlogPost, now time.Time) error {
			p.Title = strings.TrimSpace(p.Title)
			defaultCreated(&p.CreatedOn, now)
			return domain.NewValidationErrors(validation.Var("title", p.Title, "notblank,max=255"))
		},
		id: func(p domain.BlogPost) int64 { return p.ID },
	})
}

// NewPhotos creates the photo service.
func NewPhotos(log *slog.Logger, r repo[domain.Photo], tx txManager) *Service[domain.Photo] {
	return newService(log, r, tx, kind[domain.Photo]{
		name: "photo",
		prepare: func(p *domain.Photo, now time.Time) error {
			p.URL = strings.TrimSpace(p.URL)
			defaultCreated(&p.CreatedOn, now)
			return domain.NewValidationErrors(validation.Var("url", p.URL, "required,url"))
		},
		id: func(p domain.Photo) int64 { return p.ID },
	})
}

func prepareVideo(v *domain.Video, now time.Time) error {
	v.Title = strings.TrimSpace(v.Title)
	v.URL = strings.TrimSpace(v.URL)
	v.YoutubeID = strings.TrimSpace(v.YoutubeID)

	var errs []domain.FieldError
	errs = append(errs, validation.Var("title", v.Title, "notblank,max=255")...)
	errs = append(errs, validation.Var("url", v.URL, "required,url")...)
	errs = append(errs, validation.Var("youtubeId", v.YoutubeID, "notblank,max=64")...)
	for _, s := range v.Sheets {
		if s.ID <= 0 {
			errs = append(errs, domain.FieldError{Field: "sheets", Message: "must reference stored music sheets"})
			break
		}
	}
	for _, l := range v.Lyrics {
		if l.ID <= 0 {
			errs = append(errs, domain.FieldError{Field: "lyrics", Message: "must reference stored lyrics"})
			break
		}
	}

	defaultCreated(&v.CreatedOn, now)
	return domain.NewValidationErrors(errs)
}

func optionalURL(field string, u *string) []domain.FieldError {
	if u == nil || *u == "" {
		return nil
	}
	return validation.Var(field, *u, "url")
}

func defaultCreated(t *time.Time, now time.Time) {
	if t.IsZero() {
		*t = now
	}
}
