package rest

import (
	"log/slog"
	"time"

	"github.com/aistomin/andys-backend/internal/domain"
)

type videoDTO struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	URL         string          `json:"url"`
	YoutubeID   string          `json:"youtubeId"`
	Sheets      []musicSheetDTO `json:"sheets"`
	Lyrics      []lyricsDTO     `json:"lyrics"`
	CreatedOn   *time.Time      `json:"createdOn"`
	PublishedOn *time.Time      `json:"publishedOn"`
}

type musicSheetDTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	PreviewURL  *string    `json:"previewUrl"`
	DownloadURL *string    `json:"downloadUrl"`
	CreatedOn   *time.Time `json:"createdOn"`
	PublishedOn *time.Time `json:"publishedOn"`
}

type lyricsDTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Text        *string    `json:"text"`
	CreatedOn   *time.Time `json:"createdOn"`
	PublishedOn *time.Time `json:"publishedOn"`
}

type blogPostDTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Text        *string    `json:"text"`
	CreatedOn   *time.Time `json:"createdOn"`
	PublishedOn *time.Time `json:"publishedOn"`
}

type photoDTO struct {
	ID          int64      `json:"id"`
	Description *string    `json:"description"`
	URL         string     `json:"url"`
	CreatedOn   *time.Time `json:"createdOn"`
	PublishedOn *time.Time `json:"publishedOn"`
}

// timePtr maps the zero time to an omitted field.
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeVal(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func toMusicSheetDTO(m domain.MusicSheet) musicSheetDTO {
	return musicSheetDTO{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		PreviewURL:  m.PreviewURL,
		DownloadURL: m.DownloadURL,
		CreatedOn:   timePtr(m.CreatedOn),
		PublishedOn: m.PublishedOn,
	}
}

func fromMusicSheetDTO(d musicSheetDTO) domain.MusicSheet {
	return domain.MusicSheet{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		PreviewURL:  d.PreviewURL,
		DownloadURL: d.DownloadURL,
		CreatedOn:   timeVal(d.CreatedOn),
		PublishedOn: d.PublishedOn,
	}
}

func toLyricsDTO(l domain.Lyrics) lyricsDTO {
	return lyricsDTO{
		ID:          l.ID,
		Title:       l.Title,
		Text:        l.Text,
		CreatedOn:   timePtr(l.CreatedOn),
		PublishedOn: l.PublishedOn,
	}
}

func fromLyricsDTO(d lyricsDTO) domain.Lyrics {
	return domain.Lyrics{
		ID:          d.ID,
		Title:       d.Title,
		Text:        d.Text,
		CreatedOn:   timeVal(d.CreatedOn),
		PublishedOn: d.PublishedOn,
	}
}

func toVideoDTO(v domain.Video) videoDTO {
	d := videoDTO{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		URL:         v.URL,
		YoutubeID:   v.YoutubeID,
		Sheets:      make([]musicSheetDTO, 0, len(v.Sheets)),
		Lyrics:      make([]lyricsDTO, 0, len(v.Lyrics)),
		CreatedOn:   timePtr(v.CreatedOn),
		PublishedOn: v.PublishedOn,
	}
	for _, s := range v.Sheets {
		d.Sheets = append(d.Sheets, toMusicSheetDTO(s))
	}
	for _, l := range v.Lyrics {
		d.Lyrics = append(d.Lyrics, toLyricsDTO(l))
	}
	return d
}

func fromVideoDTO(d videoDTO) domain.Video {
	v := domain.Video{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		URL:         d.URL,
		YoutubeID:   d.YoutubeID,
		CreatedOn:   timeVal(d.CreatedOn),
		PublishedOn: d.PublishedOn,
	}
	for _, s := range d.Sheets {
		v.Sheets = append(v.Sheets, fromMusicSheetDTO(s))
	}
	for _, l := range d.Lyrics {
		v.Lyrics = append(v.Lyrics, fromLyricsDTO(l))
	}
	return v
}

func toBlogPostDTO(b domain.BlogPost) blogPostDTO {
	return blogPostDTO{
		ID:          b.ID,
		Title:       b.Title,
		Text:        b.Text,
		CreatedOn:   timePtr(b.CreatedOn),
		PublishedOn: b.PublishedOn,
	}
}

func fromBlogPostDTO(d blogPostDTO) domain.BlogPost {
	return domain.BlogPost{
		ID:          d.ID,
		Title:       d.Title,
		Text:        d.Text,
		CreatedOn:   timeVal(d.CreatedOn),
		PublishedOn: d.PublishedOn,
	}
}

func toPhotoDTO(p domain.Photo) photoDTO {
	return photoDTO{
		ID:          p.ID,
		Description: p.Description,
		URL:         p.URL,
		CreatedOn:   timePtr(p.CreatedOn),
		PublishedOn: p.PublishedOn,
	}
}

func fromPhotoDTO(d photoDTO) domain.Photo {
	return domain.Photo{
		ID:          d.ID,
		Description: d.Description,
		URL:         d.URL,
		CreatedOn:   timeVal(d.CreatedOn),
		PublishedOn: d.PublishedOn,
	}
}

// NewVideoHandler serves /videos.
func NewVideoHandler(svc contentService[domain.Video], logger *slog.Logger) *ContentHandler[domain.Video, videoDTO] {
	return &ContentHandler[domain.Video, videoDTO]{
		path: "/videos", svc: svc, toDTO: toVideoDTO, fromDTO: fromVideoDTO,
		clearID: func(v *domain.Video) { v.ID = 0 },
		log:     logger.With("handler", "videos"),
	}
}

// NewMusicSheetHandler serves /music/sheets.
func NewMusicSheetHandler(svc contentService[domain.MusicSheet], logger *slog.Logger) *ContentHandler[domain.MusicSheet, musicSheetDTO] {
	return &ContentHandler[domain.MusicSheet, musicSheetDTO]{
		path: "/music/sheets", svc: svc, toDTO: toMusicSheetDTO, fromDTO: fromMusicSheetDTO,
		clearID: func(m *domain.MusicSheet) { m.ID = 0 },
		log:     logger.With("handler", "music_sheets"),
	}
}

// NewLyricsHandler serves /lyrics.
func NewLyricsHandler(svc contentService[domain.Lyrics], logger *slog.Logger) *ContentHandler[domain.Lyrics, lyricsDTO] {
	return &ContentHandler[domain.Lyrics, lyricsDTO]{
		path: "/lyrics", svc: svc, toDTO: toLyricsDTO, fromDTO: fromLyricsDTO,
		clearID: func(l *domain.Lyrics) { l.ID = 0 },
		log:     logger.With("handler", "lyrics"),
	}
}

// NewBlogPostHandler serves /blog/posts.
func NewBlogPostHandler(svc contentService[domain.BlogPost], logger *slog.Logger) *ContentHandler[domain.BlogPost, blogPostDTO] {
	return &ContentHandler[domain.BlogPost, blogPostDTO]{
		path: "/blog/posts", svc: svc, toDTO: toBlogPostDTO, fromDTO: fromBlogPostDTO,
		clearID: func(b *domain.BlogPost) { b.ID = 0 },
		log:     logger.With("handler", "blog_posts"),
	}
}

// NewPhotoHandler serves /photos.
func NewPhotoHandler(svc contentService[domain.Photo], logger *slog.Logger) *ContentHandler[domain.Photo, photoDTO] {
	return &ContentHandler[domain.Photo, photoDTO]{
		path: "/photos", svc: svc, toDTO: toPhotoDTO, fromDTO: fromPhotoDTO,
		clearID: func(p *domain.Photo) { p.ID = 0 },
		log:     logger.With("handler", "photos"),
	}
}
