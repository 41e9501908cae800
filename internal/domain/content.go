package domain

import "time"

// Video is a published video with the music sheets and lyrics it uses.
type Video struct {
	ID          int64
	Title       string
	Description *string
	URL         string
	YoutubeID   string
	Sheets      []MusicSheet
	Lyrics      []Lyrics
	CreatedOn   time.Time
	PublishedOn *time.Time
}

// MusicSheet is downloadable sheet music.
type MusicSheet struct {
	ID          int64
	Title       string
	Description *string
	PreviewURL  *string
	DownloadURL *string
	CreatedOn   time.Time
	PublishedOn *time.Time
}

// Lyrics is the text of a song.
type Lyrics struct {
	ID          int64
	Title       string
	Text        *string
	CreatedOn   time.Time
	PublishedOn *time.Time
}

// BlogPost is a blog article.
type BlogPost struct {
	ID          int64
	Title       string
	Text        *string
	CreatedOn   time.Time
	PublishedOn *time.Time
}

// Photo is a gallery image.
type Photo struct {
	ID          int64
	Description *string
	URL         string
	CreatedOn   time.Time
	PublishedOn *time.Time
}
