package movie

import "time"

// Movie は上映作品エンティティを表す
type Movie struct {
	ID          string
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	Rating      float64
	TMDBID      *int64 // 外部メタデータAPIから取り込んだ場合のみ設定
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMovie は新しい作品を作成する
func NewMovie(title, overview, posterPath, releaseDate string, rating float64) *Movie {
	now := time.Now()
	return &Movie{
		Title:       title,
		Overview:    overview,
		PosterPath:  posterPath,
		ReleaseDate: releaseDate,
		Rating:      rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate は作品の検証を行う
func (m *Movie) Validate() error {
	if m.Title == "" {
		return ErrTitleRequired
	}
	if m.Rating < 0 || m.Rating > 10 {
		return ErrInvalidRating
	}
	return nil
}
