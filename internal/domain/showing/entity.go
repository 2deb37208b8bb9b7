package showing

import "time"

// Showing は上映回エンティティを表す（作品×上映時刻が座席販売の単位）
type Showing struct {
	ID        string
	MovieID   string
	Showtime  string // Slots のいずれか
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewShowing は新しい上映回を作成する
func NewShowing(movieID, showtime string) *Showing {
	now := time.Now()
	return &Showing{
		MovieID:   movieID,
		Showtime:  showtime,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate は上映回の検証を行う
func (s *Showing) Validate() error {
	if s.MovieID == "" {
		return ErrMovieIDRequired
	}
	if !IsValidSlot(s.Showtime) {
		return ErrInvalidShowtime
	}
	return nil
}
