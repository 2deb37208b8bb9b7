package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/showing"
)

type showingRow struct {
	ID        string    `db:"id"`
	MovieID   string    `db:"movie_id"`
	Showtime  string    `db:"showtime"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *showingRow) toEntity() *showing.Showing {
	return &showing.Showing{
		ID: r.ID, MovieID: r.MovieID, Showtime: r.Showtime,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type ShowingRepository struct{ db *sqlx.DB }

func NewShowingRepository(db *sqlx.DB) *ShowingRepository { return &ShowingRepository{db: db} }

func (r *ShowingRepository) Create(ctx context.Context, s *showing.Showing) error {
	query := `INSERT INTO showings (movie_id, showtime, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, s.MovieID, s.Showtime, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return showing.ErrShowingAlreadyExists
		}
		return fmt.Errorf("上映回作成に失敗: %w", err)
	}
	return nil
}

func (r *ShowingRepository) GetByID(ctx context.Context, id string) (*showing.Showing, error) {
	query := `SELECT id, movie_id, showtime, created_at, updated_at FROM showings WHERE id = $1`
	var row showingRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, showing.ErrShowingNotFound
		}
		return nil, fmt.Errorf("上映回取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ShowingRepository) GetByMovieAndSlot(ctx context.Context, movieID, slot string) (*showing.Showing, error) {
	query := `SELECT id, movie_id, showtime, created_at, updated_at FROM showings WHERE movie_id = $1 AND showtime = $2`
	var row showingRow
	if err := r.db.GetContext(ctx, &row, query, movieID, slot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, showing.ErrShowingNotFound
		}
		return nil, fmt.Errorf("上映回取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ShowingRepository) ListByMovie(ctx context.Context, movieID string) ([]*showing.Showing, error) {
	query := `SELECT id, movie_id, showtime, created_at, updated_at FROM showings WHERE movie_id = $1 ORDER BY created_at`
	var rows []showingRow
	if err := r.db.SelectContext(ctx, &rows, query, movieID); err != nil {
		return nil, err
	}
	showings := make([]*showing.Showing, len(rows))
	for i, row := range rows {
		showings[i] = row.toEntity()
	}
	return showings, nil
}

func (r *ShowingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM showings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("上映回削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return showing.ErrShowingNotFound
	}
	return nil
}

var _ showing.Repository = (*ShowingRepository)(nil)
