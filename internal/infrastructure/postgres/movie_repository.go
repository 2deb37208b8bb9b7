package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/movie"
)

type movieRow struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Overview    string    `db:"overview"`
	PosterPath  string    `db:"poster_path"`
	ReleaseDate string    `db:"release_date"`
	Rating      float64   `db:"rating"`
	TMDBID      *int64    `db:"tmdb_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *movieRow) toEntity() *movie.Movie {
	return &movie.Movie{
		ID: r.ID, Title: r.Title, Overview: r.Overview,
		PosterPath: r.PosterPath, ReleaseDate: r.ReleaseDate,
		Rating: r.Rating, TMDBID: r.TMDBID,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type MovieRepository struct{ db *sqlx.DB }

func NewMovieRepository(db *sqlx.DB) *MovieRepository { return &MovieRepository{db: db} }

func (r *MovieRepository) Create(ctx context.Context, m *movie.Movie) error {
	query := `INSERT INTO movies (title, overview, poster_path, release_date, rating, tmdb_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.Title, m.Overview, m.PosterPath, m.ReleaseDate, m.Rating, m.TMDBID, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*movie.Movie, error) {
	query := `SELECT id, title, overview, poster_path, release_date, rating, tmdb_id, created_at, updated_at FROM movies WHERE id = $1`
	var row movieRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, movie.ErrMovieNotFound
		}
		return nil, fmt.Errorf("作品取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *MovieRepository) GetByTMDBID(ctx context.Context, tmdbID int64) (*movie.Movie, error) {
	query := `SELECT id, title, overview, poster_path, release_date, rating, tmdb_id, created_at, updated_at FROM movies WHERE tmdb_id = $1`
	var row movieRow
	if err := r.db.GetContext(ctx, &row, query, tmdbID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, movie.ErrMovieNotFound
		}
		return nil, fmt.Errorf("作品取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *MovieRepository) List(ctx context.Context, limit, offset int) ([]*movie.Movie, error) {
	query := `SELECT id, title, overview, poster_path, release_date, rating, tmdb_id, created_at, updated_at FROM movies ORDER BY release_date DESC, title LIMIT $1 OFFSET $2`
	var rows []movieRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, err
	}
	movies := make([]*movie.Movie, len(rows))
	for i, row := range rows {
		movies[i] = row.toEntity()
	}
	return movies, nil
}

func (r *MovieRepository) Update(ctx context.Context, m *movie.Movie) error {
	query := `UPDATE movies SET title = $1, overview = $2, poster_path = $3, release_date = $4, rating = $5, updated_at = NOW() WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query, m.Title, m.Overview, m.PosterPath, m.ReleaseDate, m.Rating, m.ID)
	if err != nil {
		return fmt.Errorf("作品更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("作品削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

var _ movie.Repository = (*MovieRepository)(nil)
