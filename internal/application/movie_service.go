package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/movie"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/tmdb"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
)

// ErrMetadataUnavailable はメタデータAPIが未設定の場合のエラー
var ErrMetadataUnavailable = errors.New("メタデータAPIが設定されていません")

type MovieService struct {
	movieRepo movie.Repository
	tmdb      *tmdb.Client
}

func NewMovieService(mr movie.Repository, tc *tmdb.Client) *MovieService {
	return &MovieService{movieRepo: mr, tmdb: tc}
}

type CreateMovieInput struct {
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	Rating      float64
}

func (s *MovieService) CreateMovie(ctx context.Context, input CreateMovieInput) (*movie.Movie, error) {
	m := movie.NewMovie(input.Title, input.Overview, input.PosterPath, input.ReleaseDate, input.Rating)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.movieRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id string) (*movie.Movie, error) {
	return s.movieRepo.GetByID(ctx, id)
}

func (s *MovieService) ListMovies(ctx context.Context, limit, offset int) ([]*movie.Movie, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.movieRepo.List(ctx, limit, offset)
}

type UpdateMovieInput struct {
	ID          string
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	Rating      float64
}

func (s *MovieService) UpdateMovie(ctx context.Context, input UpdateMovieInput) (*movie.Movie, error) {
	m, err := s.movieRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	m.Title = input.Title
	m.Overview = input.Overview
	m.PosterPath = input.PosterPath
	m.ReleaseDate = input.ReleaseDate
	m.Rating = input.Rating
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.movieRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MovieService) DeleteMovie(ctx context.Context, id string) error {
	return s.movieRepo.Delete(ctx, id)
}

// Regions はメタデータAPIのサポートリージョン一覧を返す
func (s *MovieService) Regions() []tmdb.Region {
	if s.tmdb == nil {
		return nil
	}
	return s.tmdb.Regions()
}

// ImportNowPlaying は指定リージョンの上映中作品を取り込む
// 既に取り込み済みの作品はメタデータを更新する
func (s *MovieService) ImportNowPlaying(ctx context.Context, region string) ([]*movie.Movie, error) {
	if s.tmdb == nil {
		return nil, ErrMetadataUnavailable
	}
	movies, err := s.tmdb.NowPlaying(ctx, region, 1)
	if err != nil {
		return nil, fmt.Errorf("上映中作品の取得に失敗: %w", err)
	}
	return s.importAll(ctx, movies)
}

// ImportTopRated は高評価作品を取り込む
func (s *MovieService) ImportTopRated(ctx context.Context) ([]*movie.Movie, error) {
	if s.tmdb == nil {
		return nil, ErrMetadataUnavailable
	}
	movies, err := s.tmdb.TopRated(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("高評価作品の取得に失敗: %w", err)
	}
	return s.importAll(ctx, movies)
}

func (s *MovieService) importAll(ctx context.Context, fetched []*movie.Movie) ([]*movie.Movie, error) {
	imported := make([]*movie.Movie, 0, len(fetched))
	for _, m := range fetched {
		if err := m.Validate(); err != nil {
			logger.Warn("取り込み対象の作品が不正なためスキップ", zap.String("title", m.Title), zap.Error(err))
			continue
		}
		existing, err := s.movieRepo.GetByTMDBID(ctx, *m.TMDBID)
		switch {
		case err == nil:
			existing.Title = m.Title
			existing.Overview = m.Overview
			existing.PosterPath = m.PosterPath
			existing.ReleaseDate = m.ReleaseDate
			existing.Rating = m.Rating
			if err := s.movieRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
			imported = append(imported, existing)
		case errors.Is(err, movie.ErrMovieNotFound):
			if err := s.movieRepo.Create(ctx, m); err != nil {
				return nil, err
			}
			imported = append(imported, m)
		default:
			return nil, err
		}
	}
	return imported, nil
}
