package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/movie"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/showing"
	redisinfra "github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
)

const seatCacheTTL = 30 * time.Second

type ShowingService struct {
	showingRepo showing.Repository
	seatRepo    seat.Repository
	movieRepo   movie.Repository
	cache       redisinfra.SeatCacheInterface
	layout      seat.Layout
	seedFn      func() int64
}

// NewShowingService は新しいShowingServiceを作成する
// seedFn は座席カタログ生成の乱数シードを供給する（nilなら現在時刻ベース）
func NewShowingService(sr showing.Repository, str seat.Repository, mr movie.Repository, cache redisinfra.SeatCacheInterface, layout seat.Layout, seedFn func() int64) *ShowingService {
	if seedFn == nil {
		seedFn = func() int64 { return time.Now().UnixNano() }
	}
	return &ShowingService{
		showingRepo: sr,
		seatRepo:    str,
		movieRepo:   mr,
		cache:       cache,
		layout:      layout,
		seedFn:      seedFn,
	}
}

// Slots は選択可能な上映時刻の一覧を返す
func (s *ShowingService) Slots() []string {
	slots := make([]string, len(showing.Slots))
	copy(slots, showing.Slots)
	return slots
}

// EnsureShowing は作品×上映時刻の上映回を取得し、存在しなければ作成する
// 新規作成時は座席カタログも同時に生成して永続化する
func (s *ShowingService) EnsureShowing(ctx context.Context, movieID, slot string) (*showing.Showing, error) {
	if !showing.IsValidSlot(slot) {
		return nil, showing.ErrInvalidShowtime
	}
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		return nil, fmt.Errorf("作品取得に失敗: %w", err)
	}

	existing, err := s.showingRepo.GetByMovieAndSlot(ctx, movieID, slot)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, showing.ErrShowingNotFound) {
		return nil, err
	}

	sh := showing.NewShowing(movieID, slot)
	if err := sh.Validate(); err != nil {
		return nil, err
	}
	if err := s.showingRepo.Create(ctx, sh); err != nil {
		// 同時作成の競合時は作成済みの上映回をそのまま使う
		if errors.Is(err, showing.ErrShowingAlreadyExists) {
			return s.showingRepo.GetByMovieAndSlot(ctx, movieID, slot)
		}
		return nil, err
	}

	rng := rand.New(rand.NewSource(s.seedFn()))
	seats := seat.Generate(s.layout, sh.ID, rng)
	if err := s.seatRepo.CreateBulk(ctx, seats); err != nil {
		return nil, fmt.Errorf("座席カタログ生成に失敗: %w", err)
	}
	logger.Info("上映回と座席カタログを作成",
		zap.String("showing_id", sh.ID),
		zap.String("movie_id", movieID),
		zap.String("showtime", slot),
		zap.Int("seats", len(seats)))
	return sh, nil
}

func (s *ShowingService) GetShowing(ctx context.Context, id string) (*showing.Showing, error) {
	return s.showingRepo.GetByID(ctx, id)
}

func (s *ShowingService) ListShowings(ctx context.Context, movieID string) ([]*showing.Showing, error) {
	return s.showingRepo.ListByMovie(ctx, movieID)
}

// GetSeatMap は上映回の座席カタログをカタログ順で返す
func (s *ShowingService) GetSeatMap(ctx context.Context, showingID string) ([]*seat.Seat, error) {
	if _, err := s.showingRepo.GetByID(ctx, showingID); err != nil {
		return nil, err
	}
	return s.seatRepo.GetByShowingID(ctx, showingID)
}

// CountAvailableSeats は上映回の空席数を返す（キャッシュ優先）
func (s *ShowingService) CountAvailableSeats(ctx context.Context, showingID string) (int, error) {
	if s.cache != nil {
		count, err := s.cache.GetAvailableCount(ctx, showingID)
		if err == nil {
			logger.Debug("キャッシュヒット", zap.String("showing_id", showingID), zap.Int("count", count))
			return count, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("キャッシュ取得エラー", zap.Error(err))
		}
	}

	count, err := s.seatRepo.CountAvailableByShowingID(ctx, showingID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.SetAvailableCount(ctx, showingID, count, seatCacheTTL); cacheErr != nil {
			logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
		}
	}
	return count, nil
}

// InvalidateCache は上映回の空席数キャッシュを無効化する
func (s *ShowingService) InvalidateCache(ctx context.Context, showingID string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, showingID); err != nil {
			logger.Warn("キャッシュ無効化エラー", zap.Error(err))
		}
	}
}
