package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
)

// BookingCleaner は期限切れの支払い待ち予約をキャンセルするインターフェース
type BookingCleaner interface {
	CancelExpiredBookings(ctx context.Context) (int, error)
}

// ExpiredBookingCleaner は期限切れ予約を掃除して座席を解放するワーカー
type ExpiredBookingCleaner struct {
	bookingService BookingCleaner
	interval       time.Duration
	stopCh         chan struct{}
	doneCh         chan struct{}
}

// NewExpiredBookingCleaner は新しいクリーナーを作成
func NewExpiredBookingCleaner(bs BookingCleaner, interval time.Duration) *ExpiredBookingCleaner {
	return &ExpiredBookingCleaner{
		bookingService: bs,
		interval:       interval,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start はクリーナーを開始
func (c *ExpiredBookingCleaner) Start(ctx context.Context) {
	logger.Info("期限切れ予約クリーナー開始", zap.Duration("interval", c.interval))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("期限切れ予約クリーナー停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("期限切れ予約クリーナー停止（シグナル受信）")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// Stop はクリーナーを停止
func (c *ExpiredBookingCleaner) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// cleanup は期限切れ予約をキャンセルし座席を解放する
func (c *ExpiredBookingCleaner) cleanup(ctx context.Context) {
	log := logger.Get()
	log.Debug("期限切れ予約のクリーンアップ開始")

	count, err := c.bookingService.CancelExpiredBookings(ctx)
	if err != nil {
		log.Error("期限切れ予約のクリーンアップ失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("期限切れ予約をキャンセル", zap.Int("count", count))
	} else {
		log.Debug("期限切れ予約なし")
	}
}
