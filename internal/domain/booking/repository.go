package booking

import (
	"context"
	"time"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, b *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// GetByUserID はユーザーの予約一覧を取得する
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*Booking, error)

	// Update は予約を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, b *Booking) error

	// GetExpiredPending は期限切れの支払い待ち予約を取得する
	GetExpiredPending(ctx context.Context, olderThan time.Duration) ([]*Booking, error)
}

// DraftStore は予約下書きのセッションストアのインターフェース
// 下書きはTTL付きで保持され、期限切れで自動的に破棄される
type DraftStore interface {
	// Save は下書きを保存する（TTLを更新する）
	Save(ctx context.Context, d *Draft) error

	// Get はIDから下書きを取得する
	Get(ctx context.Context, id string) (*Draft, error)

	// Delete は下書きを破棄する
	Delete(ctx context.Context, id string) error
}
