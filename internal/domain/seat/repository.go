package seat

import (
	"context"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/transaction"
)

// Repository は座席リポジトリのインターフェース
type Repository interface {
	// CreateBulk は上映回の座席スナップショットを一括作成する
	CreateBulk(ctx context.Context, seats []*Seat) error

	// GetByID はIDから座席を取得する
	GetByID(ctx context.Context, id string) (*Seat, error)

	// GetByShowingID は上映回の座席一覧をカタログ順（行・番号順）で取得する
	GetByShowingID(ctx context.Context, showingID string) ([]*Seat, error)

	// GetByLabels は上映回内のラベル指定で座席を取得する
	GetByLabels(ctx context.Context, showingID string, labels []string) ([]*Seat, error)

	// HoldSeats は座席を支払い待ち状態に更新する（空席のみ、トランザクション必須）
	HoldSeats(ctx context.Context, tx transaction.Tx, showingID string, labels []string, bookingID string) error

	// BookSeats は座席を予約確定状態に更新する（トランザクション必須）
	BookSeats(ctx context.Context, tx transaction.Tx, showingID string, labels []string) error

	// ReleaseSeats は座席を解放する（トランザクション必須）
	ReleaseSeats(ctx context.Context, tx transaction.Tx, showingID string, labels []string) error

	// CountAvailableByShowingID は上映回の空席数を取得する
	CountAvailableByShowingID(ctx context.Context, showingID string) (int, error)
}
