package movie

import "context"

// Repository は作品リポジトリのインターフェース
type Repository interface {
	// Create は新しい作品を作成する
	Create(ctx context.Context, m *Movie) error

	// GetByID はIDから作品を取得する
	GetByID(ctx context.Context, id string) (*Movie, error)

	// GetByTMDBID は外部メタデータIDから作品を取得する
	GetByTMDBID(ctx context.Context, tmdbID int64) (*Movie, error)

	// List は作品一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Movie, error)

	// Update は作品を更新する
	Update(ctx context.Context, m *Movie) error

	// Delete は作品を削除する
	Delete(ctx context.Context, id string) error
}
