package showing

import "context"

// Repository は上映回リポジトリのインターフェース
type Repository interface {
	// Create は新しい上映回を作成する
	Create(ctx context.Context, s *Showing) error

	// GetByID はIDから上映回を取得する
	GetByID(ctx context.Context, id string) (*Showing, error)

	// GetByMovieAndSlot は作品IDと上映時刻から上映回を取得する
	GetByMovieAndSlot(ctx context.Context, movieID, slot string) (*Showing, error)

	// ListByMovie は作品の上映回一覧を取得する
	ListByMovie(ctx context.Context, movieID string) ([]*Showing, error)

	// Delete は上映回を削除する
	Delete(ctx context.Context, id string) error
}
