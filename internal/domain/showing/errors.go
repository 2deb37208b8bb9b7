package showing

import "errors"

// Showing ドメインのエラー定義
var (
	ErrShowingNotFound      = errors.New("上映回が見つかりません")
	ErrShowingAlreadyExists = errors.New("同じ作品・時刻の上映回が既に存在します")
	ErrMovieIDRequired      = errors.New("作品IDは必須です")
	ErrInvalidShowtime      = errors.New("上映時刻が固定枠に含まれていません")
)
