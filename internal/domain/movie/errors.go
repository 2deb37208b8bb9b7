package movie

import "errors"

// Movie ドメインのエラー定義
var (
	ErrMovieNotFound = errors.New("作品が見つかりません")
	ErrTitleRequired = errors.New("タイトルは必須です")
	ErrInvalidRating = errors.New("評価は0から10の範囲である必要があります")
)
