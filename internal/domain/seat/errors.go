package seat

import "errors"

// Seat ドメインのエラー定義
var (
	ErrSeatNotFound      = errors.New("座席が見つかりません")
	ErrSeatNotAvailable  = errors.New("座席は選択できません")
	ErrSeatNotHeld       = errors.New("座席は支払い待ち状態ではありません")
	ErrSeatAlreadyTaken  = errors.New("座席は既に他の予約に取られています")
	ErrShowingIDRequired = errors.New("上映回IDは必須です")
	ErrInvalidPosition   = errors.New("座席の行・番号が不正です")
	ErrInvalidPrice      = errors.New("価格は0以上である必要があります")
	ErrInvalidLayout     = errors.New("座席レイアウトが不正です")
)
