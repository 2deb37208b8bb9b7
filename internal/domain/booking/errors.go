package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrDraftNotFound           = errors.New("予約下書きが見つかりません")
	ErrDraftNotOwned           = errors.New("予約下書きの所有者ではありません")
	ErrBookingNotFound         = errors.New("予約が見つかりません")
	ErrShowtimeAlreadyChosen   = errors.New("上映時刻は選択済みです")
	ErrNotInSeatSelection      = errors.New("座席選択段階ではありません")
	ErrNotInPaymentPending     = errors.New("支払い待ち段階ではありません")
	ErrSeatNotInCatalog        = errors.New("座席がカタログに存在しません")
	ErrSelectionLimitReached   = errors.New("選択できる座席数の上限に達しています")
	ErrNoSeatsSelected         = errors.New("座席が選択されていません")
	ErrBookingNotPending       = errors.New("予約は支払い待ちではありません")
	ErrBookingExpired          = errors.New("予約は期限切れです")
	ErrBookingAlreadyCancelled = errors.New("予約は既にキャンセルされています")
	ErrBookingAlreadyConfirmed = errors.New("予約は既に確定されています")
	ErrUserIDRequired          = errors.New("ユーザーIDは必須です")
	ErrShowingIDRequired       = errors.New("上映回IDは必須です")
	ErrInvalidTotalAmount      = errors.New("合計金額は0以上である必要があります")
)
