package payment

import "errors"

// Payment ドメインのエラー定義
var (
	ErrInvalidMethod         = errors.New("決済手段が不正です")
	ErrIncompleteCardDetails = errors.New("カード情報が不足しています")
	ErrUPIIDRequired         = errors.New("UPI IDは必須です")
	ErrIncompleteBankDetails = errors.New("銀行口座情報が不足しています")
	ErrPaymentFailed         = errors.New("決済に失敗しました")
	ErrInvalidAmount         = errors.New("決済金額は1以上である必要があります")
)
