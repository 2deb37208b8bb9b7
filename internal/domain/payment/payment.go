package payment

import (
	"context"
	"time"
)

// Method は決済手段を表す
type Method string

const (
	MethodCard       Method = "card"
	MethodUPI        Method = "upi"
	MethodNetBanking Method = "netbanking"
)

// IsValidMethod は決済手段が既知のものかを返す
func IsValidMethod(m Method) bool {
	switch m {
	case MethodCard, MethodUPI, MethodNetBanking:
		return true
	}
	return false
}

// Details は決済手段ごとの入力項目
// 使われる項目は Method に依存する
type Details struct {
	CardNumber    string `json:"card_number,omitempty"`
	CardName      string `json:"card_name,omitempty"`
	ExpiryDate    string `json:"expiry_date,omitempty"` // MM/YY
	CVV           string `json:"cvv,omitempty"`
	UPIID         string `json:"upi_id,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
}

// Validate は決済手段に応じた必須項目の検証を行う
func (d Details) Validate(m Method) error {
	switch m {
	case MethodCard:
		if d.CardNumber == "" || d.CardName == "" || d.ExpiryDate == "" || d.CVV == "" {
			return ErrIncompleteCardDetails
		}
	case MethodUPI:
		if d.UPIID == "" {
			return ErrUPIIDRequired
		}
	case MethodNetBanking:
		if d.BankName == "" || d.AccountNumber == "" || d.IFSCCode == "" {
			return ErrIncompleteBankDetails
		}
	default:
		return ErrInvalidMethod
	}
	return nil
}

// Request は決済処理への入力
type Request struct {
	BookingID string
	Method    Method
	Details   Details
	Amount    int
}

// Receipt は決済処理の結果
type Receipt struct {
	TransactionID string
	Method        Method
	Amount        int
	ProcessedAt   time.Time
}

// Processor は決済処理のインターフェース
// 実装はインフラ層に置く（シミュレート実装を含む）
type Processor interface {
	Process(ctx context.Context, req Request) (*Receipt, error)
}
