package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/payment"
)

// SimulatedProcessor は外部決済ゲートウェイを模した決済処理実装
// 設定された遅延の後、常に成功のレシートを返す
type SimulatedProcessor struct {
	delay time.Duration
}

// NewSimulatedProcessor は新しいSimulatedProcessorを作成する
func NewSimulatedProcessor(delay time.Duration) *SimulatedProcessor {
	return &SimulatedProcessor{delay: delay}
}

// Process は決済を実行する
// コンテキストのキャンセルで処理を中断する
func (p *SimulatedProcessor) Process(ctx context.Context, req payment.Request) (*payment.Receipt, error) {
	if !payment.IsValidMethod(req.Method) {
		return nil, payment.ErrInvalidMethod
	}
	if err := req.Details.Validate(req.Method); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, payment.ErrInvalidAmount
	}

	// 外部ゲートウェイの処理時間をシミュレート
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return &payment.Receipt{
		TransactionID: uuid.New().String(),
		Method:        req.Method,
		Amount:        req.Amount,
		ProcessedAt:   time.Now(),
	}, nil
}

var _ payment.Processor = (*SimulatedProcessor)(nil)
