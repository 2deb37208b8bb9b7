package booking

import "time"

// Confirmation は確定画面へ引き渡す最終ペイロード
// 予約IDは永続化された予約のものを使う
type Confirmation struct {
	BookingID     string      `json:"booking_id"`
	Movie         MovieRef    `json:"movie"`
	Showtime      string      `json:"showtime"`
	Seats         []DraftSeat `json:"seats"` // 選択順
	TotalAmount   int         `json:"total_amount"`
	PaymentMethod string      `json:"payment_method"`
	BookedAt      time.Time   `json:"booked_at"`
}

// NewConfirmation は確定済み予約と下書きから確認ペイロードを組み立てる
func NewConfirmation(b *Booking, d *Draft) *Confirmation {
	method := ""
	if b.PaymentMethod != nil {
		method = *b.PaymentMethod
	}
	bookedAt := b.UpdatedAt
	if b.ConfirmedAt != nil {
		bookedAt = *b.ConfirmedAt
	}
	return &Confirmation{
		BookingID:     b.ID,
		Movie:         d.Movie,
		Showtime:      b.Showtime,
		Seats:         d.SelectedSeats(),
		TotalAmount:   b.TotalAmount,
		PaymentMethod: method,
		BookedAt:      bookedAt,
	}
}
