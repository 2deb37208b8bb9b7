package booking

import "time"

// Status は予約の状態を表す
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// PendingExpiration は支払い待ち予約の有効期限（デフォルト15分）
const PendingExpiration = 15 * time.Minute

// Booking は永続化される予約エンティティを表す
// チェックアウト時に pending で作成され座席を保持し、決済成功で confirmed になる
type Booking struct {
	ID            string
	UserID        string
	ShowingID     string
	MovieID       string
	Showtime      string
	SeatLabels    []string // 選択順
	TotalAmount   int
	Status        Status
	PaymentMethod *string
	ExpiresAt     time.Time
	ConfirmedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBooking は新しい支払い待ち予約を作成する
func NewBooking(userID, showingID, movieID, showtime string, seatLabels []string, totalAmount int) *Booking {
	now := time.Now()
	return &Booking{
		UserID:      userID,
		ShowingID:   showingID,
		MovieID:     movieID,
		Showtime:    showtime,
		SeatLabels:  seatLabels,
		TotalAmount: totalAmount,
		Status:      StatusPending,
		ExpiresAt:   now.Add(PendingExpiration),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsExpired は予約が期限切れかを返す
func (b *Booking) IsExpired() bool {
	return time.Now().After(b.ExpiresAt)
}

// IsPending は予約が支払い待ちかを返す
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// Confirm は決済成功を受けて予約を確定する
func (b *Booking) Confirm(paymentMethod string) error {
	if b.Status != StatusPending {
		return ErrBookingNotPending
	}
	if b.IsExpired() {
		return ErrBookingExpired
	}
	now := time.Now()
	b.Status = StatusConfirmed
	b.PaymentMethod = &paymentMethod
	b.ConfirmedAt = &now
	b.UpdatedAt = now
	return nil
}

// Cancel は予約をキャンセルする
func (b *Booking) Cancel() error {
	if b.Status == StatusCancelled {
		return ErrBookingAlreadyCancelled
	}
	if b.Status == StatusConfirmed {
		return ErrBookingAlreadyConfirmed
	}
	b.Status = StatusCancelled
	b.UpdatedAt = time.Now()
	return nil
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.UserID == "" {
		return ErrUserIDRequired
	}
	if b.ShowingID == "" {
		return ErrShowingIDRequired
	}
	if len(b.SeatLabels) == 0 {
		return ErrNoSeatsSelected
	}
	if len(b.SeatLabels) > MaxSeatsPerBooking {
		return ErrSelectionLimitReached
	}
	if b.TotalAmount < 0 {
		return ErrInvalidTotalAmount
	}
	return nil
}
