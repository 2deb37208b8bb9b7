package seat

import (
	"fmt"
	"time"
)

// Status は座席の状態を表す
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved" // 支払い待ちの予約が保持中
	StatusBooked    Status = "booked"
)

// Seat は上映回ごとの座席エンティティを表す
// ラベル（行文字+番号）は上映回内で一意
type Seat struct {
	ID        string
	ShowingID string
	Label     string // 例: "C7"
	Row       string // "A".."H"
	Number    int    // 行内の位置（1始まり）
	Status    Status
	Price     int
	HeldBy    *string // booking_id
	HeldAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int // 楽観的ロック用
}

// Label は行文字と番号から座席ラベルを組み立てる
func MakeLabel(row string, number int) string {
	return fmt.Sprintf("%s%d", row, number)
}

// NewSeat は新しい座席を作成する
func NewSeat(showingID, row string, number, price int) *Seat {
	now := time.Now()
	return &Seat{
		ShowingID: showingID,
		Label:     MakeLabel(row, number),
		Row:       row,
		Number:    number,
		Status:    StatusAvailable,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   0,
	}
}

// IsAvailable は座席が選択可能かを返す
func (s *Seat) IsAvailable() bool {
	return s.Status == StatusAvailable
}

// Hold は座席を支払い待ち状態にする
func (s *Seat) Hold(bookingID string) error {
	if s.Status != StatusAvailable {
		return ErrSeatNotAvailable
	}
	now := time.Now()
	s.Status = StatusReserved
	s.HeldBy = &bookingID
	s.HeldAt = &now
	s.UpdatedAt = now
	return nil
}

// Book は座席を予約確定状態にする
func (s *Seat) Book() error {
	if s.Status != StatusReserved {
		return ErrSeatNotHeld
	}
	s.Status = StatusBooked
	s.UpdatedAt = time.Now()
	return nil
}

// Release は座席を解放する
func (s *Seat) Release() {
	s.Status = StatusAvailable
	s.HeldBy = nil
	s.HeldAt = nil
	s.UpdatedAt = time.Now()
}

// Validate は座席の検証を行う
func (s *Seat) Validate() error {
	if s.ShowingID == "" {
		return ErrShowingIDRequired
	}
	if s.Row == "" || s.Number < 1 {
		return ErrInvalidPosition
	}
	if s.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}
