package booking

import (
	"time"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/showing"
)

// Stage は予約ウィザードの段階を表す
type Stage string

const (
	StageShowtimeSelection Stage = "showtime_selection"
	StageSeatSelection     Stage = "seat_selection"
	StagePaymentPending    Stage = "payment_pending"
)

// MaxSeatsPerBooking は1回の予約で選択できる座席数の上限
const MaxSeatsPerBooking = 8

// SeatStatus は下書き内の座席の状態を表す
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatSelected  SeatStatus = "selected"
	SeatBooked    SeatStatus = "booked"
)

// DraftSeat は下書きが保持する座席スナップショットの1席
type DraftSeat struct {
	Label  string     `json:"label"`
	Row    string     `json:"row"`
	Number int        `json:"number"`
	Status SeatStatus `json:"status"`
	Price  int        `json:"price"`
}

// MovieRef は下書きが参照する作品の読み取り専用サマリ
type MovieRef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
}

// Draft は進行中の予約ウィザードを表す集約
// 上映時刻選択 → 座席選択 → 支払い待ち の一方向にのみ進む
type Draft struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Movie          MovieRef    `json:"movie"`
	ShowingID      string      `json:"showing_id,omitempty"`
	Showtime       string      `json:"showtime,omitempty"`
	Stage          Stage       `json:"stage"`
	Seats          []DraftSeat `json:"seats,omitempty"`          // カタログ順スナップショット
	SelectedLabels []string    `json:"selected_labels,omitempty"` // 選択順
	BookingID      string      `json:"booking_id,omitempty"`      // チェックアウト後に設定
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NewDraft は上映時刻選択段階の新しい下書きを作成する
func NewDraft(id, userID string, movie MovieRef) *Draft {
	now := time.Now()
	return &Draft{
		ID:        id,
		UserID:    userID,
		Movie:     movie,
		Stage:     StageShowtimeSelection,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SnapshotSeats は永続化された座席カタログを下書き用スナップショットへ変換する
// 支払い待ち（他予約保持中）の座席は下書きから見れば予約済みと同じ扱い
func SnapshotSeats(seats []*seat.Seat) []DraftSeat {
	snapshot := make([]DraftSeat, len(seats))
	for i, s := range seats {
		status := SeatAvailable
		if s.Status != seat.StatusAvailable {
			status = SeatBooked
		}
		snapshot[i] = DraftSeat{
			Label:  s.Label,
			Row:    s.Row,
			Number: s.Number,
			Status: status,
			Price:  s.Price,
		}
	}
	return snapshot
}

// ChooseShowtime は上映時刻を選択し、座席選択段階へ進める
// 一度選択した時刻は以降変更できない
func (d *Draft) ChooseShowtime(showingID, slot string, seats []DraftSeat) error {
	if d.Stage != StageShowtimeSelection {
		return ErrShowtimeAlreadyChosen
	}
	if !showing.IsValidSlot(slot) {
		return showing.ErrInvalidShowtime
	}
	d.ShowingID = showingID
	d.Showtime = slot
	d.Seats = seats
	d.Stage = StageSeatSelection
	d.UpdatedAt = time.Now()
	return nil
}

// ToggleSeat は座席の選択状態を切り替える
// 予約済み座席への操作は状態を変えずに成功する（エラーにしない）
// 上限到達後の新規選択のみエラーを返す
func (d *Draft) ToggleSeat(label string) error {
	if d.Stage != StageSeatSelection {
		return ErrNotInSeatSelection
	}
	for i := range d.Seats {
		s := &d.Seats[i]
		if s.Label != label {
			continue
		}
		switch s.Status {
		case SeatBooked:
			return nil
		case SeatSelected:
			s.Status = SeatAvailable
			d.removeSelected(label)
		case SeatAvailable:
			if len(d.SelectedLabels) >= MaxSeatsPerBooking {
				return ErrSelectionLimitReached
			}
			s.Status = SeatSelected
			d.SelectedLabels = append(d.SelectedLabels, label)
		}
		d.UpdatedAt = time.Now()
		return nil
	}
	return ErrSeatNotInCatalog
}

func (d *Draft) removeSelected(label string) {
	for i, l := range d.SelectedLabels {
		if l == label {
			d.SelectedLabels = append(d.SelectedLabels[:i], d.SelectedLabels[i+1:]...)
			return
		}
	}
}

// SelectedSeats は選択中の座席を選択順で返す
func (d *Draft) SelectedSeats() []DraftSeat {
	byLabel := make(map[string]DraftSeat, len(d.Seats))
	for _, s := range d.Seats {
		byLabel[s.Label] = s
	}
	selected := make([]DraftSeat, 0, len(d.SelectedLabels))
	for _, label := range d.SelectedLabels {
		if s, ok := byLabel[label]; ok {
			selected = append(selected, s)
		}
	}
	return selected
}

// TotalAmount は選択中の座席の合計金額を返す
// 保持はせず呼び出しごとに再計算する
func (d *Draft) TotalAmount() int {
	total := 0
	for _, s := range d.SelectedSeats() {
		total += s.Price
	}
	return total
}

// Checkout は座席選択を締めて支払い待ち段階へ進める
// 座席が1席も選択されていなければ進めない
func (d *Draft) Checkout() error {
	if d.Stage != StageSeatSelection {
		return ErrNotInSeatSelection
	}
	if len(d.SelectedLabels) == 0 {
		return ErrNoSeatsSelected
	}
	d.Stage = StagePaymentPending
	d.UpdatedAt = time.Now()
	return nil
}

// AttachBooking はチェックアウトで作成された予約IDを下書きに紐付ける
func (d *Draft) AttachBooking(bookingID string) {
	d.BookingID = bookingID
	d.UpdatedAt = time.Now()
}
