package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/booking"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/movie"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/payment"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/transaction"
	redisinfra "github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/metrics"
)

// ErrSeatsBeingProcessed は対象座席が他リクエストで処理中の場合のエラー
var ErrSeatsBeingProcessed = errors.New("座席が他のユーザーによって処理中です")

type BookingService struct {
	txManager   transaction.Manager
	bookingRepo booking.Repository
	seatRepo    seat.Repository
	movieRepo   movie.Repository
	draftStore  booking.DraftStore
	showings    *ShowingService
	processor   payment.Processor
	lockManager redisinfra.LockManagerInterface
	metrics     *metrics.Metrics
}

func NewBookingService(
	tm transaction.Manager,
	br booking.Repository,
	str seat.Repository,
	mr movie.Repository,
	ds booking.DraftStore,
	ss *ShowingService,
	pp payment.Processor,
	lm redisinfra.LockManagerInterface,
	m *metrics.Metrics,
) *BookingService {
	return &BookingService{
		txManager:   tm,
		bookingRepo: br,
		seatRepo:    str,
		movieRepo:   mr,
		draftStore:  ds,
		showings:    ss,
		processor:   pp,
		lockManager: lm,
		metrics:     m,
	}
}

// StartDraft は作品を指定して予約ウィザードを開始する
func (s *BookingService) StartDraft(ctx context.Context, userID, movieID string) (*booking.Draft, error) {
	m, err := s.movieRepo.GetByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("作品取得に失敗: %w", err)
	}
	draft := booking.NewDraft(uuid.New().String(), userID, booking.MovieRef{
		ID:          m.ID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
	})
	if err := s.draftStore.Save(ctx, draft); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ActiveDrafts.Inc()
	}
	return draft, nil
}

// GetDraft は所有者を確認した上で下書きを取得する
func (s *BookingService) GetDraft(ctx context.Context, userID, draftID string) (*booking.Draft, error) {
	draft, err := s.draftStore.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.UserID != userID {
		return nil, booking.ErrDraftNotOwned
	}
	return draft, nil
}

// ChooseShowtime は上映時刻を選択し、座席選択段階へ進める
// 上映回が未作成なら座席カタログごと作成される
func (s *BookingService) ChooseShowtime(ctx context.Context, userID, draftID, slot string) (*booking.Draft, error) {
	draft, err := s.GetDraft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	sh, err := s.showings.EnsureShowing(ctx, draft.Movie.ID, slot)
	if err != nil {
		return nil, err
	}
	seats, err := s.seatRepo.GetByShowingID(ctx, sh.ID)
	if err != nil {
		return nil, fmt.Errorf("座席取得に失敗: %w", err)
	}

	if err := draft.ChooseShowtime(sh.ID, slot, booking.SnapshotSeats(seats)); err != nil {
		return nil, err
	}
	if err := s.draftStore.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ToggleSeat は下書き内の座席の選択状態を切り替える
func (s *BookingService) ToggleSeat(ctx context.Context, userID, draftID, label string) (*booking.Draft, error) {
	draft, err := s.GetDraft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	if err := draft.ToggleSeat(label); err != nil {
		return nil, err
	}
	if err := s.draftStore.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Checkout は座席選択を締め、座席を保持した支払い待ち予約を作成する
// 保持はトランザクション内で行い、いずれかの座席が取られていれば全体が失敗する
func (s *BookingService) Checkout(ctx context.Context, userID, draftID string) (*booking.Draft, error) {
	draft, err := s.GetDraft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	if err := draft.Checkout(); err != nil {
		return nil, err
	}

	// 分散ロックを取得（ラベルをソートしてデッドロック防止）
	if s.lockManager != nil {
		lockKey := buildSeatLockKey(draft.ShowingID, draft.SelectedLabels)
		lock, err := s.lockManager.AcquireLockWithRetry(ctx, lockKey, 10*time.Second, 3, 100*time.Millisecond)
		if err != nil {
			if errors.Is(err, redisinfra.ErrLockNotAcquired) {
				s.countBooking("lock_failed")
				return nil, ErrSeatsBeingProcessed
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer lock.Release(ctx)
	}

	b := booking.NewBooking(userID, draft.ShowingID, draft.Movie.ID, draft.Showtime, draft.SelectedLabels, draft.TotalAmount())
	if err := b.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := s.seatRepo.HoldSeats(ctx, tx, draft.ShowingID, draft.SelectedLabels, b.ID); err != nil {
		if errors.Is(err, seat.ErrSeatAlreadyTaken) {
			s.countBooking("conflict")
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.showings.InvalidateCache(ctx, draft.ShowingID)
	if s.metrics != nil {
		s.metrics.ActiveBookings.WithLabelValues(string(booking.StatusPending)).Inc()
	}

	draft.AttachBooking(b.ID)
	if err := s.draftStore.Save(ctx, draft); err != nil {
		return nil, err
	}
	logger.Info("支払い待ち予約を作成",
		zap.String("booking_id", b.ID),
		zap.String("showing_id", draft.ShowingID),
		zap.Strings("seats", b.SeatLabels),
		zap.Int("total_amount", b.TotalAmount))
	return draft, nil
}

// PayInput は決済処理への入力
type PayInput struct {
	UserID  string
	DraftID string
	Method  payment.Method
	Details payment.Details
}

// Pay は支払い待ち予約の決済を実行し、予約を確定する
// 成功時は下書きを破棄し、確定画面用のペイロードを返す
func (s *BookingService) Pay(ctx context.Context, input PayInput) (*booking.Confirmation, error) {
	draft, err := s.GetDraft(ctx, input.UserID, input.DraftID)
	if err != nil {
		return nil, err
	}
	if draft.Stage != booking.StagePaymentPending || draft.BookingID == "" {
		return nil, booking.ErrNotInPaymentPending
	}

	b, err := s.bookingRepo.GetByID(ctx, draft.BookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsPending() {
		return nil, booking.ErrBookingNotPending
	}
	if b.IsExpired() {
		return nil, booking.ErrBookingExpired
	}

	start := time.Now()
	receipt, err := s.processor.Process(ctx, payment.Request{
		BookingID: b.ID,
		Method:    input.Method,
		Details:   input.Details,
		Amount:    b.TotalAmount,
	})
	if err != nil {
		s.observePayment(input.Method, "failed", time.Since(start))
		s.countBooking("error")
		return nil, fmt.Errorf("決済処理に失敗: %w", err)
	}
	s.observePayment(input.Method, "success", time.Since(start))

	if err := b.Confirm(string(input.Method)); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.seatRepo.BookSeats(ctx, tx, b.ShowingID, b.SeatLabels); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.countBooking("confirmed")
	if s.metrics != nil {
		s.metrics.ActiveBookings.WithLabelValues(string(booking.StatusPending)).Dec()
		s.metrics.ActiveBookings.WithLabelValues(string(booking.StatusConfirmed)).Inc()
		s.metrics.ActiveDrafts.Dec()
	}

	confirmation := booking.NewConfirmation(b, draft)
	if err := s.draftStore.Delete(ctx, draft.ID); err != nil {
		logger.Warn("下書き削除エラー", zap.String("draft_id", draft.ID), zap.Error(err))
	}
	logger.Info("予約を確定",
		zap.String("booking_id", b.ID),
		zap.String("transaction_id", receipt.TransactionID),
		zap.String("method", string(receipt.Method)),
		zap.Int("amount", receipt.Amount))
	return confirmation, nil
}

// CancelDraft はウィザードを中断し、保持済みの座席があれば解放する
func (s *BookingService) CancelDraft(ctx context.Context, userID, draftID string) error {
	draft, err := s.GetDraft(ctx, userID, draftID)
	if err != nil {
		return err
	}

	if draft.BookingID != "" {
		b, err := s.bookingRepo.GetByID(ctx, draft.BookingID)
		if err != nil && !errors.Is(err, booking.ErrBookingNotFound) {
			return err
		}
		if err == nil && b.IsPending() {
			if err := s.cancelPendingBooking(ctx, b); err != nil {
				return err
			}
		}
	}

	if err := s.draftStore.Delete(ctx, draft.ID); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.ActiveDrafts.Dec()
	}
	return nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *BookingService) GetUserBookings(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.bookingRepo.GetByUserID(ctx, userID, limit, offset)
}

// CancelExpiredBookings は期限切れの支払い待ち予約をキャンセルし、座席を解放する
// バックグラウンドワーカーから定期的に呼ばれる
func (s *BookingService) CancelExpiredBookings(ctx context.Context) (int, error) {
	expired, err := s.bookingRepo.GetExpiredPending(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("期限切れ予約の取得に失敗: %w", err)
	}

	cancelled := 0
	for _, b := range expired {
		if err := s.cancelPendingBooking(ctx, b); err != nil {
			logger.Error("期限切れ予約のキャンセルに失敗",
				zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}
		cancelled++
	}
	return cancelled, nil
}

func (s *BookingService) cancelPendingBooking(ctx context.Context, b *booking.Booking) error {
	if err := b.Cancel(); err != nil {
		return err
	}
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.seatRepo.ReleaseSeats(ctx, tx, b.ShowingID, b.SeatLabels); err != nil {
		return err
	}
	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}

	s.showings.InvalidateCache(ctx, b.ShowingID)
	if s.metrics != nil {
		s.metrics.ActiveBookings.WithLabelValues(string(booking.StatusPending)).Dec()
	}
	logger.Info("支払い待ち予約をキャンセル",
		zap.String("booking_id", b.ID),
		zap.Strings("seats", b.SeatLabels))
	return nil
}

func (s *BookingService) countBooking(status string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(status).Inc()
	}
}

func (s *BookingService) observePayment(method payment.Method, status string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.PaymentDuration.WithLabelValues(string(method), status).Observe(d.Seconds())
	}
}

// buildSeatLockKey は上映回と座席ラベルからロックキーを生成する（ソートしてデッドロック防止）
func buildSeatLockKey(showingID string, labels []string) string {
	sorted := make([]string, len(labels))
	copy(sorted, labels)
	sort.Strings(sorted)
	return fmt.Sprintf("showing:%s:seats:%s", showingID, strings.Join(sorted, ","))
}
