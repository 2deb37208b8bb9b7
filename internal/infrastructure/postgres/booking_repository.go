package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/booking"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/transaction"
)

type bookingRow struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	ShowingID     string         `db:"showing_id"`
	MovieID       string         `db:"movie_id"`
	Showtime      string         `db:"showtime"`
	SeatLabels    pq.StringArray `db:"seat_labels"`
	TotalAmount   int            `db:"total_amount"`
	Status        string         `db:"status"`
	PaymentMethod *string        `db:"payment_method"`
	ExpiresAt     time.Time      `db:"expires_at"`
	ConfirmedAt   *time.Time     `db:"confirmed_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r *bookingRow) toEntity() *booking.Booking {
	return &booking.Booking{
		ID: r.ID, UserID: r.UserID, ShowingID: r.ShowingID,
		MovieID: r.MovieID, Showtime: r.Showtime,
		SeatLabels: []string(r.SeatLabels), TotalAmount: r.TotalAmount,
		Status: booking.Status(r.Status), PaymentMethod: r.PaymentMethod,
		ExpiresAt: r.ExpiresAt, ConfirmedAt: r.ConfirmedAt,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

const bookingColumns = `id, user_id, showing_id, movie_id, showtime, seat_labels, total_amount, status, payment_method, expires_at, confirmed_at, created_at, updated_at`

type BookingRepository struct{ db *sqlx.DB }

func NewBookingRepository(db *sqlx.DB) *BookingRepository { return &BookingRepository{db: db} }

func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	query := `INSERT INTO bookings (user_id, showing_id, movie_id, showtime, seat_labels, total_amount, status, expires_at, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := sqlxTx.QueryRowContext(ctx, query,
		b.UserID, b.ShowingID, b.MovieID, b.Showtime, pq.Array(b.SeatLabels),
		b.TotalAmount, string(b.Status), b.ExpiresAt, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var row bookingRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, err
	}
	bookings := make([]*booking.Booking, len(rows))
	for i, row := range rows {
		bookings[i] = row.toEntity()
	}
	return bookings, nil
}

func (r *BookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE bookings SET status = $1, payment_method = $2, confirmed_at = $3, updated_at = NOW() WHERE id = $4`
	result, err := sqlxTx.ExecContext(ctx, query, string(b.Status), b.PaymentMethod, b.ConfirmedAt, b.ID)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) GetExpiredPending(ctx context.Context, olderThan time.Duration) ([]*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'pending' AND expires_at < $1`
	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, time.Now().Add(-olderThan)); err != nil {
		return nil, err
	}
	bookings := make([]*booking.Booking, len(rows))
	for i, row := range rows {
		bookings[i] = row.toEntity()
	}
	return bookings, nil
}

var _ booking.Repository = (*BookingRepository)(nil)
