package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/transaction"
)

type seatRow struct {
	ID        string     `db:"id"`
	ShowingID string     `db:"showing_id"`
	Label     string     `db:"label"`
	Row       string     `db:"row"`
	Number    int        `db:"number"`
	Status    string     `db:"status"`
	Price     int        `db:"price"`
	HeldBy    *string    `db:"held_by"`
	HeldAt    *time.Time `db:"held_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	Version   int        `db:"version"`
}

func (r *seatRow) toEntity() *seat.Seat {
	return &seat.Seat{
		ID: r.ID, ShowingID: r.ShowingID, Label: r.Label,
		Row: r.Row, Number: r.Number,
		Status: seat.Status(r.Status), Price: r.Price,
		HeldBy: r.HeldBy, HeldAt: r.HeldAt,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt, Version: r.Version,
	}
}

const seatColumns = `id, showing_id, label, "row", number, status, price, held_by, held_at, created_at, updated_at, version`

type SeatRepository struct{ db *sqlx.DB }

func NewSeatRepository(db *sqlx.DB) *SeatRepository { return &SeatRepository{db: db} }

func (r *SeatRepository) CreateBulk(ctx context.Context, seats []*seat.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	// バッチサイズごとに分割してマルチバリューINSERTを実行
	const batchSize = 500
	for i := 0; i < len(seats); i += batchSize {
		end := i + batchSize
		if end > len(seats) {
			end = len(seats)
		}
		if err := r.createBulkBatch(ctx, seats[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SeatRepository) createBulkBatch(ctx context.Context, seats []*seat.Seat) error {
	query := `INSERT INTO seats (showing_id, label, "row", number, status, price, created_at, updated_at, version) VALUES `
	args := make([]interface{}, 0, len(seats)*9)
	placeholders := make([]string, 0, len(seats))

	for i, s := range seats {
		base := i * 9
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		args = append(args, s.ShowingID, s.Label, s.Row, s.Number, string(s.Status), s.Price, s.CreatedAt, s.UpdatedAt, s.Version)
	}

	query += strings.Join(placeholders, ", ")
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("座席一括作成に失敗: %w", err)
	}
	return nil
}

func (r *SeatRepository) GetByID(ctx context.Context, id string) (*seat.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE id = $1`
	var row seatRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, seat.ErrSeatNotFound
		}
		return nil, fmt.Errorf("座席取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *SeatRepository) GetByShowingID(ctx context.Context, showingID string) ([]*seat.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE showing_id = $1 ORDER BY "row", number`
	var rows []seatRow
	if err := r.db.SelectContext(ctx, &rows, query, showingID); err != nil {
		return nil, err
	}
	seats := make([]*seat.Seat, len(rows))
	for i, row := range rows {
		seats[i] = row.toEntity()
	}
	return seats, nil
}

func (r *SeatRepository) GetByLabels(ctx context.Context, showingID string, labels []string) ([]*seat.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE showing_id = $1 AND label = ANY($2) ORDER BY "row", number`
	var rows []seatRow
	if err := r.db.SelectContext(ctx, &rows, query, showingID, pq.Array(labels)); err != nil {
		return nil, err
	}
	seats := make([]*seat.Seat, len(rows))
	for i, row := range rows {
		seats[i] = row.toEntity()
	}
	return seats, nil
}

func (r *SeatRepository) HoldSeats(ctx context.Context, tx transaction.Tx, showingID string, labels []string, bookingID string) error {
	if len(labels) == 0 {
		return nil
	}
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE seats SET status = 'reserved', held_by = $1, held_at = NOW(), updated_at = NOW(), version = version + 1 WHERE showing_id = $2 AND label = ANY($3) AND status = 'available'`
	result, err := sqlxTx.ExecContext(ctx, query, bookingID, showingID, pq.Array(labels))
	if err != nil {
		return fmt.Errorf("座席確保に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if int(rows) != len(labels) {
		return seat.ErrSeatAlreadyTaken
	}
	return nil
}

func (r *SeatRepository) BookSeats(ctx context.Context, tx transaction.Tx, showingID string, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE seats SET status = 'booked', updated_at = NOW(), version = version + 1 WHERE showing_id = $1 AND label = ANY($2) AND status = 'reserved'`
	result, err := sqlxTx.ExecContext(ctx, query, showingID, pq.Array(labels))
	if err != nil {
		return fmt.Errorf("座席確定に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if int(rows) != len(labels) {
		return seat.ErrSeatNotHeld
	}
	return nil
}

func (r *SeatRepository) ReleaseSeats(ctx context.Context, tx transaction.Tx, showingID string, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE seats SET status = 'available', held_by = NULL, held_at = NULL, updated_at = NOW(), version = version + 1 WHERE showing_id = $1 AND label = ANY($2)`
	_, err := sqlxTx.ExecContext(ctx, query, showingID, pq.Array(labels))
	return err
}

func (r *SeatRepository) CountAvailableByShowingID(ctx context.Context, showingID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM seats WHERE showing_id = $1 AND status = 'available'`, showingID)
	return count, err
}

var _ seat.Repository = (*SeatRepository)(nil)
