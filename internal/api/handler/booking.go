package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/api/middleware"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/application"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/booking"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/payment"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type StartDraftRequest struct {
	MovieID string `json:"movie_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

type ChooseShowtimeRequest struct {
	Showtime string `json:"showtime" validate:"required" example:"6:30 PM"`
}

type PayRequest struct {
	Method  string          `json:"method" validate:"required,oneof=card upi netbanking" example:"upi"`
	Details payment.Details `json:"details"`
}

type DraftSeatResponse struct {
	Label  string `json:"label" example:"A1"`
	Row    string `json:"row" example:"A"`
	Number int    `json:"number" example:"1"`
	Status string `json:"status" example:"selected"`
	Price  int    `json:"price" example:"300"`
}

type DraftResponse struct {
	ID             string              `json:"id"`
	Stage          string              `json:"stage" example:"seat_selection"`
	Movie          booking.MovieRef    `json:"movie"`
	ShowingID      string              `json:"showing_id,omitempty"`
	Showtime       string              `json:"showtime,omitempty"`
	Seats          []DraftSeatResponse `json:"seats,omitempty"`
	SelectedLabels []string            `json:"selected_labels,omitempty"`
	TotalAmount    int                 `json:"total_amount"`
	BookingID      string              `json:"booking_id,omitempty"`
}

type BookingResponse struct {
	ID            string     `json:"id"`
	ShowingID     string     `json:"showing_id"`
	MovieID       string     `json:"movie_id"`
	Showtime      string     `json:"showtime" example:"6:30 PM"`
	SeatLabels    []string   `json:"seat_labels" example:"A1,A2"`
	TotalAmount   int        `json:"total_amount" example:"600"`
	Status        string     `json:"status" example:"confirmed"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	ExpiresAt     time.Time  `json:"expires_at"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toDraftResponse(d *booking.Draft) DraftResponse {
	seats := make([]DraftSeatResponse, len(d.Seats))
	for i, s := range d.Seats {
		seats[i] = DraftSeatResponse{
			Label:  s.Label,
			Row:    s.Row,
			Number: s.Number,
			Status: string(s.Status),
			Price:  s.Price,
		}
	}
	return DraftResponse{
		ID:             d.ID,
		Stage:          string(d.Stage),
		Movie:          d.Movie,
		ShowingID:      d.ShowingID,
		Showtime:       d.Showtime,
		Seats:          seats,
		SelectedLabels: d.SelectedLabels,
		TotalAmount:    d.TotalAmount(),
		BookingID:      d.BookingID,
	}
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID: b.ID, ShowingID: b.ShowingID, MovieID: b.MovieID,
		Showtime: b.Showtime, SeatLabels: b.SeatLabels,
		TotalAmount: b.TotalAmount, Status: string(b.Status),
		PaymentMethod: b.PaymentMethod, ExpiresAt: b.ExpiresAt,
		ConfirmedAt: b.ConfirmedAt, CreatedAt: b.CreatedAt,
	}
}

// draftErrorStatus はウィザード操作のドメインエラーをHTTPステータスに対応付ける
func draftErrorStatus(err error) int {
	switch {
	case errors.Is(err, booking.ErrDraftNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrSeatNotInCatalog):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrDraftNotOwned):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrShowtimeAlreadyChosen),
		errors.Is(err, booking.ErrNotInSeatSelection),
		errors.Is(err, booking.ErrNotInPaymentPending),
		errors.Is(err, booking.ErrSelectionLimitReached),
		errors.Is(err, booking.ErrBookingNotPending),
		errors.Is(err, seat.ErrSeatAlreadyTaken),
		errors.Is(err, application.ErrSeatsBeingProcessed):
		return http.StatusConflict
	case errors.Is(err, booking.ErrBookingExpired):
		return http.StatusGone
	default:
		return http.StatusBadRequest
	}
}

// StartDraft godoc
// @Summary 予約ウィザードを開始
// @Description 作品を指定して予約下書きを作成します
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body StartDraftRequest true "対象作品"
// @Success 201 {object} DraftResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings/drafts [post]
func (h *BookingHandler) StartDraft(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}
	var req StartDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	draft, err := h.service.StartDraft(c.Request().Context(), userID, req.MovieID)
	if err != nil {
		return echo.NewHTTPError(draftErrorStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, toDraftResponse(draft))
}

// GetDraft godoc
// @Summary 予約下書きを取得
// @Description 進行中の予約下書きを取得します
// @Tags bookings
// @Produce json
// @Param id path string true "下書きID"
// @Success 200 {object} DraftResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/drafts/{id} [get]
func (h *BookingHandler) GetDraft(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}
	draft, err := h.service.GetDraft(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(draftErrorStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, toDraftResponse(draft))
}

// ChooseShowtime godoc
// @Summary 上映時刻を選択
// @Description 上映時刻を選択し、座席選択段階へ進みます（以降変更不可）
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "下書きID"
// @Param request body ChooseShowtimeRequest true "上映時刻"
// @Success 200 {object} DraftResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "上映時刻は選択済み"
// @Router /bookings/drafts/{id}/showtime [post]
func (h *BookingHandler) ChooseShowtime(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}
	var req ChooseShowtimeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	draft, err := h.service.ChooseShowtime(c.Request().Context(), userID, c.Param("id"), req.Showtime)
	if err != nil {
		return echo.NewHTTPError(draftErrorStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, toDraftResponse(draft))
}

// ToggleSeat godoc
// @Summary 座席の選択を切り替え
// @Description 座席の選択状態を切り替えます（予約済み座席は変化しません）
// @Tags bookings
// @Produce json
// @Param id path string true "下書きID"
// @Param label path string true "座席ラベル"
// @Success 200 {object} DraftResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "選択上限に到達"
// @Router /bookings/drafts/{id}/seats/{label} [post]
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}
	draft, err := h.service.ToggleSeat(c.Request().Context(), userID, c.Param("id"), c.Param("label"))
	if err != nil {
		return echo.NewHTTPError(draftErrorStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, toDraftResponse(draft))
}

// Checkout godoc
// @Summary 座席選択を確定して支払いへ進む
// @Description 選択した座席を保持し、支払い待ち予約を作成します（15分間有効）
// @Tags bookings
// @Produce json
// @Param id path string true "下書きID"
// @Success 200 {object} DraftResponse
// @Failure 400 {object} map[string]string "座席が未選択"
// @Failure 409 {object} map[string]string "座席が既に予約済み"
// @Router /bookings/drafts/{id}/checkout [post]
func (h *BookingHandler) Checkout(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}
	draft, err := h.service.Checkout(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(draftErrorStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, toDraftResponse(draft))
}

// Pay godoc
// @Summary 決済を実行して予約を確定
// @Description 支払い待ち予約の決済を行い、確定画面用のペイロードを返します
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "下書きID"
// @Param request body PayRequest true "決済情報"
// @Success 200 {object} booking.Confirmation
// @Failure 400 {object} map[string]string "決済情報が不足"
// @Failure 410 {object} map[string]string "予約が期限切れ"
// @Router /bookings/drafts/{id}/payment [post]
func (h *BookingHandler) Pay(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}
	var req PayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	confirmation, err := h.service.Pay(c.Request().Context(), application.PayInput{
		UserID:  userID,
		DraftID: c.Param("id"),
		Method:  payment.Method(req.Method),
		Details: req.Details,
	})
	if err != nil {
		return echo.NewHTTPError(draftErrorStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, confirmation)
}

// CancelDraft godoc
// @Summary 予約ウィザードを中断
// @Description 下書きを破棄し、保持済みの座席があれば解放します
// @Tags bookings
// @Param id path string true "下書きID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /bookings/drafts/{id} [delete]
func (h *BookingHandler) CancelDraft(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}
	if err := h.service.CancelDraft(c.Request().Context(), userID, c.Param("id")); err != nil {
		return echo.NewHTTPError(draftErrorStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetByID godoc
// @Summary 予約を取得
// @Description 指定IDの予約を取得します
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	b, err := h.service.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// GetUserBookings godoc
// @Summary ユーザーの予約一覧を取得
// @Description ログインユーザーの予約一覧を取得します
// @Tags bookings
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) GetUserBookings(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	bookings, err := h.service.GetUserBookings(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}
