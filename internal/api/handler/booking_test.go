package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/api/middleware"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/application"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/booking"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
)

// MockBookingService はBookingServiceInterfaceのモック
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) StartDraft(ctx context.Context, userID, movieID string) (*booking.Draft, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Draft), args.Error(1)
}

func (m *MockBookingService) GetDraft(ctx context.Context, userID, draftID string) (*booking.Draft, error) {
	args := m.Called(ctx, userID, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Draft), args.Error(1)
}

func (m *MockBookingService) ChooseShowtime(ctx context.Context, userID, draftID, slot string) (*booking.Draft, error) {
	args := m.Called(ctx, userID, draftID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Draft), args.Error(1)
}

func (m *MockBookingService) ToggleSeat(ctx context.Context, userID, draftID, label string) (*booking.Draft, error) {
	args := m.Called(ctx, userID, draftID, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Draft), args.Error(1)
}

func (m *MockBookingService) Checkout(ctx context.Context, userID, draftID string) (*booking.Draft, error) {
	args := m.Called(ctx, userID, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Draft), args.Error(1)
}

func (m *MockBookingService) Pay(ctx context.Context, input application.PayInput) (*booking.Confirmation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Confirmation), args.Error(1)
}

func (m *MockBookingService) CancelDraft(ctx context.Context, userID, draftID string) error {
	args := m.Called(ctx, userID, draftID)
	return args.Error(0)
}

func (m *MockBookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func testDraft(stage booking.Stage) *booking.Draft {
	now := time.Now()
	d := &booking.Draft{
		ID:     "draft-123",
		UserID: "user-123",
		Movie: booking.MovieRef{
			ID:    "movie-123",
			Title: "Fight Club",
		},
		Stage:     stage,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if stage != booking.StageShowtimeSelection {
		d.ShowingID = "showing-123"
		d.Showtime = "6:30 PM"
		d.Seats = []booking.DraftSeat{
			{Label: "A1", Row: "A", Number: 1, Status: booking.SeatSelected, Price: 300},
			{Label: "A2", Row: "A", Number: 2, Status: booking.SeatAvailable, Price: 300},
			{Label: "D1", Row: "D", Number: 1, Status: booking.SeatBooked, Price: 250},
		}
		d.SelectedLabels = []string{"A1"}
	}
	return d
}

// authedContext は認証済みユーザーを設定したコンテキストを作る
func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID string) echo.Context {
	c := e.NewContext(req, rec)
	if userID != "" {
		middleware.SetUserID(c, userID)
	}
	return c
}

func TestBookingHandler_StartDraft(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に下書きを作成できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("StartDraft", mock.Anything, "user-123", "movie-123").
			Return(testDraft(booking.StageShowtimeSelection), nil)

		handler := NewBookingHandler(mockService)

		reqBody := `{"movie_id": "movie-123"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")

		err := handler.StartDraft(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp DraftResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "draft-123", resp.ID)
		assert.Equal(t, "showtime_selection", resp.Stage)
		assert.Equal(t, "Fight Club", resp.Movie.Title)

		mockService.AssertExpectations(t)
	})

	t.Run("未認証の場合401", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := NewBookingHandler(mockService)

		reqBody := `{"movie_id": "movie-123"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "")

		err := handler.StartDraft(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("作品が見つからない場合400", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("StartDraft", mock.Anything, "user-123", "movie-404").
			Return(nil, assert.AnError)

		handler := NewBookingHandler(mockService)

		reqBody := `{"movie_id": "movie-404"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")

		err := handler.StartDraft(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestBookingHandler_GetDraft(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に下書きを取得できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("GetDraft", mock.Anything, "user-123", "draft-123").
			Return(testDraft(booking.StageSeatSelection), nil)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/bookings/drafts/draft-123", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.GetDraft(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp DraftResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "seat_selection", resp.Stage)
		assert.Equal(t, []string{"A1"}, resp.SelectedLabels)
		assert.Equal(t, 300, resp.TotalAmount)

		mockService.AssertExpectations(t)
	})

	t.Run("他人の下書きの場合403", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("GetDraft", mock.Anything, "user-456", "draft-123").
			Return(nil, booking.ErrDraftNotOwned)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/bookings/drafts/draft-123", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-456")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.GetDraft(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("下書きが見つからない場合404", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("GetDraft", mock.Anything, "user-123", "nonexistent").
			Return(nil, booking.ErrDraftNotFound)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/bookings/drafts/nonexistent", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("nonexistent")

		err := handler.GetDraft(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestBookingHandler_ChooseShowtime(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に上映時刻を選択できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("ChooseShowtime", mock.Anything, "user-123", "draft-123", "6:30 PM").
			Return(testDraft(booking.StageSeatSelection), nil)

		handler := NewBookingHandler(mockService)

		reqBody := `{"showtime": "6:30 PM"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/showtime", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.ChooseShowtime(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp DraftResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "6:30 PM", resp.Showtime)
		assert.Len(t, resp.Seats, 3)

		mockService.AssertExpectations(t)
	})

	t.Run("選択済みの場合409", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("ChooseShowtime", mock.Anything, "user-123", "draft-123", "9:00 PM").
			Return(nil, booking.ErrShowtimeAlreadyChosen)

		handler := NewBookingHandler(mockService)

		reqBody := `{"showtime": "9:00 PM"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/showtime", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.ChooseShowtime(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("上映時刻が空の場合バリデーションエラー", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := NewBookingHandler(mockService)

		reqBody := `{"showtime": ""}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/showtime", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.ChooseShowtime(c)

		require.Error(t, err)
	})
}

func TestBookingHandler_ToggleSeat(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に座席を選択できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("ToggleSeat", mock.Anything, "user-123", "draft-123", "A1").
			Return(testDraft(booking.StageSeatSelection), nil)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/seats/A1", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id", "label")
		c.SetParamValues("draft-123", "A1")

		err := handler.ToggleSeat(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("選択上限に達している場合409", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("ToggleSeat", mock.Anything, "user-123", "draft-123", "B5").
			Return(nil, booking.ErrSelectionLimitReached)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/seats/B5", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id", "label")
		c.SetParamValues("draft-123", "B5")

		err := handler.ToggleSeat(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("存在しない座席の場合404", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("ToggleSeat", mock.Anything, "user-123", "draft-123", "Z9").
			Return(nil, booking.ErrSeatNotInCatalog)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/seats/Z9", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id", "label")
		c.SetParamValues("draft-123", "Z9")

		err := handler.ToggleSeat(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestBookingHandler_Checkout(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常にチェックアウトできる", func(t *testing.T) {
		mockService := new(MockBookingService)
		draft := testDraft(booking.StagePaymentPending)
		draft.BookingID = "booking-123"
		mockService.On("Checkout", mock.Anything, "user-123", "draft-123").Return(draft, nil)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/checkout", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.Checkout(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp DraftResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "payment_pending", resp.Stage)
		assert.Equal(t, "booking-123", resp.BookingID)

		mockService.AssertExpectations(t)
	})

	t.Run("座席が未選択の場合400", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("Checkout", mock.Anything, "user-123", "draft-123").
			Return(nil, booking.ErrNoSeatsSelected)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/checkout", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.Checkout(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("座席が既に予約済みの場合409", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("Checkout", mock.Anything, "user-123", "draft-123").
			Return(nil, seat.ErrSeatAlreadyTaken)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/checkout", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.Checkout(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("座席が処理中の場合409", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("Checkout", mock.Anything, "user-123", "draft-123").
			Return(nil, application.ErrSeatsBeingProcessed)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/checkout", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.Checkout(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestBookingHandler_Pay(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に決済して確定できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		confirmation := &booking.Confirmation{
			BookingID: "booking-123",
			Movie:     booking.MovieRef{ID: "movie-123", Title: "Fight Club"},
			Showtime:  "6:30 PM",
			Seats: []booking.DraftSeat{
				{Label: "A1", Row: "A", Number: 1, Status: booking.SeatSelected, Price: 300},
			},
			TotalAmount:   300,
			PaymentMethod: "upi",
			BookedAt:      time.Now(),
		}
		mockService.On("Pay", mock.Anything, mock.AnythingOfType("application.PayInput")).
			Run(func(args mock.Arguments) {
				input := args.Get(1).(application.PayInput)
				assert.Equal(t, "user-123", input.UserID)
				assert.Equal(t, "draft-123", input.DraftID)
				assert.Equal(t, "vijay@upi", input.Details.UPIID)
			}).
			Return(confirmation, nil)

		handler := NewBookingHandler(mockService)

		reqBody := `{"method": "upi", "details": {"upi_id": "vijay@upi"}}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/payment", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.Pay(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp booking.Confirmation
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "booking-123", resp.BookingID)
		assert.Equal(t, "upi", resp.PaymentMethod)
		require.Len(t, resp.Seats, 1)
		assert.Equal(t, "A1", resp.Seats[0].Label)

		mockService.AssertExpectations(t)
	})

	t.Run("不正な決済手段の場合バリデーションエラー", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := NewBookingHandler(mockService)

		reqBody := `{"method": "bitcoin", "details": {}}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/payment", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.Pay(c)

		require.Error(t, err)
	})

	t.Run("予約が期限切れの場合410", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("Pay", mock.Anything, mock.AnythingOfType("application.PayInput")).
			Return(nil, booking.ErrBookingExpired)

		handler := NewBookingHandler(mockService)

		reqBody := `{"method": "upi", "details": {"upi_id": "vijay@upi"}}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/payment", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.Pay(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusGone, he.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("支払い待ち段階ではない場合409", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("Pay", mock.Anything, mock.AnythingOfType("application.PayInput")).
			Return(nil, booking.ErrNotInPaymentPending)

		handler := NewBookingHandler(mockService)

		reqBody := `{"method": "card", "details": {"card_number": "4111111111111111", "card_name": "VIJAY", "expiry_date": "12/27", "cvv": "123"}}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/drafts/draft-123/payment", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.Pay(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestBookingHandler_CancelDraft(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に下書きを破棄できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("CancelDraft", mock.Anything, "user-123", "draft-123").Return(nil)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/bookings/drafts/draft-123", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("draft-123")

		err := handler.CancelDraft(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("下書きが見つからない場合404", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("CancelDraft", mock.Anything, "user-123", "nonexistent").
			Return(booking.ErrDraftNotFound)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/bookings/drafts/nonexistent", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")
		c.SetParamNames("id")
		c.SetParamValues("nonexistent")

		err := handler.CancelDraft(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestBookingHandler_GetUserBookings(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常にユーザーの予約一覧を取得できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		now := time.Now()
		bookings := []*booking.Booking{
			{ID: "booking-1", UserID: "user-123", ShowingID: "showing-1", Showtime: "6:30 PM", SeatLabels: []string{"A1"}, TotalAmount: 300, Status: booking.StatusConfirmed, ExpiresAt: now, CreatedAt: now, UpdatedAt: now},
			{ID: "booking-2", UserID: "user-123", ShowingID: "showing-2", Showtime: "9:00 PM", SeatLabels: []string{"B1", "B2"}, TotalAmount: 600, Status: booking.StatusPending, ExpiresAt: now.Add(15 * time.Minute), CreatedAt: now, UpdatedAt: now},
		}

		mockService.On("GetUserBookings", mock.Anything, "user-123", 0, 0).Return(bookings, nil)

		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "user-123")

		err := handler.GetUserBookings(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp []BookingResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "confirmed", resp[0].Status)

		mockService.AssertExpectations(t)
	})

	t.Run("未認証の場合401", func(t *testing.T) {
		mockService := new(MockBookingService)
		handler := NewBookingHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec, "")

		err := handler.GetUserBookings(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}
