package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/showing"
)

type ShowingHandler struct {
	showingService ShowingServiceInterface
}

func NewShowingHandler(showingService ShowingServiceInterface) *ShowingHandler {
	return &ShowingHandler{showingService: showingService}
}

type ShowingResponse struct {
	ID       string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	MovieID  string `json:"movie_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Showtime string `json:"showtime" example:"6:30 PM"`
}

type SeatResponse struct {
	Label  string `json:"label" example:"A1"`
	Row    string `json:"row" example:"A"`
	Number int    `json:"number" example:"1"`
	Status string `json:"status" example:"available"`
	Price  int    `json:"price" example:"300"`
}

type SeatMapResponse struct {
	ShowingID string         `json:"showing_id"`
	Seats     []SeatResponse `json:"seats"`
}

func toShowingResponse(s *showing.Showing) ShowingResponse {
	return ShowingResponse{ID: s.ID, MovieID: s.MovieID, Showtime: s.Showtime}
}

func toSeatResponse(s *seat.Seat) SeatResponse {
	return SeatResponse{
		Label:  s.Label,
		Row:    s.Row,
		Number: s.Number,
		Status: string(s.Status),
		Price:  s.Price,
	}
}

// Slots godoc
// @Summary 上映時刻の一覧を取得
// @Description 選択可能な上映時刻の固定枠を返します
// @Tags showings
// @Produce json
// @Success 200 {array} string
// @Router /showings/slots [get]
func (h *ShowingHandler) Slots(c echo.Context) error {
	return c.JSON(http.StatusOK, h.showingService.Slots())
}

// ListByMovie godoc
// @Summary 作品の上映回一覧を取得
// @Description 指定作品の上映回一覧を取得します
// @Tags showings
// @Produce json
// @Param movie_id query string true "作品ID"
// @Success 200 {array} ShowingResponse
// @Failure 400 {object} map[string]string
// @Router /showings [get]
func (h *ShowingHandler) ListByMovie(c echo.Context) error {
	movieID := c.QueryParam("movie_id")
	if movieID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "作品IDが必要です")
	}
	showings, err := h.showingService.ListShowings(c.Request().Context(), movieID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]ShowingResponse, len(showings))
	for i, s := range showings {
		resp[i] = toShowingResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetSeatMap godoc
// @Summary 上映回の座席表を取得
// @Description 上映回の座席カタログをカタログ順で返します
// @Tags showings
// @Produce json
// @Param id path string true "上映回ID"
// @Success 200 {object} SeatMapResponse
// @Failure 404 {object} map[string]string
// @Router /showings/{id}/seats [get]
func (h *ShowingHandler) GetSeatMap(c echo.Context) error {
	showingID := c.Param("id")
	seats, err := h.showingService.GetSeatMap(c.Request().Context(), showingID)
	if err != nil {
		if errors.Is(err, showing.ErrShowingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := SeatMapResponse{ShowingID: showingID, Seats: make([]SeatResponse, len(seats))}
	for i, s := range seats {
		resp.Seats[i] = toSeatResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}

// CountAvailable godoc
// @Summary 上映回の空席数を取得
// @Description 上映回の空席数を返します（キャッシュ利用）
// @Tags showings
// @Produce json
// @Param id path string true "上映回ID"
// @Success 200 {object} map[string]int
// @Router /showings/{id}/seats/available [get]
func (h *ShowingHandler) CountAvailable(c echo.Context) error {
	count, err := h.showingService.CountAvailableSeats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"available": count})
}
