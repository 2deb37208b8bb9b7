package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/application"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/movie"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/tmdb"
)

type MovieHandler struct {
	movieService MovieServiceInterface
}

func NewMovieHandler(movieService MovieServiceInterface) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

type CreateMovieRequest struct {
	Title       string  `json:"title" validate:"required" example:"Fight Club"`
	Overview    string  `json:"overview" example:"An insomniac office worker..."`
	PosterPath  string  `json:"poster_path" example:"/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg"`
	ReleaseDate string  `json:"release_date" example:"1999-10-15"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=10" example:"8.4"`
}

type MovieResponse struct {
	ID          string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title       string  `json:"title" example:"Fight Club"`
	Overview    string  `json:"overview" example:"An insomniac office worker..."`
	PosterPath  string  `json:"poster_path" example:"/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg"`
	ReleaseDate string  `json:"release_date" example:"1999-10-15"`
	Rating      float64 `json:"rating" example:"8.4"`
	CreatedAt   string  `json:"created_at" example:"2025-12-06T10:00:00+09:00"`
}

func toMovieResponse(m *movie.Movie) *MovieResponse {
	return &MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
		Rating:      m.Rating,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary 作品を登録
// @Description 新しい上映作品を登録します
// @Tags movies
// @Accept json
// @Produce json
// @Param request body CreateMovieRequest true "作品情報"
// @Success 201 {object} MovieResponse
// @Failure 400 {object} map[string]string
// @Router /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	m, err := h.movieService.CreateMovie(c.Request().Context(), application.CreateMovieInput{
		Title:       req.Title,
		Overview:    req.Overview,
		PosterPath:  req.PosterPath,
		ReleaseDate: req.ReleaseDate,
		Rating:      req.Rating,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toMovieResponse(m))
}

// GetByID godoc
// @Summary 作品を取得
// @Description 指定IDの作品を取得します
// @Tags movies
// @Produce json
// @Param id path string true "作品ID"
// @Success 200 {object} MovieResponse
// @Failure 404 {object} map[string]string
// @Router /movies/{id} [get]
func (h *MovieHandler) GetByID(c echo.Context) error {
	m, err := h.movieService.GetMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, movie.ErrMovieNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toMovieResponse(m))
}

// List godoc
// @Summary 作品一覧を取得
// @Description 上映作品の一覧を取得します
// @Tags movies
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} MovieResponse
// @Router /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	movies, err := h.movieService.ListMovies(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]*MovieResponse, len(movies))
	for i, m := range movies {
		resp[i] = toMovieResponse(m)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary 作品を更新
// @Description 指定IDの作品を更新します
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "作品ID"
// @Param request body CreateMovieRequest true "作品情報"
// @Success 200 {object} MovieResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	var req CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	m, err := h.movieService.UpdateMovie(c.Request().Context(), application.UpdateMovieInput{
		ID:          c.Param("id"),
		Title:       req.Title,
		Overview:    req.Overview,
		PosterPath:  req.PosterPath,
		ReleaseDate: req.ReleaseDate,
		Rating:      req.Rating,
	})
	if err != nil {
		if errors.Is(err, movie.ErrMovieNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toMovieResponse(m))
}

// Delete godoc
// @Summary 作品を削除
// @Description 指定IDの作品を削除します
// @Tags movies
// @Param id path string true "作品ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	if err := h.movieService.DeleteMovie(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, movie.ErrMovieNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Regions godoc
// @Summary リージョン一覧を取得
// @Description 上映中作品を取得できるリージョンの一覧を返します
// @Tags movies
// @Produce json
// @Success 200 {array} tmdb.Region
// @Router /movies/regions [get]
func (h *MovieHandler) Regions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.movieService.Regions())
}

// ImportNowPlaying godoc
// @Summary 上映中作品を取り込み
// @Description 外部メタデータAPIから指定リージョンの上映中作品を取り込みます
// @Tags movies
// @Produce json
// @Param region query string false "リージョンコード" default(IN)
// @Success 200 {array} MovieResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /movies/import [post]
func (h *MovieHandler) ImportNowPlaying(c echo.Context) error {
	region := c.QueryParam("region")
	movies, err := h.movieService.ImportNowPlaying(c.Request().Context(), region)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrMetadataUnavailable):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, tmdb.ErrInvalidRegion):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
	}
	resp := make([]*MovieResponse, len(movies))
	for i, m := range movies {
		resp[i] = toMovieResponse(m)
	}
	return c.JSON(http.StatusOK, resp)
}
