package handler

import (
	"context"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/application"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/booking"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/movie"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/showing"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/tmdb"
)

// MovieServiceInterface は作品サービスのインターフェース
type MovieServiceInterface interface {
	CreateMovie(ctx context.Context, input application.CreateMovieInput) (*movie.Movie, error)
	GetMovie(ctx context.Context, id string) (*movie.Movie, error)
	ListMovies(ctx context.Context, limit, offset int) ([]*movie.Movie, error)
	UpdateMovie(ctx context.Context, input application.UpdateMovieInput) (*movie.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
	Regions() []tmdb.Region
	ImportNowPlaying(ctx context.Context, region string) ([]*movie.Movie, error)
	ImportTopRated(ctx context.Context) ([]*movie.Movie, error)
}

// ShowingServiceInterface は上映回サービスのインターフェース
type ShowingServiceInterface interface {
	Slots() []string
	EnsureShowing(ctx context.Context, movieID, slot string) (*showing.Showing, error)
	GetShowing(ctx context.Context, id string) (*showing.Showing, error)
	ListShowings(ctx context.Context, movieID string) ([]*showing.Showing, error)
	GetSeatMap(ctx context.Context, showingID string) ([]*seat.Seat, error)
	CountAvailableSeats(ctx context.Context, showingID string) (int, error)
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	StartDraft(ctx context.Context, userID, movieID string) (*booking.Draft, error)
	GetDraft(ctx context.Context, userID, draftID string) (*booking.Draft, error)
	ChooseShowtime(ctx context.Context, userID, draftID, slot string) (*booking.Draft, error)
	ToggleSeat(ctx context.Context, userID, draftID, label string) (*booking.Draft, error)
	Checkout(ctx context.Context, userID, draftID string) (*booking.Draft, error)
	Pay(ctx context.Context, input application.PayInput) (*booking.Confirmation, error)
	CancelDraft(ctx context.Context, userID, draftID string) error
	GetBooking(ctx context.Context, id string) (*booking.Booking, error)
	GetUserBookings(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error)
}
