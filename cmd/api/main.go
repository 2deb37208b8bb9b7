package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/api"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/api/handler"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/api/middleware"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/application"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/config"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
	paymentinfra "github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/payment"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/tmdb"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/metrics"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/worker"
)

func main() {
	// .env があれば読み込む（本番では環境変数を直接使う）
	_ = godotenv.Load()

	cfg := config.Load()
	defer logger.Sync()

	// DB接続とマイグレーション
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗しました", zap.Error(err))
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
	}

	// Redis接続
	redisClient, err := redisinfra.NewClient(&redisinfra.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("Redis接続に失敗しました", zap.Error(err))
	}
	defer redisClient.Close()

	// メトリクス
	m := metrics.Init()

	// リポジトリ
	movieRepo := postgres.NewMovieRepository(db)
	showingRepo := postgres.NewShowingRepository(db)
	seatRepo := postgres.NewSeatRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	txManager := postgres.NewTxManager(db)

	// Redisベースのインフラ
	lockManager := redisinfra.NewLockManager(redisClient)
	seatCache := redisinfra.NewSeatCache(redisClient)
	draftStore := redisinfra.NewDraftStore(redisClient, cfg.Booking.DraftTTL)

	// 外部メタデータAPI（APIキー未設定時は取り込み機能を無効化）
	var tmdbClient *tmdb.Client
	if cfg.TMDB.APIKey != "" {
		tmdbClient = tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.DefaultRegion, cfg.TMDB.Timeout)
	} else {
		logger.Warn("TMDB_API_KEY が未設定のため作品取り込みは無効です")
	}

	// 決済（シミュレート実装）
	processor := paymentinfra.NewSimulatedProcessor(cfg.Payment.ProcessingDelay)

	// サービス
	movieService := application.NewMovieService(movieRepo, tmdbClient)
	showingService := application.NewShowingService(showingRepo, seatRepo, movieRepo, seatCache, seat.DefaultLayout(), nil)
	bookingService := application.NewBookingService(txManager, bookingRepo, seatRepo, movieRepo, draftStore, showingService, processor, lockManager, m)

	// ハンドラー
	movieHandler := handler.NewMovieHandler(movieService)
	showingHandler := handler.NewShowingHandler(showingService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	healthHandler := handler.NewHealthHandler()

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e)
	e.Use(middleware.PrometheusMiddleware(m))

	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")

	v1.POST("/movies", movieHandler.Create)
	v1.GET("/movies", movieHandler.List)
	v1.GET("/movies/regions", movieHandler.Regions)
	v1.POST("/movies/import", movieHandler.ImportNowPlaying)
	v1.GET("/movies/:id", movieHandler.GetByID)
	v1.PUT("/movies/:id", movieHandler.Update)
	v1.DELETE("/movies/:id", movieHandler.Delete)

	v1.GET("/showings/slots", showingHandler.Slots)
	v1.GET("/showings", showingHandler.ListByMovie)
	v1.GET("/showings/:id/seats", showingHandler.GetSeatMap)
	v1.GET("/showings/:id/seats/available", showingHandler.CountAvailable)

	// 予約ウィザードは認証必須
	bookings := v1.Group("/bookings", middleware.JWTAuth(cfg.Auth.JWTSecret))
	bookings.POST("/drafts", bookingHandler.StartDraft)
	bookings.GET("/drafts/:id", bookingHandler.GetDraft)
	bookings.DELETE("/drafts/:id", bookingHandler.CancelDraft)
	bookings.POST("/drafts/:id/showtime", bookingHandler.ChooseShowtime)
	bookings.POST("/drafts/:id/seats/:label", bookingHandler.ToggleSeat)
	bookings.POST("/drafts/:id/checkout", bookingHandler.Checkout)
	bookings.POST("/drafts/:id/payment", bookingHandler.Pay)
	bookings.GET("", bookingHandler.GetUserBookings)
	bookings.GET("/:id", bookingHandler.GetByID)

	// 期限切れ予約クリーナー
	cleaner := worker.NewExpiredBookingCleaner(bookingService, cfg.Booking.CleanerInterval)
	go cleaner.Start(context.Background())

	// サーバー起動
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	cleaner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
