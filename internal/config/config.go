package config

import (
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション設定を表す
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	TMDB     TMDBConfig
	Booking  BookingConfig
	Payment  PaymentConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig はデータベース設定
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig はRedis設定
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AuthConfig は認証設定
type AuthConfig struct {
	JWTSecret string
}

// TMDBConfig は映画メタデータAPI設定
type TMDBConfig struct {
	BaseURL       string
	APIKey        string
	DefaultRegion string
	Timeout       time.Duration
}

// BookingConfig は予約フロー設定
type BookingConfig struct {
	DraftTTL        time.Duration // 予約下書きセッションの有効期限
	PendingExpiry   time.Duration // 支払い待ち予約の有効期限
	CleanerInterval time.Duration // 期限切れ予約クリーナーの実行間隔
}

// PaymentConfig は決済設定
type PaymentConfig struct {
	ProcessingDelay time.Duration // シミュレート決済の処理時間
}

// Load は環境変数から設定を読み込む
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "movie_booking"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret"),
		},
		TMDB: TMDBConfig{
			BaseURL:       getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			APIKey:        getEnv("TMDB_API_KEY", ""),
			DefaultRegion: getEnv("TMDB_DEFAULT_REGION", "IN"),
			Timeout:       getDurationEnv("TMDB_TIMEOUT", 10*time.Second),
		},
		Booking: BookingConfig{
			DraftTTL:        getDurationEnv("BOOKING_DRAFT_TTL", 30*time.Minute),
			PendingExpiry:   getDurationEnv("BOOKING_PENDING_EXPIRY", 15*time.Minute),
			CleanerInterval: getDurationEnv("BOOKING_CLEANER_INTERVAL", 1*time.Minute),
		},
		Payment: PaymentConfig{
			ProcessingDelay: getDurationEnv("PAYMENT_PROCESSING_DELAY", 2*time.Second),
		},
	}
}

// DSN はPostgreSQL接続文字列を返す
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
