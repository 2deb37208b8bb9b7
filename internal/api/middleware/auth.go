package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// userIDContextKey は認証済みユーザーIDを格納するコンテキストキー
const userIDContextKey = "user_id"

// JWTAuth はBearerトークンを検証し、ユーザーIDをコンテキストに格納するミドルウェア
// トークンの sub クレームをユーザーIDとして扱う
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが必要です")
			}
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorizationヘッダーの形式が不正です")
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが無効です")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが無効です")
			}
			sub, err := claims.GetSubject()
			if err != nil || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンにユーザーIDがありません")
			}

			c.Set(userIDContextKey, sub)
			return next(c)
		}
	}
}

// UserID はコンテキストから認証済みユーザーIDを取り出す
// 未認証の場合は空文字列を返す
func UserID(c echo.Context) string {
	if id, ok := c.Get(userIDContextKey).(string); ok {
		return id
	}
	return ""
}

// SetUserID はテスト用にユーザーIDをコンテキストへ設定する
func SetUserID(c echo.Context, userID string) {
	c.Set(userIDContextKey, userID)
}
