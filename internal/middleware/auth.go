package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName — имя cookie с JWT сессии.
	CookieName = "auth_token"
	// SessionTTL — срок жизни сессии без активности.
	SessionTTL = 30 * 24 * time.Hour
	// renewAfter — возраст токена, после которого cookie перевыпускается на очередном запросе.
	renewAfter = 24 * time.Hour
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// BuildJWT подписывает токен сессии для пользователя (HS256, sub = id).
func BuildJWT(userID, secret string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseJWT проверяет подпись и срок действия токена.
func ParseJWT(tokenStr, secret string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SetLoginCookie выпускает токен и кладёт его в HttpOnly cookie.
func SetLoginCookie(w http.ResponseWriter, userID, secret string) error {
	token, err := BuildJWT(userID, secret, time.Now())
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})
	return nil
}

// ClearLoginCookie удаляет cookie сессии.
func ClearLoginCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// WithAuth читает cookie и, если токен валиден, кладёт user_id в контекст.
// Запрос не отклоняется: это делает RequireAuth.
// Токен старше суток перевыпускается, так что активная сессия не истекает.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(CookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := ParseJWT(c.Value, secret)
			if err != nil {
				if logger != nil {
					logger.Debugw("auth: invalid token", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if claims.IssuedAt != nil && time.Since(claims.IssuedAt.Time) > renewAfter {
				if err := SetLoginCookie(w, claims.Subject, secret); err != nil && logger != nil {
					logger.Warnw("auth: failed to renew session", "user_id", claims.Subject, "error", err)
				}
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext возвращает id пользователя, установленный WithAuth.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// WithUserID кладёт id пользователя в контекст (для тестов и внутренних вызовов).
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
