package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
)

type contextKey string

const adminIDKey contextKey = "admin_id"

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "недействительный токен авторизации"
	msgNotAdmin     = "требуются права администратора"
)

var ErrInvalidToken = errors.New("auth: invalid token")

// Claims токен администратора, выданный внешним провайдером авторизации
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthConfig параметры проверки токена
type AuthConfig struct {
	Secret    string
	Issuer    string // пустой - issuer не проверяется
	AdminRole string
}

// ParseToken проверяет подпись HMAC и стандартные claims
func ParseToken(raw string, cfg AuthConfig) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Auth пропускает только запросы с валидным Bearer токеном администратора
// Идентификатор администратора (sub) кладется в контекст
func Auth(cfg AuthConfig, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(raw) == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := ParseToken(strings.TrimSpace(raw), cfg)
			if err != nil {
				logger.Warn("Auth - Invalid token: %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			if cfg.AdminRole != "" && claims.Role != cfg.AdminRole {
				logger.Warn("Auth - Not an admin: subject=%s, role=%s", claims.Subject, claims.Role)
				handlers.RespondForbidden(w, msgNotAdmin)
				return
			}

			ctx := context.WithValue(r.Context(), adminIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminID извлекает идентификатор администратора из контекста
func GetAdminID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(adminIDKey).(string)
	return id, ok
}

// WithAdminID кладет идентификатор администратора в контекст (используется в тестах хендлеров)
func WithAdminID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, adminIDKey, id)
}
