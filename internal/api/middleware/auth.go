// auth.go — JWT middleware: проверка Bearer-токена и помещение claims в контекст.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/bigkaa/fichas-admin/internal/api/errors"
	"github.com/bigkaa/fichas-admin/internal/auth"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

const (
	// ContextKeyClaims — claims токена в контексте запроса.
	ContextKeyClaims contextKey = "jwt_claims"
)

// Сообщения об ошибках авторизации.
const (
	MsgTokenMissing = "Token no proporcionado"
	MsgTokenInvalid = "Token inválido"
)

// TokenParser проверяет токен. Реализуется *auth.Issuer.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// JWTAuth — middleware JWT-аутентификации.
type JWTAuth struct {
	parser TokenParser
	logger *slog.Logger
}

// NewJWTAuth создаёт JWT middleware.
func NewJWTAuth(parser TokenParser, logger *slog.Logger) *JWTAuth {
	return &JWTAuth{
		parser: parser,
		logger: logger.With(slog.String("component", "jwt_auth")),
	}
}

// Middleware возвращает HTTP middleware.
// Нет токена — 401, токен невалиден или просрочен — 403.
func (j *JWTAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
			token = strings.TrimSpace(token)
			if token == "" {
				apierrors.Unauthorized(w, MsgTokenMissing)
				return
			}
			if !strings.EqualFold(scheme, "Bearer") {
				apierrors.Forbidden(w, MsgTokenInvalid)
				return
			}

			claims, err := j.parser.Parse(token)
			if err != nil {
				j.logger.Debug("JWT валидация не пройдена",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				apierrors.Forbidden(w, MsgTokenInvalid)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext извлекает claims из контекста запроса.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(*auth.Claims)
	return claims, ok && claims != nil
}

// WithClaims помещает claims в контекст. Используется в тестах обработчиков.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ContextKeyClaims, claims)
}
