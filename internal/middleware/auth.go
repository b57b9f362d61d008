package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/seojin/team-task-service/internal/domain"
	"github.com/seojin/team-task-service/internal/service"
)

// AccessTokenCookie это имя httponly-куки с access-токеном
const AccessTokenCookie = "access_token"

// RefreshTokenCookie это имя httponly-куки с refresh-токеном
const RefreshTokenCookie = "refresh_token"

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

const (
	// UserIDKey ключ контекста для ID пользователя
	UserIDKey ContextKey = "user_id"
	// UsernameKey ключ контекста для имени пользователя
	UsernameKey ContextKey = "username"
	// TeamKey ключ контекста для команды пользователя
	TeamKey ContextKey = "team"
)

// AuthMiddleware создает middleware для валидации JWT токенов.
// Токен берется из заголовка Authorization либо из httponly-куки.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"missing credentials"}}`, http.StatusUnauthorized)
				return
			}

			// Валидируем токен
			claims, err := authService.ValidateAccessToken(token)
			if err != nil {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"invalid or expired token"}}`, http.StatusUnauthorized)
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"invalid or expired token"}}`, http.StatusUnauthorized)
				return
			}

			// Добавляем claims в контекст
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)
			ctx = context.WithValue(ctx, TeamKey, domain.Team(claims.Team))

			// Вызываем следующий обработчик
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken достает токен из заголовка Authorization (Bearer)
// либо из куки access_token. Заголовок не в формате Bearer не мешает
// авторизоваться по куке.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GetUserIDFromContext извлекает ID пользователя из контекста
func GetUserIDFromContext(ctx context.Context) uuid.UUID {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetUsernameFromContext извлекает имя пользователя из контекста
func GetUsernameFromContext(ctx context.Context) string {
	username, ok := ctx.Value(UsernameKey).(string)
	if !ok {
		return ""
	}
	return username
}

// GetTeamFromContext извлекает команду пользователя из контекста
func GetTeamFromContext(ctx context.Context) domain.Team {
	team, ok := ctx.Value(TeamKey).(domain.Team)
	if !ok {
		return ""
	}
	return team
}
