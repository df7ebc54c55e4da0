package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/TA-BookingEngine/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "userRole"
)

// Роли, которые принимает заголовок X-User-Role
const (
	RoleCustomer = "customer"
	RoleAgent    = "agent"
)

// Auth проверяет наличие X-User-ID и помещает идентичность
// вызывающего в контекст запроса
// Аутентификация выполняется внешним слоем (API gateway),
// движок доверяет заголовкам
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-User-ID")
			return
		}

		role := r.Header.Get("X-User-Role")
		switch role {
		case RoleAgent:
		case RoleCustomer, "":
			role = RoleCustomer
		default:
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-User-Role")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, roleKey, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает ID пользователя из контекста запроса
// Валидна только после middleware Auth
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// Role возвращает роль пользователя из контекста запроса
func Role(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	if role == "" {
		return RoleCustomer
	}
	return role
}
