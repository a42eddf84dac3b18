// auth.go — middleware аутентификации по сессионному токену.
// Извлекает X-Token, резолвит привязку токен → владелец через кэш сессий
// и помещает идентификатор владельца в контекст запроса.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apierrors "github.com/bigkaa/gofilesmanager/internal/api/errors"
	"github.com/bigkaa/gofilesmanager/internal/cache"
)

// TokenHeader — заголовок с сессионным токеном.
const TokenHeader = "X-Token"

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

// contextKeyOwnerID — идентификатор владельца в контексте запроса.
const contextKeyOwnerID contextKey = "owner_id"

// SessionResolver — резолвинг токена сессии в идентификатор владельца.
// Реализуется cache.Sessions.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// TokenAuth возвращает middleware аутентификации.
// Отсутствующий, неизвестный и нерезолвящийся токен дают одинаковый 401:
// различие между "истёк" и "не выдавался" не наблюдаемо.
func TokenAuth(sessions SessionResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)

			ownerHex, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				if !errors.Is(err, cache.ErrNoSession) {
					logger.Error("Ошибка резолвинга сессии",
						slog.String("error", err.Error()),
					)
				}
				apierrors.Unauthorized(w, "Unauthorized")
				return
			}

			// В кэше сессий хранится hex ObjectID владельца.
			// Непарсящееся значение — битая сессия, трактуем как отсутствие.
			ownerID, err := primitive.ObjectIDFromHex(ownerHex)
			if err != nil {
				logger.Warn("Некорректный идентификатор владельца в сессии",
					slog.String("owner_id", ownerHex),
				)
				apierrors.Unauthorized(w, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyOwnerID, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerFromContext возвращает идентификатор владельца из контекста запроса.
func OwnerFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	ownerID, ok := ctx.Value(contextKeyOwnerID).(primitive.ObjectID)
	return ownerID, ok
}

// WithOwner помещает идентификатор владельца в контекст.
// Используется тестами обработчиков.
func WithOwner(ctx context.Context, ownerID primitive.ObjectID) context.Context {
	return context.WithValue(ctx, contextKeyOwnerID, ownerID)
}
