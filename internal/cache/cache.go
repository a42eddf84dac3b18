// Пакет cache — подключение к Redis и резолвинг сессионных токенов.
// Сессии создаются и инвалидируются снаружи (выдача токенов — вне этого
// сервиса), здесь выполняется только чтение привязки токен → владелец.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bigkaa/gofilesmanager/internal/config"
)

// sessionKeyPrefix — префикс ключей сессий в Redis: auth_<token>.
const sessionKeyPrefix = "auth_"

// ErrNoSession — токен пуст либо привязка токен → владелец отсутствует.
// Различие между "истёк" и "никогда не выдавался" не наблюдаемо.
var ErrNoSession = errors.New("сессия не найдена")

// Connect создаёт клиент Redis и выполняет ping для проверки доступности.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	logger.Info("Подключение к Redis установлено",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	return rdb, nil
}

// Sessions — read-only доступ к привязкам токен → владелец в Redis.
type Sessions struct {
	rdb *redis.Client
}

// NewSessions создаёт резолвер сессий поверх клиента Redis.
func NewSessions(rdb *redis.Client) *Sessions {
	return &Sessions{rdb: rdb}
}

// Resolve возвращает идентификатор владельца по токену сессии.
// Пустой токен и отсутствующая привязка дают ErrNoSession.
func (s *Sessions) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNoSession
	}

	ownerID, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("ошибка чтения сессии из Redis: %w", err)
	}
	return ownerID, nil
}

// ReadinessChecker — проверка готовности Redis для health endpoint.
// Реализует интерфейс handlers.ReadinessChecker.
type ReadinessChecker struct {
	rdb *redis.Client
}

// NewReadinessChecker создаёт проверку готовности Redis.
func NewReadinessChecker(rdb *redis.Client) *ReadinessChecker {
	return &ReadinessChecker{rdb: rdb}
}

// CheckReady проверяет подключение к Redis через ping.
// Возвращает статус ("ok", "fail") и сообщение.
func (c *ReadinessChecker) CheckReady() (status string, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return "fail", fmt.Sprintf("Redis недоступен: %v", err)
	}
	return "ok", "подключение активно"
}
