// users.go — регистрация пользователей.
// Хэширование пароля — hex SHA-1, уникальность email обеспечивается
// unique-индексом в базе, а не предварительной проверкой.
package service

import (
	"context"
	"crypto/sha1" //nolint:gosec // SHA-1 — формат хранения паролей, зафиксированный контрактом данных
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/gofilesmanager/internal/domain/model"
	"github.com/bigkaa/gofilesmanager/internal/repository"
)

// UsersService — регистрация пользователей.
type UsersService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUsersService создаёт сервис пользователей.
func NewUsersService(users repository.UserRepository, logger *slog.Logger) *UsersService {
	return &UsersService{
		users:  users,
		logger: logger.With(slog.String("component", "users_service")),
	}
}

// Register создаёт пользователя. Email и пароль обязательны,
// дубликат email — ErrEmailTaken (атомарно, через unique index).
func (s *UsersService) Register(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	sum := sha1.Sum([]byte(password)) //nolint:gosec // см. комментарий пакета
	user := &model.User{
		Email:        email,
		PasswordHash: hex.EncodeToString(sum[:]),
	}

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	s.logger.Info("Пользователь зарегистрирован", slog.String("id", id.Hex()))
	return user, nil
}
