// users.go — обработчик POST /users (регистрация).
// Endpoint публичный: токен сессии не требуется.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/gofilesmanager/internal/api/errors"
	"github.com/bigkaa/gofilesmanager/internal/service"
)

// registerRequest — тело POST /users.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerResponse — ответ POST /users. Хэш пароля не возвращается.
type registerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// PostNew — реализация POST /users.
func (h *APIHandler) PostNew(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Malformed JSON body")
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingEmail):
			apierrors.ValidationError(w, "Missing email")
		case errors.Is(err, service.ErrMissingPassword):
			apierrors.ValidationError(w, "Missing password")
		case errors.Is(err, service.ErrEmailTaken):
			apierrors.ValidationError(w, "Already exist")
		default:
			h.logger.Error("Ошибка регистрации пользователя", slog.String("error", err.Error()))
			apierrors.InternalError(w, "Internal Server Error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:    user.ID.Hex(),
		Email: user.Email,
	})
}
