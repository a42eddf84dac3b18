// handler.go — основной обработчик API Files Manager.
// Объединяет health и бизнес-обработчики, делегируя запросы в сервисный слой.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bigkaa/gofilesmanager/internal/domain/model"
	"github.com/bigkaa/gofilesmanager/internal/service"
)

// FilesService — операции над записями файлов/папок.
// Реализуется service.FilesService.
type FilesService interface {
	Upload(ctx context.Context, ownerID primitive.ObjectID, req service.UploadRequest) (*service.UploadResult, error)
	Show(ctx context.Context, ownerID primitive.ObjectID, id string) (*model.FileRecord, error)
	Index(ctx context.Context, ownerID primitive.ObjectID, parentID string, page int) ([]*model.FileRecord, error)
}

// UsersService — регистрация пользователей.
// Реализуется service.UsersService.
type UsersService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
}

// APIHandler — основной обработчик API Files Manager.
type APIHandler struct {
	files  FilesService
	users  UsersService
	health *HealthHandler
	logger *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	files FilesService,
	users UsersService,
	health *HealthHandler,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		files:  files,
		users:  users,
		health: health,
		logger: logger.With(slog.String("component", "api_handler")),
	}
}

// --- Health endpoints (делегируются в HealthHandler) ---

// HealthLive — liveness probe.
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe.
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики.
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// parsePage нормализует номер страницы из query-параметра.
// Нечисловые и отрицательные значения дают нулевую страницу, не ошибку.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0
	}
	return page
}
