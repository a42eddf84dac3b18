// files.go — обработчики POST /files, GET /files/{id}, GET /files.
// Идентификатор владельца уже резолвлен auth-middleware и лежит
// в контексте запроса.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/gofilesmanager/internal/api/errors"
	"github.com/bigkaa/gofilesmanager/internal/api/middleware"
	"github.com/bigkaa/gofilesmanager/internal/domain/model"
	"github.com/bigkaa/gofilesmanager/internal/service"
)

// parentIDField принимает parentId и строкой, и числом: клиенты
// исторически передают корень как число 0. Значение нормализуется
// к строке, null — к пустому значению (корень по умолчанию).
type parentIDField string

func (p *parentIDField) UnmarshalJSON(data []byte) error {
	token := strings.TrimSpace(string(data))
	if strings.HasPrefix(token, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = parentIDField(s)
		return nil
	}
	if token == "null" {
		*p = ""
		return nil
	}
	*p = parentIDField(token)
	return nil
}

// uploadRequest — тело POST /files.
type uploadRequest struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	ParentID parentIDField `json:"parentId"`
	IsPublic bool          `json:"isPublic"`
	Data     string        `json:"data"`
}

// PostUpload — реализация POST /files.
// Создаёт запись папки либо файла/изображения с блобом на диске.
func (h *APIHandler) PostUpload(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		apierrors.Unauthorized(w, "Unauthorized")
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Malformed JSON body")
		return
	}

	result, err := h.files.Upload(r.Context(), ownerID, service.UploadRequest{
		Name:     req.Name,
		Kind:     req.Type,
		ParentID: string(req.ParentID),
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		h.writeUploadError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// GetShow — реализация GET /files/{id}.
// Возвращает полную запись, включая localPath: вызывающий — владелец.
func (h *APIHandler) GetShow(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		apierrors.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	record, err := h.files.Show(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Not found")
			return
		}
		h.logger.Error("Ошибка получения записи",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// GetIndex — реализация GET /files?parentId=&page=.
// Страница за пределами данных — 200 с пустым массивом, не ошибка.
func (h *APIHandler) GetIndex(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		apierrors.Unauthorized(w, "Unauthorized")
		return
	}

	parentID := r.URL.Query().Get("parentId")
	page := parsePage(r.URL.Query().Get("page"))

	records, err := h.files.Index(r.Context(), ownerID, parentID, page)
	if err != nil {
		h.logger.Error("Ошибка листинга записей",
			slog.String("parent_id", parentID),
			slog.Int("page", page),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Internal Server Error")
		return
	}

	if records == nil {
		records = []*model.FileRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// writeUploadError транслирует ошибки Upload в HTTP-ответы.
// Сообщения фиксированы контрактом API, по одному на причину.
func (h *APIHandler) writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingName):
		apierrors.ValidationError(w, "Missing name")
	case errors.Is(err, service.ErrMissingType):
		apierrors.ValidationError(w, "Missing type")
	case errors.Is(err, service.ErrMissingData):
		apierrors.ValidationError(w, "Missing data")
	case errors.Is(err, service.ErrParentNotFound):
		apierrors.ValidationError(w, "Parent not found")
	case errors.Is(err, service.ErrParentNotFolder):
		apierrors.ValidationError(w, "Parent is not a folder")
	default:
		h.logger.Error("Ошибка создания записи", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Internal Server Error")
	}
}
