// files.go — бизнес-логика операций над записями файлов/папок:
// Upload, Show, Index. Здесь живут все проверки предусловий и порядок
// их применения; транспорт и аутентификация — уровнем выше.
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bigkaa/gofilesmanager/internal/domain/model"
	"github.com/bigkaa/gofilesmanager/internal/repository"
)

// BlobWriter — запись payload на диск. Реализуется blobstore.Store.
type BlobWriter interface {
	Save(data []byte) (string, error)
}

// FilesService — оркестратор операций над записями файлов/папок.
type FilesService struct {
	files  repository.FileRepository
	blobs  BlobWriter
	cache  *MetadataCache
	logger *slog.Logger
}

// NewFilesService создаёт сервис файлов.
// cache может быть nil — тогда Show всегда идёт в хранилище.
func NewFilesService(files repository.FileRepository, blobs BlobWriter, cache *MetadataCache, logger *slog.Logger) *FilesService {
	return &FilesService{
		files:  files,
		blobs:  blobs,
		cache:  cache,
		logger: logger.With(slog.String("component", "files_service")),
	}
}

// UploadRequest — параметры создания записи.
type UploadRequest struct {
	// Name — имя записи, обязательно
	Name string
	// Kind — тип записи: folder, file, image
	Kind string
	// ParentID — идентификатор родительской папки, по умолчанию корень
	ParentID string
	// IsPublic — флаг публичности, хранится как есть
	IsPublic bool
	// Data — payload в base64, обязателен для file/image
	Data string
}

// UploadResult — ответ на создание записи. LocalPath намеренно
// отсутствует: внутренние пути хранения не покидают сервер.
type UploadResult struct {
	ID       string `json:"id"`
	OwnerID  string `json:"userId"`
	Name     string `json:"name"`
	Kind     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID string `json:"parentId"`
}

// Upload создаёт запись файла/папки. Предусловия проверяются в фиксированном
// порядке, нарушение первого же прерывает операцию:
// имя → тип → payload → родитель. Для file/image блоб пишется на диск
// до вставки метаданных: неудавшаяся запись блоба не оставляет метаданных.
func (s *FilesService) Upload(ctx context.Context, ownerID primitive.ObjectID, req UploadRequest) (*UploadResult, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if !model.ValidKind(req.Kind) {
		return nil, ErrMissingType
	}
	if req.Kind != model.KindFolder && req.Data == "" {
		return nil, ErrMissingData
	}

	parent, err := s.validateParent(ctx, req.ParentID)
	if err != nil {
		return nil, err
	}

	parentID := model.RootParentID
	if parent != nil {
		parentID = parent.ID.Hex()
	}

	record := &model.FileRecord{
		OwnerID:  ownerID,
		Name:     req.Name,
		Kind:     req.Kind,
		IsPublic: req.IsPublic,
		ParentID: parentID,
	}

	if req.Kind != model.KindFolder {
		payload, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return nil, ErrMissingData
		}

		path, err := s.blobs.Save(payload)
		if err != nil {
			return nil, fmt.Errorf("ошибка записи блоба: %w", err)
		}
		record.LocalPath = path
	}

	id, err := s.files.Insert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("ошибка вставки записи: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(id.Hex(), record)
	}

	s.logger.Debug("Запись создана",
		slog.String("id", id.Hex()),
		slog.String("type", record.Kind),
		slog.String("parent_id", record.ParentID),
	)

	return &UploadResult{
		ID:       id.Hex(),
		OwnerID:  ownerID.Hex(),
		Name:     record.Name,
		Kind:     record.Kind,
		IsPublic: record.IsPublic,
		ParentID: record.ParentID,
	}, nil
}

// Show возвращает запись по идентификатору, только если она принадлежит
// ownerID. Несуществующий, некорректный и чужой идентификаторы дают
// одинаковый ErrNotFound. Возвращаемая запись включает LocalPath —
// вызывающий является владельцем.
func (s *FilesService) Show(ctx context.Context, ownerID primitive.ObjectID, id string) (*model.FileRecord, error) {
	// LRU-кэш по идентификатору; проверка владельца применяется заново
	// и к кэшированной записи.
	if s.cache != nil {
		if record, ok := s.cache.Get(id); ok && record.OwnerID == ownerID {
			return record, nil
		}
	}

	record, err := s.files.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(record.ID.Hex(), record)
	}
	return record, nil
}

// Index возвращает страницу записей владельца под указанным родителем.
// Страница за пределами данных — пустой срез. Владение родителем
// не проверяется: чужой родитель просто не даст совпадений по ownerID.
func (s *FilesService) Index(ctx context.Context, ownerID primitive.ObjectID, parentID string, page int) ([]*model.FileRecord, error) {
	if parentID == "" {
		parentID = model.RootParentID
	}

	records, err := s.files.ListByParent(ctx, ownerID, parentID, page)
	if err != nil {
		return nil, fmt.Errorf("ошибка листинга записей: %w", err)
	}
	return records, nil
}

// validateParent проверяет заявленного родителя.
// Корневой sentinel (и пустое значение) — родителя нет, всегда валидно.
// Некорректный или несуществующий идентификатор — ErrParentNotFound,
// запись не-папка — ErrParentNotFolder.
// Проверка существования и последующая вставка не атомарны; пока
// удаление записей не реализовано, окно TOCTOU пустое.
func (s *FilesService) validateParent(ctx context.Context, parentID string) (*model.FileRecord, error) {
	if parentID == "" || parentID == model.RootParentID {
		return nil, nil
	}

	// Поиск родителя не scoped по владельцу: вложение под чужую папку
	// допустимо, если её идентификатор известен.
	parent, err := s.files.GetAnyByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("ошибка поиска родителя: %w", err)
	}
	if !parent.IsFolder() {
		return nil, ErrParentNotFolder
	}
	return parent, nil
}
