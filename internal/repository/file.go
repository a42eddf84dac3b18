package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bigkaa/gofilesmanager/internal/domain/model"
)

// filesCollection — имя коллекции записей файлов/папок.
const filesCollection = "files"

// fileRepo — реализация FileRepository поверх коллекции files.
type fileRepo struct {
	coll *mongo.Collection
}

// NewFileRepository создаёт репозиторий файлов.
func NewFileRepository(db *mongo.Database) FileRepository {
	return &fileRepo{coll: db.Collection(filesCollection)}
}

// Insert сохраняет новую запись и возвращает присвоенный ObjectID.
func (r *fileRepo) Insert(ctx context.Context, record *model.FileRecord) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("ошибка вставки записи файла: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("неожиданный тип InsertedID: %T", res.InsertedID)
	}
	record.ID = id
	return id, nil
}

// GetByID возвращает запись по идентификатору, scoped по владельцу.
// Некорректный hex идентификатора эквивалентен отсутствию записи.
func (r *fileRepo) GetByID(ctx context.Context, id string, ownerID primitive.ObjectID) (*model.FileRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	record := &model.FileRecord{}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid, "userId": ownerID}).Decode(record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи файла: %w", err)
	}
	return record, nil
}

// GetAnyByID возвращает запись по идентификатору без проверки владельца.
func (r *fileRepo) GetAnyByID(ctx context.Context, id string) (*model.FileRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	record := &model.FileRecord{}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи файла: %w", err)
	}
	return record, nil
}

// ListByParent возвращает страницу записей владельца под указанным родителем.
// Порядок — естественный порядок вставки (без явной сортировки).
func (r *fileRepo) ListByParent(ctx context.Context, ownerID primitive.ObjectID, parentID string, page int) ([]*model.FileRecord, error) {
	skip, limit := pageWindow(page)
	opts := options.Find().SetSkip(skip).SetLimit(limit)

	cursor, err := r.coll.Find(ctx, parentFilter(ownerID, parentID), opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка листинга записей: %w", err)
	}
	defer cursor.Close(ctx)

	result := make([]*model.FileRecord, 0, PageSize)
	for cursor.Next(ctx) {
		record := &model.FileRecord{}
		if err := cursor.Decode(record); err != nil {
			return nil, fmt.Errorf("ошибка декодирования записи: %w", err)
		}
		result = append(result, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации курсора: %w", err)
	}
	return result, nil
}

// parentFilter строит фильтр листинга: владелец + родитель.
// ParentID нормализован к строке ещё при вставке, поэтому сравнение строковое
// и для корня, и для папок.
func parentFilter(ownerID primitive.ObjectID, parentID string) bson.M {
	return bson.M{"userId": ownerID, "parentId": parentID}
}

// pageWindow вычисляет окно пагинации: skip = page*PageSize, limit = PageSize.
// Номера страниц нулевые, отрицательные трактуются как нулевая.
func pageWindow(page int) (skip, limit int64) {
	if page < 0 {
		page = 0
	}
	return int64(page) * PageSize, PageSize
}
