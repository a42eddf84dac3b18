// Пакет repository — слой доступа к данным MongoDB.
// Коллекция files — записи файлов/папок, коллекция users — пользователи.
// Все запросы — через официальный mongo-driver, без ODM.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bigkaa/gofilesmanager/internal/domain/model"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена. Возвращается и для синтаксически
	// некорректных идентификаторов: для вызывающего кода они неотличимы.
	ErrNotFound = errors.New("запись не найдена")
	// ErrDuplicate — нарушение unique-ограничения при вставке.
	ErrDuplicate = errors.New("запись уже существует")
)

// PageSize — фиксированный размер страницы листинга.
const PageSize = 20

// FileRepository — доступ к записям файлов/папок.
type FileRepository interface {
	// Insert сохраняет новую запись и возвращает присвоенный идентификатор.
	// Дедупликации нет: одноимённые записи под одним родителем допустимы.
	Insert(ctx context.Context, record *model.FileRecord) (primitive.ObjectID, error)
	// GetByID возвращает запись по идентификатору, только если она
	// принадлежит ownerID. Иначе ErrNotFound.
	GetByID(ctx context.Context, id string, ownerID primitive.ObjectID) (*model.FileRecord, error)
	// GetAnyByID возвращает запись по идентификатору без проверки владельца.
	// Используется валидацией родительской папки.
	GetAnyByID(ctx context.Context, id string) (*model.FileRecord, error)
	// ListByParent возвращает страницу записей владельца под указанным
	// родителем в порядке вставки. Страница за пределами данных — пустой
	// срез, не ошибка.
	ListByParent(ctx context.Context, ownerID primitive.ObjectID, parentID string, page int) ([]*model.FileRecord, error)
}

// UserRepository — доступ к пользователям.
type UserRepository interface {
	// EnsureIndexes создаёт unique index по email.
	// Уникальность обеспечивается базой, а не check-then-insert.
	EnsureIndexes(ctx context.Context) error
	// Insert сохраняет нового пользователя и возвращает присвоенный
	// идентификатор. Дубликат email — ErrDuplicate.
	Insert(ctx context.Context, user *model.User) (primitive.ObjectID, error)
}
