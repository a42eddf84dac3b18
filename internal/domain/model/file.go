// Пакет model — доменные модели Files Manager.
// FileRecord — запись файла или папки в коллекции files.
package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Типы записей в иерархии.
const (
	// KindFolder — папка, не имеет блоба на диске.
	KindFolder = "folder"
	// KindFile — обычный файл с блобом на диске.
	KindFile = "file"
	// KindImage — изображение, хранится так же, как файл.
	KindImage = "image"
)

// RootParentID — sentinel-значение parentId для записей верхнего уровня.
const RootParentID = "0"

// ValidKind проверяет, что тип записи — один из допустимых.
func ValidKind(kind string) bool {
	switch kind {
	case KindFolder, KindFile, KindImage:
		return true
	}
	return false
}

// FileRecord — запись файла/папки в коллекции files.
// ParentID нормализован к строке: либо RootParentID, либо hex ObjectID
// родительской папки. Единое представление идентификаторов во всех ответах.
type FileRecord struct {
	// ID — идентификатор записи, присваивается MongoDB при вставке
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// OwnerID — идентификатор владельца записи
	OwnerID primitive.ObjectID `bson:"userId" json:"userId"`
	// Name — имя файла или папки, непустое
	Name string `bson:"name" json:"name"`
	// Kind — тип записи: folder, file, image. Неизменяем после создания.
	Kind string `bson:"type" json:"type"`
	// IsPublic — флаг публичности. Хранится, но операциями чтения
	// не используется (владение проверяется всегда).
	IsPublic bool `bson:"isPublic" json:"isPublic"`
	// ParentID — RootParentID или hex ObjectID папки-родителя
	ParentID string `bson:"parentId" json:"parentId"`
	// LocalPath — путь блоба на диске. Пуст для папок.
	LocalPath string `bson:"localPath,omitempty" json:"localPath,omitempty"`
}

// IsFolder сообщает, является ли запись папкой.
func (f *FileRecord) IsFolder() bool {
	return f.Kind == KindFolder
}
