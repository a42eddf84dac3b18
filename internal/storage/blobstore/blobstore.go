// Пакет blobstore — запись блобов (payload файлов) на диск.
// Блобы живут отдельно от метаданных, под единой корневой директорией,
// с uuid-именами. Удаления нет: время жизни блоба равно времени жизни
// его записи метаданных.
package blobstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store — запись блобов в корневую директорию.
// Директория инжектируется явно, а не читается из окружения в момент
// записи — тесты перенаправляют её детерминированно.
type Store struct {
	dir string
}

// New создаёт Store. Создаёт корневую директорию вместе с промежуточными
// сегментами, если она не существует. Идемпотентно.
func New(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка вычисления абсолютного пути %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию блобов %s: %w", abs, err)
	}
	return &Store{dir: abs}, nil
}

// Save записывает данные в новый файл с uuid-именем и возвращает
// абсолютный путь. Имена глобально уникальны, перезапись существующего
// пути исключена. Ошибка записи не ретраится — вызывающий код обязан
// прервать вставку метаданных.
func (s *Store) Save(data []byte) (string, error) {
	path := filepath.Join(s.dir, uuid.New().String())
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("ошибка записи блоба %s: %w", path, err)
	}
	return path, nil
}

// Dir возвращает корневую директорию блобов.
func (s *Store) Dir() string {
	return s.dir
}
