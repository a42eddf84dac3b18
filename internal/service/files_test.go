package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bigkaa/gofilesmanager/internal/domain/model"
	"github.com/bigkaa/gofilesmanager/internal/repository"
)

// --- Фейки зависимостей ---

// fakeFileRepo — in-memory реализация repository.FileRepository.
// Хранит записи в порядке вставки, как и реальная коллекция.
type fakeFileRepo struct {
	records     []*model.FileRecord
	insertErr   error
	insertCalls int
}

func (f *fakeFileRepo) Insert(_ context.Context, record *model.FileRecord) (primitive.ObjectID, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	record.ID = primitive.NewObjectID()
	stored := *record
	f.records = append(f.records, &stored)
	return record.ID, nil
}

func (f *fakeFileRepo) GetByID(_ context.Context, id string, ownerID primitive.ObjectID) (*model.FileRecord, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrNotFound
	}
	for _, r := range f.records {
		if r.ID.Hex() == id && r.OwnerID == ownerID {
			found := *r
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeFileRepo) GetAnyByID(_ context.Context, id string) (*model.FileRecord, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrNotFound
	}
	for _, r := range f.records {
		if r.ID.Hex() == id {
			found := *r
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeFileRepo) ListByParent(_ context.Context, ownerID primitive.ObjectID, parentID string, page int) ([]*model.FileRecord, error) {
	var matched []*model.FileRecord
	for _, r := range f.records {
		if r.OwnerID == ownerID && r.ParentID == parentID {
			matched = append(matched, r)
		}
	}

	if page < 0 {
		page = 0
	}
	start := page * repository.PageSize
	if start >= len(matched) {
		return []*model.FileRecord{}, nil
	}
	end := start + repository.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

// fakeBlobs — запись блобов без диска, выдаёт последовательные пути.
type fakeBlobs struct {
	saved [][]byte
	err   error
}

func (b *fakeBlobs) Save(data []byte) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	b.saved = append(b.saved, data)
	return fmt.Sprintf("/tmp/files_manager/blob-%d", len(b.saved)), nil
}

func newFilesService(repo *fakeFileRepo, blobs *fakeBlobs) *FilesService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewFilesService(repo, blobs, NewMetadataCache(128, time.Minute), logger)
}

// --- Тесты Upload ---

// TestUpload_MissingName проверяет первое предусловие.
func TestUpload_MissingName(t *testing.T) {
	svc := newFilesService(&fakeFileRepo{}, &fakeBlobs{})

	_, err := svc.Upload(context.Background(), primitive.NewObjectID(), UploadRequest{
		Kind: model.KindFile,
		Data: "aGVsbG8=",
	})
	if !errors.Is(err, ErrMissingName) {
		t.Fatalf("err = %v, ожидался ErrMissingName", err)
	}
}

// TestUpload_InvalidKind проверяет отклонение недопустимого типа.
func TestUpload_InvalidKind(t *testing.T) {
	svc := newFilesService(&fakeFileRepo{}, &fakeBlobs{})

	for _, kind := range []string{"", "document", "FOLDER"} {
		_, err := svc.Upload(context.Background(), primitive.NewObjectID(), UploadRequest{
			Name: "a",
			Kind: kind,
		})
		if !errors.Is(err, ErrMissingType) {
			t.Errorf("kind %q: err = %v, ожидался ErrMissingType", kind, err)
		}
	}
}

// TestUpload_MissingData проверяет обязательность payload для file/image.
func TestUpload_MissingData(t *testing.T) {
	svc := newFilesService(&fakeFileRepo{}, &fakeBlobs{})

	_, err := svc.Upload(context.Background(), primitive.NewObjectID(), UploadRequest{
		Name: "report.pdf",
		Kind: model.KindFile,
	})
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("err = %v, ожидался ErrMissingData", err)
	}
}

// TestUpload_Folder проверяет создание папки: без payload, без LocalPath,
// пригодна как родитель для последующих записей.
func TestUpload_Folder(t *testing.T) {
	repo := &fakeFileRepo{}
	blobs := &fakeBlobs{}
	svc := newFilesService(repo, blobs)
	owner := primitive.NewObjectID()

	folder, err := svc.Upload(context.Background(), owner, UploadRequest{
		Name: "documents",
		Kind: model.KindFolder,
	})
	if err != nil {
		t.Fatalf("Upload папки: %v", err)
	}
	if folder.ParentID != model.RootParentID {
		t.Errorf("ParentID = %q, ожидался корень", folder.ParentID)
	}
	if len(blobs.saved) != 0 {
		t.Error("для папки не должно быть записи блоба")
	}
	if repo.records[0].LocalPath != "" {
		t.Errorf("LocalPath = %q, ожидался пустой", repo.records[0].LocalPath)
	}

	// Папка служит родителем для вложенной записи
	child, err := svc.Upload(context.Background(), owner, UploadRequest{
		Name:     "notes.txt",
		Kind:     model.KindFile,
		ParentID: folder.ID,
		Data:     base64.StdEncoding.EncodeToString([]byte("notes")),
	})
	if err != nil {
		t.Fatalf("Upload вложенного файла: %v", err)
	}
	if child.ParentID != folder.ID {
		t.Errorf("ParentID = %q, ожидался %q", child.ParentID, folder.ID)
	}
}

// TestUpload_FileWritesBlob проверяет декодирование payload и путь блоба.
func TestUpload_FileWritesBlob(t *testing.T) {
	repo := &fakeFileRepo{}
	blobs := &fakeBlobs{}
	svc := newFilesService(repo, blobs)

	payload := []byte("Hello Webstack!\n")
	result, err := svc.Upload(context.Background(), primitive.NewObjectID(), UploadRequest{
		Name: "hello.txt",
		Kind: model.KindFile,
		Data: base64.StdEncoding.EncodeToString(payload),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if len(blobs.saved) != 1 {
		t.Fatalf("записано блобов = %d, ожидался 1", len(blobs.saved))
	}
	if string(blobs.saved[0]) != string(payload) {
		t.Errorf("байты блоба = %q, ожидались %q", blobs.saved[0], payload)
	}
	if repo.records[0].LocalPath == "" {
		t.Error("LocalPath не установлен для file")
	}
	if result.ID == "" {
		t.Error("идентификатор записи пуст")
	}
}

// TestUpload_BadBase64 проверяет отклонение некорректного payload
// до любых операций с диском и базой.
func TestUpload_BadBase64(t *testing.T) {
	repo := &fakeFileRepo{}
	blobs := &fakeBlobs{}
	svc := newFilesService(repo, blobs)

	_, err := svc.Upload(context.Background(), primitive.NewObjectID(), UploadRequest{
		Name: "x.bin",
		Kind: model.KindFile,
		Data: "%%% не base64 %%%",
	})
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("err = %v, ожидался ErrMissingData", err)
	}
	if len(blobs.saved) != 0 || repo.insertCalls != 0 {
		t.Error("некорректный payload не должен порождать блоб или вставку")
	}
}

// TestUpload_ParentNotFound проверяет несуществующего и некорректного родителя.
func TestUpload_ParentNotFound(t *testing.T) {
	svc := newFilesService(&fakeFileRepo{}, &fakeBlobs{})

	for _, parentID := range []string{primitive.NewObjectID().Hex(), "не-objectid"} {
		_, err := svc.Upload(context.Background(), primitive.NewObjectID(), UploadRequest{
			Name:     "a",
			Kind:     model.KindFolder,
			ParentID: parentID,
		})
		if !errors.Is(err, ErrParentNotFound) {
			t.Errorf("parentId %q: err = %v, ожидался ErrParentNotFound", parentID, err)
		}
	}
}

// TestUpload_ParentNotFolder проверяет отклонение родителя-не-папки.
func TestUpload_ParentNotFolder(t *testing.T) {
	repo := &fakeFileRepo{}
	svc := newFilesService(repo, &fakeBlobs{})
	owner := primitive.NewObjectID()

	file, err := svc.Upload(context.Background(), owner, UploadRequest{
		Name: "plain.txt",
		Kind: model.KindFile,
		Data: "YWJj",
	})
	if err != nil {
		t.Fatalf("Upload файла: %v", err)
	}

	_, err = svc.Upload(context.Background(), owner, UploadRequest{
		Name:     "nested",
		Kind:     model.KindFolder,
		ParentID: file.ID,
	})
	if !errors.Is(err, ErrParentNotFolder) {
		t.Fatalf("err = %v, ожидался ErrParentNotFolder", err)
	}
}

// TestUpload_ForeignParentAllowed проверяет, что вложение под папку
// другого владельца допускается: поиск родителя не scoped по владельцу.
func TestUpload_ForeignParentAllowed(t *testing.T) {
	repo := &fakeFileRepo{}
	svc := newFilesService(repo, &fakeBlobs{})

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	folder, err := svc.Upload(context.Background(), alice, UploadRequest{
		Name: "shared",
		Kind: model.KindFolder,
	})
	if err != nil {
		t.Fatalf("Upload папки: %v", err)
	}

	child, err := svc.Upload(context.Background(), bob, UploadRequest{
		Name:     "intruder.txt",
		Kind:     model.KindFile,
		ParentID: folder.ID,
		Data:     "YWJj",
	})
	if err != nil {
		t.Fatalf("вложение под чужую папку: %v", err)
	}
	if child.OwnerID != bob.Hex() {
		t.Errorf("OwnerID = %q, ожидался %q", child.OwnerID, bob.Hex())
	}
}

// TestUpload_BlobFailureAbortsInsert проверяет, что неудавшаяся запись
// блоба прерывает операцию до вставки метаданных.
func TestUpload_BlobFailureAbortsInsert(t *testing.T) {
	repo := &fakeFileRepo{}
	blobs := &fakeBlobs{err: errors.New("диск переполнен")}
	svc := newFilesService(repo, blobs)

	_, err := svc.Upload(context.Background(), primitive.NewObjectID(), UploadRequest{
		Name: "big.bin",
		Kind: model.KindFile,
		Data: "YWJj",
	})
	if err == nil {
		t.Fatal("ожидалась ошибка записи блоба")
	}
	if repo.insertCalls != 0 {
		t.Errorf("insertCalls = %d, вставка после неудачной записи блоба недопустима", repo.insertCalls)
	}
}

// --- Тесты Show ---

// TestShow_RoundTrip проверяет, что Show возвращает созданную запись
// вместе с LocalPath.
func TestShow_RoundTrip(t *testing.T) {
	svc := newFilesService(&fakeFileRepo{}, &fakeBlobs{})
	owner := primitive.NewObjectID()

	created, err := svc.Upload(context.Background(), owner, UploadRequest{
		Name:     "pic.png",
		Kind:     model.KindImage,
		IsPublic: true,
		Data:     "aW1hZ2U=",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	record, err := svc.Show(context.Background(), owner, created.ID)
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if record.Name != "pic.png" || record.Kind != model.KindImage {
		t.Errorf("запись = %+v, не совпадает с созданной", record)
	}
	if !record.IsPublic {
		t.Error("IsPublic потерян")
	}
	if record.ParentID != model.RootParentID {
		t.Errorf("ParentID = %q, ожидался корень", record.ParentID)
	}
	if record.LocalPath == "" {
		t.Error("Show обязан возвращать LocalPath владельцу")
	}
}

// TestShow_ForeignOwner проверяет изоляцию владельцев: чужой валидный
// идентификатор неотличим от несуществующего.
func TestShow_ForeignOwner(t *testing.T) {
	svc := newFilesService(&fakeFileRepo{}, &fakeBlobs{})
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	created, err := svc.Upload(context.Background(), alice, UploadRequest{
		Name: "secret.txt",
		Kind: model.KindFile,
		Data: "YWJj",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if _, err := svc.Show(context.Background(), bob, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, ожидался ErrNotFound для чужой записи", err)
	}
}

// TestShow_ForeignOwnerCachedRecord проверяет, что кэшированная запись
// не выдаётся другому владельцу.
func TestShow_ForeignOwnerCachedRecord(t *testing.T) {
	svc := newFilesService(&fakeFileRepo{}, &fakeBlobs{})
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	created, err := svc.Upload(context.Background(), alice, UploadRequest{
		Name: "secret.txt",
		Kind: model.KindFile,
		Data: "YWJj",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	// Прогреваем кэш запросом владельца
	if _, err := svc.Show(context.Background(), alice, created.ID); err != nil {
		t.Fatalf("Show владельца: %v", err)
	}

	if _, err := svc.Show(context.Background(), bob, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, кэш не должен обходить проверку владельца", err)
	}
}

// TestShow_MalformedID проверяет, что некорректный идентификатор
// даёт тот же ErrNotFound, что и несуществующий.
func TestShow_MalformedID(t *testing.T) {
	svc := newFilesService(&fakeFileRepo{}, &fakeBlobs{})

	_, err := svc.Show(context.Background(), primitive.NewObjectID(), "zzz")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, ожидался ErrNotFound", err)
	}
}

// --- Тесты Index ---

// TestIndex_PartitionsRecords проверяет, что объединение страниц равно
// полному набору записей: без дубликатов и пропусков.
func TestIndex_PartitionsRecords(t *testing.T) {
	svc := newFilesService(&fakeFileRepo{}, &fakeBlobs{})
	owner := primitive.NewObjectID()

	const total = 45
	for i := 0; i < total; i++ {
		_, err := svc.Upload(context.Background(), owner, UploadRequest{
			Name: fmt.Sprintf("f-%02d", i),
			Kind: model.KindFolder,
		})
		if err != nil {
			t.Fatalf("Upload #%d: %v", i, err)
		}
	}

	seen := make(map[string]bool)
	wantSizes := []int{20, 20, 5}
	for page, want := range wantSizes {
		records, err := svc.Index(context.Background(), owner, "", page)
		if err != nil {
			t.Fatalf("Index страница %d: %v", page, err)
		}
		if len(records) != want {
			t.Fatalf("страница %d: %d записей, ожидалось %d", page, len(records), want)
		}
		for _, r := range records {
			if seen[r.ID.Hex()] {
				t.Fatalf("запись %s встретилась дважды", r.ID.Hex())
			}
			seen[r.ID.Hex()] = true
		}
	}
	if len(seen) != total {
		t.Errorf("всего записей по страницам = %d, ожидалось %d", len(seen), total)
	}
}

// TestIndex_OutOfRangePage проверяет, что страница за пределами данных —
// пустой срез, не ошибка.
func TestIndex_OutOfRangePage(t *testing.T) {
	svc := newFilesService(&fakeFileRepo{}, &fakeBlobs{})
	owner := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		if _, err := svc.Upload(context.Background(), owner, UploadRequest{
			Name: fmt.Sprintf("f-%d", i),
			Kind: model.KindFolder,
		}); err != nil {
			t.Fatalf("Upload: %v", err)
		}
	}

	records, err := svc.Index(context.Background(), owner, "", 999)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("записей = %d, ожидался пустой результат", len(records))
	}
}

// TestIndex_ScopedByParent проверяет фильтрацию по родителю.
func TestIndex_ScopedByParent(t *testing.T) {
	svc := newFilesService(&fakeFileRepo{}, &fakeBlobs{})
	owner := primitive.NewObjectID()

	folder, err := svc.Upload(context.Background(), owner, UploadRequest{
		Name: "docs",
		Kind: model.KindFolder,
	})
	if err != nil {
		t.Fatalf("Upload папки: %v", err)
	}

	if _, err := svc.Upload(context.Background(), owner, UploadRequest{
		Name:     "in-folder.txt",
		Kind:     model.KindFile,
		ParentID: folder.ID,
		Data:     "YWJj",
	}); err != nil {
		t.Fatalf("Upload вложенного: %v", err)
	}

	inFolder, err := svc.Index(context.Background(), owner, folder.ID, 0)
	if err != nil {
		t.Fatalf("Index по папке: %v", err)
	}
	if len(inFolder) != 1 || inFolder[0].Name != "in-folder.txt" {
		t.Errorf("содержимое папки = %+v, ожидался один in-folder.txt", inFolder)
	}

	atRoot, err := svc.Index(context.Background(), owner, "", 0)
	if err != nil {
		t.Fatalf("Index по корню: %v", err)
	}
	if len(atRoot) != 1 || atRoot[0].Name != "docs" {
		t.Errorf("корень = %+v, ожидалась одна папка docs", atRoot)
	}
}
