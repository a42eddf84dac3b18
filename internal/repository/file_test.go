package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bigkaa/gofilesmanager/internal/domain/model"
)

// --- Тесты pageWindow ---

// TestPageWindow_FirstPage проверяет окно нулевой страницы.
func TestPageWindow_FirstPage(t *testing.T) {
	skip, limit := pageWindow(0)
	if skip != 0 {
		t.Errorf("skip = %d, ожидался 0", skip)
	}
	if limit != PageSize {
		t.Errorf("limit = %d, ожидался %d", limit, PageSize)
	}
}

// TestPageWindow_ThirdPage проверяет вычисление skip для ненулевой страницы.
func TestPageWindow_ThirdPage(t *testing.T) {
	skip, limit := pageWindow(3)
	if skip != 60 {
		t.Errorf("skip = %d, ожидался 60", skip)
	}
	if limit != PageSize {
		t.Errorf("limit = %d, ожидался %d", limit, PageSize)
	}
}

// TestPageWindow_NegativePage проверяет, что отрицательная страница
// трактуется как нулевая.
func TestPageWindow_NegativePage(t *testing.T) {
	skip, _ := pageWindow(-5)
	if skip != 0 {
		t.Errorf("skip = %d, ожидался 0 для отрицательной страницы", skip)
	}
}

// --- Тесты parentFilter ---

// TestParentFilter_Root проверяет фильтр для записей верхнего уровня.
func TestParentFilter_Root(t *testing.T) {
	owner := primitive.NewObjectID()
	filter := parentFilter(owner, model.RootParentID)

	if filter["userId"] != owner {
		t.Errorf("userId = %v, ожидался %v", filter["userId"], owner)
	}
	if filter["parentId"] != model.RootParentID {
		t.Errorf("parentId = %v, ожидался %q", filter["parentId"], model.RootParentID)
	}
}

// TestParentFilter_Folder проверяет фильтр для записей внутри папки.
func TestParentFilter_Folder(t *testing.T) {
	owner := primitive.NewObjectID()
	parent := primitive.NewObjectID().Hex()
	filter := parentFilter(owner, parent)

	if filter["parentId"] != parent {
		t.Errorf("parentId = %v, ожидался %q", filter["parentId"], parent)
	}
}
