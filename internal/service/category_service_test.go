package service

import (
	"errors"
	"testing"

	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestBuildCategoryTree(t *testing.T) {
	categories := []models.Category{
		{ID: 4, Name: "Dresses", ParentID: uintPtr(2)},
		{ID: 2, Name: "Women"},
		{ID: 3, Name: "Tops", ParentID: uintPtr(1)},
		{ID: 1, Name: "Men"},
		{ID: 5, Name: "Orphan", ParentID: uintPtr(99)},
	}
	tree := BuildCategoryTree(categories)
	if len(tree) != 3 {
		t.Fatalf("want 3 roots got %d", len(tree))
	}
	if tree[0].Category.Name != "Men" || tree[1].Category.Name != "Women" || tree[2].Category.Name != "Orphan" {
		t.Fatalf("roots should be ordered by id, got %s %s %s", tree[0].Category.Name, tree[1].Category.Name, tree[2].Category.Name)
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].Category.Name != "Tops" {
		t.Fatalf("Men should hold Tops, got %+v", tree[0].Children)
	}
	if len(tree[1].Children) != 1 || tree[1].Children[0].Category.Name != "Dresses" {
		t.Fatalf("Women should hold Dresses, got %+v", tree[1].Children)
	}
}

func TestCategoryServiceCreateAndUpdate(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db), 1, 0)

	men, err := svc.Create(CategoryInput{Name: "  Men  "})
	if err != nil {
		t.Fatalf("create root failed: %v", err)
	}
	if men.Name != "Men" || men.ParentID != nil {
		t.Fatalf("unexpected root %+v", men)
	}
	tops, err := svc.Create(CategoryInput{Name: "Tops", ParentID: &men.ID})
	if err != nil {
		t.Fatalf("create child failed: %v", err)
	}
	shirts, err := svc.Create(CategoryInput{Name: "Shirts", ParentID: &tops.ID})
	if err != nil {
		t.Fatalf("create grandchild failed: %v", err)
	}

	if _, err := svc.Create(CategoryInput{Name: "Men"}); !errors.Is(err, ErrCategoryNameExists) {
		t.Fatalf("duplicate name want ErrCategoryNameExists got %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: " "}); !errors.Is(err, ErrCategoryNameRequired) {
		t.Fatalf("blank name want ErrCategoryNameRequired got %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Ghost", ParentID: uintPtr(999)}); !errors.Is(err, ErrCategoryParentNotFound) {
		t.Fatalf("missing parent want ErrCategoryParentNotFound got %v", err)
	}

	if _, err := svc.Update(men.ID, CategoryInput{Name: "Men", ParentID: &shirts.ID}); !errors.Is(err, ErrCategoryCycle) {
		t.Fatalf("moving under descendant want ErrCategoryCycle got %v", err)
	}
	if _, err := svc.Update(tops.ID, CategoryInput{Name: "Tops", ParentID: &tops.ID}); !errors.Is(err, ErrCategoryCycle) {
		t.Fatalf("self parent want ErrCategoryCycle got %v", err)
	}

	updated, err := svc.Update(shirts.ID, CategoryInput{Name: "Shirts & Blouses", ParentID: &men.ID})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ParentID == nil || *updated.ParentID != men.ID || updated.Name != "Shirts & Blouses" {
		t.Fatalf("unexpected updated category %+v", updated)
	}

	tree, err := svc.Tree()
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	// Uncategorized 与 Men 两个根
	if len(tree) != 2 || len(tree[1].Children) != 2 {
		t.Fatalf("unexpected tree shape: %+v", tree)
	}
}

func TestCategoryServiceDelete(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db), 1, 0)

	parent, err := svc.Create(CategoryInput{Name: "Accessories"})
	if err != nil {
		t.Fatalf("create parent failed: %v", err)
	}
	child, err := svc.Create(CategoryInput{Name: "Hats", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("create child failed: %v", err)
	}
	createServiceTestItem(t, db, "Beanie", "12.00", 0, child.ID)

	if err := svc.Delete(1); !errors.Is(err, ErrDefaultCategoryProtected) {
		t.Fatalf("default category want ErrDefaultCategoryProtected got %v", err)
	}
	if err := svc.Delete(parent.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("category with children want ErrCategoryInUse got %v", err)
	}
	if err := svc.Delete(child.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("category with items want ErrCategoryInUse got %v", err)
	}
	if err := svc.Delete(999); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("missing category want ErrCategoryNotFound got %v", err)
	}

	empty, err := svc.Create(CategoryInput{Name: "Empty"})
	if err != nil {
		t.Fatalf("create empty failed: %v", err)
	}
	if err := svc.Delete(empty.ID); err != nil {
		t.Fatalf("delete empty failed: %v", err)
	}
	if _, err := svc.Get(empty.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("deleted category should be gone, got %v", err)
	}
}
