package repository

import (
	"testing"

	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/models"
)

func TestReviewUniqueIndexRejectsSecondReview(t *testing.T) {
	db := setupRepositoryTestDB(t)
	category := createTestCategory(t, db, "Shirts", nil)
	item := createTestItem(t, db, "Tee", 10, 0, category.ID, constants.SizeM, constants.ColorRed)
	user := createTestUser(t, db, "alice")
	repo := NewReviewRepository(db)

	if err := repo.Create(&models.Review{ClothingItemID: item.ID, UserID: user.ID, Comment: "nice", Rating: 4}); err != nil {
		t.Fatalf("create first review failed: %v", err)
	}
	err := repo.Create(&models.Review{ClothingItemID: item.ID, UserID: user.ID, Comment: "again", Rating: 2})
	if err == nil {
		t.Fatalf("second review for same pair should fail")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("second review error should be unique violation, got %v", err)
	}
	count, err := repo.CountByItemAndUser(item.ID, user.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("review count want 1 got %d", count)
	}
}

func TestReviewListRatingsByItemIDs(t *testing.T) {
	db := setupRepositoryTestDB(t)
	category := createTestCategory(t, db, "Shirts", nil)
	first := createTestItem(t, db, "Tee", 10, 0, category.ID, constants.SizeM, constants.ColorRed)
	second := createTestItem(t, db, "Polo", 20, 0, category.ID, constants.SizeM, constants.ColorRed)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	repo := NewReviewRepository(db)

	for _, review := range []models.Review{
		{ClothingItemID: first.ID, UserID: alice.ID, Comment: "a", Rating: 5},
		{ClothingItemID: first.ID, UserID: bob.ID, Comment: "b", Rating: 2},
		{ClothingItemID: second.ID, UserID: alice.ID, Comment: "c", Rating: 3},
	} {
		review := review
		if err := repo.Create(&review); err != nil {
			t.Fatalf("create review failed: %v", err)
		}
	}

	rows, err := repo.ListRatingsByItemIDs([]uint{first.ID})
	if err != nil {
		t.Fatalf("list ratings failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ratings len want 2 got %d", len(rows))
	}
	sum := 0
	for _, row := range rows {
		if row.ClothingItemID != first.ID {
			t.Fatalf("unexpected item id %d", row.ClothingItemID)
		}
		sum += row.Rating
	}
	if sum != 7 {
		t.Fatalf("rating sum want 7 got %d", sum)
	}

	reviews, err := repo.ListByItem(first.ID)
	if err != nil {
		t.Fatalf("list by item failed: %v", err)
	}
	if len(reviews) != 2 || reviews[0].User.Username == "" {
		t.Fatalf("reviews should preload user, got %+v", reviews)
	}
}
