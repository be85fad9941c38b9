package service

import (
	"errors"
	"testing"

	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"
)

func TestParseCatalogQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   CatalogQuery
		wantErr error
		check   func(t *testing.T, filter repository.ClothingItemListFilter)
	}{
		{
			name:  "defaults",
			query: CatalogQuery{},
			check: func(t *testing.T, filter repository.ClothingItemListFilter) {
				if filter.SortBy != constants.SortByPrice {
					t.Fatalf("default sort want price got %s", filter.SortBy)
				}
				if filter.PageSize != 0 || filter.Page != 0 {
					t.Fatalf("pagination should be off without page_size, got page=%d size=%d", filter.Page, filter.PageSize)
				}
			},
		},
		{
			name:  "invalid_size_and_color_ignored",
			query: CatalogQuery{Size: "XS", Color: "Purple"},
			check: func(t *testing.T, filter repository.ClothingItemListFilter) {
				if filter.Size != "" || filter.Color != "" {
					t.Fatalf("invalid size/color should be dropped, got %q %q", filter.Size, filter.Color)
				}
			},
		},
		{
			name:  "case_insensitive_size_and_color",
			query: CatalogQuery{Size: "xl", Color: "red", SortBy: "POPULARITY"},
			check: func(t *testing.T, filter repository.ClothingItemListFilter) {
				if filter.Size != models.ClothingSize("XL") || filter.Color != models.ClothingColor("Red") {
					t.Fatalf("unexpected size/color %q %q", filter.Size, filter.Color)
				}
				if filter.SortBy != constants.SortByPopularity {
					t.Fatalf("sort want popularity got %s", filter.SortBy)
				}
			},
		},
		{
			name:  "page_size_capped",
			query: CatalogQuery{PageSize: "500"},
			check: func(t *testing.T, filter repository.ClothingItemListFilter) {
				if filter.Page != 1 || filter.PageSize != 50 {
					t.Fatalf("want page=1 size=50 got page=%d size=%d", filter.Page, filter.PageSize)
				}
			},
		},
		{
			name:  "price_bounds",
			query: CatalogQuery{PriceMin: "10", PriceMax: "20.5", Category: "3"},
			check: func(t *testing.T, filter repository.ClothingItemListFilter) {
				if filter.PriceMin == nil || filter.PriceMin.String() != "10" {
					t.Fatalf("price_min unexpected: %v", filter.PriceMin)
				}
				if filter.PriceMax == nil || filter.PriceMax.String() != "20.5" {
					t.Fatalf("price_max unexpected: %v", filter.PriceMax)
				}
				if filter.CategoryID != 3 {
					t.Fatalf("category want 3 got %d", filter.CategoryID)
				}
			},
		},
		{name: "bad_sort", query: CatalogQuery{SortBy: "rating"}, wantErr: ErrSortByInvalid},
		{name: "bad_category", query: CatalogQuery{Category: "shirts"}, wantErr: ErrCategoryFilterInvalid},
		{name: "negative_price", query: CatalogQuery{PriceMin: "-1"}, wantErr: ErrPriceRangeInvalid},
		{name: "inverted_range", query: CatalogQuery{PriceMin: "30", PriceMax: "10"}, wantErr: ErrPriceRangeInvalid},
		{name: "bad_page", query: CatalogQuery{Page: "0", PageSize: "10"}, wantErr: ErrPaginationInvalid},
		{name: "bad_page_without_size", query: CatalogQuery{Page: "x"}, wantErr: ErrPaginationInvalid},
		{name: "page_offset_overflow", query: CatalogQuery{Page: "9223372036854775807", PageSize: "50"}, wantErr: ErrPaginationInvalid},
		{name: "page_out_of_int_range", query: CatalogQuery{Page: "99999999999999999999", PageSize: "50"}, wantErr: ErrPaginationInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := ParseCatalogQuery(tt.query, 50)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want error %v got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, filter)
		})
	}
}

func TestCatalogServiceListItems(t *testing.T) {
	db := setupServiceTestDB(t)
	user := createServiceTestUser(t, db, "carol", "Secret123", true)
	cheap := createServiceTestItem(t, db, "Cheap Tee", "9.90", 1, 1)
	createServiceTestItem(t, db, "Mid Tee", "29.90", 50, 1)
	createServiceTestItem(t, db, "Fancy Coat", "199.00", 20, 1)
	if err := db.Create(&models.Review{ClothingItemID: cheap.ID, UserID: user.ID, Comment: "fine", Rating: 3}).Error; err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	svc := NewCatalogService(repository.NewClothingItemRepository(db), NewRatingAggregator(repository.NewReviewRepository(db)), 0)

	items, _, total, err := svc.ListItems(CatalogQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Fatalf("want 3 items got total=%d len=%d", total, len(items))
	}
	if items[0].Item.Name != "Cheap Tee" || items[2].Item.Name != "Fancy Coat" {
		t.Fatalf("price order unexpected: %s .. %s", items[0].Item.Name, items[2].Item.Name)
	}
	if items[0].Rating.Count != 1 || items[0].Rating.Average.String() != "3" {
		t.Fatalf("rating not attached: %+v", items[0].Rating)
	}

	items, _, _, err = svc.ListItems(CatalogQuery{SortBy: "popularity"})
	if err != nil {
		t.Fatalf("list by popularity failed: %v", err)
	}
	if items[0].Item.Name != "Mid Tee" {
		t.Fatalf("popularity order should start with Mid Tee, got %s", items[0].Item.Name)
	}

	items, _, total, err = svc.ListItems(CatalogQuery{Name: "tee", PriceMax: "10"})
	if err != nil {
		t.Fatalf("list with filters failed: %v", err)
	}
	if total != 1 || items[0].Item.ID != cheap.ID {
		t.Fatalf("filter should match only the cheap tee, got total=%d", total)
	}

	items, _, total, err = svc.ListItems(CatalogQuery{Name: "nothing-matches"})
	if err != nil {
		t.Fatalf("empty list failed: %v", err)
	}
	if total != 0 || items == nil || len(items) != 0 {
		t.Fatalf("no match should return an empty list, got %v", items)
	}

	items, _, total, err = svc.ListItems(CatalogQuery{Page: "2", PageSize: "2"})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if total != 3 || len(items) != 1 {
		t.Fatalf("second page want 1 of 3 got len=%d total=%d", len(items), total)
	}
}

func TestCatalogServiceGetItem(t *testing.T) {
	db := setupServiceTestDB(t)
	item := createServiceTestItem(t, db, "Scarf", "15.00", 0, 1)
	svc := NewCatalogService(repository.NewClothingItemRepository(db), NewRatingAggregator(repository.NewReviewRepository(db)), 0)

	got, err := svc.GetItem(item.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if got.Item.Name != "Scarf" || got.Rating.Count != 0 {
		t.Fatalf("unexpected item %+v", got)
	}
	if _, err := svc.GetItem(9999); !errors.Is(err, ErrClothingItemNotFound) {
		t.Fatalf("missing item want ErrClothingItemNotFound got %v", err)
	}
	if _, err := svc.GetItem(0); !errors.Is(err, ErrClothingItemNotFound) {
		t.Fatalf("zero id want ErrClothingItemNotFound got %v", err)
	}
}
