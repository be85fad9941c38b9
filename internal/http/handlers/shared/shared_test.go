package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

func TestPresentClothingItem(t *testing.T) {
	item := models.ClothingItem{
		ID:         7,
		Name:       "Linen Shirt",
		Price:      models.NewMoneyFromDecimal(decimal.RequireFromString("59.9")),
		CategoryID: 3,
		Category:   models.Category{ID: 3, Name: "Tops"},
		Size:       models.ClothingSize("L"),
		Color:      models.ClothingColor("White"),
		Popularity: 12,
	}
	record := PresentClothingItem(item, service.RatingSummary{Average: decimal.RequireFromString("4.33"), Count: 3})
	if record.Price != "59.90" {
		t.Fatalf("price should keep two decimals, got %s", record.Price)
	}
	if record.AverageRating != 4.33 || record.ReviewCount != 3 {
		t.Fatalf("rating summary not carried: %+v", record)
	}
	if record.Category.ID != 3 || record.Category.Name != "Tops" {
		t.Fatalf("category ref unexpected: %+v", record.Category)
	}

	unrated := PresentClothingItem(item, service.RatingSummary{})
	if unrated.AverageRating != 0 || unrated.ReviewCount != 0 {
		t.Fatalf("missing rating should present as zero, got %+v", unrated)
	}
}

func TestPresentCategoryTreeLeafChildren(t *testing.T) {
	parentID := uint(1)
	tree := PresentCategoryTree([]service.CategoryNode{
		{
			Category: models.Category{ID: 1, Name: "Men"},
			Children: []service.CategoryNode{{Category: models.Category{ID: 2, Name: "Tops", ParentID: &parentID}}},
		},
	})
	payload, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal tree failed: %v", err)
	}
	text := string(payload)
	if !strings.Contains(text, `"name":"Tops","parent_id":1,"children":[]`) {
		t.Fatalf("leaf children should marshal as empty array, got %s", text)
	}
	if !strings.Contains(text, `"parent_id":null`) {
		t.Fatalf("root parent should be null, got %s", text)
	}
}

func TestPresentWishlistMissingRating(t *testing.T) {
	entry := models.Wishlist{
		ID:             5,
		UserID:         2,
		ClothingItemID: 9,
		User:           models.User{ID: 2, Username: "nora"},
		ClothingItem:   models.ClothingItem{ID: 9, Name: "Cap"},
	}
	record := PresentWishlist(entry, map[uint]service.RatingSummary{})
	if record.User != "nora" || record.ClothingItem.ID != 9 || record.ClothingItem.ReviewCount != 0 {
		t.Fatalf("unexpected wishlist record %+v", record)
	}
}

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		pageSize  int
		total     int64
		wantPages int64
		wantSize  int
	}{
		{name: "unpaged", page: 0, pageSize: 0, total: 7, wantPages: 1, wantSize: 7},
		{name: "exact", page: 1, pageSize: 5, total: 10, wantPages: 2, wantSize: 5},
		{name: "remainder", page: 3, pageSize: 4, total: 9, wantPages: 3, wantSize: 4},
		{name: "empty", page: 1, pageSize: 20, total: 0, wantPages: 0, wantSize: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPagination(tt.page, tt.pageSize, tt.total)
			if got.TotalPage != tt.wantPages || got.PageSize != tt.wantSize || got.Total != tt.total {
				t.Fatalf("unexpected pagination %+v", got)
			}
		})
	}

	page, size := ParsePagination("x", "1000")
	if page != 1 || size != maxPageSize {
		t.Fatalf("invalid input should normalize, got page=%d size=%d", page, size)
	}
}

func TestBindingErrorKey(t *testing.T) {
	if err := RegisterValidators(); err != nil {
		t.Fatalf("register validators failed: %v", err)
	}
	type request struct {
		Size  string `json:"size" binding:"clothing_size"`
		Color string `json:"color" binding:"clothing_color"`
		Name  string `json:"name" binding:"required"`
	}
	tests := []struct {
		name string
		req  request
		want string
	}{
		{name: "size", req: request{Size: "XS", Color: "Red", Name: "x"}, want: "error.size_invalid"},
		{name: "color", req: request{Size: "m", Color: "Purple", Name: "x"}, want: "error.color_invalid"},
		{name: "required", req: request{}, want: "error.bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.req)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if got := BindingErrorKey(err); got != tt.want {
				t.Fatalf("want %s got %s", tt.want, got)
			}
		})
	}

	if err := binding.Validator.ValidateStruct(request{Size: "xl", Color: "black", Name: "ok"}); err != nil {
		t.Fatalf("case-insensitive values should pass, got %v", err)
	}
}

func TestMsgListsEnumChoices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/clothing", nil)

	if got := Msg(c, "error.size_invalid"); got != "Size must be one of S, M, L, XL, XXL" {
		t.Fatalf("unexpected size message: %s", got)
	}
	if got := Msg(c, "error.color_invalid"); got != "Color must be one of Red, Blue, Black, White, Green, Yellow" {
		t.Fatalf("unexpected color message: %s", got)
	}

	c.Request = httptest.NewRequest(http.MethodPost, "/admin/clothing?lang=zh", nil)
	if got := Msg(c, "error.size_invalid"); !strings.HasSuffix(got, "S, M, L, XL, XXL") {
		t.Fatalf("zh size message should list choices, got %s", got)
	}
	if got := Msg(c, "error.item_name_required"); strings.Contains(got, "%") {
		t.Fatalf("plain keys must not be formatted, got %s", got)
	}
}
