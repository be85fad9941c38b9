package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/constants"
	handlershared "github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/provider"
	"github.com/elisiyan/internal/repository"
	"github.com/elisiyan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type publicEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupPublicHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := handlershared.RegisterValidators(); err != nil {
		t.Fatalf("register validators failed: %v", err)
	}

	dsn := fmt.Sprintf("file:public_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), models.NewGormConfig("silent"))
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateWith(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if err := models.EnsureDefaultCategory(db, 1, "Uncategorized"); err != nil {
		t.Fatalf("ensure default category failed: %v", err)
	}

	itemRepo := repository.NewClothingItemRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	ratings := service.NewRatingAggregator(reviewRepo)

	h := New(&provider.Container{
		RatingAggregator: ratings,
		CatalogService:   service.NewCatalogService(itemRepo, ratings, 50),
		CategoryService:  service.NewCategoryService(repository.NewCategoryRepository(db), 1, 0),
		ReviewService:    service.NewReviewService(reviewRepo, itemRepo),
		WishlistService:  service.NewWishlistService(repository.NewWishlistRepository(db), itemRepo),
		CaptchaService: service.NewCaptchaService(config.CaptchaConfig{
			Provider: constants.CaptchaProviderImage,
			Scenes:   config.CaptchaSceneConfig{Login: true},
		}),
	})
	return h, db
}

func seedItem(t *testing.T, db *gorm.DB, name, price string, popularity int) models.ClothingItem {
	t.Helper()
	item := models.ClothingItem{
		Name:       name,
		Price:      models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Popularity: popularity,
		CategoryID: 1,
		Size:       constants.SizeM,
		Color:      constants.ColorBlue,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	return item
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: "hash", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func servePublic(t *testing.T, method, pattern, path string, userID uint, body interface{}, handler gin.HandlerFunc) (int, publicEnvelope) {
	t.Helper()
	reader := bytes.NewReader(nil)
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	engine := gin.New()
	engine.Handle(method, pattern, func(c *gin.Context) {
		if userID != 0 {
			c.Set(constants.ContextKeyUserID, userID)
		}
		handler(c)
	})
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env publicEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return w.Code, env
}

func TestGetImageCaptchaHandler(t *testing.T) {
	h, _ := setupPublicHandlerTest(t)

	status, env := servePublic(t, http.MethodGet, "/captcha", "/captcha", 0, nil, h.GetImageCaptcha)
	if status != http.StatusOK || env.StatusCode != 0 {
		t.Fatalf("want 200 got http=%d envelope=%d msg=%s", status, env.StatusCode, env.Msg)
	}
	var challenge CaptchaChallengeResponse
	if err := json.Unmarshal(env.Data, &challenge); err != nil {
		t.Fatalf("decode challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("challenge should carry id and image: %+v", challenge)
	}
	if !challenge.Scenes[constants.CaptchaSceneLogin] || challenge.Scenes[constants.CaptchaSceneRegister] {
		t.Fatalf("unexpected scenes %v", challenge.Scenes)
	}

	h.CaptchaService = service.NewCaptchaService(config.CaptchaConfig{})
	status, _ = servePublic(t, http.MethodGet, "/captcha", "/captcha", 0, nil, h.GetImageCaptcha)
	if status != http.StatusBadRequest {
		t.Fatalf("captcha without provider want 400 got %d", status)
	}
}

func TestListClothingItemsHandler(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	seedItem(t, db, "Linen Shirt", "30.00", 5)
	seedItem(t, db, "Wool Coat", "120.00", 9)
	seedItem(t, db, "Cotton Tee", "12.50", 1)

	status, env := servePublic(t, http.MethodGet, "/clothing", "/clothing?sort_by=popularity", 0, nil, h.ListClothingItems)
	if status != http.StatusOK {
		t.Fatalf("want 200 got %d msg=%s", status, env.Msg)
	}
	var records []handlershared.ClothingItemRecord
	if err := json.Unmarshal(env.Data, &records); err != nil {
		t.Fatalf("decode items failed: %v", err)
	}
	if len(records) != 3 || records[0].Name != "Wool Coat" {
		t.Fatalf("popularity sort mismatch: %+v", records)
	}

	status, env = servePublic(t, http.MethodGet, "/clothing", "/clothing?price_min=20&page=1&page_size=1", 0, nil, h.ListClothingItems)
	if status != http.StatusOK {
		t.Fatalf("paged want 200 got %d msg=%s", status, env.Msg)
	}
	records = nil
	if err := json.Unmarshal(env.Data, &records); err != nil {
		t.Fatalf("decode paged items failed: %v", err)
	}
	if len(records) != 1 || records[0].Price != "30.00" {
		t.Fatalf("price filter with page size 1 mismatch: %+v", records)
	}

	tests := []struct {
		name  string
		query string
	}{
		{name: "bad_sort", query: "sort_by=rating"},
		{name: "inverted_range", query: "price_min=50&price_max=10"},
		{name: "bad_category", query: "category=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := servePublic(t, http.MethodGet, "/clothing", "/clothing?"+tt.query, 0, nil, h.ListClothingItems)
			if status != http.StatusBadRequest || env.StatusCode != http.StatusBadRequest {
				t.Fatalf("want 400 got http=%d envelope=%d", status, env.StatusCode)
			}
		})
	}
}

func TestGetClothingItemHandler(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	item := seedItem(t, db, "Denim Jacket", "80.00", 2)

	status, env := servePublic(t, http.MethodGet, "/clothing/:id", fmt.Sprintf("/clothing/%d", item.ID), 0, nil, h.GetClothingItem)
	if status != http.StatusOK {
		t.Fatalf("want 200 got %d msg=%s", status, env.Msg)
	}
	var record handlershared.ClothingItemRecord
	if err := json.Unmarshal(env.Data, &record); err != nil {
		t.Fatalf("decode item failed: %v", err)
	}
	if record.ID != item.ID || record.ReviewCount != 0 || record.AverageRating != 0 {
		t.Fatalf("unexpected record %+v", record)
	}

	status, _ = servePublic(t, http.MethodGet, "/clothing/:id", "/clothing/999", 0, nil, h.GetClothingItem)
	if status != http.StatusNotFound {
		t.Fatalf("missing item want 404 got %d", status)
	}
	status, _ = servePublic(t, http.MethodGet, "/clothing/:id", "/clothing/zero", 0, nil, h.GetClothingItem)
	if status != http.StatusBadRequest {
		t.Fatalf("bad id want 400 got %d", status)
	}
}

func TestCreateReviewHandler(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	item := seedItem(t, db, "Silk Scarf", "25.00", 0)
	user := seedUser(t, db, "rita")

	status, _ := servePublic(t, http.MethodPost, "/reviews", "/reviews", 0, gin.H{"clothing_item": item.ID, "rating": 4, "comment": "nice"}, h.CreateReview)
	if status != http.StatusUnauthorized {
		t.Fatalf("anonymous review want 401 got %d", status)
	}

	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
	}{
		{name: "rating_out_of_range", body: gin.H{"clothing_item": item.ID, "rating": 6, "comment": "wow"}, wantStatus: http.StatusBadRequest},
		{name: "blank_comment", body: gin.H{"clothing_item": item.ID, "rating": 3, "comment": "  "}, wantStatus: http.StatusBadRequest},
		{name: "missing_item", body: gin.H{"clothing_item": 999, "rating": 3, "comment": "ok"}, wantStatus: http.StatusNotFound},
		{name: "ok", body: gin.H{"clothing_item": item.ID, "rating": 4, "comment": "fits well"}, wantStatus: http.StatusCreated},
		{name: "duplicate", body: gin.H{"clothing_item": item.ID, "rating": 2, "comment": "again"}, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := servePublic(t, http.MethodPost, "/reviews", "/reviews", user.ID, tt.body, h.CreateReview)
			if status != tt.wantStatus {
				t.Fatalf("want %d got %d msg=%s", tt.wantStatus, status, env.Msg)
			}
		})
	}

	status, env := servePublic(t, http.MethodGet, "/clothing/:id/reviews", fmt.Sprintf("/clothing/%d/reviews", item.ID), 0, nil, h.ListItemReviews)
	if status != http.StatusOK {
		t.Fatalf("item reviews want 200 got %d", status)
	}
	var reviews []handlershared.ReviewRecord
	if err := json.Unmarshal(env.Data, &reviews); err != nil {
		t.Fatalf("decode reviews failed: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Rating != 4 || reviews[0].User != user.ID {
		t.Fatalf("unexpected reviews %+v", reviews)
	}

	_, env = servePublic(t, http.MethodGet, "/clothing/:id", fmt.Sprintf("/clothing/%d", item.ID), 0, nil, h.GetClothingItem)
	var record handlershared.ClothingItemRecord
	if err := json.Unmarshal(env.Data, &record); err != nil {
		t.Fatalf("decode item failed: %v", err)
	}
	if record.ReviewCount != 1 || record.AverageRating != 4 {
		t.Fatalf("rating not aggregated: %+v", record)
	}
}

func TestWishlistHandlers(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	item := seedItem(t, db, "Rain Boots", "45.00", 3)
	user := seedUser(t, db, "omar")
	body := gin.H{"clothing_item": item.ID}

	status, env := servePublic(t, http.MethodPost, "/wishlist", "/wishlist", user.ID, body, h.AddToWishlist)
	if status != http.StatusCreated {
		t.Fatalf("add want 201 got %d msg=%s", status, env.Msg)
	}
	var added handlershared.WishlistRecord
	if err := json.Unmarshal(env.Data, &added); err != nil {
		t.Fatalf("decode wishlist entry failed: %v", err)
	}
	if added.User != "omar" || added.ClothingItem.ID != item.ID {
		t.Fatalf("unexpected entry %+v", added)
	}

	status, _ = servePublic(t, http.MethodPost, "/wishlist", "/wishlist", user.ID, body, h.AddToWishlist)
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate add want 400 got %d", status)
	}
	status, _ = servePublic(t, http.MethodPost, "/wishlist", "/wishlist", user.ID, gin.H{"clothing_item": 999}, h.AddToWishlist)
	if status != http.StatusNotFound {
		t.Fatalf("unknown item want 404 got %d", status)
	}

	status, env = servePublic(t, http.MethodGet, "/wishlist", "/wishlist", user.ID, nil, h.ViewWishlist)
	if status != http.StatusOK {
		t.Fatalf("view want 200 got %d", status)
	}
	var entries []handlershared.WishlistRecord
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("decode wishlist failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("want 1 entry got %d", len(entries))
	}

	status, _ = servePublic(t, http.MethodDelete, "/wishlist", "/wishlist", user.ID, body, h.RemoveFromWishlist)
	if status != http.StatusOK {
		t.Fatalf("remove want 200 got %d", status)
	}
	status, _ = servePublic(t, http.MethodDelete, "/wishlist", "/wishlist", user.ID, body, h.RemoveFromWishlist)
	if status != http.StatusNotFound {
		t.Fatalf("second remove want 404 got %d", status)
	}
	status, _ = servePublic(t, http.MethodGet, "/wishlist", "/wishlist", 0, nil, h.ViewWishlist)
	if status != http.StatusUnauthorized {
		t.Fatalf("anonymous view want 401 got %d", status)
	}
}
