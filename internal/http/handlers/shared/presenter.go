package shared

import (
	"time"

	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/service"
)

// CategoryRef 嵌套在商品中的分类摘要
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ClothingItemRecord 商品对外结构
type ClothingItemRecord struct {
	ID            uint        `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Price         string      `json:"price"`
	Image         string      `json:"image"`
	Category      CategoryRef `json:"category"`
	Size          string      `json:"size"`
	Color         string      `json:"color"`
	Popularity    int         `json:"popularity"`
	AverageRating float64     `json:"average_rating"`
	ReviewCount   int         `json:"review_count"`
}

// CategoryRecord 分类对外结构
type CategoryRecord struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id"`
}

// CategoryTreeRecord 分类树节点
type CategoryTreeRecord struct {
	CategoryRecord
	Children []CategoryTreeRecord `json:"children"`
}

// ReviewRecord 评价对外结构
type ReviewRecord struct {
	ID           uint      `json:"id"`
	ClothingItem uint      `json:"clothing_item"`
	User         uint      `json:"user"`
	UserName     string    `json:"user_name"`
	Comment      string    `json:"comment"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}

// WishlistRecord 心愿单对外结构
type WishlistRecord struct {
	ID           uint               `json:"id"`
	User         string             `json:"user"`
	ClothingItem ClothingItemRecord `json:"clothing_item"`
	CreatedAt    time.Time          `json:"created_at"`
}

// ProfileRecord 当前用户资料
type ProfileRecord struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	MobileNo    string     `json:"mobile_no"`
	BuyHistory  string     `json:"buy_history"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UserRecord 后台用户结构
type UserRecord struct {
	ID              uint       `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	IsActive        bool       `json:"is_active"`
	IsStaff         bool       `json:"is_staff"`
	IsSuperuser     bool       `json:"is_superuser"`
	Role            string     `json:"role"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// PresentClothingItem 商品与评分摘要转换为对外结构
func PresentClothingItem(item models.ClothingItem, rating service.RatingSummary) ClothingItemRecord {
	return ClothingItemRecord{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price.String(),
		Image:       item.Image,
		Category: CategoryRef{
			ID:   item.CategoryID,
			Name: item.Category.Name,
		},
		Size:          string(item.Size),
		Color:         string(item.Color),
		Popularity:    item.Popularity,
		AverageRating: rating.Average.InexactFloat64(),
		ReviewCount:   rating.Count,
	}
}

// PresentCatalogItems 批量转换商品
func PresentCatalogItems(items []service.CatalogItem) []ClothingItemRecord {
	records := make([]ClothingItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, PresentClothingItem(item.Item, item.Rating))
	}
	return records
}

// PresentCategory 分类转换
func PresentCategory(category models.Category) CategoryRecord {
	return CategoryRecord{
		ID:       category.ID,
		Name:     category.Name,
		ParentID: category.ParentID,
	}
}

// PresentCategories 批量转换分类
func PresentCategories(categories []models.Category) []CategoryRecord {
	records := make([]CategoryRecord, 0, len(categories))
	for _, category := range categories {
		records = append(records, PresentCategory(category))
	}
	return records
}

// PresentCategoryTree 分类树转换，叶子节点的 children 输出为空数组
func PresentCategoryTree(nodes []service.CategoryNode) []CategoryTreeRecord {
	records := make([]CategoryTreeRecord, 0, len(nodes))
	for _, node := range nodes {
		records = append(records, CategoryTreeRecord{
			CategoryRecord: PresentCategory(node.Category),
			Children:       PresentCategoryTree(node.Children),
		})
	}
	return records
}

// PresentReview 评价转换
func PresentReview(review models.Review) ReviewRecord {
	return ReviewRecord{
		ID:           review.ID,
		ClothingItem: review.ClothingItemID,
		User:         review.UserID,
		UserName:     review.User.Username,
		Comment:      review.Comment,
		Rating:       review.Rating,
		CreatedAt:    review.CreatedAt,
	}
}

// PresentReviews 批量转换评价
func PresentReviews(reviews []models.Review) []ReviewRecord {
	records := make([]ReviewRecord, 0, len(reviews))
	for _, review := range reviews {
		records = append(records, PresentReview(review))
	}
	return records
}

// PresentWishlist 心愿单转换，ratings 缺失的商品按 0 分处理
func PresentWishlist(entry models.Wishlist, ratings map[uint]service.RatingSummary) WishlistRecord {
	return WishlistRecord{
		ID:           entry.ID,
		User:         entry.User.Username,
		ClothingItem: PresentClothingItem(entry.ClothingItem, ratings[entry.ClothingItemID]),
		CreatedAt:    entry.CreatedAt,
	}
}

// PresentProfile 当前用户资料转换
func PresentProfile(user *models.User) ProfileRecord {
	record := ProfileRecord{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
	if user.Profile != nil {
		record.MobileNo = user.Profile.MobileNo
		record.BuyHistory = user.Profile.BuyHistory
	}
	return record
}

// PresentUser 后台用户转换
func PresentUser(user models.User) UserRecord {
	return UserRecord{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		IsActive:        user.IsActive,
		IsStaff:         user.IsStaff,
		IsSuperuser:     user.IsSuperuser,
		Role:            user.Role(),
		EmailVerifiedAt: user.EmailVerifiedAt,
		LastLoginAt:     user.LastLoginAt,
		CreatedAt:       user.CreatedAt,
	}
}

// PresentUsers 批量转换用户
func PresentUsers(users []models.User) []UserRecord {
	records := make([]UserRecord, 0, len(users))
	for _, user := range users {
		records = append(records, PresentUser(user))
	}
	return records
}

// LoginAuditRecord 登录审计输出
type LoginAuditRecord struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	Status     string    `json:"status"`
	FailReason string    `json:"fail_reason,omitempty"`
	ClientIP   string    `json:"client_ip"`
	UserAgent  string    `json:"user_agent"`
	RequestID  string    `json:"request_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PresentLoginAudits 批量转换登录审计
func PresentLoginAudits(audits []models.LoginAudit) []LoginAuditRecord {
	records := make([]LoginAuditRecord, 0, len(audits))
	for _, audit := range audits {
		records = append(records, LoginAuditRecord{
			ID:         audit.ID,
			UserID:     audit.UserID,
			Username:   audit.Username,
			Status:     audit.Status,
			FailReason: audit.FailReason,
			ClientIP:   audit.ClientIP,
			UserAgent:  audit.UserAgent,
			RequestID:  audit.RequestID,
			CreatedAt:  audit.CreatedAt,
		})
	}
	return records
}
