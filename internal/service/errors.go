package service

import "errors"

// ErrInvalidInput 通用参数错误
var ErrInvalidInput = errors.New("invalid input")

// 商品目录相关错误
var (
	ErrClothingItemNotFound  = errors.New("clothing item not found")
	ErrItemNameRequired      = errors.New("clothing item name is required")
	ErrPriceInvalid          = errors.New("price must be a non-negative amount")
	ErrPopularityInvalid     = errors.New("popularity must be non-negative")
	ErrSizeInvalid           = errors.New("size is not one of the allowed values")
	ErrColorInvalid          = errors.New("color is not one of the allowed values")
	ErrSortByInvalid         = errors.New("sort_by must be price or popularity")
	ErrPriceRangeInvalid     = errors.New("price range is invalid")
	ErrCategoryFilterInvalid = errors.New("category filter must be a category id")
	ErrPaginationInvalid     = errors.New("page and page_size must be positive integers")
)

// 分类相关错误
var (
	ErrCategoryNotFound         = errors.New("category not found")
	ErrCategoryNameRequired     = errors.New("category name is required")
	ErrCategoryNameExists       = errors.New("category name already exists")
	ErrCategoryParentNotFound   = errors.New("parent category not found")
	ErrCategoryCycle            = errors.New("category parent would create a cycle")
	ErrCategoryInUse            = errors.New("category still has items or subcategories")
	ErrDefaultCategoryProtected = errors.New("default category cannot be deleted")
)

// 评价与心愿单相关错误
var (
	ErrReviewNotFound        = errors.New("review not found")
	ErrReviewExists          = errors.New("you have already reviewed this item")
	ErrReviewRatingInvalid   = errors.New("rating must be an integer between 1 and 5")
	ErrReviewCommentRequired = errors.New("comment is required")
	ErrWishlistItemExists    = errors.New("item is already in your wishlist")
	ErrWishlistItemNotFound  = errors.New("item not found in wishlist")
)

// 用户与认证相关错误
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameInvalid    = errors.New("username may contain only letters, digits and @/./+/-/_")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already exists")
	ErrPasswordMismatch   = errors.New("password and confirm_password do not match")
	ErrWeakPassword       = errors.New("password does not satisfy the password policy")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is not active")
	ErrActivationInvalid  = errors.New("activation link is invalid")
	ErrActivationExpired  = errors.New("activation link has expired")
	ErrMobileNoInvalid    = errors.New("mobile_no must be at most 12 digits")
	ErrProfileEmpty       = errors.New("nothing to update")
	ErrCannotModifySelf   = errors.New("administrators cannot delete or demote themselves")
	ErrTokenInvalid       = errors.New("token is invalid")
)

// 邮件相关错误
var (
	ErrEmailServiceDisabled      = errors.New("email service is disabled")
	ErrEmailServiceNotConfigured = errors.New("email service is not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// 验证码相关错误
var (
	ErrCaptchaRequired      = errors.New("captcha is required")
	ErrCaptchaInvalid       = errors.New("captcha is invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config is invalid")
)

// 上传相关错误
var (
	ErrUploadEmpty          = errors.New("no file uploaded")
	ErrUploadTooLarge       = errors.New("file is too large")
	ErrUploadTypeNotAllowed = errors.New("file type is not allowed")
	ErrUploadDimensions     = errors.New("image dimensions are out of range")
)
