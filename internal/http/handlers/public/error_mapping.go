package public

import (
	"errors"

	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var catalogQueryErrorRules = []mappedHandlerError{
	{target: service.ErrSortByInvalid, code: response.CodeBadRequest, key: "error.sort_by_invalid"},
	{target: service.ErrPriceRangeInvalid, code: response.CodeBadRequest, key: "error.price_range_invalid"},
	{target: service.ErrCategoryFilterInvalid, code: response.CodeBadRequest, key: "error.category_filter_invalid"},
	{target: service.ErrPaginationInvalid, code: response.CodeBadRequest, key: "error.pagination_invalid"},
}

var clothingItemNotFoundRules = []mappedHandlerError{
	{target: service.ErrClothingItemNotFound, code: response.CodeNotFound, key: "error.clothing_item_not_found"},
}

var categoryFetchErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
}

var reviewCreateErrorRules = []mappedHandlerError{
	{target: service.ErrReviewRatingInvalid, code: response.CodeBadRequest, key: "error.review_rating_invalid"},
	{target: service.ErrReviewCommentRequired, code: response.CodeBadRequest, key: "error.review_comment_required"},
	{target: service.ErrReviewExists, code: response.CodeBadRequest, key: "error.review_exists"},
	{target: service.ErrUserNotFound, code: response.CodeUnauthorized, key: "error.unauthorized"},
}

var reviewFetchErrorRules = []mappedHandlerError{
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, key: "error.review_not_found"},
}

var wishlistErrorRules = []mappedHandlerError{
	{target: service.ErrWishlistItemExists, code: response.CodeBadRequest, key: "error.wishlist_item_exists"},
	{target: service.ErrWishlistItemNotFound, code: response.CodeNotFound, key: "error.wishlist_item_not_found"},
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrUsernameRequired, code: response.CodeBadRequest, key: "error.username_required"},
	{target: service.ErrUsernameInvalid, code: response.CodeBadRequest, key: "error.username_invalid"},
	{target: service.ErrUsernameExists, code: response.CodeBadRequest, key: "error.username_exists"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
	{target: service.ErrPasswordMismatch, code: response.CodeBadRequest, key: "error.password_mismatch"},
}

var activateErrorRules = []mappedHandlerError{
	{target: service.ErrActivationInvalid, code: response.CodeBadRequest, key: "error.activation_invalid"},
	{target: service.ErrActivationExpired, code: response.CodeBadRequest, key: "error.activation_expired"},
	{target: service.ErrUserNotFound, code: response.CodeBadRequest, key: "error.activation_invalid"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrUserInactive, code: response.CodeUnauthorized, key: "error.user_inactive"},
}

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrProfileEmpty, code: response.CodeBadRequest, key: "error.profile_empty"},
	{target: service.ErrMobileNoInvalid, code: response.CodeBadRequest, key: "error.mobile_no_invalid"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrCaptchaConfigInvalid, code: response.CodeBadRequest, key: "error.captcha_config_invalid"},
}

func respondCatalogQueryError(c *gin.Context, err error) {
	respondWithMappedError(c, err, catalogQueryErrorRules, response.CodeInternal, "error.catalog_fetch_failed")
}

func respondReviewCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(reviewCreateErrorRules, clothingItemNotFoundRules), response.CodeInternal, "error.review_create_failed")
}

func respondReviewFetchError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(reviewFetchErrorRules, clothingItemNotFoundRules), response.CodeInternal, "error.review_fetch_failed")
}

func respondWishlistError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(wishlistErrorRules, clothingItemNotFoundRules), response.CodeInternal, "error.wishlist_update_failed")
}

func respondCaptchaError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_invalid")
	return true
}
