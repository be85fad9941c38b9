package admin

import (
	"errors"

	handlershared "github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

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

var catalogQueryErrorRules = []mappedHandlerError{
	{target: service.ErrSortByInvalid, code: response.CodeBadRequest, key: "error.sort_by_invalid"},
	{target: service.ErrPriceRangeInvalid, code: response.CodeBadRequest, key: "error.price_range_invalid"},
	{target: service.ErrCategoryFilterInvalid, code: response.CodeBadRequest, key: "error.category_filter_invalid"},
	{target: service.ErrPaginationInvalid, code: response.CodeBadRequest, key: "error.pagination_invalid"},
}

var clothingItemErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrItemNameRequired, code: response.CodeBadRequest, key: "error.item_name_required"},
	{target: service.ErrPriceInvalid, code: response.CodeBadRequest, key: "error.price_invalid"},
	{target: service.ErrPopularityInvalid, code: response.CodeBadRequest, key: "error.popularity_invalid"},
	{target: service.ErrSizeInvalid, code: response.CodeBadRequest, key: "error.size_invalid"},
	{target: service.ErrColorInvalid, code: response.CodeBadRequest, key: "error.color_invalid"},
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
	{target: service.ErrClothingItemNotFound, code: response.CodeNotFound, key: "error.clothing_item_not_found"},
}

var categoryErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNameRequired, code: response.CodeBadRequest, key: "error.category_name_required"},
	{target: service.ErrCategoryNameExists, code: response.CodeBadRequest, key: "error.category_name_exists"},
	{target: service.ErrCategoryCycle, code: response.CodeBadRequest, key: "error.category_cycle"},
	{target: service.ErrCategoryInUse, code: response.CodeBadRequest, key: "error.category_in_use"},
	{target: service.ErrDefaultCategoryProtected, code: response.CodeBadRequest, key: "error.default_category_protected"},
	{target: service.ErrCategoryParentNotFound, code: response.CodeNotFound, key: "error.category_parent_not_found"},
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
}

var uploadErrorRules = []mappedHandlerError{
	{target: service.ErrUploadEmpty, code: response.CodeBadRequest, key: "error.upload_empty"},
	{target: service.ErrUploadTooLarge, code: response.CodeBadRequest, key: "error.upload_too_large"},
	{target: service.ErrUploadTypeNotAllowed, code: response.CodeBadRequest, key: "error.upload_type_not_allowed"},
	{target: service.ErrUploadDimensions, code: response.CodeBadRequest, key: "error.upload_dimensions"},
}

var userAdminErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrCannotModifySelf, code: response.CodeBadRequest, key: "error.cannot_modify_self"},
}

var loginAuditErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}
