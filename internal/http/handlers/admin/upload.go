package admin

import (
	handlershared "github.com/elisiyan/internal/http/handlers/shared"
	"github.com/elisiyan/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadClothingImage 上传商品图片，返回的 url 可写入商品 image 字段
func (h *Handler) UploadClothingImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_empty", nil)
		return
	}

	stored, err := h.UploadService.SaveClothingImage(file)
	if err != nil {
		respondWithMappedError(c, err, uploadErrorRules, response.CodeInternal, "error.upload_failed")
		return
	}
	response.Created(c, handlershared.Msg(c, "msg.upload_success"), stored)
}
