package public

import (
	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CaptchaChallengeResponse 图片验证码挑战，scenes 告知前端哪些表单需要填写验证码
type CaptchaChallengeResponse struct {
	CaptchaID   string          `json:"captcha_id"`
	ImageBase64 string          `json:"image_base64"`
	Scenes      map[string]bool `json:"scenes"`
}

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_generate_failed")
		return
	}
	scenes := make(map[string]bool, 2)
	for _, scene := range []string{constants.CaptchaSceneLogin, constants.CaptchaSceneRegister} {
		scenes[scene] = h.CaptchaService.IsSceneEnabled(scene)
	}
	response.Success(c, CaptchaChallengeResponse{
		CaptchaID:   challenge.CaptchaID,
		ImageBase64: challenge.ImageBase64,
		Scenes:      scenes,
	})
}
