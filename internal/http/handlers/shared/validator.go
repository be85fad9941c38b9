package shared

import (
	"errors"
	"sync"

	"github.com/elisiyan/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	keySizeInvalid  = "error.size_invalid"
	keyColorInvalid = "error.color_invalid"
)

var registerValidatorsOnce sync.Once

// RegisterValidators 在 gin 的校验引擎上注册商品尺码与颜色标签
func RegisterValidators() error {
	var err error
	registerValidatorsOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err = engine.RegisterValidation("clothing_size", validateClothingSize); err != nil {
			return
		}
		err = engine.RegisterValidation("clothing_color", validateClothingColor)
	})
	return err
}

func validateClothingSize(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	_, ok := models.ParseClothingSize(raw)
	return ok
}

func validateClothingColor(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	_, ok := models.ParseClothingColor(raw)
	return ok
}

// BindingErrorKey 将请求绑定错误映射为文案 key，尺码与颜色标签给出具体提示
func BindingErrorKey(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			switch fieldErr.Tag() {
			case "clothing_size":
				return keySizeInvalid
			case "clothing_color":
				return keyColorInvalid
			}
		}
	}
	return "error.bad_request"
}
