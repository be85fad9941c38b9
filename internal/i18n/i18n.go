package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocaleEN = "en"
	LocaleZH = "zh-CN"
)

const (
	acceptLanguageHeader = "Accept-Language"
	localeQueryKey       = "lang"
)

var supportedTags = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(supportedTags)

// T 返回指定语言的文案，缺失时依次回退到英文与 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(LocaleEN, key); ok {
		return msg
	}
	return key
}

// Sprintf 返回格式化后的文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// ResolveLocale 从 ?lang= 或 Accept-Language 解析语言，默认英文
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return LocaleEN
	}
	if raw := strings.TrimSpace(c.Query(localeQueryKey)); raw != "" {
		return Normalize(raw)
	}
	return Normalize(c.GetHeader(acceptLanguageHeader))
}

// Normalize 将任意语言标签匹配到支持的语言
func Normalize(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return LocaleEN
	}
	tags, _, err := language.ParseAcceptLanguage(text)
	if err != nil || len(tags) == 0 {
		return LocaleEN
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LocaleEN
	}
	if supportedTags[index] == language.SimplifiedChinese {
		return LocaleZH
	}
	return LocaleEN
}

func lookup(locale, key string) (string, bool) {
	catalog, ok := catalogs[locale]
	if !ok {
		return "", false
	}
	msg, ok := catalog[key]
	return msg, ok
}
