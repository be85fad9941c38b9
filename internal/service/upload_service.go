package service

import (
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/elisiyan/internal/config"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const (
	clothingImageDir = "clothing_images"
	sniffLen         = 512
	// 约 40MP，超过即视为异常图片
	defaultMaxImagePixels = 40_000_000
)

// StoredImage 已落盘的商品图片
type StoredImage struct {
	Path        string `json:"url"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int64  `json:"size"`
}

// UploadService 商品图片上传
type UploadService struct {
	cfg       *config.UploadConfig
	maxPixels int
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg *config.UploadConfig) *UploadService {
	if cfg == nil {
		cfg = &config.UploadConfig{}
	}
	return &UploadService{cfg: cfg, maxPixels: defaultMaxImagePixels}
}

// SaveClothingImage 校验并保存商品图片，Path 可直接写入 ClothingItem.image
func (s *UploadService) SaveClothingImage(file *multipart.FileHeader) (*StoredImage, error) {
	if file == nil || file.Size == 0 {
		return nil, ErrUploadEmpty
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return nil, fmt.Errorf("%w: max %d MB", ErrUploadTooLarge, s.cfg.MaxSize/1024/1024)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 && !matchesAny(ext, s.cfg.AllowedExtensions, normalizeExtension) {
		return nil, fmt.Errorf("%w: extension %q", ErrUploadTypeNotAllowed, ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	stored, err := s.inspect(src)
	if err != nil {
		return nil, err
	}
	stored.Size = file.Size

	filename := uuid.NewString() + ext
	if err := s.write(src, filepath.Join(s.rootDir(), clothingImageDir, filename)); err != nil {
		return nil, err
	}
	stored.Path = path.Join("/uploads", clothingImageDir, filename)
	return stored, nil
}

// inspect 嗅探 MIME 并解析图片尺寸，完成后把读取位置复位
func (s *UploadService) inspect(src multipart.File) (*StoredImage, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUploadTypeNotAllowed, contentType)
	}
	if len(s.cfg.AllowedTypes) > 0 && !matchesAny(contentType, s.cfg.AllowedTypes, strings.TrimSpace) {
		return nil, fmt.Errorf("%w: %s", ErrUploadTypeNotAllowed, contentType)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadTypeNotAllowed, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > s.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrUploadDimensions, cfg.Width, cfg.Height)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return &StoredImage{ContentType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
}

// write 落盘失败时清理半成品文件
func (s *UploadService) write(src io.Reader, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(target)
		return err
	}
	return dst.Close()
}

func (s *UploadService) rootDir() string {
	if dir := strings.TrimSpace(s.cfg.Dir); dir != "" {
		return dir
	}
	return "uploads"
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func matchesAny(value string, allowed []string, normalize func(string) string) bool {
	if value == "" {
		return false
	}
	for _, item := range allowed {
		if candidate := normalize(item); candidate != "" && strings.EqualFold(candidate, value) {
			return true
		}
	}
	return false
}
