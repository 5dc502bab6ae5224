package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/salesorder-next/internal/config"
	"github.com/salesorder-next/internal/constants"
	"github.com/salesorder-next/internal/models"

	"github.com/google/uuid"
)

// UploadService 付款凭证与设计稿上传
type UploadService struct {
	cfg config.UploadConfig
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg config.UploadConfig) *UploadService {
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = "uploads"
	}
	return &UploadService{cfg: cfg}
}

// DesignAcceptHint 设计稿选择器的过滤提示，如 image/*,.pdf,.ai,.psd
func (s *UploadService) DesignAcceptHint() string {
	parts := []string{"image/*"}
	for _, ext := range s.cfg.DesignExtensions {
		normalized := normalizeExtension(ext)
		if normalized == "" || isImageExtension(normalized) {
			continue
		}
		parts = append(parts, normalized)
	}
	return strings.Join(parts, ",")
}

// SaveFile 保存上传文件并返回文件引用
func (s *UploadService) SaveFile(file *multipart.FileHeader, scene string) (*models.FileRef, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: file missing", ErrUploadInvalid)
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return nil, fmt.Errorf("%w: file exceeds %d MB", ErrUploadInvalid, s.cfg.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions) {
			return nil, fmt.Errorf("%w: extension %s", ErrUploadInvalid, ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 读取文件头部识别 MIME 类型
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	contentType := http.DetectContentType(buffer[:n])

	normalizedScene := normalizeUploadScene(scene)
	switch normalizedScene {
	case constants.UploadSceneDesign:
		if !strings.HasPrefix(contentType, "image/") && !isAllowedExtension(ext, s.cfg.DesignExtensions) {
			return nil, fmt.Errorf("%w: design file type %s", ErrUploadInvalid, contentType)
		}
	default:
		if len(s.cfg.AttachmentTypes) > 0 && !containsFold(s.cfg.AttachmentTypes, contentType) {
			return nil, fmt.Errorf("%w: attachment type %s", ErrUploadInvalid, contentType)
		}
	}

	filename := uuid.New().String() + ext
	now := time.Now()
	year := now.Format("2006")
	month := now.Format("01")
	savePath := filepath.Join(s.cfg.Dir, normalizedScene, year, month, filename)

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return nil, err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		return nil, err
	}

	return &models.FileRef{
		Name:        filepath.Base(file.Filename),
		Path:        fmt.Sprintf("/uploads/%s/%s/%s/%s", normalizedScene, year, month, filename),
		Size:        written,
		ContentType: contentType,
	}, nil
}

func normalizeUploadScene(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), constants.UploadSceneDesign) {
		return constants.UploadSceneDesign
	}
	return constants.UploadSceneAttachment
}

func normalizeExtension(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return ""
	}
	if !strings.HasPrefix(normalized, ".") {
		normalized = "." + normalized
	}
	return normalized
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := normalizeExtension(allowedExt)
		if normalized != "" && strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

func isImageExtension(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".bmp":
		return true
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}
