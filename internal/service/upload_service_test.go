package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salesorder-next/internal/config"
	"github.com/salesorder-next/internal/constants"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse multipart failed: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func newTestUploadService(t *testing.T) (*UploadService, string) {
	dir := t.TempDir()
	return NewUploadService(config.UploadConfig{
		Dir:              dir,
		MaxSize:          1024,
		DesignExtensions: []string{".png", ".pdf", "ai", ".psd"},
	}), dir
}

func TestUploadServiceSavesDesignFile(t *testing.T) {
	svc, dir := newTestUploadService(t)
	ref, err := svc.SaveFile(buildFileHeader(t, "logo.ai", []byte("%!PS-Adobe illustrator")), constants.UploadSceneDesign)
	if err != nil {
		t.Fatalf("save design file failed: %v", err)
	}
	if ref.Name != "logo.ai" || !strings.HasPrefix(ref.Path, "/uploads/design/") || !strings.HasSuffix(ref.Path, ".ai") {
		t.Fatalf("unexpected file ref: %+v", ref)
	}
	rel := strings.TrimPrefix(ref.Path, "/uploads/")
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("saved file not found: %v", err)
	}
}

func TestUploadServiceAcceptsImagesForDesign(t *testing.T) {
	svc, _ := newTestUploadService(t)
	ref, err := svc.SaveFile(buildFileHeader(t, "mockup.bin", pngHeader), "DESIGN")
	if err != nil {
		t.Fatalf("image content should be accepted: %v", err)
	}
	if ref.ContentType != "image/png" {
		t.Fatalf("unexpected content type: %s", ref.ContentType)
	}
}

func TestUploadServiceRejects(t *testing.T) {
	svc, _ := newTestUploadService(t)
	if _, err := svc.SaveFile(buildFileHeader(t, "notes.txt", []byte("hello")), constants.UploadSceneDesign); !errors.Is(err, ErrUploadInvalid) {
		t.Fatalf("expected design type rejection, got %v", err)
	}
	big := bytes.Repeat([]byte("a"), 2048)
	if _, err := svc.SaveFile(buildFileHeader(t, "bukti.txt", big), constants.UploadSceneAttachment); !errors.Is(err, ErrUploadInvalid) {
		t.Fatalf("expected size rejection, got %v", err)
	}
	if _, err := svc.SaveFile(nil, constants.UploadSceneAttachment); !errors.Is(err, ErrUploadInvalid) {
		t.Fatalf("expected missing file rejection, got %v", err)
	}
}

func TestUploadServiceAttachmentAnyType(t *testing.T) {
	svc, _ := newTestUploadService(t)
	ref, err := svc.SaveFile(buildFileHeader(t, "bukti.txt", []byte("transfer ok")), "")
	if err != nil {
		t.Fatalf("attachment should accept any type by default: %v", err)
	}
	if !strings.HasPrefix(ref.Path, "/uploads/attachment/") || ref.Size != int64(len("transfer ok")) {
		t.Fatalf("unexpected attachment ref: %+v", ref)
	}
}

func TestDesignAcceptHint(t *testing.T) {
	svc, _ := newTestUploadService(t)
	if got := svc.DesignAcceptHint(); got != "image/*,.pdf,.ai,.psd" {
		t.Fatalf("unexpected accept hint: %s", got)
	}
}
