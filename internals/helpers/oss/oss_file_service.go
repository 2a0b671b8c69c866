package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/*
BlobService = facade upload bukti pengajuan izin/sakit untuk controller.
Gambar → WebP (resize), PDF → raw. Error sudah berbentuk *fiber.Error.
*/
type BlobService interface {
	UploadEvidence(ctx context.Context, siswaID uuid.UUID, fh *multipart.FileHeader) (publicURL string, err error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

var allowedEvidence = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// --------------------------------------------------
// Implementasi berbasis Aliyun OSS
// --------------------------------------------------

type OSSBlobService struct {
	svc  *OSSService
	webp WebPOptions
}

func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s, webp: DefaultWebPOptionsFromEnv()}, nil
}

func (b *OSSBlobService) UploadEvidence(ctx context.Context, siswaID uuid.UUID, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if fh.Size > MaxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran file maksimal 5MB")
	}
	ct, err := sniffHeader(fh)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak bisa dibaca")
	}
	if !allowedEvidence[ct] {
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Bukti harus jpg/png/webp/pdf")
	}

	dir := fmt.Sprintf("pengajuan-absensi/%s", siswaID)
	var url string
	if strings.HasPrefix(ct, "image/") {
		url, err = b.svc.UploadImageAsWebP(ctx, dir, fh, b.webp)
	} else {
		url, err = b.svc.UploadRaw(ctx, dir, fh)
	}
	switch {
	case err == nil:
		return url, nil
	case errors.Is(err, ErrUnsupportedImage):
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image format (pakai jpg/png/webp)")
	case errors.Is(err, ErrTooLarge):
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran file maksimal 5MB")
	default:
		return "", fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if strings.TrimSpace(publicURL) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "URL kosong")
	}
	if err := b.svc.DeleteByPublicURL(ctx, publicURL); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("Gagal hapus object: %v", err))
	}
	return nil
}

func sniffHeader(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	ct := strings.SplitN(http.DetectContentType(head[:n]), ";", 2)[0]
	return strings.TrimSpace(ct), nil
}

// --------------------------------------------------
// Helper kecil untuk controller
// --------------------------------------------------

// IsMultipart menilai request multipart/form-data
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

// GetFile mencari file dari beberapa kemungkinan field form.
// Jika tidak ada file, kembalikan nil supaya controller bisa fallback.
func GetFile(c *fiber.Ctx, fieldNames ...string) *multipart.FileHeader {
	if !IsMultipart(c) {
		return nil
	}
	for _, fn := range fieldNames {
		if fh, err := c.FormFile(fn); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}

// --------------------------------------------------
// Mock untuk unit test / dev tanpa OSS
// --------------------------------------------------

type MockBlobService struct {
	UploadEvidenceFn    func(ctx context.Context, siswaID uuid.UUID, fh *multipart.FileHeader) (string, error)
	DeleteByPublicURLFn func(ctx context.Context, publicURL string) error
}

func (m *MockBlobService) UploadEvidence(ctx context.Context, siswaID uuid.UUID, fh *multipart.FileHeader) (string, error) {
	if m.UploadEvidenceFn == nil {
		return "", errors.New("not implemented")
	}
	return m.UploadEvidenceFn(ctx, siswaID, fh)
}

func (m *MockBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if m.DeleteByPublicURLFn == nil {
		return errors.New("not implemented")
	}
	return m.DeleteByPublicURLFn(ctx, publicURL)
}
