// internals/helpers/oss/oss_client.go
package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// batas ukuran upload bukti (guard ringan sebelum decode)
var MaxUploadSize = int64(5 * 1024 * 1024)

var ErrTooLarge = errors.New("file terlalu besar")

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "uploads"
	PublicBase string // optional: CDN base
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
		PublicBase: getEnv("ALI_OSS_PUBLIC_BASE"),
	}, nil
}

/* =======================================================================
   Upload
======================================================================= */

// UploadImageAsWebP: recompress ke webp lalu upload ke dir
func (s *OSSService) UploadImageAsWebP(ctx context.Context, dir string, fh *multipart.FileHeader, opt WebPOptions) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > MaxUploadSize {
		return "", ErrTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := ConvertToWebP(src, fh.Filename, opt)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := s.BuildObjectKey(dir, base+".webp")
	if err := s.UploadStream(ctx, key, bytes.NewReader(data), "image/webp"); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// UploadRaw: upload apa adanya (mis. PDF surat dokter)
func (s *OSSService) UploadRaw(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > MaxUploadSize {
		return "", ErrTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	ct, reader, err := detectContentType(src, fh.Filename)
	if err != nil {
		return "", err
	}
	key := s.BuildObjectKey(dir, fh.Filename)
	if err := s.UploadStream(ctx, key, reader, ct); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *OSSService) UploadStream(ctx context.Context, key string, r io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.Bucket.PutObject(key, r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
}

func (s *OSSService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := s.KeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

/* =======================================================================
   Public URL & Key utils
======================================================================= */

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.PublicBase != "" {
		return strings.TrimRight(s.PublicBase, "/") + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func (s *OSSService) KeyFromPublicURL(publicURL string) (string, error) {
	publicURL = strings.TrimSpace(publicURL)
	if publicURL == "" {
		return "", fmt.Errorf("empty url")
	}
	if s.PublicBase != "" {
		base := strings.TrimRight(s.PublicBase, "/") + "/"
		if strings.HasPrefix(publicURL, base) {
			return strings.TrimPrefix(publicURL, base), nil
		}
	}
	u := publicURL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "/"); i >= 0 && i+1 < len(u) {
		return u[i+1:], nil
	}
	return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
}

// BuildObjectKey: {prefix}/{dir}/{slug}_{ts}_{rand}{ext}
func (s *OSSService) BuildObjectKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	parts := make([]string, 0, 3)
	if s.Prefix != "" {
		parts = append(parts, s.Prefix)
	}
	if d := strings.Trim(dir, "/"); d != "" {
		parts = append(parts, d)
	}
	name := fmt.Sprintf("%s_%s_%s%s", slugify(base), time.Now().Format("20060102_150405"), randHex(3), ext)
	return strings.Join(append(parts, name), "/")
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// detectContentType: ekstensi + sniff 512B
func detectContentType(src multipart.File, filename string) (string, io.Reader, error) {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))

	head := make([]byte, 512)
	n, _ := io.ReadFull(io.LimitReader(src, 512), head)
	if ct == "" || ct == "application/octet-stream" {
		if n > 0 {
			ct = http.DetectContentType(head[:n])
		} else {
			ct = "application/octet-stream"
		}
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", nil, err
	}
	return ct, src, nil
}

func init() {
	_ = mime.AddExtensionType(".webp", "image/webp")
}
