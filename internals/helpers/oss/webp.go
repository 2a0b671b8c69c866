package helper

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if v := getEnv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			return float32(f)
		}
	}
	return def
}

// ErrUnsupportedImage: bukan jpg/png/webp
var ErrUnsupportedImage = fmt.Errorf("format gambar tidak didukung")

/* =======================================================================
   Konfigurasi WebP (ENV-Driven)
======================================================================= */

type WebPOptions struct {
	MaxW     int     // batas lebar (resize keep-aspect)
	MaxH     int     // batas tinggi
	TargetKB int     // target ukuran; 0 = pakai Quality saja
	Quality  float32 // quality awal
	MinQ     float32 // batas bawah binary search
}

func DefaultWebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:     envInt("IMAGE_WEBP_MAX_W", 1280),
		MaxH:     envInt("IMAGE_WEBP_MAX_H", 1280),
		TargetKB: envInt("IMAGE_WEBP_TARGET_KB", 300),
		Quality:  envFloat("IMAGE_WEBP_QUALITY", 80),
		MinQ:     envFloat("IMAGE_WEBP_MIN_Q", 40),
	}
}

// IsImage: sniff 512 byte pertama
func IsImage(head []byte) bool {
	ct := http.DetectContentType(head)
	return strings.HasPrefix(ct, "image/")
}

/* =======================================================================
   Decode (EXIF orientation dihormati; foto HP sering miring)
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case strings.Contains(ct, "webp") || ext == ".webp":
		return webp.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "png"),
		ext == ".jpg", ext == ".jpeg", ext == ".png":
		return imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	default:
		return nil, fmt.Errorf("%w: %s / %s", ErrUnsupportedImage, ct, ext)
	}
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	if (maxW <= 0 || b.Dx() <= maxW) && (maxH <= 0 || b.Dy() <= maxH) {
		return src
	}
	if maxW <= 0 {
		maxW = b.Dx()
	}
	if maxH <= 0 {
		maxH = b.Dy()
	}
	return imaging.Fit(src, maxW, maxH, imaging.Lanczos)
}

/* =======================================================================
   Encode WebP
   - TargetKB > 0 → binary search quality sampai <= target
   - TargetKB = 0 → encode sekali dengan Quality
======================================================================= */

func encodeQ(img image.Image, q float32) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	first, err := encodeQ(img, q)
	if err != nil || opt.TargetKB <= 0 || len(first) <= opt.TargetKB*1024 {
		return first, err
	}

	target := opt.TargetKB * 1024
	low, high := opt.MinQ, q
	if low <= 0 || low >= high {
		low = high / 2
	}
	best := first
	for i := 0; i < 6; i++ {
		mid := (low + high) / 2
		data, err := encodeQ(img, mid)
		if err != nil {
			return nil, err
		}
		if len(data) <= target {
			best = data
			low = mid // coba kualitas lebih tinggi
		} else {
			high = mid
			if len(data) < len(best) {
				best = data
			}
		}
	}
	return best, nil
}

// ConvertToWebP: baca → decode → resize → encode webp
func ConvertToWebP(r io.Reader, filename string, opts WebPOptions) ([]byte, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	return encodeToWebP(downscaleIfNeeded(img, opts.MaxW, opts.MaxH), opts)
}
