package helper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvertToWebP_DownscalesKeepingAspect(t *testing.T) {
	opts := WebPOptions{MaxW: 100, MaxH: 100, Quality: 70}
	out, err := ConvertToWebP(bytes.NewReader(pngOf(t, 400, 200)), "surat.png", opts)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestConvertToWebP_SmallImageUntouched(t *testing.T) {
	out, err := ConvertToWebP(bytes.NewReader(pngOf(t, 40, 30)), "kecil.png", WebPOptions{MaxW: 100, MaxH: 100})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestConvertToWebP_RejectsNonImage(t *testing.T) {
	_, err := ConvertToWebP(bytes.NewReader([]byte("%PDF-1.4 bukan gambar")), "surat.pdf", DefaultWebPOptionsFromEnv())
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestBuildObjectKey(t *testing.T) {
	s := &OSSService{Prefix: "sekolahku"}
	key := s.BuildObjectKey("/pengajuan-absensi/abc/", "Surat Dokter_1.PDF")
	assert.Regexp(t, `^sekolahku/pengajuan-absensi/abc/surat-dokter-1_\d{8}_\d{6}_[0-9a-f]{6}\.pdf$`, key)
}

func TestPublicURLRoundTrip(t *testing.T) {
	s := &OSSService{Endpoint: "https://oss-ap-southeast-5.aliyuncs.com", BucketName: "bkt"}
	url := s.PublicURL("a/b.webp")
	assert.Equal(t, "https://bkt.oss-ap-southeast-5.aliyuncs.com/a/b.webp", url)

	key, err := s.KeyFromPublicURL(url)
	require.NoError(t, err)
	assert.Equal(t, "a/b.webp", key)

	cdn := &OSSService{PublicBase: "https://cdn.sekolahku.id/"}
	key, err = cdn.KeyFromPublicURL("https://cdn.sekolahku.id/x/y.pdf")
	require.NoError(t, err)
	assert.Equal(t, "x/y.pdf", key)
}
