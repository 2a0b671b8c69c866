package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "sekolahku_backend/internals/features/users/user/model"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

const buktiURL = "https://oss.example.com/sekolahku/pengajuan-absensi/bukti.webp"

// multipart pengajuan + file "bukti"
func (e *env) submitMultipart(t *testing.T, as userModel.UserModel, fields map[string]string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile("bukti", "surat-dokter.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/u/pengajuan-absensi", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-User", as.ID.String())
	req.Header.Set("X-Role", string(as.Role))

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

type blobRecorder struct {
	uploads []uuid.UUID
	deleted []string
}

func (r *blobRecorder) mock() *helperOSS.MockBlobService {
	return &helperOSS.MockBlobService{
		UploadEvidenceFn: func(_ context.Context, siswaID uuid.UUID, _ *multipart.FileHeader) (string, error) {
			r.uploads = append(r.uploads, siswaID)
			return buktiURL, nil
		},
		DeleteByPublicURLFn: func(_ context.Context, url string) error {
			r.deleted = append(r.deleted, url)
			return nil
		},
	}
}

func TestSubmitLeave_MultipartStoresBuktiURL(t *testing.T) {
	rec := &blobRecorder{}
	e := newEnvWithBlob(t, rec.mock())

	code, out := e.submitMultipart(t, e.siswa, map[string]string{
		"tanggal": "2025-03-10", "keterangan": "sakit", "alasan": "Demam tinggi",
	})
	require.Equal(t, fiber.StatusCreated, code, out.Message)

	var p struct {
		BuktiURL string `json:"buktiUrl"`
		Status   string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &p))
	assert.Equal(t, buktiURL, p.BuktiURL)
	assert.Equal(t, "pending", p.Status)
	assert.Equal(t, []uuid.UUID{e.siswa.ID}, rec.uploads)
	assert.Empty(t, rec.deleted)
}

func TestSubmitLeave_RejectedSubmitDeletesUpload(t *testing.T) {
	rec := &blobRecorder{}
	e := newEnvWithBlob(t, rec.mock())
	fields := map[string]string{"tanggal": "2025-03-10", "keterangan": "izin", "alasan": "Acara keluarga"}

	code, _ := e.submitMultipart(t, e.siswa, fields)
	require.Equal(t, fiber.StatusCreated, code)

	code, out := e.submitMultipart(t, e.siswa, fields)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "PENGAJUAN_EXISTS", out.ErrorCode)
	assert.Len(t, rec.uploads, 2)
	assert.Equal(t, []string{buktiURL}, rec.deleted)
}

func TestSubmitLeave_CleanupFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	rec := &blobRecorder{}
	blob := rec.mock()
	blob.DeleteByPublicURLFn = func(context.Context, string) error { return errors.New("oss timeout") }
	e := newEnvWithBlob(t, blob)
	fields := map[string]string{"tanggal": "2025-03-10", "keterangan": "izin", "alasan": "Acara keluarga"}

	code, _ := e.submitMultipart(t, e.siswa, fields)
	require.Equal(t, fiber.StatusCreated, code)
	code, _ = e.submitMultipart(t, e.siswa, fields)
	assert.Equal(t, fiber.StatusBadRequest, code)

	assert.Contains(t, logs.String(), "[WARN] gagal hapus bukti "+buktiURL)
	assert.Contains(t, logs.String(), "oss timeout")
}

func TestSubmitLeave_UploadWithoutBlobIsUnavailable(t *testing.T) {
	e := newEnv(t)

	code, out := e.submitMultipart(t, e.siswa, map[string]string{
		"tanggal": "2025-03-10", "keterangan": "sakit", "alasan": "Demam",
	})
	assert.Equal(t, fiber.StatusServiceUnavailable, code)
	assert.False(t, out.Success)
}
