package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "sekolahku_backend/internals/features/notifications/model"
	"sekolahku_backend/internals/features/notifications/repository"
	"sekolahku_backend/internals/features/notifications/route"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// inbox in-memory, query di-scope per user seperti repository GORM
type memInbox struct {
	mu     sync.Mutex
	rows   []m.NotifikasiModel
	tokens map[string]m.DeviceTokenModel
}

func newMemInbox() *memInbox {
	return &memInbox{tokens: map[string]m.DeviceTokenModel{}}
}

func (s *memInbox) put(userID uuid.UUID, judul string) m.NotifikasiModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := m.NotifikasiModel{ID: uuid.New(), UserID: userID, Jenis: m.JenisPengumuman, Judul: judul, Pesan: judul}
	s.rows = append(s.rows, row)
	return row
}

func (s *memInbox) ListForUser(_ context.Context, userID uuid.UUID, f repository.InboxFilter) ([]m.NotifikasiModel, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []m.NotifikasiModel
	for _, r := range s.rows {
		if r.UserID != userID || (f.UnreadOnly && r.IsRead) {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (s *memInbox) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.rows {
		if r.UserID == userID && !r.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *memInbox) MarkRead(_ context.Context, userID, id uuid.UUID, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id && s.rows[i].UserID == userID {
			s.rows[i].IsRead = true
			s.rows[i].ReadAt = &now
			return true, nil
		}
	}
	return false, nil
}

func (s *memInbox) MarkAllRead(_ context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for i := range s.rows {
		if s.rows[i].UserID == userID && !s.rows[i].IsRead {
			s.rows[i].IsRead = true
			s.rows[i].ReadAt = &now
			n++
		}
	}
	return n, nil
}

func (s *memInbox) UpsertDeviceToken(_ context.Context, userID uuid.UUID, token, platform string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = m.DeviceTokenModel{UserID: userID, Token: token, Platform: platform, LastSeenAt: now}
	return nil
}

func (s *memInbox) DeleteUserDeviceToken(_ context.Context, userID uuid.UUID, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tokens[token]; ok && t.UserID == userID {
		delete(s.tokens, token)
		return 1, nil
	}
	return 0, nil
}

func (s *memInbox) isRead(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.ID == id {
			return r.IsRead
		}
	}
	return false
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApp(store *memInbox) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	user := app.Group("/api/u", func(c *fiber.Ctx) error {
		if id := c.Get("X-User"); id != "" {
			c.Locals(helperAuth.LocUserID, id)
		}
		return c.Next()
	})
	route.NotificationRoutes(user, store)
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, as uuid.UUID, body any) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if as != uuid.Nil {
		req.Header.Set("X-User", as.String())
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestInbox_ListOnlyOwnNotifications(t *testing.T) {
	store := newMemInbox()
	andi, budi := uuid.New(), uuid.New()
	store.put(andi, "Ujian besok")
	store.put(andi, "Libur")
	store.put(budi, "Rapat guru")
	app := newApp(store)

	code, out := call(t, app, fiber.MethodGet, "/api/u/notifikasi", andi, nil)
	require.Equal(t, fiber.StatusOK, code)

	var rows []m.NotifikasiModel
	require.NoError(t, json.Unmarshal(out.Data, &rows))
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, andi, r.UserID)
	}
}

func TestInbox_MarkReadOtherUsersNotificationIsNotFound(t *testing.T) {
	store := newMemInbox()
	andi, budi := uuid.New(), uuid.New()
	milikBudi := store.put(budi, "Rapat guru")
	app := newApp(store)

	code, _ := call(t, app, fiber.MethodPatch, "/api/u/notifikasi/"+milikBudi.ID.String()+"/read", andi, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.False(t, store.isRead(milikBudi.ID))

	code, _ = call(t, app, fiber.MethodPatch, "/api/u/notifikasi/"+milikBudi.ID.String()+"/read", budi, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, store.isRead(milikBudi.ID))
}

func TestInbox_MarkReadInvalidID(t *testing.T) {
	app := newApp(newMemInbox())
	code, _ := call(t, app, fiber.MethodPatch, "/api/u/notifikasi/bukan-uuid/read", uuid.New(), nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestInbox_ReadAllOnlyTouchesCaller(t *testing.T) {
	store := newMemInbox()
	andi, budi := uuid.New(), uuid.New()
	store.put(andi, "Ujian besok")
	store.put(andi, "Libur")
	milikBudi := store.put(budi, "Rapat guru")
	app := newApp(store)

	code, out := call(t, app, fiber.MethodPatch, "/api/u/notifikasi/read-all", andi, nil)
	require.Equal(t, fiber.StatusOK, code)
	var res struct {
		Updated int64 `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &res))
	assert.EqualValues(t, 2, res.Updated)
	assert.False(t, store.isRead(milikBudi.ID))

	code, out = call(t, app, fiber.MethodGet, "/api/u/notifikasi/unread-count", budi, nil)
	require.Equal(t, fiber.StatusOK, code)
	var cnt struct {
		Unread int64 `json:"unread"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &cnt))
	assert.EqualValues(t, 1, cnt.Unread)
}

func TestInbox_RequiresUser(t *testing.T) {
	app := newApp(newMemInbox())
	code, out := call(t, app, fiber.MethodGet, "/api/u/notifikasi", uuid.Nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.False(t, out.Success)
}

func TestDeviceToken_RegisterAndUnregisterOwnOnly(t *testing.T) {
	store := newMemInbox()
	andi, budi := uuid.New(), uuid.New()
	app := newApp(store)
	token := "fcm-token-andi-0123456789"

	code, out := call(t, app, fiber.MethodPost, "/api/u/device-tokens", andi, fiber.Map{"token": token})
	require.Equal(t, fiber.StatusCreated, code, out.Message)
	require.Contains(t, store.tokens, token)
	assert.Equal(t, "android", store.tokens[token].Platform)
	assert.Equal(t, andi, store.tokens[token].UserID)

	// user lain tidak bisa menghapus token andi
	code, _ = call(t, app, fiber.MethodDelete, "/api/u/device-tokens", budi, fiber.Map{"token": token})
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, store.tokens, token)

	code, _ = call(t, app, fiber.MethodDelete, "/api/u/device-tokens", andi, fiber.Map{"token": token})
	require.Equal(t, fiber.StatusOK, code)
	assert.NotContains(t, store.tokens, token)
}

func TestDeviceToken_ValidationError(t *testing.T) {
	app := newApp(newMemInbox())
	code, _ := call(t, app, fiber.MethodPost, "/api/u/device-tokens", uuid.New(), fiber.Map{"token": "x", "platform": "symbian"})
	assert.Equal(t, fiber.StatusBadRequest, code)
}
