// file: internals/features/notifications/controller/notification_controller.go
package controller

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/notifications/dto"
	m "sekolahku_backend/internals/features/notifications/model"
	"sekolahku_backend/internals/features/notifications/repository"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// InboxStore: semua query di-scope ke user pemanggil
type InboxStore interface {
	ListForUser(ctx context.Context, userID uuid.UUID, f repository.InboxFilter) ([]m.NotifikasiModel, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID, now time.Time) (bool, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error)
	UpsertDeviceToken(ctx context.Context, userID uuid.UUID, token, platform string, now time.Time) error
	DeleteUserDeviceToken(ctx context.Context, userID uuid.UUID, token string) (int64, error)
}

type NotificationController struct {
	Repo     InboxStore
	Validate *validator.Validate
}

func NewNotificationController(repo InboxStore) *NotificationController {
	return &NotificationController{Repo: repo, Validate: helper.Validate}
}

// GET /api/u/notifikasi?unread=true&jenis=
func (ctl *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	rows, total, err := ctl.Repo.ListForUser(c.UserContext(), userID, repository.InboxFilter{
		UnreadOnly: strings.EqualFold(c.Query("unread"), "true"),
		Jenis:      strings.TrimSpace(c.Query("jenis")),
		Offset:     p.Offset(),
		Limit:      p.Limit(),
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}
	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "ok", rows, &meta)
}

// GET /api/u/notifikasi/unread-count
func (ctl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	n, err := ctl.Repo.CountUnread(c.UserContext(), userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}
	return helper.JsonOK(c, "ok", dto.UnreadCountResponse{Unread: n})
}

// PATCH /api/u/notifikasi/:id/read
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	ok, err := ctl.Repo.MarkRead(c.UserContext(), userID, id, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Notifikasi tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Notifikasi ditandai dibaca", fiber.Map{"id": id})
}

// PATCH /api/u/notifikasi/read-all
func (ctl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	n, err := ctl.Repo.MarkAllRead(c.UserContext(), userID, time.Now())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
	}
	return helper.JsonUpdated(c, "Semua notifikasi ditandai dibaca", dto.MarkAllReadResponse{Updated: n})
}

/* =========================
   Device token (FCM)
   ========================= */

// POST /api/u/device-tokens
func (ctl *NotificationController) RegisterDeviceToken(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.RegisterDeviceTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	if err := ctl.Repo.UpsertDeviceToken(c.UserContext(), userID, req.Token, req.Platform, time.Now()); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan device token")
	}
	return helper.JsonCreated(c, "Device token tersimpan", fiber.Map{"platform": req.Platform})
}

// DELETE /api/u/device-tokens (logout dari device)
func (ctl *NotificationController) UnregisterDeviceToken(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.UnregisterDeviceTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Token = strings.TrimSpace(req.Token)
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	n, err := ctl.Repo.DeleteUserDeviceToken(c.UserContext(), userID, req.Token)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus device token")
	}
	return helper.JsonDeleted(c, "Device token dihapus", fiber.Map{"deleted": n})
}
