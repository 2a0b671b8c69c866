package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	m "sekolahku_backend/internals/features/notifications/model"
)

// batch insert notifikasi; 1 INSERT per chunk
const insertBatchSize = 500

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) InsertNotifikasi(ctx context.Context, rows []m.NotifikasiModel) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).CreateInBatches(&rows, insertBatchSize).Error
}

func (r *NotificationRepository) DeviceTokensFor(ctx context.Context, userIDs []uuid.UUID) ([]m.DeviceTokenModel, error) {
	var out []m.DeviceTokenModel
	if len(userIDs) == 0 {
		return out, nil
	}
	err := r.DB.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&out).Error
	return out, err
}

// DeleteDeviceTokens: buang token yang ditolak FCM (unregistered/invalid)
func (r *NotificationRepository) DeleteDeviceTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Where("token IN ?", tokens).
		Delete(&m.DeviceTokenModel{}).Error
}

// DeleteUserDeviceToken: logout dari device, hanya token milik user sendiri
func (r *NotificationRepository) DeleteUserDeviceToken(ctx context.Context, userID uuid.UUID, token string) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&m.DeviceTokenModel{})
	return res.RowsAffected, res.Error
}

// UpsertDeviceToken: token unik global; pindah pemilik kalau login user lain di device yg sama
func (r *NotificationRepository) UpsertDeviceToken(ctx context.Context, userID uuid.UUID, token, platform string, now time.Time) error {
	row := m.DeviceTokenModel{
		UserID:     userID,
		Token:      token,
		Platform:   platform,
		LastSeenAt: now,
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "last_seen_at"}),
		}).
		Create(&row).Error
}

/* =========================
   Inbox
   ========================= */

type InboxFilter struct {
	UnreadOnly bool
	Jenis      string
	Offset     int
	Limit      int
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, f InboxFilter) ([]m.NotifikasiModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&m.NotifikasiModel{}).Where("user_id = ?", userID)
	if f.UnreadOnly {
		q = q.Where("is_read = FALSE")
	}
	if f.Jenis != "" {
		q = q.Where("jenis = ?", f.Jenis)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []m.NotifikasiModel
	err := q.Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&rows).Error
	return rows, total, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&m.NotifikasiModel{}).
		Where("user_id = ? AND is_read = FALSE", userID).
		Count(&n).Error
	return n, err
}

// MarkRead: false kalau notifikasi bukan milik user / tidak ada
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID, now time.Time) (bool, error) {
	var row m.NotifikasiModel
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if row.IsRead {
		return true, nil
	}
	err = r.DB.WithContext(ctx).Model(&m.NotifikasiModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_read": true, "read_at": now}).Error
	return err == nil, err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&m.NotifikasiModel{}).
		Where("user_id = ? AND is_read = FALSE", userID).
		Updates(map[string]any{"is_read": true, "read_at": now})
	return res.RowsAffected, res.Error
}
