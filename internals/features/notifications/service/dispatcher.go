package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/notifications/model"
	"sekolahku_backend/internals/metrics"
)

// Message = satu notifikasi untuk banyak penerima.
type Message struct {
	Recipients []uuid.UUID
	Jenis      string
	Judul      string
	Pesan      string
	RefType    string
	RefID      *uuid.UUID
	Data       map[string]any
}

// Result dari Notify. PushFailed tidak pernah jadi error.
type Result struct {
	Stored     int
	Tokens     int
	PushSent   int
	PushFailed int
}

// Store = persistence notifikasi + device token
type Store interface {
	InsertNotifikasi(ctx context.Context, rows []m.NotifikasiModel) error
	DeviceTokensFor(ctx context.Context, userIDs []uuid.UUID) ([]m.DeviceTokenModel, error)
	DeleteDeviceTokens(ctx context.Context, tokens []string) error
}

// Notifier dipakai fitur lain (presensi, pengumuman, cron).
type Notifier interface {
	Notify(ctx context.Context, msg Message) (Result, error)
}

type Dispatcher struct {
	store  Store
	pusher Pusher
}

func NewDispatcher(store Store, pusher Pusher) *Dispatcher {
	if pusher == nil {
		pusher = NoopPusher{}
	}
	return &Dispatcher{store: store, pusher: pusher}
}

// Notify: simpan 1 record unread per penerima (1 batch insert), lalu 1 panggilan push
// untuk semua device token penerima. Error hanya dari penyimpanan;
// kegagalan push dicatat di log + metrics dan record tetap ada.
func (d *Dispatcher) Notify(ctx context.Context, msg Message) (Result, error) {
	var res Result
	recipients := dedupe(msg.Recipients)
	if len(recipients) == 0 {
		return res, nil
	}
	if strings.TrimSpace(msg.Judul) == "" || strings.TrimSpace(msg.Jenis) == "" {
		return res, fmt.Errorf("notify: jenis & judul wajib diisi")
	}

	var refType *string
	if rt := strings.TrimSpace(msg.RefType); rt != "" {
		refType = &rt
	}

	rows := make([]m.NotifikasiModel, 0, len(recipients))
	for _, uid := range recipients {
		rows = append(rows, m.NotifikasiModel{
			UserID:  uid,
			Jenis:   msg.Jenis,
			Judul:   msg.Judul,
			Pesan:   msg.Pesan,
			RefType: refType,
			RefID:   msg.RefID,
			Data:    msg.Data,
			IsRead:  false,
		})
	}
	if err := d.store.InsertNotifikasi(ctx, rows); err != nil {
		return res, fmt.Errorf("simpan notifikasi: %w", err)
	}
	res.Stored = len(rows)
	metrics.NotificationsStoredTotal.WithLabelValues(msg.Jenis).Add(float64(len(rows)))

	// ===== push (best-effort) =====
	tokens, err := d.store.DeviceTokensFor(ctx, recipients)
	if err != nil {
		log.Printf("[PUSH] ❌ ambil device token gagal (jenis=%s): %v", msg.Jenis, err)
		return res, nil
	}
	res.Tokens = len(tokens)
	if len(tokens) == 0 {
		return res, nil
	}

	raw := make([]string, 0, len(tokens))
	for _, t := range tokens {
		raw = append(raw, t.Token)
	}

	rep, err := d.pusher.Push(ctx, raw, PushPayload{
		Title: msg.Judul,
		Body:  msg.Pesan,
		Data:  pushData(msg),
	})
	if err != nil {
		log.Printf("[PUSH] ❌ kirim gagal (jenis=%s, tokens=%d): %v", msg.Jenis, len(raw), err)
		// pusher tanpa report parsial: anggap semua token gagal
		if rep.Success+rep.Failure == 0 {
			rep = PushReport{Failure: len(raw)}
		}
	}

	res.PushSent = rep.Success
	res.PushFailed = rep.Failure
	metrics.PushTotal.WithLabelValues("sent").Add(float64(rep.Success))
	if rep.Failure > 0 {
		metrics.PushTotal.WithLabelValues("failed").Add(float64(rep.Failure))
		log.Printf("[PUSH] ⚠️ %d/%d token gagal (jenis=%s)", rep.Failure, len(raw), msg.Jenis)
	}
	if len(rep.InvalidTokens) > 0 {
		if err := d.store.DeleteDeviceTokens(ctx, rep.InvalidTokens); err != nil {
			log.Printf("[PUSH] ⚠️ hapus token invalid gagal: %v", err)
		}
	}
	return res, nil
}

// data FCM wajib map[string]string
func pushData(msg Message) map[string]string {
	out := map[string]string{"jenis": msg.Jenis}
	if msg.RefType != "" {
		out["ref_type"] = msg.RefType
	}
	if msg.RefID != nil {
		out["ref_id"] = msg.RefID.String()
	}
	for k, v := range msg.Data {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
