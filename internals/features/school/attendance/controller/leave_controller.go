package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/features/school/attendance/dto"
	m "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

// POST /api/u/pengajuan-absensi
// JSON biasa, atau multipart dengan file "bukti" (jpg/png/webp/pdf).
func (ctl *AttendanceController) SubmitLeave(c *fiber.Ctx) error {
	siswaID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	var bukti *string
	if req.BuktiURL != "" {
		bukti = &req.BuktiURL
	}

	// upload dulu; kalau simpan pengajuan gagal, file dibersihkan lagi
	var uploaded string
	if fh := helperOSS.GetFile(c, "bukti", "file"); fh != nil {
		if ctl.Blob == nil {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Upload bukti belum tersedia")
		}
		url, err := ctl.Blob.UploadEvidence(reqCtx(c), siswaID, fh)
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		uploaded = url
		bukti = &uploaded
	}

	p, err := ctl.Svc.SubmitLeave(reqCtx(c), siswaID, service.SubmitLeaveInput{
		Tanggal:    req.Tanggal,
		Keterangan: m.Keterangan(req.Keterangan),
		Alasan:     req.Alasan,
		BuktiURL:   bukti,
	})
	if err != nil {
		if uploaded != "" {
			if derr := ctl.Blob.DeleteByPublicURL(reqCtx(c), uploaded); derr != nil {
				log.Printf("[WARN] gagal hapus bukti %s: %v", uploaded, derr)
			}
		}
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Pengajuan berhasil dikirim", p)
}

// GET /api/u/pengajuan-absensi?status=&tanggal=
func (ctl *AttendanceController) ListLeave(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}

	var status *m.StatusPengajuan
	if s := strings.ToLower(strings.TrimSpace(c.Query("status"))); s != "" {
		st := m.StatusPengajuan(s)
		switch st {
		case m.StatusPending, m.StatusDisetujui, m.StatusDitolak:
			status = &st
		default:
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak valid")
		}
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	rows, total, err := ctl.Svc.ListLeave(reqCtx(c), actor, status, strings.TrimSpace(c.Query("tanggal")), p)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "ok", rows, &meta)
}

// PATCH /api/u/pengajuan-absensi/:id/review
func (ctl *AttendanceController) ReviewLeave(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ReviewLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	res, err := ctl.Svc.ReviewLeave(reqCtx(c), actor, id, service.ReviewLeaveInput{
		Status:  m.StatusPengajuan(req.Status),
		Catatan: req.Catatan,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Pengajuan berhasil direview", dto.ReviewLeaveResponse{
		Pengajuan:      res.Pengajuan,
		UpdatedAbsensi: res.UpdatedAbsensi,
	})
}
