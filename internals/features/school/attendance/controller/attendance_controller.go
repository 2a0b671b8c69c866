// file: internals/features/school/attendance/controller/attendance_controller.go
package controller

import (
	"context"
	"encoding/base64"
	"log"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"sekolahku_backend/internals/features/school/attendance/dto"
	m "sekolahku_backend/internals/features/school/attendance/model"
	"sekolahku_backend/internals/features/school/attendance/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type AttendanceController struct {
	Svc      *service.Service
	Blob     helperOSS.BlobService // boleh nil → upload bukti dimatikan
	Validate *validator.Validate
}

func NewAttendanceController(svc *service.Service, blob helperOSS.BlobService) *AttendanceController {
	return &AttendanceController{Svc: svc, Blob: blob, Validate: helper.Validate}
}

// ambil context standar (kalau Fiber mendukung UserContext)
func reqCtx(c *fiber.Ctx) context.Context {
	if uc := c.UserContext(); uc != nil {
		return uc
	}
	return context.Background()
}

func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" tidak valid")
	}
	return id, nil
}

// qrDataURL: kode sesi → PNG 256px → data URL
func qrDataURL(kode string) string {
	png, err := qrcode.Encode(kode, qrcode.Medium, 256)
	if err != nil {
		log.Printf("[ERROR] generate QR kode=%s: %v", kode, err)
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

/* =======================================================
   SESI (guru)
   ======================================================= */

// POST /api/u/presensi/sesi
func (ctl *AttendanceController) CreateSession(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	res, err := ctl.Svc.CreateSession(reqCtx(c), actor, req.JadwalID, req.Point())
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	out := dto.FromSession(res.Session, res.IsExisting, qrDataURL(res.Session.Kode))
	if res.IsExisting {
		return helper.JsonOK(c, "Sesi presensi masih aktif", out)
	}
	return helper.JsonCreated(c, "Sesi presensi dibuka", out)
}

// GET /api/u/presensi/sesi/:kode
func (ctl *AttendanceController) GetActiveSession(c *fiber.Ctx) error {
	sesi, err := ctl.Svc.FindActiveSession(reqCtx(c), c.Params("kode"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromSession(sesi, true, ""))
}

// PATCH /api/u/presensi/sesi/:id/end
func (ctl *AttendanceController) EndSession(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	sesi, err := ctl.Svc.EndSession(reqCtx(c), actor, id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Sesi presensi ditutup", dto.FromSession(sesi, false, ""))
}

/* =======================================================
   CHECK-IN (siswa)
   ======================================================= */

// POST /api/u/presensi/check-in
func (ctl *AttendanceController) CheckIn(c *fiber.Ctx) error {
	siswaID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	res, err := ctl.Svc.CheckIn(reqCtx(c), siswaID, req.KodeSesi, req.Point())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Presensi berhasil dicatat", dto.CheckInResponse{
		Absensi:  res.Absensi,
		Distance: math.Round(res.Distance),
	})
}

/* =======================================================
   MANUAL, REKAP, RIWAYAT
   ======================================================= */

// POST /api/u/presensi/manual
func (ctl *AttendanceController) ManualEntry(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}

	var req dto.ManualEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Keterangan = strings.ToLower(strings.TrimSpace(req.Keterangan))
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	rec, err := ctl.Svc.ManualEntry(reqCtx(c), actor, service.ManualEntryInput{
		SiswaID:    req.SiswaID,
		JadwalID:   req.JadwalID,
		Keterangan: m.Keterangan(req.Keterangan),
		Tanggal:    req.Tanggal,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Absensi berhasil dicatat", rec)
}

// GET /api/u/presensi/rekap?jadwalId=&tanggal=
func (ctl *AttendanceController) Recap(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	jadwalID, err := uuid.Parse(strings.TrimSpace(c.Query("jadwalId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "jadwalId tidak valid")
	}

	recap, err := ctl.Svc.Recap(reqCtx(c), actor, jadwalID, strings.TrimSpace(c.Query("tanggal")))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", recap)
}

// GET /api/u/presensi/riwayat
func (ctl *AttendanceController) History(c *fiber.Ctx) error {
	siswaID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "tanggal", "desc", helper.DefaultOpts)

	rows, total, err := ctl.Svc.History(reqCtx(c), siswaID, p)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "ok", rows, &meta)
}
