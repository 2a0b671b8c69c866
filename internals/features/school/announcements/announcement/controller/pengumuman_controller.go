package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/features/school/announcements/announcement/dto"
	"sekolahku_backend/internals/features/school/announcements/announcement/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type PengumumanController struct {
	Svc      *service.Service
	Validate *validator.Validate
}

func NewPengumumanController(svc *service.Service) *PengumumanController {
	return &PengumumanController{Svc: svc, Validate: helper.Validate}
}

// POST /api/u/pengumuman
func (ctl *PengumumanController) Create(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreatePengumumanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	p, err := ctl.Svc.Create(c.UserContext(), actor, service.CreateInput{
		Judul:       req.Judul,
		Isi:         req.Isi,
		KelasID:     req.KelasID,
		TargetRoles: req.TargetRoles,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Pengumuman berhasil dibuat", p)
}

// GET /api/u/pengumuman
func (ctl *PengumumanController) List(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	rows, total, err := ctl.Svc.List(c.UserContext(), actor, p)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "ok", rows, &meta)
}
