// file: internals/features/school/classes/kelas/controller/kelas_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/classes/kelas/dto"
	"sekolahku_backend/internals/features/school/classes/kelas/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
)

type KelasController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewKelasController(db *gorm.DB) *KelasController {
	return &KelasController{DB: db, Validate: helper.Validate}
}

// EnsureGuru: user ada, aktif, dan role guru
func EnsureGuru(db *gorm.DB, id uuid.UUID) error {
	var u userModel.UserModel
	err := db.Select("id", "role", "is_active").Where("id = ?", id).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, "Guru tidak ditemukan")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa guru")
	}
	if u.Role != constants.RoleGuru || !u.IsActive {
		return fiber.NewError(fiber.StatusBadRequest, "User bukan guru aktif")
	}
	return nil
}

// POST /api/a/kelas
func (ctl *KelasController) Create(c *fiber.Ctx) error {
	var req dto.CreateKelasRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	db := ctl.DB.WithContext(c.UserContext())
	if req.WaliKelasID != nil {
		if err := EnsureGuru(db, *req.WaliKelasID); err != nil {
			return err
		}
	}

	k := req.ToModel()
	if err := db.Create(k).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kelas")
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", k)
}

// GET /api/a/kelas?tahunAjaran=&tingkat=
func (ctl *KelasController) List(c *fiber.Ctx) error {
	var q dto.ListKelasQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ParseFiber(c, "nama", "asc", helper.AdminOpts)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.KelasModel{})
	if q.TahunAjaran != "" {
		tx = tx.Where("tahun_ajaran = ?", q.TahunAjaran)
	}
	if q.Tingkat > 0 {
		tx = tx.Where("tingkat = ?", q.Tingkat)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung kelas")
	}
	var rows []model.KelasModel
	if err := tx.Order(p.OrderExpr(map[string]string{
		"nama":       "nama",
		"tingkat":    "tingkat",
		"created_at": "created_at",
	}, "nama")).Offset(p.Offset()).Limit(p.Limit()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}
	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "ok", rows, &meta)
}
