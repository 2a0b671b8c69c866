// file: internals/features/school/schedules/controller/jadwal_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	kelasCtl "sekolahku_backend/internals/features/school/classes/kelas/controller"
	kelasModel "sekolahku_backend/internals/features/school/classes/kelas/model"
	"sekolahku_backend/internals/features/school/schedules/dto"
	"sekolahku_backend/internals/features/school/schedules/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type JadwalController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewJadwalController(db *gorm.DB) *JadwalController {
	return &JadwalController{DB: db, Validate: helper.Validate}
}

var jadwalSort = map[string]string{
	"hari":       "hari, jam_mulai",
	"jam_mulai":  "jam_mulai",
	"created_at": "created_at",
}

// format/urutan jam salah → 400 dengan pesan dari dto
func jamErr(c *fiber.Ctx, err error) error {
	return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
}

// kelas/guru terhapus di antara pengecekan dan insert → FK violation
func saveErr(c *fiber.Ctx, err error, msg string) error {
	if helper.IsForeignKeyViolation(err) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kelas atau guru tidak ditemukan")
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, msg)
}

// POST /api/a/jadwal
func (ctl *JadwalController) Create(c *fiber.Ctx) error {
	var req dto.CreateJadwalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}
	j, err := req.ToModel()
	if err != nil {
		return jamErr(c, err)
	}

	db := ctl.DB.WithContext(c.UserContext())
	var n int64
	if err := db.Model(&kelasModel.KelasModel{}).Where("id = ?", j.KelasID).Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa kelas")
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kelas tidak ditemukan")
	}
	if err := kelasCtl.EnsureGuru(db, j.GuruID); err != nil {
		return err
	}

	if err := db.Create(j).Error; err != nil {
		return saveErr(c, err, "Gagal membuat jadwal")
	}
	return helper.JsonCreated(c, "Jadwal berhasil dibuat", j)
}

// GET /api/a/jadwal?kelasId=&guruId=&hari=
func (ctl *JadwalController) List(c *fiber.Ctx) error {
	var q dto.ListJadwalQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.JadwalModel{})
	if q.KelasID != "" {
		id, err := uuid.Parse(q.KelasID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "kelasId tidak valid")
		}
		tx = tx.Where("kelas_id = ?", id)
	}
	if q.GuruID != "" {
		id, err := uuid.Parse(q.GuruID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "guruId tidak valid")
		}
		tx = tx.Where("guru_id = ?", id)
	}
	return ctl.list(c, tx, q.Hari, helper.AdminOpts)
}

// GET /api/u/jadwal: guru: jadwal mengajar; siswa: jadwal kelasnya; admin: semua
func (ctl *JadwalController) Mine(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	var q dto.ListJadwalQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	db := ctl.DB.WithContext(c.UserContext())
	tx := db.Model(&model.JadwalModel{}).Where("is_active")
	switch actor.Role {
	case constants.RoleGuru:
		tx = tx.Where("guru_id = ?", actor.UserID)
	case constants.RoleSiswa:
		var u userModel.UserModel
		if err := db.Select("id", "kelas_id").Where("id = ?", actor.UserID).Take(&u).Error; err != nil {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		if u.KelasID == nil {
			return helper.JsonList(c, "ok", []model.JadwalModel{}, nil)
		}
		tx = tx.Where("kelas_id = ?", *u.KelasID)
	case constants.RoleSuperAdmin:
	}
	return ctl.list(c, tx, q.Hari, helper.DefaultOpts)
}

func (ctl *JadwalController) list(c *fiber.Ctx, tx *gorm.DB, hari *int, opts helper.Options) error {
	if hari != nil {
		tx = tx.Where("hari = ?", *hari)
	}
	p := helper.ParseFiber(c, "hari", "asc", opts)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung jadwal")
	}
	var rows []model.JadwalModel
	if err := tx.Order(p.OrderExpr(jadwalSort, "hari")).
		Offset(p.Offset()).Limit(p.Limit()).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jadwal")
	}
	meta := helper.BuildMeta(total, p)
	return helper.JsonList(c, "ok", rows, &meta)
}

// PATCH /api/a/jadwal/:id
func (ctl *JadwalController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	var req dto.UpdateJadwalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	db := ctl.DB.WithContext(c.UserContext())
	var j model.JadwalModel
	if err := db.Where("id = ?", id).Take(&j).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Jadwal tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jadwal")
	}
	if err := req.Apply(&j); err != nil {
		return jamErr(c, err)
	}
	if req.GuruID != nil {
		if err := kelasCtl.EnsureGuru(db, j.GuruID); err != nil {
			return err
		}
	}

	if err := db.Save(&j).Error; err != nil {
		return saveErr(c, err, "Gagal memperbarui jadwal")
	}
	return helper.JsonUpdated(c, "Jadwal berhasil diperbarui", j)
}
