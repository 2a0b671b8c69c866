package service

import (
	kelasModel "sekolahku_backend/internals/features/school/classes/kelas/model"
	jadwalModel "sekolahku_backend/internals/features/school/schedules/model"
	"sekolahku_backend/internals/constants"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// teachesJadwal: guru pengampu jadwal; admin boleh kalau allowAdmin
func teachesJadwal(actor helperAuth.Actor, j *jadwalModel.JadwalModel, allowAdmin bool) bool {
	switch actor.Role {
	case constants.RoleGuru:
		return j.GuruID == actor.UserID
	case constants.RoleSuperAdmin:
		return allowAdmin
	case constants.RoleSiswa:
		return false
	default:
		return false
	}
}

// canReviewLeave: wali kelas siswa atau super_admin
func canReviewLeave(actor helperAuth.Actor, k *kelasModel.KelasModel) bool {
	switch actor.Role {
	case constants.RoleSuperAdmin:
		return true
	case constants.RoleGuru:
		return k != nil && k.IsWali(actor.UserID)
	case constants.RoleSiswa:
		return false
	default:
		return false
	}
}

type scopeKind int

const (
	scopeNone scopeKind = iota
	scopeOwn            // siswa: miliknya sendiri
	scopeWali           // guru: kelas yang diwalikan
	scopeAll            // super_admin
)

func pengajuanScope(role constants.Role) scopeKind {
	switch role {
	case constants.RoleSiswa:
		return scopeOwn
	case constants.RoleGuru:
		return scopeWali
	case constants.RoleSuperAdmin:
		return scopeAll
	default:
		return scopeNone
	}
}
