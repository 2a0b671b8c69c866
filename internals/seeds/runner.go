package seeds

import (
	"gorm.io/gorm"

	"sekolahku_backend/internals/seeds/school"
	"sekolahku_backend/internals/seeds/users"
)

func RunAllSeeds(db *gorm.DB) {
	//* Kelas (tanpa wali dulu) → User → Kelas lagi (isi wali) → Jadwal
	school.SeedKelasFromJSON(db, "internals/seeds/school/data_kelas.json")
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	school.SeedKelasFromJSON(db, "internals/seeds/school/data_kelas.json")
	school.SeedJadwalFromJSON(db, "internals/seeds/school/data_jadwal.json")
}
