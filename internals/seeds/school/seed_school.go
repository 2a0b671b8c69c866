package school

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	kelasModel "sekolahku_backend/internals/features/school/classes/kelas/model"
	jadwalModel "sekolahku_backend/internals/features/school/schedules/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/helpers/dbtime"
)

type KelasSeed struct {
	Nama        string `json:"nama"`
	Tingkat     int    `json:"tingkat"`
	TahunAjaran string `json:"tahunAjaran"`
	WaliEmail   string `json:"waliEmail,omitempty"`
}

type JadwalSeed struct {
	Kelas         string `json:"kelas"`
	MataPelajaran string `json:"mataPelajaran"`
	GuruEmail     string `json:"guruEmail"`
	Hari          int    `json:"hari"`
	JamMulai      string `json:"jamMulai"`
	JamSelesai    string `json:"jamSelesai"`
	Semester      int    `json:"semester"`
	TahunAjaran   string `json:"tahunAjaran"`
}

func readJSON(path string, out any) {
	log.Println("📥 Membaca file:", path)
	file, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}
	if err := json.Unmarshal(file, out); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}
}

// SeedKelasFromJSON: wali diisi kalau guru sudah ada (jalankan lagi setelah seed user)
func SeedKelasFromJSON(db *gorm.DB, filePath string) {
	var inputs []KelasSeed
	readJSON(filePath, &inputs)

	for _, data := range inputs {
		var k kelasModel.KelasModel
		found := db.Where("nama = ? AND tahun_ajaran = ?", data.Nama, data.TahunAjaran).First(&k).Error == nil
		if !found {
			k = kelasModel.KelasModel{Nama: data.Nama, Tingkat: data.Tingkat, TahunAjaran: data.TahunAjaran}
		}
		if data.WaliEmail != "" && k.WaliKelasID == nil {
			var wali userModel.UserModel
			if err := db.Where("email = ?", data.WaliEmail).First(&wali).Error; err == nil {
				k.WaliKelasID = &wali.ID
			}
		}
		if err := db.Save(&k).Error; err != nil {
			log.Printf("❌ Gagal simpan kelas '%s': %v", data.Nama, err)
			continue
		}
		log.Printf("✅ Kelas '%s' siap", data.Nama)
	}
}

func SeedJadwalFromJSON(db *gorm.DB, filePath string) {
	var inputs []JadwalSeed
	readJSON(filePath, &inputs)

	for _, data := range inputs {
		var k kelasModel.KelasModel
		if err := db.Where("nama = ?", data.Kelas).First(&k).Error; err != nil {
			log.Printf("❌ Kelas '%s' tidak ditemukan, dilewati", data.Kelas)
			continue
		}
		var guru userModel.UserModel
		if err := db.Where("email = ?", data.GuruEmail).First(&guru).Error; err != nil {
			log.Printf("❌ Guru '%s' tidak ditemukan, dilewati", data.GuruEmail)
			continue
		}
		mulai, err1 := dbtime.Parse(data.JamMulai)
		selesai, err2 := dbtime.Parse(data.JamSelesai)
		if err1 != nil || err2 != nil {
			log.Printf("❌ Jam jadwal '%s' tidak valid", data.MataPelajaran)
			continue
		}

		var n int64
		db.Model(&jadwalModel.JadwalModel{}).
			Where("kelas_id = ? AND hari = ? AND jam_mulai = ?", k.ID, data.Hari, mulai).
			Count(&n)
		if n > 0 {
			log.Printf("ℹ️ Jadwal %s %s hari %d sudah ada, dilewati.", data.Kelas, data.MataPelajaran, data.Hari)
			continue
		}

		j := jadwalModel.JadwalModel{
			KelasID:       k.ID,
			MataPelajaran: data.MataPelajaran,
			GuruID:        guru.ID,
			Hari:          data.Hari,
			JamMulai:      mulai,
			JamSelesai:    selesai,
			Semester:      data.Semester,
			TahunAjaran:   data.TahunAjaran,
			IsActive:      true,
		}
		if err := db.Create(&j).Error; err != nil {
			log.Printf("❌ Gagal insert jadwal '%s': %v", data.MataPelajaran, err)
		} else {
			log.Printf("✅ Jadwal %s %s tersimpan", data.Kelas, data.MataPelajaran)
		}
	}
}
