package users

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	kelasModel "sekolahku_backend/internals/features/school/classes/kelas/model"
	"sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/constants"
)

type UserSeed struct {
	Nama     string `json:"nama"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Kelas    string `json:"kelas,omitempty"` // nama kelas (siswa)
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))
		var existing model.UserModel
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", email)
			continue
		}

		role, err := constants.ParseRole(data.Role)
		if err != nil {
			log.Printf("❌ Role '%s' untuk '%s' tidak dikenal", data.Role, email)
			continue
		}

		var kelasID *uuid.UUID
		if role == constants.RoleSiswa && data.Kelas != "" {
			var k kelasModel.KelasModel
			if err := db.Where("nama = ?", data.Kelas).First(&k).Error; err != nil {
				log.Printf("❌ Kelas '%s' untuk '%s' tidak ditemukan", data.Kelas, email)
				continue
			}
			kelasID = &k.ID
		}

		// 🔐 Hash password sebelum disimpan
		hashed, err := HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", email, err)
			continue
		}

		u := model.UserModel{
			ID:           uuid.New(),
			Nama:         data.Nama,
			Email:        email,
			PasswordHash: hashed,
			Role:         role,
			KelasID:      kelasID,
			IsActive:     true,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", email, err)
		} else {
			log.Printf("✅ Berhasil insert user '%s'", email)
		}
	}
}
