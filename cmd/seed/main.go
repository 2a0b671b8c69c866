package main

import (
	"log"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
	"sekolahku_backend/internals/seeds"
)

// go run ./cmd/seed (dari root repo; path JSON relatif)
func main() {
	configs.LoadEnv()
	db := configs.InitSeederDB()

	if err := db.AutoMigrate(database.Models()...); err != nil {
		log.Fatalf("❌ AutoMigrate: %v", err)
	}
	seeds.RunAllSeeds(db)
	log.Println("✅ Seeding selesai")
}
