package boot

import (
	"ets/src/db"
	"ets/src/models"
	"ets/src/types"
	"ets/src/utils"
	"log"
	"os"

	"gorm.io/gorm"
)

// Init migrates the schema and seeds the admin account from the environment.
func Init() {
	gdb := db.GetDb()
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	seedAdmin(gdb)
}

func seedAdmin(gdb *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	var count int64
	if err := gdb.
		Model(&models.User{}).
		Where(&models.User{Email: email}).
		Count(&count).
		Error; err != nil || count > 0 {
		return
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Error hashing admin password: %s\n", err.Error())
		return
	}
	admin := models.User{
		Name:         "System Admin",
		Email:        email,
		PasswordHash: hashed,
		Role:         types.ROLE_ADMIN,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		log.Printf("Error seeding admin account: %s\n", err.Error())
		return
	}
	log.Printf("Seeded admin account %s\n", email)
}
