package database

import (
	"fmt"
	"log"

	"github.com/mbokatech/hall-management-backend/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the shared gorm handle, set once by Connect
var DB *gorm.DB

// Connect opens the Postgres connection and stores it in DB
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Unique violations surface as gorm.ErrDuplicatedKey so services can
		// run the retry-once re-query on user provisioning.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	log.Println("✅ Database connected")
	DB = db
	return db
}
