package services

import (
	"testing"

	"github.com/yzhyun/askmate/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// Connections are capped at one so every query sees the same memory DB.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Member{},
		&models.Round{},
		&models.Target{},
		&models.Question{},
		&models.Answer{},
		&models.AnswererPassword{},
		&models.AdminAuth{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func mustAddMember(t *testing.T, db *gorm.DB, name string) models.Member {
	t.Helper()
	member := models.Member{Name: name, IsActive: true}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("create member %q: %v", name, err)
	}
	return member
}

func mustAddTarget(t *testing.T, db *gorm.DB, name string, roundID uint) models.Target {
	t.Helper()
	target := models.Target{Name: name, RoundID: &roundID, IsActive: true}
	if err := db.Create(&target).Error; err != nil {
		t.Fatalf("create target %q: %v", name, err)
	}
	return target
}
