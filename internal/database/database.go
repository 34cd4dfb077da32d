package database

import (
	"fmt"
	"log"

	"github.com/yzhyun/askmate/internal/config"
	"github.com/yzhyun/askmate/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

// AutoMigrate creates the schema and repairs leftovers from earlier schema
// variants. The raw fixups only run against postgres; test databases get
// the plain gorm migration.
func AutoMigrate(db *gorm.DB) {
	if db.Dialector.Name() == "postgres" {
		// Earlier deployments keyed answers on question_id alone. The
		// canonical key is (question_id, answerer), so the old constraint
		// has to go before the composite index can be created.
		db.Exec("ALTER TABLE IF EXISTS answers DROP CONSTRAINT IF EXISTS answers_question_id_unique")

		// Collapse duplicates that slipped in while the key was ambiguous,
		// keeping the most recent answer per (question_id, answerer).
		db.Exec(`DO $$
		BEGIN
			IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'answers') THEN
				DELETE FROM answers a USING answers b
				WHERE a.question_id = b.question_id
				  AND a.answerer = b.answerer
				  AND (a.created_at < b.created_at OR (a.created_at = b.created_at AND a.id < b.id));
			END IF;
		END $$;`)

		// Rows written before round scoping existed carry no round_id.
		db.Exec(`DO $$
		DECLARE active_id integer;
		BEGIN
			SELECT id INTO active_id FROM rounds WHERE is_active = true ORDER BY created_at DESC LIMIT 1;
			IF active_id IS NOT NULL THEN
				IF EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'questions' AND column_name = 'round_id') THEN
					UPDATE questions SET round_id = active_id WHERE round_id IS NULL;
				END IF;
				IF EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'answers' AND column_name = 'round_id') THEN
					UPDATE answers SET round_id = active_id WHERE round_id IS NULL;
				END IF;
			END IF;
		END $$;`)
	}

	err := db.AutoMigrate(
		&models.Member{},
		&models.Round{},
		&models.Target{},
		&models.Question{},
		&models.Answer{},
		&models.AnswererPassword{},
		&models.AdminAuth{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Println("database migrated")
}
