package database

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ai-compliance/internal/models"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Info().Int("attempt", i).Int("max", maxAttempts).Msg("trying to connect to DB")

		// TranslateError — чтобы дубликат (system_id, version) приходил
		// как gorm.ErrDuplicatedKey, а не сырой ошибкой драйвера
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			log.Info().Msg("connected to DB successfully")
			break
		}

		log.Warn().Err(err).Msg("failed to connect to DB")
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatal().Err(err).Int("attempts", maxAttempts).Msg("failed to connect to db")
	}

	// миграции
	err = DB.AutoMigrate(
		&models.Organization{},
		&models.AISystem{},
		&models.AnswerSet{},
		&models.Classification{},
		&models.ControlImplementation{},
		&models.EvidenceRecord{},
		&models.Task{},
		&models.ProviderArtifact{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}
}
