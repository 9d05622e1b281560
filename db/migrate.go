package db

import (
	"github.com/rs/zerolog/log"

	"github.com/salonworks/salon-api/models"
)

// Migrate runs schema migrations against the already-initialized connection.
func Migrate() {
	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Staff{},
		&models.Service{},
		&models.Appointment{},
		&models.ManualBlock{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	log.Info().Msg("✅ Migrations applied successfully!")
}
