package database

import (
	"log"

	"eklerchik/internal/models"
)

func MigrateDatabase() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&models.Article{},
		&models.Subscriber{},
		&models.Comment{},
		&models.SiteSetting{},
	)
	if err != nil {
		log.Printf("Error during migration: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
