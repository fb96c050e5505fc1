package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	models "github.com/actually-app/actually/dbmodels"
)

var DB *gorm.DB

func ConnectDB(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to Postgres:", err)
	}

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Collection{},
		&models.SavedItem{},
		&models.Reminder{},
		&models.AgentAction{},
		&models.Conversation{},
		&models.ConversationMessage{},
		&models.Connection{},
		&models.GoogleToken{},
	); err != nil {
		log.Fatal("Migration failed:", err)
	}
}
