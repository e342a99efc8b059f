package migrations

import (
	"estate-sales-portal-server/models"

	"gorm.io/gorm"
)

// MigrateAll creates or updates every table the portal owns.
func MigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Estate{},
		&models.Street{},
		&models.Property{},
		&models.Application{},
		&models.Payment{},
		&models.Receipt{},
		&models.Document{},
		&models.GeneratedDocument{},
		&models.Notification{},
		&models.InviteToken{},
		&models.OutboxEvent{},
	)
}
