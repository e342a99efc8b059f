// seed/seed.go
package seed

import (
	"errors"
	"log"
	"os"

	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the initial admin account when none exists. Credentials
// come from ADMIN_EMAIL and ADMIN_PASSWORD.
func SeedAdmin() error {
	var existing models.User
	err := utils.DB.Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		log.Println("Admin account already exists. Skipping seeding.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set. Skipping admin seeding.")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		FullName: "Portal Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		Active:   true,
	}
	if err := utils.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin account seeded successfully.")
	return nil
}

// SeedCatalog creates a demo estate with a street and two properties so a
// fresh install has something to browse.
func SeedCatalog() error {
	var count int64
	if err := utils.DB.Model(&models.Estate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Catalog already seeded. Skipping.")
		return nil
	}

	estate := models.Estate{
		Name:        "Crescent Gardens",
		Location:    "Lugbe District",
		City:        "Abuja",
		State:       "FCT",
		Description: "A gated development of terrace and detached homes.",
	}
	if err := utils.DB.Create(&estate).Error; err != nil {
		return err
	}

	street := models.Street{EstateID: estate.ID, Name: "Unity Close"}
	if err := utils.DB.Create(&street).Error; err != nil {
		return err
	}

	properties := []models.Property{
		{
			EstateID:  estate.ID,
			StreetID:  &street.ID,
			Title:     "4-Bedroom Terrace Duplex",
			Price:     40000000,
			Bedrooms:  4,
			Bathrooms: 5,
			SizeSqm:   220,
			Status:    models.PropertyAvailable,
		},
		{
			EstateID:  estate.ID,
			StreetID:  &street.ID,
			Title:     "5-Bedroom Detached Duplex",
			Price:     65000000,
			Bedrooms:  5,
			Bathrooms: 6,
			SizeSqm:   320,
			Status:    models.PropertyAvailable,
		},
	}
	for i := range properties {
		if err := utils.DB.Create(&properties[i]).Error; err != nil {
			return err
		}
	}

	log.Println("Demo catalog seeded successfully.")
	return nil
}
