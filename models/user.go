package models

import "gorm.io/gorm"

// Roles an authenticated user can hold.
const (
	RoleAdmin  = "admin"
	RoleAgent  = "agent"
	RoleClient = "client"
)

type User struct {
	gorm.Model
	FullName    string `gorm:"not null" json:"full_name"`
	Email       string `gorm:"unique;not null" json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"-"`
	Role        string `gorm:"not null;default:client" json:"role"`
	Active      bool   `gorm:"default:true" json:"active"`
}
