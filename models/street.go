package models

import "gorm.io/gorm"

type Street struct {
	gorm.Model
	EstateID uint   `gorm:"not null;index" json:"estate_id"`
	Name     string `gorm:"not null" json:"name"`
}
