package models

import "gorm.io/gorm"

// Document holds non-threshold artifacts attached to an application, such as
// the rendered application form.
type Document struct {
	gorm.Model
	ApplicationID uint   `gorm:"not null;index" json:"application_id"`
	Kind          string `gorm:"not null;size:40" json:"kind"`
	FileURL       string `gorm:"not null" json:"file_url"`
}
