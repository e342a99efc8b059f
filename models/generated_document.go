package models

import "gorm.io/gorm"

// GeneratedDocument is an artifact produced when an application crosses a
// payment-percentage threshold. Keyed by (application, kind) so a kind is
// generated at most once per application.
type GeneratedDocument struct {
	gorm.Model
	ApplicationID uint    `gorm:"not null;uniqueIndex:idx_app_kind" json:"application_id"`
	Kind          string  `gorm:"not null;size:40;uniqueIndex:idx_app_kind" json:"kind"`
	FileURL       string  `gorm:"not null" json:"file_url"`
	Percentage    float64 `gorm:"not null" json:"percentage"`
}
