package models

import "gorm.io/gorm"

// Outbox statuses.
const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// OutboxEvent is a durable side-effect intent (email sends). Handlers enqueue
// rows inside the request; a background worker delivers them with retry so a
// provider outage never rolls back the primary write.
type OutboxEvent struct {
	gorm.Model
	Kind      string `gorm:"not null;size:60;index"`
	Payload   string `gorm:"type:text"`
	Status    string `gorm:"not null;default:pending;index"`
	Attempts  int    `gorm:"default:0"`
	LastError string
}
