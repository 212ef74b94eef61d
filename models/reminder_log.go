// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog is append-only: rows are created when a reminder is dispatched
// and never updated or deleted.
type ReminderLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	MedicationID *uuid.UUID `gorm:"type:uuid;index"`
	Message      string     `gorm:"type:text"`
	Status       string     `gorm:"type:varchar(20)"` // sent, delivered, failed
	ErrorMessage string     `gorm:"type:text"`
	Channel      string     `gorm:"type:varchar(20)"` // whatsapp, sms, call
	SentAt       time.Time
	SentBy       string
	gorm.Model
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
