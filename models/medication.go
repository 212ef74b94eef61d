package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Medication holds one customer's supply of a medicine. RefillDate is
// computed from quantity/dosage/start date when the row is written; the
// urgency status against "today" is never stored, it is recomputed on read.
type Medication struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string    `gorm:"not null"`
	Quantity    int       `gorm:"not null"` // units of medicine
	DailyDosage int       `gorm:"not null"` // units consumed per day
	StartDate   time.Time `gorm:"not null"`
	RefillDate  time.Time `gorm:"index;not null"`
	Notes       string
	IsActive    bool `gorm:"default:true"`

	gorm.Model
}

func (m *Medication) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
