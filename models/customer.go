package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	Name           string `gorm:"not null"`
	Phone          string `gorm:"not null;uniqueIndex"` // canonical 10-digit form
	AlternatePhone string
	Address        string
	Notes          string
	IsActive       bool `gorm:"default:true"`

	Medications []Medication `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
