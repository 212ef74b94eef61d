package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderTemplate is an editable message body for one (type, language)
// pair. Placeholders [CustomerName], [Medication] and [DaysText] are filled
// at dispatch time. Built-in defaults are used when no active row matches.
type ReminderTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Type     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_template_type_lang,priority:1"` // refill
	Language string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_template_type_lang,priority:2"` // english, telugu
	Message  string    `gorm:"type:text;not null"`
	IsActive bool      `gorm:"default:true"`
	gorm.Model
}

func (t *ReminderTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
