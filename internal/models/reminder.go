package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentReminder struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`

	ReminderType string    `gorm:"size:20;not null" json:"reminder_type"`
	ScheduledFor time.Time `gorm:"not null;index" json:"scheduled_for"`

	Sent   bool       `gorm:"default:false;index" json:"sent"`
	SentAt *time.Time `json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *AppointmentReminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
