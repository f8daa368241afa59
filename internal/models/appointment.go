package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Patient   Patient   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"patient"`

	DentistID uuid.UUID `gorm:"type:uuid;not null;index" json:"dentist_id"`
	Dentist   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"dentist"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by"`

	ScheduledTime   time.Time `gorm:"not null;index" json:"scheduled_time"`
	DurationMinutes int       `gorm:"not null;default:30" json:"duration_minutes"`

	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`

	Reason string `gorm:"type:text" json:"reason"`
	Notes  string `gorm:"type:text" json:"notes"`

	Reminders []AppointmentReminder `gorm:"constraint:OnDelete:CASCADE;" json:"reminders,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// EndTime is ScheduledTime plus the appointment duration.
func (a *Appointment) EndTime() time.Time {
	return a.ScheduledTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
