package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicalRecord is the clinical history entry for a visit: diagnosis,
// treatment performed and the odontogram snapshot.
type MedicalRecord struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Patient   Patient   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"patient"`

	DentistID uuid.UUID `gorm:"type:uuid;not null;index" json:"dentist_id"`
	Dentist   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"dentist"`

	VisitDate time.Time `gorm:"not null;index" json:"visit_date"`

	Diagnosis string `gorm:"type:text;not null" json:"diagnosis"`
	Treatment string `gorm:"type:text;not null" json:"treatment"`
	Notes     string `gorm:"type:text" json:"notes"`

	// Digital odontogram, stored as a JSON document.
	TeethChart string `gorm:"type:jsonb" json:"teeth_chart,omitempty"`

	NextAppointment *time.Time `gorm:"index" json:"next_appointment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *MedicalRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
